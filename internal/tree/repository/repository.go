package repository

import (
	"context"
	"errors"

	treedomain "treemap-backend/internal/tree/domain"
	"treemap-backend/pkg/nocodb"
)

// ErrMissingID is returned when an update is attempted without a record id.
var ErrMissingID = errors.New("record id is required")

// TreeRepository is the persistence boundary for TREE_INFO records.
type TreeRepository interface {
	List(ctx context.Context, limit, offset int) (*nocodb.ListPage[treedomain.TreeInfo], error)
	Get(ctx context.Context, id string) (*treedomain.TreeInfo, error)
	Search(ctx context.Context, criteria treedomain.TreeSearch) (*nocodb.ListPage[treedomain.TreeInfo], error)
	ByHealthStatus(ctx context.Context, status string) (*nocodb.ListPage[treedomain.TreeInfo], error)
	Create(ctx context.Context, tree *treedomain.TreeInfo) (*treedomain.TreeInfo, error)
	Update(ctx context.Context, tree *treedomain.TreeInfo) (*treedomain.TreeInfo, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

// LocationRepository is the persistence boundary for location records.
type LocationRepository interface {
	List(ctx context.Context, limit, offset int) (*nocodb.ListPage[treedomain.Location], error)
	Get(ctx context.Context, id string) (*treedomain.Location, error)
	// ByTreeID returns the locations linked to a tree; no matches yield an
	// empty slice, never an error.
	ByTreeID(ctx context.Context, treeID string) []treedomain.Location
	Create(ctx context.Context, location *treedomain.Location) (*treedomain.Location, error)
	Update(ctx context.Context, location *treedomain.Location) (*treedomain.Location, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

// PlantingRepository is the persistence boundary for Planted_Trees records
// and their link fields.
type PlantingRepository interface {
	Create(ctx context.Context, planted *treedomain.PlantedTree) (*treedomain.PlantedTree, error)
	LinkUser(ctx context.Context, plantedID string, userID any) error
	LinkLocation(ctx context.Context, plantedID string, locationID any) error
	LinkTreeInfo(ctx context.Context, plantedID string, treeInfoID any) error
	UnlinkUser(ctx context.Context, plantedID string, userID any) error
	LinkedLocations(ctx context.Context, plantedID string) ([]treedomain.Location, error)
}
