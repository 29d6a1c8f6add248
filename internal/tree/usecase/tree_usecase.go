package usecase

import (
	"context"
	"time"

	treedomain "treemap-backend/internal/tree/domain"
	"treemap-backend/internal/tree/repository"
	"treemap-backend/pkg/nocodb"
)

// PlantRequest describes one plant-a-tree action: the new Planted_Trees row
// plus the records it links to.
type PlantRequest struct {
	Message    string `json:"message"`
	Amount     int    `json:"amount" binding:"required,min=1"`
	UserID     any    `json:"user_id"`
	LocationID any    `json:"location_id"`
	TreeInfoID any    `json:"tree_info_id"`
}

// TreeUsecase defines the tree, location and planting business logic.
type TreeUsecase interface {
	ListTrees(ctx context.Context, limit, offset int) (*nocodb.ListPage[treedomain.TreeInfo], error)
	GetTree(ctx context.Context, id string) (*treedomain.TreeInfo, error)
	SearchTrees(ctx context.Context, criteria treedomain.TreeSearch) (*nocodb.ListPage[treedomain.TreeInfo], error)
	CreateTree(ctx context.Context, tree *treedomain.TreeInfo) (*treedomain.TreeInfo, error)
	UpdateTree(ctx context.Context, tree *treedomain.TreeInfo) (*treedomain.TreeInfo, error)
	DeleteTree(ctx context.Context, id string) error
	CountTrees(ctx context.Context) (int, error)

	ListLocations(ctx context.Context, limit, offset int) (*nocodb.ListPage[treedomain.Location], error)
	GetLocation(ctx context.Context, id string) (*treedomain.Location, error)
	LocationsByTree(ctx context.Context, treeID string) []treedomain.Location
	CreateLocation(ctx context.Context, location *treedomain.Location) (*treedomain.Location, error)
	UpdateLocation(ctx context.Context, location *treedomain.Location) (*treedomain.Location, error)
	DeleteLocation(ctx context.Context, id string) error

	// PlantTree creates a Planted_Trees record and attaches its user,
	// location and tree-info links.
	PlantTree(ctx context.Context, req *PlantRequest) (*treedomain.PlantedTree, error)
	PlantedLocations(ctx context.Context, plantedID string) ([]treedomain.Location, error)
}

type treeUsecase struct {
	trees     repository.TreeRepository
	locations repository.LocationRepository
	plantings repository.PlantingRepository
}

// NewTreeUsecase creates a new instance of treeUsecase.
func NewTreeUsecase(trees repository.TreeRepository, locations repository.LocationRepository, plantings repository.PlantingRepository) TreeUsecase {
	return &treeUsecase{
		trees:     trees,
		locations: locations,
		plantings: plantings,
	}
}

func (u *treeUsecase) ListTrees(ctx context.Context, limit, offset int) (*nocodb.ListPage[treedomain.TreeInfo], error) {
	return u.trees.List(ctx, limit, offset)
}

func (u *treeUsecase) GetTree(ctx context.Context, id string) (*treedomain.TreeInfo, error) {
	return u.trees.Get(ctx, id)
}

func (u *treeUsecase) SearchTrees(ctx context.Context, criteria treedomain.TreeSearch) (*nocodb.ListPage[treedomain.TreeInfo], error) {
	return u.trees.Search(ctx, criteria)
}

func (u *treeUsecase) CreateTree(ctx context.Context, tree *treedomain.TreeInfo) (*treedomain.TreeInfo, error) {
	return u.trees.Create(ctx, tree)
}

func (u *treeUsecase) UpdateTree(ctx context.Context, tree *treedomain.TreeInfo) (*treedomain.TreeInfo, error) {
	return u.trees.Update(ctx, tree)
}

func (u *treeUsecase) DeleteTree(ctx context.Context, id string) error {
	return u.trees.Delete(ctx, id)
}

func (u *treeUsecase) CountTrees(ctx context.Context) (int, error) {
	return u.trees.Count(ctx)
}

func (u *treeUsecase) ListLocations(ctx context.Context, limit, offset int) (*nocodb.ListPage[treedomain.Location], error) {
	return u.locations.List(ctx, limit, offset)
}

func (u *treeUsecase) GetLocation(ctx context.Context, id string) (*treedomain.Location, error) {
	return u.locations.Get(ctx, id)
}

func (u *treeUsecase) LocationsByTree(ctx context.Context, treeID string) []treedomain.Location {
	return u.locations.ByTreeID(ctx, treeID)
}

func (u *treeUsecase) CreateLocation(ctx context.Context, location *treedomain.Location) (*treedomain.Location, error) {
	return u.locations.Create(ctx, location)
}

func (u *treeUsecase) UpdateLocation(ctx context.Context, location *treedomain.Location) (*treedomain.Location, error) {
	return u.locations.Update(ctx, location)
}

func (u *treeUsecase) DeleteLocation(ctx context.Context, id string) error {
	return u.locations.Delete(ctx, id)
}

func (u *treeUsecase) PlantTree(ctx context.Context, req *PlantRequest) (*treedomain.PlantedTree, error) {
	planted := &treedomain.PlantedTree{
		Message:   req.Message,
		Amount:    req.Amount,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}

	created, err := u.plantings.Create(ctx, planted)
	if err != nil {
		return nil, err
	}

	plantedID := nocodb.FormatID(created.ID)
	if req.UserID != nil {
		if err := u.plantings.LinkUser(ctx, plantedID, req.UserID); err != nil {
			return nil, err
		}
	}
	if req.LocationID != nil {
		if err := u.plantings.LinkLocation(ctx, plantedID, req.LocationID); err != nil {
			return nil, err
		}
	}
	if req.TreeInfoID != nil {
		if err := u.plantings.LinkTreeInfo(ctx, plantedID, req.TreeInfoID); err != nil {
			return nil, err
		}
	}

	return created, nil
}

func (u *treeUsecase) PlantedLocations(ctx context.Context, plantedID string) ([]treedomain.Location, error) {
	return u.plantings.LinkedLocations(ctx, plantedID)
}
