package repository

import (
	"context"
	"fmt"
	"log"

	treedomain "treemap-backend/internal/tree/domain"
	"treemap-backend/pkg/nocodb"
)

// LocationTable is the logical table name registered on the nocodb client.
const LocationTable = "location"

type locationRepository struct {
	db     *nocodb.Client
	viewID string
}

// NewLocationRepository creates a LocationRepository over the location table.
// viewID selects the saved map view used for listings.
func NewLocationRepository(db *nocodb.Client, tableID, viewID string) LocationRepository {
	db.RegisterTable(LocationTable, tableID)
	return &locationRepository{db: db, viewID: viewID}
}

// parseGeo fills coordinates on each record; a malformed geo string is logged
// and the record kept.
func parseGeo(locations []treedomain.Location) {
	for i := range locations {
		if err := locations[i].ParseGeoLocation(); err != nil {
			log.Printf("[WARN] location %v: %v", locations[i].ID, err)
		}
	}
}

func (r *locationRepository) List(ctx context.Context, limit, offset int) (*nocodb.ListPage[treedomain.Location], error) {
	page, err := nocodb.List[treedomain.Location](ctx, r.db, LocationTable, nocodb.Query{
		Limit:  limit,
		Offset: offset,
		ViewID: r.viewID,
	})
	if err != nil {
		return nil, err
	}
	parseGeo(page.List)
	return page, nil
}

func (r *locationRepository) Get(ctx context.Context, id string) (*treedomain.Location, error) {
	location, err := nocodb.Get[treedomain.Location](ctx, r.db, LocationTable, id)
	if err != nil {
		return nil, err
	}
	if err := location.ParseGeoLocation(); err != nil {
		log.Printf("[WARN] location %v: %v", location.ID, err)
	}
	return location, nil
}

func (r *locationRepository) ByTreeID(ctx context.Context, treeID string) []treedomain.Location {
	page, err := nocodb.List[treedomain.Location](ctx, r.db, LocationTable, nocodb.Query{
		Where:  fmt.Sprintf("(tree_id,eq,%s)", treeID),
		ViewID: r.viewID,
	})
	if err != nil {
		log.Printf("[WARN] locations for tree %s: %v", treeID, err)
		return []treedomain.Location{}
	}
	if page.List == nil {
		return []treedomain.Location{}
	}
	parseGeo(page.List)
	return page.List
}

func (r *locationRepository) Create(ctx context.Context, location *treedomain.Location) (*treedomain.Location, error) {
	created, err := nocodb.CreateOne(ctx, r.db, LocationTable, *location)
	if err != nil {
		return nil, err
	}
	if created != nil && created.ID != nil {
		location.ID = created.ID
	}
	return location, nil
}

func (r *locationRepository) Update(ctx context.Context, location *treedomain.Location) (*treedomain.Location, error) {
	if location.ID == nil {
		return nil, ErrMissingID
	}
	updated, err := nocodb.UpdateOne(ctx, r.db, LocationTable, *location)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return location, nil
	}
	return updated, nil
}

func (r *locationRepository) Delete(ctx context.Context, id string) error {
	return r.db.Delete(ctx, LocationTable, id)
}

func (r *locationRepository) Count(ctx context.Context) (int, error) {
	return r.db.Count(ctx, LocationTable, nocodb.Query{})
}
