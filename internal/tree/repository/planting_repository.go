package repository

import (
	"context"

	treedomain "treemap-backend/internal/tree/domain"
	"treemap-backend/pkg/nocodb"
)

// PlantedTreesTable is the logical table name registered on the nocodb client.
const PlantedTreesTable = "Planted_Trees"

// PlantingLinks bundles the link-field ids of the Planted_Trees table.
type PlantingLinks struct {
	User     string
	Location string
	TreeInfo string
}

type plantingRepository struct {
	db    *nocodb.Client
	links PlantingLinks
}

// NewPlantingRepository creates a PlantingRepository over the Planted_Trees
// table and its three link fields.
func NewPlantingRepository(db *nocodb.Client, tableID string, links PlantingLinks) PlantingRepository {
	db.RegisterTable(PlantedTreesTable, tableID)
	return &plantingRepository{db: db, links: links}
}

func (r *plantingRepository) Create(ctx context.Context, planted *treedomain.PlantedTree) (*treedomain.PlantedTree, error) {
	created, err := nocodb.CreateOne(ctx, r.db, PlantedTreesTable, *planted)
	if err != nil {
		return nil, err
	}
	if created != nil && created.ID != nil {
		planted.ID = created.ID
	}
	return planted, nil
}

func (r *plantingRepository) LinkUser(ctx context.Context, plantedID string, userID any) error {
	return r.db.Link(ctx, PlantedTreesTable, r.links.User, plantedID, userID)
}

func (r *plantingRepository) LinkLocation(ctx context.Context, plantedID string, locationID any) error {
	return r.db.Link(ctx, PlantedTreesTable, r.links.Location, plantedID, locationID)
}

func (r *plantingRepository) LinkTreeInfo(ctx context.Context, plantedID string, treeInfoID any) error {
	return r.db.Link(ctx, PlantedTreesTable, r.links.TreeInfo, plantedID, treeInfoID)
}

func (r *plantingRepository) UnlinkUser(ctx context.Context, plantedID string, userID any) error {
	return r.db.Unlink(ctx, PlantedTreesTable, r.links.User, plantedID, userID)
}

func (r *plantingRepository) LinkedLocations(ctx context.Context, plantedID string) ([]treedomain.Location, error) {
	page, err := nocodb.ListLinked[treedomain.Location](ctx, r.db, PlantedTreesTable, r.links.Location, plantedID, nocodb.Query{})
	if err != nil {
		return nil, err
	}
	parseGeo(page.List)
	return page.List, nil
}
