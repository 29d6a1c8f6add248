package repository

import (
	"context"
	"fmt"
	"strings"

	treedomain "treemap-backend/internal/tree/domain"
	"treemap-backend/pkg/nocodb"
)

// TreeInfoTable is the logical table name registered on the nocodb client.
const TreeInfoTable = "treeInfo"

type treeRepository struct {
	db *nocodb.Client
}

// NewTreeRepository creates a TreeRepository over the TREE_INFO table.
func NewTreeRepository(db *nocodb.Client, tableID string) TreeRepository {
	db.RegisterTable(TreeInfoTable, tableID)
	return &treeRepository{db: db}
}

func (r *treeRepository) List(ctx context.Context, limit, offset int) (*nocodb.ListPage[treedomain.TreeInfo], error) {
	return nocodb.List[treedomain.TreeInfo](ctx, r.db, TreeInfoTable, nocodb.Query{Limit: limit, Offset: offset})
}

func (r *treeRepository) Get(ctx context.Context, id string) (*treedomain.TreeInfo, error) {
	return nocodb.Get[treedomain.TreeInfo](ctx, r.db, TreeInfoTable, id)
}

// Search builds a where clause from the non-empty criteria: contains matching
// for text fields, exact matching for the age.
func (r *treeRepository) Search(ctx context.Context, criteria treedomain.TreeSearch) (*nocodb.ListPage[treedomain.TreeInfo], error) {
	var conditions []string
	addLike := func(field, value string) {
		if value != "" {
			conditions = append(conditions, fmt.Sprintf("(%s,like,%%%s%%)", field, value))
		}
	}
	addLike("name", criteria.Name)
	addLike("species", criteria.Species)
	addLike("health_status", criteria.HealthStatus)
	addLike("location", criteria.Location)
	if criteria.Age > 0 {
		conditions = append(conditions, fmt.Sprintf("(age,eq,%d)", criteria.Age))
	}

	if len(conditions) == 0 {
		return r.List(ctx, 0, 0)
	}

	return nocodb.List[treedomain.TreeInfo](ctx, r.db, TreeInfoTable, nocodb.Query{
		Where: strings.Join(conditions, "~and"),
	})
}

func (r *treeRepository) ByHealthStatus(ctx context.Context, status string) (*nocodb.ListPage[treedomain.TreeInfo], error) {
	return nocodb.List[treedomain.TreeInfo](ctx, r.db, TreeInfoTable, nocodb.Query{
		Where: fmt.Sprintf("(health_status,eq,%s)", status),
	})
}

func (r *treeRepository) Create(ctx context.Context, tree *treedomain.TreeInfo) (*treedomain.TreeInfo, error) {
	created, err := nocodb.CreateOne(ctx, r.db, TreeInfoTable, *tree)
	if err != nil {
		return nil, err
	}
	if created != nil && created.ID != nil {
		tree.ID = created.ID
	}
	return tree, nil
}

func (r *treeRepository) Update(ctx context.Context, tree *treedomain.TreeInfo) (*treedomain.TreeInfo, error) {
	if tree.ID == nil {
		return nil, ErrMissingID
	}
	updated, err := nocodb.UpdateOne(ctx, r.db, TreeInfoTable, *tree)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return tree, nil
	}
	return updated, nil
}

func (r *treeRepository) Delete(ctx context.Context, id string) error {
	return r.db.Delete(ctx, TreeInfoTable, id)
}

func (r *treeRepository) Count(ctx context.Context) (int, error) {
	return r.db.Count(ctx, TreeInfoTable, nocodb.Query{})
}
