package repository

import (
	"context"
	"fmt"
	"log"

	partnerdomain "treemap-backend/internal/partner/domain"
	"treemap-backend/pkg/nocodb"
)

// PartnerSponsorTable is the logical table name registered on the nocodb
// client.
const PartnerSponsorTable = "PARTNER_SPONSOR"

// PartnerRepository is the persistence boundary for PARTNER_SPONSOR records.
type PartnerRepository interface {
	ByType(ctx context.Context, t partnerdomain.Type, limit, offset int) (*nocodb.ListPage[partnerdomain.PartnerSponsor], error)
	// Logos returns the logo URLs of one record; failures yield an empty
	// slice.
	Logos(ctx context.Context, id string) []string
}

type partnerRepository struct {
	db *nocodb.Client
}

// NewPartnerRepository creates a PartnerRepository over the PARTNER_SPONSOR
// table.
func NewPartnerRepository(db *nocodb.Client, tableID string) PartnerRepository {
	db.RegisterTable(PartnerSponsorTable, tableID)
	return &partnerRepository{db: db}
}

func (r *partnerRepository) ByType(ctx context.Context, t partnerdomain.Type, limit, offset int) (*nocodb.ListPage[partnerdomain.PartnerSponsor], error) {
	return nocodb.List[partnerdomain.PartnerSponsor](ctx, r.db, PartnerSponsorTable, nocodb.Query{
		Where:  fmt.Sprintf("(type,eq,%s)", t),
		Limit:  limit,
		Offset: offset,
	})
}

func (r *partnerRepository) Logos(ctx context.Context, id string) []string {
	record, err := nocodb.Get[partnerdomain.PartnerSponsor](ctx, r.db, PartnerSponsorTable, id, "logo")
	if err != nil {
		log.Printf("[WARN] logos for partner/sponsor %s: %v", id, err)
		return []string{}
	}
	return record.LogoURLs()
}
