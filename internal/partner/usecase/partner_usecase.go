package usecase

import (
	"context"

	partnerdomain "treemap-backend/internal/partner/domain"
	"treemap-backend/internal/partner/repository"
	"treemap-backend/pkg/nocodb"
)

// PartnerUsecase exposes the partner and sponsor listings.
type PartnerUsecase interface {
	Partners(ctx context.Context, limit, offset int) (*nocodb.ListPage[partnerdomain.PartnerSponsor], error)
	Sponsors(ctx context.Context, limit, offset int) (*nocodb.ListPage[partnerdomain.PartnerSponsor], error)
	Logos(ctx context.Context, id string) []string
}

type partnerUsecase struct {
	partners repository.PartnerRepository
}

// NewPartnerUsecase creates a new instance of partnerUsecase.
func NewPartnerUsecase(partners repository.PartnerRepository) PartnerUsecase {
	return &partnerUsecase{partners: partners}
}

func (u *partnerUsecase) Partners(ctx context.Context, limit, offset int) (*nocodb.ListPage[partnerdomain.PartnerSponsor], error) {
	return u.partners.ByType(ctx, partnerdomain.TypePartner, limit, offset)
}

func (u *partnerUsecase) Sponsors(ctx context.Context, limit, offset int) (*nocodb.ListPage[partnerdomain.PartnerSponsor], error) {
	return u.partners.ByType(ctx, partnerdomain.TypeSponsor, limit, offset)
}

func (u *partnerUsecase) Logos(ctx context.Context, id string) []string {
	return u.partners.Logos(ctx, id)
}
