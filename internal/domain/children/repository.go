package children

import (
	"context"
	"time"

	"sponsorship-app-go/internal/domain/sponsors"
)

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error

	List(ctx context.Context, filter Filter, limit, offset int) ([]Child, error)
	ListAll(ctx context.Context, filter Filter) ([]Child, error)
	Count(ctx context.Context, filter Filter) (int64, error)
	Get(ctx context.Context, id uint) (*Child, error)
	Create(ctx context.Context, child *Child) error
	Update(ctx context.Context, child *Child) error
	Archive(ctx context.Context, id uint, at time.Time) error

	SchoolExists(ctx context.Context, schoolID uint) (bool, error)
	SchoolIDByName(ctx context.Context, name string) (uint, error)
	SponsorExists(ctx context.Context, sponsorID uint) (bool, error)
	CreateSponsor(ctx context.Context, sponsor *sponsors.Sponsor) error

	CreateSponsorship(ctx context.Context, sponsorship *sponsors.Sponsorship) error
	ActiveSponsorship(ctx context.Context, childID, sponsorID uint) (*sponsors.Sponsorship, error)
	EndSponsorship(ctx context.Context, sponsorshipID uint, endDate time.Time) error
	CountActiveSponsorships(ctx context.Context, childID uint) (int64, error)
	SetSponsoredFlag(ctx context.Context, childID uint, sponsored bool, at time.Time) error
}
