package sponsors

import "context"

type Repository interface {
	List(ctx context.Context, filter ListFilter, limit, offset int) ([]Sponsor, error)
	Count(ctx context.Context, filter ListFilter) (int64, error)
	Get(ctx context.Context, id uint) (*Sponsor, error)
	Create(ctx context.Context, sponsor *Sponsor) error
	Update(ctx context.Context, sponsor *Sponsor) error
	Delete(ctx context.Context, id uint) error
	ProxyExists(ctx context.Context, proxyID uint) (bool, error)
	CountActiveSponsorships(ctx context.Context, sponsorID uint) (int64, error)
}
