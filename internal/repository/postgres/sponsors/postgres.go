package sponsors

import (
	"context"
	"errors"
	"strings"

	sponsorsdomain "sponsorship-app-go/internal/domain/sponsors"

	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func applyFilter(query *gorm.DB, filter sponsorsdomain.ListFilter) *gorm.DB {
	if search := strings.ToLower(strings.TrimSpace(filter.Search)); search != "" {
		query = query.Where("lower(sponsors.full_name) LIKE ?", "%"+search+"%")
	}

	switch {
	case filter.Proxy.None:
		query = query.Where("sponsors.proxy_id IS NULL")
	case filter.Proxy.ID != nil:
		query = query.Where("sponsors.proxy_id = ?", *filter.Proxy.ID)
	}

	if filter.HasSponsorship != nil {
		sub := "EXISTS (SELECT 1 FROM sponsorships WHERE sponsorships.sponsor_id = sponsors.id AND sponsorships.is_active)"
		if *filter.HasSponsorship {
			query = query.Where(sub)
		} else {
			query = query.Where("NOT " + sub)
		}
	}

	return query
}

func (r *PostgresRepository) List(ctx context.Context, filter sponsorsdomain.ListFilter, limit, offset int) ([]sponsorsdomain.Sponsor, error) {
	var items []sponsorsdomain.Sponsor
	query := applyFilter(r.db.WithContext(ctx).Model(&sponsorsdomain.Sponsor{}), filter)
	err := query.
		Preload("Proxy").
		Preload("Sponsorships", "is_active = ?", true).
		Order("sponsors.full_name asc, sponsors.id asc").
		Limit(limit).
		Offset(offset).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *PostgresRepository) Count(ctx context.Context, filter sponsorsdomain.ListFilter) (int64, error) {
	var count int64
	query := applyFilter(r.db.WithContext(ctx).Model(&sponsorsdomain.Sponsor{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id uint) (*sponsorsdomain.Sponsor, error) {
	var sponsor sponsorsdomain.Sponsor
	err := r.db.WithContext(ctx).
		Preload("Proxy").
		Preload("Sponsorships", "is_active = ?", true).
		First(&sponsor, "sponsors.id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, sponsorsdomain.ErrSponsorNotFound
	}
	if err != nil {
		return nil, err
	}
	return &sponsor, nil
}

func (r *PostgresRepository) Create(ctx context.Context, sponsor *sponsorsdomain.Sponsor) error {
	return r.db.WithContext(ctx).Create(sponsor).Error
}

func (r *PostgresRepository) Update(ctx context.Context, sponsor *sponsorsdomain.Sponsor) error {
	return r.db.WithContext(ctx).Omit("Proxy", "Sponsorships").Save(sponsor).Error
}

func (r *PostgresRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&sponsorsdomain.Sponsor{}, "id = ?", id).Error
}

func (r *PostgresRepository) ProxyExists(ctx context.Context, proxyID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Table("proxies").Where("id = ?", proxyID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *PostgresRepository) CountActiveSponsorships(ctx context.Context, sponsorID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&sponsorsdomain.Sponsorship{}).
		Where("sponsor_id = ? AND is_active", sponsorID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}
