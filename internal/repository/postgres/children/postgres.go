package children

import (
	"context"
	"errors"
	"strings"
	"time"

	childrendomain "sponsorship-app-go/internal/domain/children"
	sponsorsdomain "sponsorship-app-go/internal/domain/sponsors"

	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(childrendomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

// applyFilter builds the WHERE clause shared by Count, List and ListAll. The
// sponsor/proxy/status constraints are EXISTS subqueries on sponsorships so
// they compose with each other by plain AND.
func applyFilter(query *gorm.DB, filter childrendomain.Filter) *gorm.DB {
	query = query.Where("children.is_archived = ?", false)

	if search := strings.ToLower(strings.TrimSpace(filter.Search)); search != "" {
		term := "%" + search + "%"
		query = query.Where(
			"lower(children.first_name) LIKE ? OR lower(children.last_name) LIKE ? OR children.school_id IN (SELECT id FROM schools WHERE lower(name) LIKE ?)",
			term, term, term,
		)
	}

	if gender := strings.ToLower(strings.TrimSpace(filter.Gender)); gender != "" && gender != "all" {
		query = query.Where("lower(children.gender) = ?", gender)
	}

	if filter.SchoolID != nil {
		query = query.Where("children.school_id = ?", *filter.SchoolID)
	}

	switch {
	case filter.Sponsor.None:
		query = query.Where("NOT EXISTS (SELECT 1 FROM sponsorships WHERE sponsorships.child_id = children.id AND sponsorships.is_active)")
	case filter.Sponsor.ID != nil:
		query = query.Where(
			"EXISTS (SELECT 1 FROM sponsorships WHERE sponsorships.child_id = children.id AND sponsorships.is_active AND sponsorships.sponsor_id = ?)",
			*filter.Sponsor.ID,
		)
	}

	switch {
	case filter.Proxy.None:
		// Universal over ALL sponsorships, active or not; see ProxyFilter docs.
		query = query.Where(
			"NOT EXISTS (SELECT 1 FROM sponsorships JOIN sponsors ON sponsors.id = sponsorships.sponsor_id WHERE sponsorships.child_id = children.id AND sponsors.proxy_id IS NOT NULL)",
		)
	case filter.Proxy.Direct:
		query = query.Where(
			"EXISTS (SELECT 1 FROM sponsorships JOIN sponsors ON sponsors.id = sponsorships.sponsor_id WHERE sponsorships.child_id = children.id AND sponsorships.is_active AND sponsors.proxy_id IS NULL)",
		)
	case filter.Proxy.ID != nil:
		query = query.Where(
			"EXISTS (SELECT 1 FROM sponsorships JOIN sponsors ON sponsors.id = sponsorships.sponsor_id WHERE sponsorships.child_id = children.id AND sponsorships.is_active AND sponsors.proxy_id = ?)",
			*filter.Proxy.ID,
		)
	}

	switch filter.Status {
	case childrendomain.StatusSponsored:
		query = query.Where("EXISTS (SELECT 1 FROM sponsorships WHERE sponsorships.child_id = children.id AND sponsorships.is_active)")
	case childrendomain.StatusUnsponsored:
		query = query.Where("NOT EXISTS (SELECT 1 FROM sponsorships WHERE sponsorships.child_id = children.id AND sponsorships.is_active)")
	}

	return query
}

func withRelations(query *gorm.DB) *gorm.DB {
	return query.
		Preload("School").
		Preload("Sponsorships", "is_active = ?", true).
		Preload("Sponsorships.Sponsor").
		Preload("Sponsorships.Sponsor.Proxy")
}

func (r *PostgresRepository) List(ctx context.Context, filter childrendomain.Filter, limit, offset int) ([]childrendomain.Child, error) {
	var items []childrendomain.Child
	query := applyFilter(r.db.WithContext(ctx).Model(&childrendomain.Child{}), filter)
	err := withRelations(query).
		Order("children.last_name asc, children.first_name asc, children.id asc").
		Limit(limit).
		Offset(offset).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *PostgresRepository) ListAll(ctx context.Context, filter childrendomain.Filter) ([]childrendomain.Child, error) {
	var items []childrendomain.Child
	query := applyFilter(r.db.WithContext(ctx).Model(&childrendomain.Child{}), filter)
	if err := query.Preload("School").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *PostgresRepository) Count(ctx context.Context, filter childrendomain.Filter) (int64, error) {
	var count int64
	query := applyFilter(r.db.WithContext(ctx).Model(&childrendomain.Child{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id uint) (*childrendomain.Child, error) {
	var child childrendomain.Child
	err := withRelations(r.db.WithContext(ctx)).
		Preload("Photos", func(db *gorm.DB) *gorm.DB {
			return db.Order("photos.uploaded_at desc")
		}).
		First(&child, "children.id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, childrendomain.ErrChildNotFound
	}
	if err != nil {
		return nil, err
	}
	return &child, nil
}

func (r *PostgresRepository) Create(ctx context.Context, child *childrendomain.Child) error {
	return r.db.WithContext(ctx).Create(child).Error
}

func (r *PostgresRepository) Update(ctx context.Context, child *childrendomain.Child) error {
	return r.db.WithContext(ctx).Save(child).Error
}

func (r *PostgresRepository) Archive(ctx context.Context, id uint, at time.Time) error {
	return r.db.WithContext(ctx).Model(&childrendomain.Child{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_archived": true,
			"archived_at": at,
		}).Error
}

func (r *PostgresRepository) SchoolExists(ctx context.Context, schoolID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Table("schools").Where("id = ?", schoolID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *PostgresRepository) SchoolIDByName(ctx context.Context, name string) (uint, error) {
	var id uint
	err := r.db.WithContext(ctx).Table("schools").
		Select("id").
		Where("lower(name) = ?", strings.ToLower(name)).
		Limit(1).
		Scan(&id).Error
	if err != nil {
		return 0, err
	}
	if id == 0 {
		return 0, childrendomain.ErrSchoolNotFound
	}
	return id, nil
}

func (r *PostgresRepository) SponsorExists(ctx context.Context, sponsorID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Table("sponsors").Where("id = ?", sponsorID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *PostgresRepository) CreateSponsor(ctx context.Context, sponsor *sponsorsdomain.Sponsor) error {
	return r.db.WithContext(ctx).Create(sponsor).Error
}

func (r *PostgresRepository) CreateSponsorship(ctx context.Context, sponsorship *sponsorsdomain.Sponsorship) error {
	return r.db.WithContext(ctx).Create(sponsorship).Error
}

func (r *PostgresRepository) ActiveSponsorship(ctx context.Context, childID, sponsorID uint) (*sponsorsdomain.Sponsorship, error) {
	var sponsorship sponsorsdomain.Sponsorship
	err := r.db.WithContext(ctx).
		Preload("Sponsor").
		Preload("Sponsor.Proxy").
		Where("child_id = ? AND sponsor_id = ? AND is_active", childID, sponsorID).
		First(&sponsorship).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sponsorship, nil
}

func (r *PostgresRepository) EndSponsorship(ctx context.Context, sponsorshipID uint, endDate time.Time) error {
	return r.db.WithContext(ctx).Model(&sponsorsdomain.Sponsorship{}).
		Where("id = ?", sponsorshipID).
		Updates(map[string]interface{}{
			"is_active": false,
			"end_date":  endDate,
		}).Error
}

func (r *PostgresRepository) CountActiveSponsorships(ctx context.Context, childID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&sponsorsdomain.Sponsorship{}).
		Where("child_id = ? AND is_active", childID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *PostgresRepository) SetSponsoredFlag(ctx context.Context, childID uint, sponsored bool, at time.Time) error {
	return r.db.WithContext(ctx).Model(&childrendomain.Child{}).
		Where("id = ?", childID).
		Updates(map[string]interface{}{
			"is_sponsored":        sponsored,
			"last_profile_update": at,
		}).Error
}
