package schools

import (
	"context"
	"errors"
	"strings"

	schoolsdomain "sponsorship-app-go/internal/domain/schools"

	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List(ctx context.Context) ([]schoolsdomain.School, error) {
	var items []schoolsdomain.School
	if err := r.db.WithContext(ctx).Order("name asc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id uint) (*schoolsdomain.School, error) {
	var school schoolsdomain.School
	err := r.db.WithContext(ctx).First(&school, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, schoolsdomain.ErrSchoolNotFound
	}
	if err != nil {
		return nil, err
	}
	return &school, nil
}

func (r *PostgresRepository) Create(ctx context.Context, school *schoolsdomain.School) error {
	return r.db.WithContext(ctx).Create(school).Error
}

func (r *PostgresRepository) Update(ctx context.Context, school *schoolsdomain.School) error {
	return r.db.WithContext(ctx).Save(school).Error
}

func (r *PostgresRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&schoolsdomain.School{}, "id = ?", id).Error
}

func (r *PostgresRepository) IsNameTaken(ctx context.Context, name string, excludeID uint) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&schoolsdomain.School{}).
		Where("lower(name) = ?", strings.ToLower(name))
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *PostgresRepository) CountChildren(ctx context.Context, schoolID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Table("children").Where("school_id = ?", schoolID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
