package photos

import (
	"context"
	"errors"
	"time"

	photosdomain "sponsorship-app-go/internal/domain/photos"

	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(photosdomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

func (r *PostgresRepository) ListByChild(ctx context.Context, childID uint) ([]photosdomain.Photo, error) {
	var items []photosdomain.Photo
	err := r.db.WithContext(ctx).
		Where("child_id = ?", childID).
		Order("uploaded_at desc").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id uint) (*photosdomain.Photo, error) {
	var photo photosdomain.Photo
	err := r.db.WithContext(ctx).First(&photo, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, photosdomain.ErrPhotoNotFound
	}
	if err != nil {
		return nil, err
	}
	return &photo, nil
}

func (r *PostgresRepository) Create(ctx context.Context, photo *photosdomain.Photo) error {
	return r.db.WithContext(ctx).Create(photo).Error
}

func (r *PostgresRepository) UpdateDescription(ctx context.Context, id uint, description *string) error {
	return r.db.WithContext(ctx).Model(&photosdomain.Photo{}).
		Where("id = ?", id).
		Update("description", description).Error
}

func (r *PostgresRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&photosdomain.Photo{}, "id = ?", id).Error
}

func (r *PostgresRepository) DemoteAll(ctx context.Context, childID uint) error {
	return r.db.WithContext(ctx).Model(&photosdomain.Photo{}).
		Where("child_id = ? AND is_profile", childID).
		Update("is_profile", false).Error
}

func (r *PostgresRepository) Promote(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&photosdomain.Photo{}).
		Where("id = ?", id).
		Update("is_profile", true).Error
}

func (r *PostgresRepository) MostRecent(ctx context.Context, childID uint) (*photosdomain.Photo, error) {
	var photo photosdomain.Photo
	err := r.db.WithContext(ctx).
		Where("child_id = ?", childID).
		Order("uploaded_at desc").
		First(&photo).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &photo, nil
}

func (r *PostgresRepository) ChildExists(ctx context.Context, childID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Table("children").Where("id = ?", childID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *PostgresRepository) TouchChild(ctx context.Context, childID uint, at time.Time) error {
	return r.db.WithContext(ctx).Table("children").
		Where("id = ?", childID).
		Update("last_profile_update", at).Error
}
