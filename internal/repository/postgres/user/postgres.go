package user

import (
	"context"
	"errors"
	"time"

	userdomain "sponsorship-app-go/internal/domain/user"

	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List(ctx context.Context) ([]userdomain.User, error) {
	var items []userdomain.User
	if err := r.db.WithContext(ctx).Order("username asc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id uint) (*userdomain.User, error) {
	var account userdomain.User
	err := r.db.WithContext(ctx).First(&account, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, userdomain.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *PostgresRepository) GetByUsername(ctx context.Context, username string) (*userdomain.User, error) {
	var account userdomain.User
	err := r.db.WithContext(ctx).First(&account, "username = ?", username).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, userdomain.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *PostgresRepository) Create(ctx context.Context, account *userdomain.User) error {
	return r.db.WithContext(ctx).Create(account).Error
}

func (r *PostgresRepository) SetApproved(ctx context.Context, id uint, approved bool) error {
	return r.db.WithContext(ctx).Model(&userdomain.User{}).
		Where("id = ?", id).
		Update("is_approved", approved).Error
}

func (r *PostgresRepository) SetLastLogin(ctx context.Context, id uint, at time.Time) error {
	return r.db.WithContext(ctx).Model(&userdomain.User{}).
		Where("id = ?", id).
		Update("last_login_at", at).Error
}

func (r *PostgresRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&userdomain.User{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
