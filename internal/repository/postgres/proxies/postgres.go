package proxies

import (
	"context"
	"errors"

	proxiesdomain "sponsorship-app-go/internal/domain/proxies"

	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List(ctx context.Context) ([]proxiesdomain.Proxy, error) {
	var items []proxiesdomain.Proxy
	if err := r.db.WithContext(ctx).Order("full_name asc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id uint) (*proxiesdomain.Proxy, error) {
	var proxy proxiesdomain.Proxy
	err := r.db.WithContext(ctx).First(&proxy, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, proxiesdomain.ErrProxyNotFound
	}
	if err != nil {
		return nil, err
	}
	return &proxy, nil
}

func (r *PostgresRepository) Create(ctx context.Context, proxy *proxiesdomain.Proxy) error {
	return r.db.WithContext(ctx).Create(proxy).Error
}

func (r *PostgresRepository) Update(ctx context.Context, proxy *proxiesdomain.Proxy) error {
	return r.db.WithContext(ctx).Save(proxy).Error
}
