package user

import (
	"context"
	"time"
)

type Repository interface {
	List(ctx context.Context) ([]User, error)
	Get(ctx context.Context, id uint) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	Create(ctx context.Context, user *User) error
	SetApproved(ctx context.Context, id uint, approved bool) error
	SetLastLogin(ctx context.Context, id uint, at time.Time) error
	Count(ctx context.Context) (int64, error)
}
