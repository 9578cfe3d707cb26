package photos

import (
	"context"
	"time"
)

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error
	ListByChild(ctx context.Context, childID uint) ([]Photo, error)
	Get(ctx context.Context, id uint) (*Photo, error)
	Create(ctx context.Context, photo *Photo) error
	UpdateDescription(ctx context.Context, id uint, description *string) error
	Delete(ctx context.Context, id uint) error
	DemoteAll(ctx context.Context, childID uint) error
	Promote(ctx context.Context, id uint) error
	MostRecent(ctx context.Context, childID uint) (*Photo, error)
	ChildExists(ctx context.Context, childID uint) (bool, error)
	TouchChild(ctx context.Context, childID uint, at time.Time) error
}
