package schools

import "context"

type Repository interface {
	List(ctx context.Context) ([]School, error)
	Get(ctx context.Context, id uint) (*School, error)
	Create(ctx context.Context, school *School) error
	Update(ctx context.Context, school *School) error
	Delete(ctx context.Context, id uint) error
	IsNameTaken(ctx context.Context, name string, excludeID uint) (bool, error)
	CountChildren(ctx context.Context, schoolID uint) (int64, error)
}
