package proxies

import "context"

type Repository interface {
	List(ctx context.Context) ([]Proxy, error)
	Get(ctx context.Context, id uint) (*Proxy, error)
	Create(ctx context.Context, proxy *Proxy) error
	Update(ctx context.Context, proxy *Proxy) error
}
