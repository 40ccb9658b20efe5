package league

import "context"

type Repository interface {
	List(ctx context.Context) ([]League, error)
	GetByID(ctx context.Context, id string) (League, bool, error)
	Upsert(ctx context.Context, item League) error
	Delete(ctx context.Context, id string) error
}
