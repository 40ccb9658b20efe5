package team

import "context"

type Repository interface {
	List(ctx context.Context) ([]Team, error)
	GetByID(ctx context.Context, id string) (Team, bool, error)
	GetMain(ctx context.Context) (Team, bool, error)
	Upsert(ctx context.Context, item Team) error
	// UnsetMainExcept clears the IsMain flag on every team other than keepID,
	// preserving the single-main-team invariant.
	UnsetMainExcept(ctx context.Context, keepID string) error
	Delete(ctx context.Context, id string) error
}
