package player

import "context"

type Repository interface {
	List(ctx context.Context) ([]Player, error)
	ListByTeam(ctx context.Context, teamID string) ([]Player, error)
	GetByID(ctx context.Context, id string) (Player, bool, error)
	GetByTeamAndNumber(ctx context.Context, teamID string, number int) (Player, bool, error)
	Upsert(ctx context.Context, item Player) error
	Delete(ctx context.Context, id string) error
}
