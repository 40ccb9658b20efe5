package match

import "context"

type Repository interface {
	List(ctx context.Context) ([]Match, error)
	ListByLeague(ctx context.Context, leagueID string) ([]Match, error)
	ListByTeam(ctx context.Context, teamID string) ([]Match, error)
	GetByID(ctx context.Context, id string) (Match, bool, error)
	Upsert(ctx context.Context, m Match) error
	Delete(ctx context.Context, id string) error
}
