package statline

import "context"

type Repository interface {
	ListByMatch(ctx context.Context, matchID string) ([]Line, error)
	ListByMatches(ctx context.Context, matchIDs []string) ([]Line, error)
	ListByPlayer(ctx context.Context, playerID string) ([]Line, error)
	// ReplaceForMatch removes every stored line for the match and inserts
	// the given set. The caller sees it as one operation; the store offers
	// no transaction, so a concurrent reader may observe the gap.
	ReplaceForMatch(ctx context.Context, matchID string, lines []Line) error
	DeleteByMatch(ctx context.Context, matchID string) error
	DeleteByPlayer(ctx context.Context, playerID string) error
}
