package postgres

import "time"

type statLineTableModel struct {
	ID       int64  `db:"id"`
	MatchID  string `db:"match_id"`
	PlayerID string `db:"player_id"`

	MinutesPlayed float64 `db:"minutes_played"`

	Points      int `db:"points"`
	TwoPtMade   int `db:"two_pt_made"`
	TwoPtAtt    int `db:"two_pt_att"`
	ThreePtMade int `db:"three_pt_made"`
	ThreePtAtt  int `db:"three_pt_att"`
	FtMade      int `db:"ft_made"`
	FtAtt       int `db:"ft_att"`

	ReboundsOff int `db:"rebounds_off"`
	ReboundsDef int `db:"rebounds_def"`

	Assists        int `db:"assists"`
	Turnovers      int `db:"turnovers"`
	Steals         int `db:"steals"`
	BlocksMade     int `db:"blocks_made"`
	BlocksReceived int `db:"blocks_received"`
	FoulsCommitted int `db:"fouls_committed"`
	FoulsDrawn     int `db:"fouls_drawn"`

	Valuation float64 `db:"valuation"`
	PlusMinus float64 `db:"plus_minus"`

	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt time.Time  `db:"updated_at"`
	DeletedAt *time.Time `db:"deleted_at"`
}

type statLineInsertModel struct {
	MatchID  string `db:"match_id"`
	PlayerID string `db:"player_id"`

	MinutesPlayed float64 `db:"minutes_played"`

	Points      int `db:"points"`
	TwoPtMade   int `db:"two_pt_made"`
	TwoPtAtt    int `db:"two_pt_att"`
	ThreePtMade int `db:"three_pt_made"`
	ThreePtAtt  int `db:"three_pt_att"`
	FtMade      int `db:"ft_made"`
	FtAtt       int `db:"ft_att"`

	ReboundsOff int `db:"rebounds_off"`
	ReboundsDef int `db:"rebounds_def"`

	Assists        int `db:"assists"`
	Turnovers      int `db:"turnovers"`
	Steals         int `db:"steals"`
	BlocksMade     int `db:"blocks_made"`
	BlocksReceived int `db:"blocks_received"`
	FoulsCommitted int `db:"fouls_committed"`
	FoulsDrawn     int `db:"fouls_drawn"`

	Valuation float64 `db:"valuation"`
	PlusMinus float64 `db:"plus_minus"`
}

