package usecase

import "context"

// VisionRosterEntry is the roster context handed to the vision service so it
// can key extracted rows by canonical player ID.
type VisionRosterEntry struct {
	PlayerID string
	Number   int
	Name     string
}

// VisionStatExtract is one best-effort stat row returned by the vision
// service. Only PlayerID and Points are guaranteed; everything else defaults
// to zero when the sheet did not show it.
type VisionStatExtract struct {
	PlayerID       string  `json:"playerId"`
	Points         int     `json:"points"`
	Minutes        string  `json:"minutes"`
	TwoPtMade      int     `json:"twoPtMade"`
	TwoPtAtt       int     `json:"twoPtAtt"`
	ThreePtMade    int     `json:"threePtMade"`
	ThreePtAtt     int     `json:"threePtAtt"`
	FtMade         int     `json:"ftMade"`
	FtAtt          int     `json:"ftAtt"`
	ReboundsOff    int     `json:"rebOff"`
	ReboundsDef    int     `json:"rebDef"`
	Assists        int     `json:"assists"`
	Turnovers      int     `json:"turnovers"`
	Steals         int     `json:"steals"`
	BlocksMade     int     `json:"blocksMade"`
	FoulsCommitted int     `json:"foulsCommitted"`
	Valuation      float64 `json:"valuation"`
	PlusMinus      float64 `json:"plusMinus"`
}

// ScoreSheetAnalyzer is the vision-service port used by the import preview.
type ScoreSheetAnalyzer interface {
	AnalyzeScoreSheet(ctx context.Context, imageJPEG []byte, roster []VisionRosterEntry) ([]VisionStatExtract, error)
}
