// Package scoutcsv parses the semicolon-delimited box score export produced
// by the external scouting tool. The export has no negotiable schema: fields
// live at fixed column positions, numbers use the European decimal comma and
// percentages carry a trailing %. The layout below is the whole contract.
package scoutcsv

// Layout maps canonical stat fields to their column index in the export.
// Indices are zero-based positions within a semicolon-split row.
type Layout struct {
	Number int

	TwoPtMade   int
	TwoPtAtt    int
	ThreePtMade int
	ThreePtAtt  int
	FtMade      int
	FtAtt       int
	Points      int

	ReboundsOff int
	ReboundsDef int

	Assists        int
	Turnovers      int
	Steals         int
	BlocksMade     int
	BlocksReceived int
	FoulsCommitted int
	FoulsDrawn     int

	Minutes   int
	Valuation int
	PlusMinus int

	// QuarterFirst..QuarterLast span Q1-Q4 then up to three overtimes.
	QuarterFirst int
	QuarterLast  int
}

// DefaultLayout matches the scouting tool's current export format.
var DefaultLayout = Layout{
	Number: 1,

	TwoPtMade:   2,
	TwoPtAtt:    3,
	ThreePtMade: 5,
	ThreePtAtt:  6,
	FtMade:      12,
	FtAtt:       13,
	Points:      15,

	ReboundsOff: 22,
	ReboundsDef: 23,

	Assists:        25,
	Turnovers:      26,
	Steals:         30,
	BlocksMade:     31,
	BlocksReceived: 32,
	FoulsCommitted: 35,
	FoulsDrawn:     36,

	Minutes:   40,
	Valuation: 41,
	PlusMinus: 42,

	QuarterFirst: 45,
	QuarterLast:  51,
}
