package httpapi

import (
	"net/http"
	"strings"

	"github.com/palabianco/basketstats/internal/domain/statline"
	"github.com/palabianco/basketstats/internal/usecase"
)

type boxScoreRowDTO struct {
	Player playerDTO   `json:"player"`
	Line   statLineDTO `json:"line"`
}

type boxScoreDTO struct {
	Match      matchDTO         `json:"match"`
	League     leagueDTO        `json:"league"`
	HomeTeam   teamDTO          `json:"homeTeam"`
	AwayTeam   teamDTO          `json:"awayTeam"`
	ViewTeamID string           `json:"viewTeamId"`
	Rows       []boxScoreRowDTO `json:"rows"`
	Totals     statLineDTO      `json:"totals"`
}

type playerTotalsDTO struct {
	PlayerID string `json:"playerId"`
	Games    int    `json:"games"`

	MinutesPlayed float64 `json:"minutesPlayed"`

	Points      int `json:"points"`
	TwoPtMade   int `json:"twoPtMade"`
	TwoPtAtt    int `json:"twoPtAtt"`
	ThreePtMade int `json:"threePtMade"`
	ThreePtAtt  int `json:"threePtAtt"`
	FtMade      int `json:"ftMade"`
	FtAtt       int `json:"ftAtt"`

	ReboundsOff int `json:"rebOff"`
	ReboundsDef int `json:"rebDef"`

	Assists        int `json:"assists"`
	Turnovers      int `json:"turnovers"`
	Steals         int `json:"steals"`
	BlocksMade     int `json:"blocksMade"`
	BlocksReceived int `json:"blocksReceived"`
	FoulsCommitted int `json:"foulsCommitted"`
	FoulsDrawn     int `json:"foulsDrawn"`

	Valuation float64 `json:"valuation"`
	PlusMinus float64 `json:"plusMinus"`

	TwoPtPct      string `json:"twoPtPct"`
	ThreePtPct    string `json:"threePtPct"`
	FtPct         string `json:"ftPct"`
	FieldGoalPct  string `json:"fieldGoalPct"`
	PointsPerGame string `json:"pointsPerGame"`
}

type seasonPlayerRowDTO struct {
	Player playerDTO       `json:"player"`
	Totals playerTotalsDTO `json:"totals"`
}

type seasonReportDTO struct {
	Team     teamDTO `json:"team"`
	LeagueID string  `json:"leagueId"`

	Matches []matchDTO           `json:"matches"`
	Players []seasonPlayerRowDTO `json:"players"`
	Total   playerTotalsDTO      `json:"total"`

	Wins            int   `json:"wins"`
	Losses          int   `json:"losses"`
	PointsFor       int   `json:"pointsFor"`
	PointsAgainst   int   `json:"pointsAgainst"`
	QuartersFor     []int `json:"quartersFor"`
	QuartersAgainst []int `json:"quartersAgainst"`
}

func totalsToDTO(t statline.Totals) playerTotalsDTO {
	return playerTotalsDTO{
		PlayerID:       t.PlayerID,
		Games:          t.Games,
		MinutesPlayed:  t.MinutesPlayed,
		Points:         t.Points,
		TwoPtMade:      t.TwoPtMade,
		TwoPtAtt:       t.TwoPtAtt,
		ThreePtMade:    t.ThreePtMade,
		ThreePtAtt:     t.ThreePtAtt,
		FtMade:         t.FtMade,
		FtAtt:          t.FtAtt,
		ReboundsOff:    t.ReboundsOff,
		ReboundsDef:    t.ReboundsDef,
		Assists:        t.Assists,
		Turnovers:      t.Turnovers,
		Steals:         t.Steals,
		BlocksMade:     t.BlocksMade,
		BlocksReceived: t.BlocksReceived,
		FoulsCommitted: t.FoulsCommitted,
		FoulsDrawn:     t.FoulsDrawn,
		Valuation:      t.Valuation,
		PlusMinus:      t.PlusMinus,
		TwoPtPct:       statline.FormatPercentage(t.TwoPtMade, t.TwoPtAtt),
		ThreePtPct:     statline.FormatPercentage(t.ThreePtMade, t.ThreePtAtt),
		FtPct:          statline.FormatPercentage(t.FtMade, t.FtAtt),
		FieldGoalPct:   statline.FormatPercentage(t.TwoPtMade+t.ThreePtMade, t.TwoPtAtt+t.ThreePtAtt),
		PointsPerGame:  statline.FormatPerGame(float64(t.Points), t.Games),
	}
}

func boxScoreToDTO(b usecase.BoxScore) boxScoreDTO {
	rows := make([]boxScoreRowDTO, 0, len(b.Rows))
	for _, row := range b.Rows {
		rows = append(rows, boxScoreRowDTO{
			Player: playerToDTO(row.Player),
			Line:   statLineToDTO(row.Line),
		})
	}

	return boxScoreDTO{
		Match:      matchToDTO(b.Match),
		League:     leagueToDTO(b.League),
		HomeTeam:   teamToDTO(b.HomeTeam),
		AwayTeam:   teamToDTO(b.AwayTeam),
		ViewTeamID: b.ViewTeamID,
		Rows:       rows,
		Totals:     statLineToDTO(b.Totals),
	}
}

func seasonReportToDTO(rep usecase.SeasonReport) seasonReportDTO {
	matches := make([]matchDTO, 0, len(rep.Matches))
	for _, m := range rep.Matches {
		matches = append(matches, matchToDTO(m))
	}

	players := make([]seasonPlayerRowDTO, 0, len(rep.Players))
	for _, row := range rep.Players {
		players = append(players, seasonPlayerRowDTO{
			Player: playerToDTO(row.Player),
			Totals: totalsToDTO(row.Totals),
		})
	}

	return seasonReportDTO{
		Team:            teamToDTO(rep.Team),
		LeagueID:        rep.LeagueID,
		Matches:         matches,
		Players:         players,
		Total:           totalsToDTO(rep.Total),
		Wins:            rep.Wins,
		Losses:          rep.Losses,
		PointsFor:       rep.PointsFor,
		PointsAgainst:   rep.PointsAgainst,
		QuartersFor:     rep.QuartersFor,
		QuartersAgainst: rep.QuartersAgainst,
	}
}

func (h *Handler) GetBoxScore(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetBoxScore")
	defer span.End()

	matchID := strings.TrimSpace(r.PathValue("matchID"))
	viewTeamID := strings.TrimSpace(r.URL.Query().Get("team_id"))
	if viewTeamID == "" {
		mainTeam, err := h.rosterService.MainTeam(ctx)
		if err != nil {
			writeError(ctx, w, err)
			return
		}
		viewTeamID = mainTeam.ID
	}

	report, err := h.reportService.BoxScore(ctx, matchID, viewTeamID)
	if err != nil {
		h.logger.WarnContext(ctx, "box score failed", "match_id", matchID, "team_id", viewTeamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, boxScoreToDTO(report))
}

func (h *Handler) GetSeasonReport(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSeasonReport")
	defer span.End()

	teamID := strings.TrimSpace(r.PathValue("teamID"))
	leagueID := strings.TrimSpace(r.URL.Query().Get("league_id"))

	report, err := h.reportService.SeasonReport(ctx, teamID, leagueID)
	if err != nil {
		h.logger.WarnContext(ctx, "season report failed", "team_id", teamID, "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, seasonReportToDTO(report))
}
