package httpapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/palabianco/basketstats/internal/domain/league"
	"github.com/palabianco/basketstats/internal/domain/match"
	"github.com/palabianco/basketstats/internal/domain/player"
	"github.com/palabianco/basketstats/internal/domain/statline"
	"github.com/palabianco/basketstats/internal/domain/team"
	"github.com/palabianco/basketstats/internal/platform/logging"
	"github.com/palabianco/basketstats/internal/usecase"
)

type Handler struct {
	leagueService    *usecase.LeagueService
	rosterService    *usecase.RosterService
	scheduleService  *usecase.ScheduleService
	importService    *usecase.ImportService
	reportService    *usecase.ReportService
	recomputeService *usecase.RecomputeService
	settingsService  *usecase.SettingsService
	logger           *logging.Logger
	validator        *validator.Validate
}

func NewHandler(
	leagueService *usecase.LeagueService,
	rosterService *usecase.RosterService,
	scheduleService *usecase.ScheduleService,
	importService *usecase.ImportService,
	reportService *usecase.ReportService,
	recomputeService *usecase.RecomputeService,
	settingsService *usecase.SettingsService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		leagueService:    leagueService,
		rosterService:    rosterService,
		scheduleService:  scheduleService,
		importService:    importService,
		reportService:    reportService,
		recomputeService: recomputeService,
		settingsService:  settingsService,
		logger:           logger,
		validator:        validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

type leagueDTO struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Season string `json:"season"`
}

type teamDTO struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	IsMain    bool     `json:"isMain"`
	Location  string   `json:"location"`
	LogoURL   string   `json:"logoUrl"`
	LeagueIDs []string `json:"leagueIds"`
}

type playerDTO struct {
	ID       string `json:"id"`
	TeamID   string `json:"teamId"`
	Number   int    `json:"number"`
	Name     string `json:"name"`
	PhotoURL string `json:"photoUrl"`
	Role     string `json:"role"`
}

type matchDTO struct {
	ID           string `json:"id"`
	LeagueID     string `json:"leagueId"`
	MatchNumber  string `json:"matchNumber"`
	Round        string `json:"round"`
	Date         string `json:"date"`
	Time         string `json:"time"`
	HomeTeamID   string `json:"homeTeamId"`
	AwayTeamID   string `json:"awayTeamId"`
	HomeScore    *int   `json:"homeScore"`
	AwayScore    *int   `json:"awayScore"`
	HomeQuarters []int  `json:"homeQuarters"`
	AwayQuarters []int  `json:"awayQuarters"`
	IsPlayed     bool   `json:"isPlayed"`
}

type statLineDTO struct {
	MatchID  string `json:"matchId"`
	PlayerID string `json:"playerId"`

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
}

func leagueToDTO(v league.League) leagueDTO {
	return leagueDTO{
		ID:     v.ID,
		Name:   v.Name,
		Season: v.Season,
	}
}

func teamToDTO(v team.Team) teamDTO {
	leagueIDs := v.LeagueIDs
	if leagueIDs == nil {
		leagueIDs = []string{}
	}
	return teamDTO{
		ID:        v.ID,
		Name:      v.Name,
		IsMain:    v.IsMain,
		Location:  v.Location,
		LogoURL:   v.LogoURL,
		LeagueIDs: leagueIDs,
	}
}

func playerToDTO(v player.Player) playerDTO {
	return playerDTO{
		ID:       v.ID,
		TeamID:   v.TeamID,
		Number:   v.Number,
		Name:     v.Name,
		PhotoURL: v.PhotoURL,
		Role:     v.Role,
	}
}

func matchToDTO(v match.Match) matchDTO {
	return matchDTO{
		ID:           v.ID,
		LeagueID:     v.LeagueID,
		MatchNumber:  v.MatchNumber,
		Round:        v.Round,
		Date:         v.Date,
		Time:         v.Time,
		HomeTeamID:   v.HomeTeamID,
		AwayTeamID:   v.AwayTeamID,
		HomeScore:    v.HomeScore,
		AwayScore:    v.AwayScore,
		HomeQuarters: v.HomeQuarters,
		AwayQuarters: v.AwayQuarters,
		IsPlayed:     v.IsPlayed,
	}
}

func matchFromDTO(v matchDTO) match.Match {
	return match.Match{
		ID:           v.ID,
		LeagueID:     v.LeagueID,
		MatchNumber:  v.MatchNumber,
		Round:        v.Round,
		Date:         v.Date,
		Time:         v.Time,
		HomeTeamID:   v.HomeTeamID,
		AwayTeamID:   v.AwayTeamID,
		HomeScore:    v.HomeScore,
		AwayScore:    v.AwayScore,
		HomeQuarters: v.HomeQuarters,
		AwayQuarters: v.AwayQuarters,
		IsPlayed:     v.IsPlayed,
	}
}

func statLineToDTO(v statline.Line) statLineDTO {
	return statLineDTO{
		MatchID:        v.MatchID,
		PlayerID:       v.PlayerID,
		MinutesPlayed:  v.MinutesPlayed,
		Points:         v.Points,
		TwoPtMade:      v.TwoPtMade,
		TwoPtAtt:       v.TwoPtAtt,
		ThreePtMade:    v.ThreePtMade,
		ThreePtAtt:     v.ThreePtAtt,
		FtMade:         v.FtMade,
		FtAtt:          v.FtAtt,
		ReboundsOff:    v.ReboundsOff,
		ReboundsDef:    v.ReboundsDef,
		Assists:        v.Assists,
		Turnovers:      v.Turnovers,
		Steals:         v.Steals,
		BlocksMade:     v.BlocksMade,
		BlocksReceived: v.BlocksReceived,
		FoulsCommitted: v.FoulsCommitted,
		FoulsDrawn:     v.FoulsDrawn,
		Valuation:      v.Valuation,
		PlusMinus:      v.PlusMinus,
	}
}

func statLineFromDTO(v statLineDTO) statline.Line {
	return statline.Line{
		MatchID:        v.MatchID,
		PlayerID:       v.PlayerID,
		MinutesPlayed:  v.MinutesPlayed,
		Points:         v.Points,
		TwoPtMade:      v.TwoPtMade,
		TwoPtAtt:       v.TwoPtAtt,
		ThreePtMade:    v.ThreePtMade,
		ThreePtAtt:     v.ThreePtAtt,
		FtMade:         v.FtMade,
		FtAtt:          v.FtAtt,
		ReboundsOff:    v.ReboundsOff,
		ReboundsDef:    v.ReboundsDef,
		Assists:        v.Assists,
		Turnovers:      v.Turnovers,
		Steals:         v.Steals,
		BlocksMade:     v.BlocksMade,
		BlocksReceived: v.BlocksReceived,
		FoulsCommitted: v.FoulsCommitted,
		FoulsDrawn:     v.FoulsDrawn,
		Valuation:      v.Valuation,
		PlusMinus:      v.PlusMinus,
	}
}

func statLinesToDTOs(lines []statline.Line) []statLineDTO {
	out := make([]statLineDTO, 0, len(lines))
	for _, l := range lines {
		out = append(out, statLineToDTO(l))
	}
	return out
}
