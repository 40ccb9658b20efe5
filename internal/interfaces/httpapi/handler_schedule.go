package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	jsoniter "github.com/json-iterator/go"

	"github.com/palabianco/basketstats/internal/usecase"
)

type saveMatchRequest struct {
	ID           string `json:"id"`
	LeagueID     string `json:"leagueId" validate:"required"`
	MatchNumber  string `json:"matchNumber" validate:"max=50"`
	Round        string `json:"round" validate:"omitempty,oneof=Andata Ritorno"`
	Date         string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Time         string `json:"time" validate:"max=20"`
	HomeTeamID   string `json:"homeTeamId" validate:"required"`
	AwayTeamID   string `json:"awayTeamId" validate:"required"`
	HomeScore    *int   `json:"homeScore"`
	AwayScore    *int   `json:"awayScore"`
	HomeQuarters []int  `json:"homeQuarters" validate:"max=6"`
	AwayQuarters []int  `json:"awayQuarters" validate:"max=6"`
	IsPlayed     bool   `json:"isPlayed"`
}

func (h *Handler) ListMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMatches")
	defer span.End()

	leagueID := strings.TrimSpace(r.URL.Query().Get("league_id"))
	matches, err := h.scheduleService.ListMatches(ctx, leagueID)
	if err != nil {
		h.logger.WarnContext(ctx, "list matches failed", "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]matchDTO, 0, len(matches))
	for _, m := range matches {
		items = append(items, matchToDTO(m))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMatch")
	defer span.End()

	matchID := r.PathValue("matchID")
	item, err := h.scheduleService.GetMatch(ctx, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "get match failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchToDTO(item))
}

func (h *Handler) CreateMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateMatch")
	defer span.End()

	h.saveMatch(w, r.WithContext(ctx), "")
}

func (h *Handler) UpdateMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateMatch")
	defer span.End()

	h.saveMatch(w, r.WithContext(ctx), strings.TrimSpace(r.PathValue("matchID")))
}

func (h *Handler) saveMatch(w http.ResponseWriter, r *http.Request, pathID string) {
	ctx := r.Context()

	var req saveMatchRequest
	decoder := jsoniter.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}

	if strings.TrimSpace(req.ID) == "" {
		req.ID = pathID
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if pathID != "" && strings.TrimSpace(req.ID) != pathID {
		writeError(ctx, w, fmt.Errorf("%w: match id mismatch between path and payload", usecase.ErrInvalidInput))
		return
	}

	item, err := h.scheduleService.SaveMatch(ctx, matchFromDTO(matchDTO{
		ID:           strings.TrimSpace(req.ID),
		LeagueID:     req.LeagueID,
		MatchNumber:  strings.TrimSpace(req.MatchNumber),
		Round:        req.Round,
		Date:         req.Date,
		Time:         req.Time,
		HomeTeamID:   req.HomeTeamID,
		AwayTeamID:   req.AwayTeamID,
		HomeScore:    req.HomeScore,
		AwayScore:    req.AwayScore,
		HomeQuarters: req.HomeQuarters,
		AwayQuarters: req.AwayQuarters,
		IsPlayed:     req.IsPlayed,
	}))
	if err != nil {
		h.logger.WarnContext(ctx, "save match failed", "match_id", req.ID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchToDTO(item))
}

func (h *Handler) DeleteMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteMatch")
	defer span.End()

	matchID := strings.TrimSpace(r.PathValue("matchID"))
	if err := h.scheduleService.DeleteMatch(ctx, matchID); err != nil {
		h.logger.WarnContext(ctx, "delete match failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "deleted"})
}
