package httpapi

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	jsoniter "github.com/json-iterator/go"

	"github.com/palabianco/basketstats/internal/usecase"
)

type recomputeScoresRequest struct {
	LeagueID   string `json:"leagueId"`
	MaxWorkers int    `json:"maxWorkers" validate:"gte=0,lte=16"`
	DryRun     bool   `json:"dryRun"`
}

// RunRecomputeScoresJob rebuilds match scores from stored stat lines. An
// empty body runs a full recompute with default workers.
func (h *Handler) RunRecomputeScoresJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunRecomputeScoresJob")
	defer span.End()

	var req recomputeScoresRequest
	decoder := jsoniter.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.recomputeService.RecomputeScores(ctx, usecase.RecomputeInput{
		LeagueID:   req.LeagueID,
		MaxWorkers: req.MaxWorkers,
		DryRun:     req.DryRun,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "recompute scores failed", "league_id", req.LeagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}
