package httpapi

import (
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"strings"

	jsoniter "github.com/json-iterator/go"

	"github.com/palabianco/basketstats/internal/domain/match"
	"github.com/palabianco/basketstats/internal/domain/player"
	"github.com/palabianco/basketstats/internal/domain/statline"
	"github.com/palabianco/basketstats/internal/usecase"
)

// maxScoreSheetUploadBytes caps score sheet photo uploads.
const maxScoreSheetUploadBytes = 8 << 20

type csvImportRequest struct {
	CSV string `json:"csv" validate:"required"`
}

type imageImportRequest struct {
	ImageBase64 string `json:"imageBase64" validate:"required"`
}

type scoreTotalsDTO struct {
	MainPoints       int   `json:"mainPoints"`
	MainQuarters     []int `json:"mainQuarters"`
	OpponentPoints   int   `json:"opponentPoints"`
	OpponentQuarters []int `json:"opponentQuarters"`
}

type importPreviewDTO struct {
	MatchID              string         `json:"matchId"`
	Lines                []statLineDTO  `json:"lines"`
	Score                scoreTotalsDTO `json:"score"`
	HasExplicitScore     bool           `json:"hasExplicitScore"`
	PlayersToMaterialize []playerDTO    `json:"playersToMaterialize"`
	SkippedNumbers       []int          `json:"skippedNumbers"`
}

func importPreviewToDTO(preview usecase.ImportPreview) importPreviewDTO {
	materialize := make([]playerDTO, 0, len(preview.PlayersToMaterialize))
	for _, p := range preview.PlayersToMaterialize {
		materialize = append(materialize, playerToDTO(p))
	}

	skipped := preview.SkippedNumbers
	if skipped == nil {
		skipped = []int{}
	}

	return importPreviewDTO{
		MatchID: preview.MatchID,
		Lines:   statLinesToDTOs(preview.Lines),
		Score: scoreTotalsDTO{
			MainPoints:       preview.Score.MainPoints,
			MainQuarters:     preview.Score.MainQuarters,
			OpponentPoints:   preview.Score.OpponentPoints,
			OpponentQuarters: preview.Score.OpponentQuarters,
		},
		HasExplicitScore:     preview.HasExplicitScore,
		PlayersToMaterialize: materialize,
		SkippedNumbers:       skipped,
	}
}

func importPreviewFromDTO(dto importPreviewDTO) usecase.ImportPreview {
	lines := make([]statline.Line, 0, len(dto.Lines))
	for _, l := range dto.Lines {
		lines = append(lines, statLineFromDTO(l))
	}

	materialize := make([]player.Player, 0, len(dto.PlayersToMaterialize))
	for _, p := range dto.PlayersToMaterialize {
		materialize = append(materialize, player.Player{
			ID:       p.ID,
			TeamID:   p.TeamID,
			Number:   p.Number,
			Name:     p.Name,
			PhotoURL: p.PhotoURL,
			Role:     p.Role,
		})
	}

	return usecase.ImportPreview{
		MatchID: dto.MatchID,
		Lines:   lines,
		Score: match.Totals{
			MainPoints:       dto.Score.MainPoints,
			MainQuarters:     dto.Score.MainQuarters,
			OpponentPoints:   dto.Score.OpponentPoints,
			OpponentQuarters: dto.Score.OpponentQuarters,
		},
		HasExplicitScore:     dto.HasExplicitScore,
		PlayersToMaterialize: materialize,
		SkippedNumbers:       dto.SkippedNumbers,
	}
}

func (h *Handler) PreviewCSVImport(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.PreviewCSVImport")
	defer span.End()

	matchID := strings.TrimSpace(r.PathValue("matchID"))

	var req csvImportRequest
	decoder := jsoniter.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	preview, err := h.importService.PreviewCSV(ctx, matchID, req.CSV)
	if err != nil {
		h.logger.WarnContext(ctx, "csv import preview failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, importPreviewToDTO(preview))
}

func (h *Handler) PreviewImageImport(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.PreviewImageImport")
	defer span.End()

	matchID := strings.TrimSpace(r.PathValue("matchID"))

	image, err := h.readScoreSheetImage(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	preview, err := h.importService.PreviewImage(ctx, matchID, image)
	if err != nil {
		h.logger.WarnContext(ctx, "image import preview failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, importPreviewToDTO(preview))
}

// readScoreSheetImage accepts either a multipart upload with an "image" part
// or a JSON body carrying a base64-encoded photo.
func (h *Handler) readScoreSheetImage(r *http.Request) ([]byte, error) {
	r.Body = http.MaxBytesReader(nil, r.Body, maxScoreSheetUploadBytes)

	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "multipart/form-data") {
		if err := r.ParseMultipartForm(maxScoreSheetUploadBytes); err != nil {
			return nil, fmt.Errorf("%w: invalid multipart payload: %v", usecase.ErrInvalidInput, err)
		}
		file, _, err := r.FormFile("image")
		if err != nil {
			return nil, fmt.Errorf("%w: missing image part: %v", usecase.ErrInvalidInput, err)
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			return nil, fmt.Errorf("%w: read image part: %v", usecase.ErrInvalidInput, err)
		}
		return data, nil
	}

	var req imageImportRequest
	decoder := jsoniter.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		return nil, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	if err := h.validateRequest(r.Context(), req); err != nil {
		return nil, err
	}

	data, err := base64.StdEncoding.DecodeString(req.ImageBase64)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid base64 image: %v", usecase.ErrInvalidInput, err)
	}

	return data, nil
}

func (h *Handler) CommitImport(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CommitImport")
	defer span.End()

	matchID := strings.TrimSpace(r.PathValue("matchID"))

	var req importPreviewDTO
	decoder := jsoniter.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}

	if strings.TrimSpace(req.MatchID) == "" {
		req.MatchID = matchID
	}
	if strings.TrimSpace(req.MatchID) != matchID {
		writeError(ctx, w, fmt.Errorf("%w: match id mismatch between path and payload", usecase.ErrInvalidInput))
		return
	}

	if err := h.importService.Commit(ctx, importPreviewFromDTO(req)); err != nil {
		h.logger.WarnContext(ctx, "import commit failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "imported"})
}
