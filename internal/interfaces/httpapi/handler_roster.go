package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	jsoniter "github.com/json-iterator/go"

	"github.com/palabianco/basketstats/internal/domain/player"
	"github.com/palabianco/basketstats/internal/domain/team"
	"github.com/palabianco/basketstats/internal/usecase"
)

type saveTeamRequest struct {
	ID        string   `json:"id"`
	Name      string   `json:"name" validate:"required,max=200"`
	IsMain    bool     `json:"isMain"`
	Location  string   `json:"location" validate:"max=200"`
	LogoURL   string   `json:"logoUrl" validate:"omitempty,url"`
	LeagueIDs []string `json:"leagueIds" validate:"dive,required"`
}

type savePlayerRequest struct {
	ID       string `json:"id"`
	TeamID   string `json:"teamId" validate:"required"`
	Number   int    `json:"number" validate:"gte=0"`
	Name     string `json:"name" validate:"required,max=200"`
	PhotoURL string `json:"photoUrl" validate:"omitempty,url"`
	Role     string `json:"role" validate:"max=50"`
}

func (h *Handler) ListTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeams")
	defer span.End()

	teams, err := h.rosterService.ListTeams(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list teams failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]teamDTO, 0, len(teams))
	for _, t := range teams {
		items = append(items, teamToDTO(t))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetMainTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMainTeam")
	defer span.End()

	item, err := h.rosterService.MainTeam(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "get main team failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamToDTO(item))
}

func (h *Handler) GetTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeam")
	defer span.End()

	teamID := r.PathValue("teamID")
	item, err := h.rosterService.GetTeam(ctx, teamID)
	if err != nil {
		h.logger.WarnContext(ctx, "get team failed", "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamToDTO(item))
}

func (h *Handler) CreateTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateTeam")
	defer span.End()

	h.saveTeam(w, r.WithContext(ctx), "")
}

func (h *Handler) UpdateTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateTeam")
	defer span.End()

	h.saveTeam(w, r.WithContext(ctx), strings.TrimSpace(r.PathValue("teamID")))
}

func (h *Handler) saveTeam(w http.ResponseWriter, r *http.Request, pathID string) {
	ctx := r.Context()

	var req saveTeamRequest
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
		writeError(ctx, w, fmt.Errorf("%w: team id mismatch between path and payload", usecase.ErrInvalidInput))
		return
	}

	item, err := h.rosterService.SaveTeam(ctx, team.Team{
		ID:        strings.TrimSpace(req.ID),
		Name:      req.Name,
		IsMain:    req.IsMain,
		Location:  req.Location,
		LogoURL:   strings.TrimSpace(req.LogoURL),
		LeagueIDs: req.LeagueIDs,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "save team failed", "team_id", req.ID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamToDTO(item))
}

func (h *Handler) DeleteTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteTeam")
	defer span.End()

	teamID := strings.TrimSpace(r.PathValue("teamID"))
	if err := h.rosterService.DeleteTeam(ctx, teamID); err != nil {
		h.logger.WarnContext(ctx, "delete team failed", "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *Handler) ListRoster(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListRoster")
	defer span.End()

	teamID := r.PathValue("teamID")
	players, err := h.rosterService.ListRoster(ctx, teamID)
	if err != nil {
		h.logger.WarnContext(ctx, "list roster failed", "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]playerDTO, 0, len(players))
	for _, p := range players {
		items = append(items, playerToDTO(p))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) CreatePlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreatePlayer")
	defer span.End()

	h.savePlayer(w, r.WithContext(ctx), "")
}

func (h *Handler) UpdatePlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdatePlayer")
	defer span.End()

	h.savePlayer(w, r.WithContext(ctx), strings.TrimSpace(r.PathValue("playerID")))
}

func (h *Handler) savePlayer(w http.ResponseWriter, r *http.Request, pathID string) {
	ctx := r.Context()

	var req savePlayerRequest
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
		writeError(ctx, w, fmt.Errorf("%w: player id mismatch between path and payload", usecase.ErrInvalidInput))
		return
	}

	item, err := h.rosterService.SavePlayer(ctx, player.Player{
		ID:       strings.TrimSpace(req.ID),
		TeamID:   req.TeamID,
		Number:   req.Number,
		Name:     req.Name,
		PhotoURL: strings.TrimSpace(req.PhotoURL),
		Role:     strings.TrimSpace(req.Role),
	})
	if err != nil {
		h.logger.WarnContext(ctx, "save player failed", "player_id", req.ID, "team_id", req.TeamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playerToDTO(item))
}

func (h *Handler) DeletePlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeletePlayer")
	defer span.End()

	playerID := strings.TrimSpace(r.PathValue("playerID"))
	if err := h.rosterService.DeletePlayer(ctx, playerID); err != nil {
		h.logger.WarnContext(ctx, "delete player failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "deleted"})
}
