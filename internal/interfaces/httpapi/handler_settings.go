package httpapi

import (
	"fmt"
	"net/http"

	jsoniter "github.com/json-iterator/go"

	"github.com/palabianco/basketstats/internal/domain/settings"
	"github.com/palabianco/basketstats/internal/usecase"
)

type saveSettingsRequest struct {
	Theme      string `json:"theme" validate:"required,oneof=light dark"`
	AppName    string `json:"appName" validate:"required,max=200"`
	AppLogoURL string `json:"appLogoUrl" validate:"omitempty,url"`
}

type settingsDTO struct {
	Theme      string `json:"theme"`
	AppName    string `json:"appName"`
	AppLogoURL string `json:"appLogoUrl"`
}

func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSettings")
	defer span.End()

	item, err := h.settingsService.GetSettings(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "get settings failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, settingsDTO{
		Theme:      item.Theme,
		AppName:    item.AppName,
		AppLogoURL: item.AppLogoURL,
	})
}

func (h *Handler) SaveSettings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SaveSettings")
	defer span.End()

	var req saveSettingsRequest
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

	item, err := h.settingsService.SaveSettings(ctx, settings.Settings{
		Theme:      req.Theme,
		AppName:    req.AppName,
		AppLogoURL: req.AppLogoURL,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "save settings failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, settingsDTO{
		Theme:      item.Theme,
		AppName:    item.AppName,
		AppLogoURL: item.AppLogoURL,
	})
}
