package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/shaiso/Vitrina/internal/repo"
)

// GetSettings возвращает все настройки.
// GET /api/v1/settings
func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settingsRepo.All(r.Context())
	if HandleRepoError(w, h.logger, err, "") {
		return
	}

	Success(w, settings)
}

// UpdateSettings изменяет настройки; не заданные в запросе поля
// остаются как были.
// PUT /api/v1/settings
func (h *Handler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req UpdateSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		BadRequest(w, "invalid request body")
		return
	}

	if req.DefaultTimezone != nil {
		if *req.DefaultTimezone != "" {
			if _, err := time.LoadLocation(*req.DefaultTimezone); err != nil {
				BadRequest(w, "invalid default_timezone")
				return
			}
		}
		if err := h.settingsRepo.Set(r.Context(), repo.SettingDefaultTimezone, *req.DefaultTimezone); err != nil {
			InternalError(w, h.logger, err)
			return
		}
	}

	if req.DeleteDataOnUninstall != nil {
		if *req.DeleteDataOnUninstall != "yes" && *req.DeleteDataOnUninstall != "no" {
			BadRequest(w, `delete_data_on_uninstall must be "yes" or "no"`)
			return
		}
		if err := h.settingsRepo.Set(r.Context(), repo.SettingDeleteDataOnUninstall, *req.DeleteDataOnUninstall); err != nil {
			InternalError(w, h.logger, err)
			return
		}
	}

	settings, err := h.settingsRepo.All(r.Context())
	if HandleRepoError(w, h.logger, err, "") {
		return
	}
	Success(w, settings)
}
