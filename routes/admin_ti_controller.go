package routes

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/render"

	"github.com/sci-platform/riskform/app"
	"github.com/sci-platform/riskform/httpx"
	"github.com/sci-platform/riskform/log"
	"github.com/sci-platform/riskform/model"
	"github.com/sci-platform/riskform/notify"
	"github.com/sci-platform/riskform/store"
)

// ListUsersByType serves the TI panel: all users holding the role given by
// the userTypeId query parameter.
func ListUsersByType(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userTypeID, err := strconv.Atoi(r.URL.Query().Get("userTypeId"))
		if err != nil || userTypeID <= 0 {
			httpx.LogErrorJSON(w, r, http.StatusBadRequest, log.DebugLevel, "request.get_query_param.user_type_id", "Invalid parameters")
			return
		}

		users, err := app.UsersByType(r.Context(), userTypeID)
		if err != nil {
			httpx.LogInternalError(w, r, "db.get_users_by_type", err)
			return
		}

		render.JSON(w, r, users)
	}
}

type updateUserStateRequest struct {
	UserID *int    `json:"userId"`
	State  *string `json:"state"`
}

// UpdateUserState toggles a user's activation flag. Deactivation triggers
// the reminder mail; a delivery failure is logged, never blocks the toggle.
func UpdateUserState(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := updateUserStateRequest{}
		err := render.DecodeJSON(r.Body, &req)
		if err != nil || req.UserID == nil || req.State == nil {
			httpx.LogErrorJSON(w, r, http.StatusBadRequest, log.DebugLevel, "request.parse_body", "Invalid parameters")
			return
		}

		user, err := app.SetUserState(r.Context(), *req.UserID, model.UserState(*req.State))
		switch {
		case errors.Is(err, store.ErrInvalidState):
			httpx.LogErrorJSON(w, r, http.StatusBadRequest, log.DebugLevel, "db.update_user_state.state", "Invalid parameters")
			return
		case errors.Is(err, store.ErrNotFound):
			httpx.LogNotFound(w, "update_user_state", *req.UserID)
			return
		case err != nil:
			httpx.LogInternalError(w, r, "db.update_user_state", err)
			return
		}

		if user.State == model.UserInactive {
			err = notify.DeactivationReminder(r.Context(), app.Notify, user)
			if err != nil {
				log.Errorf("notify.deactivation_reminder: %s", err)
			}
		}

		render.JSON(w, r, user)
	}
}
