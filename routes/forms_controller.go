package routes

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/sci-platform/riskform/app"
	"github.com/sci-platform/riskform/httpx"
	"github.com/sci-platform/riskform/log"
	"github.com/sci-platform/riskform/routes/middlewares"
	"github.com/sci-platform/riskform/store"
)

// GetDepartmentForm serves the questionnaire tree a respondent fills out,
// with their own answers attached.
func GetDepartmentForm(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		departmentID, err := strconv.Atoi(chi.URLParam(r, "departmentId"))
		if err != nil {
			httpx.LogErrorJSON(w, r, http.StatusBadRequest, log.DebugLevel, "request.get_url_param.department_id", "Invalid parameters")
			return
		}

		user, ok := middlewares.UserFromContext(r)
		if !ok {
			httpx.LogStatus(w, http.StatusUnauthorized, log.DebugLevel, "request.claims")
			return
		}
		// respondents only see their own department's form
		if user.DepartmentID == nil || *user.DepartmentID != departmentID {
			httpx.LogStatus(w, http.StatusForbidden, log.DebugLevel, "get_department_form.department_mismatch")
			return
		}

		form, err := app.FormByDepartment(r.Context(), departmentID, user.ID)
		switch {
		case errors.Is(err, store.ErrNotFound):
			httpx.LogNotFound(w, "get_department_form", departmentID)
			return
		case err != nil:
			httpx.LogInternalError(w, r, "db.get_department_form", err)
			return
		}

		render.JSON(w, r, form)
	}
}

type saveAnswerRequest struct {
	QuestionID *int   `json:"quest_id"`
	Value      string `json:"answ_answer"`
}

// SaveAnswer is the autosave endpoint: one upsert per call, the respondent's
// single answer to one question.
func SaveAnswer(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := saveAnswerRequest{}
		err := render.DecodeJSON(r.Body, &req)
		if err != nil || req.QuestionID == nil {
			httpx.LogErrorJSON(w, r, http.StatusBadRequest, log.DebugLevel, "request.parse_body.quest_id", "Invalid parameters")
			return
		}

		user, ok := middlewares.UserFromContext(r)
		if !ok {
			httpx.LogStatus(w, http.StatusUnauthorized, log.DebugLevel, "request.claims")
			return
		}
		// respondents only answer their own department's form
		if user.DepartmentID == nil {
			httpx.LogStatus(w, http.StatusForbidden, log.DebugLevel, "save_answer.department")
			return
		}

		answer, err := app.SaveAnswer(r.Context(), *req.QuestionID, user.ID, *user.DepartmentID, req.Value)
		switch {
		case errors.Is(err, store.ErrNotFound):
			httpx.LogNotFound(w, "save_answer", *req.QuestionID)
			return
		case err != nil:
			httpx.LogInternalError(w, r, "db.save_answer", err)
			return
		}

		render.JSON(w, r, answer)
	}
}
