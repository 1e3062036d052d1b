package routes

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"github.com/sci-platform/riskform/app"
	"github.com/sci-platform/riskform/httpx"
	"github.com/sci-platform/riskform/log"
	"github.com/sci-platform/riskform/store"
)

var validate = validator.New()

// ListDepartments hydrates the whole maintenance tree in one response.
func ListDepartments(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		departments, err := app.DepartmentsWithForms(r.Context())
		if err != nil {
			httpx.LogInternalError(w, r, "db.get_departments", err)
			return
		}
		render.JSON(w, r, departments)
	}
}

type createFormRequest struct {
	DepartmentID int    `json:"DEPARTMENT_dep_id" validate:"required"`
	Name         string `json:"form_name" validate:"required"`
}

func CreateForm(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := createFormRequest{}
		err := render.DecodeJSON(r.Body, &req)
		if err != nil || validate.Struct(req) != nil {
			httpx.LogErrorJSON(w, r, http.StatusBadRequest, log.DebugLevel, "request.parse_body", "Invalid parameters")
			return
		}

		form, err := app.CreateForm(r.Context(), req.DepartmentID, req.Name)
		switch {
		case errors.Is(err, store.ErrNotFound):
			httpx.LogNotFound(w, "create_form.department", req.DepartmentID)
			return
		case err != nil:
			httpx.LogInternalError(w, r, "db.create_form", err)
			return
		}

		w.WriteHeader(http.StatusCreated)
		render.JSON(w, r, form)
	}
}

type setFormStatusRequest struct {
	Status string `json:"form_status" validate:"required,oneof=a d"`
}

func SetFormStatus(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		formID, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			httpx.LogErrorJSON(w, r, http.StatusBadRequest, log.DebugLevel, "request.get_url_param.id", "Invalid parameters")
			return
		}

		req := setFormStatusRequest{}
		err = render.DecodeJSON(r.Body, &req)
		if err != nil || validate.Struct(req) != nil {
			httpx.LogErrorJSON(w, r, http.StatusBadRequest, log.DebugLevel, "request.parse_body.form_status", "Invalid parameters")
			return
		}

		form, err := app.SetFormStatus(r.Context(), formID, req.Status)
		switch {
		case errors.Is(err, store.ErrInvalidState):
			httpx.LogErrorJSON(w, r, http.StatusBadRequest, log.DebugLevel, "db.set_form_status.status", "Invalid parameters")
			return
		case errors.Is(err, store.ErrNotFound):
			httpx.LogNotFound(w, "set_form_status", formID)
			return
		case err != nil:
			httpx.LogInternalError(w, r, "db.set_form_status", err)
			return
		}

		render.JSON(w, r, form)
	}
}

type createSectionRequest struct {
	FormID int    `json:"FORM_form_id" validate:"required"`
	Name   string `json:"sect_name" validate:"required"`
}

func CreateSection(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := createSectionRequest{}
		err := render.DecodeJSON(r.Body, &req)
		if err != nil || validate.Struct(req) != nil {
			httpx.LogErrorJSON(w, r, http.StatusBadRequest, log.DebugLevel, "request.parse_body", "Invalid parameters")
			return
		}

		section, err := app.CreateSection(r.Context(), req.FormID, req.Name)
		if done := writeEditError(w, r, err, "create_section", req.FormID); done {
			return
		}

		w.WriteHeader(http.StatusCreated)
		render.JSON(w, r, section)
	}
}

type createQuestionRequest struct {
	SectionID int    `json:"SECTION_sect_id" validate:"required"`
	Order     int    `json:"quest_ordern" validate:"required"`
	Text      string `json:"quest_question" validate:"required"`
}

func CreateQuestion(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := createQuestionRequest{}
		err := render.DecodeJSON(r.Body, &req)
		if err != nil || validate.Struct(req) != nil {
			httpx.LogErrorJSON(w, r, http.StatusBadRequest, log.DebugLevel, "request.parse_body", "Invalid parameters")
			return
		}

		question, err := app.CreateQuestion(r.Context(), req.SectionID, req.Order, req.Text)
		if done := writeEditError(w, r, err, "create_question", req.SectionID); done {
			return
		}

		w.WriteHeader(http.StatusCreated)
		render.JSON(w, r, question)
	}
}

type updateQuestionRequest struct {
	Order int    `json:"quest_ordern" validate:"required"`
	Text  string `json:"quest_question" validate:"required"`
}

func UpdateQuestion(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		questionID, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			httpx.LogErrorJSON(w, r, http.StatusBadRequest, log.DebugLevel, "request.get_url_param.id", "Invalid parameters")
			return
		}

		req := updateQuestionRequest{}
		err = render.DecodeJSON(r.Body, &req)
		if err != nil || validate.Struct(req) != nil {
			httpx.LogErrorJSON(w, r, http.StatusBadRequest, log.DebugLevel, "request.parse_body", "Invalid parameters")
			return
		}

		question, err := app.UpdateQuestion(r.Context(), questionID, req.Order, req.Text)
		if done := writeEditError(w, r, err, "update_question", questionID); done {
			return
		}

		render.JSON(w, r, question)
	}
}

func DeleteQuestion(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		questionID, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			httpx.LogErrorJSON(w, r, http.StatusBadRequest, log.DebugLevel, "request.get_url_param.id", "Invalid parameters")
			return
		}

		err = app.DeleteQuestion(r.Context(), questionID)
		if done := writeEditError(w, r, err, "delete_question", questionID); done {
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// writeEditError maps structural-edit failures onto responses: locked forms
// are a conflict, missing entities a 404. Reports whether a response was
// written.
func writeEditError(w http.ResponseWriter, r *http.Request, err error, code string, id int) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, store.ErrFormLocked):
		httpx.LogErrorJSON(w, r, http.StatusConflict, log.DebugLevel, "db."+code+".locked", "Seleccione un formulario desactivado para modificarlo")
		return true
	case errors.Is(err, store.ErrNotFound):
		httpx.LogNotFound(w, code, id)
		return true
	default:
		httpx.LogInternalError(w, r, "db."+code, err)
		return true
	}
}
