package routes

import (
	"errors"
	"net/http"

	"github.com/go-chi/render"

	"github.com/sci-platform/riskform/app"
	"github.com/sci-platform/riskform/httpx"
	"github.com/sci-platform/riskform/log"
	"github.com/sci-platform/riskform/store"
)

type saveEvidenceRequest struct {
	AnswerID *int   `json:"answ_id"`
	URL      string `json:"url"`
}

// SaveAnswerEvidence stores the URL returned by the upload service on an
// answer. The file itself never passes through here.
func SaveAnswerEvidence(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := saveEvidenceRequest{}
		err := render.DecodeJSON(r.Body, &req)
		if err != nil || req.AnswerID == nil {
			httpx.LogErrorJSON(w, r, http.StatusBadRequest, log.DebugLevel, "request.parse_body.answ_id", "ID de respuesta no proporcionado")
			return
		}

		answer, err := app.SetAnswerEvidence(r.Context(), *req.AnswerID, req.URL)
		switch {
		case errors.Is(err, store.ErrNotFound):
			httpx.LogNotFound(w, "save_answer_evidence", *req.AnswerID)
			return
		case err != nil:
			httpx.LogInternalError(w, r, "db.save_answer_evidence", err)
			return
		}

		render.JSON(w, r, map[string]any{
			"message":       "URL guardada con éxito",
			"updatedAnswer": answer,
		})
	}
}
