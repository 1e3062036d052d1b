package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/sci-platform/riskform/app"
	"github.com/sci-platform/riskform/routes/middlewares"
)

func Wire(app app.App) http.Handler {
	root := chi.NewRouter()
	root.Use(middleware.Logger, middleware.Recoverer)

	root.Mount("/api", apiRouter(app))

	return root
}

func apiRouter(app app.App) http.Handler {
	api := chi.NewRouter()

	api.Post("/login", Login(app))
	api.Post("/refresh", Refresh(app))

	// respondent surface
	api.Group(func(r chi.Router) {
		r.Use(middlewares.Respondent(app.TokenSecret))

		r.Get(`/forms/{departmentId:^\d+$}`, GetDepartmentForm(app))
		r.Put("/answers", SaveAnswer(app))
		r.Put("/cloudinary", SaveAnswerEvidence(app))
	})

	// administrative surface
	api.Group(func(r chi.Router) {
		r.Use(middlewares.Admin(app.TokenSecret))

		r.Get("/adminTI", ListUsersByType(app))
		r.Put("/adminTI", UpdateUserState(app))
		r.Get("/departments", ListDepartments(app))

		r.Route("/admin", func(r chi.Router) {
			r.Post("/forms", CreateForm(app))
			r.Put(`/forms/{id:^\d+$}/status`, SetFormStatus(app))
			r.Post("/sections", CreateSection(app))
			r.Post("/questions", CreateQuestion(app))
			r.Put(`/questions/{id:^\d+$}`, UpdateQuestion(app))
			r.Delete(`/questions/{id:^\d+$}`, DeleteQuestion(app))
		})
	})

	return api
}
