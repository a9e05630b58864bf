package routes

import (
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/chi/v5"

	"github.com/ekarimli/sorgu/app"
	"github.com/ekarimli/sorgu/routes/middlewares"
)

func Wire(app app.App) http.Handler {
	root := chi.NewRouter()
	root.Use(middleware.Logger, middleware.Recoverer)

	root.Mount("/api", apiRouter(app))
	root.Mount("/", servePublicFiles())

	return root
}

func apiRouter(app app.App) http.Handler {
	api := chi.NewRouter()

	api.Get("/questions", PublicListQuestions(app))
	api.Get("/questions/{id}", PublicGetQuestionById(app))
	api.Post("/questions/{id}/answers", PublicSubmitAnswer(app))

	api.Post("/admin/login", Login(app))
	api.Post("/admin/logout", Logout(app))

	api.Route("/admin/questions", func(r chi.Router) {
		r.Use(middlewares.Admin(app.Sessions))

		// CRUD question
		r.Post("/", CreateQuestion(app))
		r.Get("/", ListQuestions(app))
		r.Get("/{id}", GetQuestionById(app))
		r.Put("/{id}", UpdateQuestion(app))
		r.Patch("/{id}/active", ToggleQuestion(app))
		r.Delete("/{id}", DeleteQuestion(app))

		r.Get("/{id}/stats", GetQuestionStats(app))
		r.Get("/{id}/presentation", GetQuestionPresentation(app))
	})

	return api
}

func servePublicFiles() http.Handler {
	return http.FileServer(http.Dir("public"))
}
