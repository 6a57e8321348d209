package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/skillcheck-ai/skillcheck-api/internal/auth"
	"github.com/skillcheck-ai/skillcheck-api/internal/ingestion"
	"github.com/skillcheck-ai/skillcheck-api/internal/middlewares"
	"github.com/skillcheck-ai/skillcheck-api/internal/quiz"
	"github.com/skillcheck-ai/skillcheck-api/internal/results"
	"github.com/skillcheck-ai/skillcheck-api/internal/user"
)

type RouterConfig struct {
	UserHandler      *user.Handler
	IngestionHandler *ingestion.Handler
	QuizHandler      *quiz.Handler
	QuizWSHandler    *quiz.WSHandler
	ResultsHandler   *results.Handler
}

func New(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewares.CorsMiddleware)

	r.Get("/swagger/*", httpSwagger.WrapHandler)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("ok"))
	})

	r.Route("/auth", func(r chi.Router) {
		r.Mount("/", user.Routes(cfg.UserHandler))
		r.Post("/logout", auth.NewHandler().Logout)
	})

	r.Group(func(r chi.Router) {
		r.Use(auth.AuthMiddleware)

		r.Mount("/users", user.ProfileRoutes(cfg.UserHandler))
		r.Mount("/resume", ingestion.Routes(cfg.IngestionHandler))
		r.Mount("/quiz", quiz.Routes(cfg.QuizHandler, cfg.QuizWSHandler))
		r.Mount("/results", results.Routes(cfg.ResultsHandler))

		r.Group(func(r chi.Router) {
			r.Use(auth.AdminMiddleware)
			r.Mount("/admin/results", results.AdminRoutes(cfg.ResultsHandler))
		})
	})

	return r
}
