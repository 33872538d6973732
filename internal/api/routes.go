package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/vytor/chessassist/internal/errors"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(loggingMiddleware)
	r.Use(recoveryMiddleware)
	r.Use(securityHeadersMiddleware)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		handleError(w, r, errors.NewNotFoundError("route", r.URL.Path))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		handleError(w, r, &errors.AppError{
			Code:    errors.ErrCodeBadRequest,
			Message: "method not allowed: " + r.Method,
			Status:  http.StatusMethodNotAllowed,
		})
	})

	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/openings", s.handleOpenings)
		r.Get("/openings/{eco}", s.handleOpeningDetail)
		r.Get("/players/{username}", s.handlePlayer)
		r.Get("/players/{username}/games", s.handlePlayerGames)
		r.Get("/players/{username}/repertoire", s.handleRepertoire)
		r.Post("/accuracy", s.handleAccuracy)
		r.With(timeoutMiddleware(s.AnalyzeTimeout)).Post("/analyze", s.handleAnalyze)
	})

	return r
}
