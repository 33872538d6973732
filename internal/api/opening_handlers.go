package api

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/vytor/chessassist/internal/errors"
	"github.com/vytor/chessassist/internal/logger"
	"github.com/vytor/chessassist/internal/openings"
	"github.com/vytor/chessassist/internal/services"
)

// handleOpenings serves recommendations, or the catalog line matching
// ?moves= when that parameter is present.
func (s *Server) handleOpenings(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	q := r.URL.Query()

	if moves := q.Get("moves"); moves != "" {
		o, err := s.Openings.Match(r.Context(), moves)
		if err != nil {
			handleError(w, r, err)
			return
		}
		writeJSON(w, r, http.StatusOK, o)
		return
	}

	req, err := parseRecommendRequest(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	log.Debug("recommend request: %+v", req)

	recs, err := s.Openings.Recommend(r.Context(), req)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, recs)
}

func parseRecommendRequest(r *http.Request) (services.RecommendRequest, error) {
	req := services.RecommendRequest{
		MaxDifficulty:  openings.DefaultMaxDifficulty,
		MinSuccessRate: openings.DefaultMinSuccessRate,
		Count:          openings.DefaultCount,
	}

	if c := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("color"))); c != "" && c != "both" {
		color, err := openings.ParseColor(c)
		if err != nil {
			return req, errors.NewValidationError("color", "must be white, black or both")
		}
		req.Color = color
	}
	if level := r.URL.Query().Get("level"); level != "" {
		d, err := openings.ParseDifficulty(level)
		if err != nil {
			return req, errors.NewValidationError("level", err.Error())
		}
		req.MaxDifficulty = d
	}

	var err error
	if req.MinSuccessRate, err = queryFloat(r, "min_success", req.MinSuccessRate); err != nil {
		return req, err
	}
	if req.Count, err = queryInt(r, "count", req.Count, 0, 50); err != nil {
		return req, err
	}
	return req, nil
}

func (s *Server) handleOpeningDetail(w http.ResponseWriter, r *http.Request) {
	o, err := s.Openings.Details(r.Context(), chi.URLParam(r, "eco"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, o)
}
