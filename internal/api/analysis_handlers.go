package api

import (
	"net/http"
	"strings"

	"github.com/vytor/chessassist/internal/analysis"
	"github.com/vytor/chessassist/internal/errors"
	"github.com/vytor/chessassist/internal/logger"
	"github.com/vytor/chessassist/internal/models"
)

type accuracyRequest struct {
	EvalBefore float64 `json:"eval_before"`
	EvalAfter  float64 `json:"eval_after"`
	WhiteMoved bool    `json:"white_moved"`
}

type accuracyResponse struct {
	Accuracy       float64 `json:"accuracy"`
	Classification string  `json:"classification"`
}

// handleAccuracy grades one move from the evaluations around it.
func (s *Server) handleAccuracy(w http.ResponseWriter, r *http.Request) {
	var req accuracyRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	acc := analysis.CalculateAccuracy(req.EvalBefore, req.EvalAfter, req.WhiteMoved)
	writeJSON(w, r, http.StatusOK, accuracyResponse{
		Accuracy:       acc,
		Classification: analysis.ClassifyAccuracy(acc),
	})
}

type analyzeRequest struct {
	PGN      string `json:"pgn"`
	Username string `json:"username"`
	GameID   string `json:"game_id"`
}

// handleAnalyze runs a full engine analysis of a PGN, or of a player's
// recent game when no PGN is given.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var req analyzeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	var (
		result *models.GameAnalysis
		err    error
	)
	switch {
	case strings.TrimSpace(req.PGN) != "":
		result, err = s.Analysis.AnalyzePGN(r.Context(), req.PGN)
	case strings.TrimSpace(req.Username) != "":
		result, err = s.Analysis.AnalyzePlayerGame(r.Context(), req.Username, strings.TrimSpace(req.GameID))
	default:
		err = errors.NewBadRequestError("either pgn or username is required")
	}
	if err != nil {
		handleError(w, r, err)
		return
	}

	log.Info("analysis served: %d plies", len(result.Moves))
	writeJSON(w, r, http.StatusOK, result)
}
