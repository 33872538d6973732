package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/vytor/chessassist/internal/chesscom"
	"github.com/vytor/chessassist/internal/models"
	"github.com/vytor/chessassist/internal/services"
)

func (s *Server) handlePlayer(w http.ResponseWriter, r *http.Request) {
	games, err := queryInt(r, "games", defaultSummaryGames, 0, maxGamesLimit)
	if err != nil {
		handleError(w, r, err)
		return
	}

	summary, err := s.Players.Summary(r.Context(), chi.URLParam(r, "username"), games)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, summary)
}

// gameView is a fetched game seen from the requested player's side.
type gameView struct {
	models.Game
	PlayedAs string `json:"played_as"`
	Opponent string `json:"opponent"`
	Outcome  string `json:"outcome"`
	Opening  string `json:"opening"`
}

func (s *Server) handlePlayerGames(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit", defaultGamesLimit, 1, maxGamesLimit)
	if err != nil {
		handleError(w, r, err)
		return
	}

	username := chi.URLParam(r, "username")
	games, err := s.Players.RecentGames(r.Context(), username, limit)
	if err != nil {
		handleError(w, r, err)
		return
	}

	views := make([]gameView, 0, len(games))
	for _, g := range games {
		playedAs, opponent, outcome := chesscom.DeriveResult(username, g)
		views = append(views, gameView{
			Game:     g,
			PlayedAs: playedAs,
			Opponent: opponent,
			Outcome:  outcome,
			Opening:  services.OpeningName(g),
		})
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"games": views})
}

func (s *Server) handleRepertoire(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit", defaultRepertoireGames, 1, maxGamesLimit)
	if err != nil {
		handleError(w, r, err)
		return
	}

	report, err := s.Openings.Repertoire(r.Context(), chi.URLParam(r, "username"), limit)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, report)
}
