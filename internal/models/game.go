package models

import (
	"time"

	"github.com/google/uuid"
)

// Game is one finished chess.com game, built from a monthly archive entry.
type Game struct {
	ID          uuid.UUID `json:"id"`
	URL         string    `json:"url"`
	PGN         string    `json:"pgn"`
	WhitePlayer string    `json:"white_player"`
	BlackPlayer string    `json:"black_player"`
	WhiteRating int       `json:"white_rating"`
	BlackRating int       `json:"black_rating"`
	TimeControl string    `json:"time_control"`
	TimeClass   string    `json:"time_class"`
	EndTime     time.Time `json:"end_time"`
	Result      string    `json:"result"` // white's chess.com result code
	BlackResult string    `json:"black_result"`
	Rated       bool      `json:"rated"`
	ECOURL      string    `json:"eco_url,omitempty"`
}

// Record counts results from one player's point of view.
type Record struct {
	Wins   int `json:"wins"`
	Draws  int `json:"draws"`
	Losses int `json:"losses"`
}

// Add counts a normalized result: "win", "draw" or "loss".
func (r *Record) Add(result string) {
	switch result {
	case "win":
		r.Wins++
	case "draw":
		r.Draws++
	case "loss":
		r.Losses++
	}
}

func (r Record) Games() int {
	return r.Wins + r.Draws + r.Losses
}

// Score is wins plus half the draws over games played, 0 with no games.
func (r Record) Score() float64 {
	if r.Games() == 0 {
		return 0
	}
	return (float64(r.Wins) + float64(r.Draws)/2) / float64(r.Games())
}
