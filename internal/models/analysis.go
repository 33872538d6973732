package models

import (
	"encoding/json"
	"fmt"
	"math"
)

// Evaluation is an engine score in pawns from white's perspective. A forced
// mate is stored as positive or negative infinity.
type Evaluation float64

func (e Evaluation) String() string {
	switch {
	case math.IsInf(float64(e), 1):
		return "+M"
	case math.IsInf(float64(e), -1):
		return "-M"
	default:
		return fmt.Sprintf("%+.2f", float64(e))
	}
}

// MarshalJSON writes mate scores as "+M" or "-M" since JSON has no infinity.
func (e Evaluation) MarshalJSON() ([]byte, error) {
	if math.IsInf(float64(e), 0) {
		return json.Marshal(e.String())
	}
	return json.Marshal(float64(e))
}

// MoveAssessment grades a single ply.
type MoveAssessment struct {
	Ply              int        `json:"ply"`
	MoveNumber       int        `json:"move_number"`
	Color            string     `json:"color"`
	Move             string     `json:"move"` // UCI notation
	SAN              string     `json:"san"`
	EvaluationBefore Evaluation `json:"evaluation_before"`
	EvaluationAfter  Evaluation `json:"evaluation_after"`
	BestMove         string     `json:"best_move"`
	Accuracy         float64    `json:"accuracy"`
	Classification   string     `json:"classification"`
}

// SideSummary aggregates the assessments of one colour.
type SideSummary struct {
	Player          string         `json:"player,omitempty"`
	Moves           int            `json:"moves"`
	Accuracy        float64        `json:"accuracy"`
	Classifications map[string]int `json:"classifications"`
}

// GameAnalysis is the per-ply assessment of a game in move order.
type GameAnalysis struct {
	GameURL       string           `json:"game_url,omitempty"`
	ECOCode       string           `json:"eco,omitempty"`
	Opening       string           `json:"opening,omitempty"`
	Result        string           `json:"result,omitempty"`
	Moves         []MoveAssessment `json:"moves"`
	White         SideSummary      `json:"white"`
	Black         SideSummary      `json:"black"`
	FallbackEvals int              `json:"fallback_evals"`
}
