package analysis

import (
	"github.com/corentings/chess/v2"
)

// MoveToUCI renders a move played from pos in UCI notation (e.g. "e2e4", "e7e8q").
func MoveToUCI(pos *chess.Position, move *chess.Move) string {
	if move == nil {
		return ""
	}
	return chess.UCINotation{}.Encode(pos, move)
}

// MoveToSAN renders a move played from pos in standard algebraic notation.
func MoveToSAN(pos *chess.Position, move *chess.Move) string {
	if move == nil || pos == nil {
		return ""
	}
	return chess.AlgebraicNotation{}.Encode(pos, move)
}
