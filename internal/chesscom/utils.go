package chesscom

import (
	"strings"

	"github.com/vytor/chessassist/internal/models"
)

// DeriveResult determines which color the user played, their opponent, and the result
func DeriveResult(username string, g models.Game) (playedAs, opponent, result string) {
	if strings.EqualFold(g.WhitePlayer, username) {
		return "white", g.BlackPlayer, NormalizeResult(g.Result)
	}
	return "black", g.WhitePlayer, NormalizeResult(g.BlackResult)
}

// PlayedIn reports whether username is one of the two players.
func PlayedIn(username string, g models.Game) bool {
	return strings.EqualFold(g.WhitePlayer, username) || strings.EqualFold(g.BlackPlayer, username)
}

// NormalizeResult converts chess.com result strings to standardized values
func NormalizeResult(res string) string {
	switch strings.ToLower(res) {
	case "win":
		return "win"
	case "stalemate", "agreed", "repetition", "timevsinsufficient", "insufficient", "50move", "fiftymove", "draw":
		return "draw"
	default:
		// checkmated, resigned, timeout, abandoned, lose and the variant losses
		return "loss"
	}
}
