package openings

import (
	"sync"

	"github.com/corentings/chess/v2"
	"github.com/corentings/chess/v2/opening"
)

var ecoBook = sync.OnceValue(func() *opening.BookECO {
	return opening.NewBookECO()
})

// Identify names the deepest ECO book line reached by a game's moves. It
// covers every ECO code, not only the curated catalog.
func Identify(game *chess.Game) (eco, title string, ok bool) {
	if game == nil {
		return "", "", false
	}
	found := ecoBook().Find(game.Moves())
	if found == nil {
		return "", "", false
	}
	return found.Code(), found.Title(), true
}
