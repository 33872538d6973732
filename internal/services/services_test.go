package services_test

import (
	"math"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/vytor/chessassist/internal/chesscom"
	"github.com/vytor/chessassist/internal/models"
	"github.com/vytor/chessassist/internal/testutil"
)

func newGame(white, black, whiteResult, blackResult, timeClass string, endTime time.Time) models.Game {
	return models.Game{
		ID:          uuid.New(),
		URL:         "https://www.chess.com/game/live/" + endTime.Format("20060102150405"),
		PGN:         testutil.ScholarsMatePGN,
		WhitePlayer: white,
		BlackPlayer: black,
		TimeClass:   timeClass,
		EndTime:     endTime,
		Result:      whiteResult,
		BlackResult: blackResult,
	}
}

var analysisMate = math.Inf(1)

// archiveAPI serves monthly archives keyed by request path. Paths without a
// body get an empty month; a non-zero status fails every request.
type archiveAPI struct {
	t      *testing.T
	bodies map[string][]byte
	status int

	mu    sync.Mutex
	paths []string
}

func (a *archiveAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.mu.Lock()
	a.paths = append(a.paths, r.URL.Path)
	a.mu.Unlock()

	if a.status != 0 {
		w.WriteHeader(a.status)
		return
	}
	body, ok := a.bodies[r.URL.Path]
	if !ok {
		body = testutil.ArchiveJSON(a.t)
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(body)
}

func (a *archiveAPI) hits() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]string(nil), a.paths...)
}

// client returns a chess.com client pointed at the fake API with its clock
// fixed at now.
func (a *archiveAPI) client(now time.Time) *chesscom.Client {
	srv := httptest.NewServer(a)
	a.t.Cleanup(srv.Close)
	return chesscom.New(
		chesscom.WithBaseURL(srv.URL),
		chesscom.WithRateLimit(0),
		chesscom.WithClock(func() time.Time { return now }),
	)
}
