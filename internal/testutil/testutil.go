// Package testutil holds fixtures shared by package tests: sample games,
// chess.com archive payloads and a scripted UCI engine.
package testutil

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// ScholarsMatePGN is a short decisive game in chess.com export format.
const ScholarsMatePGN = `[Event "Live Chess"]
[Site "Chess.com"]
[Date "2024.05.12"]
[White "alice"]
[Black "bob"]
[Result "1-0"]
[ECO "C20"]
[ECOUrl "https://www.chess.com/openings/Kings-Pawn-Opening-Wayward-Queen-Attack"]
[TimeControl "600"]
[Link "https://www.chess.com/game/live/1001"]

1. e4 e5 2. Qh5 Nc6 3. Bc4 Nf6 4. Qxf7# 1-0
`

// SicilianPGN is an unfinished game without opening tags.
const SicilianPGN = `[Event "Live Chess"]
[White "alice"]
[Black "carol"]
[Result "*"]

1. e4 c5 2. Nf3 d6 *
`

// ArchiveEntry is the subset of a chess.com monthly archive game the client reads.
type ArchiveEntry struct {
	UUID        string
	URL         string
	PGN         string
	White       string
	Black       string
	WhiteResult string
	BlackResult string
	WhiteRating int
	BlackRating int
	TimeControl string
	TimeClass   string
	EndTime     time.Time
	Rated       bool
	ECOURL      string
}

// NewArchiveEntry fills an entry with a fresh uuid and a matching game URL.
func NewArchiveEntry(white, black string, endTime time.Time) ArchiveEntry {
	id := endTime.Unix()
	return ArchiveEntry{
		UUID:        uuid.NewString(),
		URL:         fmt.Sprintf("https://www.chess.com/game/live/%d", id),
		PGN:         ScholarsMatePGN,
		White:       white,
		Black:       black,
		WhiteResult: "win",
		BlackResult: "checkmated",
		WhiteRating: 1500,
		BlackRating: 1480,
		TimeControl: "600",
		TimeClass:   "rapid",
		EndTime:     endTime,
		Rated:       true,
	}
}

// Map renders the entry as the API would, omitting empty fields.
func (e ArchiveEntry) Map() map[string]any {
	m := map[string]any{
		"time_control": e.TimeControl,
		"time_class":   e.TimeClass,
		"rated":        e.Rated,
		"rules":        "chess",
		"white": map[string]any{
			"username": e.White,
			"rating":   e.WhiteRating,
			"result":   e.WhiteResult,
		},
		"black": map[string]any{
			"username": e.Black,
			"rating":   e.BlackRating,
			"result":   e.BlackResult,
		},
	}
	if e.UUID != "" {
		m["uuid"] = e.UUID
	}
	if e.URL != "" {
		m["url"] = e.URL
	}
	if e.PGN != "" {
		m["pgn"] = e.PGN
	}
	if !e.EndTime.IsZero() {
		m["end_time"] = e.EndTime.Unix()
	}
	if e.ECOURL != "" {
		m["eco"] = e.ECOURL
	}
	return m
}

// ArchiveJSON encodes a monthly archive body: {"games": [...]}.
func ArchiveJSON(t *testing.T, entries ...any) []byte {
	t.Helper()
	games := make([]any, 0, len(entries))
	for _, e := range entries {
		if entry, ok := e.(ArchiveEntry); ok {
			games = append(games, entry.Map())
			continue
		}
		games = append(games, e)
	}
	body, err := json.Marshal(map[string]any{"games": games})
	require.NoError(t, err)
	return body
}
