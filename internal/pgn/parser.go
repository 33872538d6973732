// Package pgn reads the tag section of chess.com PGN exports without
// replaying the moves.
package pgn

import (
	"regexp"
	"strings"
)

var headerRe = regexp.MustCompile(`^\[(\w+)\s+"((?:[^"\\]|\\.)*)"\]$`)

// Headers maps PGN tag names to their values.
type Headers map[string]string

// ParseHeaders extracts PGN tag pairs. Malformed tag lines are skipped.
func ParseHeaders(pgn string) Headers {
	out := Headers{}
	for _, line := range strings.Split(pgn, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "[") {
			continue
		}
		m := headerRe.FindStringSubmatch(line)
		if len(m) == 3 {
			out[m[1]] = strings.ReplaceAll(m[2], `\"`, `"`)
		}
	}
	return out
}

// Opening returns the opening named by the tags. chess.com fills "Opening"
// for some games and only the "ECOUrl" slug for others.
func (h Headers) Opening() string {
	if name := strings.TrimSpace(h["Opening"]); name != "" {
		return name
	}
	return OpeningFromURL(h["ECOUrl"])
}

// OpeningFromURL turns a chess.com opening URL into a readable name:
// ".../openings/Italian-Game-Two-Knights" becomes "Italian Game Two Knights".
func OpeningFromURL(url string) string {
	url = strings.TrimRight(strings.TrimSpace(url), "/")
	if url == "" {
		return ""
	}
	slug := url[strings.LastIndex(url, "/")+1:]
	return strings.Join(strings.FieldsFunc(slug, func(r rune) bool { return r == '-' }), " ")
}

var gameIDRe = regexp.MustCompile(`/game/(?:live|daily|computer)/([0-9]+)(?:[/?#]|$)`)

// ExtractGameID returns the numeric id of a chess.com game URL.
func ExtractGameID(url string) (string, bool) {
	m := gameIDRe.FindStringSubmatch(url)
	if len(m) == 2 {
		return m[1], true
	}
	return "", false
}
