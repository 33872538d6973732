package openings

import (
	_ "embed"
	stderrors "errors"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

// Catalog is an immutable, ordered table of openings. Every accessor hands
// out copies, so callers cannot change the shared table.
type Catalog struct {
	openings []Opening
	byECO    map[string]int
}

var defaultCatalog = sync.OnceValue(func() *Catalog {
	c, err := Parse(catalogYAML)
	if err != nil {
		panic(fmt.Sprintf("openings: embedded catalog: %v", err))
	}
	return c
})

// Default returns the built-in catalog, parsed on first use.
func Default() *Catalog {
	return defaultCatalog()
}

// Parse builds a catalog from YAML, rejecting incomplete or inconsistent records.
func Parse(data []byte) (*Catalog, error) {
	var records []Opening
	if err := yaml.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decoding catalog: %w", err)
	}

	c := &Catalog{
		openings: make([]Opening, 0, len(records)),
		byECO:    make(map[string]int, len(records)),
	}
	for i, o := range records {
		if err := validate(o); err != nil {
			return nil, fmt.Errorf("catalog entry %d (%s): %w", i, o.Name, err)
		}
		// ECO codes are unique; Lookup relies on it.
		if _, dup := c.byECO[o.ECOCode]; dup {
			return nil, fmt.Errorf("catalog entry %d: duplicate eco code %s", i, o.ECOCode)
		}
		c.byECO[o.ECOCode] = len(c.openings)
		c.openings = append(c.openings, o)
	}
	return c, nil
}

func validate(o Opening) error {
	var errs []error
	if o.Name == "" {
		errs = append(errs, stderrors.New("name is required"))
	}
	if o.ECOCode == "" {
		errs = append(errs, stderrors.New("eco is required"))
	}
	if o.Moves == "" {
		errs = append(errs, stderrors.New("moves are required"))
	}
	if _, ok := difficultyNames[o.Difficulty]; !ok {
		errs = append(errs, stderrors.New("difficulty is required"))
	}
	if _, err := ParseColor(string(o.Color)); err != nil {
		errs = append(errs, err)
	}
	if o.SuccessRate < 0 || o.SuccessRate > 1 {
		errs = append(errs, fmt.Errorf("success_rate %g outside [0,1]", o.SuccessRate))
	}
	return stderrors.Join(errs...)
}

// All returns every opening in catalog order.
func (c *Catalog) All() []Opening {
	out := make([]Opening, len(c.openings))
	for i, o := range c.openings {
		out[i] = o.clone()
	}
	return out
}

// Lookup finds an opening by its exact ECO code. An unknown code is reported
// through the boolean, never as an error.
func (c *Catalog) Lookup(eco string) (Opening, bool) {
	i, ok := c.byECO[strings.ToUpper(strings.TrimSpace(eco))]
	if !ok {
		return Opening{}, false
	}
	return c.openings[i].clone(), true
}

var moveNumberRe = regexp.MustCompile(`(\d+)\.+\s*`)

// NormalizeMoves lowercases a move list and writes move numbers as "1.e4",
// so "1. e4 e5" and "1.e4   e5" compare equal.
func NormalizeMoves(moves string) string {
	s := moveNumberRe.ReplaceAllString(strings.TrimSpace(moves), "$1.")
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// ByMoves returns the first catalog opening whose line starts the given move
// list. The match ends on a move boundary, so "1.c4" does not match "1.c45".
func (c *Catalog) ByMoves(moves string) (Opening, bool) {
	played := NormalizeMoves(moves)
	for _, o := range c.openings {
		line := NormalizeMoves(o.Moves)
		if !strings.HasPrefix(played, line) {
			continue
		}
		if len(played) == len(line) || played[len(line)] == ' ' {
			return o.clone(), true
		}
	}
	return Opening{}, false
}
