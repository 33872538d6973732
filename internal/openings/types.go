package openings

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Difficulty is an ordered tier. A ceiling includes its own tier and every
// lower one.
type Difficulty int

const (
	Beginner Difficulty = iota + 1
	Intermediate
	Advanced
	Expert
)

var difficultyNames = map[Difficulty]string{
	Beginner:     "beginner",
	Intermediate: "intermediate",
	Advanced:     "advanced",
	Expert:       "expert",
}

func (d Difficulty) String() string {
	if name, ok := difficultyNames[d]; ok {
		return name
	}
	return fmt.Sprintf("difficulty(%d)", int(d))
}

// ParseDifficulty accepts a tier name in any case.
func ParseDifficulty(s string) (Difficulty, error) {
	want := strings.ToLower(strings.TrimSpace(s))
	for d, name := range difficultyNames {
		if name == want {
			return d, nil
		}
	}
	return 0, fmt.Errorf("unknown difficulty %q (want beginner, intermediate, advanced or expert)", s)
}

func (d Difficulty) MarshalText() ([]byte, error) {
	if _, ok := difficultyNames[d]; !ok {
		return nil, fmt.Errorf("invalid difficulty %d", int(d))
	}
	return []byte(d.String()), nil
}

func (d *Difficulty) UnmarshalText(text []byte) error {
	parsed, err := ParseDifficulty(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d *Difficulty) UnmarshalYAML(node *yaml.Node) error {
	return d.UnmarshalText([]byte(node.Value))
}

// Color is the side an opening is played from.
type Color string

const (
	White Color = "white"
	Black Color = "black"
)

// Colors lists both sides in display order.
var Colors = []Color{White, Black}

// ParseColor accepts "white" or "black" in any case.
func ParseColor(s string) (Color, error) {
	switch c := Color(strings.ToLower(strings.TrimSpace(s))); c {
	case White, Black:
		return c, nil
	default:
		return "", fmt.Errorf("unknown color %q (want white or black)", s)
	}
}

// Opening is one curated catalog line.
type Opening struct {
	Name         string     `yaml:"name" json:"name"`
	ECOCode      string     `yaml:"eco" json:"eco"`
	Moves        string     `yaml:"moves" json:"moves"`
	Difficulty   Difficulty `yaml:"difficulty" json:"difficulty"`
	Color        Color      `yaml:"color" json:"color"`
	Description  string     `yaml:"description" json:"description"`
	SuccessRate  float64    `yaml:"success_rate" json:"success_rate"`
	Popularity   int        `yaml:"popularity" json:"popularity"`
	KeyIdeas     []string   `yaml:"key_ideas" json:"key_ideas"`
	TypicalPlans []string   `yaml:"typical_plans" json:"typical_plans"`
}

func (o Opening) clone() Opening {
	o.KeyIdeas = append([]string(nil), o.KeyIdeas...)
	o.TypicalPlans = append([]string(nil), o.TypicalPlans...)
	return o
}
