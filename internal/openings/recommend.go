package openings

import (
	"fmt"
	"sort"
	"strings"
)

// Defaults used when a caller does not narrow the recommendation.
const (
	DefaultMaxDifficulty  = Intermediate
	DefaultMinSuccessRate = 0.70
	DefaultCount          = 5
)

// Recommend selects openings for one side whose tier does not exceed
// maxDifficulty and whose success rate is at least minSuccessRate. Results are
// ordered by popularity, then success rate, both descending, and truncated to
// count. No match yields an empty slice.
func (c *Catalog) Recommend(color Color, maxDifficulty Difficulty, minSuccessRate float64, count int) []Opening {
	out := []Opening{}
	if count <= 0 {
		return out
	}

	for _, o := range c.openings {
		if o.Color == color && o.Difficulty <= maxDifficulty && o.SuccessRate >= minSuccessRate {
			out = append(out, o.clone())
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Popularity != out[j].Popularity {
			return out[i].Popularity > out[j].Popularity
		}
		return out[i].SuccessRate > out[j].SuccessRate
	})

	if len(out) > count {
		out = out[:count]
	}
	return out
}

// MainOpening is an opening that accounts for more than a tenth of the games.
type MainOpening struct {
	Name      string  `json:"name"`
	Frequency float64 `json:"frequency"`
	Games     int     `json:"games"`
}

// Suggestion is a popular catalog opening missing from a repertoire.
type Suggestion struct {
	Opening    string     `json:"opening"`
	ECOCode    string     `json:"eco"`
	Color      Color      `json:"color"`
	Reason     string     `json:"reason"`
	Difficulty Difficulty `json:"difficulty"`
}

// RepertoireReport summarizes which openings a player uses.
type RepertoireReport struct {
	TotalGames      int           `json:"total_games"`
	DiversityScore  float64       `json:"diversity_score"`
	MainOpenings    []MainOpening `json:"main_openings"`
	Recommendations []Suggestion  `json:"recommendations"`
}

const (
	mainOpeningShare    = 0.10
	popularThreshold    = 80
	suggestionsPerColor = 2
)

// AnalyzeRepertoire scores a map of opening name to games played.
//
// Diversity is distinct openings over total games. A catalog opening counts as
// played when its name appears, case-insensitively, inside a played name. For
// each side up to two unplayed catalog openings with popularity above 80 are
// suggested, in catalog order.
func (c *Catalog) AnalyzeRepertoire(played map[string]int) RepertoireReport {
	total := 0
	for _, n := range played {
		total += n
	}

	report := RepertoireReport{
		TotalGames:      total,
		DiversityScore:  float64(len(played)) / float64(max(total, 1)),
		MainOpenings:    []MainOpening{},
		Recommendations: []Suggestion{},
	}

	if total > 0 {
		for name, n := range played {
			share := float64(n) / float64(total)
			if share > mainOpeningShare {
				report.MainOpenings = append(report.MainOpenings, MainOpening{Name: name, Frequency: share, Games: n})
			}
		}
		sort.Slice(report.MainOpenings, func(i, j int) bool {
			a, b := report.MainOpenings[i], report.MainOpenings[j]
			if a.Games != b.Games {
				return a.Games > b.Games
			}
			return a.Name < b.Name
		})
	}

	covered := make(map[string]bool)
	for name := range played {
		lower := strings.ToLower(name)
		for _, o := range c.openings {
			if strings.Contains(lower, strings.ToLower(o.Name)) {
				covered[o.ECOCode] = true
			}
		}
	}

	for _, color := range Colors {
		added := 0
		for _, o := range c.openings {
			if added == suggestionsPerColor {
				break
			}
			if o.Color != color || o.Popularity <= popularThreshold || covered[o.ECOCode] {
				continue
			}
			report.Recommendations = append(report.Recommendations, Suggestion{
				Opening:    o.Name,
				ECOCode:    o.ECOCode,
				Color:      color,
				Reason:     fmt.Sprintf("popular opening missing for %s", color),
				Difficulty: o.Difficulty,
			})
			added++
		}
	}

	return report
}
