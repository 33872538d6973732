package cli

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/vytor/chessassist/internal/chesscom"
	"github.com/vytor/chessassist/internal/models"
	"github.com/vytor/chessassist/internal/openings"
	"github.com/vytor/chessassist/internal/services"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func renderAnalysis(w io.Writer, a *models.GameAnalysis) error {
	if a.GameURL != "" {
		fmt.Fprintf(w, "Game:    %s\n", a.GameURL)
	}
	if a.Opening != "" || a.ECOCode != "" {
		fmt.Fprintf(w, "Opening: %s %s\n", a.ECOCode, a.Opening)
	}
	if a.Result != "" {
		fmt.Fprintf(w, "Result:  %s\n", a.Result)
	}
	fmt.Fprintln(w)

	tw := newTable(w)
	fmt.Fprintln(tw, "MOVE\tSAN\tUCI\tEVAL\tBEST\tACCURACY\tCLASS")
	for _, m := range a.Moves {
		num := fmt.Sprintf("%d.", m.MoveNumber)
		if m.Color == "black" {
			num = fmt.Sprintf("%d...", m.MoveNumber)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%.0f\t%s\n",
			num, m.SAN, m.Move, m.EvaluationAfter, m.BestMove, m.Accuracy, m.Classification)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(w)
	renderSide(w, "White", a.White)
	renderSide(w, "Black", a.Black)
	if a.FallbackEvals > 0 {
		fmt.Fprintf(w, "\n%d position(s) could not be evaluated and were scored 0.00\n", a.FallbackEvals)
	}
	return nil
}

func renderSide(w io.Writer, label string, s models.SideSummary) {
	player := label
	if s.Player != "" {
		player = fmt.Sprintf("%s (%s)", label, s.Player)
	}
	fmt.Fprintf(w, "%s: accuracy %.1f over %d moves\n", player, s.Accuracy, s.Moves)

	var parts []string
	for _, c := range []string{"excellent", "good", "inaccuracy", "mistake", "blunder"} {
		parts = append(parts, fmt.Sprintf("%s %d", c, s.Classifications[c]))
	}
	fmt.Fprintf(w, "  %s\n", strings.Join(parts, ", "))
}

func renderRecommendations(w io.Writer, recs map[openings.Color][]openings.Opening) error {
	for _, color := range openings.Colors {
		list, ok := recs[color]
		if !ok {
			continue
		}
		fmt.Fprintf(w, "Openings for %s:\n", color)
		if len(list) == 0 {
			fmt.Fprintln(w, "  no opening matches these filters")
			continue
		}
		tw := newTable(w)
		fmt.Fprintln(tw, "  ECO\tNAME\tLEVEL\tSUCCESS\tPOPULARITY\tMOVES")
		for _, o := range list {
			fmt.Fprintf(tw, "  %s\t%s\t%s\t%.0f%%\t%d\t%s\n",
				o.ECOCode, o.Name, o.Difficulty, o.SuccessRate*100, o.Popularity, o.Moves)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}
	return nil
}

func renderOpening(w io.Writer, o openings.Opening) {
	fmt.Fprintf(w, "%s (%s)\n", o.Name, o.ECOCode)
	fmt.Fprintf(w, "Moves:      %s\n", o.Moves)
	fmt.Fprintf(w, "Side:       %s\n", o.Color)
	fmt.Fprintf(w, "Level:      %s\n", o.Difficulty)
	fmt.Fprintf(w, "Success:    %.0f%%\n", o.SuccessRate*100)
	fmt.Fprintf(w, "Popularity: %d\n", o.Popularity)
	if o.Description != "" {
		fmt.Fprintf(w, "\n%s\n", o.Description)
	}
	renderList(w, "Key ideas", o.KeyIdeas)
	renderList(w, "Typical plans", o.TypicalPlans)
}

func renderList(w io.Writer, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(w, "\n%s:\n", title)
	for _, item := range items {
		fmt.Fprintf(w, "  - %s\n", item)
	}
}

func renderSummary(w io.Writer, s *models.PlayerSummary) error {
	p := s.Profile
	name := p.Username
	if p.Title != "" {
		name = p.Title + " " + name
	}
	fmt.Fprintf(w, "%s\n", name)
	if p.Name != "" {
		fmt.Fprintf(w, "Name:      %s\n", p.Name)
	}
	if p.Country != "" {
		fmt.Fprintf(w, "Country:   %s\n", p.Country)
	}
	fmt.Fprintf(w, "Followers: %d\n", p.Followers)
	if !p.Joined.IsZero() {
		fmt.Fprintf(w, "Joined:    %s\n", p.Joined.Format("2006-01-02"))
	}
	fmt.Fprintln(w)

	tw := newTable(w)
	fmt.Fprintln(tw, "CLASS\tRATING\tBEST\tW/D/L")
	for _, class := range models.TimeClasses {
		r, ok := s.Stats.Ratings[class]
		if !ok {
			continue
		}
		fmt.Fprintf(tw, "%s\t%d\t%d\t%s\n", class, r.Current, r.Best, formatRecord(r.Record))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if s.Stats.TacticsHighest > 0 {
		fmt.Fprintf(w, "Tactics best: %d\n", s.Stats.TacticsHighest)
	}
	if s.Stats.PuzzleRushBest > 0 {
		fmt.Fprintf(w, "Puzzle rush best: %d\n", s.Stats.PuzzleRushBest)
	}
	if s.Stats.FIDE > 0 {
		fmt.Fprintf(w, "FIDE: %d\n", s.Stats.FIDE)
	}

	if s.RecentGames == 0 {
		return nil
	}
	fmt.Fprintf(w, "\nLast %d games: %s (score %.0f%%)\n", s.RecentGames, formatRecord(s.Recent), s.Recent.Score()*100)
	classes := make([]string, 0, len(s.ByTimeClass))
	for class := range s.ByTimeClass {
		classes = append(classes, class)
	}
	sort.Strings(classes)
	for _, class := range classes {
		fmt.Fprintf(w, "  %s: %s\n", class, formatRecord(s.ByTimeClass[class]))
	}
	return nil
}

func formatRecord(r models.Record) string {
	return fmt.Sprintf("%d/%d/%d", r.Wins, r.Draws, r.Losses)
}

func renderGames(w io.Writer, username string, games []models.Game) error {
	if len(games) == 0 {
		fmt.Fprintln(w, "no games in the last three months")
		return nil
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "DATE\tCLASS\tCOLOR\tOPPONENT\tRESULT\tOPENING\tURL")
	for _, g := range games {
		playedAs, opponent, result := chesscom.DeriveResult(username, g)
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			g.EndTime.Format("2006-01-02 15:04"), g.TimeClass, playedAs, opponent, result, services.OpeningName(g), g.URL)
	}
	return tw.Flush()
}

func renderRepertoire(w io.Writer, r *openings.RepertoireReport) error {
	fmt.Fprintf(w, "Games analysed: %d\n", r.TotalGames)
	fmt.Fprintf(w, "Diversity:      %.2f\n", r.DiversityScore)

	if len(r.MainOpenings) > 0 {
		fmt.Fprintln(w, "\nMain openings:")
		tw := newTable(w)
		for _, m := range r.MainOpenings {
			fmt.Fprintf(tw, "  %s\t%d games\t%.0f%%\n", m.Name, m.Games, m.Frequency*100)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	if len(r.Recommendations) > 0 {
		fmt.Fprintln(w, "\nWorth adding:")
		for _, s := range r.Recommendations {
			fmt.Fprintf(w, "  %s (%s, %s, %s): %s\n", s.Opening, s.ECOCode, s.Color, s.Difficulty, s.Reason)
		}
	}
	return nil
}
