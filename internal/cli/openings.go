package cli

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/vytor/chessassist/internal/errors"
	"github.com/vytor/chessassist/internal/openings"
	"github.com/vytor/chessassist/internal/services"
)

func newOpeningsCommand(a *app) *cobra.Command {
	var (
		color      string
		level      string
		minSuccess float64
		count      int
		eco        string
		moves      string
	)

	cmd := &cobra.Command{
		Use:   "openings",
		Short: "Suggest openings from the curated catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc := services.NewOpeningService(openings.Default(), nil)
			out := cmd.OutOrStdout()

			switch {
			case eco != "":
				o, err := svc.Details(cmd.Context(), eco)
				if err != nil {
					return err
				}
				renderOpening(out, o)
				return nil
			case moves != "":
				o, err := svc.Match(cmd.Context(), moves)
				if err != nil {
					return err
				}
				renderOpening(out, o)
				return nil
			}

			req := services.RecommendRequest{MinSuccessRate: minSuccess, Count: count}
			switch c := strings.ToLower(strings.TrimSpace(color)); c {
			case "", "both":
			default:
				parsed, err := openings.ParseColor(c)
				if err != nil {
					return errors.NewValidationError("color", "must be white, black or both")
				}
				req.Color = parsed
			}
			d, err := openings.ParseDifficulty(level)
			if err != nil {
				return errors.NewValidationError("level", err.Error())
			}
			req.MaxDifficulty = d

			recs, err := svc.Recommend(cmd.Context(), req)
			if err != nil {
				return err
			}
			return renderRecommendations(out, recs)
		},
	}

	cmd.Flags().StringVar(&color, "color", "both", "white, black or both")
	cmd.Flags().StringVar(&level, "level", openings.DefaultMaxDifficulty.String(), "highest difficulty: beginner, intermediate, advanced or expert")
	cmd.Flags().Float64Var(&minSuccess, "min-success", openings.DefaultMinSuccessRate, "minimum success rate between 0 and 1")
	cmd.Flags().IntVar(&count, "count", openings.DefaultCount, "openings per side")
	cmd.Flags().StringVar(&eco, "eco", "", "show one opening by ECO code")
	cmd.Flags().StringVar(&moves, "moves", "", "find the catalog opening that starts a move list")
	cmd.MarkFlagsMutuallyExclusive("eco", "moves")
	return cmd
}
