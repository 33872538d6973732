package cli

import (
	"encoding/json"

	"github.com/spf13/cobra"
	"github.com/vytor/chessassist/internal/openings"
	"github.com/vytor/chessassist/internal/services"
)

func newStatsCommand(a *app) *cobra.Command {
	var (
		username string
		games    int
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show a player's ratings and recent results",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.requireValid(); err != nil {
				return err
			}
			user, err := a.username(username)
			if err != nil {
				return err
			}

			summary, err := services.NewPlayerService(a.chessClient()).Summary(cmd.Context(), user, games)
			if err != nil {
				return err
			}
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(summary)
			}
			return renderSummary(cmd.OutOrStdout(), summary)
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "chess.com username (default CHESS_COM_USERNAME)")
	cmd.Flags().IntVar(&games, "games", 10, "recent games to count, 0 to skip")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the summary as JSON")
	return cmd
}

func newGamesCommand(a *app) *cobra.Command {
	var (
		username string
		limit    int
	)

	cmd := &cobra.Command{
		Use:   "games",
		Short: "List a player's recent games, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.requireValid(); err != nil {
				return err
			}
			user, err := a.username(username)
			if err != nil {
				return err
			}

			games, err := services.NewPlayerService(a.chessClient()).RecentGames(cmd.Context(), user, limit)
			if err != nil {
				return err
			}
			return renderGames(cmd.OutOrStdout(), user, games)
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "chess.com username (default CHESS_COM_USERNAME)")
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum number of games")
	return cmd
}

func newRepertoireCommand(a *app) *cobra.Command {
	var (
		username string
		limit    int
	)

	cmd := &cobra.Command{
		Use:   "repertoire",
		Short: "Summarize the openings a player uses and suggest gaps to fill",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.requireValid(); err != nil {
				return err
			}
			user, err := a.username(username)
			if err != nil {
				return err
			}

			svc := services.NewOpeningService(openings.Default(), a.chessClient())
			report, err := svc.Repertoire(cmd.Context(), user, limit)
			if err != nil {
				return err
			}
			return renderRepertoire(cmd.OutOrStdout(), report)
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "chess.com username (default CHESS_COM_USERNAME)")
	cmd.Flags().IntVarP(&limit, "limit", "n", 50, "recent games to inspect")
	return cmd
}
