package cli

import (
	"encoding/json"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/vytor/chessassist/internal/errors"
	"github.com/vytor/chessassist/internal/models"
)

func newAnalyzeCommand(a *app) *cobra.Command {
	var (
		username string
		gameID   string
		pgnFile  string
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Grade every move of a game with the engine",
		Long: "Analyze a PGN file (--pgn, \"-\" for stdin) or one of a player's games from\n" +
			"the last three months. Without --game-id the most recent game is used.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.requireValid(); err != nil {
				return err
			}
			svc, err := a.analysisService(nil)
			if err != nil {
				return err
			}

			var result *models.GameAnalysis
			if pgnFile != "" {
				text, err := readPGN(cmd, pgnFile)
				if err != nil {
					return err
				}
				result, err = svc.AnalyzePGN(cmd.Context(), text)
				if err != nil {
					return err
				}
			} else {
				user, err := a.username(username)
				if err != nil {
					return err
				}
				result, err = svc.AnalyzePlayerGame(cmd.Context(), user, gameID)
				if err != nil {
					return err
				}
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(result)
			}
			return renderAnalysis(cmd.OutOrStdout(), result)
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "chess.com username (default CHESS_COM_USERNAME)")
	cmd.Flags().StringVar(&gameID, "game-id", "", "game uuid or numeric id from the game URL")
	cmd.Flags().StringVar(&pgnFile, "pgn", "", "analyze a PGN file instead of a chess.com game")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the analysis as JSON")
	cmd.MarkFlagsMutuallyExclusive("pgn", "game-id")
	cmd.MarkFlagsMutuallyExclusive("pgn", "username")
	return cmd
}

func readPGN(cmd *cobra.Command, path string) (string, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		appErr := errors.NewBadRequestError("cannot read PGN " + path)
		appErr.Err = err
		return "", appErr
	}
	return string(data), nil
}
