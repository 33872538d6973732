package services

import (
	"context"
	stderrors "errors"
	"strings"

	"github.com/vytor/chessassist/internal/analysis"
	"github.com/vytor/chessassist/internal/chesscom"
	"github.com/vytor/chessassist/internal/errors"
	"github.com/vytor/chessassist/internal/logger"
	"github.com/vytor/chessassist/internal/models"
	"github.com/vytor/chessassist/internal/pgn"
)

// AnalysisService handles game analysis business logic
type AnalysisService interface {
	AnalyzePGN(ctx context.Context, pgnText string) (*models.GameAnalysis, error)
	AnalyzePlayerGame(ctx context.Context, username, gameID string) (*models.GameAnalysis, error)
}

type analysisService struct {
	client chesscom.ClientInterface
	config AnalysisConfig
	runner EngineRunner
}

// NewAnalysisService creates a new AnalysisService. A nil runner starts a
// Stockfish process for every analysis.
func NewAnalysisService(client chesscom.ClientInterface, config AnalysisConfig, runner EngineRunner) AnalysisService {
	if runner == nil {
		runner = StockfishRunner
	}
	return &analysisService{client: client, config: config, runner: runner}
}

func (s *analysisService) AnalyzePGN(ctx context.Context, pgnText string) (*models.GameAnalysis, error) {
	log := logger.FromContext(ctx)
	log.Debug("analyzing PGN: %d bytes", len(pgnText))

	if strings.TrimSpace(pgnText) == "" {
		return nil, errors.NewValidationError("pgn", "cannot be empty")
	}

	var result *models.GameAnalysis
	err := s.runner(ctx, s.config, func(eval analysis.Evaluator) error {
		var err error
		result, err = analysis.NewAnalyzer(eval).AnalyzeGame(ctx, pgnText)
		return err
	})
	if err != nil {
		log.Error("failed to analyze game: %v", err)
		return nil, wrapInternal(err)
	}
	return result, nil
}

func (s *analysisService) AnalyzePlayerGame(ctx context.Context, username, gameID string) (*models.GameAnalysis, error) {
	log := logger.FromContext(ctx).WithField("username", username)
	log.Debug("analyzing player game: game_id=%q", gameID)

	if strings.TrimSpace(username) == "" {
		return nil, errors.NewValidationError("username", "cannot be empty")
	}

	game, ok, err := s.client.FindRecentGame(ctx, username, matchGameID(gameID))
	if err != nil {
		log.Error("failed to fetch games: %v", err)
		return nil, wrapInternal(err)
	}
	if !ok {
		if gameID == "" {
			return nil, errors.NewNotFoundError("recent game for player", username)
		}
		return nil, errors.NewNotFoundError("game", gameID)
	}
	if strings.TrimSpace(game.PGN) == "" {
		return nil, errors.NewValidationError("pgn", "game "+game.URL+" has no PGN")
	}

	result, err := s.AnalyzePGN(ctx, game.PGN)
	if err != nil {
		return nil, err
	}
	if result.GameURL == "" {
		result.GameURL = game.URL
	}
	return result, nil
}

// matchGameID accepts the game whose uuid or URL id equals id. An empty id
// accepts every game, which makes the search return the newest one.
func matchGameID(id string) func(models.Game) bool {
	if id == "" {
		return nil
	}
	return func(g models.Game) bool {
		if g.ID.String() == strings.ToLower(id) {
			return true
		}
		urlID, ok := pgn.ExtractGameID(g.URL)
		return ok && urlID == id
	}
}

// wrapInternal passes application errors through and hides everything else
// behind an INTERNAL_ERROR.
func wrapInternal(err error) error {
	if _, ok := errors.As(err); ok {
		return err
	}
	if stderrors.Is(err, context.Canceled) || stderrors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return errors.NewInternalError(err)
}
