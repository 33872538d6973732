package analysis

import (
	"context"
	"strings"

	"github.com/corentings/chess/v2"
	"github.com/vytor/chessassist/internal/errors"
	"github.com/vytor/chessassist/internal/logger"
	"github.com/vytor/chessassist/internal/models"
	"github.com/vytor/chessassist/internal/openings"
	"github.com/vytor/chessassist/internal/pgn"
)

// Evaluator scores positions. *Engine is the production implementation.
type Evaluator interface {
	Evaluate(ctx context.Context, fen string) (EvalResult, error)
}

type gameResetter interface {
	NewGame(ctx context.Context) error
}

var _ Evaluator = (*Engine)(nil)

// Analyzer grades every move of a game with an Evaluator.
type Analyzer struct {
	eval Evaluator
}

func NewAnalyzer(eval Evaluator) *Analyzer {
	return &Analyzer{eval: eval}
}

// AnalyzeGame replays a PGN and assesses each ply. Every position is
// evaluated once; ply i uses the evaluations of positions i and i+1. A failed
// evaluation is logged and counted as 0.00 rather than aborting the game.
func (a *Analyzer) AnalyzeGame(ctx context.Context, pgnText string) (*models.GameAnalysis, error) {
	log := logger.FromContext(ctx).WithPrefix("analysis")

	if strings.TrimSpace(pgnText) == "" {
		return nil, errors.NewValidationError("pgn", "cannot be empty")
	}
	pgnOpt, err := chess.PGN(strings.NewReader(pgnText))
	if err != nil {
		log.Warn("failed to parse PGN: %v", err)
		return nil, errors.NewParseError("pgn", err)
	}
	game := chess.NewGame(pgnOpt)

	positions := game.Positions()
	moves := game.Moves()
	if len(positions) != len(moves)+1 {
		return nil, errors.NewParseError("pgn", nil)
	}

	headers := pgn.ParseHeaders(pgnText)
	result := &models.GameAnalysis{
		GameURL: headers["Link"],
		ECOCode: headers["ECO"],
		Opening: headers.Opening(),
		Result:  headers["Result"],
		Moves:   make([]models.MoveAssessment, 0, len(moves)),
		White:   newSideSummary(headers["White"]),
		Black:   newSideSummary(headers["Black"]),
	}
	if result.ECOCode == "" || result.Opening == "" {
		if eco, title, ok := openings.Identify(game); ok {
			result.ECOCode, result.Opening = eco, title
		}
	}

	log = log.WithField("plies", len(moves))
	log.Info("analyzing game")

	if r, ok := a.eval.(gameResetter); ok {
		if err := r.NewGame(ctx); err != nil {
			log.Warn("engine reset failed: %v", err)
		}
	}

	evals := make([]EvalResult, len(positions))
	for i, pos := range positions {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		eval, err := a.eval.Evaluate(ctx, pos.String())
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			log.Warn("evaluation of position %d failed, using 0.00: %v", i, err)
			eval = EvalResult{}
			result.FallbackEvals++
		}
		evals[i] = eval
	}

	var whiteTotal, blackTotal float64
	for i, move := range moves {
		before := positions[i]
		whiteMoved := before.Turn() == chess.White

		accuracy := CalculateAccuracy(evals[i].Score, evals[i+1].Score, whiteMoved)
		assessment := models.MoveAssessment{
			Ply:              i + 1,
			MoveNumber:       i/2 + 1,
			Color:            "black",
			Move:             MoveToUCI(before, move),
			SAN:              MoveToSAN(before, move),
			EvaluationBefore: models.Evaluation(evals[i].Score),
			EvaluationAfter:  models.Evaluation(evals[i+1].Score),
			BestMove:         evals[i].BestMove,
			Accuracy:         accuracy,
			Classification:   ClassifyAccuracy(accuracy),
		}

		side, total := &result.Black, &blackTotal
		if whiteMoved {
			assessment.Color = "white"
			side, total = &result.White, &whiteTotal
		}
		side.Moves++
		side.Classifications[assessment.Classification]++
		*total += accuracy

		result.Moves = append(result.Moves, assessment)
	}

	if result.White.Moves > 0 {
		result.White.Accuracy = whiteTotal / float64(result.White.Moves)
	}
	if result.Black.Moves > 0 {
		result.Black.Accuracy = blackTotal / float64(result.Black.Moves)
	}

	log.Info("analysis complete: white=%.1f black=%.1f fallbacks=%d", result.White.Accuracy, result.Black.Accuracy, result.FallbackEvals)
	return result, nil
}

func newSideSummary(player string) models.SideSummary {
	counts := make(map[string]int, len(Classifications))
	for _, c := range Classifications {
		counts[c] = 0
	}
	return models.SideSummary{Player: player, Classifications: counts}
}
