package services

import (
	"context"
	"time"

	"github.com/vytor/chessassist/internal/analysis"
	"github.com/vytor/chessassist/internal/config"
	"github.com/vytor/chessassist/internal/logger"
)

// AnalysisConfig holds configuration for game analysis
type AnalysisConfig struct {
	StockfishPath string
	Depth         int
	MoveTime      time.Duration // 0 = depth only
}

// NewAnalysisConfig takes the engine settings from the loaded configuration.
// The engine path must already be resolved.
func NewAnalysisConfig(cfg config.Config, stockfishPath string) AnalysisConfig {
	return AnalysisConfig{
		StockfishPath: stockfishPath,
		Depth:         cfg.AnalysisDepth,
		MoveTime:      cfg.MoveTime(),
	}
}

func (c AnalysisConfig) options() analysis.Options {
	return analysis.Options{Depth: c.Depth, MoveTime: c.MoveTime}
}

// EngineRunner provides an evaluator for the duration of fn and releases it
// afterwards.
type EngineRunner func(ctx context.Context, cfg AnalysisConfig, fn func(analysis.Evaluator) error) error

// StockfishRunner starts one engine process per call.
func StockfishRunner(ctx context.Context, cfg AnalysisConfig, fn func(analysis.Evaluator) error) error {
	return analysis.WithEngine(ctx, cfg.StockfishPath, cfg.options(), func(e *analysis.Engine) error {
		return fn(e)
	})
}

// PooledRunner is StockfishRunner limited to the sessions pool admits.
func PooledRunner(pool *analysis.EnginePool) EngineRunner {
	return func(ctx context.Context, cfg AnalysisConfig, fn func(analysis.Evaluator) error) error {
		if pool.Available() == 0 {
			logger.FromContext(ctx).Info("all %d engine slots busy, waiting", pool.Size())
		}
		return pool.Run(ctx, cfg.StockfishPath, cfg.options(), func(e *analysis.Engine) error {
			return fn(e)
		})
	}
}
