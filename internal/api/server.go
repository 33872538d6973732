package api

import (
	"time"

	"github.com/vytor/chessassist/internal/services"
)

const (
	defaultSummaryGames    = 10
	defaultGamesLimit      = 20
	defaultRepertoireGames = 50
	maxGamesLimit          = 200
	maxBodyBytes           = 1 << 20
)

// Server exposes the services as a JSON API.
type Server struct {
	Analysis services.AnalysisService
	Players  services.PlayerService
	Openings services.OpeningService

	// AnalyzeTimeout bounds one POST /api/analyze; zero means no limit.
	AnalyzeTimeout time.Duration
}
