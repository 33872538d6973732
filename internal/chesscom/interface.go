package chesscom

import (
	"context"
	"encoding/json"
	"time"

	"github.com/vytor/chessassist/internal/models"
)

// ClientInterface defines the interface for Chess.com API operations.
// This interface enables testability by allowing mock implementations.
type ClientInterface interface {
	GetPlayerProfile(ctx context.Context, username string) (models.PlayerProfile, error)
	GetPlayerStats(ctx context.Context, username string) (models.PlayerStats, error)
	FetchMonthly(ctx context.Context, username string, year int, month time.Month) ([]json.RawMessage, error)
	FetchRecentGames(ctx context.Context, username string, limit int) ([]models.Game, error)
	FindRecentGame(ctx context.Context, username string, match func(models.Game) bool) (models.Game, bool, error)
}

// Ensure Client implements the interface
var _ ClientInterface = (*Client)(nil)
