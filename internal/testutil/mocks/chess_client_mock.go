package mocks

import (
	"context"
	"encoding/json"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/chessassist/internal/chesscom"
	"github.com/vytor/chessassist/internal/models"
)

// MockChessClient is a mock implementation of chesscom.ClientInterface
type MockChessClient struct {
	mock.Mock
}

var _ chesscom.ClientInterface = (*MockChessClient)(nil)

func (m *MockChessClient) GetPlayerProfile(ctx context.Context, username string) (models.PlayerProfile, error) {
	args := m.Called(ctx, username)
	return args.Get(0).(models.PlayerProfile), args.Error(1)
}

func (m *MockChessClient) GetPlayerStats(ctx context.Context, username string) (models.PlayerStats, error) {
	args := m.Called(ctx, username)
	return args.Get(0).(models.PlayerStats), args.Error(1)
}

func (m *MockChessClient) FetchMonthly(ctx context.Context, username string, year int, month time.Month) ([]json.RawMessage, error) {
	args := m.Called(ctx, username, year, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]json.RawMessage), args.Error(1)
}

func (m *MockChessClient) FetchRecentGames(ctx context.Context, username string, limit int) ([]models.Game, error) {
	args := m.Called(ctx, username, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Game), args.Error(1)
}

func (m *MockChessClient) FindRecentGame(ctx context.Context, username string, match func(models.Game) bool) (models.Game, bool, error) {
	args := m.Called(ctx, username, match)
	return args.Get(0).(models.Game), args.Bool(1), args.Error(2)
}
