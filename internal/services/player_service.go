package services

import (
	"context"
	"net/http"
	"strings"

	"github.com/vytor/chessassist/internal/chesscom"
	"github.com/vytor/chessassist/internal/errors"
	"github.com/vytor/chessassist/internal/logger"
	"github.com/vytor/chessassist/internal/models"
)

// PlayerService handles player profile and statistics lookups
type PlayerService interface {
	Summary(ctx context.Context, username string, recent int) (*models.PlayerSummary, error)
	RecentGames(ctx context.Context, username string, limit int) ([]models.Game, error)
}

type playerService struct {
	client chesscom.ClientInterface
}

// NewPlayerService creates a new PlayerService
func NewPlayerService(client chesscom.ClientInterface) PlayerService {
	return &playerService{client: client}
}

func (s *playerService) Summary(ctx context.Context, username string, recent int) (*models.PlayerSummary, error) {
	log := logger.FromContext(ctx).WithField("username", username)
	log.Debug("building player summary: recent=%d", recent)

	if strings.TrimSpace(username) == "" {
		return nil, errors.NewValidationError("username", "cannot be empty")
	}

	profile, err := s.client.GetPlayerProfile(ctx, username)
	if err != nil {
		log.Error("failed to get profile: %v", err)
		return nil, notFoundOr(err, "player", username)
	}

	stats, err := s.client.GetPlayerStats(ctx, username)
	if err != nil {
		log.Error("failed to get stats: %v", err)
		return nil, notFoundOr(err, "player", username)
	}

	summary := &models.PlayerSummary{
		Profile:     profile,
		Stats:       stats,
		ByTimeClass: map[string]models.Record{},
	}

	games, err := s.RecentGames(ctx, username, recent)
	if err != nil {
		return nil, err
	}
	for _, g := range games {
		if !chesscom.PlayedIn(username, g) {
			log.Warn("skipping game %s: %s did not play in it", g.URL, username)
			continue
		}
		_, _, result := chesscom.DeriveResult(username, g)
		summary.Recent.Add(result)

		rec := summary.ByTimeClass[g.TimeClass]
		rec.Add(result)
		summary.ByTimeClass[g.TimeClass] = rec
		summary.RecentGames++
	}

	return summary, nil
}

func (s *playerService) RecentGames(ctx context.Context, username string, limit int) ([]models.Game, error) {
	log := logger.FromContext(ctx).WithField("username", username)

	if strings.TrimSpace(username) == "" {
		return nil, errors.NewValidationError("username", "cannot be empty")
	}

	games, err := s.client.FetchRecentGames(ctx, username, limit)
	if err != nil {
		log.Error("failed to fetch games: %v", err)
		return nil, notFoundOr(err, "player", username)
	}
	return games, nil
}

// notFoundOr turns a chess.com 404 into NOT_FOUND and passes other errors on.
func notFoundOr(err error, resource, id string) error {
	if appErr, ok := errors.As(err); ok && appErr.Code == errors.ErrCodeNetwork && appErr.Status == http.StatusNotFound {
		notFound := errors.NewNotFoundError(resource, id)
		notFound.Err = err
		return notFound
	}
	return wrapInternal(err)
}
