package services

import (
	"context"
	"strings"

	"github.com/corentings/chess/v2"
	"github.com/vytor/chessassist/internal/chesscom"
	"github.com/vytor/chessassist/internal/errors"
	"github.com/vytor/chessassist/internal/logger"
	"github.com/vytor/chessassist/internal/models"
	"github.com/vytor/chessassist/internal/openings"
	"github.com/vytor/chessassist/internal/pgn"
)

// UnknownOpening is the bucket for games whose opening cannot be named.
const UnknownOpening = "Unknown"

// RecommendRequest narrows a recommendation. An empty Color means both sides.
type RecommendRequest struct {
	Color          openings.Color
	MaxDifficulty  openings.Difficulty
	MinSuccessRate float64
	Count          int
}

// OpeningService handles opening catalog queries and repertoire reports
type OpeningService interface {
	Recommend(ctx context.Context, req RecommendRequest) (map[openings.Color][]openings.Opening, error)
	Details(ctx context.Context, eco string) (openings.Opening, error)
	Match(ctx context.Context, moves string) (openings.Opening, error)
	Repertoire(ctx context.Context, username string, limit int) (*openings.RepertoireReport, error)
}

type openingService struct {
	catalog *openings.Catalog
	client  chesscom.ClientInterface
}

// NewOpeningService creates a new OpeningService. A nil catalog uses the
// embedded one.
func NewOpeningService(catalog *openings.Catalog, client chesscom.ClientInterface) OpeningService {
	if catalog == nil {
		catalog = openings.Default()
	}
	return &openingService{catalog: catalog, client: client}
}

func (s *openingService) Recommend(ctx context.Context, req RecommendRequest) (map[openings.Color][]openings.Opening, error) {
	log := logger.FromContext(ctx)
	log.Debug("recommending openings: color=%q, max=%s, min_success=%.2f, count=%d",
		req.Color, req.MaxDifficulty, req.MinSuccessRate, req.Count)

	if req.MinSuccessRate < 0 || req.MinSuccessRate > 1 {
		return nil, errors.NewValidationError("min_success", "must be between 0 and 1")
	}
	if req.MaxDifficulty < openings.Beginner || req.MaxDifficulty > openings.Expert {
		return nil, errors.NewValidationError("level", "unknown difficulty")
	}

	colors := openings.Colors
	if req.Color != "" {
		colors = []openings.Color{req.Color}
	}

	out := make(map[openings.Color][]openings.Opening, len(colors))
	for _, c := range colors {
		out[c] = s.catalog.Recommend(c, req.MaxDifficulty, req.MinSuccessRate, req.Count)
	}
	return out, nil
}

func (s *openingService) Details(ctx context.Context, eco string) (openings.Opening, error) {
	logger.FromContext(ctx).Debug("looking up opening: eco=%s", eco)

	o, ok := s.catalog.Lookup(eco)
	if !ok {
		return openings.Opening{}, errors.NewNotFoundError("opening", eco)
	}
	return o, nil
}

func (s *openingService) Match(ctx context.Context, moves string) (openings.Opening, error) {
	logger.FromContext(ctx).Debug("matching moves: %s", moves)

	if strings.TrimSpace(moves) == "" {
		return openings.Opening{}, errors.NewValidationError("moves", "cannot be empty")
	}
	o, ok := s.catalog.ByMoves(moves)
	if !ok {
		return openings.Opening{}, errors.NewNotFoundError("opening for moves", moves)
	}
	return o, nil
}

func (s *openingService) Repertoire(ctx context.Context, username string, limit int) (*openings.RepertoireReport, error) {
	log := logger.FromContext(ctx).WithField("username", username)
	log.Debug("building repertoire: limit=%d", limit)

	if strings.TrimSpace(username) == "" {
		return nil, errors.NewValidationError("username", "cannot be empty")
	}

	games, err := s.client.FetchRecentGames(ctx, username, limit)
	if err != nil {
		log.Error("failed to fetch games: %v", err)
		return nil, notFoundOr(err, "player", username)
	}

	played := make(map[string]int)
	for _, g := range games {
		played[OpeningName(g)]++
	}

	report := s.catalog.AnalyzeRepertoire(played)
	log.Info("repertoire: %d games, %d openings", report.TotalGames, len(played))
	return &report, nil
}

// OpeningName names the opening of a fetched game: the PGN tags first, then
// the archive's opening URL, then the ECO book.
func OpeningName(g models.Game) string {
	if name := pgn.ParseHeaders(g.PGN).Opening(); name != "" {
		return name
	}
	if name := pgn.OpeningFromURL(g.ECOURL); name != "" {
		return name
	}
	if strings.TrimSpace(g.PGN) != "" {
		if opt, err := chess.PGN(strings.NewReader(g.PGN)); err == nil {
			if _, title, ok := openings.Identify(chess.NewGame(opt)); ok {
				return title
			}
		}
	}
	return UnknownOpening
}
