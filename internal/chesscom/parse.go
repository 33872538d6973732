package chesscom

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/vytor/chessassist/internal/errors"
	"github.com/vytor/chessassist/internal/models"
)

type apiPlayer struct {
	Username string `json:"username"`
	Rating   int    `json:"rating"`
	Result   string `json:"result"`
}

type apiGame struct {
	UUID        string    `json:"uuid"`
	URL         string    `json:"url"`
	PGN         string    `json:"pgn"`
	TimeControl string    `json:"time_control"`
	TimeClass   string    `json:"time_class"`
	EndTime     int64     `json:"end_time"`
	Rated       bool      `json:"rated"`
	ECO         string    `json:"eco"`
	White       apiPlayer `json:"white"`
	Black       apiPlayer `json:"black"`
}

// ParseGame converts one monthly archive entry. An entry missing its uuid,
// url, either username or end time is rejected as a whole.
func ParseGame(raw json.RawMessage) (models.Game, error) {
	var g apiGame
	if err := json.Unmarshal(raw, &g); err != nil {
		return models.Game{}, errors.NewParseError("game entry", err)
	}

	var missing []string
	if g.UUID == "" {
		missing = append(missing, "uuid")
	}
	if g.URL == "" {
		missing = append(missing, "url")
	}
	if g.White.Username == "" {
		missing = append(missing, "white.username")
	}
	if g.Black.Username == "" {
		missing = append(missing, "black.username")
	}
	if g.EndTime <= 0 {
		missing = append(missing, "end_time")
	}
	if len(missing) > 0 {
		return models.Game{}, errors.NewParseError("game entry", fmt.Errorf("missing %s", strings.Join(missing, ", ")))
	}

	id, err := uuid.Parse(g.UUID)
	if err != nil {
		return models.Game{}, errors.NewParseError("game entry", fmt.Errorf("uuid %q: %w", g.UUID, err))
	}

	return models.Game{
		ID:          id,
		URL:         g.URL,
		PGN:         g.PGN,
		WhitePlayer: g.White.Username,
		BlackPlayer: g.Black.Username,
		WhiteRating: g.White.Rating,
		BlackRating: g.Black.Rating,
		TimeControl: g.TimeControl,
		TimeClass:   g.TimeClass,
		EndTime:     time.Unix(g.EndTime, 0).UTC(),
		Result:      g.White.Result,
		BlackResult: g.Black.Result,
		Rated:       g.Rated,
		ECOURL:      g.ECO,
	}, nil
}

type apiProfile struct {
	Username   string `json:"username"`
	PlayerID   int64  `json:"player_id"`
	Name       string `json:"name"`
	Title      string `json:"title"`
	Country    string `json:"country"`
	Status     string `json:"status"`
	League     string `json:"league"`
	Followers  int    `json:"followers"`
	Joined     int64  `json:"joined"`
	LastOnline int64  `json:"last_online"`
	URL        string `json:"url"`
}

func (p apiProfile) toModel() models.PlayerProfile {
	country := strings.TrimRight(p.Country, "/")
	country = country[strings.LastIndex(country, "/")+1:]
	return models.PlayerProfile{
		Username:   p.Username,
		PlayerID:   p.PlayerID,
		Name:       p.Name,
		Title:      p.Title,
		Country:    country,
		Status:     p.Status,
		League:     p.League,
		Followers:  p.Followers,
		Joined:     unixOrZero(p.Joined),
		LastOnline: unixOrZero(p.LastOnline),
		URL:        p.URL,
	}
}

type apiRating struct {
	Last struct {
		Rating int `json:"rating"`
	} `json:"last"`
	Best struct {
		Rating int `json:"rating"`
	} `json:"best"`
	Record struct {
		Win  int `json:"win"`
		Loss int `json:"loss"`
		Draw int `json:"draw"`
	} `json:"record"`
}

type apiStats struct {
	Bullet  *apiRating `json:"chess_bullet"`
	Blitz   *apiRating `json:"chess_blitz"`
	Rapid   *apiRating `json:"chess_rapid"`
	Daily   *apiRating `json:"chess_daily"`
	Tactics struct {
		Highest struct {
			Rating int `json:"rating"`
		} `json:"highest"`
	} `json:"tactics"`
	PuzzleRush struct {
		Best struct {
			Score int `json:"score"`
		} `json:"best"`
	} `json:"puzzle_rush"`
	FIDE int `json:"fide"`
}

func (s apiStats) toModel() models.PlayerStats {
	out := models.PlayerStats{
		Ratings:        map[string]models.RatingStats{},
		TacticsHighest: s.Tactics.Highest.Rating,
		PuzzleRushBest: s.PuzzleRush.Best.Score,
		FIDE:           s.FIDE,
	}
	byClass := map[string]*apiRating{
		"bullet": s.Bullet,
		"blitz":  s.Blitz,
		"rapid":  s.Rapid,
		"daily":  s.Daily,
	}
	for class, r := range byClass {
		if r == nil {
			continue
		}
		out.Ratings[class] = models.RatingStats{
			Current: r.Last.Rating,
			Best:    r.Best.Rating,
			Record:  models.Record{Wins: r.Record.Win, Draws: r.Record.Draw, Losses: r.Record.Loss},
		}
	}
	return out
}

func unixOrZero(sec int64) time.Time {
	if sec <= 0 {
		return time.Time{}
	}
	return time.Unix(sec, 0).UTC()
}
