package models

// Time classes reported by chess.com.
var TimeClasses = []string{"bullet", "blitz", "rapid", "daily"}

// RatingStats is a player's standing in one time class.
type RatingStats struct {
	Current int    `json:"current"`
	Best    int    `json:"best"`
	Record  Record `json:"record"`
}

// PlayerStats are the ratings and puzzle scores of a player.
type PlayerStats struct {
	Ratings        map[string]RatingStats `json:"ratings"`
	TacticsHighest int                    `json:"tactics_highest,omitempty"`
	PuzzleRushBest int                    `json:"puzzle_rush_best,omitempty"`
	FIDE           int                    `json:"fide,omitempty"`
}

// PlayerSummary combines profile, stats and the record over recent games.
type PlayerSummary struct {
	Profile     PlayerProfile     `json:"profile"`
	Stats       PlayerStats       `json:"stats"`
	RecentGames int               `json:"recent_games"`
	Recent      Record            `json:"recent"`
	ByTimeClass map[string]Record `json:"by_time_class"`
}
