package models

import "time"

// PlayerProfile is the public chess.com profile of a player.
type PlayerProfile struct {
	Username   string    `json:"username"`
	PlayerID   int64     `json:"player_id"`
	Name       string    `json:"name,omitempty"`
	Title      string    `json:"title,omitempty"`
	Country    string    `json:"country,omitempty"`
	Status     string    `json:"status"`
	League     string    `json:"league,omitempty"`
	Followers  int       `json:"followers"`
	Joined     time.Time `json:"joined"`
	LastOnline time.Time `json:"last_online"`
	URL        string    `json:"url"`
}
