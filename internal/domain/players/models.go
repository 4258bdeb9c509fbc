package players

import (
	"fmt"
	"time"
)

const headshotURLTemplate = "https://cdn.nba.com/headshots/nba/latest/1040x760/%d.png"

// StatLine is one player's box score in one game.
type StatLine struct {
	PersonID    int           `json:"personId"`
	Name        string        `json:"name"`
	TeamTricode string        `json:"teamTricode"`
	GameStatus  string        `json:"gameStatus"`
	Minutes     time.Duration `json:"minutes"`
	Points      int           `json:"points"`
	Rebounds    int           `json:"rebounds"`
	Assists     int           `json:"assists"`
	Steals      int           `json:"steals"`
	Blocks      int           `json:"blocks"`
	Turnovers   int           `json:"turnovers"`
	FGM         int           `json:"fieldGoalsMade"`
	FGA         int           `json:"fieldGoalsAttempted"`
	TPM         int           `json:"threePointersMade"`
	TPA         int           `json:"threePointersAttempted"`
	FTM         int           `json:"freeThrowsMade"`
	FTA         int           `json:"freeThrowsAttempted"`
}

// Played reports whether the player logged any time.
func (s StatLine) Played() bool {
	return s.Minutes > 0
}

// HeadshotURL is the CDN portrait for the player.
func (s StatLine) HeadshotURL() string {
	return HeadshotURL(s.PersonID)
}

// HeadshotURL builds the CDN portrait URL for a person id.
func HeadshotURL(personID int) string {
	if personID <= 0 {
		return ""
	}
	return fmt.Sprintf(headshotURLTemplate, personID)
}
