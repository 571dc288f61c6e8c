package models

// Player is one guessable cricketer record. Records are loaded once at startup
// and never change afterwards.
type Player struct {
	Name    string  `json:"name"`
	Country string  `json:"country"`
	Role    string  `json:"role"`
	Matches int     `json:"matches"`
	Runs    int     `json:"runs"`
	Wickets int     `json:"wickets"`
	Average float64 `json:"average"`
	Era     string  `json:"era"`
}
