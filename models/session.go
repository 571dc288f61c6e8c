package models

import "sync"

// Session modes.
const (
	ModeSolo = "solo"
	ModeAI   = "ai"
	ModeDuel = "duel"
)

// Session is one play session: the secret is shared, each seat owns its own
// round. Solo sessions only use Round1.
//
// Each round belongs to one seat, but duel seats guess from separate
// WebSocket connections and the session outcome reads both rounds, so every
// read or write of session state after creation must hold the session lock.
type Session struct {
	mu sync.Mutex

	ID      string
	Mode    string // "solo", "ai", "duel"
	Player1 string
	Player2 string
	Round1  *Round
	Round2  *Round
	Status  string // "waiting", "in_progress", "finished"
	Winner  string
}

// Lock serializes access to the session's rounds and status.
func (s *Session) Lock() { s.mu.Lock() }

// Unlock releases the session lock.
func (s *Session) Unlock() { s.mu.Unlock() }

// RoundFor returns the round owned by the given seat role ("1" or "2").
func (s *Session) RoundFor(role string) *Round {
	if role == "2" {
		return s.Round2
	}
	return s.Round1
}
