package players

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/Diplo2by/cricktle/models"
)

// ErrEmptyStore means there are no players to pick a secret from.
var ErrEmptyStore = errors.New("no players loaded")

// DataError reports an unreadable or malformed player dataset. It is fatal to
// startup: no round can be played without a valid player list.
type DataError struct {
	Reason string
	Err    error
}

func (e *DataError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("player data: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("player data: %s", e.Reason)
}

func (e *DataError) Unwrap() error { return e.Err }

// Every record in the dataset must carry all of these fields.
var requiredFields = []string{"name", "country", "role", "matches", "runs", "wickets", "average", "era"}

// Store holds the fixed collection of guessable players. Read-only after Load,
// so it is safe to share across handlers without locking.
type Store struct {
	players []models.Player
	index   map[string]int // lower-cased name -> position in players
}

// Load reads and validates the player dataset from a JSON file.
func Load(path string) (*Store, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, &DataError{Reason: "read players file", Err: err}
	}
	return Parse(raw)
}

// Parse validates the raw dataset: every record needs all required fields and
// names must be unique (case-insensitive). Any violation fails the whole load.
func Parse(raw []byte) (*Store, error) {
	var entries []map[string]json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, &DataError{Reason: "decode players file", Err: err}
	}

	var list []models.Player
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, &DataError{Reason: "decode player records", Err: err}
	}

	store := &Store{index: make(map[string]int, len(list))}
	for i, entry := range entries {
		for _, field := range requiredFields {
			if _, ok := entry[field]; !ok {
				return nil, &DataError{Reason: fmt.Sprintf("player %d missing field %q", i, field)}
			}
		}
		key := strings.ToLower(strings.TrimSpace(list[i].Name))
		if key == "" {
			return nil, &DataError{Reason: fmt.Sprintf("player %d has a blank name", i)}
		}
		if _, dup := store.index[key]; dup {
			return nil, &DataError{Reason: fmt.Sprintf("duplicate player name %q", list[i].Name)}
		}
		store.index[key] = len(store.players)
		store.players = append(store.players, list[i])
	}
	return store, nil
}

func (s *Store) Len() int {
	return len(s.players)
}

// FindByName looks up a player by exact name, case-insensitive.
func (s *Store) FindByName(query string) (models.Player, bool) {
	i, ok := s.index[strings.ToLower(strings.TrimSpace(query))]
	if !ok {
		return models.Player{}, false
	}
	return s.players[i], true
}

// PickRandom selects a secret uniformly over the loaded players.
func (s *Store) PickRandom() (models.Player, error) {
	if len(s.players) == 0 {
		return models.Player{}, ErrEmptyStore
	}
	return s.players[rand.Intn(len(s.players))], nil
}

// Suggest returns up to limit player names containing the query,
// case-insensitive, in dataset order. An empty query matches nothing.
func (s *Store) Suggest(query string, limit int) []string {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" || limit <= 0 {
		return nil
	}
	var names []string
	for _, p := range s.players {
		if strings.Contains(strings.ToLower(p.Name), query) {
			names = append(names, p.Name)
			if len(names) == limit {
				break
			}
		}
	}
	return names
}

// Closest returns the nearest player name to a misspelled query, or "" when
// nothing is close enough to be a plausible typo.
func (s *Store) Closest(query string) string {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return ""
	}
	best, bestDist := "", 0
	for _, p := range s.players {
		dist := levenshtein.ComputeDistance(query, strings.ToLower(p.Name))
		if dist > typoLimit(len(p.Name)) {
			continue
		}
		if best == "" || dist < bestDist {
			best, bestDist = p.Name, dist
		}
	}
	return best
}

func typoLimit(nameLen int) int {
	switch {
	case nameLen < 6:
		return 1
	case nameLen < 12:
		return 2
	default:
		return 3
	}
}

// All returns the players in dataset order. The slice is a copy; the records
// themselves are immutable.
func (s *Store) All() []models.Player {
	out := make([]models.Player, len(s.players))
	copy(out, s.players)
	return out
}
