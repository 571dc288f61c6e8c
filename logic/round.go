package logic

import (
	"errors"
	"strings"

	"github.com/Diplo2by/cricktle/models"
	"github.com/Diplo2by/cricktle/players"
)

var (
	// ErrEmptyInput rejects blank guesses. No attempt is consumed.
	ErrEmptyInput = errors.New("empty guess")
	// ErrUnknownPlayer rejects names not present in the store. No attempt is consumed.
	ErrUnknownPlayer = errors.New("unknown player")
	// ErrRoundOver rejects guesses submitted after the round went terminal.
	ErrRoundOver = errors.New("round is over")
)

// NewRound picks a fresh secret and arms the attempt budget.
func NewRound(store *players.Store, maxAttempts int) (*models.Round, error) {
	secret, err := store.PickRandom()
	if err != nil {
		return nil, err
	}
	return &models.Round{
		Secret:       secret,
		MaxAttempts:  maxAttempts,
		AttemptsLeft: maxAttempts,
		Status:       models.RoundInProgress,
	}, nil
}

// SubmitGuess resolves a guessed name against the store and scores it against
// the round's secret. Blank or unknown names fail without consuming an
// attempt. A resolved guess always consumes exactly one attempt and is logged,
// then the round transitions: won on an identity match, lost when the budget
// hits zero, otherwise still in progress.
func SubmitGuess(store *players.Store, round *models.Round, name string) (*models.GuessResult, error) {
	if round.Over() {
		return nil, ErrRoundOver
	}
	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyInput
	}
	guess, ok := store.FindByName(name)
	if !ok {
		return nil, ErrUnknownPlayer
	}

	round.AttemptsLeft--
	result := models.GuessResult{
		Player:            guess,
		Feedback:          Evaluate(guess, round.Secret),
		AttemptsRemaining: round.AttemptsLeft,
	}
	round.Guesses = append(round.Guesses, result)

	switch {
	case strings.EqualFold(guess.Name, round.Secret.Name):
		round.Status = models.RoundWon
	case round.AttemptsLeft == 0:
		round.Status = models.RoundLost
	}
	return &result, nil
}

// ResetRound re-picks a secret and returns the round to its initial state.
// Valid from any state; the new secret may coincide with the old one.
func ResetRound(store *players.Store, round *models.Round) error {
	secret, err := store.PickRandom()
	if err != nil {
		return err
	}
	round.Secret = secret
	round.AttemptsLeft = round.MaxAttempts
	round.Status = models.RoundInProgress
	round.Guesses = nil
	return nil
}
