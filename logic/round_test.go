package logic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Diplo2by/cricktle/models"
	"github.com/Diplo2by/cricktle/players"
)

func roundWithSecret(t *testing.T, store *players.Store, name string, maxAttempts int) *models.Round {
	t.Helper()
	return &models.Round{
		Secret:       fixturePlayer(t, store, name),
		MaxAttempts:  maxAttempts,
		AttemptsLeft: maxAttempts,
		Status:       models.RoundInProgress,
	}
}

func TestNewRoundPicksFromStore(t *testing.T) {
	store := testStore(t)
	round, err := NewRound(store, 6)
	require.NoError(t, err)

	assert.Equal(t, models.RoundInProgress, round.Status)
	assert.Equal(t, 6, round.AttemptsLeft)
	_, ok := store.FindByName(round.Secret.Name)
	assert.True(t, ok, "secret must be a store member")
}

func TestNewRoundEmptyStore(t *testing.T) {
	store, err := players.Parse([]byte(`[]`))
	require.NoError(t, err)

	_, err = NewRound(store, 6)
	assert.ErrorIs(t, err, players.ErrEmptyStore)
}

func TestSubmitGuessWin(t *testing.T) {
	store := testStore(t)
	round := roundWithSecret(t, store, "Alan Apple", 6)

	// Case-insensitive resolution still wins.
	result, err := SubmitGuess(store, round, "alan APPLE")
	require.NoError(t, err)

	assert.Equal(t, models.RoundWon, round.Status)
	assert.Equal(t, 5, result.AttemptsRemaining)
	assert.Equal(t, 1, round.AttemptsUsed())
	for _, fb := range result.Feedback {
		assert.Equal(t, models.FeedbackExact, fb.Verdict)
	}
}

func TestSubmitGuessConsumesExactlyOneAttempt(t *testing.T) {
	store := testStore(t)
	round := roundWithSecret(t, store, "Alan Apple", 6)

	for want := 5; want >= 3; want-- {
		result, err := SubmitGuess(store, round, "Ben Berry")
		require.NoError(t, err)
		assert.Equal(t, want, result.AttemptsRemaining)
		assert.Equal(t, want, round.AttemptsLeft)
	}
	assert.Len(t, round.Guesses, 3)
}

func TestLostExactlyOnSixthMiss(t *testing.T) {
	store := testStore(t)
	round := roundWithSecret(t, store, "Alan Apple", 6)

	for i := 0; i < 5; i++ {
		_, err := SubmitGuess(store, round, "Ben Berry")
		require.NoError(t, err)
		assert.Equal(t, models.RoundInProgress, round.Status, "round must not be lost before the budget runs out")
	}

	result, err := SubmitGuess(store, round, "Ben Berry")
	require.NoError(t, err)
	assert.Equal(t, models.RoundLost, round.Status)
	assert.Equal(t, 0, result.AttemptsRemaining)

	// Terminal: every further guess is rejected.
	_, err = SubmitGuess(store, round, "Alan Apple")
	assert.ErrorIs(t, err, ErrRoundOver)
	assert.Equal(t, 0, round.AttemptsLeft, "attempts never go below zero")
}

func TestSubmitGuessAfterWinRejected(t *testing.T) {
	store := testStore(t)
	round := roundWithSecret(t, store, "Alan Apple", 6)

	_, err := SubmitGuess(store, round, "Alan Apple")
	require.NoError(t, err)

	_, err = SubmitGuess(store, round, "Ben Berry")
	assert.ErrorIs(t, err, ErrRoundOver)
}

func TestEmptyInputConsumesNothing(t *testing.T) {
	store := testStore(t)
	round := roundWithSecret(t, store, "Alan Apple", 6)

	for _, input := range []string{"", "   ", "\t\n"} {
		_, err := SubmitGuess(store, round, input)
		assert.ErrorIs(t, err, ErrEmptyInput)
	}
	assert.Equal(t, 6, round.AttemptsLeft)
	assert.Empty(t, round.Guesses)
	assert.Equal(t, models.RoundInProgress, round.Status)
}

func TestUnknownPlayerConsumesNothing(t *testing.T) {
	store := testStore(t)
	round := roundWithSecret(t, store, "Alan Apple", 6)

	_, err := SubmitGuess(store, round, "Nonexistent Player")
	assert.ErrorIs(t, err, ErrUnknownPlayer)
	assert.Equal(t, 6, round.AttemptsLeft)
	assert.Empty(t, round.Guesses)
}

func TestResetRound(t *testing.T) {
	store := testStore(t)
	round := roundWithSecret(t, store, "Alan Apple", 6)

	for i := 0; i < 6; i++ {
		_, err := SubmitGuess(store, round, "Ben Berry")
		require.NoError(t, err)
	}
	require.Equal(t, models.RoundLost, round.Status)

	require.NoError(t, ResetRound(store, round))
	assert.Equal(t, models.RoundInProgress, round.Status)
	assert.Equal(t, 6, round.AttemptsLeft)
	assert.Empty(t, round.Guesses)
	_, ok := store.FindByName(round.Secret.Name)
	assert.True(t, ok, "reset must pick a store member")
}
