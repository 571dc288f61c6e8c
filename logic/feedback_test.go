package logic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Diplo2by/cricktle/models"
	"github.com/Diplo2by/cricktle/players"
)

const fixtureJSON = `[
  {"name": "Alan Apple", "country": "India", "role": "Batsman", "matches": 100, "runs": 5000, "wickets": 10, "average": 50.0, "era": "Modern"},
  {"name": "Ben Berry", "country": "Australia", "role": "Bowler", "matches": 80, "runs": 3000, "wickets": 200, "average": 22.5, "era": "Classic"},
  {"name": "Carl Cherry", "country": "India", "role": "Bowler", "matches": 100, "runs": 2000, "wickets": 150, "average": 20.0, "era": "Modern"}
]`

func testStore(t *testing.T) *players.Store {
	t.Helper()
	store, err := players.Parse([]byte(fixtureJSON))
	require.NoError(t, err)
	return store
}

func fixturePlayer(t *testing.T, store *players.Store, name string) models.Player {
	t.Helper()
	p, ok := store.FindByName(name)
	require.True(t, ok, "fixture player %s", name)
	return p
}

func TestEvaluateSelfIsAllExact(t *testing.T) {
	store := testStore(t)
	for _, p := range store.All() {
		feedback := Evaluate(p, p)
		require.Len(t, feedback, 7)
		for _, fb := range feedback {
			assert.Equal(t, models.FeedbackExact, fb.Verdict, "attribute %s of %s", fb.Attribute, p.Name)
		}
	}
}

func TestEvaluateAttributeOrder(t *testing.T) {
	store := testStore(t)
	p := fixturePlayer(t, store, "Alan Apple")

	feedback := Evaluate(p, p)
	var keys []string
	for _, fb := range feedback {
		keys = append(keys, fb.Attribute)
	}
	assert.Equal(t, []string{"country", "role", "matches", "runs", "wickets", "average", "era"}, keys)
}

func TestEvaluateNumericDirection(t *testing.T) {
	base := models.Player{Name: "X", Country: "India", Role: "Batsman", Matches: 50, Runs: 1000, Wickets: 5, Average: 30.0, Era: "Modern"}

	tests := []struct {
		name      string
		guessRuns int
		want      string
	}{
		{"guess below secret points higher", 3000, models.FeedbackHigher},
		{"guess above secret points lower", 8000, models.FeedbackLower},
		{"equal is exact", 5000, models.FeedbackExact},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			guess, secret := base, base
			guess.Runs = tc.guessRuns
			secret.Runs = 5000
			feedback := Evaluate(guess, secret)
			assert.Equal(t, tc.want, verdictFor(t, feedback, "runs"))
		})
	}
}

func TestEvaluateAverageDirection(t *testing.T) {
	base := models.Player{Name: "X", Country: "India", Role: "Batsman", Matches: 50, Runs: 1000, Wickets: 5, Era: "Modern"}

	guess, secret := base, base
	guess.Average = 44.83
	secret.Average = 50.57

	feedback := Evaluate(guess, secret)
	assert.Equal(t, models.FeedbackHigher, verdictFor(t, feedback, "average"))
	assert.Equal(t, "44.83", valueFor(t, feedback, "average"))
}

func TestEvaluateCategoricalIsBinary(t *testing.T) {
	store := testStore(t)
	alan := fixturePlayer(t, store, "Alan Apple")
	carl := fixturePlayer(t, store, "Carl Cherry")

	// Same country and era, different role: country/era exact, role a plain
	// mismatch with no partial signal.
	feedback := Evaluate(alan, carl)
	assert.Equal(t, models.FeedbackExact, verdictFor(t, feedback, "country"))
	assert.Equal(t, models.FeedbackExact, verdictFor(t, feedback, "era"))
	assert.Equal(t, models.FeedbackMismatch, verdictFor(t, feedback, "role"))
}

func verdictFor(t *testing.T, feedback []models.AttributeFeedback, key string) string {
	t.Helper()
	for _, fb := range feedback {
		if fb.Attribute == key {
			return fb.Verdict
		}
	}
	t.Fatalf("no feedback for attribute %s", key)
	return ""
}

func valueFor(t *testing.T, feedback []models.AttributeFeedback, key string) string {
	t.Helper()
	for _, fb := range feedback {
		if fb.Attribute == key {
			return fb.Value
		}
	}
	t.Fatalf("no feedback for attribute %s", key)
	return ""
}
