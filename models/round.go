package models

// Round status values.
const (
	RoundInProgress = "in_progress"
	RoundWon        = "won"
	RoundLost       = "lost"
)

// Per-attribute feedback marks. Numeric verdicts point at the secret:
// "higher" means the secret's value is higher than the guessed one.
const (
	FeedbackExact    = "exact"
	FeedbackHigher   = "higher"
	FeedbackLower    = "lower"
	FeedbackMismatch = "mismatch"
)

// AttributeFeedback is the verdict for a single attribute of a guess.
type AttributeFeedback struct {
	Attribute string `json:"attribute"`
	Value     string `json:"value"`
	Verdict   string `json:"verdict"`
}

// GuessResult is everything the UI needs to render one resolved guess.
type GuessResult struct {
	Player            Player              `json:"player"`
	Feedback          []AttributeFeedback `json:"feedback"`
	AttemptsRemaining int                 `json:"attempts_remaining"`
}

// Round is one player's attempt at identifying a secret cricketer.
type Round struct {
	Secret       Player
	MaxAttempts  int
	AttemptsLeft int
	Status       string // "in_progress", "won", "lost"
	Guesses      []GuessResult
}

func (r *Round) AttemptsUsed() int {
	return r.MaxAttempts - r.AttemptsLeft
}

func (r *Round) Over() bool {
	return r.Status != RoundInProgress
}
