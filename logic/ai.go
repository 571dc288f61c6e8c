package logic

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Diplo2by/cricktle/models"
	"github.com/Diplo2by/cricktle/players"
)

const AIPlayerName = "Computer"

// AIGuess picks the computer's next guess for its own round. Gemini is asked
// first; anything invalid, already guessed, or unavailable falls back to a
// deterministic pick from the candidates still consistent with the feedback
// the computer has seen so far.
func AIGuess(store *players.Store, round *models.Round) string {
	prompt := buildAIPrompt(round)

	aiGuess, err := getAIGuessFromGemini(prompt)
	if err != nil {
		zap.S().Debugw("gemini unavailable, using fallback", "error", err)
	} else {
		name := strings.TrimSpace(aiGuess)
		if p, ok := store.FindByName(name); ok && !alreadyGuessed(round, p.Name) {
			zap.S().Debugw("gemini guess used", "name", p.Name)
			return p.Name
		}
		zap.S().Debugw("gemini guessed invalid or repeated player", "name", name)
	}

	return fallbackGuess(store, round)
}

func buildAIPrompt(round *models.Round) string {
	var b strings.Builder
	b.WriteString("You're playing a cricketer deduction game. Guess one player name. Past guesses with feedback (higher/lower point at the secret):\n")
	for _, g := range round.Guesses {
		b.WriteString(g.Player.Name)
		b.WriteString(":")
		for _, fb := range g.Feedback {
			fmt.Fprintf(&b, " %s=%s", fb.Attribute, fb.Verdict)
		}
		b.WriteString("\n")
	}
	b.WriteString("Reply with ONLY the player's full name.")
	return b.String()
}

func alreadyGuessed(round *models.Round, name string) bool {
	for _, g := range round.Guesses {
		if strings.EqualFold(g.Player.Name, name) {
			return true
		}
	}
	return false
}

// fallbackGuess walks the store in order and returns the first player that
// could still be the secret: treating the candidate as the secret must
// reproduce every verdict the round has already received.
func fallbackGuess(store *players.Store, round *models.Round) string {
	var firstUnguessed string
	for _, candidate := range store.All() {
		if alreadyGuessed(round, candidate.Name) {
			continue
		}
		if firstUnguessed == "" {
			firstUnguessed = candidate.Name
		}
		if consistentWithHistory(candidate, round) {
			return candidate.Name
		}
	}
	// No candidate fits the feedback (shouldn't happen); guess anything new.
	return firstUnguessed
}

func consistentWithHistory(candidate models.Player, round *models.Round) bool {
	for _, past := range round.Guesses {
		hypothetical := Evaluate(past.Player, candidate)
		for i, fb := range past.Feedback {
			if hypothetical[i].Verdict != fb.Verdict {
				return false
			}
		}
	}
	return true
}

// Gemini API call
func getAIGuessFromGemini(prompt string) (string, error) {
	endpoint := "https://generativelanguage.googleapis.com/v1beta/models/gemini-1.5-flash:generateContent"
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return "", fmt.Errorf("missing GEMINI_API_KEY")
	}

	reqBody := map[string]interface{}{
		"contents": []map[string]interface{}{
			{
				"parts": []map[string]string{
					{"text": prompt},
				},
			},
		},
	}
	data, _ := json.Marshal(reqBody)

	req, err := http.NewRequest("POST", endpoint+"?key="+apiKey, bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: 20 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gemini API status %d: %s", resp.StatusCode, string(body))
	}

	var parsed struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", err
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini responded but no text")
	}

	return parsed.Candidates[0].Content.Parts[0].Text, nil
}
