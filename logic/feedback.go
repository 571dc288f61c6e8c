package logic

import (
	"strconv"

	"github.com/Diplo2by/cricktle/models"
)

type attributeKind int

const (
	categorical attributeKind = iota
	numeric
)

// attribute describes one comparable column of a player record: categorical
// columns get equality only, numeric columns also get a direction. The slice
// order is the order feedback is reported in.
type attribute struct {
	key    string
	kind   attributeKind
	text   func(models.Player) string
	number func(models.Player) float64
}

var attributes = []attribute{
	{key: "country", kind: categorical, text: func(p models.Player) string { return p.Country }},
	{key: "role", kind: categorical, text: func(p models.Player) string { return p.Role }},
	{key: "matches", kind: numeric, number: func(p models.Player) float64 { return float64(p.Matches) }},
	{key: "runs", kind: numeric, number: func(p models.Player) float64 { return float64(p.Runs) }},
	{key: "wickets", kind: numeric, number: func(p models.Player) float64 { return float64(p.Wickets) }},
	{key: "average", kind: numeric, number: func(p models.Player) float64 { return p.Average }},
	{key: "era", kind: categorical, text: func(p models.Player) string { return p.Era }},
}

func (a attribute) display(p models.Player) string {
	if a.kind == numeric {
		v := a.number(p)
		if v == float64(int64(v)) {
			return strconv.FormatInt(int64(v), 10)
		}
		return strconv.FormatFloat(v, 'f', 2, 64)
	}
	return a.text(p)
}

// Evaluate scores a guessed player against the secret, one verdict per
// attribute. Categorical mismatches carry no extra signal (no "same country,
// different role" hinting).
func Evaluate(guess, secret models.Player) []models.AttributeFeedback {
	feedback := make([]models.AttributeFeedback, 0, len(attributes))
	for _, attr := range attributes {
		fb := models.AttributeFeedback{
			Attribute: attr.key,
			Value:     attr.display(guess),
		}
		if attr.kind == numeric {
			g, s := attr.number(guess), attr.number(secret)
			switch {
			case g == s:
				fb.Verdict = models.FeedbackExact
			case g < s:
				fb.Verdict = models.FeedbackHigher
			default:
				fb.Verdict = models.FeedbackLower
			}
		} else {
			if attr.text(guess) == attr.text(secret) {
				fb.Verdict = models.FeedbackExact
			} else {
				fb.Verdict = models.FeedbackMismatch
			}
		}
		feedback = append(feedback, fb)
	}
	return feedback
}
