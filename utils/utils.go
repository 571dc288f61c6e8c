package utils

import (
	"html/template"
	"math/rand"
	"net/http"
	"strconv"

	"go.uber.org/zap"
)

// GenerateID creates a short lower-case session code for invite links.
func GenerateID() string {
	letters := []rune("abcdefghijklmnopqrstuvwxyz")
	b := make([]rune, 4)
	for i := range b {
		b[i] = letters[rand.Intn(len(letters))]
	}
	return string(b)
}

// ParseIntWithDefault converts s to int, falling back to def when the value is
// missing, invalid, or non-positive.
func ParseIntWithDefault(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return def
	}
	return n
}

// RenderPage renders a full page: base layout plus the named page template.
func RenderPage(w http.ResponseWriter, r *http.Request, file string, data map[string]interface{}) {
	tmpl := template.Must(template.ParseFiles("templates/base.html", "templates/"+file))

	if _, ok := data["User"]; !ok {
		if c, err := r.Cookie("user"); err == nil {
			data["User"] = c.Value
		}
	}

	if err := tmpl.ExecuteTemplate(w, "base", data); err != nil {
		http.Error(w, "Template error: "+err.Error(), http.StatusInternalServerError)
		zap.S().Errorw("template exec failed", "file", file, "error", err)
	}
}

// RenderPartial renders just the page's content block, for HTMX swaps.
func RenderPartial(w http.ResponseWriter, r *http.Request, file string, data map[string]interface{}) {
	tmpl := template.Must(template.ParseFiles("templates/" + file))

	if err := tmpl.ExecuteTemplate(w, "content", data); err != nil {
		http.Error(w, "Template error: "+err.Error(), http.StatusInternalServerError)
		zap.S().Errorw("partial exec failed", "file", file, "error", err)
	}
}
