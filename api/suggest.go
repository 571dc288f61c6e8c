package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/Diplo2by/cricktle/utils"
)

// Autocomplete endpoint: GET /suggest?q=<text>[&limit=n] returns matching
// player names as a JSON array, in dataset order. The configured limit caps
// whatever the client asks for.
func SuggestHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	limit := utils.ParseIntWithDefault(r.URL.Query().Get("limit"), cfg.SuggestionLimit)
	if limit > cfg.SuggestionLimit {
		limit = cfg.SuggestionLimit
	}

	names := store.Suggest(q, limit)
	if names == nil {
		names = []string{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(names)
}
