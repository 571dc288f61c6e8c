package handlers

import (
	"fmt"
	"net/http"

	"github.com/Diplo2by/cricktle/db"
	"github.com/Diplo2by/cricktle/utils"
)

// Data structure for holding a leaderboard entry as displayed in the UI
type LeaderboardEntry struct {
	Player    string // Player username
	Wins      int    // Total wins
	Played    int    // Total finished rounds
	BestScore string // Fewest guesses on a win ("N/A" until the first win)
}

// Handler to display the leaderboard page (top 10 users by win count, then by best score)
func LeaderboardHandler(w http.ResponseWriter, r *http.Request) {
	rows, err := db.DB.Query(`
        SELECT u.username, l.wins, l.games_played, l.best_score
        FROM leaderboard l
        JOIN users u ON l.user_id = u.id
        ORDER BY l.wins DESC, l.best_score ASC
        LIMIT 10
    `)
	if err != nil {
		http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	defer rows.Close()

	var entries []LeaderboardEntry

	for rows.Next() {
		var username string
		var wins, played, best int
		if err := rows.Scan(&username, &wins, &played, &best); err != nil {
			http.Error(w, "Error scanning row: "+err.Error(), http.StatusInternalServerError)
			return
		}
		// Best score is 0 until the user's first win
		score := "N/A"
		if best > 0 {
			score = fmt.Sprintf("%d", best)
		}
		entries = append(entries, LeaderboardEntry{
			Player:    username,
			Wins:      wins,
			Played:    played,
			BestScore: score,
		})
	}

	utils.RenderPage(w, r, "leaderboard.html", map[string]interface{}{
		"Entries": entries,
	})
}
