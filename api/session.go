package handlers

import (
	"net/http"
	"net/url"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Diplo2by/cricktle/config"
	"github.com/Diplo2by/cricktle/db"
	"github.com/Diplo2by/cricktle/logic"
	"github.com/Diplo2by/cricktle/models"
	"github.com/Diplo2by/cricktle/players"
	"github.com/Diplo2by/cricktle/utils"
)

// Broadcast channel for websocket messages; buffered for up to 16 messages
var wsBroadcast = make(chan WSMessage, 16)

// In-memory map of live sessions; key is the session code.
var (
	sessions   = make(map[string]*models.Session)
	sessionsMu sync.Mutex
)

var (
	store *players.Store
	cfg   config.Config
)

// Init wires the handler package to the loaded player store and configuration.
// Must be called before any route is served.
func Init(s *players.Store, c config.Config) {
	store = s
	cfg = c
}

func getSession(id string) *models.Session {
	sessionsMu.Lock()
	defer sessionsMu.Unlock()
	return sessions[id]
}

func putSession(s *models.Session) {
	sessionsMu.Lock()
	defer sessionsMu.Unlock()
	sessions[s.ID] = s
}

// Helper: Retrieve the current logged-in user from cookie.
// If missing or invalid, redirect to login and return ("", false).
func getUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	cookie, err := r.Cookie("user")
	if err != nil || cookie.Value == "" {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return "", false
	}
	return cookie.Value, true
}

// Helper: Set cookies for session state (session id, player name, seat role "1" or "2")
func setGameCookies(w http.ResponseWriter, id, player, role string) {
	http.SetCookie(w, &http.Cookie{Name: "game_id", Value: id, Path: "/"})
	http.SetCookie(w, &http.Cookie{Name: "player_name", Value: player, Path: "/"})
	http.SetCookie(w, &http.Cookie{Name: "role", Value: role, Path: "/"})
}

func setErrorCookie(w http.ResponseWriter, msg string) {
	http.SetCookie(w, &http.Cookie{
		Name:  "error",
		Value: url.QueryEscape(msg),
		Path:  "/",
	})
}

// HTTP POST handler: create a new solo session.
func CreateGameHandler(w http.ResponseWriter, r *http.Request) {
	player, ok := getUser(w, r)
	if !ok {
		return
	}

	round, err := logic.NewRound(store, cfg.MaxAttempts)
	if err != nil {
		http.Error(w, "No players available", http.StatusInternalServerError)
		return
	}

	session := &models.Session{
		ID:      utils.GenerateID(),
		Mode:    models.ModeSolo,
		Player1: player,
		Round1:  round,
		Status:  "in_progress",
	}
	putSession(session)

	setGameCookies(w, session.ID, player, "1")
	http.Redirect(w, r, "/play", http.StatusSeeOther)
}

// HTTP POST handler: create a new session against the computer.
// Both seats chase the same secret; first to name the player wins.
func CreateAIHandler(w http.ResponseWriter, r *http.Request) {
	player, ok := getUser(w, r)
	if !ok {
		return
	}

	round, err := logic.NewRound(store, cfg.MaxAttempts)
	if err != nil {
		http.Error(w, "No players available", http.StatusInternalServerError)
		return
	}

	session := &models.Session{
		ID:      utils.GenerateID(),
		Mode:    models.ModeAI,
		Player1: player,
		Player2: logic.AIPlayerName,
		Round1:  round,
		Round2: &models.Round{
			Secret:       round.Secret,
			MaxAttempts:  cfg.MaxAttempts,
			AttemptsLeft: cfg.MaxAttempts,
			Status:       models.RoundInProgress,
		},
		Status: "in_progress",
	}
	putSession(session)

	setGameCookies(w, session.ID, player, "1")
	http.Redirect(w, r, "/play", http.StatusSeeOther)
}

// HTTP POST handler: create a new two-player duel and wait for an opponent.
func CreateDuelHandler(w http.ResponseWriter, r *http.Request) {
	player, ok := getUser(w, r)
	if !ok {
		return
	}

	round, err := logic.NewRound(store, cfg.MaxAttempts)
	if err != nil {
		http.Error(w, "No players available", http.StatusInternalServerError)
		return
	}

	session := &models.Session{
		ID:      utils.GenerateID(),
		Mode:    models.ModeDuel,
		Player1: player,
		Round1:  round,
		Status:  "waiting",
	}
	putSession(session)

	setGameCookies(w, session.ID, player, "1")
	http.Redirect(w, r, "/wait", http.StatusSeeOther)
}

// HTTP POST handler: join an existing duel by session code.
func JoinGameHandler(w http.ResponseWriter, r *http.Request) {
	player, ok := getUser(w, r)
	if !ok {
		return
	}

	r.ParseForm()
	gameID := r.FormValue("game_id")
	session := getSession(gameID)
	if session == nil || session.Mode != models.ModeDuel {
		setErrorCookie(w, "Game not found.")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	session.Lock()
	if session.Player2 != "" {
		session.Unlock()
		setErrorCookie(w, "Game already has two players.")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	// Second seat gets its own round over the same secret.
	session.Player2 = player
	session.Round2 = &models.Round{
		Secret:       session.Round1.Secret,
		MaxAttempts:  session.Round1.MaxAttempts,
		AttemptsLeft: session.Round1.MaxAttempts,
		Status:       models.RoundInProgress,
	}
	session.Status = "in_progress"
	session.Unlock()

	setGameCookies(w, gameID, player, "2")
	http.Redirect(w, r, "/wait", http.StatusSeeOther)
}

// Wait room handler: shows "waiting for player 2", or advances if ready
func WaitRoomHandler(w http.ResponseWriter, r *http.Request) {
	gameIDCookie, err := r.Cookie("game_id")
	if err != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	session := getSession(gameIDCookie.Value)
	if session == nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	session.Lock()
	waiting := session.Status == "waiting"
	session.Unlock()

	if waiting {
		data := map[string]interface{}{
			"GameID":  session.ID,
			"Player1": session.Player1,
		}
		utils.RenderPage(w, r, "waiting.html", data)
	} else {
		http.Redirect(w, r, "/play", http.StatusSeeOther)
	}
}

// Render the main game view (guess grid, attempts, opponent summary).
func PlayHandler(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie("game_id")
	if err != nil || cookie.Value == "" {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	session := getSession(cookie.Value)
	if session == nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	role := ""
	if roleCookie, err := r.Cookie("role"); err == nil {
		role = roleCookie.Value
	}

	data := sessionState(session, role)
	data["MaxAttempts"] = cfg.MaxAttempts
	data["SuggestionLimit"] = cfg.SuggestionLimit

	// Get and display any error messages, then clear the cookie
	if errCookie, err := r.Cookie("error"); err == nil {
		if msg, decodeErr := url.QueryUnescape(errCookie.Value); decodeErr == nil {
			data["Error"] = msg
		}
		http.SetCookie(w, &http.Cookie{
			Name: "error", Value: "", Path: "/", MaxAge: -1,
		})
	}

	utils.RenderPage(w, r, "play.html", data)
}

// (Deprecating) HTTP handler: guesses travel over the WebSocket, not plain POSTs.
func GuessHandler(w http.ResponseWriter, r *http.Request) {
	http.Error(w, "Use WebSocket to guess", http.StatusMethodNotAllowed)
}

// HTTP POST handler: start the session over with a freshly picked secret.
// Duel seats keep sharing one secret; an unjoined duel stays in the wait room.
func ResetHandler(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie("game_id")
	if err != nil || cookie.Value == "" {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	session := getSession(cookie.Value)
	if session == nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	session.Lock()

	// A duel that never got its second player stays in the waiting room.
	if session.Status == "waiting" {
		session.Unlock()
		http.Redirect(w, r, "/wait", http.StatusSeeOther)
		return
	}

	if err := logic.ResetRound(store, session.Round1); err != nil {
		session.Unlock()
		http.Error(w, "No players available", http.StatusInternalServerError)
		return
	}
	if session.Round2 != nil {
		if err := logic.ResetRound(store, session.Round2); err != nil {
			session.Unlock()
			http.Error(w, "No players available", http.StatusInternalServerError)
			return
		}
		session.Round2.Secret = session.Round1.Secret
	}
	session.Status = "in_progress"
	session.Winner = ""
	session.Unlock()

	wsBroadcast <- WSMessage{GameID: session.ID, Action: "state"}
	http.Redirect(w, r, "/play", http.StatusSeeOther)
}

// submitAndSettle runs one guess through the engine and settles the session
// outcome, all under the session lock: duel seats guess from separate
// WebSocket connections, and the outcome reads both rounds.
func submitAndSettle(session *models.Session, role, name string) (*models.GuessResult, error) {
	session.Lock()
	defer session.Unlock()

	if session.Status != "in_progress" {
		return nil, logic.ErrRoundOver
	}
	round := session.RoundFor(role)
	if round == nil {
		return nil, logic.ErrRoundOver
	}

	result, err := logic.SubmitGuess(store, round, name)
	if err != nil {
		return nil, err
	}

	// Single-player vs AI: the computer answers with a guess on its own
	// round while the session is still undecided.
	if session.Mode == models.ModeAI &&
		round.Status != models.RoundWon &&
		session.Round2 != nil && !session.Round2.Over() {
		aiName := logic.AIGuess(store, session.Round2)
		if _, err := logic.SubmitGuess(store, session.Round2, aiName); err != nil {
			zap.S().Warnw("ai guess rejected", "name", aiName, "error", err)
		}
	}

	resolveOutcome(session)
	return result, nil
}

// sessionState snapshots the per-seat view under the session lock.
func sessionState(session *models.Session, role string) map[string]interface{} {
	session.Lock()
	defer session.Unlock()
	return buildSessionState(session, role)
}

// Helper: build the per-session, per-seat template state as a map.
// The secret's name only leaves the server once the session is finished.
// Callers hold the session lock.
func buildSessionState(session *models.Session, role string) map[string]interface{} {
	round := session.RoundFor(role)
	if round == nil {
		round = session.Round1
	}

	opponent := session.Player2
	var opponentRound *models.Round
	if role == "2" {
		opponent = session.Player1
		opponentRound = session.Round1
	} else {
		opponentRound = session.Round2
	}

	data := map[string]interface{}{
		"GameID":       session.ID,
		"Mode":         session.Mode,
		"Player1":      session.Player1,
		"Player2":      session.Player2,
		"Status":       session.Status,
		"Guesses":      round.Guesses,
		"Remaining":    round.AttemptsLeft,
		"AttemptsUsed": round.AttemptsUsed(),
		"RoundStatus":  round.Status,
		"GameOver":     session.Status == "finished",
		"Winner":       session.Winner,
	}
	if session.Status == "finished" {
		data["SecretName"] = round.Secret.Name
	}
	if opponentRound != nil {
		data["Opponent"] = opponent
		data["OpponentUsed"] = opponentRound.AttemptsUsed()
		data["OpponentStatus"] = opponentRound.Status
	}
	return data
}

// resolveOutcome checks whether the session just became decided and, if so,
// persists leaderboard and round-history rows. Callers hold the session lock.
func resolveOutcome(session *models.Session) {
	if session.Status == "finished" {
		return
	}

	switch session.Mode {
	case models.ModeSolo:
		if session.Round1.Over() {
			session.Status = "finished"
			if session.Round1.Status == models.RoundWon {
				session.Winner = session.Player1
			}
		}
	default: // ai, duel: first correct name wins, two busts is a draw
		switch {
		case session.Round1.Status == models.RoundWon:
			session.Status = "finished"
			session.Winner = session.Player1
		case session.Round2 != nil && session.Round2.Status == models.RoundWon:
			session.Status = "finished"
			session.Winner = session.Player2
		case session.Round1.Over() && session.Round2 != nil && session.Round2.Over():
			session.Status = "finished"
			session.Winner = "Draw"
		}
	}

	if session.Status == "finished" {
		persistResults(session)
	}
}

func persistResults(session *models.Session) {
	recordRound(session, session.Player1, session.Round1)
	if session.Round2 != nil {
		recordRound(session, session.Player2, session.Round2)
	}
}

func recordRound(session *models.Session, username string, round *models.Round) {
	if username == "" || username == logic.AIPlayerName {
		return
	}

	_, err := db.DB.Exec(`
        INSERT INTO rounds (id, session_id, username, secret, guesses_used, outcome)
        VALUES (?, ?, ?, ?, ?, ?)
    `, uuid.NewString(), session.ID, username, round.Secret.Name, round.AttemptsUsed(), round.Status)
	if err != nil {
		zap.S().Errorw("round history insert failed", "error", err)
	}

	updateLeaderboard(username, round.Status == models.RoundWon, round.AttemptsUsed())
}

// Update (or insert) leaderboard for a user; counts the game, increments wins,
// and keeps best_score at the fewest guesses used on a win.
func updateLeaderboard(username string, won bool, attemptsUsed int) {
	var userID int
	err := db.DB.QueryRow("SELECT id FROM users WHERE username = ?", username).Scan(&userID)
	if err != nil {
		zap.S().Warnw("leaderboard update skipped, user not found", "username", username)
		return
	}

	wins, best := 0, 0
	if won {
		wins, best = 1, attemptsUsed
	}
	_, err = db.DB.Exec(`
        INSERT INTO leaderboard (user_id, wins, best_score, games_played)
        VALUES (?, ?, ?, 1)
        ON CONFLICT(user_id) DO UPDATE SET
            wins = wins + excluded.wins,
            games_played = games_played + 1,
            best_score = CASE
                WHEN excluded.wins > 0 AND (best_score = 0 OR excluded.best_score < best_score)
                THEN excluded.best_score
                ELSE best_score
            END
    `, userID, wins, best)
	if err != nil {
		zap.S().Errorw("leaderboard update failed", "error", err)
	}
}

// State endpoint: Used for HTMX/live updates, returns the current session view.
func StateHandler(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie("game_id")
	if err != nil || cookie.Value == "" {
		http.Error(w, "Missing game ID", http.StatusBadRequest)
		return
	}
	session := getSession(cookie.Value)
	if session == nil {
		http.Error(w, "Game not found", http.StatusNotFound)
		return
	}

	role := ""
	if roleCookie, err := r.Cookie("role"); err == nil {
		role = roleCookie.Value
	}

	session.Lock()
	waiting := session.Status == "waiting"
	session.Unlock()

	// Waiting room poll: once the opponent arrives, bounce the creator to /play.
	if !waiting && r.URL.Query().Get("from") == "wait" {
		w.Header().Set("HX-Redirect", "/play")
		return
	}
	if waiting {
		utils.RenderPartial(w, r, "waiting.html", map[string]interface{}{
			"GameID":  session.ID,
			"Player1": session.Player1,
		})
		return
	}

	data := sessionState(session, role)
	data["MaxAttempts"] = cfg.MaxAttempts
	utils.RenderPartial(w, r, "play.html", data)
}
