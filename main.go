package main

import (
	"net/http"

	"go.uber.org/zap"

	handlers "github.com/Diplo2by/cricktle/api"
	"github.com/Diplo2by/cricktle/config"
	"github.com/Diplo2by/cricktle/db"
	"github.com/Diplo2by/cricktle/players"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	cfg, err := config.Load()
	if err != nil {
		zap.S().Fatalw("config load failed", "error", err)
	}

	// Initialize the database and schema
	if err := db.InitDB(cfg.DBPath); err != nil {
		zap.S().Fatalw("database init failed", "error", err)
	}
	defer db.CloseDB()

	// Load the player dataset. Any DataError is fatal: no round is playable
	// without a valid player list.
	store, err := players.Load(cfg.PlayersFile)
	if err != nil {
		zap.S().Fatalw("player data load failed", "error", err)
	}
	zap.S().Infow("player data loaded", "players", store.Len(), "file", cfg.PlayersFile)

	handlers.Init(store, cfg)
	handlers.StartWSBroadcaster()

	// Serve HTML, JS, CSS, etc.
	fs := http.FileServer(http.Dir("./static"))
	http.Handle("/static/", http.StripPrefix("/static/", fs))

	// Home & public leaderboard
	http.HandleFunc("/", handlers.WelcomeHandler)
	http.HandleFunc("/leaderboard", handlers.LeaderboardHandler)

	// Route-safe REGISTER handler (GET + POST)
	http.HandleFunc("/register", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			handlers.RegisterPage(w, r)
		case http.MethodPost:
			handlers.RegisterHandler(w, r)
		default:
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		}
	})

	// Route-safe LOGIN handler (GET + POST)
	http.HandleFunc("/login", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			handlers.LoginPage(w, r)
		case http.MethodPost:
			handlers.LoginHandler(w, r)
		default:
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		}
	})

	// Logout
	http.HandleFunc("/logout", handlers.LogoutHandler)

	// Session handlers (authentication required inside handlers)
	http.HandleFunc("/create", handlers.CreateGameHandler)
	http.HandleFunc("/create_duel", handlers.CreateDuelHandler)
	http.HandleFunc("/create_ai", handlers.CreateAIHandler)
	http.HandleFunc("/join", handlers.JoinGameHandler)
	http.HandleFunc("/wait", handlers.WaitRoomHandler)
	http.HandleFunc("/play", handlers.PlayHandler)
	http.HandleFunc("/guess", handlers.GuessHandler)
	http.HandleFunc("/reset", handlers.ResetHandler)
	http.HandleFunc("/state", handlers.StateHandler) // For htmx updates
	http.HandleFunc("/suggest", handlers.SuggestHandler)
	http.HandleFunc("/ws", handlers.WebSocketHandler)

	// Start server
	zap.S().Infow("server running", "addr", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, nil); err != nil {
		zap.S().Fatalw("server stopped", "error", err)
	}
}
