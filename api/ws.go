package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/Diplo2by/cricktle/logic"
	"github.com/Diplo2by/cricktle/models"
)

// Represents a single WebSocket client connection.
// 'role' distinguishes the two seats (or a watcher, if extended).
type Client struct {
	conn *websocket.Conn
	role string // "1" or "2"
}

var (
	// Global registry: for every session ID, all currently connected clients.
	clients   = make(map[string][]*Client)
	clientsMu sync.Mutex // Guards all access to the above map.

	// Allows WebSocket upgrade; insecurely allows *any* origin. Fine in dev, dangerous in prod.
	upgrader = websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool { return true },
	}
)

// Format for all WebSocket messages (sent and received).
type WSMessage struct {
	GameID  string      `json:"game_id"`
	Action  string      `json:"action"`  // e.g. "state", "guess", "error"
	Player  string      `json:"player"`  // optional
	Payload string      `json:"payload"` // e.g. guessed player name
	State   interface{} `json:"state"`   // embedded rendered session state per client
}

// ----------- WebSocket Handler ----------- //

// HTTP handler: Upgrade connection to WebSocket and process guess messages.
// Path: /ws
func WebSocketHandler(w http.ResponseWriter, r *http.Request) {
	// Ensure the user is authenticated (has cookie)
	userCookie, err := r.Cookie("user")
	if err != nil || userCookie.Value == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	// Require session context
	gameCookie, err := r.Cookie("game_id")
	if err != nil || gameCookie.Value == "" {
		http.Error(w, "Missing game ID", http.StatusBadRequest)
		return
	}
	// Seat role ("1", "2"); fallback "" if missing
	roleCookie, err := r.Cookie("role")
	role := ""
	if err == nil {
		role = roleCookie.Value
	}
	gameID := gameCookie.Value

	// Upgrade HTTP conn to WebSocket (handshake/protocol switch)
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		zap.S().Errorw("websocket upgrade failed", "error", err)
		return
	}

	client := &Client{
		conn: conn,
		role: role,
	}

	// Register this client connection with its session, thread-safe.
	clientsMu.Lock()
	clients[gameID] = append(clients[gameID], client)
	clientsMu.Unlock()

	// On function exit (client disconnect or handler exit), remove this client.
	defer func() {
		clientsMu.Lock()
		clientsForGame := clients[gameID]
		for i, c := range clientsForGame {
			if c == client {
				clients[gameID] = append(clientsForGame[:i], clientsForGame[i+1:]...)
				break
			}
		}
		// If this was the last client for the session, drop the entry.
		if len(clients[gameID]) == 0 {
			delete(clients, gameID)
		}
		clientsMu.Unlock()
		conn.Close()
	}()

	// Main receive loop: wait for client messages
	for {
		_, msgBytes, err := client.conn.ReadMessage()
		if err != nil {
			break // client disconnected or error
		}

		var msg WSMessage
		if err := json.Unmarshal(msgBytes, &msg); err != nil {
			zap.S().Debugw("invalid ws message", "error", err)
			continue
		}

		if msg.Action != "guess" {
			continue
		}

		// Use gameID/role for *this* connection rather than trusting payload.
		session := getSession(gameID)
		if session == nil {
			continue
		}

		// Guess, AI reply, and outcome settle as one unit under the
		// session lock; the opposing seat submits from its own connection.
		result, err := submitAndSettle(session, client.role, msg.Payload)
		if err != nil {
			sendGuessError(client, session, msg.Payload, err)
			continue
		}
		zap.S().Debugw("guess resolved",
			"game", session.ID,
			"player", result.Player.Name,
			"remaining", result.AttemptsRemaining,
		)

		// Broadcast updated state to *all* clients for this session.
		BroadcastToClients(WSMessage{
			GameID: session.ID,
			Action: "state",
		})
	}
}

// Per-guess errors are private: they go back on the guesser's own connection
// and never consume an attempt.
func sendGuessError(client *Client, session *models.Session, payload string, err error) {
	var text string
	switch {
	case errors.Is(err, logic.ErrEmptyInput):
		text = "Type a player name first."
	case errors.Is(err, logic.ErrUnknownPlayer):
		text = fmt.Sprintf("No player called %q.", payload)
		if closest := store.Closest(payload); closest != "" {
			text = fmt.Sprintf("No player called %q. Did you mean %s?", payload, closest)
		}
	case errors.Is(err, logic.ErrRoundOver):
		text = "Your round is over."
	default:
		text = "Guess failed."
	}

	errMsg := WSMessage{
		GameID:  session.ID,
		Action:  "error",
		Payload: text,
	}
	data, _ := json.Marshal(errMsg)
	client.conn.WriteMessage(websocket.TextMessage, data)
}

// Broadcast a message (with session state) to every WebSocket client for the
// session. Each client gets their own seat's view of state.
func BroadcastToClients(msg WSMessage) {
	clientsMu.Lock()
	defer clientsMu.Unlock()

	gameID := msg.GameID

	clientsForGame, ok := clients[gameID]
	if !ok {
		return
	}

	session := getSession(gameID)
	if session == nil {
		return
	}

	// Build every seat's view in one pass under the session lock, then write
	// without it held.
	states := make(map[*Client]interface{}, len(clientsForGame))
	session.Lock()
	for _, client := range clientsForGame {
		states[client] = buildSessionState(session, client.role)
	}
	session.Unlock()

	var dead []*Client
	for _, client := range clientsForGame {
		// Each client gets its own seat's view of the session.
		msg.State = states[client]

		data, err := json.Marshal(msg)
		if err != nil {
			zap.S().Errorw("marshal ws message failed", "error", err)
			continue
		}

		if err := client.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			zap.S().Debugw("ws write failed, closing conn", "error", err)
			client.conn.Close()
			dead = append(dead, client)
		}
	}

	// Prune after the loop so a removal never shifts clients still pending a write.
	if len(dead) > 0 {
		clients[gameID] = pruneClients(clientsForGame, dead)
		if len(clients[gameID]) == 0 {
			delete(clients, gameID)
		}
	}
}

// pruneClients returns list without the clients in dead, preserving order.
func pruneClients(list, dead []*Client) []*Client {
	kept := list[:0]
	for _, c := range list {
		alive := true
		for _, d := range dead {
			if c == d {
				alive = false
				break
			}
		}
		if alive {
			kept = append(kept, c)
		}
	}
	return kept
}

// Goroutine starter: listens on the global wsBroadcast chan and rebroadcasts.
// Lets other goroutines trigger a broadcast by sending to wsBroadcast.
func StartWSBroadcaster() {
	go func() {
		for {
			msg := <-wsBroadcast
			BroadcastToClients(msg)
		}
	}()
}
