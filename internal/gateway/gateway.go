// Package gateway terminates websocket connections and translates
// {type, data} JSON frames into engine.Event intents, mirroring the
// connection/read-pump/write-pump shape of a binary-protocol gateway but
// framed as JSON per this system's wire contract.
package gateway

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"wordgrid/boggle"
	"wordgrid/internal/engine"
	"wordgrid/internal/highscore"
	"wordgrid/internal/registry"
)

func contextWithTimeout() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 5*time.Second)
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingInterval   = 30 * time.Second
	maxMessageSize = 65536
)

// Connection is one client's websocket session, joined to at most one
// lobby at a time.
type Connection struct {
	ID            string
	PlayerID      string
	RemoteAddress string
	Conn          *websocket.Conn
	Send          chan []byte
	Gateway       *Gateway

	LobbyID string
	Engine  *engine.Engine
}

// Gateway owns every live Connection and dispatches inbound intents to the
// lobby registry.
type Gateway struct {
	mu          sync.RWMutex
	connections map[string]*Connection

	registry   *registry.Registry
	highscores highscore.Store
}

// New builds a Gateway wired to reg for lobby lookups and scores for
// recording completed games.
func New(reg *registry.Registry, scores highscore.Store) *Gateway {
	return &Gateway{
		connections: make(map[string]*Connection),
		registry:    reg,
		highscores:  scores,
	}
}

// inboundMessage is the {type, data} envelope every client frame uses.
type inboundMessage struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// Broadcast implements engine.Broadcaster by fanning a {type, data}
// envelope out to every connection currently joined to lobbyID.
func (g *Gateway) Broadcast(lobbyID, kind string, payload any) {
	if kind == "game_end" {
		if summary, ok := payload.(boggle.Summary); ok {
			g.recordHighScores(summary)
		}
	}

	frame, err := json.Marshal(struct {
		Type string `json:"type"`
		Data any    `json:"data"`
	}{Type: kind, Data: payload})
	if err != nil {
		log.Printf("[gateway] marshal broadcast %s: %v", kind, err)
		return
	}

	g.mu.RLock()
	defer g.mu.RUnlock()
	for _, c := range g.connections {
		if c.LobbyID != lobbyID {
			continue
		}
		select {
		case c.Send <- frame:
		default:
			// Drop if the connection's buffer is full rather than block
			// the whole broadcast on one slow reader.
		}
	}
}

// HandleWebSocket implements the §6 connection handshake: lobby_id and
// player_id come from the URL path, username/character/mode from the query
// string. mode=create joins lobby_id if it names an existing lobby, and
// otherwise creates a new lobby under a freshly generated id (the requested
// lobby_id is not reused); mode=join only ever joins an existing lobby,
// closing with a policy-violation code if lobby_id is unknown or full.
func (g *Gateway) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	lobbyID := strings.ToUpper(strings.TrimSpace(r.PathValue("lobby_id")))
	playerID := strings.TrimSpace(r.PathValue("player_id"))
	username := r.URL.Query().Get("username")
	character := r.URL.Query().Get("character")
	mode := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("mode")))

	if playerID == "" {
		http.Error(w, "player_id is required", http.StatusBadRequest)
		return
	}

	var e *engine.Engine
	switch mode {
	case "create":
		if lobbyID != "" {
			e = g.registry.Get(lobbyID)
		}
		if e == nil {
			var err error
			e, err = g.registry.Create(boggle.BoardSizeMedium)
			if err != nil {
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}
		}
	case "join":
		e = g.registry.Get(lobbyID)
	default:
		http.Error(w, `mode must be "create" or "join"`, http.StatusBadRequest)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[gateway] upgrade error: %v", err)
		return
	}

	if e == nil {
		closePolicyViolation(conn, boggle.ErrLobbyNotFound.Error())
		return
	}

	joinResp := e.Post(engine.Event{
		Type:       engine.EventJoin,
		PlayerID:   playerID,
		Username:   username,
		Character:  character,
		RemoteAddr: highscore.RemoteAddress(r),
		Response:   make(chan engine.Response, 1),
	})
	if joinResp.Err != nil {
		closePolicyViolation(conn, joinResp.Err.Error())
		return
	}
	g.registry.Touch(e.Lobby.ID)

	connID := "conn_" + uuid.NewString()
	c := &Connection{
		ID:            connID,
		PlayerID:      playerID,
		RemoteAddress: highscore.RemoteAddress(r),
		Conn:          conn,
		Send:          make(chan []byte, 256),
		Gateway:       g,
		LobbyID:       e.Lobby.ID,
		Engine:        e,
	}

	g.mu.Lock()
	g.connections[connID] = c
	g.mu.Unlock()

	log.Printf("[gateway] client %s (player %s) connected to lobby %s", connID, playerID, e.Lobby.ID)

	go c.writePump()
	go c.readPump()

	c.sendJSON("lobby_joined", map[string]any{"lobby_id": e.Lobby.ID})
	c.sendJSON("game_state", e.Lobby.Snapshot(playerID, time.Now()))
}

// closePolicyViolation sends a websocket close frame with code 1008
// (policy violation) and reason, then closes the underlying connection.
// Used when a handshake names an unknown or full lobby.
func closePolicyViolation(conn *websocket.Conn, reason string) {
	msg := websocket.FormatCloseMessage(websocket.ClosePolicyViolation, reason)
	conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
	conn.Close()
}

// recordHighScores persists one high-score update per player in summary,
// run in the background so a slow store never holds up the broadcast.
func (g *Gateway) recordHighScores(summary boggle.Summary) {
	if g.highscores == nil {
		return
	}
	now := time.Now().Unix()
	for _, result := range summary.Results {
		result := result
		won := result.PlayerID == summary.WinnerID
		go func() {
			ipHash := highscore.HashAddress(result.RemoteAddress)
			ctx, cancel := contextWithTimeout()
			defer cancel()
			if err := g.highscores.UpdateScore(ctx, ipHash, result.Username, result.Score, result.WordsFound, result.ChallengesCompleted, won, now); err != nil {
				log.Printf("[gateway] high score update failed for %s: %v", result.PlayerID, err)
			}
		}()
	}
}

func (c *Connection) readPump() {
	defer func() {
		c.Gateway.removeConnection(c)
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("[gateway] read error: %v", err)
			}
			break
		}
		c.handleMessage(data)
	}
}

func (c *Connection) writePump() {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (g *Gateway) removeConnection(c *Connection) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.connections, c.ID)
	if c.Engine != nil {
		c.Engine.Post(engine.Event{Type: engine.EventLeave, PlayerID: c.PlayerID})
	}
	log.Printf("[gateway] client disconnected: %s", c.ID)
}

func (c *Connection) sendError(msg string) {
	frame, _ := json.Marshal(struct {
		Type string `json:"type"`
		Data any    `json:"data"`
	}{Type: "error", Data: map[string]string{"message": msg}})
	select {
	case c.Send <- frame:
	default:
	}
}

func (c *Connection) sendJSON(kind string, payload any) {
	frame, err := json.Marshal(struct {
		Type string `json:"type"`
		Data any    `json:"data"`
	}{Type: kind, Data: payload})
	if err != nil {
		return
	}
	select {
	case c.Send <- frame:
	default:
	}
}
