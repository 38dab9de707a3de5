package gateway

import (
	"encoding/json"
	"log"
	"strings"

	"wordgrid/boggle"
	"wordgrid/internal/engine"
)

type boardSizeIntent struct {
	BoardSize int `json:"size"`
}

type submitWordIntent struct {
	Word string            `json:"word"`
	Path []boggle.PathCell `json:"path"`
}

type usePowerupIntent struct {
	Powerup string `json:"powerup"`
}

// handleMessage decodes the {type, data} envelope and dispatches it to the
// matching handler. Unknown types are logged and ignored rather than
// closing the connection, matching §7's "reject, never crash" posture.
// Lobby membership itself is established at connect time (see
// HandleWebSocket), not through a post-connect intent.
func (c *Connection) handleMessage(raw []byte) {
	var msg inboundMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		c.sendError("invalid message format")
		return
	}

	switch msg.Type {
	case "toggle_ready":
		c.handleToggleReady()
	case "set_board_size":
		c.handleSetBoardSize(msg.Data)
	case "start_game":
		c.handleStartGame()
	case "submit_word":
		c.handleSubmitWord(msg.Data)
	case "use_powerup":
		c.handleUsePowerup(msg.Data)
	case "want_play_again":
		c.handleWantPlayAgain()
	case "reset_game":
		c.handleResetGame()
	case "leave_lobby":
		c.handleLeaveLobby()
	default:
		log.Printf("[gateway] unknown intent type %q from %s", msg.Type, c.ID)
	}
}

func (c *Connection) handleToggleReady() {
	if !c.requireEngine() {
		return
	}
	resp := c.Engine.Post(engine.Event{Type: engine.EventToggleReady, PlayerID: c.PlayerID, Response: make(chan engine.Response, 1)})
	if resp.Err != nil {
		c.sendError(resp.Err.Error())
	}
}

func (c *Connection) handleSetBoardSize(data json.RawMessage) {
	if !c.requireEngine() {
		return
	}
	var intent boardSizeIntent
	if err := json.Unmarshal(data, &intent); err != nil {
		c.sendError("invalid set_board_size payload")
		return
	}
	resp := c.Engine.Post(engine.Event{Type: engine.EventSetBoardSize, PlayerID: c.PlayerID, BoardSize: intent.BoardSize, Response: make(chan engine.Response, 1)})
	if resp.Err != nil {
		c.sendError(resp.Err.Error())
	}
}

func (c *Connection) handleStartGame() {
	if !c.requireEngine() {
		return
	}
	resp := c.Engine.Post(engine.Event{Type: engine.EventStartGame, PlayerID: c.PlayerID, Response: make(chan engine.Response, 1)})
	if resp.Err != nil {
		c.sendError(resp.Err.Error())
	}
}

// handleSubmitWord always replies with a personal word_result frame, for
// both accepted and rejected submissions, then broadcasts score_update to
// the whole lobby if it was accepted — in that order, so the
// submitter never sees score_update arrive before their own word_result.
func (c *Connection) handleSubmitWord(data json.RawMessage) {
	if !c.requireEngine() {
		return
	}
	var intent submitWordIntent
	if err := json.Unmarshal(data, &intent); err != nil {
		c.sendError("invalid submit_word payload")
		return
	}
	word := strings.ToUpper(strings.TrimSpace(intent.Word))
	resp := c.Engine.Post(engine.Event{
		Type:     engine.EventSubmitWord,
		PlayerID: c.PlayerID,
		Word:     word,
		Path:     intent.Path,
		Response: make(chan engine.Response, 1),
	})
	result, ok := resp.Payload.(engine.SubmitWordResult)
	if !ok {
		c.sendError("submission failed")
		return
	}
	c.sendJSON("word_result", result.Personal)
	if result.Broadcast != nil {
		c.Gateway.Broadcast(c.LobbyID, "score_update", result.Broadcast)
	}
}

func (c *Connection) handleUsePowerup(data json.RawMessage) {
	if !c.requireEngine() {
		return
	}
	var intent usePowerupIntent
	if err := json.Unmarshal(data, &intent); err != nil {
		c.sendError("invalid use_powerup payload")
		return
	}
	kind, ok := boggle.ParsePowerupKind(strings.ToLower(strings.TrimSpace(intent.Powerup)))
	if !ok {
		c.sendError("unknown powerup")
		return
	}
	resp := c.Engine.Post(engine.Event{Type: engine.EventUsePowerup, PlayerID: c.PlayerID, Powerup: kind, Response: make(chan engine.Response, 1)})
	if resp.Err != nil {
		c.sendError(resp.Err.Error())
	}
}

func (c *Connection) handleWantPlayAgain() {
	if !c.requireEngine() {
		return
	}
	resp := c.Engine.Post(engine.Event{Type: engine.EventWantPlayAgain, PlayerID: c.PlayerID, Response: make(chan engine.Response, 1)})
	if resp.Err != nil {
		c.sendError(resp.Err.Error())
	}
}

func (c *Connection) handleResetGame() {
	if !c.requireEngine() {
		return
	}
	resp := c.Engine.Post(engine.Event{Type: engine.EventResetGame, PlayerID: c.PlayerID, Response: make(chan engine.Response, 1)})
	if resp.Err != nil {
		c.sendError(resp.Err.Error())
	}
}

func (c *Connection) handleLeaveLobby() {
	if !c.requireEngine() {
		return
	}
	c.Engine.Post(engine.Event{Type: engine.EventLeave, PlayerID: c.PlayerID})
	c.Gateway.mu.Lock()
	c.LobbyID = ""
	c.Engine = nil
	c.Gateway.mu.Unlock()
}

func (c *Connection) requireEngine() bool {
	if c.Engine == nil {
		c.sendError("not in a lobby")
		return false
	}
	return true
}
