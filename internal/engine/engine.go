// Package engine drives a single lobby's lifecycle as an actor: one
// goroutine owns the lobby state and all intents/timers funnel through a
// single event channel, so nothing inside boggle.Lobby needs to worry
// about concurrent callers.
package engine

import (
	"errors"
	"log"
	"math/rand"
	"time"

	"wordgrid/boggle"
)

// EventType enumerates the intents and internal signals the actor handles.
type EventType int

const (
	EventJoin EventType = iota
	EventLeave
	EventToggleReady
	EventSetBoardSize
	EventStartGame
	EventSubmitWord
	EventUsePowerup
	EventWantPlayAgain
	EventResetGame
	EventClose
)

// Event is a single message posted to the lobby actor's queue.
type Event struct {
	Type       EventType
	PlayerID   string
	Username   string
	Character  string
	RemoteAddr string
	BoardSize  int
	Word       string
	Path       []boggle.PathCell
	Powerup    boggle.PowerupKind
	Response   chan Response
}

// Response carries a handler's result back to the caller that posted the
// Event, along with whatever broadcast-worthy payload resulted.
type Response struct {
	Err     error
	Payload any
}

// ErrEngineClosed is returned for any event posted after Close.
var ErrEngineClosed = errors.New("engine closed")

// Broadcaster is how the engine tells the outside world what happened.
// kind is the wire message type (e.g. "game_state", "word_result").
type Broadcaster interface {
	Broadcast(lobbyID string, kind string, payload any)
}

const tickInterval = time.Second

// Engine owns one boggle.Lobby and its actor goroutine.
type Engine struct {
	Lobby *boggle.Lobby
	dict  boggle.Dictionary
	rng   *rand.Rand

	broadcaster Broadcaster
	events      chan Event
	done        chan struct{}

	countdownTick int
	playingTick   int
}

// New builds an Engine for lobbyID and spawns its actor goroutine.
func New(lobbyID string, boardSize int, dict boggle.Dictionary, broadcaster Broadcaster) *Engine {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	e := &Engine{
		Lobby:       boggle.NewLobby(lobbyID, boardSize, rng),
		dict:        dict,
		rng:         rng,
		broadcaster: broadcaster,
		events:      make(chan Event, 256),
		done:        make(chan struct{}),
	}
	go e.run()
	return e
}

// Post sends ev to the actor and blocks for its Response if ev.Response is
// non-nil. Safe to call from any goroutine. Checks done first so a closed
// engine reliably reports ErrEngineClosed instead of racing a buffered send
// against the close signal.
func (e *Engine) Post(ev Event) Response {
	select {
	case <-e.done:
		return Response{Err: ErrEngineClosed}
	default:
	}
	select {
	case e.events <- ev:
	case <-e.done:
		return Response{Err: ErrEngineClosed}
	}
	if ev.Response == nil {
		return Response{}
	}
	return <-ev.Response
}

// Close stops the actor goroutine.
func (e *Engine) Close() {
	select {
	case <-e.done:
	default:
		close(e.done)
	}
}

func (e *Engine) run() {
	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	for {
		select {
		case ev := <-e.events:
			resp := e.handle(ev)
			if ev.Response != nil {
				ev.Response <- resp
			}
			if ev.Type == EventClose {
				return
			}
		case <-ticker.C:
			e.tick()
		case <-e.done:
			return
		}
	}
}

func (e *Engine) handle(ev Event) Response {
	switch ev.Type {
	case EventJoin:
		p, err := e.Lobby.Join(ev.PlayerID, ev.Username, ev.Character, ev.RemoteAddr)
		if err == nil {
			e.broadcastState()
		}
		return Response{Err: err, Payload: p}

	case EventLeave:
		e.Lobby.Leave(ev.PlayerID)
		if !e.Lobby.IsEmpty() {
			e.broadcastState()
		}
		return Response{}

	case EventToggleReady:
		err := e.Lobby.ToggleReady(ev.PlayerID)
		if err == nil {
			e.broadcastState()
		}
		return Response{Err: err}

	case EventSetBoardSize:
		err := e.Lobby.SetBoardSize(ev.PlayerID, ev.BoardSize)
		if err == nil {
			e.broadcastState()
		}
		return Response{Err: err}

	case EventStartGame:
		err := e.Lobby.StartGame(ev.PlayerID)
		if err == nil {
			e.countdownTick = boggle.CountdownSeconds
			e.broadcastState()
		}
		return Response{Err: err}

	case EventSubmitWord:
		return e.handleSubmitWord(ev)

	case EventUsePowerup:
		return e.handleUsePowerup(ev)

	case EventWantPlayAgain:
		return e.handleWantPlayAgain(ev)

	case EventResetGame:
		e.Lobby.ResetToLobby()
		e.broadcastState()
		return Response{}

	case EventClose:
		return Response{}

	default:
		return Response{Err: errors.New("unknown event type")}
	}
}

// broadcastState fans the current lobby snapshot out to every connection
// joined to it, used after any intent that changes player/lobby state
// outside of the timer-driven tick transitions (those broadcast their own
// event kinds directly).
func (e *Engine) broadcastState() {
	e.broadcaster.Broadcast(e.Lobby.ID, "lobby_update", e.Lobby.Snapshot("", time.Now()))
}

// SubmitWordResult carries the personal word_result payload and, only when
// the submission was accepted, the score_update payload to broadcast after
// it. Keeping them separate lets the caller send personal-then-broadcast in
// that order, per §5's delivery guarantee for a submitting player's own
// connection.
type SubmitWordResult struct {
	Personal  map[string]any
	Broadcast map[string]any
}

func (e *Engine) handleSubmitWord(ev Event) Response {
	result, err := e.Lobby.SubmitWord(ev.PlayerID, ev.Word, ev.Path, e.dict, e.rng)
	if err != nil {
		return Response{Payload: SubmitWordResult{Personal: map[string]any{
			"valid":  false,
			"reason": boggle.SubmissionReason(err),
		}}}
	}

	personal := map[string]any{"valid": true, "points": result.Score}
	broadcast := map[string]any{"player_id": ev.PlayerID, "score": result.Score}
	if player := e.Lobby.Player(ev.PlayerID); player != nil {
		personal["total_score"] = player.Score
		broadcast["total_score"] = player.Score
	}
	if result.Earned {
		personal["powerup"] = result.EarnedKind.String()
		broadcast["powerup"] = result.EarnedKind.String()
	}
	return Response{Payload: SubmitWordResult{Personal: personal, Broadcast: broadcast}}
}

func (e *Engine) handleUsePowerup(ev Event) Response {
	player := e.Lobby.Player(ev.PlayerID)
	if player == nil {
		return Response{Err: boggle.ErrPlayerNotFound}
	}
	if !player.ConsumePowerup(ev.Powerup) {
		// Misuse (no such powerup held) is ignored, not an error surfaced
		// to the caller loudly; a nil error with no broadcast is enough.
		return Response{}
	}

	effect := boggle.ApplyPowerup(e.Lobby.Powerups, e.Lobby.Board, player, ev.Powerup, time.Now(), e.rng)

	event := map[string]any{"type": ev.Powerup.String(), "by": ev.PlayerID}
	switch ev.Powerup {
	case boggle.PowerupFreeze:
		event["bonus_time_seconds"] = effect.BonusTime
	case boggle.PowerupBlowup:
		event["blocked_cells"] = effect.Blocked
	case boggle.PowerupShuffle:
		e.broadcaster.Broadcast(e.Lobby.ID, "board_update", e.Lobby.BoardUpdateSnapshot(ev.PlayerID))
	case boggle.PowerupLock:
		event["lock_armed"] = true
	}
	e.broadcaster.Broadcast(e.Lobby.ID, "powerup_event", event)
	e.broadcaster.Broadcast(e.Lobby.ID, "powerup_consumed", map[string]any{
		"player_id": ev.PlayerID,
		"powerups":  powerupStrings(player.Powerups),
	})
	return Response{}
}

func powerupStrings(kinds []boggle.PowerupKind) []string {
	out := make([]string, len(kinds))
	for i, k := range kinds {
		out[i] = k.String()
	}
	return out
}

func (e *Engine) handleWantPlayAgain(ev Event) Response {
	if err := e.Lobby.SetWantsPlayAgain(ev.PlayerID); err != nil {
		return Response{Err: err}
	}
	ids, all := e.Lobby.PlayAgainStatus()
	e.broadcaster.Broadcast(e.Lobby.ID, "play_again_update", map[string]any{
		"player_id":     ev.PlayerID,
		"players_ready": ids,
		"all_ready":     all,
	})
	if all {
		e.Lobby.ResetToLobby()
		e.broadcastState()
	}
	return Response{}
}

// tick advances any running timer by one tickInterval's worth of real time.
func (e *Engine) tick() {
	switch e.Lobby.Status {
	case boggle.StatusCountdown:
		e.tickCountdown()
	case boggle.StatusPlaying:
		e.tickPlaying()
	case boggle.StatusWaiting:
		e.tickWaiting()
	}
}

// tickCountdown emits the full lobby snapshot every second of the
// countdown, per §4.7's COUNTDOWN row ("full state each second").
func (e *Engine) tickCountdown() {
	e.countdownTick--
	if e.countdownTick <= 0 {
		e.Lobby.BeginPlaying()
		e.playingTick = e.Lobby.MainTimerSeconds
		e.broadcaster.Broadcast(e.Lobby.ID, "game_state", e.Lobby.Snapshot("", time.Now()))
		return
	}
	e.Lobby.CountdownLeft = e.countdownTick
	e.broadcaster.Broadcast(e.Lobby.ID, "game_state", e.Lobby.Snapshot("", time.Now()))
}

// tickPlaying counts the main timer down. Once it hits zero, players are
// partitioned by whether they still have bonus time: with none, the game
// finalizes immediately; otherwise WAITING begins for those who do.
func (e *Engine) tickPlaying() {
	e.playingTick--
	if e.playingTick <= 0 {
		finished, active := e.Lobby.PartitionBonusTime()
		if len(active) == 0 {
			e.finalizeGame()
			return
		}
		e.Lobby.EnterWaiting()
		e.broadcaster.Broadcast(e.Lobby.ID, "waiting_phase", map[string]any{
			"players_finished":   finished,
			"players_with_bonus": e.Lobby.BonusTimeSnapshot(active),
		})
		return
	}
	e.broadcaster.Broadcast(e.Lobby.ID, "timer_update", map[string]any{"timer": e.playingTick})
}

// tickWaiting decrements every still-counting player's bonus time by one
// second, announcing each one that just runs out, until all of them have,
// at which point the game finalizes into SUMMARY.
func (e *Engine) tickWaiting() {
	justFinished, remaining := e.Lobby.TickBonusTime()
	for _, id := range justFinished {
		e.broadcaster.Broadcast(e.Lobby.ID, "player_time_up", map[string]any{"player_id": id})
	}
	e.broadcaster.Broadcast(e.Lobby.ID, "bonus_timer_update", remaining)

	if e.Lobby.AllBonusTimeExhausted() {
		e.finalizeGame()
	}
}

func (e *Engine) finalizeGame() {
	summary := e.Lobby.Finalize(e.dict)
	e.Lobby.EnterSummary()
	e.broadcaster.Broadcast(e.Lobby.ID, "game_end", summary)
	log.Printf("lobby %s finalized, winner=%s", e.Lobby.ID, summary.WinnerID)
}
