package engine

import (
	"sync"
	"testing"
	"time"

	"wordgrid/boggle"
)

type recordingBroadcaster struct {
	mu   sync.Mutex
	kind []string
}

func (r *recordingBroadcaster) Broadcast(lobbyID, kind string, payload any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.kind = append(r.kind, kind)
}

func (r *recordingBroadcaster) saw(kind string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, k := range r.kind {
		if k == kind {
			return true
		}
	}
	return false
}

func postAndWait(t *testing.T, e *Engine, ev Event) Response {
	t.Helper()
	ev.Response = make(chan Response, 1)
	return e.Post(ev)
}

func TestJoinToggleReadyAndStartGame(t *testing.T) {
	bc := &recordingBroadcaster{}
	e := New("TEST01", boggle.BoardSizeMedium, boggle.NewFallbackWordList(), bc)
	defer e.Close()

	resp := postAndWait(t, e, Event{Type: EventJoin, PlayerID: "p1", Username: "Alice", RemoteAddr: "127.0.0.1"})
	if resp.Err != nil {
		t.Fatalf("join: %v", resp.Err)
	}

	resp = postAndWait(t, e, Event{Type: EventToggleReady, PlayerID: "p1"})
	if resp.Err != nil {
		t.Fatalf("toggle ready: %v", resp.Err)
	}

	resp = postAndWait(t, e, Event{Type: EventStartGame, PlayerID: "p1"})
	if resp.Err != nil {
		t.Fatalf("start game: %v", resp.Err)
	}
	if e.Lobby.Status != boggle.StatusCountdown {
		t.Fatalf("expected StatusCountdown after start, got %v", e.Lobby.Status)
	}
	if !bc.saw("lobby_update") {
		t.Fatalf("expected a lobby_update broadcast after join/ready/start")
	}
}

func TestStartGameRejectsNonHost(t *testing.T) {
	e := New("TEST02", boggle.BoardSizeMedium, boggle.NewFallbackWordList(), &recordingBroadcaster{})
	defer e.Close()

	postAndWait(t, e, Event{Type: EventJoin, PlayerID: "host", RemoteAddr: "1.1.1.1"})
	postAndWait(t, e, Event{Type: EventJoin, PlayerID: "guest", RemoteAddr: "2.2.2.2"})

	resp := postAndWait(t, e, Event{Type: EventStartGame, PlayerID: "guest"})
	if resp.Err != boggle.ErrNotHost {
		t.Fatalf("expected ErrNotHost, got %v", resp.Err)
	}
}

func TestCountdownAdvancesIntoPlaying(t *testing.T) {
	e := New("TEST03", boggle.BoardSizeMedium, boggle.NewFallbackWordList(), &recordingBroadcaster{})
	defer e.Close()

	postAndWait(t, e, Event{Type: EventJoin, PlayerID: "host", RemoteAddr: "1.1.1.1"})
	postAndWait(t, e, Event{Type: EventStartGame, PlayerID: "host"})

	e.countdownTick = 1 // force the next tick to cross into PLAYING
	e.tick()

	if e.Lobby.Status != boggle.StatusPlaying {
		t.Fatalf("expected StatusPlaying, got %v", e.Lobby.Status)
	}
}

func TestTickPlayingSkipsWaitingWithNoBonusTime(t *testing.T) {
	bc := &recordingBroadcaster{}
	e := New("TEST05", boggle.BoardSizeMedium, boggle.NewFallbackWordList(), bc)
	defer e.Close()

	postAndWait(t, e, Event{Type: EventJoin, PlayerID: "p1", RemoteAddr: "1.1.1.1"})
	postAndWait(t, e, Event{Type: EventStartGame, PlayerID: "p1"})
	e.Lobby.BeginPlaying()

	e.playingTick = 1
	e.tick()

	if e.Lobby.Status != boggle.StatusSummary {
		t.Fatalf("expected StatusSummary when nobody has bonus time, got %v", e.Lobby.Status)
	}
	if bc.saw("waiting_phase") {
		t.Fatal("WAITING should be skipped entirely when no player has bonus time")
	}
	if !bc.saw("game_end") {
		t.Fatal("expected game_end to be broadcast")
	}
}

func TestTickPlayingEntersWaitingWithBonusTime(t *testing.T) {
	bc := &recordingBroadcaster{}
	e := New("TEST06", boggle.BoardSizeMedium, boggle.NewFallbackWordList(), bc)
	defer e.Close()

	postAndWait(t, e, Event{Type: EventJoin, PlayerID: "p1", RemoteAddr: "1.1.1.1"})
	postAndWait(t, e, Event{Type: EventStartGame, PlayerID: "p1"})
	e.Lobby.BeginPlaying()
	if p := e.Lobby.Player("p1"); p != nil {
		p.BonusTimeSecs = 2
	}

	e.playingTick = 1
	e.tick()

	if e.Lobby.Status != boggle.StatusWaiting {
		t.Fatalf("expected StatusWaiting, got %v", e.Lobby.Status)
	}
	if !bc.saw("waiting_phase") {
		t.Fatal("expected waiting_phase broadcast")
	}

	e.tick() // bonus time 2 -> 1
	if e.Lobby.Status != boggle.StatusWaiting {
		t.Fatalf("expected still StatusWaiting after one bonus tick, got %v", e.Lobby.Status)
	}
	e.tick() // bonus time 1 -> 0, should finalize
	if e.Lobby.Status != boggle.StatusSummary {
		t.Fatalf("expected StatusSummary once bonus time is exhausted, got %v", e.Lobby.Status)
	}
	if !bc.saw("player_time_up") {
		t.Fatal("expected a player_time_up broadcast once bonus time hit zero")
	}
}

func TestWantPlayAgainTransitionsToLobbyOnceAllVote(t *testing.T) {
	bc := &recordingBroadcaster{}
	e := New("TEST07", boggle.BoardSizeMedium, boggle.NewFallbackWordList(), bc)
	defer e.Close()

	postAndWait(t, e, Event{Type: EventJoin, PlayerID: "p1", RemoteAddr: "1.1.1.1"})
	postAndWait(t, e, Event{Type: EventJoin, PlayerID: "p2", RemoteAddr: "2.2.2.2"})
	e.Lobby.EnterSummary()

	resp := postAndWait(t, e, Event{Type: EventWantPlayAgain, PlayerID: "p1"})
	if resp.Err != nil {
		t.Fatalf("want_play_again: %v", resp.Err)
	}
	if e.Lobby.Status != boggle.StatusSummary {
		t.Fatalf("expected still StatusSummary with one of two voted, got %v", e.Lobby.Status)
	}

	resp = postAndWait(t, e, Event{Type: EventWantPlayAgain, PlayerID: "p2"})
	if resp.Err != nil {
		t.Fatalf("want_play_again: %v", resp.Err)
	}
	if e.Lobby.Status != boggle.StatusLobby {
		t.Fatalf("expected StatusLobby once all players voted, got %v", e.Lobby.Status)
	}
	if !bc.saw("play_again_update") {
		t.Fatal("expected a play_again_update broadcast")
	}
}

func TestWantPlayAgainRejectedOutsideSummary(t *testing.T) {
	e := New("TEST08", boggle.BoardSizeMedium, boggle.NewFallbackWordList(), &recordingBroadcaster{})
	defer e.Close()

	postAndWait(t, e, Event{Type: EventJoin, PlayerID: "p1", RemoteAddr: "1.1.1.1"})
	resp := postAndWait(t, e, Event{Type: EventWantPlayAgain, PlayerID: "p1"})
	if resp.Err != boggle.ErrWrongPhase {
		t.Fatalf("expected ErrWrongPhase outside SUMMARY, got %v", resp.Err)
	}
}

func TestPostAfterCloseReturnsErrEngineClosed(t *testing.T) {
	e := New("TEST04", boggle.BoardSizeMedium, boggle.NewFallbackWordList(), &recordingBroadcaster{})
	e.Close()
	// give the actor goroutine a moment to observe done and return
	time.Sleep(10 * time.Millisecond)

	resp := e.Post(Event{Type: EventToggleReady, PlayerID: "nobody"})
	if resp.Err != ErrEngineClosed {
		t.Fatalf("expected ErrEngineClosed, got %v", resp.Err)
	}
}
