package registry

import (
	"testing"
	"time"

	"wordgrid/boggle"
)

type fakeBroadcaster struct{}

func (fakeBroadcaster) Broadcast(lobbyID, kind string, payload any) {}

func TestCreateAssignsUniqueJoinableID(t *testing.T) {
	r := New(boggle.NewFallbackWordList(), fakeBroadcaster{})
	defer r.Stop()

	e, err := r.Create(boggle.BoardSizeMedium)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(e.Lobby.ID) != lobbyIDLength {
		t.Fatalf("expected a %d-character id, got %q", lobbyIDLength, e.Lobby.ID)
	}
	if got := r.Get(e.Lobby.ID); got != e {
		t.Fatalf("Get did not return the created engine")
	}
}

func TestCreateDefaultsInvalidBoardSize(t *testing.T) {
	r := New(boggle.NewFallbackWordList(), fakeBroadcaster{})
	defer r.Stop()

	e, err := r.Create(999)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if e.Lobby.BoardSize != boggle.BoardSizeMedium {
		t.Fatalf("expected fallback to medium board, got %d", e.Lobby.BoardSize)
	}
}

func TestGetUnknownIDReturnsNil(t *testing.T) {
	r := New(boggle.NewFallbackWordList(), fakeBroadcaster{})
	defer r.Stop()

	if r.Get("NOSUCH") != nil {
		t.Fatalf("expected nil for an unknown lobby id")
	}
}

func TestCleanupIdleReapsOnlyEmptyExpiredLobbies(t *testing.T) {
	r := New(boggle.NewFallbackWordList(), fakeBroadcaster{})
	defer r.Stop()
	r.idleTTL = 0 // expire immediately for the test

	empty, err := r.Create(boggle.BoardSizeMedium)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	occupied, err := r.Create(boggle.BoardSizeMedium)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := occupied.Lobby.Join("p1", "Alice", "", "127.0.0.1"); err != nil {
		t.Fatalf("Join: %v", err)
	}

	time.Sleep(time.Millisecond)
	removed := r.CleanupIdle()
	if removed != 1 {
		t.Fatalf("expected exactly 1 reaped lobby, got %d", removed)
	}
	if r.Get(empty.Lobby.ID) != nil {
		t.Fatalf("expected the empty lobby to be reaped")
	}
	if r.Get(occupied.Lobby.ID) == nil {
		t.Fatalf("expected the occupied lobby to survive cleanup")
	}
}

func TestStopClearsTheRegistry(t *testing.T) {
	r := New(boggle.NewFallbackWordList(), fakeBroadcaster{})
	e, err := r.Create(boggle.BoardSizeMedium)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	id := e.Lobby.ID
	r.Stop()

	if r.Get(id) != nil {
		t.Fatalf("expected the registry to forget every lobby after Stop")
	}
	// Stop must be idempotent.
	r.Stop()
}
