// Package registry owns the set of live lobbies, creating, finding, and
// reaping them the way the teacher's lobby package manages tables.
package registry

import (
	"crypto/rand"
	"fmt"
	"log"
	"sync"
	"time"

	"wordgrid/boggle"
	"wordgrid/internal/engine"
)

const (
	defaultIdleLobbyTTL    = 10 * time.Minute
	defaultCleanupInterval = 1 * time.Minute

	lobbyIDAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	lobbyIDLength   = 6
)

// Registry tracks every active lobby's Engine.
type Registry struct {
	mu      sync.RWMutex
	lobbies map[string]*engine.Engine
	lastSeen map[string]time.Time

	dict        boggle.Dictionary
	broadcaster engine.Broadcaster

	idleTTL         time.Duration
	cleanupInterval time.Duration
	done            chan struct{}
	stopOnce        sync.Once
}

// New creates a Registry and starts its idle-reap goroutine.
func New(dict boggle.Dictionary, broadcaster engine.Broadcaster) *Registry {
	r := &Registry{
		lobbies:         make(map[string]*engine.Engine),
		lastSeen:        make(map[string]time.Time),
		dict:            dict,
		broadcaster:     broadcaster,
		idleTTL:         defaultIdleLobbyTTL,
		cleanupInterval: defaultCleanupInterval,
		done:            make(chan struct{}),
	}
	go r.cleanupLoop()
	return r
}

// Create allocates a fresh lobby id and engine, defaulting to a medium
// board, and returns it.
func (r *Registry) Create(boardSize int) (*engine.Engine, error) {
	if !boggle.ValidBoardSize(boardSize) {
		boardSize = boggle.BoardSizeMedium
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	id, err := r.freshIDLocked()
	if err != nil {
		return nil, err
	}
	e := engine.New(id, boardSize, r.dict, r.broadcaster)
	r.lobbies[id] = e
	r.lastSeen[id] = time.Now()
	log.Printf("[registry] created lobby %s (size=%d)", id, boardSize)
	return e, nil
}

// Get returns the Engine for id, or nil if it doesn't exist.
func (r *Registry) Get(id string) *engine.Engine {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.lobbies[id]
}

// Touch refreshes the idle clock for id; the gateway calls it when a
// player joins.
func (r *Registry) Touch(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.lobbies[id]; ok {
		r.lastSeen[id] = time.Now()
	}
}

func (r *Registry) freshIDLocked() (string, error) {
	for attempt := 0; attempt < 10; attempt++ {
		id, err := randomLobbyID()
		if err != nil {
			return "", err
		}
		if _, exists := r.lobbies[id]; !exists {
			return id, nil
		}
	}
	return "", fmt.Errorf("could not allocate a unique lobby id")
}

func randomLobbyID() (string, error) {
	buf := make([]byte, lobbyIDLength)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	id := make([]byte, lobbyIDLength)
	for i, b := range buf {
		id[i] = lobbyIDAlphabet[int(b)%len(lobbyIDAlphabet)]
	}
	return string(id), nil
}

func (r *Registry) cleanupLoop() {
	ticker := time.NewTicker(r.cleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			r.CleanupIdle()
		case <-r.done:
			return
		}
	}
}

// CleanupIdle removes and closes every lobby that is empty and has been
// idle past idleTTL, returning the count removed.
func (r *Registry) CleanupIdle() int {
	r.mu.Lock()
	var idle []*engine.Engine
	for id, e := range r.lobbies {
		if !e.Lobby.IsEmpty() {
			continue
		}
		if time.Since(r.lastSeen[id]) < r.idleTTL {
			continue
		}
		idle = append(idle, e)
		delete(r.lobbies, id)
		delete(r.lastSeen, id)
	}
	r.mu.Unlock()

	for _, e := range idle {
		e.Close()
		log.Printf("[registry] reaped idle lobby %s", e.Lobby.ID)
	}
	return len(idle)
}

// Stop shuts down housekeeping and every lobby's actor goroutine.
func (r *Registry) Stop() {
	r.stopOnce.Do(func() {
		close(r.done)

		r.mu.Lock()
		lobbies := make([]*engine.Engine, 0, len(r.lobbies))
		for _, e := range r.lobbies {
			lobbies = append(lobbies, e)
		}
		r.lobbies = make(map[string]*engine.Engine)
		r.mu.Unlock()

		for _, e := range lobbies {
			e.Close()
		}
	})
}
