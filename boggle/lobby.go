package boggle

import (
	"math/rand"
	"sync"
	"time"
)

// Lobby is the full in-memory state of one game room. All mutation goes
// through its methods, each of which takes mu itself (the engine that owns
// a Lobby serializes access via its event loop, not this mutex directly,
// but the mutex keeps Snapshot safe to call from another goroutine, e.g. an
// HTTP status endpoint).
type Lobby struct {
	mu sync.Mutex

	ID         string
	HostID     string
	Status     Status
	BoardSize  int
	Board      *Board
	Players    []*Player
	Challenges map[string]*ChallengeSet
	Powerups   *PowerupState

	MainTimerSeconds int
	CountdownLeft    int

	rng *rand.Rand
}

// NewLobby creates an empty lobby in StatusLobby; the first player to Join
// becomes its host.
func NewLobby(id string, boardSize int, rng *rand.Rand) *Lobby {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Lobby{
		ID:               id,
		Status:           StatusLobby,
		BoardSize:        boardSize,
		Players:          make([]*Player, 0, MaxPlayers),
		Challenges:       make(map[string]*ChallengeSet),
		Powerups:         NewPowerupState(),
		MainTimerSeconds: MainTimerSeconds(boardSize),
		rng:              rng,
	}
}

// Join adds a player, or is a no-op if the id already joined. Returns
// ErrLobbyFull once MaxPlayers is reached.
func (l *Lobby) Join(id, username, character, remoteAddress string) (*Player, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if p := l.findPlayerLocked(id); p != nil {
		return p, nil
	}
	if len(l.Players) >= MaxPlayers {
		return nil, ErrLobbyFull
	}

	p := newPlayer(id, username, character, remoteAddress)
	if len(l.Players) == 0 {
		l.HostID = id
	}
	l.Players = append(l.Players, p)
	return p, nil
}

// Leave removes a player. If the host left, hosting passes to the first
// remaining player, mirroring the reassignment the original engine does.
func (l *Lobby) Leave(id string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i, p := range l.Players {
		if p.ID == id {
			l.Players = append(l.Players[:i], l.Players[i+1:]...)
			break
		}
	}
	ClearLock(l.Powerups, id)
	delete(l.Challenges, id)

	if l.HostID == id && len(l.Players) > 0 {
		l.HostID = l.Players[0].ID
	}
}

// IsEmpty reports whether every player has left.
func (l *Lobby) IsEmpty() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.Players) == 0
}

// ToggleReady flips a player's ready flag.
func (l *Lobby) ToggleReady(id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	p := l.findPlayerLocked(id)
	if p == nil {
		return ErrPlayerNotFound
	}
	p.IsReady = !p.IsReady
	return nil
}

// SetBoardSize lets the host change board size while still in the lobby.
func (l *Lobby) SetBoardSize(requesterID string, size int) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if requesterID != l.HostID {
		return ErrNotHost
	}
	if l.Status != StatusLobby {
		return ErrWrongPhase
	}
	if err := validateBoardSize(size); err != nil {
		return err
	}
	l.BoardSize = size
	l.MainTimerSeconds = MainTimerSeconds(size)
	return nil
}

// StartGame generates the board, enters StatusCountdown, and seeds a fresh
// ChallengeSet per player. Only the host may start.
func (l *Lobby) StartGame(requesterID string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if requesterID != l.HostID {
		return ErrNotHost
	}
	if l.Status != StatusLobby {
		return ErrWrongPhase
	}

	board, err := GenerateBoard(l.BoardSize, l.rng)
	if err != nil {
		return err
	}
	l.Board = board
	l.Powerups = NewPowerupState()
	l.Challenges = make(map[string]*ChallengeSet, len(l.Players))
	for _, p := range l.Players {
		p.resetForNewGame()
		l.Challenges[p.ID] = NewChallengeSet()
	}
	l.Status = StatusCountdown
	l.CountdownLeft = CountdownSeconds
	return nil
}

// BeginPlaying transitions COUNTDOWN into PLAYING once the countdown
// reaches zero. Called by the engine's tick loop, not directly by intents.
func (l *Lobby) BeginPlaying() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Status = StatusPlaying
}

// EnterWaiting transitions PLAYING into WAITING, used once the main timer
// has run out while at least one player still has bonus time left.
func (l *Lobby) EnterWaiting() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Status = StatusWaiting
}

// EnterSummary transitions into StatusSummary.
func (l *Lobby) EnterSummary() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Status = StatusSummary
}

// ResetToLobby clears per-game state and returns to StatusLobby, the
// "play again" path.
func (l *Lobby) ResetToLobby() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Status = StatusLobby
	l.Board = nil
	l.CountdownLeft = 0
	l.Powerups = NewPowerupState()
	l.Challenges = make(map[string]*ChallengeSet)
	for _, p := range l.Players {
		p.resetForNewGame()
	}
}

func (l *Lobby) findPlayerLocked(id string) *Player {
	for _, p := range l.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// Player looks up a participant by id under lock.
func (l *Lobby) Player(id string) *Player {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.findPlayerLocked(id)
}

// AllReady reports whether every player has toggled ready (false for an
// empty lobby, matching the original engine's refusal to start with no one
// in it).
func (l *Lobby) AllReady() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.Players) == 0 {
		return false
	}
	for _, p := range l.Players {
		if !p.IsReady {
			return false
		}
	}
	return true
}

// SetWantsPlayAgain records id's vote to play again. Only valid in
// StatusSummary.
func (l *Lobby) SetWantsPlayAgain(id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.Status != StatusSummary {
		return ErrWrongPhase
	}
	p := l.findPlayerLocked(id)
	if p == nil {
		return ErrPlayerNotFound
	}
	p.WantsPlayAgain = true
	return nil
}

// PlayAgainStatus returns the ids of every player who has voted to play
// again, and whether that's all of them.
func (l *Lobby) PlayAgainStatus() (ids []string, all bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	all = len(l.Players) > 0
	for _, p := range l.Players {
		if p.WantsPlayAgain {
			ids = append(ids, p.ID)
		} else {
			all = false
		}
	}
	return ids, all
}

// PartitionBonusTime splits players by whether they have any bonus time
// left once the main timer has run out. Players with none are marked
// is_time_up immediately, since they have nothing left to wait out.
func (l *Lobby) PartitionBonusTime() (finished, active []string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, p := range l.Players {
		if p.BonusTimeSecs > 0 {
			active = append(active, p.ID)
		} else {
			p.IsTimeUp = true
			finished = append(finished, p.ID)
		}
	}
	return finished, active
}

// TickBonusTime decrements every player who isn't already time-up by one
// second. It returns the ids that reached zero on this tick and a snapshot
// of the players still counting down afterward.
func (l *Lobby) TickBonusTime() (justFinished []string, remaining []BonusTimeEntry) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, p := range l.Players {
		if p.IsTimeUp {
			continue
		}
		p.BonusTimeSecs--
		if p.BonusTimeSecs <= 0 {
			p.BonusTimeSecs = 0
			p.IsTimeUp = true
			justFinished = append(justFinished, p.ID)
			continue
		}
		remaining = append(remaining, BonusTimeEntry{PlayerID: p.ID, BonusTime: p.BonusTimeSecs})
	}
	return justFinished, remaining
}

// AllBonusTimeExhausted reports whether every player is marked is_time_up.
func (l *Lobby) AllBonusTimeExhausted() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, p := range l.Players {
		if !p.IsTimeUp {
			return false
		}
	}
	return true
}

// BonusTimeSnapshot returns the current {player_id, bonus_time} pairs for
// the given ids, in lobby order.
func (l *Lobby) BonusTimeSnapshot(ids []string) []BonusTimeEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	out := make([]BonusTimeEntry, 0, len(ids))
	for _, p := range l.Players {
		if want[p.ID] {
			out = append(out, BonusTimeEntry{PlayerID: p.ID, BonusTime: p.BonusTimeSecs})
		}
	}
	return out
}
