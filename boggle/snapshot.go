package boggle

import (
	"sort"
	"time"
)

// BonusTimeEntry is one player's remaining bonus time, the wire shape for
// bonus_timer_update during WAITING.
type BonusTimeEntry struct {
	PlayerID  string `json:"player_id"`
	BonusTime int    `json:"bonus_time"`
}

// PlayerSnapshot is the wire-shaped view of a Player, never exposing
// RemoteAddress.
type PlayerSnapshot struct {
	ID             string   `json:"id"`
	Username       string   `json:"username"`
	Character      string   `json:"character"`
	IsReady        bool     `json:"is_ready"`
	Score          int      `json:"score"`
	WordsFound     int      `json:"words_found"`
	Powerups       []string `json:"powerups"`
	BonusTimeSecs  int      `json:"bonus_time_seconds"`
	IsTimeUp       bool     `json:"is_time_up"`
	WantsPlayAgain bool     `json:"wants_play_again"`
}

func (p *Player) snapshot() PlayerSnapshot {
	powerups := make([]string, len(p.Powerups))
	for i, k := range p.Powerups {
		powerups[i] = k.String()
	}
	return PlayerSnapshot{
		ID:             p.ID,
		Username:       p.Username,
		Character:      p.Character,
		IsReady:        p.IsReady,
		Score:          p.Score,
		WordsFound:     len(p.FoundWords),
		Powerups:       powerups,
		BonusTimeSecs:  p.BonusTimeSecs,
		IsTimeUp:       p.IsTimeUp,
		WantsPlayAgain: p.WantsPlayAgain,
	}
}

// BoardSnapshot is the wire-shaped grid of tiles.
type BoardSnapshot struct {
	Size  int        `json:"size"`
	Cells [][]string `json:"cells"`
}

func (b *Board) snapshot() *BoardSnapshot {
	if b == nil {
		return nil
	}
	cells := make([][]string, b.Size)
	for r := range cells {
		cells[r] = append([]string(nil), b.Cells[r]...)
	}
	return &BoardSnapshot{Size: b.Size, Cells: cells}
}

// BlockedCellSnapshot mirrors BlockedCell for the wire, expressing the
// expiry as seconds remaining rather than an absolute timestamp.
type BlockedCellSnapshot struct {
	Row           int `json:"row"`
	Col           int `json:"col"`
	SecondsLeft   int `json:"seconds_left"`
}

// LobbySnapshot is the complete wire-shaped game_state payload for a
// lobby, built fresh on demand rather than cached.
type LobbySnapshot struct {
	ID               string                `json:"id"`
	HostID           string                `json:"host_id"`
	Status           string                `json:"status"`
	BoardSize        int                   `json:"board_size"`
	Board            *BoardSnapshot        `json:"board,omitempty"`
	Players          []PlayerSnapshot      `json:"players"`
	MainTimerSeconds int                   `json:"main_timer_seconds"`
	CountdownLeft    int                   `json:"countdown_left,omitempty"`
	BlockedCells     []BlockedCellSnapshot `json:"blocked_cells,omitempty"`
}

// Snapshot builds the JSON-ready view of the lobby as seen by a specific
// viewer, honoring that viewer's LOCK override board if one is active.
func (l *Lobby) Snapshot(viewerID string, now time.Time) LobbySnapshot {
	l.mu.Lock()
	defer l.mu.Unlock()

	players := make([]PlayerSnapshot, len(l.Players))
	for i, p := range l.Players {
		players[i] = p.snapshot()
	}

	board := EffectiveBoard(l.Powerups, l.Board, viewerID)

	var blocked []BlockedCellSnapshot
	for _, c := range ActiveBlockedCells(l.Powerups, now) {
		blocked = append(blocked, BlockedCellSnapshot{
			Row: c.Row, Col: c.Col,
			SecondsLeft: int(c.ExpiresAt.Sub(now).Seconds()),
		})
	}

	return LobbySnapshot{
		ID:               l.ID,
		HostID:           l.HostID,
		Status:           l.Status.String(),
		BoardSize:        l.BoardSize,
		Board:            board.snapshot(),
		Players:          players,
		MainTimerSeconds: l.MainTimerSeconds,
		CountdownLeft:    l.CountdownLeft,
		BlockedCells:     blocked,
	}
}

// BoardUpdateSnapshot is the wire shape of a board_update event, emitted
// after SHUFFLE: the new shared board plus whichever players kept their
// pre-shuffle view via LOCK.
type BoardUpdateSnapshot struct {
	Board            *BoardSnapshot            `json:"board"`
	ProtectedPlayers []string                  `json:"protected_players"`
	ProtectedBoards  map[string]*BoardSnapshot `json:"protected_boards,omitempty"`
	ShuffledBy       string                    `json:"shuffled_by"`
}

// BoardUpdateSnapshot builds the board_update payload for a SHUFFLE fired
// by shuffledBy.
func (l *Lobby) BoardUpdateSnapshot(shuffledBy string) BoardUpdateSnapshot {
	l.mu.Lock()
	defer l.mu.Unlock()

	protected := make([]string, 0, len(l.Powerups.BoardOverrides))
	boards := make(map[string]*BoardSnapshot, len(l.Powerups.BoardOverrides))
	for id, b := range l.Powerups.BoardOverrides {
		protected = append(protected, id)
		boards[id] = b.snapshot()
	}
	sort.Strings(protected)

	return BoardUpdateSnapshot{
		Board:            l.Board.snapshot(),
		ProtectedPlayers: protected,
		ProtectedBoards:  boards,
		ShuffledBy:       shuffledBy,
	}
}
