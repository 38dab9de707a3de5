package boggle

import "time"

// Status is the lobby lifecycle phase.
type Status byte

const (
	StatusLobby Status = iota
	StatusCountdown
	StatusPlaying
	StatusWaiting
	StatusSummary
)

var statusNames = map[Status]string{
	StatusLobby:     "lobby",
	StatusCountdown: "countdown",
	StatusPlaying:   "playing",
	StatusWaiting:   "waiting",
	StatusSummary:   "summary",
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "unknown"
}

// PowerupKind enumerates the four powerup effects.
type PowerupKind byte

const (
	PowerupNone PowerupKind = iota
	PowerupFreeze
	PowerupBlowup
	PowerupShuffle
	PowerupLock
)

var powerupNames = map[PowerupKind]string{
	PowerupFreeze:  "freeze",
	PowerupBlowup:  "blowup",
	PowerupShuffle: "shuffle",
	PowerupLock:    "lock",
}

var powerupByName = map[string]PowerupKind{
	"freeze":  PowerupFreeze,
	"blowup":  PowerupBlowup,
	"shuffle": PowerupShuffle,
	"lock":    PowerupLock,
}

func (k PowerupKind) String() string {
	if name, ok := powerupNames[k]; ok {
		return name
	}
	return ""
}

// ParsePowerupKind maps a wire string to a PowerupKind. ok is false for an
// unrecognized name.
func ParsePowerupKind(name string) (PowerupKind, bool) {
	k, ok := powerupByName[name]
	return k, ok
}

// earnablePowerups is the pool §4.4 samples from when a long word is found.
// LOCK is never earned this way — it is not awarded automatically in the
// observed source, and this implementation preserves that behavior.
var earnablePowerups = []PowerupKind{PowerupFreeze, PowerupBlowup, PowerupShuffle}

// Player is a single participant of a lobby.
type Player struct {
	ID              string
	Username        string
	Character       string
	IsReady         bool
	Score           int
	FoundWords      []string
	Powerups        []PowerupKind
	BonusTimeSecs   int
	IsTimeUp        bool
	WantsPlayAgain  bool
	RemoteAddress   string
	joinedAt        time.Time
}

func newPlayer(id, username, character, remoteAddress string) *Player {
	return &Player{
		ID:            id,
		Username:      username,
		Character:     character,
		RemoteAddress: remoteAddress,
		FoundWords:    make([]string, 0),
		Powerups:      make([]PowerupKind, 0),
		joinedAt:      time.Now(),
	}
}

func (p *Player) hasFoundWord(word string) bool {
	for _, w := range p.FoundWords {
		if w == word {
			return true
		}
	}
	return false
}

func (p *Player) hasPowerup(kind PowerupKind) bool {
	for _, k := range p.Powerups {
		if k == kind {
			return true
		}
	}
	return false
}

// ConsumePowerup removes one instance of kind from the player's inventory.
// Reports false if the player did not hold it (powerup misuse is ignored
// silently per §7).
func (p *Player) ConsumePowerup(kind PowerupKind) bool {
	for i, k := range p.Powerups {
		if k == kind {
			p.Powerups = append(p.Powerups[:i], p.Powerups[i+1:]...)
			return true
		}
	}
	return false
}

func (p *Player) resetForNewGame() {
	p.Score = 0
	p.FoundWords = make([]string, 0)
	p.Powerups = make([]PowerupKind, 0)
	p.BonusTimeSecs = 0
	p.IsTimeUp = false
	p.WantsPlayAgain = false
}
