package boggle

import "errors"

var (
	ErrLobbyNotFound    = errors.New("lobby not found")
	ErrLobbyFull        = errors.New("lobby full")
	ErrPlayerNotFound   = errors.New("player not found")
	ErrNotHost          = errors.New("not the host")
	ErrWrongPhase       = errors.New("not allowed in current phase")
	ErrInvalidBoardSize = errors.New("invalid board size")

	ErrAlreadyFound = errors.New("word already found")
	ErrNotOnBoard   = errors.New("word not found on board")
	ErrNotAWord     = errors.New("not a valid dictionary word")
)

// InvalidStateError marks an invariant break that should never happen in
// practice; unlike the sentinel errors above it is not a rejection the
// caller is expected to recover from.
type InvalidStateError string

func (e InvalidStateError) Error() string { return "invalid state: " + string(e) }

func errInvalidState(msg string) error { return InvalidStateError(msg) }
