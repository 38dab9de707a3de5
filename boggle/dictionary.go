package boggle

import (
	"bufio"
	"os"
	"strings"
)

// WordList is the default Dictionary implementation: a word set plus its
// derived prefix set, so the solver can prune dead DFS branches in O(1).
type WordList struct {
	words    map[string]bool
	prefixes map[string]bool
}

// NewWordList builds a WordList from words, uppercasing and filtering to
// the 3-15 letter alphabetic range the original dictionary loader enforces.
func NewWordList(words []string) *WordList {
	wl := &WordList{words: make(map[string]bool), prefixes: make(map[string]bool)}
	for _, w := range words {
		wl.add(w)
	}
	return wl
}

func (wl *WordList) add(raw string) {
	w := strings.ToUpper(strings.TrimSpace(raw))
	if len(w) < 3 || len(w) > 15 || !isAlpha(w) {
		return
	}
	wl.words[w] = true
	for i := 1; i <= len(w); i++ {
		wl.prefixes[w[:i]] = true
	}
}

func isAlpha(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 'A' || s[i] > 'Z' {
			return false
		}
	}
	return true
}

// Contains reports whether word is a valid dictionary entry.
func (wl *WordList) Contains(word string) bool { return wl.words[strings.ToUpper(word)] }

// HasPrefix reports whether prefix begins some dictionary word.
func (wl *WordList) HasPrefix(prefix string) bool { return wl.prefixes[strings.ToUpper(prefix)] }

// LoadWordListFile reads one word per line from path.
func LoadWordListFile(path string) (*WordList, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var words []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		words = append(words, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return NewWordList(words), nil
}

// fallbackWords is a small built-in word set used when no dictionary file
// is configured, e.g. local development or unit tests.
var fallbackWords = []string{
	"THE", "AND", "FOR", "ARE", "BUT", "NOT", "YOU", "ALL", "CAN", "HER",
	"WAS", "ONE", "OUR", "OUT", "DAY", "GET", "HAS", "HIM", "HIS", "HOW",
	"MAN", "NEW", "NOW", "OLD", "SEE", "TWO", "WAY", "WHO", "BOY", "DID",
	"ITS", "LET", "PUT", "SAY", "SHE", "TOO", "USE", "CAT", "DOG", "RUN",
	"SUN", "SEA", "TEA", "EAT", "EAR", "ART", "ANT", "ARM", "ASK", "BAT",
	"BED", "BIG", "BOX", "BUS", "CAR", "CUP", "CUT", "EGG", "END", "EYE",
	"FAR", "FEW", "FLY", "FUN", "GUN", "HAT", "HOT", "ICE", "JOB", "JOY",
	"KEY", "KID", "LAW", "LEG", "LIP", "LOG", "LOT", "LOW", "MAP", "MIX",
	"MOM", "MUD", "NET", "OIL", "OWL", "PEN", "PET", "PIE", "PIG", "PIN",
	"POT", "RED", "RIB", "ROW", "SAD", "SET", "SIT", "SKY", "SON", "TAX",
	"TEAM", "TIME", "WORD", "PLAY", "GAME", "TREE", "FISH", "BIRD", "STAR",
	"MOON", "RAIN", "SNOW", "WIND", "FIRE", "ROCK", "SAND", "LAKE", "HILL",
	"ROAD", "GATE", "DOOR", "WALL", "ROOM", "BOOK", "PAGE", "WORK", "HOME",
	"LOVE", "LIFE", "HAND", "FOOT", "HEAD", "FACE", "HAIR", "NOSE", "TOOTH",
	"QUAD", "QUIZ", "QUIT", "QUIET", "QUEEN", "QUICK", "SQUID", "EQUAL",
}

// NewFallbackWordList returns a WordList seeded from the built-in fallback
// set, large enough to exercise tests without a real dictionary file.
func NewFallbackWordList() *WordList { return NewWordList(fallbackWords) }
