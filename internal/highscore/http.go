package highscore

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// HTTPHandler exposes the leaderboard and per-player stats over HTTP.
type HTTPHandler struct {
	store Store
}

// NewHTTPHandler wraps store for RegisterRoutes.
func NewHTTPHandler(store Store) *HTTPHandler {
	return &HTTPHandler{store: store}
}

// RegisterRoutes wires the leaderboard and stats endpoints onto mux.
func (h *HTTPHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/leaderboard", h.handleLeaderboard)
	mux.HandleFunc("/api/player-stats", h.handlePlayerStats)
}

func (h *HTTPHandler) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	limit := ClampLeaderboardLimit(parseIntOrZero(r.URL.Query().Get("limit")))
	records, err := h.store.Leaderboard(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "leaderboard query failed")
		return
	}
	entries := make([]recordView, len(records))
	for i, rec := range records {
		entries[i] = withHuman(rec)
	}
	writeJSON(w, http.StatusOK, map[string]any{"leaderboard": entries})
}

// recordView adds human-readable relative timestamps ("3 days ago") on top
// of a Record's raw unix fields, for clients that just want to display them.
type recordView struct {
	Record
	LastPlayedHuman   string `json:"last_played_human"`
	BestGameDateHuman string `json:"best_game_date_human"`
}

func withHuman(rec Record) recordView {
	v := recordView{Record: rec}
	if rec.LastPlayedUnix > 0 {
		v.LastPlayedHuman = humanize.Time(time.Unix(rec.LastPlayedUnix, 0))
	}
	if rec.BestGameDateUnix > 0 {
		v.BestGameDateHuman = humanize.Time(time.Unix(rec.BestGameDateUnix, 0))
	}
	return v
}

// handlePlayerStats distinguishes a brand-new player (no record yet) from
// a returning one by setting is_new_player rather than erroring.
func (h *HTTPHandler) handlePlayerStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	addr := RemoteAddress(r)
	ipHash := HashAddress(addr)

	record, ok, err := h.store.Stats(r.Context(), ipHash)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "stats query failed")
		return
	}
	if !ok {
		writeJSON(w, http.StatusOK, map[string]any{"stats": nil, "is_new_player": true})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"stats": withHuman(*record), "is_new_player": false})
}

func parseIntOrZero(raw string) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return n
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// RemoteAddress resolves the caller's address from forwarded headers
// first, falling back to RemoteAddr, matching the reverse-proxy-aware
// resolution the original stats endpoint relies on.
func RemoteAddress(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		parts := strings.Split(fwd, ",")
		return strings.TrimSpace(parts[0])
	}
	if real := r.Header.Get("X-Real-IP"); real != "" {
		return strings.TrimSpace(real)
	}
	host := r.RemoteAddr
	if idx := strings.LastIndex(host, ":"); idx != -1 {
		return host[:idx]
	}
	return host
}
