package main

import (
	"log"
	"net/http"
	"os"
	"strings"

	"wordgrid/boggle"
	"wordgrid/internal/gateway"
	"wordgrid/internal/highscore"
	"wordgrid/internal/registry"
)

func main() {
	dict := loadDictionary()

	scores, highscoreMode, err := highscore.NewStoreFromEnv()
	if err != nil {
		log.Fatalf("[server] failed to init high score store: %v", err)
	}
	defer scores.Close()

	gw := &gatewayHolder{}
	reg := registry.New(dict, gw)
	defer reg.Stop()
	gw.gateway = gateway.New(reg, scores)

	scoresHTTP := highscore.NewHTTPHandler(scores)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws/{lobby_id}/{player_id}", gw.gateway.HandleWebSocket)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	scoresHTTP.RegisterRoutes(mux)

	addr := strings.TrimSpace(os.Getenv("SERVER_ADDR"))
	if addr == "" {
		addr = ":18080"
	}
	log.Printf("[server] high score mode: %s", highscoreMode)
	log.Printf("[server] starting websocket server on %s", addr)
	if err := http.ListenAndServe(addr, withCORS(mux)); err != nil {
		log.Fatalf("[server] failed to start: %v", err)
	}
}

// gatewayHolder breaks the registry<->gateway initialization cycle: the
// registry needs a Broadcaster at construction time, but the gateway needs
// the registry. gatewayHolder implements engine.Broadcaster by forwarding
// to whichever *gateway.Gateway is assigned after both exist.
type gatewayHolder struct {
	gateway *gateway.Gateway
}

func (h *gatewayHolder) Broadcast(lobbyID, kind string, payload any) {
	if h.gateway != nil {
		h.gateway.Broadcast(lobbyID, kind, payload)
	}
}

func loadDictionary() boggle.Dictionary {
	paths := []string{
		strings.TrimSpace(os.Getenv("DICTIONARY_PATH")),
		"data/words.txt",
		"../../data/words.txt",
	}
	for _, p := range paths {
		if p == "" {
			continue
		}
		wl, err := boggle.LoadWordListFile(p)
		if err == nil {
			log.Printf("[server] dictionary loaded from %s", p)
			return wl
		}
	}
	log.Printf("[server] no dictionary file found, using built-in fallback word list")
	return boggle.NewFallbackWordList()
}

func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
