// Package admin exposes the gateway's diagnostic surface over HTTP
// (read-only listings plus a manual GC trigger), the debugging visibility a browser's devtools Application panel
// would have given a real Service Worker (SPEC_FULL.md §6). Routed with
// go-chi/chi, already exercised by the teacher's own test harness.
package admin

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/appcacheshim/appcache/gc"
	"github.com/appcacheshim/appcache/store"
)

// Router builds the admin mux: GET /manifests, GET /clients, POST /gc.
func Router(db *store.DB, sweeper *gc.Sweeper) chi.Router {
	r := chi.NewRouter()
	r.Get("/manifests", listManifests(db))
	r.Get("/clients", listClients(db))
	r.Post("/gc", runGC(sweeper))
	return r
}

type manifestSummary struct {
	URL     string   `json:"url"`
	Current string   `json:"current,omitempty"`
	Hashes  []string `json:"hashes"`
}

func listManifests(db *store.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		urls, err := db.AllManifestURLs()
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		summaries := make([]manifestSummary, 0, len(urls))
		for _, u := range urls {
			history, err := db.History(u)
			if err != nil {
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}
			s := manifestSummary{URL: u}
			if cur, ok := history.Current(); ok {
				s.Current = cur.Hash
			}
			for _, v := range history {
				s.Hashes = append(s.Hashes, v.Hash)
			}
			summaries = append(summaries, s)
		}
		writeJSON(w, summaries)
	}
}

type clientSummary struct {
	ClientID string    `json:"clientId"`
	URL      string    `json:"url"`
	LastSeen time.Time `json:"lastSeen"`
	Hash     string    `json:"hash,omitempty"`
}

func listClients(db *store.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessions, err := db.AllSessions()
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		hashes, err := db.AllClientHashes()
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		summaries := make([]clientSummary, 0, len(sessions))
		for id, sess := range sessions {
			summaries = append(summaries, clientSummary{
				ClientID: id,
				URL:      sess.URL,
				LastSeen: sess.LastSeen,
				Hash:     hashes[id],
			})
		}
		writeJSON(w, summaries)
	}
}

func runGC(sweeper *gc.Sweeper) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := sweeper.Sweep(time.Now())
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, stats)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
