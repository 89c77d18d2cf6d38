package admin

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/appcacheshim/appcache/gc"
	"github.com/appcacheshim/appcache/manifest"
	"github.com/appcacheshim/appcache/store"
	"github.com/rs/zerolog"
)

func openDB(t *testing.T) *store.DB {
	t.Helper()
	db, err := store.Open("")
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestListManifests(t *testing.T) {
	db := openDB(t)
	history := manifest.History{}.Append(manifest.Version{Hash: "h1"})
	if err := db.PutHistory("https://s/m.appcache", history); err != nil {
		t.Fatalf("PutHistory: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/manifests", nil)
	rr := httptest.NewRecorder()
	Router(db, &gc.Sweeper{DB: db, Log: zerolog.Nop()}).ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	if got := rr.Body.String(); len(got) == 0 {
		t.Fatal("expected a non-empty JSON body")
	}
}

func TestRunGCEndpoint(t *testing.T) {
	db := openDB(t)
	req := httptest.NewRequest(http.MethodPost, "/gc", nil)
	rr := httptest.NewRecorder()
	Router(db, &gc.Sweeper{DB: db, Liveness: time.Minute, Log: zerolog.Nop()}).ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rr.Code, rr.Body.String())
	}
}
