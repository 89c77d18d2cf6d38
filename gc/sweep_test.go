package gc

import (
	"net/http"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/appcacheshim/appcache/manifest"
	"github.com/appcacheshim/appcache/store"
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

func TestSweepExpiresStaleSessionsAndClients(t *testing.T) {
	db := openDB(t)
	now := time.Now()

	if err := db.TouchSession("client-old", "https://s/page", now.Add(-time.Hour)); err != nil {
		t.Fatalf("TouchSession: %v", err)
	}
	if err := db.PutClientHash("client-old", "hash1"); err != nil {
		t.Fatalf("PutClientHash: %v", err)
	}

	sw := &Sweeper{DB: db, Liveness: time.Minute, Log: zerolog.Nop()}
	stats, err := sw.Sweep(now)
	if err != nil {
		t.Fatalf("Sweep: %v", err)
	}
	if stats.SessionsExpired != 1 || stats.ClientsExpired != 1 {
		t.Fatalf("stats = %+v, want 1 expired session and client", stats)
	}

	if _, ok, _ := db.Session("client-old"); ok {
		t.Fatal("expected stale session to be removed")
	}
	if _, ok, _ := db.ClientHash("client-old"); ok {
		t.Fatal("expected stale client hash to be removed")
	}
}

func TestSweepKeepsSessionsWithinLivenessWindow(t *testing.T) {
	db := openDB(t)
	now := time.Now()

	if err := db.TouchSession("client-live", "https://s/page", now.Add(-10*time.Second)); err != nil {
		t.Fatalf("TouchSession: %v", err)
	}
	if err := db.PutClientHash("client-live", "hash1"); err != nil {
		t.Fatalf("PutClientHash: %v", err)
	}

	sw := &Sweeper{DB: db, Liveness: time.Minute, Log: zerolog.Nop()}
	stats, err := sw.Sweep(now)
	if err != nil {
		t.Fatalf("Sweep: %v", err)
	}
	if stats.SessionsExpired != 0 || stats.ClientsExpired != 0 {
		t.Fatalf("stats = %+v, want nothing expired", stats)
	}
}

func TestSweepDeletesUnreferencedBucketsButKeepsCurrent(t *testing.T) {
	db := openDB(t)
	now := time.Now()

	history := manifest.History{}.
		Append(manifest.Version{Hash: "hash-old"}).
		Append(manifest.Version{Hash: "hash-current"})
	if err := db.PutHistory("https://s/m.appcache", history); err != nil {
		t.Fatalf("PutHistory: %v", err)
	}
	for _, h := range []string{"hash-old", "hash-current"} {
		if err := db.PutResponse(h, "https://s/a.js", &http.Response{
			StatusCode: 200, Header: http.Header{},
			Body: http.NoBody,
		}, now, now); err != nil {
			t.Fatalf("PutResponse(%s): %v", h, err)
		}
	}

	sw := &Sweeper{DB: db, Liveness: time.Minute, Log: zerolog.Nop()}
	stats, err := sw.Sweep(now)
	if err != nil {
		t.Fatalf("Sweep: %v", err)
	}
	if stats.BucketsDeleted != 1 || stats.VersionsPruned != 1 {
		t.Fatalf("stats = %+v, want exactly the old unreferenced version pruned", stats)
	}

	if exists, _ := db.BucketExists("hash-old"); exists {
		t.Fatal("expected unreferenced old bucket to be deleted")
	}
	if exists, _ := db.BucketExists("hash-current"); !exists {
		t.Fatal("expected current bucket to survive GC")
	}

	newHistory, err := db.History("https://s/m.appcache")
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(newHistory) != 1 || newHistory[0].Hash != "hash-current" {
		t.Fatalf("history after sweep = %+v", newHistory)
	}
}

func TestSweepKeepsVersionReferencedByLiveClient(t *testing.T) {
	db := openDB(t)
	now := time.Now()

	history := manifest.History{}.
		Append(manifest.Version{Hash: "hash-old"}).
		Append(manifest.Version{Hash: "hash-current"})
	if err := db.PutHistory("https://s/m.appcache", history); err != nil {
		t.Fatalf("PutHistory: %v", err)
	}
	if err := db.TouchSession("client-pinned", "https://s/page", now); err != nil {
		t.Fatalf("TouchSession: %v", err)
	}
	if err := db.PutClientHash("client-pinned", "hash-old"); err != nil {
		t.Fatalf("PutClientHash: %v", err)
	}
	if err := db.PutResponse("hash-old", "https://s/a.js", &http.Response{
		StatusCode: 200, Header: http.Header{}, Body: http.NoBody,
	}, now, now); err != nil {
		t.Fatalf("PutResponse: %v", err)
	}

	sw := &Sweeper{DB: db, Liveness: time.Minute, Log: zerolog.Nop()}
	stats, err := sw.Sweep(now)
	if err != nil {
		t.Fatalf("Sweep: %v", err)
	}
	if stats.BucketsDeleted != 0 || stats.VersionsPruned != 0 {
		t.Fatalf("stats = %+v, want nothing pruned while a live client references hash-old", stats)
	}
}
