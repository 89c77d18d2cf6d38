package installer

import (
	"bytes"
	"io"
	"net/http"
	"testing"

	"github.com/rs/zerolog"

	"github.com/appcacheshim/appcache/store"
)

type stubResponse struct {
	status int
	body   string
	header http.Header
}

type stubFetcher struct {
	byURL map[string]stubResponse
	calls int
}

func (s *stubFetcher) Do(req *http.Request) (*http.Response, error) {
	s.calls++
	r, ok := s.byURL[req.URL.String()]
	if !ok {
		r = stubResponse{status: http.StatusNotFound, body: "not found"}
	}
	h := r.header
	if h == nil {
		h = http.Header{}
	}
	return &http.Response{
		StatusCode: r.status,
		Header:     h,
		Body:       io.NopCloser(bytes.NewReader([]byte(r.body))),
	}, nil
}

func openDB(t *testing.T) *store.DB {
	t.Helper()
	db, err := store.Open("")
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestInstallFreshManifest(t *testing.T) {
	db := openDB(t)
	manifestText := "CACHE MANIFEST\nCACHE:\n/a.js\nNETWORK:\n*\n"
	fetcher := &stubFetcher{byURL: map[string]stubResponse{
		"https://example.com/m.appcache": {status: http.StatusOK, body: manifestText},
		"https://example.com/a.js":       {status: http.StatusOK, body: "var x = 1;"},
	}}
	in := &Installer{DB: db, Client: fetcher, Log: zerolog.Nop()}

	res, err := in.Install("https://example.com/m.appcache")
	if err != nil {
		t.Fatalf("Install: %v", err)
	}
	if !res.Changed {
		t.Fatal("expected Changed=true on first install")
	}

	ok, err := db.HasResponse(res.Version.Hash, "https://example.com/a.js")
	if err != nil {
		t.Fatalf("HasResponse: %v", err)
	}
	if !ok {
		t.Fatal("expected cached entry to be present in the bucket named by the manifest hash")
	}
}

func TestInstallNoopOnIdenticalManifest(t *testing.T) {
	db := openDB(t)
	manifestText := "CACHE MANIFEST\nCACHE:\n/a.js\n"
	fetcher := &stubFetcher{byURL: map[string]stubResponse{
		"https://example.com/m.appcache": {status: http.StatusOK, body: manifestText},
		"https://example.com/a.js":       {status: http.StatusOK, body: "var x = 1;"},
	}}
	in := &Installer{DB: db, Client: fetcher, Log: zerolog.Nop()}

	if _, err := in.Install("https://example.com/m.appcache"); err != nil {
		t.Fatalf("first Install: %v", err)
	}
	res, err := in.Install("https://example.com/m.appcache")
	if err != nil {
		t.Fatalf("second Install: %v", err)
	}
	if res.Changed {
		t.Fatal("expected Changed=false for a byte-identical manifest")
	}
}

func TestInstallEvictsNoStoreEntry(t *testing.T) {
	db := openDB(t)
	manifestText := "CACHE MANIFEST\nCACHE:\n/a.js\n"
	fetcher := &stubFetcher{byURL: map[string]stubResponse{
		"https://example.com/m.appcache": {status: http.StatusOK, body: manifestText},
		"https://example.com/a.js": {
			status: http.StatusOK,
			body:   "var x = 1;",
			header: http.Header{"Cache-Control": []string{"no-store"}},
		},
	}}
	in := &Installer{DB: db, Client: fetcher, Log: zerolog.Nop()}

	res, err := in.Install("https://example.com/m.appcache")
	if err != nil {
		t.Fatalf("Install: %v", err)
	}
	ok, err := db.HasResponse(res.Version.Hash, "https://example.com/a.js")
	if err != nil {
		t.Fatalf("HasResponse: %v", err)
	}
	if ok {
		t.Fatal("expected no-store entry to be evicted, not cached")
	}
}
