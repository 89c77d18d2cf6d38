package ruleengine

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/appcacheshim/appcache/rfc9211"
	"github.com/appcacheshim/appcache/store"
)

type stubFetcher struct {
	res *http.Response
	err error
}

func (s *stubFetcher) Do(req *http.Request) (*http.Response, error) {
	return s.res, s.err
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

func TestBrokerPrefersSuccessfulNetworkFetch(t *testing.T) {
	db := openDB(t)
	fetcher := &stubFetcher{res: &http.Response{
		StatusCode: http.StatusOK,
		Header:     http.Header{},
		Body:       io.NopCloser(bytes.NewReader([]byte("live"))),
	}}
	b := &Broker{Client: fetcher, DB: db}

	res, reason, err := b.Fetch("https://s/api/x", "hash1", Decision{Reason: rfc9211.ReasonFallback, TargetURL: "https://s/offline.json"})
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if reason != rfc9211.ReasonNetwork {
		t.Fatalf("reason = %v, want network", reason)
	}
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", res.StatusCode)
	}
}

func TestBrokerFallsBackOnNetworkError(t *testing.T) {
	db := openDB(t)
	if err := db.PutResponse("hash1", "https://s/offline.json", &http.Response{
		StatusCode: http.StatusOK,
		Header:     http.Header{},
		Body:       io.NopCloser(bytes.NewReader([]byte("offline content"))),
	}, time.Now(), time.Now()); err != nil {
		t.Fatalf("PutResponse: %v", err)
	}

	fetcher := &stubFetcher{err: errors.New("network unreachable")}
	b := &Broker{Client: fetcher, DB: db}

	_, reason, err := b.Fetch("https://s/api/x", "hash1", Decision{Reason: rfc9211.ReasonFallback, TargetURL: "https://s/offline.json"})
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if reason != rfc9211.ReasonFallback {
		t.Fatalf("reason = %v, want fallback", reason)
	}
}

func TestBrokerPassesThroughServerError(t *testing.T) {
	db := openDB(t)
	if err := db.PutResponse("hash1", "https://s/offline.json", &http.Response{
		StatusCode: http.StatusOK,
		Header:     http.Header{},
		Body:       io.NopCloser(bytes.NewReader([]byte("offline content"))),
	}, time.Now(), time.Now()); err != nil {
		t.Fatalf("PutResponse: %v", err)
	}

	fetcher := &stubFetcher{res: &http.Response{
		StatusCode: http.StatusInternalServerError,
		Header:     http.Header{},
		Body:       io.NopCloser(bytes.NewReader(nil)),
	}}
	b := &Broker{Client: fetcher, DB: db}

	res, reason, err := b.Fetch("https://s/api/x", "hash1", Decision{Reason: rfc9211.ReasonFallback, TargetURL: "https://s/offline.json"})
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if reason != rfc9211.ReasonNetwork {
		t.Fatalf("reason = %v, want network — a completed 5xx response is not a rejection", reason)
	}
	if res.StatusCode != http.StatusInternalServerError {
		t.Fatalf("status = %d, want the live 500 passed through unmodified", res.StatusCode)
	}
}
