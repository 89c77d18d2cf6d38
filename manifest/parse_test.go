package manifest

import (
	"net/url"
	"testing"
)

func mustBase(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("parsing base url: %v", err)
	}
	return u
}

func TestParseFreshInstall(t *testing.T) {
	base := mustBase(t, "https://s/m")
	text := "CACHE MANIFEST\nCACHE:\n/a\n/b\nNETWORK:\n*\n"
	pm, err := Parse(text, base)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(pm.Cache) != 2 || pm.Cache[0] != "https://s/a" || pm.Cache[1] != "https://s/b" {
		t.Fatalf("cache section: %+v", pm.Cache)
	}
	if len(pm.Network) != 1 || pm.Network[0] != "*" {
		t.Fatalf("network section: %+v", pm.Network)
	}
}

func TestParseFallback(t *testing.T) {
	base := mustBase(t, "https://s/m")
	text := "CACHE MANIFEST\nCACHE:\n/online\nFALLBACK:\n/api /offline.json\nNETWORK:\n*\n"
	pm, err := Parse(text, base)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := pm.Fallback["https://s/api"]; got != "https://s/offline.json" {
		t.Fatalf("fallback entry = %q", got)
	}
}

func TestParseNoMatchManifest(t *testing.T) {
	base := mustBase(t, "https://s/m")
	text := "CACHE MANIFEST\nCACHE:\n/a\nNETWORK:\nexplicit-only\n"
	pm, err := Parse(text, base)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(pm.Network) != 1 || pm.Network[0] == "*" {
		t.Fatalf("expected a single non-wildcard network entry, got %+v", pm.Network)
	}
}

func TestParseRejectsWildcardInCache(t *testing.T) {
	base := mustBase(t, "https://s/m")
	// "*" would otherwise resolve as a relative URL; outside NETWORK both
	// CACHE and FALLBACK reject it.
	if _, err := Parse("CACHE MANIFEST\nCACHE:\n*\n", base); err == nil {
		t.Fatal("expected an error for wildcard CACHE entry")
	}
	text := "CACHE MANIFEST\nFALLBACK:\n* /x\n"
	if _, err := Parse(text, base); err == nil {
		t.Fatal("expected an error for wildcard FALLBACK prefix")
	}
}

func TestParseRequiresHeader(t *testing.T) {
	if _, err := Parse("CACHE:\n/a\n", mustBase(t, "https://s/m")); err == nil {
		t.Fatal("expected an error for missing CACHE MANIFEST header")
	}
}

func TestParseIgnoresSettingsSection(t *testing.T) {
	base := mustBase(t, "https://s/m")
	text := "CACHE MANIFEST\nSETTINGS:\nprefer-online\nCACHE:\n/a\n"
	pm, err := Parse(text, base)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(pm.Network) != 0 {
		t.Fatalf("expected SETTINGS entries to be discarded, got network=%+v", pm.Network)
	}
	if len(pm.Cache) != 1 || pm.Cache[0] != "https://s/a" {
		t.Fatalf("cache section: %+v", pm.Cache)
	}
}

func TestHashDeterministic(t *testing.T) {
	text := "CACHE MANIFEST\nCACHE:\n/a\n"
	if Hash(text) != Hash(text) {
		t.Fatal("hash is not deterministic")
	}
	if Hash(text) == Hash(text+"\n") {
		t.Fatal("hash did not change with different text")
	}
}

func TestHistoryAppendIdempotent(t *testing.T) {
	v1 := Version{Hash: "h1"}
	h := History{}.Append(v1).Append(v1)
	if len(h) != 1 {
		t.Fatalf("expected idempotent append, got %d entries", len(h))
	}
	v2 := Version{Hash: "h2"}
	h = h.Append(v2)
	if len(h) != 2 {
		t.Fatalf("expected monotonic append, got %d entries", len(h))
	}
	cur, ok := h.Current()
	if !ok || cur.Hash != "h2" {
		t.Fatalf("current = %+v, ok=%v", cur, ok)
	}
}

func TestHistoryWithoutHash(t *testing.T) {
	h := History{{Hash: "h1"}, {Hash: "h2"}, {Hash: "h3"}}
	h = h.WithoutHash("h2")
	if len(h) != 2 || h[0].Hash != "h1" || h[1].Hash != "h3" {
		t.Fatalf("unexpected history after prune: %+v", h)
	}
}
