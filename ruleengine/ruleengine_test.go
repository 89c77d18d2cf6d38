package ruleengine

import (
	"testing"

	"github.com/appcacheshim/appcache/manifest"
	"github.com/appcacheshim/appcache/rfc9211"
)

func TestResolveCacheHit(t *testing.T) {
	pm := manifest.ParsedManifest{Cache: []string{"https://s/a.js"}}
	d := Resolve(pm, "https://s/a.js", "https://s/page")
	if d.Reason != rfc9211.ReasonCache {
		t.Fatalf("reason = %v, want cache", d.Reason)
	}
}

func TestResolveCacheHitOnClientURLEquality(t *testing.T) {
	// The navigating document itself, seeded into the bucket by cache-as-you-go
	// (spec.md §4.2) but never listed under CACHE.
	pm := manifest.ParsedManifest{Cache: []string{"https://s/a.js"}}
	d := Resolve(pm, "https://s/page", "https://s/page")
	if d.Reason != rfc9211.ReasonCache || d.TargetURL != "https://s/page" {
		t.Fatalf("decision = %+v, want cache hit on clientURL equality", d)
	}
}

func TestResolveNetworkWildcard(t *testing.T) {
	pm := manifest.ParsedManifest{Network: []string{"*"}}
	d := Resolve(pm, "https://s/anything", "https://s/page")
	if d.Reason != rfc9211.ReasonNetwork {
		t.Fatalf("reason = %v, want network", d.Reason)
	}
}

func TestResolveFallbackLongestPrefix(t *testing.T) {
	pm := manifest.ParsedManifest{
		Fallback: map[string]string{
			"https://s/api/":      "https://s/offline-generic.json",
			"https://s/api/users": "https://s/offline-users.json",
		},
	}
	d := Resolve(pm, "https://s/api/users/42", "https://s/page")
	if d.Reason != rfc9211.ReasonFallback || d.TargetURL != "https://s/offline-users.json" {
		t.Fatalf("decision = %+v, want longest-prefix fallback", d)
	}
}

func TestResolveErrorSentinelWhenUnlisted(t *testing.T) {
	pm := manifest.ParsedManifest{Cache: []string{"https://s/a.js"}}
	d := Resolve(pm, "https://s/unrelated", "https://s/page")
	if d.Reason != rfc9211.ReasonError {
		t.Fatalf("reason = %v, want error sentinel", d.Reason)
	}
}

func TestResolveErrorSentinelWhenNoFallbackPrefixMatches(t *testing.T) {
	pm := manifest.ParsedManifest{
		Fallback: map[string]string{
			"https://s/a": "https://s/a-fallback",
			"https://s/b": "https://s/b-fallback",
		},
	}
	// Neither prefix matches this URL; the error sentinel is expected
	// regardless of map order.
	d := Resolve(pm, "https://s/z", "https://s/page")
	if d.Reason != rfc9211.ReasonError {
		t.Fatalf("reason = %v, want error sentinel", d.Reason)
	}
}
