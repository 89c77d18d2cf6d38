package rfc9211

import "strings"

// Reason is why the gateway resolved a request the way it did — the Go
// analog of the fwd parameter this RFC defines for a generic HTTP cache,
// repurposed for the narrower set of outcomes an AppCache-style resolver
// can produce (spec.md §4.5/§4.6).
type Reason string

const (
	ReasonCache    Reason = "cache"    // served straight from the response cache
	ReasonNetwork  Reason = "network"  // NETWORK-whitelisted passthrough
	ReasonFallback Reason = "fallback" // network attempt failed, served a FALLBACK entry
	ReasonBypass   Reason = "bypass"   // no binding / no manifest, ordinary passthrough
	ReasonMiss     Reason = "miss"     // cache path requested but nothing stored
	ReasonError    Reason = "error"    // bound manifest matched nothing, Response.error() sentinel
)

// Status is rendered as the gateway's `Resolution-Status` response header
// (SPEC_FULL.md §6), a deliberately smaller sibling of this RFC's
// Cache-Status field: one resolver name ("appcache"), the Reason, and
// optionally the manifest hash and cache-name that produced the response.
type Status struct {
	Reason Reason
	Hash   string
	Cache  string
}

// String renders the status using this RFC's `name; params` grammar, e.g.
// `appcache; fwd=fallback; hash=ab12cd; cache=ab12cd`.
func (s Status) String() string {
	var b strings.Builder
	b.WriteString("appcache; fwd=")
	b.WriteString(string(s.Reason))
	if s.Hash != "" {
		b.WriteString("; hash=")
		b.WriteString(s.Hash)
	}
	if s.Cache != "" {
		b.WriteString("; cache=")
		b.WriteString(s.Cache)
	}
	return b.String()
}
