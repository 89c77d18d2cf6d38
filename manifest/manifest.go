// Package manifest implements the AppCache manifest data model: parsing the
// CACHE/NETWORK/FALLBACK text format, hashing it into a version identifier,
// and tracking the ordered history of versions seen for a manifest URL.
package manifest

import (
	"crypto/sha256"
	"encoding/hex"
)

// ParsedManifest is the result of parsing an AppCache manifest body.
// All URLs are absolute, resolved against the manifest URL as base.
type ParsedManifest struct {
	// Cache lists URLs to pre-cache, in manifest order.
	Cache []string
	// Network lists URLs (or the literal "*") that must always bypass the
	// cache and be served live.
	Network []string
	// Fallback maps a URL prefix to the fallback URL served when no live
	// response is available for a request under that prefix.
	Fallback map[string]string
}

// Version is one named version of a manifest: its raw text, the parsed
// sections, and the content hash that doubles as the name of the
// per-version response cache bucket holding its pre-cached entries.
type Version struct {
	Hash   string
	Text   string
	Parsed ParsedManifest
}

// Hash returns the stable content digest used to name a manifest version
// and its per-version response cache. All components must agree on this
// function; changing it invalidates every previously installed version.
func Hash(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

// History is the ordered sequence of versions seen for one manifest URL,
// oldest first. No two adjacent entries share a hash.
type History []Version

// Current returns the most recently installed version, or the zero Version
// and false if History is empty.
func (h History) Current() (Version, bool) {
	if len(h) == 0 {
		return Version{}, false
	}
	return h[len(h)-1], true
}

// ByHash returns the version in h whose hash matches, or false if pruned
// or never installed.
func (h History) ByHash(hash string) (Version, bool) {
	for _, v := range h {
		if v.Hash == hash {
			return v, true
		}
	}
	return Version{}, false
}

// Append returns a new History with v appended, unless v.Hash already
// equals the current version's hash (idempotent no-op).
func (h History) Append(v Version) History {
	if cur, ok := h.Current(); ok && cur.Hash == v.Hash {
		return h
	}
	out := make(History, len(h), len(h)+1)
	copy(out, h)
	return append(out, v)
}

// WithoutHash returns a new History with every entry matching hash removed.
// Callers are responsible for never pruning the current version's hash.
func (h History) WithoutHash(hash string) History {
	out := make(History, 0, len(h))
	for _, v := range h {
		if v.Hash != hash {
			out = append(out, v)
		}
	}
	return out
}
