// Package cacheupdate parses the origin's `Cache-Update` response header, an
// operator-facing hint that tells the gateway to eagerly re-poll a manifest
// URL rather than waiting for the Manifest Watcher's next scheduled poll —
// useful right after a deploy that is known to have changed a manifest.
// Adapted from the teacher's cache-invalidation header of the same name;
// the delay-directive grammar and parsing are unchanged, only the meaning
// of "update" (re-poll a manifest, not revalidate an HTTP cache key) and
// the value (a resolved absolute URL, not a path) have been repurposed.
package cacheupdate

import (
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Update is a single `Cache-Update` entry: a manifest URL to re-poll, and
// how long to wait before doing so.
type Update struct {
	ManifestURL string
	Delay       time.Duration
}

// GetUpdates returns the updates requested by res's `Cache-Update` headers,
// resolving any relative URL against the request that produced res.
func GetUpdates(req *http.Request, res *http.Response) []Update {
	updates := make([]Update, 0, len(res.Header.Values("Cache-Update")))
	for _, raw := range res.Header.Values("Cache-Update") {
		updates = append(updates, Update{
			ManifestURL: resolveURL(req, raw).String(),
			Delay:       getDelay(raw),
		})
	}
	return updates
}

// resolveURL returns the URL to re-poll from a `Cache-Update` header value.
// The URL is the first element, separated from any directives by a semicolon.
func resolveURL(r *http.Request, update string) *url.URL {
	possiblyRelative := update
	if i := strings.Index(update, ";"); i != -1 {
		possiblyRelative = update[:i]
	}
	possiblyRelative = strings.TrimSpace(possiblyRelative)
	ref, err := url.Parse(possiblyRelative)
	if err != nil {
		return r.URL
	}
	return r.URL.ResolveReference(ref)
}

var delayDirective = regexp.MustCompile(`(?i)\bdelay=(\d+)`)

// getDelay returns the delay to wait before re-polling, from the
// `delay=N` directive (N in seconds). Zero if absent or malformed.
func getDelay(update string) time.Duration {
	if matches := delayDirective.FindStringSubmatch(update); matches != nil {
		if delay, err := strconv.Atoi(matches[1]); err == nil {
			return time.Duration(delay) * time.Second
		}
	}
	return 0
}
