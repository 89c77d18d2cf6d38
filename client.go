package appcache

import (
	"bufio"
	"bytes"
	"io"
	"net/http"
	"sort"
	"time"

	"github.com/google/uuid"

	cacheupdate "github.com/appcacheshim/appcache/pkg/cache-update"
	tee "github.com/appcacheshim/appcache/pkg/response-writer-tee"
	"github.com/appcacheshim/appcache/rfc9211"
	"github.com/appcacheshim/appcache/ruleengine"
	"github.com/appcacheshim/appcache/store"
)

// resolveClientID implements the Client Resolver's identity half
// (spec.md §4.4): read the gateway's own cookie, minting and returning a
// fresh one if absent. The bool reports whether a new id was minted, so
// ServeHTTP knows to set the cookie on the response.
func (g *Gateway) resolveClientID(r *http.Request) (string, bool) {
	if c, err := r.Cookie(clientCookieName); err == nil && c.Value != "" {
		return c.Value, false
	}
	return uuid.NewString(), true
}

// resolveClientURL implements the Client Resolver's URL half: prefer a
// live session's recorded URL, then the Referer, then the request's own
// absolute URL (spec.md §4.4's unchanged fallback order).
func (g *Gateway) resolveClientURL(r *http.Request, clientID string) string {
	if sess, ok, err := g.db.Session(clientID); err == nil && ok {
		return sess.URL
	}
	if ref := r.Referer(); ref != "" {
		return ref
	}
	return r.URL.String()
}

// isNavigation reports whether r should be treated as a page navigation
// for Association Recorder / GC Sweeper triggering purposes (spec.md
// §4.4, remapped).
func (g *Gateway) isNavigation(r *http.Request, clientID string, freshCookie bool) bool {
	if freshCookie {
		return true
	}
	if r.Header.Get("Sec-Fetch-Mode") == "navigate" {
		return true
	}
	_, ok, err := g.db.Binding(r.URL.String())
	return err == nil && ok
}

// caseBFallbackMatch implements Rule Engine Case B (spec.md §4.5): a client
// with no recorded binding at all gets no sticky commitment — every request
// is checked, fresh, against every tracked manifest's current version for
// the longest FALLBACK prefix matching the actual requested resource
// (requestURL, never the page/document URL a sub-resource request happened
// to be fetched from). The longest prefix wins; ties of equal length across
// manifests go to the manifest scanned last, over manifest URLs sorted
// ascending so the search order itself is deterministic.
func (g *Gateway) caseBFallbackMatch(requestURL string) (ruleengine.Decision, string, bool) {
	urls, err := g.db.AllManifestURLs()
	if err != nil {
		g.log.Error().Err(err).Msg("listing manifest urls")
		return ruleengine.Decision{}, "", false
	}
	sortedURLs := append([]string(nil), urls...)
	sort.Strings(sortedURLs)

	var bestPrefix, bestTarget, bestHash string
	found := false
	for _, manifestURL := range sortedURLs {
		history, err := g.db.History(manifestURL)
		if err != nil {
			continue
		}
		cur, ok := history.Current()
		if !ok {
			continue
		}
		prefix, target, ok := ruleengine.LongestFallbackMatch(cur.Parsed.Fallback, requestURL)
		if !ok {
			continue
		}
		if !found || len(prefix) >= len(bestPrefix) {
			bestPrefix, bestTarget, bestHash = prefix, target, cur.Hash
			found = true
		}
	}
	if !found {
		return ruleengine.Decision{}, "", false
	}
	return ruleengine.Decision{Reason: rfc9211.ReasonFallback, TargetURL: bestTarget}, bestHash, true
}

// recordAssociation is the Association Recorder (spec.md §4.2): refresh
// the client's binding to the manifest's current hash (covers the case
// where a newer version installed since the client last bound) and touch
// its session heartbeat.
func (g *Gateway) recordAssociation(clientID, clientURL string, binding store.ClientBinding) error {
	history, err := g.db.History(binding.ManifestURL)
	if err != nil {
		return err
	}
	if cur, ok := history.Current(); ok && cur.Hash != binding.Hash {
		binding.Hash = cur.Hash
		if err := g.db.PutBinding(clientURL, binding); err != nil {
			return err
		}
	}
	if err := g.db.PutClientHash(clientID, binding.Hash); err != nil {
		return err
	}
	return g.db.TouchSession(clientID, clientURL, time.Now())
}

// serveNetworkAndCache proxies a navigation request to the origin while
// tee'ing the response into a buffer, then seeds the bound manifest
// version's bucket with it under the request's own URL — the Association Recorder's
// "cache-as-you-go" step for the navigating page itself (SPEC_FULL.md
// §4.2), grounded directly in the teacher's tee.ResponseSaver. Any
// `Cache-Update` header on the origin's response is honored by scheduling
// an eager re-poll of the named manifest (pkg/cache-update, repurposed).
func (g *Gateway) serveNetworkAndCache(w http.ResponseWriter, r *http.Request, status rfc9211.Status, hash, clientURL string) {
	saver := tee.NewResponseSaver(w)
	sw := &statusWriter{ResponseWriter: saver, status: status}

	requestTime := time.Now()
	g.proxy.ServeHTTP(sw, r)
	responseTime := time.Now()

	parsed, err := http.ReadResponse(bufio.NewReader(bytes.NewReader(saver.Response())), r)
	if err != nil {
		g.log.Debug().Err(err).Msg("could not parse tee'd navigation response for cache-as-you-go")
		return
	}
	defer parsed.Body.Close()

	for _, upd := range cacheupdate.GetUpdates(r, parsed) {
		g.watcher.ScheduleUpdate(upd.ManifestURL, upd.Delay)
	}

	if err := g.db.PutResponse(hash, r.URL.String(), parsed, requestTime, responseTime); err != nil {
		g.log.Warn().Err(err).Msg("seeding navigation response into cache")
	}
}

// statusWriter tags the eventual response with a Resolution-Status header
// before the status line is written, the gateway's debugging surface
// replacing browser devtools visibility (SPEC_FULL.md §6).
type statusWriter struct {
	http.ResponseWriter
	status       rfc9211.Status
	wroteHeaders bool
}

func (s *statusWriter) WriteHeader(code int) {
	if !s.wroteHeaders {
		s.Header().Set("Resolution-Status", s.status.String())
		s.wroteHeaders = true
	}
	s.ResponseWriter.WriteHeader(code)
}

func (s *statusWriter) Write(b []byte) (int, error) {
	if !s.wroteHeaders {
		s.WriteHeader(http.StatusOK)
	}
	return s.ResponseWriter.Write(b)
}

// writeStoredResponse copies a stored *http.Response (from the response
// cache or a fallback bucket) onto the wire, tagged with its
// Resolution-Status.
func writeStoredResponse(w http.ResponseWriter, res *http.Response, status rfc9211.Status) {
	h := w.Header()
	for name, values := range res.Header {
		for _, v := range values {
			h.Add(name, v)
		}
	}
	h.Set("Resolution-Status", status.String())
	w.WriteHeader(res.StatusCode)
	if res.Body != nil {
		io.Copy(w, res.Body)
		res.Body.Close()
	}
}
