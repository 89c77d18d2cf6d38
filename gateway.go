// Package appcache is the gateway's entry point: an http.Handler standing
// in for a Service Worker's fetch listener, backed by the persistent store
// and the Rule Engine instead of browser-native Cache Storage. Grounded on
// the teacher's always-cache.go (CreateCache/ServeHTTP/proxy), with the
// freshness/revalidation logic replaced by AppCache's simpler
// hash-versioned bucket model.
package appcache

import (
	"net/http"
	"net/http/httputil"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"github.com/appcacheshim/appcache/admin"
	"github.com/appcacheshim/appcache/gc"
	overriderules "github.com/appcacheshim/appcache/pkg/response-transformer"
	"github.com/appcacheshim/appcache/rfc9211"
	"github.com/appcacheshim/appcache/ruleengine"
	"github.com/appcacheshim/appcache/store"
)

// Config configures a Gateway, the direct analog of the teacher's own
// Config passed to CreateCache.
type Config struct {
	// OriginURL is the upstream the gateway proxies NETWORK and cache-miss
	// traffic to.
	OriginURL string
	// DB is the opened persistent store; callers own its lifetime.
	DB *store.DB
	// Manifests lists every manifest URL this gateway tracks.
	Manifests []string
	// PollInterval is how often the Manifest Watcher re-fetches each
	// manifest. The GC Sweeper's heartbeat liveness window is twice this
	// interval (spec.md §4.7 remapped).
	PollInterval time.Duration
	// DisableUpdates skips starting Manifest Watcher goroutines entirely —
	// the direct analog of the teacher's `-legacy` flag.
	DisableUpdates bool
	// Overrides are operator rules that bypass manifest-driven resolution
	// for a path prefix.
	Overrides overriderules.Rules
	Log       zerolog.Logger
}

const clientCookieName = "appcache_client_id"

// Gateway is the gateway's http.Handler, the Go analog of a registered
// Service Worker intercepting every fetch.
type Gateway struct {
	config  Config
	db      *store.DB
	client  *http.Client
	proxy   *httputil.ReverseProxy
	broker  *ruleengine.Broker
	log     zerolog.Logger
	gcTrig  chan struct{}
	watcher *Watcher
}

// CreateGateway wires a Gateway together and starts its background
// goroutines (Manifest Watcher, GC Sweeper), grounded on the teacher's
// CreateCache.
func CreateGateway(config Config) (*Gateway, error) {
	origin, err := url.Parse(config.OriginURL)
	if err != nil {
		return nil, err
	}

	client := &http.Client{
		Timeout: 30 * time.Second,
		// Redirect responses are returned as-is, never followed.
		CheckRedirect: func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse },
	}
	proxy := httputil.NewSingleHostReverseProxy(origin)

	g := &Gateway{
		config: config,
		db:     config.DB,
		client: client,
		proxy:  proxy,
		broker: &ruleengine.Broker{Client: client, DB: config.DB},
		log:    config.Log,
		gcTrig: make(chan struct{}, 1),
	}

	g.watcher = NewWatcher(config.DB, client, config.Manifests, config.PollInterval, config.Log)
	if !config.DisableUpdates {
		g.watcher.Start()
	}

	sweepInterval := config.PollInterval
	if sweepInterval <= 0 {
		sweepInterval = time.Minute
	}
	go g.runGCLoop(sweepInterval)

	return g, nil
}

// ServeHTTP implements the Gateway's request handling: resolve the acting
// client, look up its bound manifest version, resolve a Decision, and
// serve from the response cache, the network, or a fallback resource —
// then record the Association Recorder's binding and trigger a GC pass if
// this request was a navigation (spec.md §4.2-§4.7).
func (g *Gateway) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	clientID, freshCookie := g.resolveClientID(r)
	if freshCookie {
		http.SetCookie(w, &http.Cookie{Name: clientCookieName, Value: clientID, Path: "/"})
	}
	clientURL := g.resolveClientURL(r, clientID)
	navigation := g.isNavigation(r, clientID, freshCookie)

	if r.Header.Get("X-Use-Fetch") == "true" {
		g.serveNetwork(w, r, rfc9211.Status{Reason: rfc9211.ReasonBypass})
		return
	}

	binding, bound, err := g.db.Binding(clientURL)
	if err != nil {
		g.log.Error().Err(err).Msg("looking up client binding")
		bound = false
	}

	if bound {
		history, err := g.db.History(binding.ManifestURL)
		if err != nil {
			g.log.Error().Err(err).Msg("loading manifest history")
			g.serveNetwork(w, r, rfc9211.Status{Reason: rfc9211.ReasonBypass})
			if navigation {
				g.triggerGC()
			}
			return
		}
		version, ok := history.ByHash(binding.Hash)
		if !ok {
			g.serveNetwork(w, r, rfc9211.Status{Reason: rfc9211.ReasonBypass})
			if navigation {
				g.triggerGC()
			}
			return
		}

		decision := ruleengine.Resolve(version.Parsed, r.URL.String(), clientURL)
		decision = g.config.Overrides.Apply(r.URL.Path, decision)

		g.serveDecision(w, r, decision, version.Hash, navigation, clientURL)

		if navigation {
			if err := g.recordAssociation(clientID, clientURL, binding); err != nil {
				g.log.Warn().Err(err).Msg("recording client association")
			}
			g.triggerGC()
		}
		return
	}

	// Rule Engine Case B (spec.md §4.5): this client has no binding at all.
	// Unlike the bound path above, nothing is persisted here — every
	// request from an unbound client is matched fresh against every
	// tracked manifest's FALLBACK section for the resource it actually
	// asked for, not the page it was fetched from.
	if decision, hash, ok := g.caseBFallbackMatch(r.URL.String()); ok {
		decision = g.config.Overrides.Apply(r.URL.Path, decision)
		g.serveDecision(w, r, decision, hash, navigation, clientURL)
	} else {
		g.serveNetwork(w, r, rfc9211.Status{Reason: rfc9211.ReasonBypass})
	}
	if navigation {
		g.triggerGC()
	}
}

func (g *Gateway) serveDecision(w http.ResponseWriter, r *http.Request, decision ruleengine.Decision, hash string, navigation bool, clientURL string) {
	status := rfc9211.Status{Reason: decision.Reason, Hash: hash, Cache: hash}

	switch decision.Reason {
	case rfc9211.ReasonCache:
		tr, ok, err := g.db.GetResponse(hash, decision.TargetURL)
		if err != nil || !ok {
			status.Reason = rfc9211.ReasonMiss
			g.serveNetwork(w, r, status)
			return
		}
		writeStoredResponse(w, tr.Response, status)

	case rfc9211.ReasonFallback:
		res, reason, err := g.broker.Fetch(r.URL.String(), hash, decision)
		status.Reason = reason
		if err != nil || res == nil {
			http.Error(w, "no fallback available", http.StatusBadGateway)
			return
		}
		writeStoredResponse(w, res, status)

	case rfc9211.ReasonError:
		// Bound manifest matched nothing under CACHE, FALLBACK, or NETWORK —
		// the Response.error() sentinel (spec.md §7, §8 scenario 4). No live
		// fetch is attempted; an opaque, bodyless error is returned instead.
		w.Header().Set("Resolution-Status", status.String())
		w.WriteHeader(http.StatusBadGateway)

	default: // network / bypass
		if navigation {
			g.serveNetworkAndCache(w, r, status, hash, clientURL)
			return
		}
		g.serveNetwork(w, r, status)
	}
}

// serveNetwork proxies r straight through to the origin, tagging the
// response with the Resolution-Status the caller already decided on.
func (g *Gateway) serveNetwork(w http.ResponseWriter, r *http.Request, status rfc9211.Status) {
	rw := &statusWriter{ResponseWriter: w, status: status}
	g.proxy.ServeHTTP(rw, r)
}

// AdminHandler returns the gateway's diagnostic mux (read-only listings
// plus a manual GC trigger)
// (SPEC_FULL.md §6 ADDED Admin API), meant to be mounted on a separate
// listener or path prefix from the public gateway traffic.
func (g *Gateway) AdminHandler() http.Handler {
	interval := g.config.PollInterval
	if interval <= 0 {
		interval = time.Minute
	}
	sweeper := &gc.Sweeper{DB: g.db, Liveness: 2 * interval, HistoryKeep: 1, Log: g.log}
	return admin.Router(g.db, sweeper)
}

// triggerGC signals the background GC loop without blocking ServeHTTP —
// a dropped signal (channel already full) just means the loop's next tick
// will cover this request too, which is fine (spec.md §4.7: "asynchronous,
// never blocking the response").
func (g *Gateway) triggerGC() {
	select {
	case g.gcTrig <- struct{}{}:
	default:
	}
}
