// Package installer runs the Installer algorithm (spec.md §4.1): fetch a
// manifest, decide whether it is new, parse it, fetch every CACHE entry and
// FALLBACK target into a fresh response-cache bucket named by the manifest
// hash, and
// record the result in store.DB. Grounded on the teacher's updater.go
// (updateCache/updateEntry: fetch-compare-store loop against a
// CacheProvider) and always-cache.go's writeCache (store-then-log).
package installer

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/appcacheshim/appcache/manifest"
	"github.com/appcacheshim/appcache/rfc9111"
	"github.com/appcacheshim/appcache/store"
)

// Fetcher abstracts the HTTP client used to retrieve manifests and cache
// entries, so tests can substitute a stub without a real listener.
type Fetcher interface {
	Do(req *http.Request) (*http.Response, error)
}

// Installer owns one manifest URL's install/update cycle.
type Installer struct {
	DB     *store.DB
	Client Fetcher
	Log    zerolog.Logger
}

// Result describes the outcome of a single Install call, used by the
// Manifest Watcher to log newly installed versions.
type Result struct {
	Changed bool
	Version manifest.Version
}

// Install fetches manifestURL, and if its content differs from the
// current installed version, parses it, populates a new response-cache
// bucket, and appends it to the manifest's history. A no-op fetch (same
// hash as history.Current()) changes nothing and reports Changed=false,
// matching the browser's "identical byte-for-byte" no-op rule.
func (in *Installer) Install(manifestURL string) (Result, error) {
	log := in.Log.With().Str("manifest", manifestURL).Logger()

	req, err := http.NewRequest(http.MethodGet, manifestURL, nil)
	if err != nil {
		return Result{}, fmt.Errorf("installer: building manifest request: %w", err)
	}
	// Mark this as an internal fetch so a Rule Engine sharing the same
	// origin doesn't try to resolve it against the very manifest it is
	// fetching (spec.md's X-Use-Fetch escape hatch, SPEC_FULL.md §4.5).
	req.Header.Set("X-Use-Fetch", "true")

	res, err := in.Client.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("installer: fetching manifest: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		log.Debug().Int("status", res.StatusCode).Msg("manifest fetch did not return 200, leaving history unchanged")
		return Result{}, nil
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return Result{}, fmt.Errorf("installer: reading manifest body: %w", err)
	}
	text := string(body)
	hash := manifest.Hash(text)

	history, err := in.DB.History(manifestURL)
	if err != nil {
		return Result{}, fmt.Errorf("installer: loading history: %w", err)
	}
	if cur, ok := history.Current(); ok && cur.Hash == hash {
		log.Trace().Str("hash", hash).Msg("manifest unchanged")
		return Result{}, nil
	}

	parsed, err := manifest.Parse(text, req.URL)
	if err != nil {
		return Result{}, fmt.Errorf("installer: parsing manifest: %w", err)
	}
	version := manifest.Version{Hash: hash, Text: text, Parsed: parsed}

	if err := in.populateBucket(&log, hash, parsed); err != nil {
		return Result{}, err
	}

	history = history.Append(version)
	if err := in.DB.PutHistory(manifestURL, history); err != nil {
		return Result{}, fmt.Errorf("installer: persisting history: %w", err)
	}
	log.Debug().Str("hash", hash).Int("entries", len(parsed.Cache)).Msg("installed new manifest version")
	return Result{Changed: true, Version: version}, nil
}

// populateBucket fetches every CACHE entry and every FALLBACK target and
// writes it into the response-cache bucket named by hash. An entry that
// 404s, 410s, or answers with a no-store Cache-Control is evicted rather
// than stored, matching the browser's "treat as a failed cache instruction"
// behavior for individually broken resources (spec.md §4.1 edge cases); any
// other non-2xx answer leaves the bucket's entry for that URL untouched.
func (in *Installer) populateBucket(log *zerolog.Logger, bucket string, pm manifest.ParsedManifest) error {
	urls := append([]string(nil), pm.Cache...)
	for _, target := range pm.Fallback {
		urls = append(urls, target)
	}
	seen := make(map[string]bool, len(urls))
	for _, entryURL := range urls {
		if seen[entryURL] {
			continue
		}
		seen[entryURL] = true
		if err := in.fetchEntry(log, bucket, entryURL); err != nil {
			log.Warn().Err(err).Str("url", entryURL).Msg("failed to cache manifest entry")
		}
	}
	return nil
}

func (in *Installer) fetchEntry(log *zerolog.Logger, bucket, entryURL string) error {
	req, err := http.NewRequest(http.MethodGet, entryURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("X-Use-Fetch", "true")

	requestTime := now()
	res, err := in.Client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	responseTime := now()

	if res.StatusCode == http.StatusNotFound || res.StatusCode == http.StatusGone {
		return in.DB.EvictResponse(bucket, entryURL)
	}

	cc := rfc9111.ParseCacheControl(res.Header.Values("Cache-Control"))
	if cc.HasDirective("no-store") {
		log.Debug().Str("url", entryURL).Msg("entry marked no-store, not caching")
		return in.DB.EvictResponse(bucket, entryURL)
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		log.Debug().Int("status", res.StatusCode).Str("url", entryURL).Msg("entry did not answer 2xx, leaving bucket entry untouched")
		return nil
	}

	return in.DB.PutResponse(bucket, entryURL, res, requestTime, responseTime)
}

// now is a seam so tests can't accidentally depend on wall-clock ordering
// of requestTime vs responseTime; production always uses time.Now.
var now = time.Now
