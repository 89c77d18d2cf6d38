package ruleengine

import (
	"net/http"

	"github.com/appcacheshim/appcache/rfc9211"
	"github.com/appcacheshim/appcache/store"
)

// Fetcher is the subset of *http.Client the broker needs; satisfied by a
// real client or a stub in tests.
type Fetcher interface {
	Do(req *http.Request) (*http.Response, error)
}

// Broker implements the Fallback Broker (spec.md §4.6): try the network
// first for a FALLBACK-namespaced request, and only substitute the cached
// fallback resource if the network attempt fails outright. A completed
// network response, whatever its status, always wins — FALLBACK is a safety
// net, not a preference.
type Broker struct {
	Client Fetcher
	DB     *store.DB
}

// Fetch performs the broker's try-network-then-substitute logic for a
// Decision with Reason == ReasonFallback. bucket is the hash of the
// manifest version the client is bound to, which is also the name of the
// response-cache bucket the fallback resource was stored in at install
// time (spec.md §4.1). Only a transport-level rejection (DNS failure,
// connection refused, offline, timeout) falls through to the stored
// fallback — spec.md §4.6 is explicit that a completed fetch, even a
// non-2xx one, is not a rejection and must be passed through unmodified.
// If the stored fallback is missing too, the original fetch error is
// returned.
func (b *Broker) Fetch(requestURL, bucket string, decision Decision) (*http.Response, rfc9211.Reason, error) {
	req, fetchErr := http.NewRequest(http.MethodGet, requestURL, nil)
	if fetchErr == nil {
		req.Header.Set("X-Use-Fetch", "true")
		res, netErr := b.Client.Do(req)
		if netErr == nil {
			return res, rfc9211.ReasonNetwork, nil
		}
		fetchErr = netErr
	}

	tr, ok, err := b.DB.GetResponse(bucket, decision.TargetURL)
	if err != nil {
		return nil, rfc9211.ReasonMiss, err
	}
	if !ok {
		return nil, rfc9211.ReasonMiss, fetchErr
	}
	return tr.Response, rfc9211.ReasonFallback, nil
}
