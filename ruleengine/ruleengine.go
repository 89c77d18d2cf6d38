// Package ruleengine implements the Rule Engine and Fallback Broker
// (spec.md §4.5/§4.6): given a client's bound manifest version and the URL
// it is requesting, decide whether to serve from the cached bucket, let the
// request go to the network unmodified, or substitute a FALLBACK resource.
// Grounded on the teacher's always-cache.go request-handling switch
// (reuseOrValidate / sendStoredResponse / the miss-forwarding path), with
// the freshness/validation machinery stripped out — an AppCache bucket
// entry has no expiry, it is valid until GC'd (spec.md §4.1, §4.7).
package ruleengine

import (
	"sort"
	"strings"

	"github.com/appcacheshim/appcache/manifest"
	"github.com/appcacheshim/appcache/rfc9211"
)

// Decision is the Rule Engine's verdict for one request against one bound
// manifest version.
type Decision struct {
	Reason    rfc9211.Reason
	TargetURL string // the URL to read from (or write through to, for network)
}

// Resolve applies spec.md §4.5 step 3.c's matching order for a request made
// under a bound manifest version: an exact CACHE hit wins outright — which
// includes requestURL matching clientURL, the page the Association Recorder
// seeded into the bucket via cache-as-you-go (spec.md §4.2) even when it is
// not itself listed under CACHE; otherwise the longest matching FALLBACK
// prefix; otherwise an exact or wildcard NETWORK entry; otherwise the
// manifest matched nothing at all, the Response.error() sentinel (spec.md
// §7, §8 scenario 4).
func Resolve(pm manifest.ParsedManifest, requestURL, clientURL string) Decision {
	if requestURL == clientURL {
		return Decision{Reason: rfc9211.ReasonCache, TargetURL: requestURL}
	}
	for _, cached := range pm.Cache {
		if cached == requestURL {
			return Decision{Reason: rfc9211.ReasonCache, TargetURL: cached}
		}
	}

	if prefix, target, ok := LongestFallbackMatch(pm.Fallback, requestURL); ok {
		_ = prefix
		return Decision{Reason: rfc9211.ReasonFallback, TargetURL: target}
	}

	for _, allowed := range pm.Network {
		if allowed == "*" || allowed == requestURL {
			return Decision{Reason: rfc9211.ReasonNetwork, TargetURL: requestURL}
		}
	}

	return Decision{Reason: rfc9211.ReasonError, TargetURL: requestURL}
}

// LongestFallbackMatch returns the FALLBACK entry whose namespace prefix is
// the longest string match for requestURL. Two distinct prefixes that both
// match requestURL always differ in length, so one manifest's map never
// yields a tie; the lexical ordering in the sort only keeps the result
// independent of Go's randomized map iteration order. Ties of equal length
// across manifests are settled by the caller. Exported so the
// cross-manifest Case B search (spec.md §4.5) can run the same matcher
// without going through a full Resolve, which would also consider CACHE and
// NETWORK entries it has no business matching against.
func LongestFallbackMatch(fallback map[string]string, requestURL string) (prefix, target string, ok bool) {
	var prefixes []string
	for p := range fallback {
		if strings.HasPrefix(requestURL, p) {
			prefixes = append(prefixes, p)
		}
	}
	if len(prefixes) == 0 {
		return "", "", false
	}
	sort.Slice(prefixes, func(i, j int) bool {
		if len(prefixes[i]) != len(prefixes[j]) {
			return len(prefixes[i]) > len(prefixes[j])
		}
		return prefixes[i] < prefixes[j]
	})
	best := prefixes[0]
	return best, fallback[best], true
}
