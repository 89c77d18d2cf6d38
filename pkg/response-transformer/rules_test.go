package overriderules

import (
	"testing"

	"github.com/appcacheshim/appcache/rfc9211"
	"github.com/appcacheshim/appcache/ruleengine"
)

func TestApplyNoRuleMatchLeavesDecisionUnchanged(t *testing.T) {
	rules := Rules{{Prefix: "/admin", Network: true}}
	original := ruleengine.Decision{Reason: rfc9211.ReasonCache, TargetURL: "https://s/a.js"}
	got := rules.Apply("/a.js", original)
	if got != original {
		t.Fatalf("got %+v, want unchanged %+v", got, original)
	}
}

func TestApplyForcesNetwork(t *testing.T) {
	rules := Rules{{Prefix: "/admin", Network: true}}
	got := rules.Apply("/admin/panel", ruleengine.Decision{Reason: rfc9211.ReasonCache, TargetURL: "https://s/admin/panel"})
	if got.Reason != rfc9211.ReasonNetwork {
		t.Fatalf("reason = %v, want network", got.Reason)
	}
}

func TestApplyForcesFallback(t *testing.T) {
	rules := Rules{{Prefix: "/api", Fallback: "https://s/offline.json"}}
	got := rules.Apply("/api/widgets", ruleengine.Decision{Reason: rfc9211.ReasonBypass, TargetURL: "https://s/api/widgets"})
	if got.Reason != rfc9211.ReasonFallback || got.TargetURL != "https://s/offline.json" {
		t.Fatalf("decision = %+v", got)
	}
}

func TestApplyPrefersLongestPrefix(t *testing.T) {
	rules := Rules{
		{Prefix: "/api", Network: true},
		{Prefix: "/api/widgets", Fallback: "https://s/widgets-offline.json"},
	}
	got := rules.Apply("/api/widgets/42", ruleengine.Decision{Reason: rfc9211.ReasonBypass, TargetURL: "https://s/api/widgets/42"})
	if got.Reason != rfc9211.ReasonFallback || got.TargetURL != "https://s/widgets-offline.json" {
		t.Fatalf("decision = %+v, want the longer-prefix rule to win", got)
	}
}
