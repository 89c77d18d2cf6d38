// Package overriderules lets an operator override the Rule Engine's
// manifest-driven resolution for a path prefix, independent of what any
// installed manifest says — useful for an emergency "force this prefix to
// the network" switch, or a fixed fallback target for a prefix. Overrides
// are applied only to a Rule Engine decision (a bound client, or an unbound
// client whose request matched some manifest's FALLBACK); a request from an
// unbound client that matches no manifest is proxied without consulting
// them. Adapted from the teacher's per-response Cache-Control rule
// matcher (prefix/path/method matching, longest-prefix-first iteration);
// the match logic is unchanged, only what a match does (override a
// resolution Decision, not a response header) has been repurposed.
package overriderules

import (
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/appcacheshim/appcache/rfc9211"
	"github.com/appcacheshim/appcache/ruleengine"
)

// Rule overrides the Rule Engine's decision for any request whose path has
// the given Prefix. Exactly one of Network or Fallback should be set.
type Rule struct {
	Prefix   string `yaml:"prefix"`
	Network  bool   `yaml:"network"`
	Fallback string `yaml:"fallback"`
}

type Rules []Rule

// Apply returns the override decision for requestPath, or the Rule
// Engine's original decision unchanged if no rule matches. Rules are
// checked longest-prefix-first so a narrower override always wins over a
// broader one, matching the teacher's matcher semantics.
func (rs Rules) Apply(requestPath string, decision ruleengine.Decision) ruleengine.Decision {
	rule, ok := rs.find(requestPath)
	if !ok {
		return decision
	}
	switch {
	case rule.Network:
		log.Trace().Str("prefix", rule.Prefix).Msg("override rule forcing network passthrough")
		decision.Reason = rfc9211.ReasonNetwork
	case rule.Fallback != "":
		log.Trace().Str("prefix", rule.Prefix).Msg("override rule forcing fallback target")
		decision.Reason = rfc9211.ReasonFallback
		decision.TargetURL = rule.Fallback
	}
	return decision
}

func (rs Rules) find(requestPath string) (Rule, bool) {
	var best Rule
	found := false
	for _, rule := range rs {
		if rule.Prefix == "" || !strings.HasPrefix(requestPath, rule.Prefix) {
			continue
		}
		if !found || len(rule.Prefix) > len(best.Prefix) {
			best = rule
			found = true
		}
	}
	return best, found
}
