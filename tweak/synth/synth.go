// Package synth produces stylesheet from the ledger.
package synth

import (
	"strings"

	"csstweak/tweak/ledger"
	"csstweak/tweak/subst"
)

// Synthesizer renders ledger records as CSS rules, one rule per record in
// ledger order. It keeps no state between calls.
type Synthesizer struct {
	engine *subst.Engine
}

// New creates synthesizer resolving placeholders with given engine.
func New(engine *subst.Engine) *Synthesizer {
	if engine == nil {
		engine = subst.New(subst.DefaultUnits)
	}
	return &Synthesizer{engine: engine}
}

// Rule renders a single record.
func (s *Synthesizer) Rule(r ledger.Record, defaults, live subst.Bindings) string {
	return r.Selector + " { " + s.engine.Resolve(r.Declarations, defaults, live) + " }"
}

// Build renders all records. Empty ledger produces empty stylesheet.
func (s *Synthesizer) Build(l ledger.Ledger, defaults, live subst.Bindings) string {
	records := l.Records()
	if len(records) == 0 {
		return ""
	}
	rules := make([]string, 0, len(records))
	for _, r := range records {
		rules = append(rules, s.Rule(r, defaults, live))
	}
	return strings.Join(rules, "\n")
}
