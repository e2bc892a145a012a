// Package diag collects non-fatal findings produced while converting a binding.
package diag

import (
	"sort"

	"go.uber.org/zap"
)

// Malformed is a declaration that could not be represented in the model.
type Malformed struct {
	Kind   string
	Name   string
	Reason string
}

// Skip records an overload that was left out of the output.
type Skip struct {
	Function string
	Overload int
	Reason   string
}

// Report accumulates diagnostics for one run. The zero value is not usable;
// call New.
type Report struct {
	Malformed  []Malformed
	Skipped    []Skip
	unresolved map[string]struct{}
}

// New returns an empty report.
func New() *Report {
	return &Report{unresolved: make(map[string]struct{})}
}

// AddMalformed records a structural defect.
func (r *Report) AddMalformed(kind, name, reason string) {
	r.Malformed = append(r.Malformed, Malformed{Kind: kind, Name: name, Reason: reason})
}

// AddSkip records an overload excluded from the emitted file.
func (r *Report) AddSkip(function string, overload int, reason string) {
	r.Skipped = append(r.Skipped, Skip{Function: function, Overload: overload, Reason: reason})
}

// AddUnresolved records a native type name that could not be resolved.
// Each name is kept once.
func (r *Report) AddUnresolved(token string) {
	r.unresolved[token] = struct{}{}
}

// Unresolved returns the unresolved type names in sorted order.
func (r *Report) Unresolved() []string {
	out := make([]string, 0, len(r.unresolved))
	for t := range r.unresolved {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// Log writes the report. Unresolved names are written once each, after the
// per-declaration entries.
func (r *Report) Log(log *zap.SugaredLogger) {
	for _, m := range r.Malformed {
		log.Warnw("malformed declaration", "kind", m.Kind, "name", m.Name, "reason", m.Reason)
	}
	for _, s := range r.Skipped {
		log.Debugw("skipped overload", "function", s.Function, "overload", s.Overload, "reason", s.Reason)
	}
	for _, t := range r.Unresolved() {
		log.Warnw("unresolved type", "type", t)
	}
}
