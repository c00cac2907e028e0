// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package dispatch

import "errors"

// Outcome is the disposition the classifier selects for a failure: either
// an HTTP status code for the structured error response, or Rethrow, which
// removes the failure from the client-response path entirely so the
// platform's fault handler (the router's panic recoverer) deals with it.
type Outcome struct {
	Status  int
	Rethrow bool
}

// rule is one row of the disposition table. Exactly one of target or match
// is set: target rows match via errors.Is along the failure's wrap chain,
// match rows run an arbitrary predicate (errors.As cases, net timeouts).
type rule struct {
	target  error
	match   func(error) bool
	outcome Outcome
}

// Classifier is an ordered disposition table mapping failures to outcomes.
// Rows are walked top to bottom and the first match wins, so declaration
// order determines precedence: a failure wrapping several sentinels takes
// the earliest row that matches any of them, regardless of wrap depth.
// Rows must therefore be declared most specific first, and the mandatory
// fallback — installed by [ClassifierBuilder.Fallback] — makes
// classification total: every failure receives exactly one outcome.
//
// Classify is pure and side-effect-free; the Classifier is immutable after
// construction and safe for unsynchronized concurrent use.
type Classifier struct {
	rules    []rule
	fallback Outcome
}

// Classify selects the disposition for err: the outcome of the first
// matching row, or the fallback when no row matches.
func (c *Classifier) Classify(err error) Outcome {
	for _, r := range c.rules {
		if r.match != nil {
			if r.match(err) {
				return r.outcome
			}
			continue
		}
		if errors.Is(err, r.target) {
			return r.outcome
		}
	}

	return c.fallback
}

// ClassifierBuilder assembles a Classifier row by row. Row order is
// significant — earlier rows shadow later ones — and the chain must end
// with Fallback, which is the only way to obtain a usable Classifier.
//
// Example:
//
//	classifier := dispatch.NewClassifier().
//		Map(dispatch.ErrNotImplemented, http.StatusNotImplemented).
//		Rethrow(dispatch.ErrUnsupportedOperation).
//		Fallback(http.StatusInternalServerError)
type ClassifierBuilder struct {
	rules []rule
}

// NewClassifier starts an empty disposition table.
func NewClassifier() *ClassifierBuilder {
	return &ClassifierBuilder{}
}

// Map appends a row matching failures that wrap target (per [errors.Is])
// and mapping them to the given HTTP status.
func (b *ClassifierBuilder) Map(target error, status int) *ClassifierBuilder {
	b.rules = append(b.rules, rule{target: target, outcome: Outcome{Status: status}})
	return b
}

// MapFunc appends a row matching failures by predicate. It covers cases a
// sentinel cannot express, such as [errors.As] checks against error types
// or net timeout inspection.
func (b *ClassifierBuilder) MapFunc(match func(error) bool, status int) *ClassifierBuilder {
	b.rules = append(b.rules, rule{match: match, outcome: Outcome{Status: status}})
	return b
}

// Rethrow appends a row matching failures that wrap target and excluding
// them from classification: the boundary re-raises the original failure to
// the platform fault handler instead of writing a structured response.
func (b *ClassifierBuilder) Rethrow(target error) *ClassifierBuilder {
	b.rules = append(b.rules, rule{target: target, outcome: Outcome{Rethrow: true}})
	return b
}

// Fallback seals the table with the catch-all status for failures no row
// matched and returns the finished Classifier. The fallback is last by
// construction: every failure matches it, so an earlier position would
// shadow all later rows.
func (b *ClassifierBuilder) Fallback(status int) *Classifier {
	return &Classifier{
		rules:    b.rules,
		fallback: Outcome{Status: status},
	}
}
