// Package dispatch implements the request pipeline at the heart of the
// application: a mediator that routes typed commands and queries to their
// registered handlers through a fixed chain of cross-cutting behaviors
// (logging, authorization, validation), plus the ordered error classifier
// that turns any failure surfaced by the pipeline into a deterministic
// HTTP status decision.
//
// Handlers are registered once at startup; the composed chain per request
// shape is immutable afterwards and safe for concurrent use.
package dispatch
