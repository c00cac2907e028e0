// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Identity is the authenticated caller extracted from a verified access
// token. The HTTP boundary attaches it to the request context; the dispatch
// pipeline and authorizers read it from there. A request with no Identity in
// its context is anonymous.
type Identity struct {
	// UserID is the internal account identifier ("sub" claim).
	UserID int64

	// Login is the account login the token was issued for.
	Login string

	// ReadOnly is true for accounts that may only run queries.
	ReadOnly bool
}
