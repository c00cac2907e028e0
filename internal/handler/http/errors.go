// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Failure modes of `Authorization` header parsing in the auth middleware.
// Matched with [errors.Is]; each one turns into a 401 response before the
// request ever reaches the dispatch pipeline.
var (
	// ErrEmptyAuthorizationHeader: the request carries no `Authorization`
	// header at all.
	ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

	// ErrInvalidAuthorizationHeader: the header is present but has no
	// space-separated token part after the scheme.
	ErrInvalidAuthorizationHeader = errors.New("invalid `Authorization` header")

	// ErrEmptyToken: the scheme prefix is there but the token value itself
	// is an empty string.
	ErrEmptyToken = errors.New("empty token in `Authorization` header")
)
