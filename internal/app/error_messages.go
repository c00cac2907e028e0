// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer constants used across the
// go-doc-vault server handlers and middleware.
//
// Code* constants form the machine-readable error taxonomy written into the
// "code" field of every structured error response; clients branch on them.
// Msg* constants are human-readable message strings written into response
// bodies or log entries. Keeping both in one place ensures consistent
// wording throughout the API.
package app

// Error-code taxonomy. Codes are lowercase snake_case and mirror common HTTP
// status semantics; every structured error response carries exactly one.
const (
	CodeBadRequest         = "bad_request"
	CodeUnauthorized       = "unauthorized"
	CodeForbidden          = "forbidden"
	CodeNotFound           = "not_found"
	CodeConflict           = "conflict"
	CodeNotImplemented     = "not_implemented"
	CodeServiceUnavailable = "service_unavailable"
	CodeInternalError      = "internal_error"
)

const (
	// MsgInvalidJSON is returned when the request body cannot be decoded.
	MsgInvalidJSON = "Invalid JSON was passed"

	// MsgInvalidDataProvided is returned when the request body decodes but
	// fails basic validation (e.g. missing required fields).
	MsgInvalidDataProvided = "invalid data provided"

	// MsgInvalidLoginPassword is returned when the supplied login/password
	// combination does not match any existing user record.
	MsgInvalidLoginPassword = "invalid login/password"

	// MsgInternalServerError is returned when an unexpected server-side
	// failure occurs that the client cannot resolve.
	MsgInternalServerError = "internal server error"

	// MsgLoginAlreadyExists is returned when a registration attempt is
	// rejected because the requested login is already in use.
	MsgLoginAlreadyExists = "login already exists"

	// MsgTokenIsExpiredOrInvalid is returned when a JWT bearer token is
	// either expired or cannot be verified (e.g. wrong signature).
	MsgTokenIsExpiredOrInvalid = "token is expired or invalid"

	// MsgIntegrityCheckFailed is returned when a request carries a body
	// signature that does not match the body received by the server.
	MsgIntegrityCheckFailed = "integrity check failed"
)
