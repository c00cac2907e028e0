// Package http is the HTTP boundary of the document vault.
//
// It wires the chi router, decodes transport concerns (URL parameters,
// query filters, JSON bodies) into request values dispatched through the
// pipeline, and translates pipeline failures into structured error
// responses via the ordered boundary classifier. Authentication, request
// tracing, access logging, response compression, and body-integrity checks
// run as middleware before a request reaches an endpoint.
package http
