package models

// ErrorResponse is the structured error body returned for every classified
// request failure. Code is a stable machine-readable taxonomy value, Message
// is human-readable, and Violations is populated only for input-validation
// failures — always with the complete list of violations found, never
// truncated to the first.
type ErrorResponse struct {
	// Code is the machine-readable error code (e.g. "forbidden",
	// "bad_request"). Clients are expected to branch on this value.
	Code string `json:"code"`

	// Message is the human-readable description of the failure.
	Message string `json:"message"`

	// Violations enumerates every input rule the request violated.
	// Present only when Code is "bad_request".
	Violations []ViolationResponse `json:"violations,omitempty"`
}

// ViolationResponse is one input-validation violation in an ErrorResponse.
type ViolationResponse struct {
	// Field names the offending request field.
	Field string `json:"field"`

	// Reason describes the violated rule.
	Reason string `json:"reason"`
}

// DocumentListResponse is the page of documents returned by a list query.
type DocumentListResponse struct {
	// Documents is the page content.
	Documents []Document `json:"documents"`

	// Length is the number of entries in Documents. Provided for
	// convenience so clients can pre-allocate or validate the response
	// without iterating the slice.
	Length int `json:"length"`
}

// AuthResponse carries the signed token issued by register and login.
type AuthResponse struct {
	// Token is the compact JWS string to present in the Authorization header.
	Token string `json:"token"`
}

// HealthResponse reports the liveness of the server and its storage backend.
type HealthResponse struct {
	// Status is "ok" when every probe passed and "degraded" otherwise.
	Status string `json:"status"`

	// Database reports the storage probe outcome ("ok" or the failure text).
	Database string `json:"database"`
}
