// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "fmt"

// Status tags a Result as success or error.
type Status string

const (
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// Result is the uniform envelope returned by every public operation of the
// session, form, and pipeline surfaces. Callers branch on Status and
// SessionActive without inspecting error types; internal helper errors are
// translated into this shape at each operation boundary.
type Result struct {
	Status        Status `json:"status"`
	Message       string `json:"message"`
	SessionActive bool   `json:"session_active"`
}

// OK reports whether the result is a success.
func (r Result) OK() bool { return r.Status == StatusSuccess }

// Success builds a success result.
func Success(sessionActive bool, format string, args ...any) Result {
	return Result{
		Status:        StatusSuccess,
		Message:       fmt.Sprintf(format, args...),
		SessionActive: sessionActive,
	}
}

// Failure builds an error result.
func Failure(sessionActive bool, format string, args ...any) Result {
	return Result{
		Status:        StatusError,
		Message:       fmt.Sprintf(format, args...),
		SessionActive: sessionActive,
	}
}

// FromError converts an internal error into the envelope, preserving the
// error's message.
func FromError(sessionActive bool, err error) Result {
	return Result{
		Status:        StatusError,
		Message:       err.Error(),
		SessionActive: sessionActive,
	}
}
