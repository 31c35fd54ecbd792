// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"strings"
)

// ValidationError reports malformed or missing caller input, detected before
// any external side effect. Always recoverable locally.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s %s", e.Field, e.Reason)
}

// ResolutionError reports that no candidate selector (or enumerated option)
// matched a required UI element.
type ResolutionError struct {
	Field     string
	Selectors []string
}

func (e *ResolutionError) Error() string {
	if len(e.Selectors) == 0 {
		return fmt.Sprintf("could not resolve %s", e.Field)
	}
	return fmt.Sprintf("could not resolve %s: tried %s", e.Field, strings.Join(e.Selectors, ", "))
}

// RejectionError reports that the remote system explicitly or heuristically
// signaled rejection (bad credentials, validation banner).
type RejectionError struct {
	Indicator string
}

func (e *RejectionError) Error() string {
	return fmt.Sprintf("rejected by registry: %s", e.Indicator)
}

// PartialError reports that a non-critical sub-flow failed. The overall
// operation still succeeds; the caller may need to finish the step manually.
type PartialError struct {
	Step string
	Err  error
}

func (e *PartialError) Error() string {
	return fmt.Sprintf("%s incomplete: %v", e.Step, e.Err)
}

func (e *PartialError) Unwrap() error { return e.Err }

// TransportError reports that the record source was unreachable or returned a
// non-success status.
type TransportError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("record source unreachable: %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("record source returned HTTP %d for %s", e.StatusCode, e.URL)
}

func (e *TransportError) Unwrap() error { return e.Err }
