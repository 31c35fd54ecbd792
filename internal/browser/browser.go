// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package browser defines the primitive UI automation surface the session
// and form stages drive, and its chromedp-backed implementation.
//
// Every logical form field is addressed through a Chain: an ordered list of
// candidate CSS selectors tried in priority order. The registry's markup
// shifts between deployments; keeping the fallbacks as data means a new
// selector is one line of configuration, not a new code branch.
package browser

import (
	"context"
	"time"

	"github.com/restrepo/autocvlac/pkg/types"
)

// Chain is an ordered fallback selector list for one logical field. The
// first selector that resolves on the live page wins; exhaustion is a
// *types.ResolutionError.
type Chain struct {
	// Field names the logical field, for error messages.
	Field string

	// Selectors are CSS candidates in priority order.
	Selectors []string
}

// NewChain builds a chain.
func NewChain(field string, selectors ...string) Chain {
	return Chain{Field: field, Selectors: selectors}
}

// Err returns the resolution error for an exhausted chain.
func (c Chain) Err() error {
	return &types.ResolutionError{Field: c.Field, Selectors: c.Selectors}
}

// Driver is the primitive browser surface. All operations block until the
// remote UI responds or the driver's wait timeout elapses; the driver is not
// safe for concurrent use and exactly one session may hold it at a time.
type Driver interface {
	// Navigate loads url and waits for the page to settle.
	Navigate(ctx context.Context, url string) error

	// Click resolves the chain and clicks the element.
	Click(ctx context.Context, chain Chain) error

	// Type resolves the chain, clears the field, and types text into it.
	Type(ctx context.Context, chain Chain, text string) error

	// SelectByText resolves the chain to a <select> and picks the option
	// whose visible text equals text exactly. No matching option is a
	// resolution failure.
	SelectByText(ctx context.Context, chain Chain, text string) error

	// ClickMatching clicks the first element matching selector whose
	// trimmed text equals text.
	ClickMatching(ctx context.Context, selector, text string) error

	// ClickText clicks the first link, button, or submit input whose
	// label equals text.
	ClickText(ctx context.Context, text string) error

	// WaitVisible blocks until the chain resolves to a visible element.
	WaitVisible(ctx context.Context, chain Chain) error

	// WaitText blocks until the page shows text.
	WaitText(ctx context.Context, text string) error

	// Exists reports whether selector matches at least one element.
	Exists(ctx context.Context, selector string) (bool, error)

	// PageContains reports whether the page's visible text contains text.
	PageContains(ctx context.Context, text string) (bool, error)

	// Sleep pauses for a fixed settle delay.
	Sleep(ctx context.Context, d time.Duration) error

	// Close releases the underlying browser. Safe to call more than once.
	Close() error
}

// Factory acquires a Driver. The session calls it only after credential
// validation has passed, so a validation failure never acquires a browser.
type Factory func(ctx context.Context) (Driver, error)
