// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package browser

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/chromedp"

	"github.com/restrepo/autocvlac/pkg/types"
)

// pollInterval is how often text waits re-check the page.
const pollInterval = 200 * time.Millisecond

// Chrome drives a Chrome instance over the DevTools protocol. The browser
// binds to the context passed at construction; per-call contexts bound
// individual waits.
type Chrome struct {
	ctx     context.Context
	cancels []context.CancelFunc
	timeout time.Duration
	closed  bool
}

// NewChrome launches a Chrome (or connects to a remote one when
// cfg.RemoteURL is set) and returns a ready driver.
func NewChrome(ctx context.Context, cfg types.RegistryConfig) (*Chrome, error) {
	var (
		allocCtx    context.Context
		allocCancel context.CancelFunc
	)
	if cfg.RemoteURL != "" {
		allocCtx, allocCancel = chromedp.NewRemoteAllocator(ctx, cfg.RemoteURL)
	} else {
		opts := append(
			chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", cfg.Headless),
		)
		allocCtx, allocCancel = chromedp.NewExecAllocator(ctx, opts...)
	}

	browserCtx, browserCancel := chromedp.NewContext(allocCtx)

	// Force the browser to start now so acquisition failures surface here
	// and not in the middle of a login flow.
	if err := chromedp.Run(browserCtx); err != nil {
		browserCancel()
		allocCancel()
		return nil, fmt.Errorf("starting browser: %w", err)
	}

	timeout := cfg.WaitTimeout
	if timeout == 0 {
		timeout = 20 * time.Second
	}
	return &Chrome{
		ctx:     browserCtx,
		cancels: []context.CancelFunc{browserCancel, allocCancel},
		timeout: timeout,
	}, nil
}

// Close tears the browser down. Safe to call more than once.
func (c *Chrome) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	for _, cancel := range c.cancels {
		cancel()
	}
	return nil
}

func (c *Chrome) Navigate(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return chromedp.Run(c.ctx, chromedp.Navigate(url))
}

// resolve returns the first selector in the chain that matches at least one
// element on the live page.
func (c *Chrome) resolve(chain Chain) (string, error) {
	for _, sel := range chain.Selectors {
		var nodes []*cdp.Node
		err := chromedp.Run(c.ctx,
			chromedp.Nodes(sel, &nodes, chromedp.ByQueryAll, chromedp.AtLeast(0)))
		if err != nil {
			return "", fmt.Errorf("querying %s: %w", sel, err)
		}
		if len(nodes) > 0 {
			return sel, nil
		}
	}
	return "", chain.Err()
}

func (c *Chrome) Click(ctx context.Context, chain Chain) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	sel, err := c.resolve(chain)
	if err != nil {
		return err
	}
	return chromedp.Run(c.ctx, chromedp.Click(sel, chromedp.ByQuery))
}

func (c *Chrome) Type(ctx context.Context, chain Chain, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	sel, err := c.resolve(chain)
	if err != nil {
		return err
	}
	return chromedp.Run(c.ctx,
		chromedp.Clear(sel, chromedp.ByQuery),
		chromedp.SendKeys(sel, text, chromedp.ByQuery),
	)
}

func (c *Chrome) SelectByText(ctx context.Context, chain Chain, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	sel, err := c.resolve(chain)
	if err != nil {
		return err
	}
	expr := fmt.Sprintf(`(() => {
		const el = document.querySelector(%q);
		if (!el || !el.options) return false;
		for (let i = 0; i < el.options.length; i++) {
			if (el.options[i].text.trim() === %q) {
				el.selectedIndex = i;
				el.dispatchEvent(new Event('change', {bubbles: true}));
				return true;
			}
		}
		return false;
	})()`, sel, text)

	var matched bool
	if err := chromedp.Run(c.ctx, chromedp.Evaluate(expr, &matched)); err != nil {
		return fmt.Errorf("selecting %q in %s: %w", text, sel, err)
	}
	if !matched {
		return &types.ResolutionError{Field: fmt.Sprintf("%s option %q", chain.Field, text)}
	}
	return nil
}

func (c *Chrome) ClickMatching(ctx context.Context, selector, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	expr := fmt.Sprintf(`(() => {
		for (const el of document.querySelectorAll(%q)) {
			if (el.textContent.trim() === %q) { el.click(); return true; }
		}
		return false;
	})()`, selector, text)

	var matched bool
	if err := chromedp.Run(c.ctx, chromedp.Evaluate(expr, &matched)); err != nil {
		return fmt.Errorf("clicking %q among %s: %w", text, selector, err)
	}
	if !matched {
		return &types.ResolutionError{Field: fmt.Sprintf("element %q", text), Selectors: []string{selector}}
	}
	return nil
}

func (c *Chrome) ClickText(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	expr := fmt.Sprintf(`(() => {
		for (const el of document.querySelectorAll('a, button, input[type="submit"], input[type="button"]')) {
			const label = (el.value || el.textContent || '').trim();
			if (label === %q) { el.click(); return true; }
		}
		return false;
	})()`, text)

	var matched bool
	if err := chromedp.Run(c.ctx, chromedp.Evaluate(expr, &matched)); err != nil {
		return fmt.Errorf("clicking %q: %w", text, err)
	}
	if !matched {
		return &types.ResolutionError{Field: fmt.Sprintf("control %q", text)}
	}
	return nil
}

func (c *Chrome) WaitVisible(ctx context.Context, chain Chain) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	sel, err := c.resolve(chain)
	if err != nil {
		return err
	}
	waitCtx, cancel := context.WithTimeout(c.ctx, c.timeout)
	defer cancel()
	if err := chromedp.Run(waitCtx, chromedp.WaitVisible(sel, chromedp.ByQuery)); err != nil {
		return &types.ResolutionError{Field: chain.Field, Selectors: []string{sel}}
	}
	return nil
}

func (c *Chrome) WaitText(ctx context.Context, text string) error {
	deadline := time.Now().Add(c.timeout)
	for {
		ok, err := c.PageContains(ctx, text)
		if err != nil {
			return err
		}
		if ok {
			return nil
		}
		if time.Now().After(deadline) {
			return &types.ResolutionError{Field: fmt.Sprintf("text %q", text)}
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(pollInterval):
		}
	}
}

func (c *Chrome) Exists(ctx context.Context, selector string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	var nodes []*cdp.Node
	err := chromedp.Run(c.ctx,
		chromedp.Nodes(selector, &nodes, chromedp.ByQueryAll, chromedp.AtLeast(0)))
	if err != nil {
		return false, fmt.Errorf("querying %s: %w", selector, err)
	}
	return len(nodes) > 0, nil
}

func (c *Chrome) PageContains(ctx context.Context, text string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	expr := fmt.Sprintf(`document.body ? document.body.innerText.includes(%q) : false`, text)
	var found bool
	if err := chromedp.Run(c.ctx, chromedp.Evaluate(expr, &found)); err != nil {
		return false, fmt.Errorf("inspecting page text: %w", err)
	}
	return found, nil
}

func (c *Chrome) Sleep(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}

// ChromeFactory returns a Factory that launches Chrome with the registry
// configuration.
func ChromeFactory(cfg types.RegistryConfig) Factory {
	return func(ctx context.Context) (Driver, error) {
		return NewChrome(ctx, cfg)
	}
}
