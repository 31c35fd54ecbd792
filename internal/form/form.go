// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package form drives the CvLAC scientific-article form through an
// authenticated session.
package form

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/restrepo/autocvlac/internal/browser"
	"github.com/restrepo/autocvlac/internal/extract"
	"github.com/restrepo/autocvlac/internal/session"
	"github.com/restrepo/autocvlac/pkg/types"
)

// step tracks how far a submission progressed, for failure messages.
type step string

const (
	stepNotStarted    step = "not started"
	stepNavigated     step = "navigated"
	stepFieldsFilled  step = "fields filled"
	stepJournalLinked step = "journal linked"
	stepCommitted     step = "committed"
)

// Filler submits article field sets through the registry form.
type Filler struct {
	cfg types.RegistryConfig
	sel Selectors
}

// New builds a Filler.
func New(cfg types.RegistryConfig) *Filler {
	cfg.Defaults()
	return &Filler{cfg: cfg, sel: DefaultSelectors}
}

// validate applies the closed-set checks before any navigation happens.
// A violation here leaves the session untouched and reusable.
func validate(art types.Article) error {
	if art.Title == "" {
		return &types.ValidationError{Field: "title", Reason: "is required"}
	}
	if !contains(types.ArticleTypes, art.ArticleType) {
		return &types.ValidationError{
			Field:  "article_type",
			Reason: fmt.Sprintf("must be one of %s", strings.Join(types.ArticleTypes, ", ")),
		}
	}
	if !contains(types.PublicationMedia, art.PublicationMedium) {
		return &types.ValidationError{
			Field:  "publication_medium",
			Reason: fmt.Sprintf("must be one of %s", strings.Join(types.PublicationMedia, ", ")),
		}
	}
	if art.Month != "" && !extract.IsMonth(art.Month) {
		return &types.ValidationError{
			Field:  "month",
			Reason: "must be a Spanish month name starting with a capital letter, e.g. Enero",
		}
	}
	return nil
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

// Submit fills and commits one article through the form. It is usable only
// on an active session; a validation failure reports an error but keeps the
// session active, while a mid-flow failure deactivates the session and
// releases the browser. A journal-link sub-flow failure degrades to partial
// success, reported in the message.
func (f *Filler) Submit(ctx context.Context, sess *session.Session, art types.Article) types.Result {
	if !sess.Active() {
		return types.Failure(false, "session is not active; authenticate first")
	}
	if err := validate(art); err != nil {
		// Session untouched: corrected input can retry immediately.
		return types.FromError(true, err)
	}

	partial, err := f.fill(ctx, sess.Driver(), art)
	if err != nil {
		sess.Fail()
		return types.Failure(false, "form fill failed: %v", err)
	}
	if partial != nil {
		return types.Success(true, "article form committed; %v — complete the journal link manually", partial)
	}
	return types.Success(true, "article form committed")
}

// fill walks the form. It returns a *types.PartialError for a degraded
// journal-link sub-flow and a hard error for anything else.
func (f *Filler) fill(ctx context.Context, drv browser.Driver, art types.Article) (*types.PartialError, error) {
	cur := stepNotStarted
	fail := func(err error) (*types.PartialError, error) {
		return nil, fmt.Errorf("at %s: %w", cur, err)
	}

	if err := drv.Navigate(ctx, f.cfg.ArticleURL); err != nil {
		return fail(err)
	}
	if err := drv.Sleep(ctx, f.cfg.SettleDelay); err != nil {
		return fail(err)
	}
	if err := drv.WaitText(ctx, searchLabel); err != nil {
		return fail(err)
	}
	cur = stepNavigated

	if err := drv.Click(ctx, f.sel.TypeRadios[art.ArticleType]); err != nil {
		return fail(err)
	}
	if err := drv.Type(ctx, f.sel.Title, art.Title); err != nil {
		return fail(err)
	}
	if art.InitialPage != "" {
		if err := drv.Type(ctx, f.sel.InitialPage, art.InitialPage); err != nil {
			return fail(err)
		}
	}
	if art.FinalPage != "" {
		if err := drv.Type(ctx, f.sel.FinalPage, art.FinalPage); err != nil {
			return fail(err)
		}
	}

	// Dropdowns are matched by exact visible text; the language code is
	// translated to the Spanish display name the list shows.
	if err := drv.SelectByText(ctx, f.sel.Language, extract.LanguageName(art.Language)); err != nil {
		return fail(err)
	}
	if art.Year != 0 {
		if err := drv.SelectByText(ctx, f.sel.Year, strconv.Itoa(art.Year)); err != nil {
			return fail(err)
		}
	}
	if art.Month != "" {
		if err := drv.SelectByText(ctx, f.sel.Month, art.Month); err != nil {
			return fail(err)
		}
	}

	if art.Volume != "" {
		if err := drv.Type(ctx, f.sel.Volume, art.Volume); err != nil {
			return fail(err)
		}
	}
	if art.Issue != "" {
		if err := drv.Type(ctx, f.sel.Issue, art.Issue); err != nil {
			return fail(err)
		}
	}
	if art.Series != "" {
		if err := drv.Type(ctx, f.sel.Series, art.Series); err != nil {
			return fail(err)
		}
	}
	if err := drv.SelectByText(ctx, f.sel.Medium, art.PublicationMedium); err != nil {
		return fail(err)
	}
	if art.WebsiteURL != "" {
		if err := drv.Type(ctx, f.sel.WebsiteURL, art.WebsiteURL); err != nil {
			return fail(err)
		}
	}
	if art.DOI != "" {
		if err := drv.Type(ctx, f.sel.DOI, art.DOI); err != nil {
			return fail(err)
		}
	}

	// The journal-name field is readonly once a journal is linked; a
	// failed write here is informational only and deliberately swallowed.
	if art.JournalName != "" {
		_ = drv.Type(ctx, f.sel.JournalName, art.JournalName)
	}
	cur = stepFieldsFilled

	var partial *types.PartialError
	if art.JournalISSN != "" {
		if err := f.linkJournal(ctx, drv, art.JournalISSN); err != nil {
			partial = &types.PartialError{Step: "journal link", Err: err}
		} else {
			cur = stepJournalLinked
		}
	}

	// The search affordance reappearing signals the form returned to a
	// stable state; only then is the submission committed.
	if err := drv.WaitText(ctx, searchLabel); err != nil {
		return fail(err)
	}
	cur = stepCommitted

	return partial, nil
}

// linkJournal runs the modal search sub-flow that binds the article to its
// journal by ISSN.
func (f *Filler) linkJournal(ctx context.Context, drv browser.Driver, issn string) error {
	if err := drv.ClickText(ctx, searchLabel); err != nil {
		return err
	}
	if err := drv.Type(ctx, f.sel.ISSNCode, issn); err != nil {
		return err
	}
	if err := drv.ClickText(ctx, searchLabel); err != nil {
		return err
	}
	if err := drv.WaitText(ctx, linkLabel); err != nil {
		return err
	}
	if err := drv.Click(ctx, f.sel.JournalResult); err != nil {
		return err
	}
	if err := drv.Click(ctx, f.sel.JournalOption); err != nil {
		return err
	}
	return drv.ClickText(ctx, linkLabel)
}
