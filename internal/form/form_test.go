// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package form

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/restrepo/autocvlac/internal/browser"
	"github.com/restrepo/autocvlac/internal/session"
	"github.com/restrepo/autocvlac/pkg/types"
)

// fakeDriver records calls and fails the steps it is scripted to fail.
type fakeDriver struct {
	calls  []string
	errs   map[string]error
	closed int
}

func newFakeDriver() *fakeDriver {
	return &fakeDriver{errs: map[string]error{}}
}

func (d *fakeDriver) record(format string, args ...any) error {
	call := fmt.Sprintf(format, args...)
	d.calls = append(d.calls, call)
	for prefix, err := range d.errs {
		if strings.HasPrefix(call, prefix) {
			return err
		}
	}
	return nil
}

func (d *fakeDriver) Navigate(_ context.Context, url string) error { return d.record("navigate %s", url) }
func (d *fakeDriver) Click(_ context.Context, c browser.Chain) error {
	return d.record("click %s", c.Field)
}
func (d *fakeDriver) Type(_ context.Context, c browser.Chain, text string) error {
	return d.record("type %s=%s", c.Field, text)
}
func (d *fakeDriver) SelectByText(_ context.Context, c browser.Chain, text string) error {
	return d.record("select %s=%s", c.Field, text)
}
func (d *fakeDriver) ClickMatching(_ context.Context, selector, text string) error {
	return d.record("clickmatching %s=%s", selector, text)
}
func (d *fakeDriver) ClickText(_ context.Context, text string) error {
	return d.record("clicktext %s", text)
}
func (d *fakeDriver) WaitVisible(_ context.Context, c browser.Chain) error {
	return d.record("waitvisible %s", c.Field)
}
func (d *fakeDriver) WaitText(_ context.Context, text string) error {
	return d.record("waittext %s", text)
}
func (d *fakeDriver) Exists(_ context.Context, selector string) (bool, error) {
	d.record("exists %s", selector)
	return false, nil
}
func (d *fakeDriver) PageContains(_ context.Context, text string) (bool, error) {
	d.record("contains %s", text)
	return false, nil
}
func (d *fakeDriver) Sleep(_ context.Context, delay time.Duration) error {
	return d.record("sleep %s", delay)
}
func (d *fakeDriver) Close() error { d.closed++; return nil }

// activeSession authenticates a session over drv.
func activeSession(t *testing.T, drv *fakeDriver) *session.Session {
	t.Helper()
	factory := func(context.Context) (browser.Driver, error) { return drv, nil }
	creds := session.Credentials{
		Nationality: "Colombia",
		FullName:    "Ana María Pérez",
		Document:    "1017123456",
		Password:    "hunter2",
	}
	sess, res := session.Authenticate(context.Background(), factory, creds, testConfig())
	require.True(t, res.OK(), res.Message)
	drv.calls = nil // only observe form-fill calls from here on
	return sess
}

func testConfig() types.RegistryConfig {
	return types.RegistryConfig{SettleDelay: time.Millisecond}
}

func fullArticle() types.Article {
	return types.Article{
		Title:             "Sobre la dinámica de quarks",
		ArticleType:       types.ArticleComplete,
		InitialPage:       "101",
		FinalPage:         "110",
		Language:          "es",
		Year:              2024,
		Month:             "Marzo",
		JournalName:       "Physics Letters B",
		JournalISSN:       "0370-2693",
		Volume:            "848",
		Issue:             "3",
		PublicationMedium: types.MediumElectronic,
		WebsiteURL:        "https://doi.org/10.1016/x",
		DOI:               "10.1016/x",
	}
}

func TestSubmit_RequiresActiveSession(t *testing.T) {
	drv := newFakeDriver()
	sess := activeSession(t, drv)
	require.NoError(t, sess.Close())

	res := New(testConfig()).Submit(context.Background(), sess, fullArticle())
	assert.Equal(t, types.StatusError, res.Status)
	assert.False(t, res.SessionActive)
	assert.Empty(t, drv.calls)
}

func TestSubmit_Validation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*types.Article)
		wantMsg string
	}{
		{"missing title", func(a *types.Article) { a.Title = "" }, "title"},
		{"unknown article type", func(a *types.Article) { a.ArticleType = "999" }, "111, 112, 113, 114"},
		{"unknown medium", func(a *types.Article) { a.PublicationMedium = "Vinilo" }, "Papel, Electrónico"},
		{"english month", func(a *types.Article) { a.Month = "March" }, "Spanish month"},
		{"lowercase month", func(a *types.Article) { a.Month = "marzo" }, "Spanish month"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			drv := newFakeDriver()
			sess := activeSession(t, drv)

			art := fullArticle()
			tt.mutate(&art)

			res := New(testConfig()).Submit(context.Background(), sess, art)
			assert.Equal(t, types.StatusError, res.Status)
			assert.Contains(t, res.Message, tt.wantMsg)

			// The session survives a validation failure for a retry.
			assert.True(t, res.SessionActive)
			assert.True(t, sess.Active())
			assert.Empty(t, drv.calls, "validation must precede navigation")
		})
	}
}

func TestSubmit_FullArticle(t *testing.T) {
	drv := newFakeDriver()
	sess := activeSession(t, drv)

	res := New(testConfig()).Submit(context.Background(), sess, fullArticle())
	require.Equal(t, types.StatusSuccess, res.Status, res.Message)
	assert.True(t, res.SessionActive)
	assert.NotContains(t, res.Message, "manually")

	wantCalls := []string{
		"navigate https://scienti.minciencias.gov.co/cvlac/EnProdArticulo/create.do",
		"waittext Buscar",
		"click article type Completo",
		"type title=Sobre la dinámica de quarks",
		"type initial page=101",
		"type final page=110",
		"select language=Español",
		"select year=2024",
		"select month=Marzo",
		"type volume=848",
		"type issue=3",
		"select publication medium=Electrónico",
		"type website url=https://doi.org/10.1016/x",
		"type doi=10.1016/x",
		"type journal name=Physics Letters B",
		// journal-link sub-flow
		"clicktext Buscar",
		"type issn code=0370-2693",
		"waittext Vincular",
		"click journal result link",
		"click journal option",
		"clicktext Vincular",
	}
	for _, want := range wantCalls {
		assert.Contains(t, drv.calls, want)
	}

	// Commit confirmation: the search affordance must reappear after the
	// sub-flow.
	last := drv.calls[len(drv.calls)-1]
	assert.Equal(t, "waittext Buscar", last)
}

func TestSubmit_AbsentFieldsAreNotTouched(t *testing.T) {
	drv := newFakeDriver()
	sess := activeSession(t, drv)

	art := types.Article{
		Title:             "Minimal",
		ArticleType:       types.ArticleShort,
		Language:          "ES",
		PublicationMedium: types.MediumPaper,
	}
	res := New(testConfig()).Submit(context.Background(), sess, art)
	require.True(t, res.OK(), res.Message)

	for _, call := range drv.calls {
		for _, banned := range []string{"initial page", "final page", "volume", "issue", "series", "year=", "month=", "website url", "doi=", "issn code", "journal name"} {
			assert.NotContains(t, call, banned)
		}
	}
	assert.Contains(t, drv.calls, "click article type Corto")
	assert.Contains(t, drv.calls, "select language=Español")
	assert.Contains(t, drv.calls, "select publication medium=Papel")
}

func TestSubmit_JournalLinkFailureIsPartial(t *testing.T) {
	drv := newFakeDriver()
	drv.errs["waittext Vincular"] = &types.ResolutionError{Field: `text "Vincular"`}
	sess := activeSession(t, drv)

	res := New(testConfig()).Submit(context.Background(), sess, fullArticle())
	require.Equal(t, types.StatusSuccess, res.Status, "journal-link failure degrades, not aborts")
	assert.Contains(t, res.Message, "journal link")
	assert.Contains(t, res.Message, "manually")
	assert.True(t, res.SessionActive)
	assert.True(t, sess.Active())
	assert.Zero(t, drv.closed)
}

func TestSubmit_ReadonlyJournalNameFailureSwallowed(t *testing.T) {
	drv := newFakeDriver()
	drv.errs["type journal name"] = fmt.Errorf("element is readonly")
	sess := activeSession(t, drv)

	res := New(testConfig()).Submit(context.Background(), sess, fullArticle())
	assert.Equal(t, types.StatusSuccess, res.Status, res.Message)
	assert.NotContains(t, res.Message, "readonly")
}

func TestSubmit_HardFailureDeactivatesSession(t *testing.T) {
	drv := newFakeDriver()
	drv.errs["select month"] = &types.ResolutionError{Field: `month option "Marzo"`}
	sess := activeSession(t, drv)

	res := New(testConfig()).Submit(context.Background(), sess, fullArticle())
	assert.Equal(t, types.StatusError, res.Status)
	assert.Contains(t, res.Message, "month")
	assert.False(t, res.SessionActive)
	assert.False(t, sess.Active())
	assert.Equal(t, 1, drv.closed, "hard failure releases the browser")
}

func TestSubmit_NoISSNSkipsJournalFlow(t *testing.T) {
	drv := newFakeDriver()
	sess := activeSession(t, drv)

	art := fullArticle()
	art.JournalISSN = ""
	res := New(testConfig()).Submit(context.Background(), sess, art)
	require.True(t, res.OK(), res.Message)

	for _, call := range drv.calls {
		assert.NotContains(t, call, "Vincular")
	}
}
