// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package session

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/restrepo/autocvlac/internal/browser"
	"github.com/restrepo/autocvlac/pkg/types"
)

// fakeDriver is a scripted browser: it records every call and can be told
// to fail specific steps or to show page content.
type fakeDriver struct {
	calls     []string
	errs      map[string]error // call prefix → error
	pageTexts map[string]bool
	selectors map[string]bool
	closed    int
}

func newFakeDriver() *fakeDriver {
	return &fakeDriver{
		errs:      map[string]error{},
		pageTexts: map[string]bool{},
		selectors: map[string]bool{},
	}
}

func (d *fakeDriver) record(format string, args ...any) error {
	call := fmt.Sprintf(format, args...)
	d.calls = append(d.calls, call)
	for prefix, err := range d.errs {
		if len(call) >= len(prefix) && call[:len(prefix)] == prefix {
			return err
		}
	}
	return nil
}

func (d *fakeDriver) Navigate(_ context.Context, url string) error {
	return d.record("navigate %s", url)
}

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
	return d.selectors[selector], nil
}

func (d *fakeDriver) PageContains(_ context.Context, text string) (bool, error) {
	d.record("contains %s", text)
	return d.pageTexts[text], nil
}

func (d *fakeDriver) Sleep(_ context.Context, delay time.Duration) error {
	return d.record("sleep %s", delay)
}

func (d *fakeDriver) Close() error {
	d.closed++
	return nil
}

// factoryFor returns a Factory yielding drv, plus a counter of acquisitions.
func factoryFor(drv browser.Driver) (browser.Factory, *int) {
	acquired := 0
	return func(context.Context) (browser.Driver, error) {
		acquired++
		return drv, nil
	}, &acquired
}

func domesticCreds() Credentials {
	return Credentials{
		Nationality: "Colombia",
		FullName:    "Ana María Pérez",
		Document:    "1017123456",
		Password:    "hunter2",
	}
}

func foreignCreds() Credentials {
	return Credentials{
		Nationality:  NationalityForeignOther,
		FullName:     "John Doe",
		Password:     "hunter2",
		BirthCountry: "Francia",
		BirthDate:    "1980-05-17",
	}
}

func testConfig() types.RegistryConfig {
	return types.RegistryConfig{SettleDelay: time.Millisecond}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Credentials)
		wantField string
	}{
		{"missing nationality", func(c *Credentials) { c.Nationality = "" }, "nationality"},
		{"missing full name", func(c *Credentials) { c.FullName = "" }, "full_name"},
		{"missing password", func(c *Credentials) { c.Password = "" }, "password"},
		{"missing document", func(c *Credentials) { c.Document = "" }, "document"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			creds := domesticCreds()
			tt.mutate(&creds)
			_, err := Validate(creds)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantField)
		})
	}
}

func TestValidate_ForeignOther(t *testing.T) {
	// Both sentinel spellings take the birth-data branch.
	for _, nat := range []string{NationalityForeignOther, NationalityForeignOtherCode} {
		creds := foreignCreds()
		creds.Nationality = nat
		creds.Document = "" // unused on this branch
		id, err := Validate(creds)
		require.NoError(t, err, nat)

		proof, ok := id.Proof.(BirthProof)
		require.True(t, ok)
		assert.Equal(t, "Francia", proof.Country)
		assert.Equal(t, 1980, proof.Date.Year())
		assert.Equal(t, time.May, proof.Date.Month())
		assert.Equal(t, 17, proof.Date.Day())
	}
}

func TestValidate_BadBirthDate(t *testing.T) {
	creds := foreignCreds()
	creds.BirthDate = "not-a-date"
	_, err := Validate(creds)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "birth_date")
}

func TestAuthenticate_ValidationNeverAcquiresBrowser(t *testing.T) {
	drv := newFakeDriver()
	factory, acquired := factoryFor(drv)

	creds := foreignCreds()
	creds.BirthCountry = ""

	sess, res := Authenticate(context.Background(), factory, creds, testConfig())
	assert.Nil(t, sess)
	assert.Equal(t, types.StatusError, res.Status)
	assert.Contains(t, res.Message, "birth_country")
	assert.False(t, res.SessionActive)
	assert.Zero(t, *acquired, "validation failure must not touch the driver")
	assert.Empty(t, drv.calls)
}

func TestAuthenticate_DomesticHappyPath(t *testing.T) {
	drv := newFakeDriver()
	factory, acquired := factoryFor(drv)

	sess, res := Authenticate(context.Background(), factory, domesticCreds(), testConfig())
	require.Equal(t, types.StatusSuccess, res.Status, res.Message)
	require.NotNil(t, sess)
	assert.True(t, res.SessionActive)
	assert.True(t, sess.Active())
	assert.Equal(t, StateAuthenticated, sess.State())
	assert.Equal(t, 1, *acquired)
	assert.Zero(t, drv.closed)

	assert.Contains(t, drv.calls, "navigate https://scienti.minciencias.gov.co/cvlac/Login/pre_s_login.do")
	assert.Contains(t, drv.calls, "select nationality=Colombia")
	assert.Contains(t, drv.calls, "type full name=Ana María Pérez")
	assert.Contains(t, drv.calls, "type identity document=1017123456")
	assert.Contains(t, drv.calls, "type password=hunter2")
	assert.Contains(t, drv.calls, "click submit")
	assert.NotContains(t, drv.calls, "waittext País de nacimiento")
}

func TestAuthenticate_ForeignBranchDrivesDatepicker(t *testing.T) {
	drv := newFakeDriver()
	factory, _ := factoryFor(drv)

	sess, res := Authenticate(context.Background(), factory, foreignCreds(), testConfig())
	require.Equal(t, types.StatusSuccess, res.Status, res.Message)
	defer sess.Close()

	assert.Contains(t, drv.calls, "waittext País de nacimiento")
	assert.Contains(t, drv.calls, "select birth country=Francia")
	assert.Contains(t, drv.calls, "click calendar trigger")
	assert.Contains(t, drv.calls, "select calendar month=Mayo")
	assert.Contains(t, drv.calls, "select calendar year=1980")
	assert.Contains(t, drv.calls, "clickmatching "+DayCellSelector+"=17")
	for _, call := range drv.calls {
		assert.NotContains(t, call, "identity document", "document field unused on foreign branch")
	}
}

func TestAuthenticate_RejectedByIndicatorText(t *testing.T) {
	drv := newFakeDriver()
	drv.pageTexts["Usuario y/o contraseña incorrectos"] = true
	factory, _ := factoryFor(drv)

	sess, res := Authenticate(context.Background(), factory, domesticCreds(), testConfig())
	assert.Nil(t, sess)
	assert.Equal(t, types.StatusError, res.Status)
	assert.Contains(t, res.Message, "Usuario y/o contraseña incorrectos")
	assert.False(t, res.SessionActive)
	assert.Equal(t, 1, drv.closed, "teardown releases the browser")
}

func TestAuthenticate_RejectedByErrorBanner(t *testing.T) {
	drv := newFakeDriver()
	drv.selectors[".alert-danger"] = true
	factory, _ := factoryFor(drv)

	sess, res := Authenticate(context.Background(), factory, domesticCreds(), testConfig())
	assert.Nil(t, sess)
	assert.Contains(t, res.Message, ".alert-danger")
	assert.Equal(t, 1, drv.closed)
}

func TestAuthenticate_ResolutionFailureTearsDown(t *testing.T) {
	drv := newFakeDriver()
	drv.errs["select nationality"] = DefaultSelectors.Nationality.Err()
	factory, _ := factoryFor(drv)

	sess, res := Authenticate(context.Background(), factory, domesticCreds(), testConfig())
	assert.Nil(t, sess)
	assert.Equal(t, types.StatusError, res.Status)
	assert.Contains(t, res.Message, "nationality")
	assert.Equal(t, 1, drv.closed)
}

func TestAuthenticate_DatepickerEnumerationFailure(t *testing.T) {
	drv := newFakeDriver()
	drv.errs["select calendar year"] = &types.ResolutionError{Field: "calendar year option \"1980\""}
	factory, _ := factoryFor(drv)

	sess, res := Authenticate(context.Background(), factory, foreignCreds(), testConfig())
	assert.Nil(t, sess)
	assert.Contains(t, res.Message, "calendar year")
	assert.Equal(t, 1, drv.closed)
}

func TestAuthenticate_FactoryError(t *testing.T) {
	factory := func(context.Context) (browser.Driver, error) {
		return nil, fmt.Errorf("no chrome on PATH")
	}
	sess, res := Authenticate(context.Background(), factory, domesticCreds(), testConfig())
	assert.Nil(t, sess)
	assert.Contains(t, res.Message, "no chrome on PATH")
}

func TestSessionClose(t *testing.T) {
	drv := newFakeDriver()
	factory, _ := factoryFor(drv)

	sess, res := Authenticate(context.Background(), factory, domesticCreds(), testConfig())
	require.True(t, res.OK())

	require.NoError(t, sess.Close())
	assert.False(t, sess.Active())
	assert.Equal(t, 1, drv.closed)
}
