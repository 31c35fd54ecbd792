// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package session authenticates against the CvLAC registry and owns the
// resulting browser session.
//
// Login verification is heuristic: after the settle delay the session scans
// the page for a closed set of error indicators and treats their absence as
// success. A positive landing-page marker would be stronger; until the
// registry exposes one reliably, extend Indicators instead.
package session

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/araddon/dateparse"

	"github.com/restrepo/autocvlac/internal/browser"
	"github.com/restrepo/autocvlac/internal/extract"
	"github.com/restrepo/autocvlac/pkg/types"
)

// Foreign-other nationality sentinels: the long form the dropdown shows and
// the short code the registry accepts.
const (
	NationalityForeignOther     = "Extranjero - otra"
	NationalityForeignOtherCode = "E"
)

// State is the authentication state machine position.
type State string

const (
	StateUnauthenticated State = "unauthenticated"
	StateAuthenticating  State = "authenticating"
	StateAuthenticated   State = "authenticated"
	StateRejected        State = "rejected"
	StateFailed          State = "failed"
)

// Credentials is the raw caller input for authentication. BirthCountry and
// BirthDate are only consulted for the foreign-other nationality; Document
// for every other nationality.
type Credentials struct {
	Nationality  string
	FullName     string
	Document     string
	Password     string
	BirthCountry string
	BirthDate    string
}

// Proof is the identity proof variant chosen once at validation time:
// either an identity document or a birth country plus birth date.
type Proof interface{ isProof() }

// DocumentProof identifies the user by document number.
type DocumentProof struct{ Number string }

// BirthProof identifies a foreign-other user by birth country and date.
type BirthProof struct {
	Country string
	Date    time.Time
}

func (DocumentProof) isProof() {}
func (BirthProof) isProof()    {}

// Identity is the validated login identity.
type Identity struct {
	Nationality string
	FullName    string
	Proof       Proof
}

// ForeignOther reports whether the nationality takes the birth-data branch.
func ForeignOther(nationality string) bool {
	return nationality == NationalityForeignOther || nationality == NationalityForeignOtherCode
}

// Validate checks the credentials and builds the identity. It performs no
// external action; a failure here never acquires a browser.
func Validate(creds Credentials) (Identity, error) {
	if creds.Nationality == "" {
		return Identity{}, &types.ValidationError{Field: "nationality", Reason: "is required"}
	}
	if creds.FullName == "" {
		return Identity{}, &types.ValidationError{Field: "full_name", Reason: "is required"}
	}
	if creds.Password == "" {
		return Identity{}, &types.ValidationError{Field: "password", Reason: "is required"}
	}

	id := Identity{Nationality: creds.Nationality, FullName: creds.FullName}

	if ForeignOther(creds.Nationality) {
		if creds.BirthCountry == "" {
			return Identity{}, &types.ValidationError{
				Field:  "birth_country",
				Reason: "is required when nationality is " + NationalityForeignOther,
			}
		}
		if creds.BirthDate == "" {
			return Identity{}, &types.ValidationError{
				Field:  "birth_date",
				Reason: "is required when nationality is " + NationalityForeignOther,
			}
		}
		date, err := dateparse.ParseStrict(creds.BirthDate)
		if err != nil {
			return Identity{}, &types.ValidationError{
				Field:  "birth_date",
				Reason: "is not a recognizable date: " + creds.BirthDate,
			}
		}
		id.Proof = BirthProof{Country: creds.BirthCountry, Date: date}
		return id, nil
	}

	if creds.Document == "" {
		return Identity{}, &types.ValidationError{Field: "document", Reason: "is required for this nationality"}
	}
	id.Proof = DocumentProof{Number: creds.Document}
	return id, nil
}

// Session is one authenticated browser session against the registry. At
// most one live Session may exist per process; callers serialize submissions
// through it.
type Session struct {
	drv   browser.Driver
	state State
}

// State returns the state machine position.
func (s *Session) State() State { return s.state }

// Active reports whether the session can accept submissions.
func (s *Session) Active() bool { return s != nil && s.state == StateAuthenticated }

// Driver exposes the underlying browser to the form filler.
func (s *Session) Driver() browser.Driver { return s.drv }

// Close releases the browser and deactivates the session.
func (s *Session) Close() error {
	if s == nil || s.drv == nil {
		return nil
	}
	s.state = StateUnauthenticated
	return s.drv.Close()
}

// Fail deactivates the session after a fatal mid-submission error and
// releases the browser.
func (s *Session) Fail() {
	if s == nil {
		return
	}
	s.state = StateFailed
	if s.drv != nil {
		s.drv.Close()
	}
}

// Authenticate validates the credentials, acquires a browser through
// newDriver, drives the login flow, and verdicts the attempt. The returned
// result uses the uniform envelope; the session is non-nil only on success.
// On any failure after acquisition the browser is released.
func Authenticate(ctx context.Context, newDriver browser.Factory, creds Credentials, cfg types.RegistryConfig) (*Session, types.Result) {
	cfg.Defaults()

	identity, err := Validate(creds)
	if err != nil {
		// No resource acquired yet, nothing to tear down.
		return nil, types.FromError(false, err)
	}

	drv, err := newDriver(ctx)
	if err != nil {
		return nil, types.Failure(false, "acquiring browser: %v", err)
	}

	s := &Session{drv: drv, state: StateAuthenticating}
	if err := s.login(ctx, identity, creds.Password, cfg); err != nil {
		var rej *types.RejectionError
		if errors.As(err, &rej) {
			s.state = StateRejected
		} else {
			s.state = StateFailed
		}
		drv.Close()
		return nil, types.Failure(false, "authentication failed: %v", err)
	}

	s.state = StateAuthenticated
	return s, types.Success(true, "authentication successful")
}

// login drives the login form. Any error aborts the attempt; the caller
// owns teardown.
func (s *Session) login(ctx context.Context, id Identity, password string, cfg types.RegistryConfig) error {
	drv := s.drv
	sel := DefaultSelectors

	if err := drv.Navigate(ctx, cfg.LoginURL); err != nil {
		return err
	}
	if err := drv.SelectByText(ctx, sel.Nationality, id.Nationality); err != nil {
		return err
	}

	// The proof variant decides the conditional branch exactly once.
	switch proof := id.Proof.(type) {
	case BirthProof:
		// Selecting foreign-other reveals the birth-country selector.
		if err := drv.WaitText(ctx, "País de nacimiento"); err != nil {
			return err
		}
		if err := drv.SelectByText(ctx, sel.BirthCountry, proof.Country); err != nil {
			return err
		}
		if err := drv.Type(ctx, sel.FullName, id.FullName); err != nil {
			return err
		}
		if err := s.fillBirthDate(ctx, proof.Date); err != nil {
			return err
		}
	case DocumentProof:
		if err := drv.Type(ctx, sel.FullName, id.FullName); err != nil {
			return err
		}
		if err := drv.Type(ctx, sel.Document, proof.Number); err != nil {
			return err
		}
	}

	if err := drv.Type(ctx, sel.Password, password); err != nil {
		return err
	}
	if err := drv.Click(ctx, sel.Submit); err != nil {
		return err
	}

	// Give the page time to process the attempt before the verdict scan.
	if err := drv.Sleep(ctx, cfg.SettleDelay); err != nil {
		return err
	}
	return s.checkRejection(ctx)
}

// fillBirthDate drives the jQuery datepicker: open the calendar, select the
// month by its Spanish label, select the year, then click the day cell. An
// unmatched enumeration at any step fails the attempt.
func (s *Session) fillBirthDate(ctx context.Context, date time.Time) error {
	drv := s.drv
	sel := DefaultSelectors

	if err := drv.Click(ctx, sel.DateTrigger); err != nil {
		return err
	}
	if err := drv.SelectByText(ctx, sel.DateMonth, extract.MonthName(int(date.Month()))); err != nil {
		return err
	}
	if err := drv.SelectByText(ctx, sel.DateYear, strconv.Itoa(date.Year())); err != nil {
		return err
	}
	return drv.ClickMatching(ctx, DayCellSelector, strconv.Itoa(date.Day()))
}

// checkRejection scans the post-submit page for the known failure
// indicators. Absence of all of them is treated as success.
func (s *Session) checkRejection(ctx context.Context) error {
	for _, text := range Indicators.Texts {
		found, err := s.drv.PageContains(ctx, text)
		if err != nil {
			return err
		}
		if found {
			return &types.RejectionError{Indicator: text}
		}
	}
	for _, selector := range Indicators.Selectors {
		found, err := s.drv.Exists(ctx, selector)
		if err != nil {
			return err
		}
		if found {
			return &types.RejectionError{Indicator: "error banner " + selector}
		}
	}
	return nil
}
