// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package session

import "github.com/restrepo/autocvlac/internal/browser"

// Selectors holds the fallback chains for the login surface. Kept as data:
// when the registry shuffles its markup, add a candidate here.
type Selectors struct {
	Nationality  browser.Chain
	BirthCountry browser.Chain
	FullName     browser.Chain
	Document     browser.Chain
	Password     browser.Chain
	Submit       browser.Chain
	DateTrigger  browser.Chain
	DateMonth    browser.Chain
	DateYear     browser.Chain
}

// DayCellSelector matches the day cells of the open datepicker panel.
const DayCellSelector = "#ui-datepicker-div .ui-state-default"

// DefaultSelectors are the chains observed on the current CvLAC login page,
// ID first, name attribute as fallback.
var DefaultSelectors = Selectors{
	Nationality:  browser.NewChain("nationality", "#tpo_nacionalidad", "select[name='tpo_nacionalidad']"),
	BirthCountry: browser.NewChain("birth country", "#sgl_pais_nacimiento", "select[name='sgl_pais_nacimiento']"),
	FullName:     browser.NewChain("full name", "#txt_nmes_rh", "[name='txt_nmes_rh']"),
	Document:     browser.NewChain("identity document", "#nro_documento_ident", "[name='nro_documento_ident']"),
	Password:     browser.NewChain("password", "#txt_contrasena", "[name='txt_contrasena']", "[type='password']"),
	Submit:       browser.NewChain("submit", "#botonEnviar", "input[type='submit']"),
	DateTrigger:  browser.NewChain("calendar trigger", ".ui-datepicker-trigger"),
	DateMonth:    browser.NewChain("calendar month", ".ui-datepicker-month"),
	DateYear:     browser.NewChain("calendar year", ".ui-datepicker-year"),
}

// IndicatorSet is the closed set of evidence the verdict scan looks for.
type IndicatorSet struct {
	// Texts are literal error strings the login page is known to show.
	Texts []string

	// Selectors are CSS classes and IDs of error banners.
	Selectors []string
}

// Indicators are the known CvLAC login failure signals.
var Indicators = IndicatorSet{
	Texts: []string{
		"Usuario y/o contraseña incorrectos",
		"Error de autenticación",
		"Login failed",
		"Invalid credentials",
		"Credenciales incorrectas",
		"Error en el login",
		"Sus datos de identificación son erróneos o usted no se encuentra registrado en el sistema",
	},
	Selectors: []string{
		".error",
		".alert-danger",
		".alert-error",
		"#error",
		".mensaje-error",
		".login-error",
	},
}
