// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network
// requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "autocvlac/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// SourceConfig holds settings for the ImpactU record source.
type SourceConfig struct {
	HTTPConfig `yaml:",inline"`

	// BaseURL overrides the API base (default https://api.impactu.colav.co).
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty"`

	// PageSize is the max results per page (default 200, API cap).
	PageSize int `json:"page_size" yaml:"page_size"`

	// Email is an optional contact address sent with requests, for polite
	// pool treatment.
	Email string `json:"email,omitempty" yaml:"email,omitempty"`
}

// RegistryConfig holds settings for the CvLAC registry UI surfaces.
type RegistryConfig struct {
	// LoginURL is the CvLAC login address.
	LoginURL string `json:"login_url" yaml:"login_url"`

	// ArticleURL is the scientific-article creation address.
	ArticleURL string `json:"article_url" yaml:"article_url"`

	// Headless controls whether the browser runs without a window.
	Headless bool `json:"headless" yaml:"headless"`

	// RemoteURL is an optional CDP websocket/http URL of an already-running
	// browser (e.g. a headless-shell container). Empty means launch locally.
	RemoteURL string `json:"remote_url,omitempty" yaml:"remote_url,omitempty"`

	// SettleDelay is how long to wait after a form submit before inspecting
	// the resulting page (default 2s).
	SettleDelay time.Duration `json:"settle_delay" yaml:"settle_delay"`

	// WaitTimeout bounds each wait-until-visible style operation
	// (default 20s).
	WaitTimeout time.Duration `json:"wait_timeout" yaml:"wait_timeout"`
}

// Defaults fills zero-valued registry settings.
func (c *RegistryConfig) Defaults() {
	if c.LoginURL == "" {
		c.LoginURL = "https://scienti.minciencias.gov.co/cvlac/Login/pre_s_login.do"
	}
	if c.ArticleURL == "" {
		c.ArticleURL = "https://scienti.minciencias.gov.co/cvlac/EnProdArticulo/create.do"
	}
	if c.SettleDelay == 0 {
		c.SettleDelay = 2 * time.Second
	}
	if c.WaitTimeout == 0 {
		c.WaitTimeout = 20 * time.Second
	}
}

// LedgerConfig holds settings for the submission ledger.
type LedgerConfig struct {
	// DataDir is the directory holding the ledger database
	// (default ".autocvlac").
	DataDir string `json:"data_dir" yaml:"data_dir"`
}

// PipelineConfig groups the stage configurations for an end-to-end run.
type PipelineConfig struct {
	Source   SourceConfig   `json:"source" yaml:"source"`
	Registry RegistryConfig `json:"registry" yaml:"registry"`
	Ledger   LedgerConfig   `json:"ledger" yaml:"ledger"`

	// ReferenceYear anchors the five-year eligibility window. Zero means
	// the current year.
	ReferenceYear int `json:"reference_year,omitempty" yaml:"reference_year,omitempty"`

	// SubmitDelay is the pause between consecutive form submissions
	// (default 1s).
	SubmitDelay time.Duration `json:"submit_delay" yaml:"submit_delay"`
}
