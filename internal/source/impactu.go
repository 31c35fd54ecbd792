// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package source fetches raw publication records from the ImpactU
// bibliographic API.
package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/restrepo/autocvlac/internal/httputil"
	"github.com/restrepo/autocvlac/pkg/types"
)

// impactuBase is the ImpactU API root. Declared as a var so tests can
// substitute an httptest server.
var impactuBase = "https://api.impactu.colav.co"

const defaultPageSize = 200

// Client queries the ImpactU person/research endpoints.
type Client struct {
	HTTPClient *http.Client
	cfg        types.SourceConfig
}

// New builds a Client from the source configuration.
func New(cfg types.SourceConfig) *Client {
	if cfg.PageSize <= 0 || cfg.PageSize > defaultPageSize {
		cfg.PageSize = defaultPageSize
	}
	return &Client{
		HTTPClient: &http.Client{Timeout: cfg.Timeout},
		cfg:        cfg,
	}
}

// impactuResponse is the envelope the API wraps product lists in.
type impactuResponse struct {
	Data  []types.Product `json:"data"`
	Total int             `json:"total_results"`
}

// ResearchProducts fetches one page of research products for a researcher
// identifier (the CvLAC cod_rh). Pages are 1-based. A non-2xx status or an
// unreachable host surfaces as *types.TransportError.
func (c *Client) ResearchProducts(ctx context.Context, codRH string, max, page int) ([]types.Product, error) {
	if codRH == "" {
		return nil, &types.ValidationError{Field: "cod_rh", Reason: "is required"}
	}
	if max <= 0 {
		max = c.cfg.PageSize
	}
	if page <= 0 {
		page = 1
	}

	base := c.cfg.BaseURL
	if base == "" {
		base = impactuBase
	}

	params := url.Values{
		"max":  {strconv.Itoa(max)},
		"page": {strconv.Itoa(page)},
	}
	if c.cfg.Email != "" {
		params.Set("mailto", c.cfg.Email)
	}
	reqURL := fmt.Sprintf("%s/person/%s/research/products?%s", base, url.PathEscape(codRH), params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := httputil.DoWithRetry(ctx, c.HTTPClient, req, 0)
	if err != nil {
		return nil, &types.TransportError{URL: reqURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &types.TransportError{URL: reqURL, StatusCode: resp.StatusCode}
	}

	var ir impactuResponse
	if err := json.NewDecoder(resp.Body).Decode(&ir); err != nil {
		return nil, fmt.Errorf("parsing ImpactU response: %w", err)
	}
	return ir.Data, nil
}

// AllProducts pages through every research product for a researcher. A page
// shorter than the page size ends the walk.
func (c *Client) AllProducts(ctx context.Context, codRH string) ([]types.Product, error) {
	var all []types.Product
	for page := 1; ; page++ {
		batch, err := c.ResearchProducts(ctx, codRH, c.cfg.PageSize, page)
		if err != nil {
			return nil, err
		}
		all = append(all, batch...)
		if len(batch) < c.cfg.PageSize {
			return all, nil
		}
	}
}
