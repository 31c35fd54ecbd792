// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the domain records, the flat submission schema, the
// uniform result envelope, and the per-stage configuration shared across the
// pipeline.
package types

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Product is a raw publication record as returned by the ImpactU API. It is
// immutable once fetched; every pipeline stage derives new values from it and
// never writes back.
type Product struct {
	ID                string            `json:"id"`
	Titles            []Title           `json:"titles"`
	Types             []TypeTag         `json:"types"`
	ExternalIDs       []ExternalID      `json:"external_ids"`
	ExternalURLs      []ExternalURL     `json:"external_urls"`
	Authors           []Author          `json:"authors"`
	CitationsCount    []CitationCount   `json:"citations_count"`
	YearPublished     int               `json:"year_published"`
	DatePublished     int64             `json:"date_published"`
	DOI               string            `json:"doi"`
	Source            *Venue            `json:"source"`
	BibliographicInfo BibliographicInfo `json:"bibliographic_info"`
}

// Title is one entry of a product's title list. The first entry is
// authoritative.
type Title struct {
	Title  string `json:"title"`
	Lang   string `json:"lang"`
	Source string `json:"source"`
}

// TypeTag is a document classification asserted by one data source. The
// entries with Source == "impactu" are authoritative for document type.
type TypeTag struct {
	Source string `json:"source"`
	Type   string `json:"type"`
}

// ExternalID records where an identifier claim about the product originated.
// Provenance is the system that asserted the claim; Source tags the
// identifier itself.
type ExternalID struct {
	Provenance string `json:"provenance"`
	Source     string `json:"source"`
	ID         any    `json:"id"`
}

// ExternalURL is a product landing page asserted by one source.
type ExternalURL struct {
	Source string `json:"source"`
	URL    string `json:"url"`
}

// Author is a product author; only the fields the report surface needs.
type Author struct {
	FullName    string       `json:"full_name"`
	ExternalIDs []ExternalID `json:"external_ids"`
}

// CitationCount is a citation tally asserted by one source (openalex,
// scholar).
type CitationCount struct {
	Source string `json:"source"`
	Count  int    `json:"count"`
}

// Venue describes the hosting journal. ExternalIDs is a key/value mapping
// (issn, eissn, scimago, ...) whose key presence matters for eligibility.
type Venue struct {
	Name        string                `json:"name"`
	ExternalIDs map[string]FlexString `json:"external_ids"`
}

// BibliographicInfo carries pagination and issue data. The API is
// inconsistent about emitting these as strings or numbers, hence FlexString.
type BibliographicInfo struct {
	Volume    FlexString `json:"volume"`
	Issue     FlexString `json:"issue"`
	StartPage FlexString `json:"start_page"`
	EndPage   FlexString `json:"end_page"`
}

// FlexString decodes a JSON value that may arrive as a string, a number, or
// null. Null and absent both decode to the empty string.
type FlexString string

func (s *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}
	if data[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = FlexString(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("bibliographic value %s is neither string nor number", data)
	}
	*s = FlexString(n.String())
	return nil
}

func (s FlexString) String() string { return string(s) }
