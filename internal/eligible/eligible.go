// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package eligible classifies publication records as eligible or ineligible
// for manual CvLAC entry. A record is eligible when the registry does not
// already track it (no scienti/scienti external-id pair), it is a journal
// article per the authoritative impactu type tag, it falls inside the
// five-year window, and its venue carries an ISSN or EISSN.
package eligible

import (
	"fmt"

	"github.com/restrepo/autocvlac/pkg/types"
)

// JournalArticleType is the impactu document type that qualifies a record.
const JournalArticleType = "Artículo de revista"

// Verdict pairs a record with its classification outcome. Reason is empty
// for eligible records and names the first failing criterion otherwise.
type Verdict struct {
	Product  types.Product
	Eligible bool
	Reason   string
}

// Classify applies the four eligibility criteria to a single record. It
// never mutates the record. Missing types, year, or venue fail closed;
// a missing external-id list cannot fail the scienti check and is therefore
// not disqualifying on its own.
func Classify(p types.Product, referenceYear int) Verdict {
	for _, ext := range p.ExternalIDs {
		// Only the pair on one entry disqualifies; a partial match on
		// either field alone does not.
		if ext.Provenance == "scienti" && ext.Source == "scienti" {
			return Verdict{Product: p, Reason: "already tracked by scienti"}
		}
	}

	if !IsJournalArticle(p) {
		return Verdict{Product: p, Reason: "not an impactu journal article"}
	}

	startYear := referenceYear - 4
	if p.YearPublished == 0 {
		return Verdict{Product: p, Reason: "publication year missing"}
	}
	if p.YearPublished < startYear {
		return Verdict{Product: p, Reason: fmt.Sprintf("published %d, window starts %d", p.YearPublished, startYear)}
	}

	if p.Source == nil {
		return Verdict{Product: p, Reason: "venue missing"}
	}
	if _, ok := p.Source.ExternalIDs["issn"]; !ok {
		if _, ok := p.Source.ExternalIDs["eissn"]; !ok {
			return Verdict{Product: p, Reason: "venue has neither issn nor eissn"}
		}
	}

	return Verdict{Product: p, Eligible: true}
}

// IsJournalArticle reports whether any authoritative impactu type tag marks
// the record as a journal article. Multiple impactu tags are allowed; any
// one match suffices.
func IsJournalArticle(p types.Product) bool {
	for _, tag := range p.Types {
		if tag.Source == "impactu" && tag.Type == JournalArticleType {
			return true
		}
	}
	return false
}

// Filter returns the records eligible for manual entry, preserving input
// order. Pure: the input slice and its records are never modified.
func Filter(products []types.Product, referenceYear int) []types.Product {
	var out []types.Product
	for _, p := range products {
		if Classify(p, referenceYear).Eligible {
			out = append(out, p)
		}
	}
	return out
}

// ClassifyAll classifies every record, preserving input order.
func ClassifyAll(products []types.Product, referenceYear int) []Verdict {
	verdicts := make([]Verdict, 0, len(products))
	for _, p := range products {
		verdicts = append(verdicts, Classify(p, referenceYear))
	}
	return verdicts
}
