// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract maps a raw publication record into the flat field set the
// CvLAC scientific-article form expects.
package extract

import (
	"strings"
	"time"

	"github.com/restrepo/autocvlac/internal/eligible"
	"github.com/restrepo/autocvlac/pkg/types"
)

const doiURLPrefix = "https://doi.org/"

// Article extracts the submission field set from a record. It returns
// ok=false when the record is not classified as a journal article by the
// impactu type tag; the check duplicates the eligibility filter on purpose
// so the extractor is usable standalone.
//
// Extraction is pure and idempotent: the record is never modified and two
// calls yield identical articles.
func Article(p types.Product) (types.Article, bool) {
	if !eligible.IsJournalArticle(p) {
		return types.Article{}, false
	}

	art := types.Article{
		ArticleType:       types.ArticleComplete,
		Language:          "ES",
		PublicationMedium: types.MediumElectronic,
		Year:              p.YearPublished,
		Month:             monthFromEpoch(p.DatePublished),
	}

	if len(p.Titles) > 0 {
		first := p.Titles[0]
		art.Title = first.Title
		if first.Lang != "" {
			art.Language = first.Lang
		}
	}

	if p.Source != nil {
		art.JournalName = p.Source.Name
		// Prefer issn over eissn.
		if issn := p.Source.ExternalIDs["issn"]; issn != "" {
			art.JournalISSN = issn.String()
		} else if eissn := p.Source.ExternalIDs["eissn"]; eissn != "" {
			art.JournalISSN = eissn.String()
		}
	}

	bi := p.BibliographicInfo
	art.Volume = bi.Volume.String()
	art.Issue = bi.Issue.String()
	art.InitialPage = bi.StartPage.String()
	art.FinalPage = bi.EndPage.String()

	// The DOI form field takes the bare identifier; the website URL keeps
	// the full doi.org address when present.
	art.DOI = strings.TrimPrefix(p.DOI, doiURLPrefix)
	if p.DOI != "" {
		art.WebsiteURL = p.DOI
	} else if len(p.ExternalURLs) > 0 {
		art.WebsiteURL = p.ExternalURLs[0].URL
	}

	// No record field maps to series.
	return art, true
}

// monthFromEpoch converts an epoch timestamp to the Spanish month name the
// form's dropdown lists. Implausible timestamps (unset, negative, or a year
// outside 1900-2999) yield "" rather than failing the extraction.
func monthFromEpoch(ts int64) string {
	if ts <= 0 {
		return ""
	}
	t := time.Unix(ts, 0).UTC()
	if t.Year() < 1900 || t.Year() > 2999 {
		return ""
	}
	return MonthName(int(t.Month()))
}
