// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report renders classification verdicts for humans and machines.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/restrepo/autocvlac/internal/eligible"
)

// Row is the flattened reporting view of one classified product.
type Row struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Year          int    `json:"year,omitempty"`
	Type          string `json:"type,omitempty"`
	ISSN          string `json:"issn,omitempty"`
	CitesOpenAlex int    `json:"citations_openalex"`
	CitesScholar  int    `json:"citations_scholar"`
	Eligible      bool   `json:"eligible"`
	Reason        string `json:"reason,omitempty"`
}

// Rows flattens verdicts into report rows, preserving order.
func Rows(verdicts []eligible.Verdict) []Row {
	rows := make([]Row, 0, len(verdicts))
	for _, v := range verdicts {
		rows = append(rows, rowFor(v))
	}
	return rows
}

func rowFor(v eligible.Verdict) Row {
	p := v.Product
	r := Row{
		ID:       p.ID,
		Year:     p.YearPublished,
		Eligible: v.Eligible,
		Reason:   v.Reason,
	}
	if len(p.Titles) > 0 {
		r.Title = p.Titles[0].Title
	}
	for _, tag := range p.Types {
		// The impactu tag is the authoritative document type.
		if tag.Source == "impactu" {
			r.Type = tag.Type
			break
		}
	}
	if p.Source != nil {
		if issn := p.Source.ExternalIDs["issn"]; issn != "" {
			r.ISSN = issn.String()
		} else if eissn := p.Source.ExternalIDs["eissn"]; eissn != "" {
			r.ISSN = eissn.String()
		}
	}
	for _, c := range p.CitationsCount {
		switch c.Source {
		case "openalex":
			r.CitesOpenAlex = c.Count
		case "scholar":
			r.CitesScholar = c.Count
		}
	}
	return r
}

// FormatTable writes verdicts as a human-readable table to w.
func FormatTable(verdicts []eligible.Verdict, w io.Writer) {
	rows := Rows(verdicts)
	if len(rows) == 0 {
		fmt.Fprintln(w, "No products found.")
		return
	}

	fmt.Fprintf(w, "%-50s  %-4s  %-24s  %-9s  %-5s  %-5s  %-8s  %s\n",
		"Title", "Year", "Type", "ISSN", "OA", "Sch", "Eligible", "Reason")
	fmt.Fprintln(w, strings.Repeat("-", 120))

	eligibleCount := 0
	for _, r := range rows {
		if r.Eligible {
			eligibleCount++
		}
		year := ""
		if r.Year != 0 {
			year = fmt.Sprintf("%d", r.Year)
		}
		fmt.Fprintf(w, "%-50s  %-4s  %-24s  %-9s  %-5d  %-5d  %-8v  %s\n",
			truncate(r.Title, 50), year, truncate(r.Type, 24), r.ISSN,
			r.CitesOpenAlex, r.CitesScholar, r.Eligible, r.Reason)
	}

	fmt.Fprintf(w, "\n%d products, %d eligible for manual entry\n", len(rows), eligibleCount)
}

// FormatJSON writes verdicts as indented JSON to w.
func FormatJSON(verdicts []eligible.Verdict, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(Rows(verdicts))
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
