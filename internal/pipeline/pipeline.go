// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline wires the stages end to end: fetch a researcher's
// products, classify eligibility, extract submission fields, and push each
// missing article through the registry form. Execution is strictly
// sequential; the single browser session is the only shared resource.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/restrepo/autocvlac/internal/eligible"
	"github.com/restrepo/autocvlac/internal/extract"
	"github.com/restrepo/autocvlac/internal/form"
	"github.com/restrepo/autocvlac/internal/ledger"
	"github.com/restrepo/autocvlac/internal/session"
	"github.com/restrepo/autocvlac/internal/source"
	"github.com/restrepo/autocvlac/pkg/types"
)

// Submission statuses recorded in the ledger.
const (
	statusSubmitted   = "submitted"
	statusLinkPending = "link-pending"
)

// BatchResult summarizes one end-to-end run.
type BatchResult struct {
	Submitted   int
	LinkPending int
	Skipped     int
	Ineligible  int
	Failed      int
}

// Total returns the number of products considered.
func (r BatchResult) Total() int {
	return r.Submitted + r.LinkPending + r.Skipped + r.Ineligible + r.Failed
}

// HasFailures reports whether any submission failed hard.
func (r BatchResult) HasFailures() bool { return r.Failed > 0 }

// Pipeline runs the full ingest-classify-extract-submit flow.
type Pipeline struct {
	Source *source.Client
	Filler *form.Filler
	Ledger *ledger.Store
	Log    *logrus.Logger
	Cfg    types.PipelineConfig
}

// New assembles a pipeline. The ledger is optional; without it no skip
// bookkeeping happens.
func New(cfg types.PipelineConfig, led *ledger.Store, log *logrus.Logger) *Pipeline {
	if log == nil {
		log = logrus.New()
	}
	if cfg.SubmitDelay == 0 {
		cfg.SubmitDelay = time.Second
	}
	return &Pipeline{
		Source: source.New(cfg.Source),
		Filler: form.New(cfg.Registry),
		Ledger: led,
		Log:    log,
		Cfg:    cfg,
	}
}

// referenceYear resolves the configured anchor year, defaulting to now.
func (p *Pipeline) referenceYear() int {
	if p.Cfg.ReferenceYear != 0 {
		return p.Cfg.ReferenceYear
	}
	return time.Now().Year()
}

// Run fetches and submits every missing article for codRH through an
// already-authenticated session. It continues past individual failures,
// prints per-item status to w, and returns a summary. A deactivated session
// (hard form failure) aborts the remainder of the batch.
func (p *Pipeline) Run(ctx context.Context, sess *session.Session, codRH string, w io.Writer) (BatchResult, error) {
	var result BatchResult

	products, err := p.Source.AllProducts(ctx, codRH)
	if err != nil {
		return result, err
	}
	p.Log.WithFields(logrus.Fields{
		"cod_rh":   codRH,
		"products": len(products),
	}).Info("fetched research products")

	refYear := p.referenceYear()
	first := true
	for _, product := range products {
		verdict := eligible.Classify(product, refYear)
		if !verdict.Eligible {
			result.Ineligible++
			continue
		}

		art, ok := extract.Article(product)
		if !ok {
			// Classify already vetted the type tag; this only trips
			// on records mutated between stages.
			result.Failed++
			fmt.Fprintf(w, "failed:  %s (no extractable fields)\n", product.ID)
			continue
		}

		if p.Ledger != nil {
			seen, err := p.Ledger.Seen(product.ID)
			if err != nil {
				return result, err
			}
			if seen {
				result.Skipped++
				fmt.Fprintf(w, "skipped: %s (already submitted)\n", shortTitle(art))
				continue
			}
		}

		if !first {
			select {
			case <-ctx.Done():
				return result, ctx.Err()
			case <-time.After(p.Cfg.SubmitDelay):
			}
		}
		first = false

		p.Log.WithFields(logrus.Fields{
			"product": product.ID,
			"title":   art.Title,
			"year":    art.Year,
		}).Info("submitting article")

		res := p.Filler.Submit(ctx, sess, art)
		switch {
		case res.OK() && strings.Contains(res.Message, "journal link"):
			result.LinkPending++
			fmt.Fprintf(w, "partial: %s (%s)\n", shortTitle(art), res.Message)
			p.record(product.ID, art.Title, statusLinkPending)
		case res.OK():
			result.Submitted++
			fmt.Fprintf(w, "submitted: %s\n", shortTitle(art))
			p.record(product.ID, art.Title, statusSubmitted)
		default:
			result.Failed++
			fmt.Fprintf(w, "failed:  %s (%s)\n", shortTitle(art), res.Message)
			if !res.SessionActive {
				fmt.Fprintf(w, "\nsession lost, aborting batch\n")
				p.summarize(w, result)
				return result, fmt.Errorf("session deactivated: %s", res.Message)
			}
		}
	}

	p.summarize(w, result)
	return result, nil
}

func (p *Pipeline) record(productID, title, status string) {
	if p.Ledger == nil {
		return
	}
	if err := p.Ledger.Record(productID, title, status); err != nil {
		p.Log.WithError(err).Warn("could not record submission in ledger")
	}
}

func (p *Pipeline) summarize(w io.Writer, r BatchResult) {
	fmt.Fprintf(w, "\nBatch summary: %d submitted, %d link-pending, %d skipped, %d ineligible, %d failed (total: %d)\n",
		r.Submitted, r.LinkPending, r.Skipped, r.Ineligible, r.Failed, r.Total())
}

func shortTitle(art types.Article) string {
	if len(art.Title) <= 60 {
		return art.Title
	}
	return art.Title[:57] + "..."
}
