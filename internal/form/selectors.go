// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package form

import (
	"github.com/restrepo/autocvlac/internal/browser"
	"github.com/restrepo/autocvlac/pkg/types"
)

// Selectors holds the fallback chains for the scientific-article form.
type Selectors struct {
	// TypeRadios maps each article type code to its radio button chain.
	TypeRadios map[string]browser.Chain

	Title       browser.Chain
	InitialPage browser.Chain
	FinalPage   browser.Chain
	Language    browser.Chain
	Year        browser.Chain
	Month       browser.Chain
	Volume      browser.Chain
	Issue       browser.Chain
	Series      browser.Chain
	Medium      browser.Chain
	WebsiteURL  browser.Chain
	DOI         browser.Chain

	// JournalName is the readonly display field filled opportunistically.
	JournalName browser.Chain

	// ISSNCode is the search code field inside the journal-link modal.
	ISSNCode browser.Chain

	// JournalResult opens the result list; JournalOption picks the journal.
	JournalResult browser.Chain
	JournalOption browser.Chain
}

// Affordance labels on the article form.
const (
	searchLabel = "Buscar"
	linkLabel   = "Vincular"
)

// DefaultSelectors are the chains observed on the current article form.
var DefaultSelectors = Selectors{
	TypeRadios: map[string]browser.Chain{
		types.ArticleComplete: browser.NewChain("article type Completo", "#tipoProducto1", "input[value='111']"),
		types.ArticleShort:    browser.NewChain("article type Corto", "#tipoProducto2", "input[value='112']"),
		types.ArticleReview:   browser.NewChain("article type Revisión", "#tipoProducto3", "input[value='113']"),
		types.ArticleCaseNote: browser.NewChain("article type Caso Clínico", "#tipoProducto4", "input[value='114']"),
	},
	Title:         browser.NewChain("title", "#txt_nme_prod", "[name='txt_nme_prod']"),
	InitialPage:   browser.NewChain("initial page", "[name='txt_pagina_inicial']"),
	FinalPage:     browser.NewChain("final page", "[name='txt_pagina_final']"),
	Language:      browser.NewChain("language", "select[name='sgl_idioma']"),
	Year:          browser.NewChain("year", "select[name='nro_ano_presenta']"),
	Month:         browser.NewChain("month", "select[name='nro_mes_presenta']"),
	Volume:        browser.NewChain("volume", "[name='txt_volumen_revista']"),
	Issue:         browser.NewChain("issue", "#txt_fasciculo_revista", "[name='txt_fasciculo_revista']"),
	Series:        browser.NewChain("series", "[name='txt_serie_revista']"),
	Medium:        browser.NewChain("publication medium", "select[name='tpo_medio_divulgacion']"),
	WebsiteURL:    browser.NewChain("website url", "#url", "[name='txt_web_producto']"),
	DOI:           browser.NewChain("doi", "#doi", "[name='txt_doi']"),
	JournalName:   browser.NewChain("journal name", "#txt_nme_revista", "[name='txt_nme_revista']"),
	ISSNCode:      browser.NewChain("issn code", "#txt_issn_revista", "[name='txt_issn_revista']"),
	JournalResult: browser.NewChain("journal result link", "#bodyPrincipal a", "a"),
	JournalOption: browser.NewChain("journal option", "#bodyPrincipal option", "option"),
}
