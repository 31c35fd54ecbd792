// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Article type codes accepted by the CvLAC scientific-article form.
const (
	ArticleComplete = "111" // Completo
	ArticleShort    = "112" // Corto
	ArticleReview   = "113" // Revisión
	ArticleCaseNote = "114" // Caso Clínico
)

// ArticleTypes is the closed set of valid article type codes.
var ArticleTypes = []string{ArticleComplete, ArticleShort, ArticleReview, ArticleCaseNote}

// Publication media accepted by the CvLAC form.
const (
	MediumPaper      = "Papel"
	MediumElectronic = "Electrónico"
)

// PublicationMedia is the closed set of valid publication media.
var PublicationMedia = []string{MediumPaper, MediumElectronic}

// Article is the flat, normalized submission schema extracted from one
// eligible Product. Optional fields use the zero value for absence; the form
// filler never touches a field whose value is absent. Each Article is
// produced fresh per record and consumed exactly once by the form filler.
type Article struct {
	Title             string `json:"title" yaml:"title"`
	ArticleType       string `json:"article_type" yaml:"article_type"`
	InitialPage       string `json:"initial_page,omitempty" yaml:"initial_page,omitempty"`
	FinalPage         string `json:"final_page,omitempty" yaml:"final_page,omitempty"`
	Language          string `json:"language" yaml:"language"`
	Year              int    `json:"year,omitempty" yaml:"year,omitempty"`
	Month             string `json:"month,omitempty" yaml:"month,omitempty"`
	JournalName       string `json:"journal_name,omitempty" yaml:"journal_name,omitempty"`
	JournalISSN       string `json:"journal_issn,omitempty" yaml:"journal_issn,omitempty"`
	Volume            string `json:"volume,omitempty" yaml:"volume,omitempty"`
	Issue             string `json:"issue,omitempty" yaml:"issue,omitempty"`
	Series            string `json:"series,omitempty" yaml:"series,omitempty"`
	PublicationMedium string `json:"publication_medium" yaml:"publication_medium"`
	WebsiteURL        string `json:"website_url,omitempty" yaml:"website_url,omitempty"`
	DOI               string `json:"doi,omitempty" yaml:"doi,omitempty"`
}
