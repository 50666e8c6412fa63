// Package search implements the relevance-ranking core of the catalog:
// query classification, per-field retrieval signals, the score combiner
// and the result ordering. It is pure and stateless; the repository layer
// fuses the same policy into a single Postgres query for execution.
package search

import "strings"

// Lang is the script classification of a search query.
type Lang int

const (
	// LangNone marks an empty or whitespace-only query. The search
	// degenerates to filter-only retrieval ordered by name.
	LangNone Lang = iota
	// LangLatin marks a query with no Arabic code points.
	LangLatin
	// LangBilingual marks a query containing at least one Arabic code
	// point; the full-text leg runs both English and Arabic configs.
	LangBilingual
)

// Query is a normalized query string plus its language classification.
type Query struct {
	Text string
	Lang Lang
}

// IsEmpty reports whether the query carries no searchable text.
func (q Query) IsEmpty() bool {
	return q.Lang == LangNone
}

// Classify trims the raw query and detects its script. Any rune in the
// Arabic Unicode block (U+0600–U+06FF) classifies the query bilingual.
// Malformed UTF-8 decodes to U+FFFD, which falls outside the block, so
// classification is total and never fails.
func Classify(raw string) Query {
	text := strings.TrimSpace(raw)
	if text == "" {
		return Query{Lang: LangNone}
	}

	lang := LangLatin
	for _, r := range text {
		if r >= 0x0600 && r <= 0x06FF {
			lang = LangBilingual
			break
		}
	}
	return Query{Text: text, Lang: lang}
}
