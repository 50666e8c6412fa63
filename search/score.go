package search

import "strings"

// Document is the searchable text of one candidate product. Optional
// fields are empty strings when absent.
type Document struct {
	Name          string
	NameAr        string
	Description   string
	DescriptionAr string
	BrandName     string
	CategoryName  string
}

// Signals holds the per-strategy retrieval signals for one candidate.
// A candidate may score under several strategies at once; Combine picks
// the strongest weighted signal.
type Signals struct {
	// FullTextRank is the store-computed ts_rank (0 for non-matches).
	FullTextRank float64
	// NameSim, NameArSim and BrandSim are trigram similarities in [0,1].
	NameSim   float64
	NameArSim float64
	BrandSim  float64
	// Substring records a case-insensitive containment match in any
	// searchable field. It contributes no score; it exists purely to
	// guarantee recall for partial-keyword queries.
	Substring bool
}

// Evaluate computes the trigram and substring signals for a document
// in-process. The full-text rank is supplied by the store (zero when the
// store was not consulted).
func Evaluate(doc Document, q Query, fullTextRank float64) Signals {
	if q.IsEmpty() {
		return Signals{}
	}
	return Signals{
		FullTextRank: fullTextRank,
		NameSim:      Similarity(doc.Name, q.Text),
		NameArSim:    Similarity(doc.NameAr, q.Text),
		BrandSim:     Similarity(doc.BrandName, q.Text),
		Substring:    containsFold(doc, q.Text),
	}
}

// Qualifies reports whether the candidate enters the result set under at
// least one retrieval strategy.
func (s Signals) Qualifies() bool {
	return s.FullTextRank > 0 ||
		s.NameSim > SimilarityThreshold ||
		s.NameArSim > SimilarityThreshold ||
		s.BrandSim > SimilarityThreshold ||
		s.Substring
}

// Combine folds the weighted signals into a single relevance score. The
// combiner takes the best signal rather than a sum: a strong match on one
// field must not be diluted by absent matches on others, and products
// with sparse bilingual data are not penalized. The zero floor keeps
// substring-only matches sortable.
func (s Signals) Combine(lang Lang) float64 {
	relevance := 0.0
	for _, v := range []float64{
		s.FullTextRank * FullTextWeight,
		s.NameSim * NameWeight,
		s.NameArSim * NameArWeight(lang),
		s.BrandSim * BrandWeight,
	} {
		if v > relevance {
			relevance = v
		}
	}
	return relevance
}

// containsFold is the substring strategy: case-insensitive containment of
// the query in any of the six searchable fields.
func containsFold(doc Document, query string) bool {
	q := strings.ToLower(query)
	for _, field := range []string{
		doc.Name,
		doc.NameAr,
		doc.Description,
		doc.DescriptionAr,
		doc.BrandName,
		doc.CategoryName,
	} {
		if field != "" && strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}
