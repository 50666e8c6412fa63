package search

// Ranking policy. These are tuning knobs, not derived values; the
// repository embeds the same constants into the fused SQL query so the
// policy lives in exactly one place.
const (
	// FullTextWeight scales the ts_rank signal. Full-text is the most
	// authoritative signal and counts double.
	FullTextWeight = 2.0

	// NameWeight scales trigram similarity against the product name.
	NameWeight = 1.0

	// NameArBilingualWeight applies to Arabic-name similarity when the
	// query itself contains Arabic script.
	NameArBilingualWeight = 0.9

	// NameArLatinWeight applies to Arabic-name similarity for latin
	// queries. The signal is still computed (it can surface loanword and
	// transliteration matches) but is down-weighted.
	NameArLatinWeight = 0.7

	// BrandWeight scales trigram similarity against the brand name.
	BrandWeight = 0.8

	// SimilarityThreshold is the minimum trigram similarity for a
	// candidate to qualify via the fuzzy strategy.
	SimilarityThreshold = 0.3
)

// NameArWeight returns the Arabic-name similarity weight for the given
// query classification.
func NameArWeight(lang Lang) float64 {
	if lang == LangBilingual {
		return NameArBilingualWeight
	}
	return NameArLatinWeight
}
