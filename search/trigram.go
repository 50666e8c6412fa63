package search

import "strings"

// Similarity computes character-trigram set similarity between two
// strings: the Jaccard ratio of their 3-gram shingle sets, in [0,1].
// Comparison is case-insensitive. Strings shorter than three runes have
// no trigrams and score 0 against everything; short queries are expected
// to rely on the substring and full-text strategies for recall.
func Similarity(a, b string) float64 {
	ta := trigrams(a)
	tb := trigrams(b)
	if len(ta) == 0 || len(tb) == 0 {
		return 0
	}

	shared := 0
	for g := range ta {
		if _, ok := tb[g]; ok {
			shared++
		}
	}
	union := len(ta) + len(tb) - shared
	return float64(shared) / float64(union)
}

func trigrams(s string) map[string]struct{} {
	runes := []rune(strings.ToLower(strings.TrimSpace(s)))
	if len(runes) < 3 {
		return nil
	}
	set := make(map[string]struct{}, len(runes)-2)
	for i := 0; i+3 <= len(runes); i++ {
		set[string(runes[i:i+3])] = struct{}{}
	}
	return set
}
