package search_test

import (
	"testing"

	"catalog-service/search"

	"github.com/stretchr/testify/assert"
)

func TestSimilarity_Identical(t *testing.T) {
	assert.Equal(t, 1.0, search.Similarity("milk", "milk"))
}

func TestSimilarity_CaseInsensitive(t *testing.T) {
	assert.Equal(t, 1.0, search.Similarity("MILK", "milk"))
}

func TestSimilarity_Disjoint(t *testing.T) {
	assert.Equal(t, 0.0, search.Similarity("milk", "cola"))
}

func TestSimilarity_Partial(t *testing.T) {
	// "milk" -> {mil, ilk}; "milky" -> {mil, ilk, lky}: 2 shared of 3.
	sim := search.Similarity("milk", "milky")
	assert.InDelta(t, 2.0/3.0, sim, 1e-9)
}

func TestSimilarity_Misspelling(t *testing.T) {
	// Misspellings share enough trigrams to clear the 0.3 threshold.
	assert.Greater(t, search.Similarity("chocolate", "chocolete"), search.SimilarityThreshold)
}

func TestSimilarity_ShortStrings(t *testing.T) {
	// Inputs under three runes have no trigrams and degrade to zero;
	// substring and full-text carry recall for short queries.
	assert.Equal(t, 0.0, search.Similarity("Co", "Cola Drink"))
	assert.Equal(t, 0.0, search.Similarity("", "milk"))
	assert.Equal(t, 0.0, search.Similarity("ab", "ab"))
}

func TestSimilarity_Arabic(t *testing.T) {
	assert.Equal(t, 1.0, search.Similarity("حليب", "حليب"))
	assert.Equal(t, 0.0, search.Similarity("حليب", "كولا"))
}

func TestSimilarity_Range(t *testing.T) {
	pairs := [][2]string{
		{"Cola Drink", "Cola"},
		{"Whole Wheat Bread", "wheat"},
		{"Al Marai", "marai"},
	}
	for _, p := range pairs {
		sim := search.Similarity(p[0], p[1])
		assert.GreaterOrEqual(t, sim, 0.0)
		assert.LessOrEqual(t, sim, 1.0)
	}
}
