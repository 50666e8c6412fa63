package search

// Hit is the minimal view of a result the orderer needs.
type Hit struct {
	Relevance float64
	Name      string
}

// Less orders two hits: relevance descending, ties broken by name
// ascending (byte order). With an empty query every relevance is zero and
// the ordering reduces to name ascending. The ordering is total, so for a
// fixed corpus snapshot exactly one result permutation is valid.
func Less(a, b Hit) bool {
	if a.Relevance != b.Relevance {
		return a.Relevance > b.Relevance
	}
	return a.Name < b.Name
}
