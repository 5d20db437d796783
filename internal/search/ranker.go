package search

import (
	"sort"

	"github.com/gcbaptista/styleguide-search/internal/tokenizer"
)

// DefaultTopK is the number of hits returned when the caller does not choose.
const DefaultTopK = 3

// ScoredHit is a matching document and its relevance score.
type ScoredHit struct {
	DocIndex int     `json:"doc_index"` // Position of the document in the indexed corpus
	Score    float64 `json:"score"`
}

// Rank scores the documents sharing a token with the query and returns at most
// topK hits, best first. Documents scoring 0 are dropped. Equal scores keep corpus order.
func (idx *Index) Rank(query string, topK int) []ScoredHit {
	hits := make([]ScoredHit, 0)
	if topK <= 0 || idx.Len() == 0 {
		return hits
	}

	queryTokens := tokenizer.Tokenize(query)
	if len(queryTokens) == 0 {
		return hits
	}

	// Candidates are ascending, so the stable sort below breaks ties by corpus order
	for _, docID := range idx.postings.Candidates(queryTokens) {
		docIdx := int(docID)
		score := idx.scoreTokens(queryTokens, docIdx)
		if score > 0 {
			hits = append(hits, ScoredHit{DocIndex: docIdx, Score: score})
		}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Score > hits[j].Score
	})

	if len(hits) > topK {
		hits = hits[:topK]
	}
	return hits
}
