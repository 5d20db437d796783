// Package index provides the term-to-document postings of a corpus.
package index

import "sort"

// InvertedIndex maps a term (token) to the documents containing it, in corpus order.
// It is not safe for concurrent writes; once built it may be read concurrently.
type InvertedIndex struct {
	Index map[string]PostingList
}

// NewInvertedIndex creates an empty inverted index.
func NewInvertedIndex() *InvertedIndex {
	return &InvertedIndex{Index: make(map[string]PostingList)}
}

// AddDocument records the term frequencies of one document.
// Documents must be added in ascending DocID order to keep posting lists sorted.
func (ii *InvertedIndex) AddDocument(docID uint32, termFreqs map[string]int) {
	for term, count := range termFreqs {
		ii.Index[term] = append(ii.Index[term], PostingEntry{DocID: docID, TermFreq: count})
	}
}

// DocumentFrequency returns the number of documents containing the term.
func (ii *InvertedIndex) DocumentFrequency(term string) int {
	return len(ii.Index[term])
}

// Terms returns the number of distinct terms.
func (ii *InvertedIndex) Terms() int {
	return len(ii.Index)
}

// Candidates returns the IDs of documents containing at least one of the terms,
// ascending and without duplicates.
func (ii *InvertedIndex) Candidates(terms []string) []uint32 {
	seen := make(map[uint32]struct{})
	var docIDs []uint32

	for _, term := range terms {
		for _, posting := range ii.Index[term] {
			if _, ok := seen[posting.DocID]; ok {
				continue
			}
			seen[posting.DocID] = struct{}{}
			docIDs = append(docIDs, posting.DocID)
		}
	}

	sort.Slice(docIDs, func(i, j int) bool { return docIDs[i] < docIDs[j] })
	return docIDs
}
