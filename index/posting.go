package index

// PostingEntry records that a document contains a term.
type PostingEntry struct {
	DocID    uint32 // Position of the document in its corpus
	TermFreq int    // Occurrences of the term in the document
}

// PostingList is a slice of PostingEntry sorted by DocID ascending.
type PostingList []PostingEntry
