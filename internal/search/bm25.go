package search

import (
	"math"

	"github.com/gcbaptista/styleguide-search/index"
	"github.com/gcbaptista/styleguide-search/internal/tokenizer"
)

// Params holds the BM25 tunables.
type Params struct {
	K1 float64 // Controls term frequency saturation
	B  float64 // Controls how much effect document length has (0 = none, 1 = full)
}

// DefaultParams are the tunables used by Build.
var DefaultParams = Params{K1: 1.5, B: 0.75}

// Index holds the corpus statistics needed for BM25 scoring.
// It is built once per search call and never modified afterwards.
type Index struct {
	params       Params
	termFreqs    []map[string]int     // Per-document token -> count
	docLengths   []int                // Per-document token count, duplicates included
	avgDocLength float64              // 0 for an empty corpus
	postings     *index.InvertedIndex // Token -> documents containing it
	idf          map[string]float64   // Token -> inverse document frequency
}

// Build indexes the corpus using DefaultParams.
func Build(corpus []string) *Index {
	return BuildWithParams(corpus, DefaultParams)
}

// BuildWithParams indexes the corpus. Each entry of corpus is one document.
func BuildWithParams(corpus []string, params Params) *Index {
	idx := &Index{
		params:     params,
		termFreqs:  make([]map[string]int, 0, len(corpus)),
		docLengths: make([]int, 0, len(corpus)),
		postings:   index.NewInvertedIndex(),
	}

	totalLength := 0
	for docIdx, doc := range corpus {
		tokens := tokenizer.Tokenize(doc)
		freqs := tokenizer.TermFrequencies(tokens)

		idx.termFreqs = append(idx.termFreqs, freqs)
		idx.docLengths = append(idx.docLengths, len(tokens))
		idx.postings.AddDocument(uint32(docIdx), freqs)
		totalLength += len(tokens)
	}

	if len(corpus) > 0 {
		idx.avgDocLength = float64(totalLength) / float64(len(corpus))
	}

	idx.idf = make(map[string]float64, idx.postings.Terms())
	for token, postings := range idx.postings.Index {
		idx.idf[token] = calculateIDF(len(corpus), len(postings))
	}

	return idx
}

// calculateIDF calculates the smoothed inverse document frequency
// IDF = ln((N - df + 0.5) / (df + 0.5) + 1), which is never negative for df in [0, N].
func calculateIDF(totalDocs, docFreq int) float64 {
	n := float64(totalDocs)
	df := float64(docFreq)
	return math.Log((n-df+0.5)/(df+0.5) + 1)
}

// Len returns the number of indexed documents.
func (idx *Index) Len() int {
	return len(idx.docLengths)
}

// Params returns the tunables the index scores with.
func (idx *Index) Params() Params {
	return idx.params
}

// DocLength returns the token count of the document, or 0 if docIdx is out of range.
func (idx *Index) DocLength(docIdx int) int {
	if docIdx < 0 || docIdx >= len(idx.docLengths) {
		return 0
	}
	return idx.docLengths[docIdx]
}

// AvgDocLength returns the mean document length.
func (idx *Index) AvgDocLength() float64 {
	return idx.avgDocLength
}

// DocumentFrequency returns the number of documents that contain the token.
func (idx *Index) DocumentFrequency(token string) int {
	return idx.postings.DocumentFrequency(token)
}

// IDF returns the inverse document frequency of the token, 0 for unknown tokens.
func (idx *Index) IDF(token string) float64 {
	return idx.idf[token]
}

// Score calculates the BM25 score of the query against one document.
// Query tokens are not deduplicated: a repeated token contributes once per occurrence.
func (idx *Index) Score(query string, docIdx int) float64 {
	return idx.scoreTokens(tokenizer.Tokenize(query), docIdx)
}

// scoreTokens sums per-token contributions
// BM25 = IDF * (tf * (k1 + 1)) / (tf + k1 * (1 - b + b * (|d| / avgdl)))
func (idx *Index) scoreTokens(queryTokens []string, docIdx int) float64 {
	if docIdx < 0 || docIdx >= len(idx.termFreqs) || idx.avgDocLength == 0 {
		return 0.0
	}

	k1 := idx.params.K1
	b := idx.params.B
	freqs := idx.termFreqs[docIdx]
	lengthRatio := float64(idx.docLengths[docIdx]) / idx.avgDocLength

	score := 0.0
	for _, token := range queryTokens {
		count, ok := freqs[token]
		if !ok {
			continue
		}
		tf := float64(count)
		score += idx.idf[token] * (tf * (k1 + 1)) / (tf + k1*(1-b+b*lengthRatio))
	}
	return score
}
