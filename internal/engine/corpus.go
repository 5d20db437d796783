package engine

import (
	"strings"

	"github.com/gcbaptista/styleguide-search/model"
)

// BuildCorpus projects each record's search fields into one text per record,
// joined by single spaces. A field the record lacks contributes empty text.
func BuildCorpus(records []model.Record, searchFields []string) []string {
	corpus := make([]string, len(records))
	values := make([]string, len(searchFields))
	for i, record := range records {
		for j, field := range searchFields {
			values[j] = record.Get(field)
		}
		corpus[i] = strings.Join(values, " ")
	}
	return corpus
}
