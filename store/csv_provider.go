package store

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/gcbaptista/styleguide-search/model"
)

// utf8BOM is stripped from the first header cell when present.
const utf8BOM = "\ufeff"

// CSVProvider reads collections from CSV files under a data directory.
// The first row of each file names the fields.
type CSVProvider struct {
	Dir string
}

// NewCSVProvider creates a provider rooted at dir.
func NewCSVProvider(dir string) *CSVProvider {
	return &CSVProvider{Dir: dir}
}

// Load reads <Dir>/<source>. A missing file yields no records and no error.
func (p *CSVProvider) Load(source string) ([]model.Record, error) {
	filePath := filepath.Join(p.Dir, filepath.FromSlash(source))

	file, err := os.Open(filePath) // #nosec G304 -- source comes from the registry, not user input
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []model.Record{}, nil
		}
		return nil, fmt.Errorf("failed to open collection %s: %w", filePath, err)
	}
	defer func() {
		_ = file.Close()
	}()

	records, err := ReadCSV(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read collection %s: %w", filePath, err)
	}
	return records, nil
}

// ReadCSV parses CSV data with a header row into records.
// Rows shorter than the header simply lack the trailing fields; extra cells are ignored.
func ReadCSV(r io.Reader) ([]model.Record, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // Tolerate ragged rows

	records := make([]model.Record, 0)

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return records, nil
		}
		return nil, err
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], utf8BOM)
	}

	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		record := make(model.Record, len(header))
		for i, name := range header {
			if i < len(row) {
				record[name] = row[i]
			}
		}
		records = append(records, record)
	}

	return records, nil
}
