package store

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gcbaptista/styleguide-search/model"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(name))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestCSVProviderLoad(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "styles.csv", "\ufeffStyle Category,Type,Keywords\n"+
		"Glassmorphism,General,\"frosted, blur, transparent\"\n"+
		"Brutalism,General,\"raw, bold\"\n")

	provider := NewCSVProvider(dir)
	records, err := provider.Load("styles.csv")
	require.NoError(t, err)

	require.Len(t, records, 2)
	assert.Equal(t, model.Record{
		"Style Category": "Glassmorphism",
		"Type":           "General",
		"Keywords":       "frosted, blur, transparent",
	}, records[0])
	assert.Equal(t, "Brutalism", records[1].Get("Style Category"), "BOM must be stripped from the first header")
}

func TestCSVProviderNestedSource(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "stacks/react.csv", "Category,Guideline\nState,Use hooks\n")

	records, err := NewCSVProvider(dir).Load("stacks/react.csv")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Use hooks", records[0].Get("Guideline"))
}

func TestCSVProviderMissingFile(t *testing.T) {
	records, err := NewCSVProvider(t.TempDir()).Load("missing.csv")

	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestCSVProviderMissingDirectory(t *testing.T) {
	records, err := NewCSVProvider(filepath.Join(t.TempDir(), "nope")).Load("styles.csv")

	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestCSVProviderUnreadableSource(t *testing.T) {
	dir := t.TempDir()
	// A directory where a file is expected fails at read time, not with "not exist"
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "styles.csv"), 0o750))

	_, err := NewCSVProvider(dir).Load("styles.csv")
	assert.Error(t, err)
}

func TestReadCSV(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []model.Record
		wantErr bool
	}{
		{
			name:  "empty input",
			input: "",
			want:  []model.Record{},
		},
		{
			name:  "header only",
			input: "a,b\n",
			want:  []model.Record{},
		},
		{
			name:  "short row omits trailing fields",
			input: "a,b,c\n1,2\n",
			want:  []model.Record{{"a": "1", "b": "2"}},
		},
		{
			name:  "long row ignores extra cells",
			input: "a,b\n1,2,3\n",
			want:  []model.Record{{"a": "1", "b": "2"}},
		},
		{
			name:  "empty cells are kept",
			input: "a,b\n,2\n",
			want:  []model.Record{{"a": "", "b": "2"}},
		},
		{
			name:  "blank lines are skipped",
			input: "a\n1\n\n2\n",
			want:  []model.Record{{"a": "1"}, {"a": "2"}},
		},
		{
			name:  "quoted newline",
			input: "a,b\n\"line one\nline two\",x\n",
			want:  []model.Record{{"a": "line one\nline two", "b": "x"}},
		},
		{
			name:    "malformed quotes",
			input:   "a,b\n\"unterminated,x\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadCSV(strings.NewReader(tt.input))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
