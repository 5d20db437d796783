package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordProject(t *testing.T) {
	record := Record{
		"Style Category": "Glassmorphism",
		"Keywords":       "frosted, blur",
		"Best For":       "",
		"Internal":       "not an output field",
	}

	out := record.Project([]string{"Style Category", "Type", "Keywords", "Best For"})

	// "Type" is absent and omitted; "Best For" is present but empty and kept
	require.Len(t, out, 3)
	assert.Equal(t, OutputRecord{
		{Name: "Style Category", Value: "Glassmorphism"},
		{Name: "Keywords", Value: "frosted, blur"},
		{Name: "Best For", Value: ""},
	}, out)

	_, ok := out.Get("Internal")
	assert.False(t, ok)
}

func TestRecordAccessors(t *testing.T) {
	record := Record{"Do": "", "Severity": "High"}

	assert.True(t, record.Has("Do"))
	assert.False(t, record.Has("Don't"))
	assert.Equal(t, "High", record.Get("Severity"))
	assert.Equal(t, "", record.Get("missing"))
}

func TestOutputRecordJSONKeepsOrder(t *testing.T) {
	out := OutputRecord{
		{Name: "Product Type", Value: "SaaS"},
		{Name: "Primary (Hex)", Value: "#2563EB"},
		{Name: "Notes", Value: "Trust \"blue\""},
	}

	data, err := json.Marshal(out)
	require.NoError(t, err)
	assert.Equal(t, `{"Product Type":"SaaS","Primary (Hex)":"#2563EB","Notes":"Trust \"blue\""}`, string(data))

	var decoded OutputRecord
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, out, decoded)
}

func TestOutputRecordEmptyJSON(t *testing.T) {
	data, err := json.Marshal(OutputRecord{})
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(data))
}

func TestOutputRecordMap(t *testing.T) {
	out := OutputRecord{{Name: "a", Value: "1"}, {Name: "b", Value: "2"}}
	assert.Equal(t, map[string]string{"a": "1", "b": "2"}, out.Map())
}
