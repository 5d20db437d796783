package model

import (
	"bytes"
	"encoding/json"
)

// Record is one row of a collection: field name -> field value.
// Records are immutable once loaded; a record's identity is its position in the collection.
type Record map[string]string

// Get returns the field value, or "" when the record has no such field.
func (r Record) Get(field string) string {
	return r[field]
}

// Has reports whether the record carries the field, even with an empty value.
func (r Record) Has(field string) bool {
	_, ok := r[field]
	return ok
}

// Field is a single name/value pair of an OutputRecord.
type Field struct {
	Name  string
	Value string
}

// OutputRecord is the projection of a Record onto a collection's output fields.
// Field order follows the configured output field list, and JSON encoding preserves it.
type OutputRecord []Field

// Project copies the given fields out of the record, in order.
// Fields the record does not carry are omitted, not emitted as empty values.
func (r Record) Project(fields []string) OutputRecord {
	out := make(OutputRecord, 0, len(fields))
	for _, name := range fields {
		if value, ok := r[name]; ok {
			out = append(out, Field{Name: name, Value: value})
		}
	}
	return out
}

// Get returns the value of the named field and whether it is present.
func (o OutputRecord) Get(name string) (string, bool) {
	for _, f := range o {
		if f.Name == name {
			return f.Value, true
		}
	}
	return "", false
}

// Map converts the projection to an unordered map.
func (o OutputRecord) Map() map[string]string {
	m := make(map[string]string, len(o))
	for _, f := range o {
		m[f.Name] = f.Value
	}
	return m
}

// MarshalJSON encodes the record as a JSON object with keys in field order.
func (o OutputRecord) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.Name)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(f.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object of string values, keeping key order.
func (o *OutputRecord) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	if _, err := dec.Token(); err != nil { // opening brace
		return err
	}

	fields := make(OutputRecord, 0)
	for dec.More() {
		keyToken, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := keyToken.(string)

		var value string
		if err := dec.Decode(&value); err != nil {
			return err
		}
		fields = append(fields, Field{Name: key, Value: value})
	}
	if _, err := dec.Token(); err != nil { // closing brace
		return err
	}

	*o = fields
	return nil
}
