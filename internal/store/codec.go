package store

import (
	"fmt"
	"reflect"

	json "github.com/goccy/go-json"
)

// Encode converts a tagged struct into document data. The id field is
// carried by the document key, so callers strip it with omitempty tags.
func Encode(v interface{}) (Data, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	data := Data{}
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	return data, nil
}

// Decode fills out from document data.
func Decode(data Data, out interface{}) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("decode document: %w", err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode document: %w", err)
	}
	return nil
}

// Normalize round-trips a value through JSON so that numbers compare as
// float64 regardless of the Go type they were written with.
func Normalize(v interface{}) interface{} {
	raw, err := json.Marshal(v)
	if err != nil {
		return v
	}
	var out interface{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return v
	}
	return out
}

// Matches reports whether data holds every field of where with an equal value.
func Matches(data Data, where Data) bool {
	for field, want := range where {
		got, ok := data[field]
		if !ok {
			return false
		}
		if !reflect.DeepEqual(Normalize(got), Normalize(want)) {
			return false
		}
	}
	return true
}
