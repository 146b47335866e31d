// Package record defines the schema-less catalog record shared by the
// document store gateways, the reference resolver and the collection view-model.
package record

import (
	"encoding/json"
	"fmt"
	"maps"
	"strconv"
	"time"
)

// Well-known field names. Everything else in Fields is opaque payload.
const (
	FieldName      = "name"
	FieldImageURL  = "imageUrl"
	FieldCategory  = "category"
	FieldCreatedAt = "createdAt"
)

// Placeholder is rendered for a missing or unreadable value.
const Placeholder = "N/A"

// TimeLayout is the display layout for timestamps.
const TimeLayout = "2006-01-02 15:04:05"

// Fields is the open payload of a record.
type Fields map[string]any

// Record is one item of a collection. ID is assigned by the document store.
type Record struct {
	ID     string `json:"id"`
	Fields Fields `json:"fields"`
}

// View is a record as presented to a screen, carrying the resolved
// reference name when the screen resolves one.
type View struct {
	Record
	CategoryName string `json:"categoryName,omitempty"`
}

// Clone returns a shallow copy of the fields. Nested values are shared.
func (f Fields) Clone() Fields {
	if f == nil {
		return Fields{}
	}
	return maps.Clone(f)
}

// Merge returns a copy of f with every key in patch applied.
func (f Fields) Merge(patch Fields) Fields {
	out := f.Clone()
	maps.Copy(out, patch)
	return out
}

// String returns the field as a string when it holds one.
func (f Fields) String(key string) string {
	if s, ok := f[key].(string); ok {
		return s
	}
	return ""
}

// Name returns the name field.
func (f Fields) Name() string {
	return f.String(FieldName)
}

// ImageURL returns the retrieval URL of the record's image, if any.
func (f Fields) ImageURL() string {
	return f.String(FieldImageURL)
}

// CreatedAt returns the creation timestamp when one is present and parseable.
func (f Fields) CreatedAt() (time.Time, bool) {
	return Time(f[FieldCreatedAt])
}

// Clone returns a copy of the record with its own field map.
func (r Record) Clone() Record {
	return Record{ID: r.ID, Fields: r.Fields.Clone()}
}

// Time converts the store-native timestamp representations into a time.Time.
func Time(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, !t.IsZero()
	case *time.Time:
		if t == nil {
			return time.Time{}, false
		}
		return *t, !t.IsZero()
	case string:
		parsed, err := time.Parse(time.RFC3339Nano, t)
		if err != nil {
			return time.Time{}, false
		}
		return parsed, true
	case int64:
		return time.Unix(t, 0), true
	case interface{ Time() time.Time }:
		return t.Time(), true
	default:
		return time.Time{}, false
	}
}

// Display renders a field value for a table cell. Missing, empty or
// unreadable values render as Placeholder.
func Display(v any) string {
	if ts, ok := v.(interface{ Time() time.Time }); ok {
		return ts.Time().Local().Format(TimeLayout)
	}

	switch val := v.(type) {
	case nil:
		return Placeholder
	case string:
		if val == "" {
			return Placeholder
		}
		return val
	case bool:
		if val {
			return "Yes"
		}
		return "No"
	case time.Time:
		if val.IsZero() {
			return Placeholder
		}
		return val.Local().Format(TimeLayout)
	case float64:
		if val == 0 {
			return Placeholder
		}
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return Display(float64(val))
	case int:
		return Display(float64(val))
	case int32:
		return Display(float64(val))
	case int64:
		return Display(float64(val))
	case json.Number:
		return Display(val.String())
	case fmt.Stringer:
		return Display(val.String())
	default:
		return Placeholder
	}
}
