// Package jsoncol implements the encoded-column convention used across the
// catalog schema: list and map values serialized as JSON into plain text
// columns, with a decode path that degrades silently instead of failing the
// row read. The oldest schema revisions predate native JSON columns, and
// rows written by earlier tooling may hold malformed text; callers always
// get a usable value back.
package jsoncol

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// List is an ordered sequence of strings stored as a JSON text column.
type List []string

// Map is a flat object stored as a JSON text column. Values may themselves
// be lists or nested objects (the product "detailed" blob uses both).
type Map map[string]interface{}

// Contains reports whether the list holds s.
func (l List) Contains(s string) bool {
	for _, v := range l {
		if v == s {
			return true
		}
	}
	return false
}

func (List) GormDataType() string { return "text" }
func (Map) GormDataType() string  { return "text" }

func (l List) Value() (driver.Value, error) {
	if l == nil {
		return nil, nil
	}
	b, err := marshalNoEscape([]string(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan never returns an error for malformed stored text: the column decodes
// to an empty list instead.
func (l *List) Scan(src interface{}) error {
	text, ok := columnText(src)
	if !ok {
		*l = List{}
		return nil
	}
	var out []string
	if err := json.Unmarshal(text, &out); err != nil || out == nil {
		*l = List{}
		return nil
	}
	*l = List(out)
	return nil
}

func (m Map) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	b, err := marshalNoEscape(map[string]interface{}(m))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan decodes malformed stored text to an empty map.
func (m *Map) Scan(src interface{}) error {
	text, ok := columnText(src)
	if !ok {
		*m = Map{}
		return nil
	}
	var out map[string]interface{}
	if err := json.Unmarshal(text, &out); err != nil || out == nil {
		*m = Map{}
		return nil
	}
	*m = Map(out)
	return nil
}

// Encode serializes a value for storage in an encoded column. Sequences and
// maps become their canonical JSON text; a string is assumed to already be
// in that encoding and passes through unchanged; nil stores NULL.
func Encode(v interface{}) (driver.Value, error) {
	switch t := v.(type) {
	case nil:
		return nil, nil
	case string:
		return t, nil
	case []byte:
		return string(t), nil
	default:
		b, err := marshalNoEscape(v)
		if err != nil {
			return nil, fmt.Errorf("encoding column value: %w", err)
		}
		return string(b), nil
	}
}

// Decode parses raw encoded-column text without the schema-level type
// information the List/Map columns carry. On parse failure it falls back to
// an empty list, unless the first non-space character is '{', in which case
// the text was meant to be a map and an empty map is returned. Decode never
// reports an error.
func Decode(text string) interface{} {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return []interface{}{}
	}
	var out interface{}
	if err := json.Unmarshal([]byte(trimmed), &out); err == nil {
		return out
	}
	if trimmed[0] == '{' {
		return map[string]interface{}{}
	}
	return []interface{}{}
}

// columnText normalizes the driver value to raw text. The bool reports
// whether there is any text to decode.
func columnText(src interface{}) ([]byte, bool) {
	switch t := src.(type) {
	case nil:
		return nil, false
	case []byte:
		if len(bytes.TrimSpace(t)) == 0 {
			return nil, false
		}
		return t, true
	case string:
		if strings.TrimSpace(t) == "" {
			return nil, false
		}
		return []byte(t), true
	default:
		return nil, false
	}
}

// marshalNoEscape is json.Marshal without HTML escaping, so Cyrillic and
// other non-ASCII content is stored literally rather than substituted.
func marshalNoEscape(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
