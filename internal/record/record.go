package record

import (
	"fmt"
	"strconv"
	"strings"
)

// Well-known field names.
const (
	NameField   = "name"
	CourseField = "course"
	GradeField  = "grade"
	DateField   = "date"
)

// Record is one spreadsheet row: field name to scalar value, in column order.
type Record struct {
	keys   []string
	values map[string]interface{}
}

// New returns empty record.
func New() *Record {
	return &Record{
		values: make(map[string]interface{}),
	}
}

// FromMap builds a record from m, keys are taken in the order given.
func FromMap(m map[string]interface{}, keys ...string) *Record {
	r := New()
	for _, key := range keys {
		if value, ok := m[key]; ok {
			r.Set(key, value)
		}
	}
	return r
}

// Set value of field. A new field is appended after the existing ones.
func (r *Record) Set(key string, value interface{}) {
	if _, isExist := r.values[key]; !isExist {
		r.keys = append(r.keys, key)
	}
	r.values[key] = value
}

// Get returns raw value of field.
func (r *Record) Get(key string) (value interface{}, ok bool) {
	value, ok = r.values[key]
	return
}

// Keys returns field names in column order.
func (r *Record) Keys() []string {
	keys := make([]string, len(r.keys))
	copy(keys, r.keys)
	return keys
}

// Len returns number of fields.
func (r *Record) Len() int {
	return len(r.keys)
}

// Text returns value of field converted to text.
// ok is false if the record has no such field.
func (r *Record) Text(key string) (text string, ok bool) {
	value, ok := r.values[key]
	if !ok {
		return
	}
	return ToText(value), true
}

// NonEmpty returns text of field if it is present and not blank.
func (r *Record) NonEmpty(key string) (string, bool) {
	text, ok := r.Text(key)
	if !ok || strings.TrimSpace(text) == "" {
		return "", false
	}
	return text, true
}

// DisplayName identifies the record in messages: its name field or its position.
func (r *Record) DisplayName(idx int) string {
	if name, ok := r.NonEmpty(NameField); ok {
		return name
	}
	return fmt.Sprintf("record #%d", idx+1)
}

// ToText converts scalar value to its textual form. nil renders empty.
func ToText(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case bool:
		return strconv.FormatBool(v)
	case fmt.Stringer:
		return v.String()
	}
	return fmt.Sprint(value)
}
