package record

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecord(t *testing.T) {
	r := New()
	r.Set("name", "John Doe")
	r.Set("grade", 95.0)
	r.Set("course", "Web Dev")
	r.Set("name", "Jane")

	assert.Equal(t, []string{"name", "grade", "course"}, r.Keys())
	assert.Equal(t, 3, r.Len())

	text, ok := r.Text("grade")
	assert.True(t, ok)
	assert.Equal(t, "95", text)

	text, ok = r.Text("name")
	assert.True(t, ok)
	assert.Equal(t, "Jane", text)

	_, ok = r.Text("date")
	assert.False(t, ok)
}

func TestToText(t *testing.T) {
	tests := []struct {
		value    interface{}
		expected string
	}{
		{value: nil, expected: ""},
		{value: "A+", expected: "A+"},
		{value: 3.5, expected: "3.5"},
		{value: 100.0, expected: "100"},
		{value: 42, expected: "42"},
		{value: int64(7), expected: "7"},
		{value: true, expected: "true"},
	}
	for _, test := range tests {
		assert.Equal(t, test.expected, ToText(test.value))
	}
}

func TestDisplayName(t *testing.T) {
	r := FromMap(map[string]interface{}{"name": "Ann", "course": "Go"}, "name", "course")
	assert.Equal(t, "Ann", r.DisplayName(0))

	r = FromMap(map[string]interface{}{"course": "Go"}, "course")
	assert.Equal(t, "record #3", r.DisplayName(2))

	r.Set("name", "   ")
	assert.Equal(t, "record #1", r.DisplayName(0))
}

func TestDefaults(t *testing.T) {
	r := FromMap(map[string]interface{}{"course": "Go", "grade": ""}, "course", "grade")

	assert.Equal(t, "Student Name", LayoutDefaults.Value(r, NameField))
	assert.Equal(t, "Go", LayoutDefaults.Value(r, CourseField))
	assert.Equal(t, "", LayoutDefaults.Value(r, GradeField))
}
