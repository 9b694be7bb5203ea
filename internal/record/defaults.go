package record

// Defaults is the value used for a field when the record lacks it or it is blank.
type Defaults map[string]string

// LayoutDefaults used by the rasterized certificate: name is "Student Name",
// course is "Course Name". grade and date have no default, their lines are left out instead.
var LayoutDefaults = Defaults{
	NameField:   "Student Name",
	CourseField: "Course Name",
}

// FileNameDefault is the file name base for records without a name.
const FileNameDefault = "certificate"

// Value returns field text or its default.
func (d Defaults) Value(r *Record, key string) string {
	if text, ok := r.NonEmpty(key); ok {
		return text
	}
	return d[key]
}
