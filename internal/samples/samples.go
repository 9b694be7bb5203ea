package samples

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tealeg/xlsx/v3"

	"github.com/geoirb/go-certgen/internal/docx"
	"github.com/geoirb/go-certgen/internal/record"
)

// Sample file names.
const (
	StudentsFile = "students.xlsx"
	TemplateFile = "template.docx"

	sheetName = "Students"
	date      = "2025-10-27"
)

var header = []string{record.NameField, record.CourseField, record.GradeField, record.DateField}

var students = [][]string{
	{"John Doe", "Web Development", "A+", date},
	{"Jane Smith", "Data Science", "A", date},
	{"Bob Johnson", "Machine Learning", "B+", date},
	{"Alice Williams", "Cybersecurity", "A+", date},
	{"Charlie Brown", "Cloud Computing", "A-", date},
}

var templateLines = []string{
	"",
	"CERTIFICATE OF ACHIEVEMENT",
	"═══════════════════════════",
	"",
	"This is to certify that",
	"",
	"{{name}}",
	"",
	"has successfully completed the course",
	"",
	"{{course}}",
	"",
	"with outstanding performance, achieving",
	"",
	"Grade: {{grade}}",
	"",
	"Completion Date: {{date}}",
	"",
	"We congratulate you on your achievement and wish you continued success!",
	"",
	"_____________________                           _____________________",
	"  Director Signature                                    Date",
}

// Students returns the sample spreadsheet.
func Students() ([]byte, error) {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet(sheetName)
	if err != nil {
		return nil, err
	}
	for _, values := range append([][]string{header}, students...) {
		row := sheet.AddRow()
		for _, value := range values {
			row.AddCell().SetString(value)
		}
	}

	var buf bytes.Buffer
	if err = file.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Template returns the sample docx template.
func Template() ([]byte, error) {
	return docx.Build(templateLines)
}

// Write saves the sample files into dir and returns their paths.
func Write(dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	files := []struct {
		name  string
		build func() ([]byte, error)
	}{
		{name: StudentsFile, build: Students},
		{name: TemplateFile, build: Template},
	}

	paths := make([]string, 0, len(files))
	for _, f := range files {
		data, err := f.build()
		if err != nil {
			return nil, fmt.Errorf("build %s: %w", f.name, err)
		}
		path := filepath.Join(dir, f.name)
		if err = os.WriteFile(path, data, 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", f.name, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
