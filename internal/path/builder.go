package path

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/geoirb/go-certgen/internal/record"
)

// Builder names certificate files and writes them into the output directory.
// Names reserved by Base are unique until Reset. Builder is not safe for concurrent use.
type Builder struct {
	outputDir string
	uuidFunc  func() string

	whitespaceReg  *regexp.Regexp
	invalidReg     *regexp.Regexp
	underscoresReg *regexp.Regexp

	reserved map[string]struct{}
}

// NewBuilder creates the output directory when it does not exist.
func NewBuilder(
	outputDir string,
	uuidFunc func() string,
) (*Builder, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("output dir %s: %w", outputDir, err)
	}
	info, err := os.Stat(outputDir)
	if err != nil {
		return nil, fmt.Errorf("output dir %s: %w", outputDir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("output dir %s: %w", outputDir, errNotDir)
	}

	return &Builder{
		outputDir:      outputDir,
		uuidFunc:       uuidFunc,
		whitespaceReg:  regexp.MustCompile(whitespaceRegexp),
		invalidReg:     regexp.MustCompile(invalidRegexp),
		underscoresReg: regexp.MustCompile(underscoresRegexp),
		reserved:       make(map[string]struct{}),
	}, nil
}

// Sanitize returns the file system safe form of name.
func (b *Builder) Sanitize(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = b.whitespaceReg.ReplaceAllString(s, "_")
	s = b.invalidReg.ReplaceAllString(s, "")
	s = b.underscoresReg.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > maxNameLen {
		s = strings.TrimRight(s[:maxNameLen], "_")
	}
	if s == "" {
		return record.FileNameDefault
	}
	return s
}

// Base reserves the base file name of a certificate for name.
// Repeated names get _2, _3 ... suffixes.
func (b *Builder) Base(name string) string {
	base := b.Sanitize(name)
	candidate := base
	for n := 2; ; n++ {
		if _, isExist := b.reserved[candidate]; !isExist {
			break
		}
		candidate = base + "_" + strconv.Itoa(n)
	}
	b.reserved[candidate] = struct{}{}
	return candidate
}

// FileName returns <base>_certificate.<ext>.
func (b *Builder) FileName(base, ext string) string {
	return base + suffix + "." + ext
}

// Reset forgets reserved names, it is called before each run.
func (b *Builder) Reset() {
	b.reserved = make(map[string]struct{})
}

// Path returns the path of file in the output directory.
func (b *Builder) Path(fileName string) string {
	return filepath.Join(b.outputDir, fileName)
}

// Save writes data to the output directory through a temporary file
// renamed into place. It returns the file path.
func (b *Builder) Save(fileName string, data []byte) (string, error) {
	if fileName == "" {
		return "", errEmptyFileName
	}
	target := b.Path(fileName)
	tmp := b.Path("." + b.uuidFunc() + tmpSuffix)
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", fileName, err)
	}
	if err := os.Rename(tmp, target); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("write %s: %w", fileName, err)
	}
	return target, nil
}
