package docx

import (
	"archive/zip"
	"bytes"
	"fmt"
	"strings"
)

const (
	contentTypesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
<Default Extension="xml" ContentType="application/xml"/>
<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>`

	relsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`

	documentRelsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
</Relationships>`

	documentXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:body>%s</w:body>
</w:document>`
)

// Document returns minimal docx container with body as content of <w:body>.
func Document(body string) ([]byte, error) {
	parts := []struct {
		name    string
		content string
	}{
		{name: "[Content_Types].xml", content: contentTypesXML},
		{name: "_rels/.rels", content: relsXML},
		{name: "word/_rels/document.xml.rels", content: documentRelsXML},
		{name: documentPart, content: fmt.Sprintf(documentXML, body)},
	}

	var result bytes.Buffer
	zw := zip.NewWriter(&result)
	for _, part := range parts {
		w, err := zw.Create(part.name)
		if err != nil {
			return nil, err
		}
		if _, err = w.Write([]byte(part.content)); err != nil {
			return nil, err
		}
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return result.Bytes(), nil
}

// Build returns minimal docx with one paragraph per line.
func Build(lines []string) ([]byte, error) {
	var body strings.Builder
	for _, line := range lines {
		body.WriteString(`<w:p><w:r>`)
		body.WriteString(preserveTextTag)
		body.WriteString(xmlEscaper.Replace(line))
		body.WriteString(closeTextTag)
		body.WriteString(`</w:r></w:p>`)
	}
	return Document(body.String())
}
