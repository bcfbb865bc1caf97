package testutil

import (
	"strings"
	"testing"

	"github.com/ebookpress/docforge/internal/docx"
	"github.com/stretchr/testify/require"
)

// Minimal WordprocessingML fixtures assembled in memory. Each builder
// returns the container parts for a small but structurally valid document
// that the pipeline stages can be exercised against.

const docxNamespaces = `xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main" ` +
	`xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships" ` +
	`xmlns:wp="http://schemas.openxmlformats.org/drawingml/2006/wordprocessingDrawing" ` +
	`xmlns:v="urn:schemas-microsoft-com:vml" ` +
	`xmlns:xml="http://www.w3.org/XML/1998/namespace"`

const contentTypesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
	`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
	`<Default Extension="xml" ContentType="application/xml"/>` +
	`<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>` +
	`</Types>`

// DocumentXML wraps body content in a complete word/document.xml part.
func DocumentXML(body string) []byte {
	return []byte(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
		`<w:document ` + docxNamespaces + `><w:body>` + body + `</w:body></w:document>`)
}

// StylesXML wraps style definitions in a complete word/styles.xml part.
func StylesXML(styles string) []byte {
	return []byte(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
		`<w:styles ` + docxNamespaces + `>` + styles + `</w:styles>`)
}

// HeaderXML wraps paragraphs in a word/header1.xml part.
func HeaderXML(content string) []byte {
	return []byte(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
		`<w:hdr ` + docxNamespaces + `>` + content + `</w:hdr>`)
}

// FooterXML wraps paragraphs in a word/footer1.xml part.
func FooterXML(content string) []byte {
	return []byte(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
		`<w:ftr ` + docxNamespaces + `>` + content + `</w:ftr>`)
}

// RelsXML builds a word/_rels/document.xml.rels part from id->target pairs.
func RelsXML(rels map[string]string) []byte {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`)
	b.WriteString(`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`)
	for id, target := range rels {
		b.WriteString(`<Relationship Id="` + id +
			`" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/header" Target="` +
			target + `"/>`)
	}
	b.WriteString(`</Relationships>`)
	return []byte(b.String())
}

// Para builds a w:p with a single run of plain text.
func Para(text string) string {
	return `<w:p><w:r><w:t>` + text + `</w:t></w:r></w:p>`
}

// ParaWithFont builds a w:p whose run carries an explicit rFonts name.
func ParaWithFont(font, text string) string {
	return `<w:p><w:r><w:rPr><w:rFonts w:ascii="` + font + `" w:hAnsi="` + font +
		`" w:cs="` + font + `"/></w:rPr><w:t>` + text + `</w:t></w:r></w:p>`
}

// NewDocument assembles a Document from body XML plus optional extra parts.
func NewDocument(t *testing.T, body string, extra map[string][]byte) *docx.Document {
	t.Helper()

	parts := map[string][]byte{
		"[Content_Types].xml": []byte(contentTypesXML),
		"word/document.xml":   DocumentXML(body),
	}
	for name, data := range extra {
		parts[name] = data
	}
	doc, err := docx.FromParts(parts)
	require.NoError(t, err, "building fixture document")
	return doc
}
