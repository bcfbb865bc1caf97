package docx

import (
	"archive/zip"
	"bytes"
	"path/filepath"
	"testing"

	"github.com/antchfx/xmlquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testNamespaces = `xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main" ` +
	`xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships" ` +
	`xmlns:wp="http://schemas.openxmlformats.org/drawingml/2006/wordprocessingDrawing" ` +
	`xmlns:v="urn:schemas-microsoft-com:vml"`

func docParts(body string) map[string][]byte {
	return map[string][]byte{
		"[Content_Types].xml": []byte(`<?xml version="1.0"?><Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"/>`),
		"word/document.xml": []byte(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
			`<w:document ` + testNamespaces + `><w:body>` + body + `</w:body></w:document>`),
	}
}

func mustDoc(t *testing.T, body string) *Document {
	t.Helper()
	doc, err := FromParts(docParts(body))
	require.NoError(t, err)
	return doc
}

func TestFromParts_MissingDocumentPart(t *testing.T) {
	_, err := FromParts(map[string][]byte{"[Content_Types].xml": []byte(`<Types/>`)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "word/document.xml")
}

func TestParagraphsAndRunText(t *testing.T) {
	doc := mustDoc(t, `<w:p><w:r><w:t>Hello </w:t><w:t>world</w:t></w:r></w:p><w:p><w:r><w:t>again</w:t></w:r></w:p>`)

	paras := doc.Paragraphs()
	require.Len(t, paras, 2)
	assert.Equal(t, "Hello world", paras[0].Text())
	assert.Equal(t, "again", paras[1].Text())

	runs := paras[0].Runs()
	require.Len(t, runs, 1)
	assert.Equal(t, "Hello world", runs[0].Text())
}

func TestAllParagraphsIncludesTableCells(t *testing.T) {
	body := `<w:p><w:r><w:t>body</w:t></w:r></w:p>` +
		`<w:tbl><w:tr><w:tc><w:p><w:r><w:t>cell</w:t></w:r></w:p>` +
		`<w:tbl><w:tr><w:tc><w:p><w:r><w:t>nested</w:t></w:r></w:p></w:tc></w:tr></w:tbl>` +
		`</w:tc></w:tr></w:tbl>`
	doc := mustDoc(t, body)

	assert.Len(t, doc.Paragraphs(), 1)

	var texts []string
	for _, p := range doc.AllParagraphs() {
		texts = append(texts, p.Text())
	}
	assert.Equal(t, []string{"body", "cell", "nested"}, texts)

	tables := doc.Tables()
	require.Len(t, tables, 1)
	cells := tables[0].Cells()
	require.Len(t, cells, 1)
	assert.Len(t, cells[0].Paragraphs(), 1)
	assert.Len(t, cells[0].AllParagraphs(), 2)
}

func TestRunSetText(t *testing.T) {
	doc := mustDoc(t, `<w:p><w:r><w:t>one</w:t><w:t>two</w:t></w:r></w:p>`)
	run := doc.Paragraphs()[0].Runs()[0]

	run.SetText("replaced ")
	assert.Equal(t, "replaced ", run.Text())

	run.SetText("")
	assert.Equal(t, "", run.Text())
	// Run survives with empty text.
	assert.Len(t, doc.Paragraphs()[0].Runs(), 1)
}

func TestRunFontName(t *testing.T) {
	doc := mustDoc(t, `<w:p>`+
		`<w:r><w:rPr><w:rFonts w:ascii="SutonnyMJ" w:hAnsi="SutonnyMJ"/></w:rPr><w:t>x</w:t></w:r>`+
		`<w:r><w:t>bare</w:t></w:r>`+
		`</w:p>`)
	runs := doc.Paragraphs()[0].Runs()

	assert.Equal(t, "SutonnyMJ", runs[0].FontName())
	assert.Equal(t, "", runs[1].FontName())

	runs[1].SetFontName("Kalpurush")
	assert.Equal(t, "Kalpurush", runs[1].FontName())
}

func TestParagraphAlignmentAndSpacing(t *testing.T) {
	doc := mustDoc(t, `<w:p><w:r><w:t>x</w:t></w:r></w:p>`)
	p := doc.Paragraphs()[0]

	assert.Equal(t, "", p.Alignment())
	p.SetAlignment("center")
	assert.Equal(t, "center", p.Alignment())

	line, rule := p.LineSpacing()
	assert.Empty(t, line)
	assert.Empty(t, rule)
	p.SetLineSpacing(LineSpacingValue, LineSpacingRule)
	line, rule = p.LineSpacing()
	assert.Equal(t, "276", line)
	assert.Equal(t, "auto", rule)
}

func TestParagraphRemove(t *testing.T) {
	doc := mustDoc(t, join(
		`<w:p><w:r><w:t>keep</w:t></w:r></w:p>`,
		`<w:p><w:r><w:t>drop</w:t></w:r></w:p>`,
		`<w:p><w:r><w:t>also keep</w:t></w:r></w:p>`,
	))
	paras := doc.Paragraphs()
	require.Len(t, paras, 3)
	paras[1].Remove()

	var texts []string
	for _, p := range doc.Paragraphs() {
		texts = append(texts, p.Text())
	}
	assert.Equal(t, []string{"keep", "also keep"}, texts)
}

func TestSectionGeometry(t *testing.T) {
	body := `<w:p><w:r><w:t>x</w:t></w:r></w:p>` +
		`<w:sectPr><w:pgSz w:w="16838" w:h="11906" w:orient="landscape"/>` +
		`<w:pgMar w:top="720" w:right="720" w:bottom="720" w:left="720"/>` +
		`<w:pgBorders><w:top w:val="single"/></w:pgBorders>` +
		`<w:cols w:num="3" w:space="708"><w:col w:w="2000"/><w:col w:w="2000"/><w:col w:w="2000"/></w:cols>` +
		`</w:sectPr>`
	doc := mustDoc(t, body)

	secs := doc.Sections()
	require.Len(t, secs, 1)
	s := secs[0]

	assert.Equal(t, "landscape", s.Orientation())
	s.SetPortraitA4()
	assert.Equal(t, "portrait", s.Orientation())

	s.SetUniformMargins(MarginTwips)
	top, right, bottom, left := s.Margins()
	assert.Equal(t, []string{"1440", "1440", "1440", "1440"}, []string{top, right, bottom, left})

	assert.True(t, s.HasPageBorders())
	s.RemovePageBorders()
	assert.False(t, s.HasPageBorders())

	assert.Equal(t, 3, s.ColumnCount())
	orig := s.NormalizeColumns()
	assert.Equal(t, 3, orig)
	assert.Equal(t, 1, s.ColumnCount())
	assert.Equal(t, "0", s.ColumnSpacing())
	assert.Equal(t, 0, s.ColumnOverrideCount())
}

func TestSectionCreatedGeometryKeepsChildOrder(t *testing.T) {
	// No pgSz or pgMar: both get created and must land between the
	// reference elements and w:cols, per the CT_SectPr sequence.
	body := `<w:p><w:r><w:t>x</w:t></w:r></w:p>` +
		`<w:sectPr>` +
		`<w:headerReference r:id="rId9"/>` +
		`<w:cols w:num="2" w:space="708"/>` +
		`</w:sectPr>`
	doc := mustDoc(t, body)
	s := doc.Sections()[0]

	s.SetPortraitA4()
	s.SetUniformMargins(MarginTwips)

	var order []string
	for c := s.Node().FirstChild; c != nil; c = c.NextSibling {
		if c.Type == xmlquery.ElementNode {
			order = append(order, c.Data)
		}
	}
	assert.Equal(t, []string{"headerReference", "pgSz", "pgMar", "cols"}, order)
}

func TestSectionColumnCountMalformed(t *testing.T) {
	doc := mustDoc(t, `<w:sectPr><w:cols w:num="junk"/></w:sectPr>`)
	s := doc.Sections()[0]
	assert.Equal(t, 1, s.ColumnCount())
	assert.Equal(t, 1, s.NormalizeColumns())
}

func TestMidDocumentSectionsAreFound(t *testing.T) {
	body := `<w:p><w:pPr><w:sectPr><w:cols w:num="2"/></w:sectPr></w:pPr></w:p>` +
		`<w:p><w:r><w:t>x</w:t></w:r></w:p>` +
		`<w:sectPr/>`
	doc := mustDoc(t, body)
	assert.Len(t, doc.Sections(), 2)
}

func TestUnlinkHeadersAndFooters(t *testing.T) {
	parts := docParts(`<w:p><w:r><w:t>x</w:t></w:r></w:p>` +
		`<w:sectPr><w:headerReference r:id="rId1" w:type="default"/>` +
		`<w:footerReference r:id="rId2" w:type="default"/></w:sectPr>`)
	parts["word/_rels/document.xml.rels"] = []byte(`<?xml version="1.0"?>` +
		`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
		`<Relationship Id="rId1" Type="t" Target="header1.xml"/>` +
		`<Relationship Id="rId2" Type="t" Target="footer1.xml"/>` +
		`</Relationships>`)
	parts["word/header1.xml"] = []byte(`<w:hdr ` + testNamespaces + `><w:p><w:r><w:t>running head</w:t></w:r></w:p></w:hdr>`)
	parts["word/footer1.xml"] = []byte(`<w:ftr ` + testNamespaces + `><w:p><w:r><w:t>page 1</w:t></w:r></w:p></w:ftr>`)

	doc, err := FromParts(parts)
	require.NoError(t, err)

	require.Len(t, doc.HeaderFooterParagraphs(), 2)
	s := doc.Sections()[0]
	require.Len(t, s.HeaderReferences(), 1)
	require.Len(t, s.FooterReferences(), 1)

	removed := s.UnlinkHeadersAndFooters()
	assert.Equal(t, 2, removed)
	assert.Empty(t, s.HeaderReferences())
	assert.Empty(t, s.FooterReferences())
	assert.Empty(t, doc.HeaderFooterParagraphs())
}

func TestStyles(t *testing.T) {
	parts := docParts(`<w:p/>`)
	parts["word/styles.xml"] = []byte(`<w:styles ` + testNamespaces + `>` +
		`<w:style w:type="paragraph" w:styleId="Normal"><w:name w:val="Normal"/><w:pPr/></w:style>` +
		`<w:style w:type="character" w:styleId="Emphasis"><w:name w:val="Emphasis"/></w:style>` +
		`</w:styles>`)
	doc, err := FromParts(parts)
	require.NoError(t, err)

	styles := doc.Styles()
	require.Len(t, styles, 2)
	assert.Equal(t, "Normal", styles[0].ID())
	assert.True(t, styles[0].HasParagraphProps())
	assert.False(t, styles[1].HasParagraphProps())

	styles[0].SetLineSpacing(LineSpacingValue, LineSpacingRule)
	line, rule := styles[0].LineSpacing()
	assert.Equal(t, "276", line)
	assert.Equal(t, "auto", rule)

	// No paragraph facet: SetLineSpacing must be a no-op.
	styles[1].SetLineSpacing(LineSpacingValue, LineSpacingRule)
	line, _ = styles[1].LineSpacing()
	assert.Empty(t, line)
}

func TestSaveRoundTrip(t *testing.T) {
	doc := mustDoc(t, `<w:p><w:r><w:t>round trip</w:t></w:r></w:p>`)
	doc.Paragraphs()[0].SetAlignment("center")

	dir := t.TempDir()
	out := filepath.Join(dir, "out.docx")
	require.NoError(t, doc.Save(out))

	reopened, err := Open(out)
	require.NoError(t, err)
	paras := reopened.Paragraphs()
	require.Len(t, paras, 1)
	assert.Equal(t, "round trip", paras[0].Text())
	assert.Equal(t, "center", paras[0].Alignment())
}

func TestBytesIsValidArchive(t *testing.T) {
	doc := mustDoc(t, `<w:p><w:r><w:t>x</w:t></w:r></w:p>`)
	data, err := doc.Bytes()
	require.NoError(t, err)

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	names := make(map[string]bool)
	for _, f := range zr.File {
		names[f.Name] = true
	}
	assert.True(t, names["word/document.xml"])
	assert.True(t, names["[Content_Types].xml"])
}

func TestQuery(t *testing.T) {
	doc := mustDoc(t, `<w:p><w:r><w:t>a</w:t></w:r></w:p><w:p><w:r><w:t>b</w:t></w:r></w:p>`)

	nodes, err := doc.Query("//w:p")
	require.NoError(t, err)
	assert.Len(t, nodes, 2)

	first, err := doc.QueryFirst("//w:t")
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.Equal(t, "a", first.InnerText())

	_, err = doc.Query("//w:p[")
	assert.Error(t, err)
}

// join concatenates body fragments; small readability helper for fixtures.
func join(parts ...string) string {
	out := ""
	for _, p := range parts {
		out += p
	}
	return out
}
