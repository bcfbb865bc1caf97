package pipeline

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ebookpress/docforge/internal/docx"
	"github.com/ebookpress/docforge/internal/fonts"
	"github.com/ebookpress/docforge/internal/testutil"
)

func TestDefaultConfig_AllStagesEnabled(t *testing.T) {
	cfg := DefaultConfig()
	assert.True(t, cfg.Fonts)
	assert.True(t, cfg.Scrub)
	assert.True(t, cfg.Geometry)
	assert.True(t, cfg.Furniture)
	assert.True(t, cfg.Spacing)
	assert.True(t, cfg.Images)
}

func TestBuilder_Toggles(t *testing.T) {
	cfg := NewBuilder().
		WithFonts(false).
		WithScrub(false).
		WithImages(false).
		Config()

	assert.False(t, cfg.Fonts)
	assert.False(t, cfg.Scrub)
	assert.False(t, cfg.Images)
	assert.True(t, cfg.Geometry)
	assert.True(t, cfg.Furniture)
	assert.True(t, cfg.Spacing)
}

func TestBuilder_ValidateRejectsEmptyPipeline(t *testing.T) {
	_, err := NewBuilder().WithConfig(Config{}).Build()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no pipeline stages")
}

const fullBody = `<w:p><w:r><w:rPr><w:rFonts w:ascii="Nirmala UI" w:hAnsi="Nirmala UI" w:cs="Nirmala UI"/></w:rPr><w:t>বাংলা লেখা</w:t></w:r></w:p>` +
	`<w:p><w:r><w:t>মূল্যঃ ১৫০ টাকা মাত্র</w:t></w:r></w:p>` +
	`<w:p><w:r><w:t>ফোন: 01712-345678</w:t></w:r></w:p>` +
	`<w:p><w:r><w:drawing><wp:inline/></w:drawing></w:r></w:p>` +
	`<w:sectPr>` +
	`<w:pgSz w:w="16838" w:h="11906" w:orient="landscape"/>` +
	`<w:cols w:num="2" w:space="708"/>` +
	`</w:sectPr>`

func TestProcess_RunsAllStages(t *testing.T) {
	doc := testutil.NewDocument(t, fullBody, nil)

	p, err := NewBuilder().Build()
	require.NoError(t, err)

	res := p.Process(doc)

	assert.True(t, res.LegacyUIMode)
	require.NotNil(t, res.Fonts)
	assert.True(t, res.Fonts.LegacyUIMode)
	assert.Positive(t, res.Fonts.RunsRetagged)

	require.NotNil(t, res.Scrub)
	assert.Equal(t, 1, res.Scrub.ParagraphsDropped)
	assert.Equal(t, 1, res.Scrub.RunsEdited)

	require.NotNil(t, res.Geometry)
	assert.Equal(t, 1, res.Geometry.Sections)
	assert.Equal(t, 1, res.Geometry.ColumnsCollapsed)

	require.NotNil(t, res.Furniture)
	require.NotNil(t, res.Spacing)
	assert.Positive(t, res.Spacing.Paragraphs)

	require.NotNil(t, res.Images)
	assert.Equal(t, 1, res.Images.Images)

	// Document state reflects the stages.
	paras := doc.AllParagraphs()
	require.Len(t, paras, 3)
	runs := paras[0].Runs()
	require.NotEmpty(t, runs)
	assert.Equal(t, fonts.UnifiedBengaliFont, runs[0].FontName())
	sections := doc.Sections()
	require.Len(t, sections, 1)
	assert.Equal(t, "portrait", sections[0].Orientation())
	assert.Equal(t, 1, sections[0].ColumnCount())
}

func TestProcess_DisabledStagesLeaveNilResults(t *testing.T) {
	doc := testutil.NewDocument(t, fullBody, nil)

	p, err := NewBuilder().
		WithFonts(false).
		WithScrub(false).
		WithFurniture(false).
		WithSpacing(false).
		WithImages(false).
		Build()
	require.NoError(t, err)

	res := p.Process(doc)

	assert.Nil(t, res.Fonts)
	assert.Nil(t, res.Scrub)
	assert.NotNil(t, res.Geometry)
	assert.Nil(t, res.Furniture)
	assert.Nil(t, res.Spacing)
	assert.Nil(t, res.Images)

	// Detection still runs even with the font stage disabled.
	assert.True(t, res.LegacyUIMode)

	// Scrub disabled: the price paragraph survives.
	assert.Len(t, doc.AllParagraphs(), 4)
}

func TestProcessFile_WritesOutputAndPreservesInput(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "in.docx")
	output := filepath.Join(dir, "out", "in.docx")

	doc := testutil.NewDocument(t, fullBody, nil)
	require.NoError(t, doc.Save(input))
	original, err := os.ReadFile(input)
	require.NoError(t, err)

	p, err := NewBuilder().Build()
	require.NoError(t, err)

	res, err := p.ProcessFile(input, output)
	require.NoError(t, err)
	assert.Equal(t, input, res.Input)
	assert.Equal(t, output, res.Output)

	// The input is untouched byte for byte.
	after, err := os.ReadFile(input)
	require.NoError(t, err)
	assert.Equal(t, original, after)

	// The output reopens as a normalized document.
	out, err := docx.Open(output)
	require.NoError(t, err)
	sections := out.Sections()
	require.Len(t, sections, 1)
	assert.Equal(t, "portrait", sections[0].Orientation())
	assert.Len(t, out.AllParagraphs(), 3)

	// No staging temp files are left behind.
	entries, err := os.ReadDir(filepath.Dir(output))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "in.docx", entries[0].Name())
}

func TestProcessFile_SecondPassIsFixedPoint(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "in.docx")
	first := filepath.Join(dir, "first.docx")
	second := filepath.Join(dir, "second.docx")

	doc := testutil.NewDocument(t, fullBody, nil)
	require.NoError(t, doc.Save(input))

	p, err := NewBuilder().Build()
	require.NoError(t, err)

	firstRes, err := p.ProcessFile(input, first)
	require.NoError(t, err)
	require.True(t, firstRes.LegacyUIMode)

	secondRes, err := p.ProcessFile(first, second)
	require.NoError(t, err)

	// The classification must survive its own substitution output, and
	// rerunning every stage must not change the document further.
	assert.True(t, secondRes.LegacyUIMode)
	assert.Equal(t, 0, secondRes.Fonts.RunsRetagged)

	a, err := docx.Open(first)
	require.NoError(t, err)
	b, err := docx.Open(second)
	require.NoError(t, err)
	assert.Equal(t, a.DocumentRoot().OutputXML(true), b.DocumentRoot().OutputXML(true))
}

func TestProcessFile_RejectsNonDocxInput(t *testing.T) {
	p, err := NewBuilder().Build()
	require.NoError(t, err)

	_, err = p.ProcessFile("document.pdf", "out.docx")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported input file type")
}

func TestProcessFile_MissingInputFails(t *testing.T) {
	dir := t.TempDir()
	p, err := NewBuilder().Build()
	require.NoError(t, err)

	_, err = p.ProcessFile(filepath.Join(dir, "absent.docx"), filepath.Join(dir, "out.docx"))
	require.Error(t, err)
}

func TestResult_SummaryAndJSON(t *testing.T) {
	doc := testutil.NewDocument(t, fullBody, nil)
	p, err := NewBuilder().Build()
	require.NoError(t, err)

	res := p.Process(doc)
	res.Input = "in.docx"
	res.Output = "out.docx"

	summary := res.Summary()
	assert.Contains(t, summary, "in.docx -> out.docx")
	assert.Contains(t, summary, "legacy UI mode: true")
	assert.Contains(t, summary, "scrub:")

	js, err := ToJSON(res)
	require.NoError(t, err)
	assert.Contains(t, js, `"legacy_ui_mode": true`)
	assert.Contains(t, js, `"paragraphs_dropped": 1`)

	_, err = ToJSON(nil)
	require.Error(t, err)
}
