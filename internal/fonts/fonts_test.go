package fonts

import (
	"testing"

	"github.com/ebookpress/docforge/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectLegacyUI(t *testing.T) {
	doc := testutil.NewDocument(t,
		testutil.Para("plain")+testutil.ParaWithFont("Nirmala UI", "বাংলা"), nil)
	assert.True(t, DetectLegacyUI(doc))

	doc = testutil.NewDocument(t, testutil.ParaWithFont("SutonnyMJ", "Avgvi"), nil)
	assert.False(t, DetectLegacyUI(doc))
}

func TestDetectLegacyUI_InTableCell(t *testing.T) {
	body := `<w:tbl><w:tr><w:tc>` + testutil.ParaWithFont("nirmala ui", "x") + `</w:tc></w:tr></w:tbl>`
	doc := testutil.NewDocument(t, body, nil)
	assert.True(t, DetectLegacyUI(doc))
}

func TestDetectLegacyUI_StableAfterApply(t *testing.T) {
	body := testutil.ParaWithFont("Nirmala UI", "বাংলা লেখা") +
		testutil.Para("English text")
	doc := testutil.NewDocument(t, body, nil)

	require.True(t, DetectLegacyUI(doc))
	Apply(doc, true)
	// The substitution replaced the original signal with the unified
	// face; detection must still classify the document as legacy UI.
	assert.True(t, DetectLegacyUI(doc))
}

func TestApply_RetagsVariantUnifiedFontSpelling(t *testing.T) {
	doc := testutil.NewDocument(t, testutil.ParaWithFont("kalpurush", "বাংলা"), nil)

	res := Apply(doc, true)
	assert.Equal(t, 1, res.RunsRetagged)
	assert.Equal(t, UnifiedBengaliFont, doc.Paragraphs()[0].Runs()[0].FontName())
}

func TestApply_LegacyUIMode(t *testing.T) {
	body := testutil.Para("English text") +
		testutil.Para("বাংলা লেখা") +
		testutil.Para("بسم الله")
	doc := testutil.NewDocument(t, body, nil)

	res := Apply(doc, true)
	assert.True(t, res.LegacyUIMode)
	assert.Equal(t, 3, res.RunsScanned)
	assert.Equal(t, 3, res.RunsRetagged)

	paras := doc.Paragraphs()
	assert.Equal(t, UnifiedBengaliFont, paras[0].Runs()[0].FontName())
	assert.Equal(t, UnifiedBengaliFont, paras[1].Runs()[0].FontName())
	assert.Equal(t, ArabicFont, paras[2].Runs()[0].FontName())
}

func TestApply_LegacyEncodingMode(t *testing.T) {
	body := testutil.Para("English text") +
		testutil.Para("বাংলা লেখা") +
		testutil.Para("بسم الله")
	doc := testutil.NewDocument(t, body, nil)

	Apply(doc, false)

	paras := doc.Paragraphs()
	assert.Equal(t, SerifLatinFont, paras[0].Runs()[0].FontName())
	assert.Equal(t, LegacyBengaliFont, paras[1].Runs()[0].FontName())
	assert.Equal(t, ArabicFont, paras[2].Runs()[0].FontName())
}

func TestApply_SkipsRunsAlreadyOnTarget(t *testing.T) {
	body := testutil.ParaWithFont("Times New Roman", "already fine") +
		testutil.ParaWithFont("traditionalarabic", "الكتاب")
	doc := testutil.NewDocument(t, body, nil)

	res := Apply(doc, false)
	assert.Equal(t, 2, res.RunsScanned)
	assert.Equal(t, 0, res.RunsRetagged)
	// Case/space-insensitive match leaves the original spelling alone.
	assert.Equal(t, "traditionalarabic", doc.Paragraphs()[1].Runs()[0].FontName())
}

func TestApply_EmptyRunsUntouched(t *testing.T) {
	doc := testutil.NewDocument(t, `<w:p><w:r><w:t></w:t></w:r></w:p>`, nil)
	res := Apply(doc, false)
	assert.Equal(t, 0, res.RunsScanned)
	assert.Equal(t, "", doc.Paragraphs()[0].Runs()[0].FontName())
}

func TestApply_IsIdempotent(t *testing.T) {
	body := testutil.Para("English text") + testutil.Para("বাংলা লেখা")
	doc := testutil.NewDocument(t, body, nil)

	first := Apply(doc, true)
	require.Equal(t, 2, first.RunsRetagged)
	second := Apply(doc, true)
	assert.Equal(t, 0, second.RunsRetagged)
}
