package docx

import (
	"archive/zip"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const contentTypes = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="xml" ContentType="application/xml"/>
</Types>`

func para(runs ...string) string {
	var b strings.Builder
	b.WriteString("<w:p>")
	for _, r := range runs {
		b.WriteString(`<w:r><w:t xml:space="preserve">` + r + `</w:t></w:r>`)
	}
	b.WriteString("</w:p>")
	return b.String()
}

func body(paras ...string) string {
	return `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
		strings.Join(paras, "") + `</w:body></w:document>`
}

func writeDocx(t *testing.T, parts map[string]string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "doc.docx")
	f, err := os.Create(path)
	require.NoError(t, err)
	w := zip.NewWriter(f)
	for name, data := range parts {
		fw, err := w.Create(name)
		require.NoError(t, err)
		_, err = fw.Write([]byte(data))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	require.NoError(t, f.Close())
	return path
}

func simpleDocx(t *testing.T, documentXML string) string {
	t.Helper()
	return writeDocx(t, map[string]string{
		"[Content_Types].xml": contentTypes,
		"word/document.xml":   documentXML,
	})
}

func TestOpenRejectsNonDocx(t *testing.T) {
	path := writeDocx(t, map[string]string{"[Content_Types].xml": contentTypes})
	_, err := Open(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "word/document.xml")
}

func TestParagraphTextExtraction(t *testing.T) {
	doc, err := Open(simpleDocx(t, body(
		para("IN THE SUPERIOR COURT"),
		para("Plaintiff: ", "{{firstname}} {{lastname}}"),
	)))
	require.NoError(t, err)

	assert.Equal(t, []string{
		"IN THE SUPERIOR COURT",
		"Plaintiff: {{firstname}} {{lastname}}",
	}, doc.Paragraphs())
	assert.Contains(t, doc.Text(), "{{firstname}}")
}

func TestHeadersAndFootersScanned(t *testing.T) {
	doc, err := Open(writeDocx(t, map[string]string{
		"[Content_Types].xml": contentTypes,
		"word/document.xml":   body(para("body text")),
		"word/header1.xml": `<w:hdr xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">` +
			para("Matter {{matterid}}") + `</w:hdr>`,
		"word/footer1.xml": `<w:ftr xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">` +
			para("Page footer") + `</w:ftr>`,
	}))
	require.NoError(t, err)

	text := doc.Text()
	assert.Contains(t, text, "Matter {{matterid}}")
	assert.Contains(t, text, "Page footer")

	n := doc.Replace(map[string]string{"{{matterid}}": "24-CV-001"})
	assert.Equal(t, 1, n)
	assert.Contains(t, doc.Text(), "Matter 24-CV-001")
}

func TestReplaceSingleRun(t *testing.T) {
	doc, err := Open(simpleDocx(t, body(para("Venue: {{venue}}."))))
	require.NoError(t, err)

	n := doc.Replace(map[string]string{"{{venue}}": "Kings County"})
	assert.Equal(t, 1, n)
	assert.Equal(t, []string{"Venue: Kings County."}, doc.Paragraphs())
}

func TestReplaceAcrossSplitRuns(t *testing.T) {
	// Word fragments placeholders across runs when formatting or
	// spell-check boundaries fall inside them.
	doc, err := Open(simpleDocx(t, body(para("Venue: {{ve", "nue}}", " is proper."))))
	require.NoError(t, err)

	n := doc.Replace(map[string]string{"{{venue}}": "Kings County"})
	assert.Equal(t, 1, n)
	assert.Equal(t, []string{"Venue: Kings County is proper."}, doc.Paragraphs())
}

func TestReplaceRepeatedPlaceholder(t *testing.T) {
	doc, err := Open(simpleDocx(t, body(
		para("{{lastname}} moves this Court."),
		para("Counsel for {{lastname}}"),
	)))
	require.NoError(t, err)

	n := doc.Replace(map[string]string{"{{lastname}}": "Doe"})
	assert.Equal(t, 2, n)
	assert.Equal(t, []string{"Doe moves this Court.", "Counsel for Doe"}, doc.Paragraphs())
}

func TestReplaceFirstTouchesOneOccurrence(t *testing.T) {
	doc, err := Open(simpleDocx(t, body(
		para("Signed on {@date@}."),
		para("Filed on {@date@}."),
	)))
	require.NoError(t, err)

	require.True(t, doc.ReplaceFirst("{@date@}", "June 1, 2026"))
	require.True(t, doc.ReplaceFirst("{@date@}", "June 2, 2026"))
	assert.False(t, doc.ReplaceFirst("{@date@}", "June 3, 2026"))

	assert.Equal(t, []string{"Signed on June 1, 2026.", "Filed on June 2, 2026."}, doc.Paragraphs())
}

func TestMultiLineValueSplitsParagraph(t *testing.T) {
	src := body(`<w:p><w:pPr><w:pStyle w:val="ListParagraph"/></w:pPr>` +
		`<w:r><w:rPr><w:b/></w:rPr><w:t><<allegations>></w:t></w:r></w:p>`)
	doc, err := Open(simpleDocx(t, src))
	require.NoError(t, err)

	n := doc.Replace(map[string]string{"<<allegations>>": "1. First count.\n2. Second count."})
	assert.Equal(t, 1, n)
	assert.Equal(t, []string{"1. First count.", "2. Second count."}, doc.Paragraphs())

	// Sibling paragraphs inherit the paragraph style and run formatting.
	raw := string(doc.parts["word/document.xml"])
	assert.Equal(t, 2, strings.Count(raw, `<w:pStyle w:val="ListParagraph"/>`))
	assert.Equal(t, 2, strings.Count(raw, "<w:b/>"))
}

func TestReplaceEscapesMarkup(t *testing.T) {
	doc, err := Open(simpleDocx(t, body(para("Firm: {{firmname}}"))))
	require.NoError(t, err)

	doc.Replace(map[string]string{"{{firmname}}": "Smith & Jones <LLP>"})
	assert.Equal(t, []string{"Firm: Smith & Jones <LLP>"}, doc.Paragraphs())
	assert.NotContains(t, string(doc.parts["word/document.xml"]), "& Jones <LLP>")
}

func TestNoMatchLeavesPartUntouched(t *testing.T) {
	src := body(para("No placeholders here."))
	doc, err := Open(simpleDocx(t, src))
	require.NoError(t, err)

	n := doc.Replace(map[string]string{"{{venue}}": "x"})
	assert.Equal(t, 0, n)
	assert.Equal(t, src, string(doc.parts["word/document.xml"]))
}

func TestSaveRoundTrip(t *testing.T) {
	doc, err := Open(simpleDocx(t, body(para("Venue: {{venue}}."))))
	require.NoError(t, err)
	doc.Replace(map[string]string{"{{venue}}": "Kings County"})

	out := filepath.Join(t.TempDir(), "out", "doc.docx")
	require.NoError(t, doc.SaveAs(out))

	reopened, err := Open(out)
	require.NoError(t, err)
	assert.Equal(t, []string{"Venue: Kings County."}, reopened.Paragraphs())
	assert.Equal(t, doc.order, reopened.order)
}
