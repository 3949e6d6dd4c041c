// Package docx is the document boundary. It reads and writes .docx
// packages through archive/zip, touching only the text parts
// (word/document.xml plus headers and footers) and carrying every other
// part through byte for byte. Placeholder replacement works on whole
// paragraphs so a placeholder split across formatted runs is still
// found.
package docx

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"path"
	"strings"

	"go.uber.org/zap"

	"github.com/chrisgosselin92/docgenautomation/internal/logging"
)

// Document is one loaded .docx package. Parts are kept in their original
// archive order so an untouched document writes back structurally
// identical.
type Document struct {
	path  string
	order []string
	parts map[string][]byte
	log   *zap.SugaredLogger
}

// Open loads the package at path into memory.
func Open(docPath string) (*Document, error) {
	r, err := zip.OpenReader(docPath)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", docPath, err)
	}
	defer r.Close()

	d := &Document{
		path:  docPath,
		parts: map[string][]byte{},
		log:   logging.Get(logging.CategoryDocument),
	}
	for _, f := range r.File {
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("read part %s: %w", f.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("read part %s: %w", f.Name, err)
		}
		d.order = append(d.order, f.Name)
		d.parts[f.Name] = data
	}
	if _, ok := d.parts["word/document.xml"]; !ok {
		return nil, fmt.Errorf("%s: not a .docx package (no word/document.xml)", docPath)
	}
	return d, nil
}

// textParts lists the part names that carry document text, body first.
func (d *Document) textParts() []string {
	var names []string
	for _, name := range d.order {
		if name == "word/document.xml" {
			names = append([]string{name}, names...)
			continue
		}
		base := path.Base(name)
		if strings.HasPrefix(name, "word/") &&
			(strings.HasPrefix(base, "header") || strings.HasPrefix(base, "footer")) &&
			strings.HasSuffix(base, ".xml") {
			names = append(names, name)
		}
	}
	return names
}

// Text returns the plain text of all text parts, one line per paragraph.
// This is what the tokenizer scans.
func (d *Document) Text() string {
	var b strings.Builder
	for _, p := range d.Paragraphs() {
		b.WriteString(p)
		b.WriteByte('\n')
	}
	return b.String()
}

// Paragraphs returns the plain text of every paragraph across body,
// tables, headers, and footers, in part order.
func (d *Document) Paragraphs() []string {
	var out []string
	for _, name := range d.textParts() {
		for _, span := range paragraphSpans(d.parts[name]) {
			out = append(out, paragraphText(d.parts[name][span.start:span.end]))
		}
	}
	return out
}

// Replace substitutes every occurrence of each placeholder with its
// value in all text parts, returning the number of substitutions made.
// A value containing newlines splits the paragraph into siblings that
// inherit the paragraph's properties.
func (d *Document) Replace(values map[string]string) int {
	if len(values) == 0 {
		return 0
	}
	total := 0
	for _, name := range d.textParts() {
		rewritten, n := replaceInPart(d.parts[name], values, -1)
		if n > 0 {
			d.parts[name] = rewritten
			total += n
		}
	}
	d.log.Debugw("replacements applied", "path", d.path, "count", total)
	return total
}

// ReplaceFirst substitutes only the first occurrence of key across the
// text parts. Used for placeholders that are answered per occurrence.
func (d *Document) ReplaceFirst(key, value string) bool {
	for _, name := range d.textParts() {
		rewritten, n := replaceInPart(d.parts[name], map[string]string{key: value}, 1)
		if n > 0 {
			d.parts[name] = rewritten
			return true
		}
	}
	return false
}

// SaveAs writes the package to outPath, carrying every part through in
// its original order.
func (d *Document) SaveAs(outPath string) error {
	if err := os.MkdirAll(path.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for _, name := range d.order {
		fw, err := w.Create(name)
		if err != nil {
			return fmt.Errorf("write part %s: %w", name, err)
		}
		if _, err := fw.Write(d.parts[name]); err != nil {
			return fmt.Errorf("write part %s: %w", name, err)
		}
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("finalize package: %w", err)
	}
	if err := os.WriteFile(outPath, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", outPath, err)
	}
	d.log.Infow("document written", "path", outPath)
	return nil
}
