package docx

import (
	"bytes"
	"html"
	"regexp"
	"sort"
	"strings"
)

// Word never nests w:p or w:r elements, so non-greedy spans are safe.
var (
	paraRe     = regexp.MustCompile(`(?s)<w:p(?: [^>]*)?>.*?</w:p>`)
	pPrRe      = regexp.MustCompile(`(?s)<w:pPr(?: [^>]*)?>.*?</w:pPr>`)
	rPrRe      = regexp.MustCompile(`(?s)<w:rPr(?: [^>]*)?>.*?</w:rPr>`)
	textRe     = regexp.MustCompile(`(?s)<w:t(?: [^>]*)?>.*?</w:t>|<w:t(?: [^>]*)?/>`)
	escapeRepl = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
)

type span struct{ start, end int }

func paragraphSpans(part []byte) []span {
	idx := paraRe.FindAllIndex(part, -1)
	spans := make([]span, len(idx))
	for i, m := range idx {
		spans[i] = span{m[0], m[1]}
	}
	return spans
}

// textNode is one w:t element inside a paragraph, located by its byte
// span within the paragraph XML.
type textNode struct {
	span    span
	content string
}

func textNodes(para []byte) []textNode {
	idx := textRe.FindAllIndex(para, -1)
	nodes := make([]textNode, len(idx))
	for i, m := range idx {
		raw := para[m[0]:m[1]]
		content := ""
		if !bytes.HasSuffix(raw, []byte("/>")) {
			open := bytes.IndexByte(raw, '>')
			content = html.UnescapeString(string(raw[open+1 : len(raw)-len("</w:t>")]))
		}
		nodes[i] = textNode{span: span{m[0], m[1]}, content: content}
	}
	return nodes
}

func paragraphText(para []byte) string {
	var b strings.Builder
	for _, n := range textNodes(para) {
		b.WriteString(n.content)
	}
	return b.String()
}

// replaceInPart rewrites every paragraph of one XML part, leaving
// paragraphs without a match byte-identical. A non-negative limit caps
// the number of substitutions.
func replaceInPart(part []byte, values map[string]string, limit int) ([]byte, int) {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	// Longest first so a placeholder is never matched inside another.
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})

	var out bytes.Buffer
	total := 0
	prev := 0
	for _, sp := range paragraphSpans(part) {
		out.Write(part[prev:sp.start])
		prev = sp.end

		para := part[sp.start:sp.end]
		budget := -1
		if limit >= 0 {
			budget = limit - total
		}
		rewritten, n := replaceInParagraph(para, keys, values, budget)
		if n == 0 {
			out.Write(para)
			continue
		}
		out.Write(rewritten)
		total += n
	}
	out.Write(part[prev:])
	if total == 0 {
		return part, 0
	}
	return out.Bytes(), total
}

// replaceInParagraph substitutes across the paragraph's merged run text,
// so placeholders split over formatted runs are found. The replacement
// lands in the first run the placeholder touches; later covered runs
// keep only their uncovered tail.
func replaceInParagraph(para []byte, keys []string, values map[string]string, budget int) ([]byte, int) {
	if budget == 0 {
		return para, 0
	}
	nodes := textNodes(para)
	if len(nodes) == 0 {
		return para, 0
	}

	contents := make([]string, len(nodes))
	original := make([]string, len(nodes))
	for i, n := range nodes {
		contents[i] = n.content
		original[i] = n.content
	}

	count := 0
	for _, key := range keys {
		max := -1
		if budget >= 0 {
			max = budget - count
		}
		count += replaceAcross(contents, key, values[key], max)
	}
	if count == 0 {
		return para, 0
	}

	if strings.Contains(strings.Join(contents, ""), "\n") {
		return splitParagraph(para, strings.Join(contents, "")), count
	}

	var out bytes.Buffer
	prev := 0
	for i, n := range nodes {
		out.Write(para[prev:n.span.start])
		prev = n.span.end
		if contents[i] == original[i] {
			out.Write(para[n.span.start:n.span.end])
			continue
		}
		out.WriteString(`<w:t xml:space="preserve">`)
		out.WriteString(escapeRepl.Replace(contents[i]))
		out.WriteString(`</w:t>`)
	}
	out.Write(para[prev:])
	return out.Bytes(), count
}

// replaceAcross substitutes old with repl in the concatenation of
// contents, rewriting the affected elements in place. The scan resumes
// after each replacement so a value containing its own placeholder
// cannot loop.
func replaceAcross(contents []string, old, repl string, max int) int {
	if old == "" {
		return 0
	}
	count := 0
	from := 0
	for max < 0 || count < max {
		merged := strings.Join(contents, "")
		if from > len(merged) {
			break
		}
		idx := strings.Index(merged[from:], old)
		if idx < 0 {
			break
		}
		idx += from
		spliceNodes(contents, idx, len(old), repl)
		count++
		from = idx + len(repl)
	}
	return count
}

func spliceNodes(contents []string, idx, oldLen int, repl string) {
	end := idx + oldLen
	pos := 0
	replaced := false
	for i := range contents {
		s, e := pos, pos+len(contents[i])
		pos = e
		if e <= idx || s >= end {
			continue
		}
		head := ""
		if idx > s {
			head = contents[i][:idx-s]
		}
		tail := ""
		if end < e {
			tail = contents[i][end-s:]
		}
		if !replaced {
			contents[i] = head + repl + tail
			replaced = true
		} else {
			contents[i] = head + tail
		}
	}
}

// splitParagraph renders a multi-line value as sibling paragraphs. Each
// line inherits the source paragraph's properties and the first run's
// formatting; Word cannot represent a newline inside one w:t.
func splitParagraph(para []byte, text string) []byte {
	openEnd := bytes.IndexByte(para, '>') + 1
	openTag := para[:openEnd]

	var pPr, rPr []byte
	if m := pPrRe.FindIndex(para); m != nil {
		pPr = para[m[0]:m[1]]
	}
	// The first run's rPr, not the paragraph mark's inside pPr.
	searchFrom := openEnd + len(pPr)
	if m := rPrRe.FindIndex(para[searchFrom:]); m != nil {
		rPr = para[searchFrom+m[0] : searchFrom+m[1]]
	}

	var out bytes.Buffer
	for _, line := range strings.Split(text, "\n") {
		out.Write(openTag)
		out.Write(pPr)
		out.WriteString("<w:r>")
		out.Write(rPr)
		out.WriteString(`<w:t xml:space="preserve">`)
		out.WriteString(escapeRepl.Replace(line))
		out.WriteString(`</w:t></w:r></w:p>`)
	}
	return out.Bytes()
}
