package edm

import "strings"

// RepairXML post-processes serialized output for the consuming parser,
// which is far pickier than generic XML tooling: the exact two-line
// preamble, one element per line, no duplicate declarations and no
// leftover wrapper tags. Explicit string scans only; the inputs are
// trusted serializer output, not arbitrary text.
func RepairXML(s string) string {
	s = stripProcessingInstructions(s)
	s = stripWrapperTags(s)
	s = breakElementLines(s)
	s = strings.TrimLeft(s, "\r\n")
	s = strings.TrimRight(s, " \t\r\n")
	return XMLDeclaration + "\n" + DataServicesPI + "\n" + s + "\n"
}

// stripProcessingInstructions removes every <?...?> block, including
// any XML declaration or DataServices instruction the serializer or
// template carried. The canonical preamble is re-added afterwards.
func stripProcessingInstructions(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for {
		start := strings.Index(s, "<?")
		if start < 0 {
			b.WriteString(s)
			break
		}
		end := strings.Index(s[start:], "?>")
		if end < 0 {
			b.WriteString(s)
			break
		}
		b.WriteString(s[:start])
		s = s[start+end+len("?>"):]
		// swallow the newline the removed instruction sat on
		s = strings.TrimPrefix(strings.TrimPrefix(s, "\r\n"), "\n")
	}
	return b.String()
}

// stripWrapperTags drops synthetic <root> wrapper remnants that some
// tampered templates leave behind in serialized form.
func stripWrapperTags(s string) string {
	for _, tag := range []string{"<root>", "</root>", "<root/>"} {
		s = strings.ReplaceAll(s, tag, "")
	}
	return s
}

// breakElementLines puts every element on its own line by inserting a
// newline wherever one tag ends and the next begins.
func breakElementLines(s string) string {
	var b strings.Builder
	b.Grow(len(s) + len(s)/16)
	for i := 0; i < len(s); i++ {
		b.WriteByte(s[i])
		if s[i] == '>' && i+1 < len(s) && s[i+1] == '<' {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
