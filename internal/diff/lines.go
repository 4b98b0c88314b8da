package diff

import "strings"

// Document is a file split into lines plus the terminators it used.
type Document struct {
	Lines           []string
	TrailingNewline bool
	// CRLF is set when most lines of the source ended with "\r\n".
	CRLF bool
}

// SplitLines splits content into lines. CRLF terminators are stripped and
// remembered so JoinLines writes them back.
// A trailing newline does not produce an extra empty line.
func SplitLines(content string) Document {
	if content == "" {
		return Document{TrailingNewline: true}
	}
	crlfCount := strings.Count(content, "\r\n")
	crlf := crlfCount > 0 && crlfCount*2 >= strings.Count(content, "\n")
	content = strings.ReplaceAll(content, "\r\n", "\n")
	trailing := strings.HasSuffix(content, "\n")
	content = strings.TrimSuffix(content, "\n")
	return Document{Lines: strings.Split(content, "\n"), TrailingNewline: trailing, CRLF: crlf}
}

// JoinLines renders lines back into file content with the document's
// terminator, restoring the trailing newline only when the source had one.
func JoinLines(doc Document) string {
	if len(doc.Lines) == 0 {
		return ""
	}
	sep := "\n"
	if doc.CRLF {
		sep = "\r\n"
	}
	out := strings.Join(doc.Lines, sep)
	if doc.TrailingNewline {
		out += sep
	}
	return out
}
