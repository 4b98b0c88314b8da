package diff

import (
	"regexp"
	"strconv"
	"strings"
)

// LineKind tags a line inside a hunk.
type LineKind int

const (
	LineContext LineKind = iota
	LineAdded
	LineRemoved
	LineBlank
)

// HunkLine is one tagged line of a hunk with the text after its marker.
type HunkLine struct {
	Kind LineKind
	Text string
}

// Hunk is one contiguous change region anchored at OriginalStart (1-based).
type Hunk struct {
	OriginalStart int
	Lines         []HunkLine
}

// Patch is the parsed form of a diff. When no hunk header was found,
// Fallback holds the added lines that make up the whole new file.
type Patch struct {
	Hunks    []Hunk
	Fallback []string
}

var hunkHeader = regexp.MustCompile(`^@@ -(\d+)(?:,(\d+))? \+(\d+)(?:,(\d+))? @@`)

// Parse scans diff text into hunks. File headers are skipped, unknown lines
// inside a hunk are ignored.
func Parse(text string) (Patch, error) {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	rawLines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")

	var patch Patch
	var current *Hunk
	var fallback []string
	for _, line := range rawLines {
		if strings.HasPrefix(line, "+++") || strings.HasPrefix(line, "---") {
			continue
		}
		if strings.HasPrefix(line, "@@") {
			start, err := parseHunkStart(line)
			if err != nil {
				return Patch{}, err
			}
			patch.Hunks = append(patch.Hunks, Hunk{OriginalStart: start})
			current = &patch.Hunks[len(patch.Hunks)-1]
			continue
		}
		if current == nil {
			if strings.HasPrefix(line, "+") {
				fallback = append(fallback, line[1:])
			}
			continue
		}
		switch {
		case line == "":
			current.Lines = append(current.Lines, HunkLine{Kind: LineBlank})
		case line[0] == '+':
			current.Lines = append(current.Lines, HunkLine{Kind: LineAdded, Text: line[1:]})
		case line[0] == '-':
			current.Lines = append(current.Lines, HunkLine{Kind: LineRemoved, Text: line[1:]})
		case line[0] == ' ':
			current.Lines = append(current.Lines, HunkLine{Kind: LineContext, Text: line[1:]})
		}
	}

	if len(patch.Hunks) > 0 {
		return patch, nil
	}
	if len(fallback) == 0 {
		return Patch{}, &PatchError{Kind: UnparseableDiff, Reason: "no hunk header and no added lines"}
	}
	patch.Fallback = fallback
	return patch, nil
}

// parseHunkStart extracts the original-side start line from a hunk header.
func parseHunkStart(line string) (int, error) {
	match := hunkHeader.FindStringSubmatch(line)
	if match == nil {
		return 0, &PatchError{Kind: MalformedHunk, Reason: "invalid hunk header " + strconv.Quote(line)}
	}
	start, err := strconv.Atoi(match[1])
	if err != nil {
		return 0, &PatchError{Kind: MalformedHunk, Reason: "invalid hunk start " + strconv.Quote(match[1])}
	}
	return start, nil
}
