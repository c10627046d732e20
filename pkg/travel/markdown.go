package travel

import (
	"regexp"
	"strings"
)

// Shared markdown scanning helpers. Go's regexp has no lookahead, so the
// "section runs until the next heading" contract is expressed by locating
// the heading and slicing up to the terminator instead.

var (
	openTaskRe    = regexp.MustCompile(`- \[ \] `)
	checkedTaskRe = regexp.MustCompile(`(?i)- \[x\] `)
	taskLineRe    = regexp.MustCompile(`^-\s*\[([ xX])\]\s*(.+)`)
)

// section returns the slice of content from the heading matched by
// headingRe up to (excluding) the next line starting with any terminator,
// or the end of the document. Empty string when the heading is absent.
func section(content string, headingRe *regexp.Regexp, terminators ...string) string {
	loc := headingRe.FindStringIndex(content)
	if loc == nil {
		return ""
	}
	rest := content[loc[0]:]
	end := len(rest)
	for _, term := range terminators {
		if idx := strings.Index(rest[1:], "\n"+term); idx >= 0 && idx+1 < end {
			end = idx + 1
		}
	}
	return rest[:end]
}

// countTasks counts GitHub-style checklist items in a markdown body.
func countTasks(content string) (checked, total int) {
	open := len(openTaskRe.FindAllString(content, -1))
	checked = len(checkedTaskRe.FindAllString(content, -1))
	return checked, open + checked
}

// tableRows extracts data rows from a markdown table section, skipping the
// header and separator lines. Cells keep their inner text, trimmed.
func tableRows(tableSection string) [][]string {
	var lines []string
	for _, l := range strings.Split(tableSection, "\n") {
		if strings.HasPrefix(l, "|") {
			lines = append(lines, l)
		}
	}

	var rows [][]string
	for i := 2; i < len(lines); i++ {
		parts := strings.Split(lines[i], "|")
		if len(parts) < 3 {
			continue
		}
		cells := parts[1 : len(parts)-1]
		for j := range cells {
			cells[j] = strings.TrimSpace(cells[j])
		}
		rows = append(rows, cells)
	}
	return rows
}

// stripBold removes markdown emphasis markers.
func stripBold(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, "**", ""))
}
