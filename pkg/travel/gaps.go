package travel

import (
	"regexp"
	"strings"

	"github.com/mklimuk/trip-pilot/pkg/vault"
)

// GapItem is one open question from the gaps note, attributed to a
// destination section and a priority bucket.
type GapItem struct {
	Destination string
	Priority    string // urgent, before-booking, nice-to-have
	Question    string
	Checked     bool
}

// GapsParser reads the single questions note, organized as
// `### Destination` sections with priority sub-headings over checklists.
type GapsParser struct{}

var (
	gapSectionSplitRe = regexp.MustCompile(`(?m)^###\s+`)
	gapHeaderRe       = regexp.MustCompile(`^([^\n(]+)`)
	urgentWordRe      = regexp.MustCompile(`(?i)urgent`)
	beforeBookingRe   = regexp.MustCompile(`(?i)before\s*booking`)
	niceToHaveRe      = regexp.MustCompile(`(?i)nice\s*to`)
)

// Parse reads the gaps note at path. A missing note yields no items.
func (p *GapsParser) Parse(path string) ([]GapItem, error) {
	note, err := vault.ReadNote(path)
	if err != nil {
		return nil, nil
	}
	return p.ParseContent(note.Content), nil
}

// ParseContent walks destination sections, tracking the current priority
// bucket line by line; every checklist item becomes a GapItem.
func (p *GapsParser) ParseContent(content string) []GapItem {
	var gaps []GapItem

	sections := gapSectionSplitRe.Split(content, -1)
	for i, sec := range sections {
		if i == 0 {
			continue // preamble before the first destination heading
		}
		headerMatch := gapHeaderRe.FindStringSubmatch(sec)
		if headerMatch == nil {
			continue
		}
		destination := strings.TrimSpace(headerMatch[1])
		priority := "nice-to-have"

		for _, line := range strings.Split(sec, "\n") {
			if !strings.HasPrefix(line, "-") {
				switch {
				case urgentWordRe.MatchString(line):
					priority = "urgent"
				case beforeBookingRe.MatchString(line):
					priority = "before-booking"
				case niceToHaveRe.MatchString(line):
					priority = "nice-to-have"
				}
			}

			if m := taskLineRe.FindStringSubmatch(line); m != nil {
				gaps = append(gaps, GapItem{
					Destination: destination,
					Priority:    priority,
					Question:    strings.TrimSpace(m[2]),
					Checked:     strings.EqualFold(m[1], "x"),
				})
			}
		}
	}

	return gaps
}
