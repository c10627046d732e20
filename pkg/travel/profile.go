package travel

import (
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/mklimuk/trip-pilot/pkg/vault"
)

// ProfileParser reads the travel-profile note: the "BEST Windows" table,
// the optional "TOP PICK" call-out, and the "Important Dates" table.
type ProfileParser struct {
	PlanningYear int
	Now          func() time.Time
}

var (
	bestWindowsRe    = regexp.MustCompile(`(?i)### BEST Windows`)
	topPickRe        = regexp.MustCompile(`(?i)### ⭐ TOP PICK:([^\n]+)`)
	topPickDatesRe   = regexp.MustCompile(`(?i)\*\*Dates\*\*[:\s|]+([^\n|]+)`)
	topPickDurRe     = regexp.MustCompile(`(?i)\*\*Duration\*\*[:\s|]+([^\n|]+)`)
	topPickPTORe     = regexp.MustCompile(`(?i)\*\*PTO Required\*\*[:\s|]+([^\n|]+)`)
	topPickWhyRe     = regexp.MustCompile(`(?i)\*\*Why it works\*\*[:\s|]+([^\n|]+)`)
	importantDatesRe = regexp.MustCompile(`## Important Dates`)
	milestoneRowRe   = regexp.MustCompile(`\|\s*\*?\*?([A-Za-z]+\s+\d+)\*?\*?\s*\|\s*([^|]+)\s*\|\s*([^|]*)\s*\|`)
	monthDayRe       = regexp.MustCompile(`([A-Za-z]+)\s+(\d+)`)
)

// milestoneEmojis is ordered; the first occasion keyword that matches wins.
var milestoneEmojis = []struct {
	key   string
	emoji string
}{
	{"anniversary", "💍"},
	{"birthday", "🎂"},
	{"day", "💕"},
}

func (p *ProfileParser) now() time.Time {
	if p.Now != nil {
		return p.Now()
	}
	return time.Now()
}

// ParseWindows reads travel windows from the profile note at path. A
// missing profile yields no windows.
func (p *ProfileParser) ParseWindows(path string) ([]TravelWindow, error) {
	note, err := vault.ReadNote(path)
	if err != nil {
		return nil, nil
	}
	return p.parseWindowContent(note.Content), nil
}

func (p *ProfileParser) parseWindowContent(content string) []TravelWindow {
	var windows []TravelWindow

	if sec := section(content, bestWindowsRe, "###", "---"); sec != "" {
		for _, row := range tableRows(sec) {
			if w := p.parseWindowRow(row); w != nil {
				windows = append(windows, *w)
			}
		}
	}

	if m := topPickRe.FindStringSubmatchIndex(content); m != nil {
		sec := section(content, topPickRe, "###", "---")
		name := strings.TrimSpace(content[m[2]:m[3]])
		if pick := p.parseTopPick(sec, name); pick != nil {
			windows = mergeTopPick(windows, *pick)
		}
	}

	sort.SliceStable(windows, func(i, j int) bool {
		return windows[i].StartDate.Before(windows[j].StartDate)
	})

	return windows
}

// parseWindowRow maps one BEST Windows table row:
// | Window | Dates | Duration | PTO Needed | Why It Works |
func (p *ProfileParser) parseWindowRow(cells []string) *TravelWindow {
	if len(cells) < 4 || cells[0] == "" {
		return nil
	}

	name := stripBold(cells[0])
	dates := cells[1]
	duration := stripBold(cells[2])
	ptoNeeded := stripBold(cells[3])
	notes := ""
	if len(cells) > 4 {
		notes = cells[4]
	}

	dateRange := ParseRange(dates, p.PlanningYear)
	if dateRange == nil {
		return nil
	}

	return &TravelWindow{
		Name:      name,
		Dates:     dates,
		StartDate: dateRange.Start,
		EndDate:   dateRange.End,
		Duration:  duration,
		PTONeeded: ptoNeeded,
		WhoCanGo:  inferWhoCanGo(name, notes),
		Notes:     strings.TrimSpace(notes),
	}
}

func (p *ProfileParser) parseTopPick(sec, name string) *TravelWindow {
	dates := ""
	if m := topPickDatesRe.FindStringSubmatch(sec); m != nil {
		dates = strings.TrimSpace(m[1])
	}
	dateRange := ParseRange(dates, p.PlanningYear)
	if dateRange == nil {
		return nil
	}

	pick := &TravelWindow{
		Name:      name,
		Dates:     dates,
		StartDate: dateRange.Start,
		EndDate:   dateRange.End,
		PTONeeded: "0",
		WhoCanGo:  "Full family",
		IsTopPick: true,
	}
	if m := topPickDurRe.FindStringSubmatch(sec); m != nil {
		pick.Duration = strings.TrimSpace(m[1])
	}
	if m := topPickPTORe.FindStringSubmatch(sec); m != nil {
		pick.PTONeeded = strings.TrimSpace(m[1])
	}
	if m := topPickWhyRe.FindStringSubmatch(sec); m != nil {
		pick.Notes = strings.TrimSpace(m[1])
	}
	return pick
}

// mergeTopPick folds the top pick into a fuzzy-name-matched existing
// window, or prepends it when nothing matches.
func mergeTopPick(windows []TravelWindow, pick TravelWindow) []TravelWindow {
	for i, w := range windows {
		a := strings.ToLower(w.Name)
		b := strings.ToLower(pick.Name)
		if strings.Contains(a, b) || strings.Contains(b, a) {
			pick.WhoCanGo = w.WhoCanGo
			if pick.Notes == "" {
				pick.Notes = w.Notes
			}
			windows[i] = pick
			return windows
		}
	}
	return append([]TravelWindow{pick}, windows...)
}

// NextWindow returns the first window starting strictly after now, or the
// earliest window when every start has passed (treated as currently open).
func NextWindow(windows []TravelWindow, now time.Time) *TravelWindow {
	for i := range windows {
		if windows[i].StartDate.After(now) {
			return &windows[i]
		}
	}
	if len(windows) > 0 {
		return &windows[0]
	}
	return nil
}

func inferWhoCanGo(name, notes string) string {
	combined := strings.ToLower(name + " " + notes)

	switch {
	case strings.Contains(combined, "full family") || strings.Contains(combined, "all kids") ||
		strings.Contains(combined, "summer") || strings.Contains(combined, "both schools"):
		return "Full family"
	case strings.Contains(combined, "alpine only") || strings.Contains(combined, "parents +"):
		return "Parents + youngest"
	case strings.Contains(combined, "couple") || strings.Contains(combined, "romantic"):
		return "Couple only"
	case strings.Contains(combined, "flexible") || strings.Contains(combined, "adults"):
		return "Adults / flexible"
	}
	return "Full family"
}

// ParseMilestones reads the Important Dates table:
// | **Feb 9** | Occasion | Trip Ideas |
// Days-until roll to next year when the date has already passed.
func (p *ProfileParser) ParseMilestones(path string) ([]Milestone, error) {
	note, err := vault.ReadNote(path)
	if err != nil {
		return nil, nil
	}

	sec := section(note.Content, importantDatesRe, "##", "---")
	if sec == "" {
		return nil, nil
	}

	now := p.now()
	var milestones []Milestone
	for _, m := range milestoneRowRe.FindAllStringSubmatch(sec, -1) {
		dateStr := strings.TrimSpace(m[1])
		occasion := strings.TrimSpace(m[2])
		tripIdeas := strings.TrimSpace(m[3])

		dm := monthDayRe.FindStringSubmatch(dateStr)
		if dm == nil {
			continue
		}
		month, ok := monthIndex(dm[1])
		if !ok {
			continue
		}
		day := atoi(dm[2])

		target := time.Date(now.Year(), month, day, 0, 0, 0, 0, now.Location())
		if target.Before(now) {
			target = time.Date(now.Year()+1, month, day, 0, 0, 0, 0, now.Location())
		}

		milestones = append(milestones, Milestone{
			ID:        "milestone-" + strings.ReplaceAll(strings.ToLower(occasion), " ", "-"),
			Name:      occasion,
			Date:      dateStr,
			Month:     int(month),
			Day:       day,
			TripIdeas: tripIdeas,
			DaysUntil: daysBetween(now, target),
			Emoji:     milestoneEmoji(occasion),
		})
	}

	sort.SliceStable(milestones, func(i, j int) bool {
		return milestones[i].DaysUntil < milestones[j].DaysUntil
	})
	return milestones, nil
}

func milestoneEmoji(occasion string) string {
	lower := strings.ToLower(occasion)
	for _, entry := range milestoneEmojis {
		if strings.Contains(lower, entry.key) {
			return entry.emoji
		}
	}
	return "🎉"
}
