package travel

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DateRange is a resolved start/end pair from a free-text date expression.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// months maps 3-letter prefixes; monthIndex accepts full names too.
var months = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "may": time.May, "jun": time.June,
	"jul": time.July, "aug": time.August, "sep": time.September,
	"oct": time.October, "nov": time.November, "dec": time.December,
}

func monthIndex(name string) (time.Month, bool) {
	key := strings.ToLower(name)
	if len(key) > 3 {
		key = key[:3]
	}
	m, ok := months[key]
	return m, ok
}

var (
	isoRe        = regexp.MustCompile(`(\d{4})-(\d{2})-(\d{2})`)
	sameMonthRe  = regexp.MustCompile(`(?i)([a-z]{3,9})\s*(\d{1,2})\s*-\s*(\d{1,2})(?:,?\s*(\d{4}))?`)
	crossMonthRe = regexp.MustCompile(`(?i)([a-z]{3,9})\s*(\d{1,2})\s*-\s*([a-z]{3,9})\s*(\d{1,2})(?:,?\s*(\d{4}))?`)
	dayFirstRe   = regexp.MustCompile(`(?i)(\d{1,2})\s*-\s*(\d{1,2})\s+([a-z]{3,9})(?:,?\s*(\d{4}))?`)
	fuzzyRe      = regexp.MustCompile(`(?i)(late|early)?\s*([a-z]{3,9})\s*-\s*([a-z]{3,9})`)
	singleRe     = regexp.MustCompile(`(?i)([a-z]{3,9})\s*(\d{1,2})(?:,?\s*(\d{4}))?`)

	boldRe    = regexp.MustCompile(`\*\*`)
	weekdayRe = regexp.MustCompile(`(?i)(Mon|Tue|Wed|Thu|Fri|Sat|Sun)\s*`)
)

// cleanDateText strips markdown emphasis and day-of-week prefixes before
// the range patterns run.
func cleanDateText(s string) string {
	s = boldRe.ReplaceAllString(s, "")
	s = weekdayRe.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// ParseRange converts a free-text date expression into a start/end pair.
// Patterns are tried in a fixed order and the first match wins; nil means
// unparseable. A missing year defaults to the planning year.
func ParseRange(s string, year int) *DateRange {
	clean := cleanDateText(s)
	if clean == "" {
		return nil
	}

	if m := isoRe.FindStringSubmatch(clean); m != nil {
		d := dateFrom(m[1], m[2], m[3])
		return &DateRange{Start: d, End: d}
	}

	for _, m := range sameMonthRe.FindAllStringSubmatch(clean, -1) {
		month, ok := monthIndex(m[1])
		if !ok {
			continue
		}
		y := yearOr(m[4], year)
		return &DateRange{
			Start: time.Date(y, month, atoi(m[2]), 0, 0, 0, 0, time.UTC),
			End:   time.Date(y, month, atoi(m[3]), 0, 0, 0, 0, time.UTC),
		}
	}

	for _, m := range crossMonthRe.FindAllStringSubmatch(clean, -1) {
		startMonth, ok1 := monthIndex(m[1])
		endMonth, ok2 := monthIndex(m[3])
		if !ok1 || !ok2 {
			continue
		}
		y := yearOr(m[5], year)
		return &DateRange{
			Start: time.Date(y, startMonth, atoi(m[2]), 0, 0, 0, 0, time.UTC),
			End:   time.Date(y, endMonth, atoi(m[4]), 0, 0, 0, 0, time.UTC),
		}
	}

	for _, m := range dayFirstRe.FindAllStringSubmatch(clean, -1) {
		month, ok := monthIndex(m[3])
		if !ok {
			continue
		}
		y := yearOr(m[4], year)
		return &DateRange{
			Start: time.Date(y, month, atoi(m[1]), 0, 0, 0, 0, time.UTC),
			End:   time.Date(y, month, atoi(m[2]), 0, 0, 0, 0, time.UTC),
		}
	}

	for _, m := range fuzzyRe.FindAllStringSubmatch(clean, -1) {
		startMonth, ok1 := monthIndex(m[2])
		endMonth, ok2 := monthIndex(m[3])
		if !ok1 || !ok2 {
			continue
		}
		startDay := 1
		if strings.EqualFold(m[1], "late") {
			startDay = 20
		}
		// Day 28 end is a deliberate approximation, not real month end;
		// downstream window matching is tuned against it.
		return &DateRange{
			Start: time.Date(year, startMonth, startDay, 0, 0, 0, 0, time.UTC),
			End:   time.Date(year, endMonth, 28, 0, 0, 0, 0, time.UTC),
		}
	}

	for _, m := range singleRe.FindAllStringSubmatch(clean, -1) {
		month, ok := monthIndex(m[1])
		if !ok {
			continue
		}
		y := yearOr(m[3], year)
		d := time.Date(y, month, atoi(m[2]), 0, 0, 0, 0, time.UTC)
		return &DateRange{Start: d, End: d}
	}

	return nil
}

// ParseDealDates resolves a deal's best-dates string against the current
// year. A bare ISO date gets an implicit 7-day window.
func ParseDealDates(s string, now time.Time) *DateRange {
	if s == "" {
		return nil
	}

	if m := isoRe.FindStringSubmatch(s); m != nil {
		start := dateFrom(m[1], m[2], m[3])
		return &DateRange{Start: start, End: start.AddDate(0, 0, 7)}
	}

	year := now.Year()

	for _, m := range sameMonthRe.FindAllStringSubmatch(s, -1) {
		month, ok := monthIndex(m[1])
		if !ok {
			continue
		}
		return &DateRange{
			Start: time.Date(year, month, atoi(m[2]), 0, 0, 0, 0, time.UTC),
			End:   time.Date(year, month, atoi(m[3]), 0, 0, 0, 0, time.UTC),
		}
	}

	for _, m := range crossMonthRe.FindAllStringSubmatch(s, -1) {
		startMonth, ok1 := monthIndex(m[1])
		endMonth, ok2 := monthIndex(m[3])
		if !ok1 || !ok2 {
			continue
		}
		return &DateRange{
			Start: time.Date(year, startMonth, atoi(m[2]), 0, 0, 0, 0, time.UTC),
			End:   time.Date(year, endMonth, atoi(m[4]), 0, 0, 0, 0, time.UTC),
		}
	}

	return nil
}

var monthDayYearRe = regexp.MustCompile(`(?i)([a-z]+)\s+(\d+)(?:\s*-\s*[a-z]*\s*\d+)?,?\s*(\d{4})`)

// ExtractDate pulls a single sortable date out of a trip-dates string:
// ISO first, then "Month Day[, ...] Year". Nil when neither matches.
func ExtractDate(s string) *time.Time {
	if m := isoRe.FindStringSubmatch(s); m != nil {
		d := dateFrom(m[1], m[2], m[3])
		return &d
	}

	for _, m := range monthDayYearRe.FindAllStringSubmatch(s, -1) {
		month, ok := monthIndex(m[1])
		if !ok {
			continue
		}
		d := time.Date(atoi(m[3]), month, atoi(m[2]), 0, 0, 0, 0, time.UTC)
		return &d
	}

	return nil
}

// Overlaps reports whether two date ranges intersect:
// start1 <= end2 && end1 >= start2.
func Overlaps(a, b DateRange) bool {
	return !a.Start.After(b.End) && !a.End.Before(b.Start)
}

// compareDates orders raw trip-date strings: parseable dates ascending,
// unparseable after parseable, ties stable.
func compareDates(a, b string) int {
	dateA := ExtractDate(a)
	dateB := ExtractDate(b)
	switch {
	case dateA != nil && dateB != nil:
		return dateA.Compare(*dateB)
	case dateA != nil:
		return -1
	case dateB != nil:
		return 1
	}
	return 0
}

func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func dateFrom(year, month, day string) time.Time {
	return time.Date(atoi(year), time.Month(atoi(month)), atoi(day), 0, 0, 0, 0, time.UTC)
}

func yearOr(s string, fallback int) int {
	if s == "" {
		return fallback
	}
	return atoi(s)
}

func atoi(s string) int {
	n, _ := strconv.Atoi(strings.ReplaceAll(s, ",", ""))
	return n
}
