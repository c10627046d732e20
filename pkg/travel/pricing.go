package travel

import (
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/mklimuk/trip-pilot/pkg/vault"
)

// PricingParser reads price-snapshot notes (files with "flights" or
// "hotels" in the name) from the pricing folder.
type PricingParser struct {
	Now func() time.Time
}

var (
	routeRe    = regexp.MustCompile(`([A-Z]{3})\s*[-→]\s*([A-Z]{3})`)
	basenameRe = regexp.MustCompile(`(?i)^([a-z-]+)-(?:flights|hotels)`)

	// Ordered: first matching pattern supplies the current price.
	priceRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)current[:\s]+\$?([\d,]+)`),
		regexp.MustCompile(`(?i)price[:\s]+\$?([\d,]+)`),
		regexp.MustCompile(`(?i)\$?([\d,]+)\s*/\s*person`),
		regexp.MustCompile(`(?i)\$?([\d,]+)\s*per\s*person`),
		regexp.MustCompile(`(?i)baseline[:\s]+\$?([\d,]+)`),
	}
	priceTableRe = regexp.MustCompile(`\|\s*\d{4}-\d{2}-\d{2}\s*\|\s*\$?([\d,]+)`)
	travelersRe  = regexp.MustCompile(`(?i)(\d+)\s*travelers?`)

	greatDealRe = regexp.MustCompile(`(?i)great\s*deal[:\s<]+\$?([\d,]+)`)
	goodPriceRe = regexp.MustCompile(`(?i)good\s*price[:\s<]+\$?([\d,]+)`)
	highPriceRe = regexp.MustCompile(`(?i)high[:\s>]+\$?([\d,]+)`)
)

func (p *PricingParser) now() time.Time {
	if p.Now != nil {
		return p.Now()
	}
	return time.Now()
}

func (p *PricingParser) ParseAll(folder string) ([]PriceSnapshot, error) {
	paths, err := vault.ListMarkdown(folder)
	if err != nil {
		return nil, err
	}

	var results []PriceSnapshot
	for _, path := range paths {
		base := filepath.Base(path)
		if !strings.Contains(base, "flights") && !strings.Contains(base, "hotels") {
			continue
		}
		note, err := vault.ReadNote(path)
		if err != nil {
			continue
		}
		if snap := p.Parse(note); snap != nil {
			results = append(results, *snap)
		}
	}
	return results, nil
}

// Parse extracts a PriceSnapshot; a note with no recognizable price yields
// nil rather than a zero-price record.
func (p *PricingParser) Parse(note *vault.Note) *PriceSnapshot {
	pricePerPerson := extractCurrentPrice(note.Content)
	if pricePerPerson == 0 {
		return nil
	}

	destination := note.String("destination")
	if destination == "" {
		destination = destinationFromBasename(note.Basename())
	}
	route := note.String("route")
	if route == "" {
		route = extractRoute(note.Content)
	}
	travelers := note.Int("travelers")
	if travelers == 0 {
		travelers = extractTravelers(note.Content)
	}
	captureDate := note.String("date")
	if captureDate == "" {
		captureDate = latestISODate(note.Content)
	}

	return &PriceSnapshot{
		Destination:      destination,
		Route:            route,
		PricePerPerson:   pricePerPerson,
		TotalForGroup:    pricePerPerson * travelers,
		Travelers:        travelers,
		CaptureDate:      captureDate,
		DaysSinceCapture: daysSinceCapture(captureDate, p.now()),
		Trend:            priceTrend(note.Content),
		Status:           priceStatus(note.Content, pricePerPerson),
		SourcePath:       note.Path,
	}
}

// destinationFromBasename turns "peru-flights-2026-01" into "Peru".
func destinationFromBasename(basename string) string {
	m := basenameRe.FindStringSubmatch(basename)
	if m == nil {
		return basename
	}
	words := strings.Split(m[1], "-")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

func extractRoute(content string) string {
	m := routeRe.FindStringSubmatch(content)
	if m == nil {
		return ""
	}
	return m[1] + "-" + m[2]
}

func extractCurrentPrice(content string) int {
	for _, re := range priceRes {
		if m := re.FindStringSubmatch(content); m != nil {
			return atoi(m[1])
		}
	}
	// Fall back to the newest snapshot-table row.
	if m := priceTableRe.FindStringSubmatch(content); m != nil {
		return atoi(m[1])
	}
	return 0
}

func extractTravelers(content string) int {
	if m := travelersRe.FindStringSubmatch(content); m != nil {
		return atoi(m[1])
	}
	return 1
}

// latestISODate returns the most recent YYYY-MM-DD anywhere in the body.
func latestISODate(content string) string {
	dates := isoRe.FindAllString(content, -1)
	if len(dates) == 0 {
		return ""
	}
	sort.Strings(dates)
	return dates[len(dates)-1]
}

func daysSinceCapture(dateStr string, now time.Time) int {
	if dateStr == "" {
		return 999
	}
	captured, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return 999
	}
	return daysBetween(captured, now)
}

func priceTrend(content string) string {
	lower := strings.ToLower(content)
	switch {
	case strings.Contains(lower, "↗") || strings.Contains(lower, "rising") || strings.Contains(lower, "increasing"):
		return "rising"
	case strings.Contains(lower, "↘") || strings.Contains(lower, "falling") || strings.Contains(lower, "decreasing"):
		return "falling"
	case strings.Contains(lower, "stable") || strings.Contains(lower, "steady"):
		return "stable"
	}
	return "unknown"
}

// priceStatus compares the extracted price against alert thresholds found
// in the body ("great deal: <$800", "high: >$1400").
func priceStatus(content string, price int) string {
	if m := greatDealRe.FindStringSubmatch(content); m != nil && price < atoi(m[1]) {
		return "great-deal"
	}
	if m := goodPriceRe.FindStringSubmatch(content); m != nil && price < atoi(m[1]) {
		return "good-price"
	}
	if m := highPriceRe.FindStringSubmatch(content); m != nil && price > atoi(m[1]) {
		return "high"
	}
	return "normal"
}
