package travel

import (
	"math"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/mklimuk/trip-pilot/pkg/vault"
)

// DealsParser reads two kinds of deal data: seasonal baselines from the
// destination-intelligence table, and concrete discovered deals from the
// newest flight-deal-alert note in the inbox.
type DealsParser struct {
	Now func() time.Time
}

const alertMarker = "flight-deal-alert"

var (
	intelHeaderRe = regexp.MustCompile(`(?i)\|[^\n]*Destination[^\n]*\|`)
	priceCellRe   = regexp.MustCompile(`\$?([\d,]+)`)

	greatDealsHeadingRe = regexp.MustCompile(`(?i)## (?:🟢\s*)?Great Deals Found[^\n]*`)
	dealBlockSplitRe    = regexp.MustCompile(`###\s+(?:\d+\.\s*)?`)
	// Destination - $1,234 RT (38% off!) [⭐ BUCKET LIST]
	dealHeaderRe   = regexp.MustCompile(`(?i)^([^-\n]+)\s*-\s*\$([0-9,]+)\s*RT\s*\((\d+)%\s*off!?\)(\s*⭐\s*BUCKET LIST)?`)
	dealDatesRe    = regexp.MustCompile(`(?i)\*\*(?:Best )?Dates?\*\*:\s*([^\n]+)`)
	dealTypicalRe  = regexp.MustCompile(`(?i)\*\*Typical price\*\*:\s*~?\$([0-9,]+)`)
	windowNewRe    = regexp.MustCompile(`(?i)\*\*Window match\*\*:\s*([^\n]+)`)
	windowOldRe    = regexp.MustCompile(`(?i)✅\s*\*\*([^*]+)\*\*|✅\s+([^\n]+?)(?:\s*-|$)`)
	parentheticRe  = regexp.MustCompile(`\s*\([^)]+\)`)
	alertDateRe    = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)
	sectionBreakRe = regexp.MustCompile(`^## (?:🎆|All|Asia|Good|Best|\d)`)
)

func (p *DealsParser) now() time.Time {
	if p.Now != nil {
		return p.Now()
	}
	return time.Now()
}

// Parse reads the destination-intelligence note into seasonal deals.
// A missing note yields no deals.
func (p *DealsParser) Parse(path string) ([]Deal, error) {
	note, err := vault.ReadNote(path)
	if err != nil {
		return nil, nil
	}
	return p.ParseDestinationIntelligence(note.Content), nil
}

// ParseDestinationIntelligence extracts deals from the quick-reference
// table: | Code | Destination | Best Months | Type | Typical RT | Deal |
func (p *DealsParser) ParseDestinationIntelligence(content string) []Deal {
	var deals []Deal

	loc := intelHeaderRe.FindStringIndex(content)
	if loc == nil {
		return deals
	}
	table := content[loc[0]:]
	for _, stop := range []string{"\n\n", "\n##"} {
		if idx := strings.Index(table, stop); idx >= 0 {
			table = table[:idx]
		}
	}

	for _, row := range strings.Split(table, "\n") {
		if !strings.Contains(row, "|") || strings.Contains(row, "---") || strings.Contains(row, "Destination") {
			continue
		}
		var cells []string
		for _, c := range strings.Split(row, "|") {
			if c = strings.TrimSpace(c); c != "" {
				cells = append(cells, c)
			}
		}
		if len(cells) < 5 {
			continue
		}

		destination := cells[1]
		bestMonths := cells[2]
		tripType := cells[3]
		typicalPrice := parseCellPrice(cells[4])
		dealThreshold := 0
		if len(cells) > 5 {
			dealThreshold = parseCellPrice(cells[5])
		}

		if len(destination) > 1 {
			deals = append(deals, Deal{
				Destination:   destination,
				Emoji:         seasonEmoji(bestMonths),
				Season:        seasonOf(bestMonths),
				BestMonths:    bestMonths,
				TypicalPrice:  typicalPrice,
				DealThreshold: dealThreshold,
				TripType:      tripType,
			})
		}
	}

	return deals
}

// CurrentSeasonDeals keeps deals whose best months include the current
// month or the next two.
func (p *DealsParser) CurrentSeasonDeals(deals []Deal) []Deal {
	monthNames := []string{"jan", "feb", "mar", "apr", "may", "jun", "jul", "aug", "sep", "oct", "nov", "dec"}
	current := int(p.now().Month()) - 1

	relevant := []string{
		monthNames[current],
		monthNames[(current+1)%12],
		monthNames[(current+2)%12],
	}

	var out []Deal
	for _, deal := range deals {
		lower := strings.ToLower(deal.BestMonths)
		for _, m := range relevant {
			if strings.Contains(lower, m) {
				out = append(out, deal)
				break
			}
		}
	}
	return out
}

// ParseDiscoveredDeals finds the most recently modified alert note in the
// inbox folder and extracts its deals.
func (p *DealsParser) ParseDiscoveredDeals(inboxDir string) ([]DiscoveredDeal, error) {
	paths, err := vault.ListMarkdown(inboxDir)
	if err != nil {
		return nil, err
	}

	type candidate struct {
		path    string
		modTime time.Time
	}
	var alerts []candidate
	for _, path := range paths {
		if !strings.Contains(filepath.Base(path), alertMarker) {
			continue
		}
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		alerts = append(alerts, candidate{path, info.ModTime()})
	}
	if len(alerts) == 0 {
		return nil, nil
	}
	sort.Slice(alerts, func(i, j int) bool { return alerts[i].modTime.After(alerts[j].modTime) })

	note, err := vault.ReadNote(alerts[0].path)
	if err != nil {
		return nil, nil
	}
	return p.ParseAlertContent(note.Content, filepath.Base(alerts[0].path)), nil
}

// ParseAlertContent extracts deals from one alert note. The alert date
// comes from the filename; both historical window-match phrasings are
// supported, newest first.
func (p *DealsParser) ParseAlertContent(content, filename string) []DiscoveredDeal {
	var deals []DiscoveredDeal

	alertDate := alertDateRe.FindString(filename)
	if alertDate == "" {
		alertDate = p.now().Format("2006-01-02")
	}

	sec := greatDealsSection(content)
	if sec == "" {
		return deals
	}

	for _, block := range dealBlockSplitRe.Split(sec, -1) {
		if strings.TrimSpace(block) == "" {
			continue
		}
		header := dealHeaderRe.FindStringSubmatch(block)
		if header == nil {
			continue
		}

		destination := strings.TrimSpace(header[1])
		price := atoi(header[2])
		percentOff := atoi(header[3])
		isBucketList := header[4] != ""

		dates := ""
		if m := dealDatesRe.FindStringSubmatch(block); m != nil {
			dates = strings.TrimSpace(m[1])
		}

		typicalPrice := 0
		if m := dealTypicalRe.FindStringSubmatch(block); m != nil {
			typicalPrice = atoi(m[1])
		} else if percentOff < 100 {
			typicalPrice = int(math.Round(float64(price) / (1 - float64(percentOff)/100)))
		}

		deals = append(deals, DiscoveredDeal{
			Destination:  destination,
			Price:        price,
			TypicalPrice: typicalPrice,
			PercentOff:   percentOff,
			Dates:        dates,
			IsBucketList: isBucketList,
			WindowMatch:  windowMatchFrom(block),
			AlertDate:    alertDate,
		})
	}

	return deals
}

// greatDealsSection slices out the "Great Deals Found" section, ending at
// the next top-level section heading or a horizontal rule.
func greatDealsSection(content string) string {
	loc := greatDealsHeadingRe.FindStringIndex(content)
	if loc == nil {
		return ""
	}
	rest := content[loc[0]:]
	lines := strings.Split(rest, "\n")
	for i := 1; i < len(lines); i++ {
		trimmed := strings.TrimSpace(lines[i])
		if sectionBreakRe.MatchString(lines[i]) || trimmed == "---" {
			return strings.Join(lines[:i], "\n")
		}
	}
	return rest
}

// windowMatchFrom resolves a deal's travel-window reference. The newer
// "**Window match**: ..." style wins over the legacy "✅ **Window**" style.
// "Close to X (dates)" collapses to X; "Requires PTO" means no match.
func windowMatchFrom(block string) string {
	if m := windowNewRe.FindStringSubmatch(block); m != nil {
		text := strings.TrimSpace(m[1])
		if strings.HasPrefix(text, "Close to ") {
			text = strings.TrimPrefix(text, "Close to ")
			return strings.TrimSpace(parentheticRe.ReplaceAllString(text, ""))
		}
		if strings.Contains(text, "Requires PTO") {
			return ""
		}
		return text
	}
	if m := windowOldRe.FindStringSubmatch(block); m != nil {
		if m[1] != "" {
			return strings.TrimSpace(m[1])
		}
		return strings.TrimSpace(m[2])
	}
	return ""
}

func parseCellPrice(cell string) int {
	m := priceCellRe.FindStringSubmatch(cell)
	if m == nil {
		return 0
	}
	return atoi(m[1])
}
