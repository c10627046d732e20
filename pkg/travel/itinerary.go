package travel

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/mklimuk/trip-pilot/pkg/vault"
)

// ItineraryData is one itinerary note: a concrete day-by-day plan with
// booking tasks, more complete than a research note.
type ItineraryData struct {
	Path         string
	Date         string
	Destination  string
	TripDates    string
	Duration     string
	TravelStyle  string
	BasedOn      string
	Status       string // draft, final, booked, completed
	TotalBudget  string
	Travelers    int
	UrgentTasks  []string
	CheckedTasks int
	TotalTasks   int
}

// ItineraryParser reads itinerary notes from the itineraries folder.
type ItineraryParser struct{}

var urgentSectionRe = regexp.MustCompile(`(?i)###\s*URGENT`)
var urgentTaskRe = regexp.MustCompile(`- \[ \] (.+)`)

func (p *ItineraryParser) ParseAll(folder string) ([]ItineraryData, error) {
	paths, err := vault.ListMarkdown(folder)
	if err != nil {
		return nil, err
	}

	var results []ItineraryData
	for _, path := range paths {
		base := strings.TrimSuffix(filepath.Base(path), ".md")
		if strings.HasPrefix(base, "_") || strings.Contains(base, "overview") {
			continue
		}
		note, err := vault.ReadNote(path)
		if err != nil {
			continue
		}
		if data := p.Parse(note); data != nil {
			results = append(results, *data)
		}
	}
	return results, nil
}

// Parse extracts an ItineraryData record; notes without frontmatter yield nil.
func (p *ItineraryParser) Parse(note *vault.Note) *ItineraryData {
	if len(note.Frontmatter) == 0 {
		return nil
	}

	urgentTasks, checkedTasks, totalTasks := p.extractTasks(note.Content)

	travelers := note.Int("travelers")
	if travelers == 0 {
		travelers = 1
	}

	return &ItineraryData{
		Path:         note.Path,
		Date:         note.String("date"),
		Destination:  note.String("destination"),
		TripDates:    note.String("trip_dates"),
		Duration:     note.String("duration"),
		TravelStyle:  note.String("travel_style"),
		BasedOn:      note.String("based_on"),
		Status:       normalizeItineraryStatus(note.String("status")),
		TotalBudget:  note.String("total_budget_estimate"),
		Travelers:    travelers,
		UrgentTasks:  urgentTasks,
		CheckedTasks: checkedTasks,
		TotalTasks:   totalTasks,
	}
}

func (p *ItineraryParser) extractTasks(content string) (urgentTasks []string, checked, total int) {
	if s := section(content, urgentSectionRe, "###"); s != "" {
		for _, m := range urgentTaskRe.FindAllStringSubmatch(s, -1) {
			urgentTasks = append(urgentTasks, m[1])
		}
	}

	checked, total = countTasks(content)
	return urgentTasks, checked, total
}

func normalizeItineraryStatus(status string) string {
	switch strings.ToLower(status) {
	case "final", "finalized":
		return "final"
	case "booked":
		return "booked"
	case "completed", "complete":
		return "completed"
	}
	return "draft"
}

// itineraryReadiness blends the itinerary status base with checklist
// completion (70/30) when the note carries tasks.
func itineraryReadiness(itin ItineraryData) int {
	readiness := 0
	switch itin.Status {
	case "draft":
		readiness = 40
	case "final":
		readiness = 70
	case "booked":
		readiness = 90
	case "completed":
		readiness = 100
	}

	if itin.TotalTasks > 0 {
		completion := float64(itin.CheckedTasks) / float64(itin.TotalTasks)
		readiness = int(float64(readiness)*0.7 + completion*30 + 0.5)
	}

	if readiness > 100 {
		readiness = 100
	}
	return readiness
}
