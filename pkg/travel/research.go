package travel

import (
	"path/filepath"
	"strings"

	"github.com/mklimuk/trip-pilot/pkg/vault"
)

// ResearchData is one destination-research note before any itinerary
// exists for it.
type ResearchData struct {
	Path          string
	Date          string
	Destination   string
	TripTiming    string
	Duration      string
	TravelStyle   string
	Travelers     int
	Status        string // draft, in-progress, complete
	Confidence    string // low, medium, high
	DataFreshness string
}

// ResearchParser reads destination-research notes from the research folder.
type ResearchParser struct{}

func (p *ResearchParser) ParseAll(folder string) ([]ResearchData, error) {
	paths, err := vault.ListMarkdown(folder)
	if err != nil {
		return nil, err
	}

	var results []ResearchData
	for _, path := range paths {
		if strings.HasPrefix(filepath.Base(path), "_") {
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

// Parse extracts a ResearchData record; notes without frontmatter yield nil.
func (p *ResearchParser) Parse(note *vault.Note) *ResearchData {
	if len(note.Frontmatter) == 0 {
		return nil
	}

	destination := note.String("destination")
	if destination == "" {
		destination = note.Basename()
	}
	confidence := note.String("confidence")
	if confidence == "" {
		confidence = "medium"
	}

	return &ResearchData{
		Path:          note.Path,
		Date:          note.String("date"),
		Destination:   destination,
		TripTiming:    note.String("trip_timing"),
		Duration:      note.String("duration"),
		TravelStyle:   note.String("travel_style"),
		Travelers:     note.Int("travelers"),
		Status:        normalizeResearchStatus(note.String("status")),
		Confidence:    confidence,
		DataFreshness: note.String("data_freshness"),
	}
}

func normalizeResearchStatus(status string) string {
	switch strings.ToLower(status) {
	case "complete", "completed":
		return "complete"
	case "in-progress", "in progress":
		return "in-progress"
	}
	return "draft"
}
