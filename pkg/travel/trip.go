package travel

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/mklimuk/trip-pilot/pkg/vault"
)

// TripParser reads unified trip notes (frontmatter `type: trip`) from the
// travel folder.
type TripParser struct{}

var (
	openQuestionsRe    = regexp.MustCompile(`(?i)## Open Questions`)
	bookingChecklistRe = regexp.MustCompile(`(?i)## (?:Booking )?Checklist`)
)

// ParseAll scans folder for trip notes, skipping `_`-prefixed files and the
// pricing subfolder. Unreadable or non-trip notes are dropped silently.
func (p *TripParser) ParseAll(folder string) ([]Trip, error) {
	paths, err := vault.ListMarkdown(folder)
	if err != nil {
		return nil, err
	}

	var trips []Trip
	for _, path := range paths {
		base := strings.TrimSuffix(filepath.Base(path), ".md")
		if strings.HasPrefix(base, "_") || strings.Contains(path, "/pricing/") {
			continue
		}
		note, err := vault.ReadNote(path)
		if err != nil {
			continue
		}
		if trip := p.Parse(note); trip != nil {
			trips = append(trips, *trip)
		}
	}
	return trips, nil
}

// Parse extracts a Trip from a note, or nil when the note is not a trip.
func (p *TripParser) Parse(note *vault.Note) *Trip {
	if note.String("type") != "trip" {
		return nil
	}

	checkedTasks, totalTasks, urgentItems := p.extractTasks(note.Content)
	status := NormalizeStatus(note.String("status"))
	readiness := Readiness(status, checkedTasks, totalTasks)

	destination := note.String("destination")
	if destination == "" {
		destination = note.Basename()
	}
	dates := note.String("dates")
	if dates == "" {
		dates = "TBD"
	}

	return &Trip{
		ID:                 strings.ReplaceAll(strings.ToLower(note.Basename()), " ", "-"),
		Destination:        destination,
		CountryCode:        CountryCode(note.String("destination")),
		Dates:              dates,
		Duration:           note.String("duration"),
		Travelers:          note.String("travelers"),
		Budget:             note.String("budget"),
		Status:             status,
		Committed:          note.Bool("committed"),
		Window:             note.String("window"),
		ReadinessPercent:   readiness,
		TotalTasks:         totalTasks,
		CheckedTasks:       checkedTasks,
		UrgentItems:        urgentItems,
		FilePath:           note.Path,
		Created:            note.String("created"),
		Updated:            note.String("updated"),
		FlightConfirmation: note.String("flight_confirmation"),
		HotelConfirmation:  note.String("hotel_confirmation"),
		LastUpdated:        note.ModTime,
	}
}

// NormalizeStatus folds a free-text status onto the closed vocabulary.
// Legacy synonyms from earlier note conventions map in; anything
// unrecognized falls back to the lowest tier.
func NormalizeStatus(status string) TripStatus {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "idea":
		return StatusIdea
	case "researching", "research":
		return StatusResearching
	case "planned", "planning", "draft", "final":
		return StatusPlanned
	case "booked", "traveling":
		return StatusBooked
	case "complete", "completed":
		return StatusComplete
	}
	return StatusIdea
}

// extractTasks counts all checklist items plus the open ones sitting in the
// Open Questions and (Booking) Checklist sections, which count as urgent.
func (p *TripParser) extractTasks(content string) (checked, total, urgent int) {
	if s := section(content, openQuestionsRe, "##"); s != "" {
		urgent += len(openTaskRe.FindAllString(s, -1))
	}
	if s := section(content, bookingChecklistRe, "##"); s != "" {
		urgent += len(openTaskRe.FindAllString(s, -1))
	}

	checked, total = countTasks(content)
	return checked, total, urgent
}

// statusBands gives each status its base readiness and the band that task
// completion interpolates within.
var statusBands = map[TripStatus]struct{ base, min, max int }{
	StatusIdea:        {10, 0, 20},
	StatusResearching: {30, 20, 45},
	StatusPlanned:     {60, 45, 75},
	StatusBooked:      {90, 75, 100},
	StatusComplete:    {100, 100, 100},
}

// Readiness estimates how booking-ready a trip is (0-100). With no tasks
// it is the status base; otherwise checked/total interpolates within the
// status band. Monotonic across status tiers for a fixed completion ratio.
func Readiness(status TripStatus, checkedTasks, totalTasks int) int {
	band := statusBands[status]
	readiness := band.base

	if totalTasks > 0 && status != StatusComplete {
		completion := float64(checkedTasks) / float64(totalTasks)
		readiness = band.min + int(completion*float64(band.max-band.min)+0.5)
	}

	if readiness > 100 {
		readiness = 100
	}
	return readiness
}
