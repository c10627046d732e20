package travel

import (
	"testing"
)

const peruItineraryNote = `---
date: 2026-01-12
destination: Peru
trip_dates: Jun 19 - Jul 2, 2026
duration: 13 days
travelers: 4
status: draft
total_budget_estimate: $12,000
---
# Peru Itinerary

### URGENT - Book These Now
- [ ] Machu Picchu entry tickets
- [ ] Inca Trail permits

### Week 1
- [x] Lima food tour reserved
- [ ] Sacred Valley transfer
`

func TestItineraryParse(t *testing.T) {
	tmpDir := t.TempDir()
	path := writeNote(t, tmpDir, "peru-itinerary.md", peruItineraryNote)

	parser := &ItineraryParser{}
	itin := parser.Parse(readNote(t, path))
	if itin == nil {
		t.Fatal("expected an itinerary")
	}

	if itin.Destination != "Peru" {
		t.Errorf("Destination = %q", itin.Destination)
	}
	if itin.TripDates != "Jun 19 - Jul 2, 2026" {
		t.Errorf("TripDates = %q", itin.TripDates)
	}
	if itin.Status != "draft" {
		t.Errorf("Status = %q, want draft", itin.Status)
	}
	if itin.Travelers != 4 {
		t.Errorf("Travelers = %d, want 4", itin.Travelers)
	}
	if len(itin.UrgentTasks) != 2 {
		t.Errorf("UrgentTasks = %v, want 2 entries", itin.UrgentTasks)
	}
	if itin.TotalTasks != 4 || itin.CheckedTasks != 1 {
		t.Errorf("Tasks = %d/%d, want 1/4", itin.CheckedTasks, itin.TotalTasks)
	}
}

func TestItineraryParseNoFrontmatter(t *testing.T) {
	tmpDir := t.TempDir()
	path := writeNote(t, tmpDir, "notes.md", "# Loose notes\n")

	parser := &ItineraryParser{}
	if itin := parser.Parse(readNote(t, path)); itin != nil {
		t.Errorf("note without frontmatter should yield nil, got %+v", itin)
	}
}

func TestItineraryParseAllSkipsOverviewAndUnderscore(t *testing.T) {
	tmpDir := t.TempDir()
	writeNote(t, tmpDir, "peru-itinerary.md", peruItineraryNote)
	writeNote(t, tmpDir, "_template.md", "---\ndestination: X\n---\n")
	writeNote(t, tmpDir, "overview.md", "---\ndestination: Y\n---\n")

	parser := &ItineraryParser{}
	itins, err := parser.ParseAll(tmpDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(itins) != 1 {
		t.Fatalf("expected 1 itinerary, got %d", len(itins))
	}
}

func TestItineraryReadiness(t *testing.T) {
	// Status base alone when there are no tasks.
	if got := itineraryReadiness(ItineraryData{Status: "booked"}); got != 90 {
		t.Errorf("booked no tasks = %d, want 90", got)
	}

	// 70/30 blend of status base and checklist completion.
	itin := ItineraryData{Status: "final", CheckedTasks: 5, TotalTasks: 10}
	if got := itineraryReadiness(itin); got != 64 {
		t.Errorf("final 5/10 = %d, want 64", got)
	}

	full := ItineraryData{Status: "completed", CheckedTasks: 10, TotalTasks: 10}
	if got := itineraryReadiness(full); got != 100 {
		t.Errorf("completed 10/10 = %d, want 100", got)
	}
}

func TestNormalizeItineraryStatus(t *testing.T) {
	tests := map[string]string{
		"final":     "final",
		"Finalized": "final",
		"booked":    "booked",
		"complete":  "completed",
		"completed": "completed",
		"draft":     "draft",
		"":          "draft",
	}
	for input, want := range tests {
		if got := normalizeItineraryStatus(input); got != want {
			t.Errorf("normalizeItineraryStatus(%q) = %q, want %q", input, got, want)
		}
	}
}
