package travel

import (
	"context"
	"testing"
	"time"
	"unicode/utf8"
)

const committedCaboNote = `---
type: trip
destination: Cabo San Lucas, Mexico
dates: Jun 1-8, 2026
duration: 8 days
travelers: 4
budget: $6,000
status: booked
committed: true
---
# Cabo, June 2026

## Tasks
- [x] Book flights
- [x] Reserve hotel
- [x] Buy travel insurance
- [x] Rent a car
- [x] Plan day trips
- [x] Book snorkeling tour
- [x] Check passports
- [ ] Pack
- [ ] Download offline maps
- [ ] Arrange pet sitter
`

const staleCaboPricing = `---
destination: Cabo San Lucas
date: 2026-01-04
travelers: 4
---
Current: $410/person
`

func newTestService(t *testing.T, now time.Time) (*Service, string) {
	t.Helper()
	vaultDir := t.TempDir()
	svc := NewService(vaultDir, DefaultConfig())
	svc.Now = fixedClock(now)
	return svc, vaultDir
}

func TestLoadAllEmptyVault(t *testing.T) {
	svc, _ := newTestService(t, date(2026, time.January, 24))

	data, err := svc.LoadAll(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(data.Trips) != 0 {
		t.Errorf("expected no trips, got %d", len(data.Trips))
	}
	if data.CommittedTrip != nil {
		t.Errorf("expected no committed trip, got %+v", data.CommittedTrip)
	}
	if data.NextWindow != nil {
		t.Errorf("expected no next window, got %+v", data.NextWindow)
	}
	if !data.LastRefresh.Equal(date(2026, time.January, 24)) {
		t.Errorf("LastRefresh = %v", data.LastRefresh)
	}
}

func TestLoadAllCancelledContext(t *testing.T) {
	svc, _ := newTestService(t, date(2026, time.January, 24))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := svc.LoadAll(ctx); err == nil {
		t.Error("expected error from cancelled context")
	}
}

func TestLoadAllCommittedTrip(t *testing.T) {
	now := date(2026, time.January, 24)
	svc, vaultDir := newTestService(t, now)

	writeNote(t, vaultDir, "Personal/travel/cabo-june.md", committedCaboNote)
	// Snapshot captured 20 days ago: stale.
	writeNote(t, vaultDir, "Personal/travel/pricing/snapshots/cabo-flights-2026-01.md", staleCaboPricing)
	writeNote(t, vaultDir, "_state/travel-profile.md", profileNote)

	data, err := svc.LoadAll(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	if len(data.Trips) != 1 {
		t.Fatalf("expected 1 trip, got %d: %+v", len(data.Trips), data.Trips)
	}
	trip := data.Trips[0]
	if trip.Status != StatusBooked {
		t.Errorf("Status = %q, want booked", trip.Status)
	}
	if trip.CountryCode != "🇲🇽" {
		t.Errorf("CountryCode = %q", trip.CountryCode)
	}
	// Booked band 75-100 at 7/10 completion: 75 + 18.
	if trip.ReadinessPercent != 93 {
		t.Errorf("ReadinessPercent = %d, want 93", trip.ReadinessPercent)
	}
	if trip.UrgentItems != 0 {
		t.Errorf("UrgentItems = %d, want 0 (no urgent sections)", trip.UrgentItems)
	}

	if data.CommittedTrip == nil {
		t.Fatal("expected a committed trip")
	}
	if data.CommittedTrip.Destination != "Cabo San Lucas, Mexico" {
		t.Errorf("CommittedTrip = %q", data.CommittedTrip.Destination)
	}
	// A committed trip suppresses the next-window callout.
	if data.NextWindow != nil {
		t.Errorf("NextWindow = %+v, want nil while committed", data.NextWindow)
	}
	if len(data.TravelWindows) != 3 {
		t.Errorf("TravelWindows = %d, want 3", len(data.TravelWindows))
	}
	if len(data.TripsByStatus.Booked) != 1 {
		t.Errorf("TripsByStatus.Booked = %d, want 1", len(data.TripsByStatus.Booked))
	}

	// The only deadline is the stale price snapshot.
	if len(data.Deadlines) != 1 {
		t.Fatalf("expected 1 deadline, got %d: %+v", len(data.Deadlines), data.Deadlines)
	}
	d := data.Deadlines[0]
	if d.Priority != "soon" || d.Source != "pricing" {
		t.Errorf("deadline = %+v, want soon/pricing", d)
	}
	if d.Destination != "Cabo San Lucas" {
		t.Errorf("deadline destination = %q", d.Destination)
	}
}

func TestLoadAllNextWindowWithoutCommitment(t *testing.T) {
	now := date(2026, time.January, 24)
	svc, vaultDir := newTestService(t, now)
	writeNote(t, vaultDir, "_state/travel-profile.md", profileNote)

	data, err := svc.LoadAll(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if data.NextWindow == nil {
		t.Fatal("expected a next window")
	}
	if data.NextWindow.Name != "Presidents Week" {
		t.Errorf("NextWindow = %q, want Presidents Week", data.NextWindow.Name)
	}
}

func TestLoadAllMergesResearchAndItineraries(t *testing.T) {
	now := date(2026, time.January, 24)
	svc, vaultDir := newTestService(t, now)

	writeNote(t, vaultDir, "Personal/travel/cabo-june.md", committedCaboNote)
	// Itinerary for the same destination must not create a second trip.
	writeNote(t, vaultDir, "Personal/travel/02-itineraries/cabo-itinerary.md", `---
destination: Cabo San Lucas
trip_dates: Jun 1-8, 2026
status: booked
travelers: 4
---
- [x] Day one plan
`)
	// Research-only destination becomes its own card.
	writeNote(t, vaultDir, "Personal/travel/01-research/iceland.md", `---
destination: Iceland
trip_timing: Late June - July
status: complete
travelers: 4
---
`)

	data, err := svc.LoadAll(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(data.Trips) != 2 {
		t.Fatalf("expected 2 trips, got %d: %+v", len(data.Trips), data.Trips)
	}

	var iceland *Trip
	for i := range data.Trips {
		if data.Trips[i].Destination == "Iceland" {
			iceland = &data.Trips[i]
		}
	}
	if iceland == nil {
		t.Fatal("research destination missing from trips")
	}
	if iceland.Status != StatusResearching {
		t.Errorf("Iceland status = %q, want researching", iceland.Status)
	}
	if iceland.ReadinessPercent != 30 {
		t.Errorf("Iceland readiness = %d, want 30 (complete research)", iceland.ReadinessPercent)
	}
	if iceland.ResearchPath == "" {
		t.Error("Iceland should carry its research path")
	}
}

func TestLoadAllItineraryUrgentTasks(t *testing.T) {
	now := date(2026, time.January, 24)
	svc, vaultDir := newTestService(t, now)

	writeNote(t, vaultDir, "Personal/travel/02-itineraries/peru-itinerary.md", `---
destination: Peru
trip_dates: Jun 19 - Jul 2, 2026
status: draft
travelers: 4
---
### URGENT - Book These Now
- [ ] Machu Picchu entry tickets
- [ ] Inca Trail permits

### Week 1
- [x] Lima food tour reserved
`)

	data, err := svc.LoadAll(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(data.Trips) != 1 {
		t.Fatalf("expected 1 trip, got %d", len(data.Trips))
	}
	if data.Trips[0].UrgentItems != 2 {
		t.Errorf("UrgentItems = %d, want 2 (from the URGENT section)", data.Trips[0].UrgentItems)
	}

	if len(data.Deadlines) != 1 {
		t.Fatalf("expected 1 deadline, got %d: %+v", len(data.Deadlines), data.Deadlines)
	}
	d := data.Deadlines[0]
	if d.Priority != "urgent" || d.Destination != "Peru" {
		t.Errorf("deadline = %+v, want urgent Peru", d)
	}
	if d.Description != "2 open questions to resolve" {
		t.Errorf("description = %q", d.Description)
	}
}

func TestBuildTripsItineraryUrgentMergesIntoExisting(t *testing.T) {
	svc, _ := newTestService(t, date(2026, time.January, 24))

	trips := []Trip{{ID: "peru", Destination: "Peru", Status: StatusPlanned}}
	itineraries := []ItineraryData{{
		Destination: "Peru",
		UrgentTasks: []string{"Entry tickets", "Trail permits"},
	}}

	merged := svc.buildTrips(trips, nil, itineraries, nil)
	if len(merged) != 1 {
		t.Fatalf("expected 1 merged trip, got %d", len(merged))
	}
	if merged[0].UrgentItems != 2 {
		t.Errorf("UrgentItems = %d, want 2 from the itinerary", merged[0].UrgentItems)
	}
}

func TestBuildDeadlinesGapIDKeepsRunesIntact(t *testing.T) {
	gaps := []GapItem{{
		Destination: "Peru",
		Priority:    "urgent",
		Question:    "¿Necesitamos visado para los niños?",
	}}

	deadlines := buildDeadlines(nil, gaps, nil)
	if len(deadlines) != 1 {
		t.Fatalf("expected 1 deadline, got %d", len(deadlines))
	}
	id := deadlines[0].ID
	if !utf8.ValidString(id) {
		t.Errorf("deadline ID is not valid UTF-8: %q", id)
	}
	if id != "gap-Peru-¿Necesitamos visado " {
		t.Errorf("ID = %q", id)
	}
}

func TestNormalizeDestination(t *testing.T) {
	tests := map[string]string{
		"Cabo San Lucas, Mexico": "cabo san lucas",
		"Cabo  San   Lucas":      "cabo san lucas",
		"Peru":                   "peru",
	}
	for input, want := range tests {
		if got := normalizeDestination(input); got != want {
			t.Errorf("normalizeDestination(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestBuildDeadlinesSort(t *testing.T) {
	deadlines := []Deadline{
		{ID: "a", DaysRemaining: 30},
		{ID: "b", DaysRemaining: 0},
		{ID: "c", DaysRemaining: 14},
		{ID: "d", DaysRemaining: 0},
	}
	sortDeadlines(deadlines)

	want := []string{"b", "d", "c", "a"}
	for i, id := range want {
		if deadlines[i].ID != id {
			t.Errorf("deadlines[%d] = %q, want %q (ties keep order)", i, deadlines[i].ID, id)
		}
	}
}

func TestBuildActionItemsDealMatch(t *testing.T) {
	now := date(2026, time.January, 24)
	svc, _ := newTestService(t, now)

	windows := []TravelWindow{{
		Name:      "Presidents Week",
		StartDate: date(2026, time.February, 15),
		EndDate:   date(2026, time.February, 22),
	}}
	deals := []DiscoveredDeal{{
		Destination: "Cancun, Mexico",
		Price:       385,
		PercentOff:  45,
		Dates:       "Feb 15-22",
	}}

	items := svc.buildActionItems(windows, deals, nil)
	if len(items) != 2 {
		t.Fatalf("expected deal-match + window-no-trip, got %d: %+v", len(items), items)
	}

	// High-urgency deal match sorts first.
	if items[0].Type != "deal-match" || items[0].Urgency != "high" {
		t.Errorf("items[0] = %+v, want high deal-match", items[0])
	}
	if items[0].WindowName != "Presidents Week" {
		t.Errorf("WindowName = %q", items[0].WindowName)
	}
	if items[0].Deal == nil || items[0].Deal.Price != 385 {
		t.Errorf("Deal not attached: %+v", items[0])
	}

	if items[1].Type != "window-no-trip" {
		t.Errorf("items[1] = %+v, want window-no-trip", items[1])
	}
	// 22 days out: the empty window is high urgency too.
	if items[1].Urgency != "high" || items[1].DaysAway != 22 {
		t.Errorf("items[1] = %+v, want high at 22 days", items[1])
	}
}

func TestBuildActionItemsWindowWithTrip(t *testing.T) {
	now := date(2026, time.January, 24)
	svc, _ := newTestService(t, now)

	windows := []TravelWindow{{
		Name:      "Spring Break",
		StartDate: date(2026, time.March, 15),
		EndDate:   date(2026, time.March, 22),
	}}
	trips := []Trip{{Destination: "Tokyo", Dates: "Mar 15-22, 2026"}}

	items := svc.buildActionItems(windows, nil, trips)
	if len(items) != 0 {
		t.Errorf("window with a planned trip should raise nothing, got %+v", items)
	}
}

func TestBuildActionItemsFarWindowIgnored(t *testing.T) {
	now := date(2026, time.January, 24)
	svc, _ := newTestService(t, now)

	windows := []TravelWindow{{
		Name:      "Summer",
		StartDate: date(2026, time.June, 27),
		EndDate:   date(2026, time.July, 5),
	}}

	// 154 days out: beyond both horizons.
	items := svc.buildActionItems(windows, nil, nil)
	if len(items) != 0 {
		t.Errorf("far-out window should raise nothing, got %+v", items)
	}
}

func TestCommittedTripPicksSoonest(t *testing.T) {
	trips := []Trip{
		{Destination: "Peru", Dates: "Jun 19, 2026", Committed: true},
		{Destination: "Cabo", Dates: "Jun 1-8, 2026", Committed: true},
		{Destination: "Iceland", Dates: "TBD"},
	}
	got := committedTrip(trips)
	if got == nil || got.Destination != "Cabo" {
		t.Errorf("committedTrip = %+v, want Cabo (soonest dated)", got)
	}

	if committedTrip(trips[2:]) != nil {
		t.Error("no committed flags should yield nil")
	}
}
