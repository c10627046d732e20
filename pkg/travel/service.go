package travel

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
)

// Config holds the vault-relative folder layout the parsers scan.
type Config struct {
	TripDir      string
	ResearchDir  string
	ItineraryDir string
	PricingDir   string
	IntelPath    string
	GapsPath     string
	ProfilePath  string
	InboxDir     string
	PlanningYear int
}

// DefaultConfig matches the vault conventions the dashboard grew up with.
func DefaultConfig() Config {
	return Config{
		TripDir:      "Personal/travel",
		ResearchDir:  "Personal/travel/01-research",
		ItineraryDir: "Personal/travel/02-itineraries",
		PricingDir:   "Personal/travel/pricing/snapshots",
		IntelPath:    "Personal/travel/pricing/destination-intelligence.md",
		GapsPath:     "Personal/travel/04-gaps/questions.md",
		ProfilePath:  "_state/travel-profile.md",
		InboxDir:     "_inbox",
		PlanningYear: 2026,
	}
}

// Service aggregates every parser into one dashboard snapshot. All file
// reads happen against disjoint sets, so LoadAll fans the parsers out
// concurrently and merges in memory afterwards.
type Service struct {
	vaultPath string
	cfg       Config

	// Now is the clock every date diff runs against; override in tests.
	Now func() time.Time

	trips       *TripParser
	research    *ResearchParser
	itineraries *ItineraryParser
	pricing     *PricingParser
	gaps        *GapsParser
	deals       *DealsParser
	profile     *ProfileParser
}

// NewService creates a Service rooted at vaultPath.
func NewService(vaultPath string, cfg Config) *Service {
	if cfg.PlanningYear == 0 {
		cfg.PlanningYear = DefaultConfig().PlanningYear
	}
	s := &Service{
		vaultPath:   vaultPath,
		cfg:         cfg,
		Now:         time.Now,
		trips:       &TripParser{},
		research:    &ResearchParser{},
		itineraries: &ItineraryParser{},
		gaps:        &GapsParser{},
	}
	s.pricing = &PricingParser{Now: s.now}
	s.deals = &DealsParser{Now: s.now}
	s.profile = &ProfileParser{PlanningYear: cfg.PlanningYear, Now: s.now}
	return s
}

func (s *Service) now() time.Time {
	return s.Now()
}

func (s *Service) path(rel string) string {
	return filepath.Join(s.vaultPath, filepath.FromSlash(rel))
}

// LoadAll runs every parser concurrently and assembles the dashboard.
// Malformed notes degrade to missing records and missing folders to empty
// lists; the only error out of here is context cancellation.
func (s *Service) LoadAll(ctx context.Context) (*DashboardData, error) {
	var (
		trips           []Trip
		research        []ResearchData
		itineraries     []ItineraryData
		prices          []PriceSnapshot
		gaps            []GapItem
		allDeals        []Deal
		windows         []TravelWindow
		discoveredDeals []DiscoveredDeal
		milestones      []Milestone
	)

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error { trips, _ = s.trips.ParseAll(s.path(s.cfg.TripDir)); return nil })
	g.Go(func() error { research, _ = s.research.ParseAll(s.path(s.cfg.ResearchDir)); return nil })
	g.Go(func() error { itineraries, _ = s.itineraries.ParseAll(s.path(s.cfg.ItineraryDir)); return nil })
	g.Go(func() error { prices, _ = s.pricing.ParseAll(s.path(s.cfg.PricingDir)); return nil })
	g.Go(func() error { gaps, _ = s.gaps.Parse(s.path(s.cfg.GapsPath)); return nil })
	g.Go(func() error { allDeals, _ = s.deals.Parse(s.path(s.cfg.IntelPath)); return nil })
	g.Go(func() error { windows, _ = s.profile.ParseWindows(s.path(s.cfg.ProfilePath)); return nil })
	g.Go(func() error { discoveredDeals, _ = s.deals.ParseDiscoveredDeals(s.path(s.cfg.InboxDir)); return nil })
	g.Go(func() error { milestones, _ = s.profile.ParseMilestones(s.path(s.cfg.ProfilePath)); return nil })
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	merged := s.buildTrips(trips, research, itineraries, gaps)
	committed := committedTrip(merged)

	var nextWindow *TravelWindow
	if committed == nil {
		nextWindow = NextWindow(windows, s.now())
	}

	data := &DashboardData{
		Trips:           merged,
		TripsByStatus:   groupTripsByStatus(merged),
		CommittedTrip:   committed,
		NextWindow:      nextWindow,
		TravelWindows:   windows,
		ActionItems:     s.buildActionItems(windows, discoveredDeals, merged),
		Deadlines:       buildDeadlines(merged, gaps, prices),
		Milestones:      milestones,
		Prices:          prices,
		Deals:           s.deals.CurrentSeasonDeals(allDeals),
		DiscoveredDeals: discoveredDeals,
		LastRefresh:     s.now(),
	}

	log.Printf("travel: loaded %d trips, %d prices, %d windows, %d deals",
		len(merged), len(prices), len(windows), len(discoveredDeals))

	return data, nil
}

var (
	countrySuffixRe = regexp.MustCompile(`,.*$`)
	whitespaceRe    = regexp.MustCompile(`\s+`)
)

// normalizeDestination builds the merge key: lowercased, country suffix
// after the comma dropped, whitespace collapsed.
func normalizeDestination(dest string) string {
	d := strings.ToLower(dest)
	d = countrySuffixRe.ReplaceAllString(d, "")
	d = whitespaceRe.ReplaceAllString(d, " ")
	return strings.TrimSpace(d)
}

// buildTrips merges trip-like records keyed by normalized destination.
// Unified trip notes come first, then itineraries where the key is free,
// then research-only destinations; an already-present key only picks up a
// secondary path reference. Itinerary URGENT tasks and unresolved urgent
// gaps feed urgent counts.
func (s *Service) buildTrips(trips []Trip, research []ResearchData, itineraries []ItineraryData, gaps []GapItem) []Trip {
	byDest := make(map[string]*Trip)
	var order []string

	add := func(key string, t Trip) {
		byDest[key] = &t
		order = append(order, key)
	}

	for _, t := range trips {
		add(normalizeDestination(t.Destination), t)
	}

	urgentGaps := func(dest string) int {
		n := 0
		for _, g := range gaps {
			if normalizeDestination(g.Destination) == dest && g.Priority == "urgent" && !g.Checked {
				n++
			}
		}
		return n
	}

	for _, itin := range itineraries {
		key := normalizeDestination(itin.Destination)
		if existing, ok := byDest[key]; ok {
			if existing.UrgentItems == 0 {
				existing.UrgentItems = len(itin.UrgentTasks) + urgentGaps(key)
			}
			continue
		}
		budget := itin.TotalBudget
		if budget == "" {
			budget = "TBD"
		}
		add(key, Trip{
			ID:               strings.ReplaceAll(key, " ", "-"),
			Destination:      itin.Destination,
			CountryCode:      CountryCode(itin.Destination),
			Dates:            itin.TripDates,
			Duration:         itin.Duration,
			Travelers:        fmt.Sprintf("%d", itin.Travelers),
			Budget:           budget,
			Status:           NormalizeStatus(itin.Status),
			ReadinessPercent: itineraryReadiness(itin),
			TotalTasks:       itin.TotalTasks,
			CheckedTasks:     itin.CheckedTasks,
			UrgentItems:      len(itin.UrgentTasks) + urgentGaps(key),
			FilePath:         itin.Path,
			LastUpdated:      s.now(),
		})
	}

	for _, res := range research {
		key := normalizeDestination(res.Destination)
		if existing, ok := byDest[key]; ok {
			existing.ResearchPath = res.Path
			continue
		}
		readiness := 15
		if res.Status == "complete" {
			readiness = 30
		}
		dates := res.TripTiming
		if dates == "" {
			dates = "TBD"
		}
		duration := res.Duration
		if duration == "" {
			duration = "TBD"
		}
		travelers := res.Travelers
		if travelers == 0 {
			travelers = 1
		}
		add(key, Trip{
			ID:               strings.ReplaceAll(key, " ", "-"),
			Destination:      res.Destination,
			CountryCode:      CountryCode(res.Destination),
			Dates:            dates,
			Duration:         duration,
			Travelers:        fmt.Sprintf("%d", travelers),
			Budget:           "TBD",
			Status:           StatusResearching,
			ReadinessPercent: readiness,
			ResearchPath:     res.Path,
			LastUpdated:      s.now(),
		})
	}

	out := make([]Trip, 0, len(order))
	for _, key := range order {
		out = append(out, *byDest[key])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return compareDates(out[i].Dates, out[j].Dates) < 0
	})
	return out
}

func groupTripsByStatus(trips []Trip) TripsByStatus {
	var grouped TripsByStatus
	for _, trip := range trips {
		switch trip.Status {
		case StatusIdea:
			grouped.Idea = append(grouped.Idea, trip)
		case StatusResearching:
			grouped.Researching = append(grouped.Researching, trip)
		case StatusPlanned:
			grouped.Planned = append(grouped.Planned, trip)
		case StatusBooked:
			grouped.Booked = append(grouped.Booked, trip)
		case StatusComplete:
			grouped.Complete = append(grouped.Complete, trip)
		}
	}
	return grouped
}

// committedTrip picks the soonest-dated trip flagged committed, or nil.
func committedTrip(trips []Trip) *Trip {
	var committed []Trip
	for _, t := range trips {
		if t.Committed {
			committed = append(committed, t)
		}
	}
	if len(committed) == 0 {
		return nil
	}
	sort.SliceStable(committed, func(i, j int) bool {
		return compareDates(committed[i].Dates, committed[j].Dates) < 0
	})
	return &committed[0]
}

const stalePricingDays = 14

// buildDeadlines merges trip urgent items, unresolved urgent gap questions
// and stale price snapshots, sorted by days remaining.
func buildDeadlines(trips []Trip, gaps []GapItem, prices []PriceSnapshot) []Deadline {
	var deadlines []Deadline

	for _, trip := range trips {
		if trip.UrgentItems == 0 || trip.Status == StatusComplete {
			continue
		}
		plural := ""
		if trip.UrgentItems > 1 {
			plural = "s"
		}
		deadlines = append(deadlines, Deadline{
			ID:          "trip-" + trip.ID + "-urgent",
			Destination: trip.Destination,
			Description: fmt.Sprintf("%d open question%s to resolve", trip.UrgentItems, plural),
			Date:        "ASAP",
			Priority:    "urgent",
			Source:      trip.FilePath,
		})
	}

	for _, gap := range gaps {
		if gap.Priority != "urgent" || gap.Checked {
			continue
		}
		question := gap.Question
		if runes := []rune(question); len(runes) > 20 {
			question = string(runes[:20])
		}
		deadlines = append(deadlines, Deadline{
			ID:          "gap-" + gap.Destination + "-" + question,
			Destination: gap.Destination,
			Description: gap.Question,
			Date:        "ASAP",
			Priority:    "urgent",
			Source:      "gaps",
		})
	}

	for _, price := range prices {
		if price.DaysSinceCapture <= stalePricingDays {
			continue
		}
		deadlines = append(deadlines, Deadline{
			ID:          "price-" + price.Destination,
			Destination: price.Destination,
			Description: fmt.Sprintf("Update pricing (%d days old)", price.DaysSinceCapture),
			Date:        "Stale",
			Priority:    "soon",
			Source:      "pricing",
		})
	}

	sortDeadlines(deadlines)
	return deadlines
}

// sortDeadlines orders by days remaining ascending; equal keys keep their
// relative order.
func sortDeadlines(deadlines []Deadline) {
	sort.SliceStable(deadlines, func(i, j int) bool {
		return deadlines[i].DaysRemaining < deadlines[j].DaysRemaining
	})
}

const (
	dealWindowHorizonDays = 120
	emptyWindowAlertDays  = 90
)

// buildActionItems synthesizes recommendations: discovered deals landing
// inside an upcoming window, and upcoming windows with no trip planned.
func (s *Service) buildActionItems(windows []TravelWindow, discoveredDeals []DiscoveredDeal, trips []Trip) []ActionItem {
	var items []ActionItem
	now := midnight(s.now())

	var upcoming []TravelWindow
	for _, w := range windows {
		daysUntil := daysBetween(now, w.StartDate)
		if daysUntil > 0 && daysUntil <= dealWindowHorizonDays {
			upcoming = append(upcoming, w)
		}
	}

	for i := range discoveredDeals {
		deal := discoveredDeals[i]
		dealDates := ParseDealDates(deal.Dates, now)
		if dealDates == nil {
			continue
		}
		for _, w := range upcoming {
			if !Overlaps(*dealDates, DateRange{Start: w.StartDate, End: w.EndDate}) {
				continue
			}
			daysAway := daysBetween(now, w.StartDate)
			urgency := "low"
			switch {
			case deal.PercentOff >= 35:
				urgency = "high"
			case deal.PercentOff >= 20:
				urgency = "medium"
			}
			items = append(items, ActionItem{
				Type:        "deal-match",
				Urgency:     urgency,
				DaysAway:    daysAway,
				Message:     fmt.Sprintf("$%d %s fits your %s window", deal.Price, deal.Destination, w.Name),
				SubMessage:  fmt.Sprintf("%d days away - %d%% below typical", daysAway, deal.PercentOff),
				Destination: deal.Destination,
				WindowName:  w.Name,
				Deal:        &discoveredDeals[i],
			})
		}
	}

	for _, w := range upcoming {
		daysAway := daysBetween(now, w.StartDate)
		if daysAway > emptyWindowAlertDays {
			continue
		}
		hasTrip := false
		for _, trip := range trips {
			tripDate := ExtractDate(trip.Dates)
			if tripDate == nil {
				continue
			}
			if Overlaps(DateRange{Start: *tripDate, End: *tripDate}, DateRange{Start: w.StartDate, End: w.EndDate}) {
				hasTrip = true
				break
			}
		}
		if hasTrip {
			continue
		}
		urgency := "low"
		switch {
		case daysAway <= 30:
			urgency = "high"
		case daysAway <= 60:
			urgency = "medium"
		}
		items = append(items, ActionItem{
			Type:       "window-no-trip",
			Urgency:    urgency,
			DaysAway:   daysAway,
			Message:    w.Name + " window",
			SubMessage: fmt.Sprintf("%d days - NO TRIP PLANNED", daysAway),
			WindowName: w.Name,
		})
	}

	urgencyRank := map[string]int{"high": 0, "medium": 1, "low": 2}
	sort.SliceStable(items, func(i, j int) bool {
		if urgencyRank[items[i].Urgency] != urgencyRank[items[j].Urgency] {
			return urgencyRank[items[i].Urgency] < urgencyRank[items[j].Urgency]
		}
		return items[i].DaysAway < items[j].DaysAway
	})
	return items
}
