package travel

import "time"

// TripStatus follows the trip lifecycle:
// idea --> researching --> planned --> booked --> complete
type TripStatus string

const (
	StatusIdea        TripStatus = "idea"
	StatusResearching TripStatus = "researching"
	StatusPlanned     TripStatus = "planned"
	StatusBooked      TripStatus = "booked"
	StatusComplete    TripStatus = "complete"
)

// Trip is one destination under consideration, merged from whatever notes
// mention it (unified trip note, itinerary, research).
type Trip struct {
	ID                 string     `json:"id"`
	Destination        string     `json:"destination"`
	CountryCode        string     `json:"countryCode"`
	Dates              string     `json:"dates"` // raw frontmatter string, e.g. "Jun 1-8, 2026"
	Duration           string     `json:"duration,omitempty"`
	Travelers          string     `json:"travelers"`
	Budget             string     `json:"budget,omitempty"`
	Status             TripStatus `json:"status"`
	Committed          bool       `json:"committed"`
	Window             string     `json:"window,omitempty"`
	ReadinessPercent   int        `json:"readinessPercent"`
	TotalTasks         int        `json:"totalTasks"`
	CheckedTasks       int        `json:"checkedTasks"`
	UrgentItems        int        `json:"urgentItems"`
	FilePath           string     `json:"filePath"`
	ResearchPath       string     `json:"researchPath,omitempty"`
	Created            string     `json:"created,omitempty"`
	Updated            string     `json:"updated,omitempty"`
	FlightConfirmation string     `json:"flightConfirmation,omitempty"`
	HotelConfirmation  string     `json:"hotelConfirmation,omitempty"`
	LastUpdated        time.Time  `json:"lastUpdated"`
}

// TripsByStatus groups trips for dashboard display.
type TripsByStatus struct {
	Idea        []Trip `json:"idea"`
	Researching []Trip `json:"researching"`
	Planned     []Trip `json:"planned"`
	Booked      []Trip `json:"booked"`
	Complete    []Trip `json:"complete"`
}

// TravelWindow is a candidate interval when travel is feasible (school
// break, long weekend), read from the profile note.
type TravelWindow struct {
	Name      string    `json:"name"`
	Dates     string    `json:"dates"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
	Duration  string    `json:"duration"`
	PTONeeded string    `json:"ptoNeeded"`
	WhoCanGo  string    `json:"whoCanGo"`
	Notes     string    `json:"notes,omitempty"`
	IsTopPick bool      `json:"isTopPick,omitempty"`
}

// Deadline is synthesized from trip urgent items, unresolved gap questions
// and stale price snapshots; it is never authored directly.
type Deadline struct {
	ID            string `json:"id"`
	Destination   string `json:"destination"`
	Description   string `json:"description"`
	Date          string `json:"date"`
	DaysRemaining int    `json:"daysRemaining"`
	Priority      string `json:"priority"` // urgent, soon, upcoming
	Source        string `json:"source"`
}

// PriceSnapshot is one captured flight/hotel price from a pricing note.
type PriceSnapshot struct {
	Destination      string `json:"destination"`
	Route            string `json:"route"`
	PricePerPerson   int    `json:"pricePerPerson"`
	TotalForGroup    int    `json:"totalForGroup"`
	Travelers        int    `json:"travelers"`
	CaptureDate      string `json:"captureDate"`
	DaysSinceCapture int    `json:"daysSinceCapture"`
	Trend            string `json:"trend"`  // rising, falling, stable, unknown
	Status           string `json:"status"` // great-deal, good-price, normal, rising, high
	SourcePath       string `json:"sourcePath"`
}

// Deal is a seasonal baseline from the destination-intelligence table.
type Deal struct {
	Destination   string `json:"destination"`
	Emoji         string `json:"emoji"`
	Season        string `json:"season"`
	BestMonths    string `json:"bestMonths"`
	TypicalPrice  int    `json:"typicalPrice"`
	DealThreshold int    `json:"dealThreshold"`
	TripType      string `json:"tripType"`
}

// DiscoveredDeal is a concrete offer parsed from a dated alert note in the
// inbox, as opposed to the generic seasonal Deal.
type DiscoveredDeal struct {
	Destination  string `json:"destination"`
	Price        int    `json:"price"`
	TypicalPrice int    `json:"typicalPrice"`
	PercentOff   int    `json:"percentOff"`
	Dates        string `json:"dates"`
	IsBucketList bool   `json:"isBucketList"`
	WindowMatch  string `json:"windowMatch,omitempty"`
	AlertDate    string `json:"alertDate"`
}

// Milestone is a recurring personal date from the profile's Important
// Dates table, e.g. a birthday or anniversary.
type Milestone struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Date      string `json:"date"` // e.g. "Feb 9"
	Month     int    `json:"month"`
	Day       int    `json:"day"`
	TripIdeas string `json:"tripIdeas,omitempty"`
	DaysUntil int    `json:"daysUntil"`
	Emoji     string `json:"emoji"`
}

// ActionItem is a synthesized recommendation: a discovered deal landing in
// an open travel window, or an upcoming window with no trip planned.
type ActionItem struct {
	Type        string          `json:"type"`    // deal-match, window-no-trip
	Urgency     string          `json:"urgency"` // high, medium, low
	DaysAway    int             `json:"daysAway"`
	Message     string          `json:"message"`
	SubMessage  string          `json:"subMessage,omitempty"`
	Destination string          `json:"destination,omitempty"`
	WindowName  string          `json:"windowName,omitempty"`
	Deal        *DiscoveredDeal `json:"deal,omitempty"`
}

// DashboardData is the single output of a load cycle. It is rebuilt from
// scratch every time; nothing in it is mutated after LoadAll returns.
type DashboardData struct {
	Trips           []Trip           `json:"trips"`
	TripsByStatus   TripsByStatus    `json:"tripsByStatus"`
	CommittedTrip   *Trip            `json:"committedTrip"`
	NextWindow      *TravelWindow    `json:"nextWindow"`
	TravelWindows   []TravelWindow   `json:"travelWindows"`
	ActionItems     []ActionItem     `json:"actionItems"`
	Deadlines       []Deadline       `json:"deadlines"`
	Milestones      []Milestone      `json:"milestones"`
	Prices          []PriceSnapshot  `json:"prices"`
	Deals           []Deal           `json:"deals"`
	DiscoveredDeals []DiscoveredDeal `json:"discoveredDeals"`
	LastRefresh     time.Time        `json:"lastRefresh"`
}
