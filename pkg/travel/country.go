package travel

import "strings"

// countryFlags is an ordered substring table; the first matching key wins,
// so more specific entries must come before broader ones.
var countryFlags = []struct {
	key  string
	flag string
}{
	{"peru", "🇵🇪"},
	{"mexico", "🇲🇽"},
	{"cabo san lucas", "🇲🇽"},
	{"cabo", "🇲🇽"},
	{"costa rica", "🇨🇷"},
	{"japan", "🇯🇵"},
	{"iceland", "🇮🇸"},
	{"france", "🇫🇷"},
	{"paris", "🇫🇷"},
	{"italy", "🇮🇹"},
	{"spain", "🇪🇸"},
	{"uk", "🇬🇧"},
	{"england", "🇬🇧"},
	{"greece", "🇬🇷"},
	{"portugal", "🇵🇹"},
	{"germany", "🇩🇪"},
	{"australia", "🇦🇺"},
	{"new zealand", "🇳🇿"},
	{"thailand", "🇹🇭"},
	{"vietnam", "🇻🇳"},
	{"croatia", "🇭🇷"},
	{"norway", "🇳🇴"},
	{"sweden", "🇸🇪"},
	{"netherlands", "🇳🇱"},
	{"amsterdam", "🇳🇱"},
	{"switzerland", "🇨🇭"},
	{"austria", "🇦🇹"},
	{"ireland", "🇮🇪"},
	{"scotland", "🏴󠁧󠁢󠁳󠁣󠁴󠁿"},
	{"canada", "🇨🇦"},
	{"hawaii", "🇺🇸"},
	{"caribbean", "🏝️"},
	{"bali", "🇮🇩"},
	{"indonesia", "🇮🇩"},
	{"philippines", "🇵🇭"},
	{"singapore", "🇸🇬"},
	{"hong kong", "🇭🇰"},
	{"south korea", "🇰🇷"},
	{"korea", "🇰🇷"},
	{"taiwan", "🇹🇼"},
	{"china", "🇨🇳"},
	{"india", "🇮🇳"},
	{"morocco", "🇲🇦"},
	{"egypt", "🇪🇬"},
	{"south africa", "🇿🇦"},
	{"brazil", "🇧🇷"},
	{"argentina", "🇦🇷"},
	{"chile", "🇨🇱"},
	{"colombia", "🇨🇴"},
	{"ecuador", "🇪🇨"},
	{"galapagos", "🇪🇨"},
}

// CountryCode resolves a destination string to a flag emoji by substring
// scan, defaulting to a generic globe.
func CountryCode(destination string) string {
	lower := strings.ToLower(destination)
	for _, entry := range countryFlags {
		if strings.Contains(lower, entry.key) {
			return entry.flag
		}
	}
	return "🌍"
}

// seasonOf buckets a best-months string into a named season.
func seasonOf(months string) string {
	m := strings.ToLower(months)
	switch {
	case strings.Contains(m, "mar") || strings.Contains(m, "apr") || strings.Contains(m, "may"):
		return "Spring"
	case strings.Contains(m, "jun") || strings.Contains(m, "jul") || strings.Contains(m, "aug"):
		return "Summer"
	case strings.Contains(m, "sep") || strings.Contains(m, "oct") || strings.Contains(m, "nov"):
		return "Fall"
	case strings.Contains(m, "dec") || strings.Contains(m, "jan") || strings.Contains(m, "feb"):
		return "Winter"
	}
	return "Year-round"
}

func seasonEmoji(months string) string {
	switch seasonOf(months) {
	case "Spring":
		return "🌸"
	case "Summer":
		return "☀️"
	case "Fall":
		return "🍂"
	case "Winter":
		return "❄️"
	}
	return "🌍"
}
