package checkout

import "strings"

// Cash on delivery is only offered inside the two metro areas the courier
// partner covers. The list carries both diacritic and ASCII spellings since
// the city field is free text.
var codCities = []string{
	"hồ chí minh",
	"ho chi minh",
	"tp hcm",
	"tphcm",
	"hcm",
	"sài gòn",
	"sai gon",
	"saigon",
	"hà nội",
	"ha noi",
	"hanoi",
}

// CODEligible reports whether the resolved city qualifies for cash on
// delivery. Matching is a case-insensitive substring test in either
// direction, so "TP. Hồ Chí Minh" and plain "hcm" both pass.
func CODEligible(city string) bool {
	normalized := strings.ToLower(strings.TrimSpace(city))
	if normalized == "" {
		return false
	}
	for _, candidate := range codCities {
		if strings.Contains(normalized, candidate) || strings.Contains(candidate, normalized) {
			return true
		}
	}
	return false
}
