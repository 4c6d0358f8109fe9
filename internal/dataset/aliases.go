package dataset

import "strings"

// teamAliases maps historical and feed-specific team codes to the canonical
// codes used by the ratings table.
var teamAliases = map[string]string{
	// Washington
	"WAS": "WSH", "WFT": "WSH", "COMMANDERS": "WSH",
	// Relocations
	"STL": "LAR", "SD": "LAC", "OAK": "LV", "RAIDERS": "LV",
	// Feed spellings
	"JAC": "JAX",
	"NWE": "NE", "N.E.": "NE",
	"GNB": "GB",
	"SFO": "SF",
	"NOR": "NO",
	"KAN": "KC",
	"TAM": "TB",
	"N.Y. JETS": "NYJ", "NY JETS": "NYJ", "NEW YORK JETS": "NYJ",
	"N.Y. GIANTS": "NYG", "NY GIANTS": "NYG", "NEW YORK GIANTS": "NYG",
}

// NormalizeTeamCode uppercases, trims, and resolves aliases to the canonical
// team code. Unknown codes pass through unchanged.
func NormalizeTeamCode(code string) string {
	s := strings.ToUpper(strings.TrimSpace(code))
	if canonical, ok := teamAliases[s]; ok {
		return canonical
	}
	return s
}
