package normalize

import (
	"regexp"
	"strings"
)

// Crime is one parsed crime descriptor. Article and Code are empty when
// the raw string carried no recognizable statute reference.
type Crime struct {
	Name    string
	Article string
	Code    string
}

// The source data writes crimes in three recurring shapes plus free
// text. Patterns are tried in order and the first match wins.
var (
	// "Art. 210 CP - ASOCIACION ILICITA"
	crimeDashPattern = regexp.MustCompile(`^(?:[Aa]rt\.?\s*)?(\d+(?:\s*(?:inc|bis|ter)\.?\s*\d+)?)\s*([A-Z\.]+)?\s*-\s*(.+)$`)
	// "ASOCIACION ILICITA (Art. 210 CP)"
	crimeParenPattern = regexp.MustCompile(`^(.+?)\s*\((?:[Aa]rt\.?\s*)?(\d+(?:\s*(?:inc|bis|ter)\.?\s*\d+)?)\s*([A-Z\.]+)?\)$`)
	// "210 CP ASOCIACION ILICITA"
	crimeBarePattern = regexp.MustCompile(`^(\d+)\s+([A-Z\.]+)?\s*-?\s*(.+)$`)
)

// ParseCrime decomposes one raw crime descriptor into its name, penal
// code article and statute code. Unrecognized input falls back to the
// whole trimmed string as the name, so parsing never fails.
func ParseCrime(raw string) Crime {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Crime{}
	}

	if m := crimeDashPattern.FindStringSubmatch(s); m != nil {
		return Crime{
			Name:    strings.TrimSpace(m[3]),
			Article: strings.TrimSpace(m[1]),
			Code:    strings.TrimSpace(m[2]),
		}
	}

	if m := crimeParenPattern.FindStringSubmatch(s); m != nil {
		return Crime{
			Name:    strings.TrimSpace(m[1]),
			Article: strings.TrimSpace(m[2]),
			Code:    strings.TrimSpace(m[3]),
		}
	}

	if m := crimeBarePattern.FindStringSubmatch(s); m != nil && len(m[1]) <= 4 {
		return Crime{
			Name:    strings.TrimSpace(m[3]),
			Article: strings.TrimSpace(m[1]),
			Code:    strings.TrimSpace(m[2]),
		}
	}

	return Crime{Name: s}
}

// SplitCrimes splits a comma-separated crime list and parses each
// non-empty entry.
func SplitCrimes(raw string) []Crime {
	var crimes []Crime
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part == "" {
			continue
		}
		crimes = append(crimes, ParseCrime(part))
	}
	return crimes
}
