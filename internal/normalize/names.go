package normalize

import "strings"

// canonicalAliases maps known spelling variants of public figures to one
// canonical form. Matching is exact on the upper-cased, trimmed input.
// The table is a curated data-quality patch, never a fuzzy matcher.
var canonicalAliases = map[string]string{
	"FERNANDEZ DE KIRCHNER CRISTINA":          "FERNANDEZ DE KIRCHNER CRISTINA ELISABET",
	"FERNANDEZ DE KIRCHNER CRISTINA E":        "FERNANDEZ DE KIRCHNER CRISTINA ELISABET",
	"FERNANDEZ DE KIRCHNER CRISTINA ELISABET": "FERNANDEZ DE KIRCHNER CRISTINA ELISABET",
	"KIRCHNER CRISTINA FERNANDEZ DE":          "FERNANDEZ DE KIRCHNER CRISTINA ELISABET",
	"CRISTINA FERNANDEZ DE KIRCHNER":          "FERNANDEZ DE KIRCHNER CRISTINA ELISABET",
	"KIRCHNER NESTOR":                         "KIRCHNER NESTOR CARLOS",
	"KIRCHNER NESTOR C":                       "KIRCHNER NESTOR CARLOS",
	"KIRCHNER NESTOR CARLOS":                  "KIRCHNER NESTOR CARLOS",
	"DE VIDO JULIO":                           "DE VIDO JULIO MIGUEL",
	"DE VIDO JULIO M":                         "DE VIDO JULIO MIGUEL",
	"DE VIDO JULIO MIGUEL":                    "DE VIDO JULIO MIGUEL",
	"BAEZ LAZARO":                             "BAEZ LAZARO ANTONIO",
	"BAEZ LAZARO A":                           "BAEZ LAZARO ANTONIO",
	"BAEZ LAZARO ANTONIO":                     "BAEZ LAZARO ANTONIO",
	"MACRI MAURICIO":                          "MACRI MAURICIO",
	"MACRI MAURICIO S":                        "MACRI MAURICIO",
	"BOUDOU AMADO":                            "BOUDOU AMADO",
	"BOUDOU AMADO S":                          "BOUDOU AMADO",
}

// homonymExclusions are names that resemble an alias but belong to a
// different person. They must pass through untouched, so the exclusion
// check runs before the alias lookup.
var homonymExclusions = map[string]bool{
	"FERNANDEZ CRISTINA":        true,
	"KIRCHNER CARLOS":           true,
	"MACRI MAURICIO JOSE LUIS":  true,
	"FERNANDEZ DE CRISTINA ANA": true,
}

// CanonicalName folds known spelling variants of a person into one
// canonical upper-cased form. Names outside the alias table, and names
// on the homonym exclusion list, pass through upper-cased and trimmed.
func CanonicalName(raw string) string {
	name := strings.ToUpper(strings.TrimSpace(raw))
	if homonymExclusions[name] {
		return name
	}
	if canonical, ok := canonicalAliases[name]; ok {
		return canonical
	}
	return name
}

// DisplayName turns a canonical upper-cased person name into its
// display form, keeping Spanish particles cased the way the dashboard
// shows them.
func DisplayName(raw string) string {
	return FormatLabel(rewriteParticles(CanonicalName(raw)))
}

// rewriteParticles pre-cases "DE LA" and "DE" segments so that
// FormatLabel does not treat them as one-off acronyms.
func rewriteParticles(name string) string {
	name = strings.ReplaceAll(name, " DE LA ", " De La ")
	name = strings.ReplaceAll(name, " DE ", " De ")
	if strings.HasPrefix(name, "DE LA ") {
		name = "De La " + name[len("DE LA "):]
	} else if strings.HasPrefix(name, "DE ") {
		name = "De " + name[len("DE "):]
	}
	return name
}
