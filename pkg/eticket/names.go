package eticket

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// DefaultLocationTokens are city and country words that leak into passenger
// names when agents append a home city after the given names.
var DefaultLocationTokens = []string{
	"ARGENTINA", "ARUBA", "ASUNCION", "BARCELONA", "BARQUISIMETO", "BOGOTA",
	"BOLIVIA", "BRASIL", "BRAZIL", "BUENOS", "AIRES", "CANCUN", "CARACAS",
	"CARTAGENA", "CHILE", "CIUDAD", "COLOMBIA", "CORDOBA", "COSTA", "RICA",
	"CUBA", "CUSCO", "CURACAO", "ECUADOR", "ESPANA", "GUATEMALA", "GUAYAQUIL",
	"HABANA", "HONDURAS", "LIMA", "MADRID", "MARACAIBO", "MEDELLIN", "MERIDA",
	"MEXICO", "MIAMI", "MONTEVIDEO", "NICARAGUA", "PANAMA", "PARAGUAY", "PERU",
	"PUNTA", "CANA", "QUITO", "REPUBLICA", "DOMINICANA", "ROSARIO", "SALVADOR",
	"SANTIAGO", "SANTO", "DOMINGO", "SAO", "PAULO", "URUGUAY", "VALENCIA",
	"VENEZUELA",
}

// DefaultFirstNameWhitelist are location words that are also common given
// names and must survive as a lone given name.
var DefaultFirstNameWhitelist = []string{
	"DOLORES", "GUADALUPE", "MERCEDES", "ROSARIO", "SALVADOR", "SANTIAGO",
}

var (
	// trailingGroup captures the last parenthesised group of a name.
	trailingGroup = regexp.MustCompile(`\(([^()]*)\)\s*$`)
	// shortResidue is a leftover tag such as "(VE)" or "(CCS)".
	shortResidue = regexp.MustCompile(`\s*\(\s*[A-Za-z]{1,5}\s*\)$`)
	slashSpacing = regexp.MustCompile(`\s*/\s*`)
	cityPhrase   = regexp.MustCompile(`(?i)(?:^|\s)CIUDAD\s+DE(?:\s+\S+)+$`)
)

// NameSanitizer strips location residue from SURNAME/GIVEN passenger names.
// It is immutable after construction and safe for concurrent use.
type NameSanitizer struct {
	whitelist map[string]struct{}
	locations map[string]struct{}
}

// NewNameSanitizer builds a sanitizer. A nil locationTokens uses
// DefaultLocationTokens.
func NewNameSanitizer(whitelist, locationTokens []string) *NameSanitizer {
	if locationTokens == nil {
		locationTokens = DefaultLocationTokens
	}
	return &NameSanitizer{
		whitelist: tokenSet(whitelist),
		locations: tokenSet(locationTokens),
	}
}

func tokenSet(tokens []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		if key := foldToken(t); key != "" {
			set[key] = struct{}{}
		}
	}
	return set
}

// foldToken upper-cases a token and removes accents and edge punctuation.
func foldToken(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return strings.ToUpper(strings.Trim(strings.TrimSpace(folded), ".,;:-"))
}

func (s *NameSanitizer) isLocation(token string) bool {
	_, ok := s.locations[foldToken(token)]
	return ok
}

func (s *NameSanitizer) isWhitelisted(token string) bool {
	_, ok := s.whitelist[foldToken(token)]
	return ok
}

// Sanitize returns the cleaned name. Passes repeat until the name stops
// changing, so Sanitize(Sanitize(x)) == Sanitize(x).
func (s *NameSanitizer) Sanitize(raw string) string {
	current := raw
	for {
		next := s.pass(current)
		if next == current {
			return next
		}
		current = next
	}
}

func (s *NameSanitizer) pass(raw string) string {
	name := strings.TrimSpace(raw)

	for {
		m := trailingGroup.FindStringSubmatchIndex(name)
		if m == nil || !isLocationGroup(name[m[2]:m[3]]) {
			break
		}
		name = strings.TrimSpace(name[:m[0]])
	}

	name = strings.Join(strings.Fields(name), " ")

	if strings.Count(name, "/") != 1 {
		return name
	}

	if loc := shortResidue.FindStringIndex(name); loc != nil {
		name = strings.TrimSpace(name[:loc[0]])
	}

	name = slashSpacing.ReplaceAllString(name, "/")
	surname, given, _ := strings.Cut(name, "/")
	given = strings.TrimSpace(cityPhrase.ReplaceAllString(given, ""))

	tokens := s.dropLocationSuffix(strings.Fields(given))
	if len(tokens) == 1 && s.isLocation(tokens[0]) && !s.isWhitelisted(tokens[0]) {
		tokens = nil
	}
	return surname + "/" + strings.Join(tokens, " ")
}

// dropLocationSuffix removes the longest trailing run of location tokens,
// always keeping the first given-name token.
func (s *NameSanitizer) dropLocationSuffix(tokens []string) []string {
	for i := 1; i < len(tokens); i++ {
		if s.allLocations(tokens[i:]) {
			return tokens[:i]
		}
	}
	return tokens
}

func (s *NameSanitizer) allLocations(tokens []string) bool {
	for _, t := range tokens {
		if !s.isLocation(t) {
			return false
		}
	}
	return true
}

// isLocationGroup reports whether a parenthesised group reads like a place:
// alphabetic, at least two characters, and either several words or longer
// than an airport or country code.
func isLocationGroup(content string) bool {
	content = strings.TrimSpace(content)
	letters := 0
	for _, r := range content {
		switch {
		case unicode.IsLetter(r):
			letters++
		case r == ' ' || r == '.' || r == '-':
		default:
			return false
		}
	}
	if letters < 2 {
		return false
	}
	return strings.Contains(content, " ") || len([]rune(content)) > 5
}
