package eticket

import (
	"regexp"
	"strings"
	"time"
)

const isoLayout = "2006-01-02"

// dateLayouts is tried in order; the first layout that consumes the whole
// string wins. Two-digit years come first so that "15JAN25" is not read with a
// four-digit layout. Month names match case-insensitively.
var dateLayouts = []string{
	"2Jan06",
	"2 Jan 06",
	"2-Jan-06",
	"2Jan2006",
	"2 Jan 2006",
	"2-Jan-2006",
	"2/1/06",
	"2/1/2006",
	isoLayout,
}

// spanishMonths only lists abbreviations that differ from the English ones.
var spanishMonths = map[string]string{
	"ENE": "JAN",
	"ABR": "APR",
	"AGO": "AUG",
	"SET": "SEP",
	"DIC": "DEC",
}

var (
	letterRun = regexp.MustCompile(`[A-Za-z]+`)

	// dateToken finds a date inside free text. The four-digit year
	// alternatives are listed first so they win over the two-digit ones.
	dateToken = regexp.MustCompile(`\b\d{1,2}[ \-]?[A-Za-z]{3}[ \-]?(?:\d{4}|\d{2})\b|\b\d{1,2}/\d{1,2}/(?:\d{4}|\d{2})\b|\b\d{4}-\d{2}-\d{2}\b`)
)

// translateMonths replaces whole letter runs that are Spanish month
// abbreviations with their English form. "15ENE25" becomes "15JAN25" while
// "ENERO" is left untouched.
func translateMonths(s string) string {
	return letterRun.ReplaceAllStringFunc(s, func(word string) string {
		if en, ok := spanishMonths[strings.ToUpper(word)]; ok {
			return en
		}
		return word
	})
}

// ParseDate parses s with the fixed layout table. The returned date is at
// midnight UTC.
func ParseDate(s string) (time.Time, bool) {
	value := strings.TrimSpace(translateMonths(s))
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ToISO converts a date written in any supported layout to YYYY-MM-DD.
func ToISO(s string) (string, bool) {
	t, ok := ParseDate(s)
	if !ok {
		return "", false
	}
	return t.Format(isoLayout), true
}

// findDate returns the first parseable date token inside free text.
func findDate(text string) (time.Time, bool) {
	for _, candidate := range dateToken.FindAllString(text, -1) {
		if t, ok := ParseDate(candidate); ok {
			return t, true
		}
	}
	return time.Time{}, false
}

// isoFromValue prefers the whole value as a date and falls back to the first
// date token inside it.
func isoFromValue(value string) *string {
	if iso, ok := ToISO(value); ok {
		return &iso
	}
	if t, ok := findDate(value); ok {
		return strPtr(t.Format(isoLayout))
	}
	return nil
}
