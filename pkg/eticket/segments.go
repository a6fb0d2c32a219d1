package eticket

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	// flightToken is a two-character airline designator followed by a flight
	// number, e.g. "LA 2401", "V03050" or "4M 1234".
	flightToken = regexp.MustCompile(`\b([A-Z][A-Z0-9]|[0-9][A-Z])[ ]?(\d{1,4})\b`)
	clockToken  = regexp.MustCompile(`\b([01]?\d|2[0-3]):([0-5]\d)\b`)
	labelLine   = regexp.MustCompile(`^[A-Za-z][A-Za-z ]*:`)
)

// findFlightNumber returns the first flight number in text without the
// separating space, plus the airline designator.
func findFlightNumber(text string) (number, designator string, ok bool) {
	m := flightToken.FindStringSubmatch(text)
	if m == nil {
		return "", "", false
	}
	return m[1] + m[2], m[1], true
}

// findClockTimes returns up to max HH:MM times in the order they appear.
func findClockTimes(text string, max int) []ClockTime {
	var out []ClockTime
	for _, m := range clockToken.FindAllStringSubmatch(text, max) {
		h, _ := strconv.Atoi(m[1])
		min, _ := strconv.Atoi(m[2])
		out = append(out, ClockTime{Hour: h, Minute: min})
	}
	return out
}

func isClockLine(line string) bool {
	return clockToken.MatchString(line) && strings.TrimSpace(clockToken.ReplaceAllString(line, "")) == ""
}

func isDateLine(line string) bool {
	loc := dateToken.FindStringIndex(line)
	return loc != nil && strings.TrimSpace(line[:loc[0]]) == ""
}

func isLabelLine(line string) bool {
	return labelLine.MatchString(strings.TrimSpace(line))
}

// nonEmptyLines splits text into trimmed lines, dropping the blank ones.
func nonEmptyLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func datePtr(t time.Time) *time.Time {
	return &t
}

func clockPtr(c ClockTime) *ClockTime {
	return &c
}
