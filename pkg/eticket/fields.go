package eticket

import (
	"regexp"
	"strings"
)

// ExtractedFields maps a format's field names to their raw values. A field
// that was not found is absent from the map.
type ExtractedFields map[string]string

// Get returns the value of name and whether it was found.
func (f ExtractedFields) Get(name string) (string, bool) {
	v, ok := f[name]
	return v, ok
}

// Legacy renders the map for consumers that expect every field to be present.
func (f ExtractedFields) Legacy(names []string) map[string]string {
	out := make(map[string]string, len(names))
	for _, name := range names {
		if v, ok := f[name]; ok {
			out[name] = v
			continue
		}
		out[name] = NotFound
	}
	for name, v := range f {
		if _, ok := out[name]; !ok {
			out[name] = v
		}
	}
	return out
}

// FieldRule is an ordered pattern list for one field. When SingleLine is set
// the captured value is cut at the first line break.
type FieldRule struct {
	Name       string
	Patterns   []*regexp.Regexp
	SingleLine bool
}

func rule(name string, singleLine bool, patterns ...string) FieldRule {
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		compiled = append(compiled, regexp.MustCompile(p))
	}
	return FieldRule{Name: name, Patterns: compiled, SingleLine: singleLine}
}

// LookupField applies patterns in order and returns the first non-empty
// capture. Patterns without a group yield their whole match. An empty pattern
// list is a programming error.
func LookupField(text string, patterns []*regexp.Regexp) (string, bool) {
	return lookup(text, patterns, false)
}

// LookupFieldSingleLine is LookupField with the value cut at the first line
// break before trimming.
func LookupFieldSingleLine(text string, patterns []*regexp.Regexp) (string, bool) {
	return lookup(text, patterns, true)
}

// ExtractField returns the first match of patterns or def.
func ExtractField(text string, patterns []*regexp.Regexp, def string) string {
	if v, ok := LookupField(text, patterns); ok {
		return v
	}
	return def
}

// ExtractFieldSingleLine returns the first single-line match of patterns or def.
func ExtractFieldSingleLine(text string, patterns []*regexp.Regexp, def string) string {
	if v, ok := LookupFieldSingleLine(text, patterns); ok {
		return v
	}
	return def
}

func lookup(text string, patterns []*regexp.Regexp, singleLine bool) (string, bool) {
	if len(patterns) == 0 {
		panic("eticket: field lookup with an empty pattern list")
	}
	for _, re := range patterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		value := m[0]
		if len(m) > 1 {
			value = m[1]
		}
		if singleLine {
			if i := strings.IndexAny(value, "\r\n"); i >= 0 {
				value = value[:i]
			}
		}
		if value = strings.TrimSpace(value); value != "" {
			return value, true
		}
	}
	return "", false
}

// extractAll runs every rule against text.
func extractAll(text string, rules []FieldRule) ExtractedFields {
	fields := make(ExtractedFields, len(rules))
	for _, r := range rules {
		if v, ok := lookup(text, r.Patterns, r.SingleLine); ok {
			fields[r.Name] = v
		}
	}
	return fields
}
