package eticket

import (
	"crypto/sha256"
	"encoding/hex"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

// Config is the read-only configuration of a Parser.
type Config struct {
	// FirstNameWhitelist protects given names that are also place names.
	FirstNameWhitelist []string
	// LocationTokens replaces DefaultLocationTokens when non-nil.
	LocationTokens []string
	// Tolerance is the largest taxes difference reported as OK.
	Tolerance decimal.Decimal
}

// DefaultConfig returns the built-in whitelist, location tokens and tolerance.
func DefaultConfig() Config {
	return Config{
		FirstNameWhitelist: append([]string(nil), DefaultFirstNameWhitelist...),
		LocationTokens:     append([]string(nil), DefaultLocationTokens...),
		Tolerance:          DefaultTolerance(),
	}
}

// Parser turns raw receipts into NormalizedTicket values. It holds only
// immutable tables and may be shared between goroutines.
type Parser struct {
	registry    *Registry
	sanitizer   *NameSanitizer
	tolerance   decimal.Decimal
	fingerprint string
}

// NewParser builds a parser over DefaultRegistry.
func NewParser(cfg Config) *Parser {
	return NewParserWithRegistry(cfg, DefaultRegistry())
}

// NewParserWithRegistry builds a parser over a caller supplied registry.
func NewParserWithRegistry(cfg Config, registry *Registry) *Parser {
	if registry == nil {
		registry = DefaultRegistry()
	}
	return &Parser{
		registry:    registry,
		sanitizer:   NewNameSanitizer(cfg.FirstNameWhitelist, cfg.LocationTokens),
		tolerance:   cfg.Tolerance,
		fingerprint: configFingerprint(cfg, registry),
	}
}

// Fingerprint identifies the configuration the parser was built with. Two
// parsers with the same fingerprint produce the same output for any input.
func (p *Parser) Fingerprint() string {
	return p.fingerprint
}

func configFingerprint(cfg Config, registry *Registry) string {
	locations := cfg.LocationTokens
	if locations == nil {
		locations = DefaultLocationTokens
	}

	var b strings.Builder
	for _, set := range [][]string{cfg.FirstNameWhitelist, locations} {
		keys := make([]string, 0, len(set))
		for key := range tokenSet(set) {
			keys = append(keys, key)
		}
		slices.Sort(keys)
		b.WriteString(strings.Join(keys, ","))
		b.WriteByte('|')
	}
	b.WriteString(cfg.Tolerance.String())
	for _, f := range registry.Formats() {
		b.WriteByte('|')
		b.WriteString(string(f.Source()))
	}

	sum := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:8])
}

// Sanitizer exposes the name sanitizer the parser was built with.
func (p *Parser) Sanitizer() *NameSanitizer {
	return p.sanitizer
}

// Parse runs the whole pipeline on one document. It never panics on bad data:
// problems end up as nil fields or in Ticket.Errors.
func (p *Parser) Parse(raw RawInput) Result {
	detected := p.Detect(raw)
	format, ok := p.registry.Lookup(detected)
	if !ok {
		return Result{
			Ticket: p.Normalize(Unrecognized, nil, nil),
			Fields: ExtractedFields{},
			Legacy: map[string]string{},
		}
	}

	vocab := format.Vocabulary()
	fields := format.Extract(raw)
	block := format.ItineraryBlock(raw)
	if block != "" {
		fields[vocab.Itinerary] = block
	}

	segments := p.ParseSegments(block, detected)
	return Result{
		Ticket: p.Normalize(detected, fields, segments),
		Fields: fields,
		Legacy: fields.Legacy(vocab.Names()),
	}
}

// ParseSegments splits an itinerary block with the rules of source and fills
// in indexes, inferred arrival dates, durations and layovers. An unknown
// source or a blank block yields no segments.
func (p *Parser) ParseSegments(block string, source SourceFormat) []FlightSegment {
	format, ok := p.registry.Lookup(source)
	if !ok || strings.TrimSpace(block) == "" {
		return []FlightSegment{}
	}
	return ComputeTimings(format.Segments(block))
}
