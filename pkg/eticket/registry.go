package eticket

// Vocabulary maps the canonical fields onto one format's field names.
type Vocabulary struct {
	TicketNumber    string
	ReservationCode string
	PassengerName   string
	IssuingAirline  string
	IssuingAgent    string
	IssueDate       string
	Fare            string
	Taxes           string
	Total           string
	Itinerary       string
}

// Names lists the vocabulary in a stable order.
func (v Vocabulary) Names() []string {
	return []string{
		v.TicketNumber, v.ReservationCode, v.PassengerName, v.IssuingAirline,
		v.IssuingAgent, v.IssueDate, v.Fare, v.Taxes, v.Total, v.Itinerary,
	}
}

// Format is one receipt layout. Implementations hold their compiled pattern
// tables and must not change them after construction.
type Format interface {
	Source() SourceFormat
	// Matches reports whether the detection text carries this layout's cues.
	Matches(text string) bool
	Extract(raw RawInput) ExtractedFields
	// ItineraryBlock returns the part of the document holding the flights.
	ItineraryBlock(raw RawInput) string
	// Segments splits an itinerary block into raw legs, before timing.
	Segments(block string) []FlightSegment
	Vocabulary() Vocabulary
}

// Registry is the ordered, read-only set of formats a Parser knows about.
// Detection walks the formats in registration order.
type Registry struct {
	formats []Format
}

// NewRegistry builds a registry in priority order. It panics when called with
// no formats or with two formats for the same source.
func NewRegistry(formats ...Format) *Registry {
	if len(formats) == 0 {
		panic("eticket: registry needs at least one format")
	}
	seen := make(map[SourceFormat]struct{}, len(formats))
	for _, f := range formats {
		if _, dup := seen[f.Source()]; dup {
			panic("eticket: duplicate format " + string(f.Source()))
		}
		seen[f.Source()] = struct{}{}
	}
	return &Registry{formats: append([]Format(nil), formats...)}
}

// DefaultRegistry registers Format B ahead of Format A. Format B receipts can
// contain phrases that also satisfy the looser Format A cues.
func DefaultRegistry() *Registry {
	return NewRegistry(NewFormatB(), NewFormatA())
}

// Formats returns the formats in priority order.
func (r *Registry) Formats() []Format {
	return append([]Format(nil), r.formats...)
}

// Lookup returns the format registered for src.
func (r *Registry) Lookup(src SourceFormat) (Format, bool) {
	for _, f := range r.formats {
		if f.Source() == src {
			return f, true
		}
	}
	return nil, false
}
