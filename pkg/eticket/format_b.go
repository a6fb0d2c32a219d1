package eticket

import (
	"regexp"
	"strings"
)

// Format B field names.
const (
	FieldBTicketNumber    = "numero_boleto"
	FieldBReservationCode = "codigo_reservacion"
	FieldBPassengerName   = "nombre_pasajero"
	FieldBIssuingAirline  = "aerolinea_emisora"
	FieldBIssuingAgent    = "agente_emisor"
	FieldBIssueDate       = "fecha_emision"
	FieldBFare            = "tarifa"
	FieldBTaxes           = "impuestos"
	FieldBTotal           = "total"
	FieldBItinerary       = "itinerario"
)

// formatB is the English "Electronic Ticket Receipt" layout with an
// "Itinerary Details" section of one block per flight.
type formatB struct {
	cues   [][]*regexp.Regexp
	fields []FieldRule

	itineraryStart *regexp.Regexp
	itineraryEnd   *regexp.Regexp
	segmentStart   *regexp.Regexp
	departure      *regexp.Regexp
	arrival        *regexp.Regexp
	operatedBy     *regexp.Regexp
	cabin          *regexp.Regexp
	baggage        *regexp.Regexp
	placeless      *regexp.Regexp
	routeSeparator *regexp.Regexp
	cityCountry    *regexp.Regexp
}

// NewFormatB compiles the Format B tables.
func NewFormatB() Format {
	return &formatB{
		// Each inner list is one heuristic; all of its patterns must match.
		cues: [][]*regexp.Regexp{
			{regexp.MustCompile(`(?i)itinerary\s+details`), regexp.MustCompile(`(?i)reservation\s+code`)},
			{regexp.MustCompile(`(?i)electronic\s+ticket\s+receipt`), regexp.MustCompile(`(?i)reservation\s+code`)},
		},
		fields: []FieldRule{
			rule(FieldBTicketNumber, true,
				`(?mi)^[ \t]*Ticket\s+Number:?[ \t]*([0-9][0-9 \-]{8,}[0-9])`,
				`(?i)e-?ticket(?:\s+number)?:?[ \t]*([0-9]{3}-?[0-9]{10})`),
			rule(FieldBReservationCode, true,
				`(?mi)Reservation\s+Code:?[ \t]*([A-Z0-9]{5,8})\b`,
				`(?mi)Booking\s+Reference:?[ \t]*([A-Z0-9]{5,8})\b`),
			rule(FieldBPassengerName, true,
				`(?mi)^[ \t]*Prepared\s+For:?[ \t]*\n[ \t]*([^\n]*/[^\n]*)`,
				`(?mi)^[ \t]*Prepared\s+For:?[ \t]+([^\n]*/[^\n]*)`,
				`(?mi)^[ \t]*Passenger(?:\s+Name)?:?[ \t]+([^\n]+)`),
			rule(FieldBIssuingAirline, true,
				`(?mi)^[ \t]*Issuing\s+Airline:?[ \t]*([^\n]+)`),
			rule(FieldBIssuingAgent, true,
				`(?mi)^[ \t]*Issuing\s+Agent:?[ \t]*([^\n]+)`),
			rule(FieldBIssueDate, true,
				`(?mi)^[ \t]*Issue\s+Date:?[ \t]*([^\n]+)`,
				`(?mi)^[ \t]*Date\s+of\s+Issue:?[ \t]*([^\n]+)`),
			rule(FieldBFare, true,
				`(?m)^[ \t]*(?:Base\s+)?Fare:?[ \t]*([A-Z]{3}[ \t]*[0-9][0-9,.]*)`),
			rule(FieldBTaxes, true,
				`(?m)^[ \t]*Taxes(?:/Fees/Charges)?:?[ \t]*([A-Z]{3}[ \t]*[0-9][0-9,.]*)`,
				`(?m)^[ \t]*Tax[^\n:]*:[ \t]*([A-Z]{3}[ \t]*[0-9][0-9,.]*)`),
			rule(FieldBTotal, true,
				`(?m)^[ \t]*Total(?:\s+Fare|\s+Amount)?:?[ \t]*([A-Z]{3}[ \t]*[0-9][0-9,.]*)`),
		},
		itineraryStart: regexp.MustCompile(`(?i)itinerary\s+details`),
		itineraryEnd:   regexp.MustCompile(`(?mi)^[ \t]*(?:Fare\s+(?:and\s+Payment\s+)?Details|Payment\s+Details|Fare\s+Calculation|Receipt\s+Details|Form\s+of\s+Payment|Notice)\b`),
		segmentStart:   regexp.MustCompile(`(?m)^[ \t]*(?:\d{1,2}[ \t]*[A-Za-z]{3,}[ \t]*\d{2,4}\b|Departure:)`),
		departure:      regexp.MustCompile(`(?mi)^[ \t]*Departure:[ \t]*([^\n]*)`),
		arrival:        regexp.MustCompile(`(?mi)^[ \t]*Arrival:[ \t]*([^\n]*)`),
		operatedBy:     regexp.MustCompile(`(?mi)Operated\s+by:?[ \t]*([^\n]+)`),
		cabin:          regexp.MustCompile(`(?mi)^[ \t]*Cabin:?[ \t]*([^\n]+)`),
		baggage:        regexp.MustCompile(`(?mi)^[ \t]*Baggage\s+Allowance:?[ \t]*([^\n]+)`),
		placeless:      regexp.MustCompile(`(?i)^(?:Operated\s+by|Cabin|Baggage(?:\s+Allowance)?)$`),
		routeSeparator: regexp.MustCompile(`\s+(?:-|[\x{2013}\x{2014}]|(?i:to)|/)\s+`),
		cityCountry:    regexp.MustCompile(`[A-Z][A-Za-z.' \-]*[A-Za-z.],[ \t]*[A-Z][A-Za-z.']*(?:[ \t]+[A-Z][A-Za-z.']*)*`),
	}
}

func (f *formatB) Source() SourceFormat { return FormatB }

func (f *formatB) Vocabulary() Vocabulary {
	return Vocabulary{
		TicketNumber:    FieldBTicketNumber,
		ReservationCode: FieldBReservationCode,
		PassengerName:   FieldBPassengerName,
		IssuingAirline:  FieldBIssuingAirline,
		IssuingAgent:    FieldBIssuingAgent,
		IssueDate:       FieldBIssueDate,
		Fare:            FieldBFare,
		Taxes:           FieldBTaxes,
		Total:           FieldBTotal,
		Itinerary:       FieldBItinerary,
	}
}

func (f *formatB) Matches(text string) bool {
	return matchesAnyCue(text, f.cues)
}

func (f *formatB) Extract(raw RawInput) ExtractedFields {
	return extractAll(documentText(raw), f.fields)
}

// ItineraryBlock prefers a <pre> block from the HTML rendition, then narrows
// the text to the "Itinerary Details" section when the header is present.
func (f *formatB) ItineraryBlock(raw RawInput) string {
	text, ok := PreformattedText(raw.HTMLText)
	if !ok {
		text = documentText(raw)
	}
	if loc := f.itineraryStart.FindStringIndex(text); loc != nil {
		text = text[loc[1]:]
	}
	if loc := f.itineraryEnd.FindStringIndex(text); loc != nil {
		text = text[:loc[0]]
	}
	return strings.TrimSpace(text)
}

func (f *formatB) Segments(block string) []FlightSegment {
	var segments []FlightSegment
	for _, chunk := range f.chunks(block) {
		if seg, ok := f.segment(chunk); ok {
			segments = append(segments, seg)
		}
	}
	return segments
}

// chunks cuts the block at every date-led or "Departure:" line. Text before
// the first cut is a header and is not a flight.
func (f *formatB) chunks(block string) []string {
	starts := f.segmentStart.FindAllStringIndex(block, -1)
	if len(starts) == 0 {
		return []string{block}
	}
	chunks := make([]string, 0, len(starts))
	for i, loc := range starts {
		end := len(block)
		if i+1 < len(starts) {
			end = starts[i+1][0]
		}
		chunks = append(chunks, block[loc[0]:end])
	}
	return chunks
}

func (f *formatB) segment(chunk string) (FlightSegment, bool) {
	number, _, ok := findFlightNumber(chunk)
	if !ok {
		return FlightSegment{}, false
	}
	seg := FlightSegment{FlightNumber: strPtr(number)}
	lines := nonEmptyLines(chunk)

	if v, ok := labelValue(f.departure, chunk); ok {
		if d, ok := findDate(v); ok {
			seg.DepartureDate = datePtr(d)
		}
	}
	if seg.DepartureDate == nil && len(lines) > 0 && isDateLine(lines[0]) {
		if d, ok := findDate(lines[0]); ok {
			seg.DepartureDate = datePtr(d)
		}
	}
	if v, ok := labelValue(f.arrival, chunk); ok {
		if d, ok := findDate(v); ok {
			seg.ArrivalDate = datePtr(d)
		}
	}

	seg.MarketingAirline = f.marketingAirline(lines, chunk)

	places := f.places(lines)
	if len(places) > 0 {
		seg.Origin = places[0]
	}
	if len(places) > 1 {
		seg.Destination = places[1]
	}

	times := findClockTimes(chunk, 2)
	if len(times) > 0 {
		seg.DepartureTime = clockPtr(times[0])
	}
	if len(times) > 1 {
		seg.ArrivalTime = clockPtr(times[1])
	}

	if v, ok := labelValue(f.cabin, chunk); ok {
		seg.Cabin = strPtr(v)
	}
	if v, ok := labelValue(f.baggage, chunk); ok {
		seg.BaggageAllowance = strPtr(v)
	}
	return seg, true
}

// places returns every "City, Country" in the chunk in order. Labelled lines
// count through their value, except labels that never hold a place. The
// country is a run of capitalised words, so "Lima, Peru to Cusco, Peru" is two
// places.
func (f *formatB) places(lines []string) []string {
	var places []string
	for _, line := range lines {
		text := line
		if isLabelLine(line) {
			label, value, _ := strings.Cut(line, ":")
			if f.placeless.MatchString(strings.TrimSpace(label)) {
				continue
			}
			text = value
		}
		for _, part := range f.routeSeparator.Split(text, -1) {
			for _, m := range f.cityCountry.FindAllString(part, -1) {
				places = append(places, strings.TrimSpace(m))
			}
		}
	}
	return places
}

// marketingAirline is the plain line right above the flight number, falling
// back to the "Operated by" value.
func (f *formatB) marketingAirline(lines []string, chunk string) *string {
	for i, line := range lines {
		if !flightToken.MatchString(line) {
			continue
		}
		if i > 0 {
			prev := lines[i-1]
			if !isClockLine(prev) && !isDateLine(prev) && !isLabelLine(prev) && !flightToken.MatchString(prev) {
				return strPtr(prev)
			}
		}
		break
	}
	if v, ok := labelValue(f.operatedBy, chunk); ok {
		return strPtr(v)
	}
	return nil
}

func labelValue(re *regexp.Regexp, text string) (string, bool) {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	v := strings.TrimSpace(m[1])
	return v, v != ""
}

func matchesAnyCue(text string, cues [][]*regexp.Regexp) bool {
	for _, all := range cues {
		matched := true
		for _, re := range all {
			if !re.MatchString(text) {
				matched = false
				break
			}
		}
		if matched {
			return true
		}
	}
	return false
}
