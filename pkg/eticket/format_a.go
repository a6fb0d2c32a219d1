package eticket

import (
	"regexp"
	"strings"
)

// Format A field names.
const (
	FieldATicketNumber    = "NUMERO_DE_BOLETO"
	FieldAReservationCode = "CODIGO_DE_RESERVA"
	FieldAPassengerName   = "NOMBRE_DEL_PASAJERO"
	FieldAIssuingAirline  = "AEROLINEA_EMISORA"
	FieldAIssuingAgent    = "AGENTE_EMISOR"
	FieldAIssueDate       = "FECHA_DE_EMISION"
	FieldAFare            = "TARIFA"
	FieldATaxes           = "IMPUESTOS"
	FieldATotal           = "TOTAL"
	FieldAItinerary       = "ITINERARIO"
)

// formatA is the bilingual "Passenger Itinerary Receipt" layout where each
// flight is one line of airport codes, flight, class, date and times.
type formatA struct {
	cues   [][]*regexp.Regexp
	fields []FieldRule

	flightLines []*regexp.Regexp
	noise       []*regexp.Regexp
	airport     *regexp.Regexp
	class       *regexp.Regexp
	baggage     *regexp.Regexp
}

// NewFormatA compiles the Format A tables.
func NewFormatA() Format {
	return &formatA{
		cues: [][]*regexp.Regexp{
			{regexp.MustCompile(`(?i)kiusys\.com`)},
			{regexp.MustCompile(`(?i)passenger\s+itinerary\s+receipt`)},
			{regexp.MustCompile(`\bC1/[A-Z0-9]{6}\b`)},
			{regexp.MustCompile(`(?i)issue\s+agent`), regexp.MustCompile(`(?i)n[uú]mero\s+de\s+boleto`)},
		},
		fields: []FieldRule{
			rule(FieldATicketNumber, true,
				`(?mi)^[^\n:]*N[UÚ]MERO\s+DE\s+BOLETO[^\n:]*:[ \t]*([0-9][0-9 \-]*[0-9])`,
				`(?mi)^[^\n:]*TICKET\s+(?:NUMBER|NBR)[^\n:]*:[ \t]*([0-9][0-9 \-]*[0-9])`),
			rule(FieldAReservationCode, true,
				`\bC1/([A-Z0-9]{6})\b`,
				`(?mi)^[^\n:]*(?:C[OÓ]DIGO\s+DE\s+RESERVA|BOOKING\s+REF(?:ERENCE)?)[^\n:]*:[ \t]*(?:C1/)?([A-Z0-9]{5,8})\b`),
			rule(FieldAPassengerName, true,
				`(?mi)^[^\n:]*\bNOMBRE\b[^\n:]*:[ \t]*([^\n]*/[^\n]*)`,
				`(?mi)^[^\n:]*\b(?:PASSENGER|NAME)\b[^\n:]*:[ \t]*([^\n]*/[^\n]*)`),
			rule(FieldAIssuingAirline, true,
				`(?mi)^[^\n:]*(?:L[IÍ]NEA\s+A[EÉ]REA\s+EMISORA|AEROL[IÍ]NEA\s+EMISORA|ISSUING\s+AIRLINE)[^\n:]*:[ \t]*([^\n]+)`),
			rule(FieldAIssuingAgent, true,
				`(?mi)^[^\n:]*(?:AGENTE\s+EMISOR|ISSUE\s+AGENT)[^\n:]*:[ \t]*([^\n]+)`),
			rule(FieldAIssueDate, true,
				`(?mi)^[^\n:]*(?:FECHA\s+DE\s+EMISI[OÓ]N|ISSUE\s+DATE)[^\n:]*:[ \t]*([^\n]+)`),
			rule(FieldAFare, true,
				`(?mi)^[^\n:]*\b(?:TARIFA|AIR\s+FARE|FARE)\b[^\n:]*:[ \t]*([A-Z]{3}[ \t]*[0-9][0-9,.]*)`),
			rule(FieldATaxes, true,
				`(?mi)^[^\n:]*\b(?:IMPUESTOS|TAX(?:ES)?)\b[^\n:]*:[ \t]*([A-Z]{3}[ \t]*[0-9][0-9,.]*)`),
			rule(FieldATotal, true,
				`(?mi)^[ \t]*TOTAL\b[^\n:]*:[ \t]*([A-Z]{3}[ \t]*[0-9][0-9,.]*)`),
		},
		flightLines: []*regexp.Regexp{
			// CCS PTY V0 3050 Y 20ENE25 07:30 09:45
			regexp.MustCompile(`^[A-Z]{3}[ \t]+[A-Z]{3}[ \t]+[A-Z0-9]{2}[ ]?\d{1,4}\b`),
			// V0 3050 Y 20ENE25 CCS PTY 07:30 09:45
			regexp.MustCompile(`^[A-Z0-9]{2}[ ]?\d{1,4}[ \t]+[A-Z][ \t]+\d{1,2}[A-Za-z]{3}\d{2,4}\b`),
		},
		noise: []*regexp.Regexp{
			regexp.MustCompile(`(?i)t[eé]rminos\s+y\s+condiciones`),
			regexp.MustCompile(`(?i)terms\s+and\s+conditions`),
			regexp.MustCompile(`(?i)pol[ií]tica\s+de\s+equipaje`),
			regexp.MustCompile(`(?i)baggage\s+policy`),
			regexp.MustCompile(`(?i)^[^:\n]*\b(?:air\s+fare|tarifa|tax(?:es)?|impuestos|total)\b[^:\n]*:`),
			regexp.MustCompile(`(?i)forma\s+de\s+pago|form\s+of\s+payment`),
			regexp.MustCompile(`(?i)endosos|endorsements`),
			regexp.MustCompile(`(?i)este\s+documento|this\s+document`),
		},
		airport: regexp.MustCompile(`\b[A-Z]{3}\b`),
		class:   regexp.MustCompile(`\b(?:[A-Z][A-Z0-9]|[0-9][A-Z])[ ]?\d{1,4}[ \t]+([A-Z])\b`),
		baggage: regexp.MustCompile(`\b(\d{1,2}(?:PC|KG|K))\b`),
	}
}

func (f *formatA) Source() SourceFormat { return FormatA }

func (f *formatA) Vocabulary() Vocabulary {
	return Vocabulary{
		TicketNumber:    FieldATicketNumber,
		ReservationCode: FieldAReservationCode,
		PassengerName:   FieldAPassengerName,
		IssuingAirline:  FieldAIssuingAirline,
		IssuingAgent:    FieldAIssuingAgent,
		IssueDate:       FieldAIssueDate,
		Fare:            FieldAFare,
		Taxes:           FieldATaxes,
		Total:           FieldATotal,
		Itinerary:       FieldAItinerary,
	}
}

func (f *formatA) Matches(text string) bool {
	return matchesAnyCue(text, f.cues)
}

func (f *formatA) Extract(raw RawInput) ExtractedFields {
	return extractAll(documentText(raw), f.fields)
}

// ItineraryBlock opens a window at the first flight line and keeps every
// following line until the first noise line.
func (f *formatA) ItineraryBlock(raw RawInput) string {
	var captured []string
	open := false
	for _, line := range nonEmptyLines(documentText(raw)) {
		if !open {
			if !f.isFlightLine(line) {
				continue
			}
			open = true
		}
		if f.isNoise(line) {
			break
		}
		captured = append(captured, line)
	}
	return strings.Join(captured, "\n")
}

func (f *formatA) isFlightLine(line string) bool {
	for _, re := range f.flightLines {
		if re.MatchString(line) {
			return true
		}
	}
	return false
}

func (f *formatA) isNoise(line string) bool {
	for _, re := range f.noise {
		if re.MatchString(line) {
			return true
		}
	}
	return false
}

// Segments builds one best-effort leg per flight line of the block.
func (f *formatA) Segments(block string) []FlightSegment {
	var segments []FlightSegment
	for _, line := range nonEmptyLines(block) {
		if !f.isFlightLine(line) {
			continue
		}
		segments = append(segments, f.segment(line))
	}
	return segments
}

func (f *formatA) segment(line string) FlightSegment {
	var seg FlightSegment
	if number, _, ok := findFlightNumber(line); ok {
		seg.FlightNumber = strPtr(number)
	}

	codes := f.airport.FindAllString(line, -1)
	if len(codes) > 0 {
		seg.Origin = codes[0]
	}
	if len(codes) > 1 {
		seg.Destination = codes[1]
	}

	if d, ok := findDate(line); ok {
		seg.DepartureDate = datePtr(d)
	}
	times := findClockTimes(line, 2)
	if len(times) > 0 {
		seg.DepartureTime = clockPtr(times[0])
	}
	if len(times) > 1 {
		seg.ArrivalTime = clockPtr(times[1])
	}

	if m := f.class.FindStringSubmatch(line); m != nil {
		seg.Cabin = strPtr(m[1])
	}
	if m := f.baggage.FindAllStringSubmatch(line, -1); len(m) > 0 {
		seg.BaggageAllowance = strPtr(m[len(m)-1][1])
	}
	return seg
}
