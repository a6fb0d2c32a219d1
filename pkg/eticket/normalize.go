package eticket

import "strings"

// Normalize maps one format's fields and segments onto the canonical ticket.
// An Unrecognized source yields an empty ticket carrying ErrGDSNotRecognized.
func (p *Parser) Normalize(detected SourceFormat, fields ExtractedFields, segments []FlightSegment) NormalizedTicket {
	format, ok := p.registry.Lookup(detected)
	if detected == Unrecognized || !ok {
		return NormalizedTicket{
			SourceSystem: Unrecognized,
			Segments:     []FlightSegment{},
			Consistency:  ConsistencyResult{Status: StatusOK},
			Errors:       []string{ErrGDSNotRecognized},
		}
	}
	v := format.Vocabulary()

	t := NormalizedTicket{
		SourceSystem:    detected,
		TicketNumber:    compactField(fields, v.TicketNumber),
		ReservationCode: optionalField(fields, v.ReservationCode),
		IssuingAirline:  optionalField(fields, v.IssuingAirline),
		IssuingAgent:    optionalField(fields, v.IssuingAgent),
		ItineraryText:   optionalField(fields, v.Itinerary),
		Segments:        append([]FlightSegment{}, segments...),
		Errors:          []string{},
	}

	if name, ok := fields.Get(v.PassengerName); ok {
		if clean := p.sanitizer.Sanitize(name); clean != "" {
			t.PassengerName = &clean
		}
	}
	if date, ok := fields.Get(v.IssueDate); ok {
		t.IssuingDateISO = isoFromValue(date)
	}

	t.Fare = amountField(fields, v.Fare)
	t.Taxes = amountField(fields, v.Taxes)
	t.Total = amountField(fields, v.Total)
	t.Consistency = Validate(t.Fare, t.Taxes, t.Total, p.tolerance)

	// Missing taxes are derived from total - fare rather than reported.
	if t.Taxes.Amount == nil && t.Consistency.TaxesAmountExpected != nil {
		expected := *t.Consistency.TaxesAmountExpected
		t.Taxes = MonetaryAmount{Currency: t.Total.Currency, Amount: &expected}
		if t.Taxes.Currency == nil {
			t.Taxes.Currency = t.Fare.Currency
		}
	}

	t.Errors = warnings(t)
	return t
}

// warnings lists the data-quality problems of a recognized ticket.
func warnings(t NormalizedTicket) []string {
	out := []string{}
	missing := []struct {
		name  string
		value *string
	}{
		{"ticket number", t.TicketNumber},
		{"reservation code", t.ReservationCode},
		{"passenger name", t.PassengerName},
		{"issuing date", t.IssuingDateISO},
	}
	for _, m := range missing {
		if m.value == nil {
			out = append(out, m.name+" not found")
		}
	}
	if t.Total.Amount == nil {
		out = append(out, "total amount not found")
	}
	if len(t.Segments) == 0 {
		out = append(out, "no itinerary segments found")
	}
	if t.Consistency.Status == StatusMismatch {
		out = append(out, "amount mismatch: fare + taxes != total")
	}
	return out
}

func optionalField(fields ExtractedFields, name string) *string {
	if v, ok := fields.Get(name); ok && strings.TrimSpace(v) != "" {
		return strPtr(strings.TrimSpace(v))
	}
	return nil
}

// compactField removes inner whitespace, e.g. "308 2345678901".
func compactField(fields ExtractedFields, name string) *string {
	v := optionalField(fields, name)
	if v == nil {
		return nil
	}
	return strPtr(strings.Join(strings.Fields(*v), ""))
}

func amountField(fields ExtractedFields, name string) MonetaryAmount {
	if v, ok := fields.Get(name); ok {
		return MonetaryFrom(v)
	}
	return MonetaryAmount{}
}

// WithAirlineNames returns a copy of t where segments lacking a marketing
// airline get the name lookup returns for their flight designator.
func (t NormalizedTicket) WithAirlineNames(lookup func(designator string) (string, bool)) NormalizedTicket {
	segments := make([]FlightSegment, len(t.Segments))
	copy(segments, t.Segments)
	for i, seg := range segments {
		if seg.MarketingAirline != nil || seg.FlightNumber == nil || len(*seg.FlightNumber) < 2 {
			continue
		}
		if name, ok := lookup((*seg.FlightNumber)[:2]); ok && name != "" {
			segments[i].MarketingAirline = strPtr(name)
		}
	}
	t.Segments = segments
	t.Errors = append([]string{}, t.Errors...)
	return t
}

// Designators lists the distinct airline designators of the flights.
func (t NormalizedTicket) Designators() []string {
	seen := map[string]struct{}{}
	var out []string
	for _, seg := range t.Segments {
		if seg.FlightNumber == nil || len(*seg.FlightNumber) < 2 {
			continue
		}
		code := (*seg.FlightNumber)[:2]
		if _, ok := seen[code]; ok {
			continue
		}
		seen[code] = struct{}{}
		out = append(out, code)
	}
	return out
}
