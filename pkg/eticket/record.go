package eticket

import (
	"encoding/json"
	"time"
)

// segmentRecord is the wire shape of a FlightSegment. The names are consumed
// by ledger and template code and must not change.
type segmentRecord struct {
	SegmentIndex     int     `json:"segment_index"`
	FlightNumber     *string `json:"flight_number"`
	MarketingAirline *string `json:"marketing_airline"`
	Origin           string  `json:"origin"`
	Destination      string  `json:"destination"`
	DepartureDateISO *string `json:"departure_date_iso"`
	DepartureTime    *string `json:"departure_time"`
	ArrivalDateISO   *string `json:"arrival_date_iso"`
	ArrivalTime      *string `json:"arrival_time"`
	Cabin            *string `json:"cabin"`
	BaggageAllowance *string `json:"baggage_allowance"`
	DurationMinutes  *int64  `json:"duration_minutes"`
	LayoverMinutes   *int64  `json:"layover_minutes"`
}

type ticketRecord struct {
	SourceSystem        SourceFormat      `json:"source_system"`
	TicketNumber        *string           `json:"ticket_number"`
	ReservationCode     *string           `json:"reservation_code"`
	PassengerName       *string           `json:"passenger_name"`
	IssuingAirline      *string           `json:"issuing_airline"`
	IssuingAgent        *string           `json:"issuing_agent"`
	IssuingDateISO      *string           `json:"issuing_date_iso"`
	FareCurrency        *string           `json:"fare_currency"`
	FareAmount          *string           `json:"fare_amount"`
	TaxesCurrency       *string           `json:"taxes_currency"`
	TaxesAmount         *string           `json:"taxes_amount"`
	TotalCurrency       *string           `json:"total_currency"`
	TotalAmount         *string           `json:"total_amount"`
	AmountConsistency   ConsistencyStatus `json:"amount_consistency"`
	AmountDifference    *string           `json:"amount_difference"`
	TaxesAmountExpected *string           `json:"taxes_amount_expected"`
	TaxesDifference     *string           `json:"taxes_difference"`
	Segments            []segmentRecord   `json:"segments"`
	ItineraryText       *string           `json:"itinerary_text"`
	Errors              []string          `json:"errors"`
}

// MarshalJSON writes the segment with ISO dates and HH:MM times.
func (s FlightSegment) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.record())
}

func (s FlightSegment) record() segmentRecord {
	return segmentRecord{
		SegmentIndex:     s.Index,
		FlightNumber:     s.FlightNumber,
		MarketingAirline: s.MarketingAirline,
		Origin:           s.Origin,
		Destination:      s.Destination,
		DepartureDateISO: isoDate(s.DepartureDate),
		DepartureTime:    clockString(s.DepartureTime),
		ArrivalDateISO:   isoDate(s.ArrivalDate),
		ArrivalTime:      clockString(s.ArrivalTime),
		Cabin:            s.Cabin,
		BaggageAllowance: s.BaggageAllowance,
		DurationMinutes:  s.DurationMinutes,
		LayoverMinutes:   s.LayoverMinutes,
	}
}

// MarshalJSON writes the canonical flat record. Amounts are strings that keep
// their written scale.
func (t NormalizedTicket) MarshalJSON() ([]byte, error) {
	segments := make([]segmentRecord, 0, len(t.Segments))
	for _, s := range t.Segments {
		segments = append(segments, s.record())
	}
	errs := t.Errors
	if errs == nil {
		errs = []string{}
	}
	return json.Marshal(ticketRecord{
		SourceSystem:        t.SourceSystem,
		TicketNumber:        t.TicketNumber,
		ReservationCode:     t.ReservationCode,
		PassengerName:       t.PassengerName,
		IssuingAirline:      t.IssuingAirline,
		IssuingAgent:        t.IssuingAgent,
		IssuingDateISO:      t.IssuingDateISO,
		FareCurrency:        t.Fare.Currency,
		FareAmount:          formatDecimal(t.Fare.Amount),
		TaxesCurrency:       t.Taxes.Currency,
		TaxesAmount:         formatDecimal(t.Taxes.Amount),
		TotalCurrency:       t.Total.Currency,
		TotalAmount:         formatDecimal(t.Total.Amount),
		AmountConsistency:   t.Consistency.Status,
		AmountDifference:    formatDecimal(t.Consistency.AmountDifference),
		TaxesAmountExpected: formatDecimal(t.Consistency.TaxesAmountExpected),
		TaxesDifference:     formatDecimal(t.Consistency.TaxesDifference),
		Segments:            segments,
		ItineraryText:       t.ItineraryText,
		Errors:              errs,
	})
}

// Document returns the canonical record as a generic map, the shape stored
// next to the raw fields.
func (t NormalizedTicket) Document() (map[string]interface{}, error) {
	raw, err := json.Marshal(t)
	if err != nil {
		return nil, err
	}
	var doc map[string]interface{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func isoDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	return strPtr(t.Format(isoLayout))
}

func clockString(c *ClockTime) *string {
	if c == nil {
		return nil
	}
	return strPtr(c.String())
}
