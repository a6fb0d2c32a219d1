// Package eticket parses airline e-ticket receipts into one canonical record.
//
// The parser is a pure function of its input: it performs no I/O, keeps no
// mutable state between calls and is safe for concurrent use once built with
// NewParser. Missing or malformed data never aborts a parse; it surfaces as nil
// fields or as entries in NormalizedTicket.Errors.
package eticket

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// SourceFormat identifies the receipt layout a document was produced in.
type SourceFormat string

const (
	FormatA      SourceFormat = "FORMAT_A"
	FormatB      SourceFormat = "FORMAT_B"
	Unrecognized SourceFormat = "UNRECOGNIZED"
)

// NotFound is the placeholder legacy consumers expect for a missing field.
const NotFound = "No encontrado"

// ErrGDSNotRecognized is the error entry added for unrecognized documents.
const ErrGDSNotRecognized = "GDS not recognized"

// RawInput is one document handed over by an extraction collaborator.
// An empty HTMLText means no HTML rendition is available.
type RawInput struct {
	PlainText string
	HTMLText  string
}

// ClockTime is a wall-clock time of day as printed on a receipt.
type ClockTime struct {
	Hour   int
	Minute int
}

// Minutes returns the minutes elapsed since midnight.
func (c ClockTime) Minutes() int {
	return c.Hour*60 + c.Minute
}

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// FlightSegment is one leg of an itinerary. Index is 1-based and follows the
// order the legs appear in the document.
type FlightSegment struct {
	Index            int
	FlightNumber     *string
	MarketingAirline *string
	Origin           string
	Destination      string
	DepartureDate    *time.Time
	DepartureTime    *ClockTime
	ArrivalDate      *time.Time
	ArrivalTime      *ClockTime
	Cabin            *string
	BaggageAllowance *string
	DurationMinutes  *int64
	LayoverMinutes   *int64

	// ArrivalDateInferred reports that ArrivalDate was derived from the
	// departure date rather than read from the document.
	ArrivalDateInferred bool
}

// MonetaryAmount keeps the amount with the scale it was written with.
type MonetaryAmount struct {
	Currency *string
	Amount   *decimal.Decimal
}

// ConsistencyStatus is the outcome of the fare + taxes = total check.
type ConsistencyStatus string

const (
	StatusOK       ConsistencyStatus = "OK"
	StatusMismatch ConsistencyStatus = "MISMATCH"
)

// ConsistencyResult carries the reconciliation of fare, taxes and total.
type ConsistencyResult struct {
	Status              ConsistencyStatus
	TaxesAmountExpected *decimal.Decimal
	TaxesDifference     *decimal.Decimal
	AmountDifference    *decimal.Decimal
}

// NormalizedTicket is the canonical, format-independent view of a receipt.
// It is never mutated after Parse returns it.
type NormalizedTicket struct {
	SourceSystem    SourceFormat
	TicketNumber    *string
	ReservationCode *string
	PassengerName   *string
	IssuingAirline  *string
	IssuingAgent    *string
	IssuingDateISO  *string
	Fare            MonetaryAmount
	Taxes           MonetaryAmount
	Total           MonetaryAmount
	Segments        []FlightSegment
	Consistency     ConsistencyResult
	ItineraryText   *string
	Errors          []string
}

// Result bundles the canonical ticket with the raw per-format fields.
type Result struct {
	Ticket NormalizedTicket
	Fields ExtractedFields
	// Legacy is Fields with every known field present, NotFound standing in
	// for the missing ones.
	Legacy map[string]string
}

func strPtr(s string) *string {
	return &s
}

func int64Ptr(v int64) *int64 {
	return &v
}
