// internal/domain/entity/ticket_record.go
package entity

import (
	"time"
)

// TicketRecord is the stored outcome of parsing one e-ticket
type TicketRecord struct {
	ID              string                 `bson:"_id,omitempty"`
	TicketKey       string                 `bson:"ticketKey"` // ticket number, else {pnr}:{passenger}, else email:{id} - unique index
	EmailID         string                 `bson:"emailId,omitempty"`
	SourceSystem    string                 `bson:"sourceSystem"`
	TicketNumber    string                 `bson:"ticketNumber,omitempty"`
	ReservationCode string                 `bson:"reservationCode,omitempty"`
	PassengerName   string                 `bson:"passengerName,omitempty"`
	Consistency     string                 `bson:"amountConsistency"`
	SegmentCount    int                    `bson:"segmentCount"`
	Normalized      map[string]interface{} `bson:"normalized"`
	LegacyFields    map[string]string      `bson:"legacyFields"`
	Warnings        []string               `bson:"warnings"`
	CreatedAt       time.Time              `bson:"createdAt"`
	UpdatedAt       time.Time              `bson:"updatedAt"`
}
