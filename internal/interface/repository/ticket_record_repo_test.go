package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"

	"eticket-service/internal/domain/entity"
)

func TestUpsertDocument(t *testing.T) {
	created := time.Date(2025, 1, 15, 8, 0, 0, 0, time.UTC)
	updated := created.Add(time.Hour)

	record := &entity.TicketRecord{
		TicketKey:       "3082345678901",
		EmailID:         "msg-1",
		SourceSystem:    "FORMAT_A",
		TicketNumber:    "3082345678901",
		ReservationCode: "XKJ4LM",
		PassengerName:   "PEREZ/JOSE",
		Consistency:     "OK",
		SegmentCount:    2,
		Warnings:        []string{"issuing date not found"},
		CreatedAt:       created,
		UpdatedAt:       updated,
	}

	doc := upsertDocument(record)

	set := doc["$set"].(bson.M)
	assert.Equal(t, "3082345678901", set["ticketKey"])
	assert.Equal(t, "OK", set["amountConsistency"])
	assert.Equal(t, 2, set["segmentCount"])
	assert.Equal(t, updated, set["updatedAt"])
	assert.NotContains(t, set, "createdAt")

	assert.Equal(t, bson.M{"createdAt": created}, doc["$setOnInsert"])
}
