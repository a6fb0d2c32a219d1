package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"eticket-service/internal/domain/entity"
	"eticket-service/internal/domain/repository"
	"eticket-service/pkg/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoTicketRecordRepository implements TicketRecordRepository
type MongoTicketRecordRepository struct {
	collection *mongo.Collection
	logger     logger.Logger
}

// NewMongoTicketRecordRepository creates a new ticket record repository
func NewMongoTicketRecordRepository(db *mongo.Database, log logger.Logger) repository.TicketRecordRepository {
	collection := db.Collection("ticket_records")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.M{"ticketKey": 1},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.M{"ticketNumber": 1}},
		{Keys: bson.M{"reservationCode": 1}},
	})
	if err != nil {
		log.Warn("Failed to create ticket record indexes", "error", err)
	}

	return &MongoTicketRecordRepository{
		collection: collection,
		logger:     log,
	}
}

// upsertDocument splits a record into the fields refreshed on every parse and
// the ones only written when the row is created
func upsertDocument(record *entity.TicketRecord) bson.M {
	return bson.M{
		"$set": bson.M{
			"ticketKey":         record.TicketKey,
			"emailId":           record.EmailID,
			"sourceSystem":      record.SourceSystem,
			"ticketNumber":      record.TicketNumber,
			"reservationCode":   record.ReservationCode,
			"passengerName":     record.PassengerName,
			"amountConsistency": record.Consistency,
			"segmentCount":      record.SegmentCount,
			"normalized":        record.Normalized,
			"legacyFields":      record.LegacyFields,
			"warnings":          record.Warnings,
			"updatedAt":         record.UpdatedAt,
		},
		"$setOnInsert": bson.M{
			"createdAt": record.CreatedAt,
		},
	}
}

// Upsert creates or refreshes the record stored under record.TicketKey
func (r *MongoTicketRecordRepository) Upsert(ctx context.Context, record *entity.TicketRecord) error {
	if record.TicketKey == "" {
		return fmt.Errorf("ticket record without key")
	}

	now := time.Now()
	record.UpdatedAt = now
	if record.CreatedAt.IsZero() {
		record.CreatedAt = now
	}

	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"ticketKey": record.TicketKey},
		upsertDocument(record),
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert ticket %s: %w", record.TicketKey, err)
	}

	if id, ok := result.UpsertedID.(primitive.ObjectID); ok {
		record.ID = id.Hex()
	}
	return nil
}

// FindByTicketNumber returns repository.ErrTicketNotFound when nothing matches
func (r *MongoTicketRecordRepository) FindByTicketNumber(ctx context.Context, ticketNumber string) (*entity.TicketRecord, error) {
	var record entity.TicketRecord
	err := r.collection.FindOne(ctx, bson.M{"ticketNumber": ticketNumber}).Decode(&record)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrTicketNotFound
		}
		return nil, fmt.Errorf("failed to find ticket %s: %w", ticketNumber, err)
	}
	return &record, nil
}

// FindByReservationCode returns every ticket issued under one booking
func (r *MongoTicketRecordRepository) FindByReservationCode(ctx context.Context, reservationCode string) ([]*entity.TicketRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "passengerName", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"reservationCode": reservationCode}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find reservation %s: %w", reservationCode, err)
	}
	defer cursor.Close(ctx)

	var records []*entity.TicketRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}
