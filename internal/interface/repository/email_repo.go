// internal/interface/repository/email_repo.go
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
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	emailCollection = "ticketEmails"
	staleAfter      = 5 * time.Minute
)

// MongoEmailRepository implements the EmailRepository interface
type MongoEmailRepository struct {
	collection *mongo.Collection
	logger     logger.Logger
}

// NewMongoEmailRepository creates a new MongoDB email repository
func NewMongoEmailRepository(db *mongo.Database, log logger.Logger) repository.EmailRepository {
	collection := db.Collection(emailCollection)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.M{"emailId": 1},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.M{"receivedAt": -1},
		},
		// Compound index for finding unprocessed emails efficiently
		{
			Keys: bson.D{
				{Key: "processStatus", Value: 1},
				{Key: "receivedAt", Value: 1},
			},
		},
	})
	if err != nil {
		log.Warn("Failed to create email indexes", "error", err)
	}

	return &MongoEmailRepository{
		collection: collection,
		logger:     log,
	}
}

// Save saves an email to MongoDB
func (r *MongoEmailRepository) Save(ctx context.Context, email *entity.Email) error {
	if email.ProcessStatus == "" {
		email.ProcessStatus = entity.StatusPending
	}

	if _, err := r.collection.InsertOne(ctx, email); err != nil {
		return fmt.Errorf("failed to save email %s: %w", email.EmailID, err)
	}
	return nil
}

// unprocessedFilter matches PENDING rows and rows saved without a status
func unprocessedFilter() bson.M {
	return bson.M{
		"$or": []bson.M{
			{"processStatus": ""},
			{"processStatus": entity.StatusPending},
			{"processStatus": bson.M{"$exists": false}},
		},
	}
}

// FindUnprocessed returns pending emails, oldest first
func (r *MongoEmailRepository) FindUnprocessed(ctx context.Context, limit int) ([]*entity.Email, error) {
	opts := options.Find().
		SetLimit(int64(limit)).
		SetSort(bson.D{{Key: "receivedAt", Value: 1}})

	cursor, err := r.collection.Find(ctx, unprocessedFilter(), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find unprocessed emails: %w", err)
	}
	defer cursor.Close(ctx)

	var emails []*entity.Email
	if err := cursor.All(ctx, &emails); err != nil {
		return nil, fmt.Errorf("failed to decode emails: %w", err)
	}
	return emails, nil
}

// staleProcessingFilter matches rows stuck in PROCESSING since before now-staleAfter
func staleProcessingFilter(now time.Time) bson.M {
	return bson.M{
		"processStatus": entity.StatusProcessing,
		"$or": []bson.M{
			{"processStartedAt": bson.M{"$lt": now.Add(-staleAfter)}},
			{"processStartedAt": bson.M{"$exists": false}},
		},
	}
}

// ResetProcessingEmails resets emails stuck in PROCESSING state back to PENDING
func (r *MongoEmailRepository) ResetProcessingEmails(ctx context.Context) error {
	update := bson.M{
		"$set": bson.M{
			"processStatus": entity.StatusPending,
			"errorDetail":   "Reset from stale PROCESSING state",
		},
	}

	result, err := r.collection.UpdateMany(ctx, staleProcessingFilter(time.Now()), update)
	if err != nil {
		return fmt.Errorf("failed to reset processing emails: %w", err)
	}

	if result.ModifiedCount > 0 {
		r.logger.Info("Reset stale processing emails", "count", result.ModifiedCount)
	}
	return nil
}

// GetLastEmail gets the most recently received email, nil when there is none
func (r *MongoEmailRepository) GetLastEmail(ctx context.Context) (*entity.Email, error) {
	var email entity.Email
	opts := options.FindOne().SetSort(bson.D{{Key: "receivedAt", Value: -1}})
	err := r.collection.FindOne(ctx, bson.M{}, opts).Decode(&email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &email, nil
}

// FindByEmailID finds an email by Gmail message ID, nil when there is none
func (r *MongoEmailRepository) FindByEmailID(ctx context.Context, emailID string) (*entity.Email, error) {
	var email entity.Email
	err := r.collection.FindOne(ctx, bson.M{"emailId": emailID}).Decode(&email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &email, nil
}

// FindByEmailIDs finds multiple emails by Gmail message IDs (batch operation)
func (r *MongoEmailRepository) FindByEmailIDs(ctx context.Context, emailIDs []string) (map[string]*entity.Email, error) {
	result := make(map[string]*entity.Email)
	if len(emailIDs) == 0 {
		return result, nil
	}

	cursor, err := r.collection.Find(ctx, bson.M{"emailId": bson.M{"$in": emailIDs}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var email entity.Email
		if err := cursor.Decode(&email); err != nil {
			r.logger.Warn("Skipping undecodable email", "error", err)
			continue
		}
		result[email.EmailID] = &email
	}

	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// statusUpdate sets the status, and the start time when moving to PROCESSING
func statusUpdate(status string, startedAt time.Time) bson.M {
	set := bson.M{"processStatus": status}
	if status == entity.StatusProcessing && !startedAt.IsZero() {
		set["processStartedAt"] = startedAt
	}
	return bson.M{"$set": set}
}

func (r *MongoEmailRepository) UpdateStatusByEmailID(ctx context.Context, emailID string, status string, startedAt time.Time) error {
	result, err := r.collection.UpdateOne(ctx, bson.M{"emailId": emailID}, statusUpdate(status, startedAt))
	if err != nil {
		return fmt.Errorf("failed to update status: %w", err)
	}

	if result.MatchedCount == 0 {
		return fmt.Errorf("no document found with emailID: %s", emailID)
	}
	return nil
}

func (r *MongoEmailRepository) UpdateProcessStepsByEmailID(ctx context.Context, emailID string, steps entity.ProcessSteps) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"emailId": emailID}, bson.M{
		"$set": bson.M{"processSteps": steps},
	})
	return err
}

// processedUpdate builds the final status update of an email
func processedUpdate(now time.Time, status, processorType, errorDetail string, extractedData map[string]interface{}) bson.M {
	set := bson.M{
		"processedAt":   now,
		"processStatus": status,
		"processorType": processorType,
	}

	if len(extractedData) > 0 {
		set["extractedData"] = extractedData
	}

	if errorDetail != "" {
		set["errorDetail"] = errorDetail
	}
	return bson.M{"$set": set}
}

func (r *MongoEmailRepository) MarkAsProcessedByEmailID(ctx context.Context, emailID, status, processorType, errorDetail string, extractedData map[string]interface{}) error {
	update := processedUpdate(time.Now(), status, processorType, errorDetail, extractedData)

	result, err := r.collection.UpdateOne(ctx, bson.M{"emailId": emailID}, update)
	if err != nil {
		return fmt.Errorf("failed to mark as processed: %w", err)
	}

	if result.MatchedCount == 0 {
		return fmt.Errorf("no document found with emailID: %s", emailID)
	}
	return nil
}
