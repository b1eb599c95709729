package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"familytree/internal/domain/event"
)

const journalCollection = "journal"

// MongoJournal keeps an audit trail of executed commands. It is never
// replayed into a tree.
type MongoJournal struct {
	mongo *mongo.Database
	log   *zap.SugaredLogger
}

func NewMongoJournal(mongo *mongo.Database, log *zap.SugaredLogger) *MongoJournal {
	return &MongoJournal{
		mongo: mongo,
		log:   log,
	}
}

func (j *MongoJournal) Append(ctx context.Context, entry event.JournalEntry) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := j.mongo.Collection(journalCollection).InsertOne(ctx, entry)
	if err != nil {
		return fmt.Errorf("failed to insert journal entry: %w", err)
	}

	j.log.Debugf("journal entry %s stored", entry.ID)
	return nil
}

// Recent returns the newest entries of a session, newest first.
func (j *MongoJournal) Recent(ctx context.Context, sessionID string, limit int64) ([]event.JournalEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"session_id": sessionID}
	opts := options.Find().SetSort(bson.D{{Key: "at", Value: -1}}).SetLimit(limit)

	cursor, err := j.mongo.Collection(journalCollection).Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal: %w", err)
	}
	defer cursor.Close(ctx)

	result := make([]event.JournalEntry, 0)
	if err := cursor.All(ctx, &result); err != nil {
		return nil, fmt.Errorf("failed to decode journal: %w", err)
	}
	return result, nil
}
