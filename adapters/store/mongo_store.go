package store

import (
	"context"
	"fmt"
	"time"

	"github.com/launchblock/cerberus/core"
	"github.com/launchblock/cerberus/ports"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore is a MongoDB implementation of the SessionStore interface,
// for deployments that already run the site's document database and do not
// want a separate Redis just for sessions.
type MongoStore struct {
	sessions   *mongo.Collection
	challenges *mongo.Collection
}

// NewMongoStore creates a new Mongo store and ensures the indexes the
// lookups rely on: a unique index on session_id and a TTL index on the
// challenge consumption records.
func NewMongoStore(ctx context.Context, db *mongo.Database) (*MongoStore, error) {
	sessions := db.Collection("sessions")
	challenges := db.Collection("consumed_challenges")

	_, err := sessions.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "session_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return nil, fmt.Errorf("creating session index: %w", err)
	}

	_, err = challenges.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "expires_at", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(0),
	})
	if err != nil {
		return nil, fmt.Errorf("creating challenge index: %w", err)
	}

	return &MongoStore{sessions: sessions, challenges: challenges}, nil
}

// Put inserts a session record.
func (s *MongoStore) Put(ctx context.Context, session *core.Session) error {
	if _, err := s.sessions.InsertOne(ctx, session); err != nil {
		return fmt.Errorf("%w: %v", core.ErrStoreUnavailable, err)
	}
	return nil
}

// Get retrieves a session by id, or (nil, nil) when absent.
func (s *MongoStore) Get(ctx context.Context, sessionID string) (*core.Session, error) {
	var session core.Session
	err := s.sessions.FindOne(ctx, bson.M{"session_id": sessionID}).Decode(&session)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %v", core.ErrStoreUnavailable, err)
	}
	return &session, nil
}

// Delete removes a session by id.
func (s *MongoStore) Delete(ctx context.Context, sessionID string) error {
	if _, err := s.sessions.DeleteOne(ctx, bson.M{"session_id": sessionID}); err != nil {
		return fmt.Errorf("%w: %v", core.ErrStoreUnavailable, err)
	}
	return nil
}

type consumedChallenge struct {
	Key       string    `bson:"_id"`
	ExpiresAt time.Time `bson:"expires_at"`
}

// ConsumeChallenge marks a challenge key as used. The insert races on _id,
// so exactly one of any set of concurrent replays wins; the TTL index
// reclaims the record once the freshness window has lapsed anyway.
func (s *MongoStore) ConsumeChallenge(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	record := consumedChallenge{
		Key:       key,
		ExpiresAt: time.Now().Add(ttl),
	}

	_, err := s.challenges.InsertOne(ctx, record)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return false, nil
		}
		return false, fmt.Errorf("%w: %v", core.ErrStoreUnavailable, err)
	}
	return true, nil
}

var _ ports.SessionStore = (*MongoStore)(nil)
