// File: services/session/mongo.go
package session

import (
	"context"
	"time"

	"schedulo/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore persists conversations in a collection keyed by session ID,
// for deployments that want transcripts to survive Redis restarts. A TTL
// index on updated_at handles expiry server-side.
type MongoStore struct {
	coll *mongo.Collection
}

type sessionDoc struct {
	SessionID string                    `bson:"session_id"`
	State     *models.ConversationState `bson:"state"`
	UpdatedAt time.Time                 `bson:"updated_at"`
}

func NewMongoStore(db *mongo.Database, ttl time.Duration) (*MongoStore, error) {
	coll := db.Collection("conversations")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "session_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "updated_at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(int32(ttl.Seconds())),
		},
	}
	if _, err := coll.Indexes().CreateMany(ctx, indexes); err != nil {
		return nil, err
	}
	return &MongoStore{coll: coll}, nil
}

func (s *MongoStore) Get(ctx context.Context, sessionID string) (*models.ConversationState, error) {
	var doc sessionDoc
	err := s.coll.FindOne(ctx, bson.M{"session_id": sessionID}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return models.NewConversationState(), nil
	}
	if err != nil {
		return nil, err
	}
	if doc.State == nil {
		return models.NewConversationState(), nil
	}
	if doc.State.Stage == "" {
		doc.State.Stage = models.StageInitial
	}
	return doc.State, nil
}

func (s *MongoStore) Set(ctx context.Context, sessionID string, state *models.ConversationState) error {
	doc := sessionDoc{
		SessionID: sessionID,
		State:     state,
		UpdatedAt: time.Now(),
	}
	_, err := s.coll.ReplaceOne(ctx,
		bson.M{"session_id": sessionID},
		doc,
		options.Replace().SetUpsert(true),
	)
	return err
}

func (s *MongoStore) Clear(ctx context.Context, sessionID string) error {
	_, err := s.coll.DeleteOne(ctx, bson.M{"session_id": sessionID})
	return err
}
