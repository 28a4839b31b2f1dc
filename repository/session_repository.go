package repository

import (
	"context"
	"errors"
	"fmt"

	"agrishop-chatbot-backend/database"
	"agrishop-chatbot-backend/models"
	"agrishop-chatbot-backend/services"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SessionRepository persists chat sessions as whole documents.
type SessionRepository struct {
	collection *mongo.Collection
}

func NewSessionRepository(db *mongo.Database) *SessionRepository {
	return &SessionRepository{
		collection: db.Collection(database.CollectionChatSessions),
	}
}

func (r *SessionRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.ChatSession, error) {
	var session models.ChatSession
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&session)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, services.ErrSessionNotFound
		}
		return nil, fmt.Errorf("finding session: %w", err)
	}
	return &session, nil
}

// FindByUser lists a user's sessions, most recently updated first.
func (r *SessionRepository) FindByUser(ctx context.Context, userID string) ([]models.ChatSession, error) {
	opts := options.Find().SetSort(bson.D{{Key: "updated_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("querying sessions: %w", err)
	}
	defer cursor.Close(ctx)

	sessions := []models.ChatSession{}
	if err := cursor.All(ctx, &sessions); err != nil {
		return nil, fmt.Errorf("decoding sessions: %w", err)
	}
	return sessions, nil
}

func (r *SessionRepository) Insert(ctx context.Context, session *models.ChatSession) error {
	if _, err := r.collection.InsertOne(ctx, session); err != nil {
		return fmt.Errorf("inserting session: %w", err)
	}
	return nil
}

// Save replaces the stored document with the in-memory session in a single
// write.
func (r *SessionRepository) Save(ctx context.Context, session *models.ChatSession) error {
	if _, err := r.collection.ReplaceOne(ctx, bson.M{"_id": session.ID}, session); err != nil {
		return fmt.Errorf("saving session: %w", err)
	}
	return nil
}
