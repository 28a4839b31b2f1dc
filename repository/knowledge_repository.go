package repository

import (
	"context"
	"fmt"

	"agrishop-chatbot-backend/database"
	"agrishop-chatbot-backend/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// KnowledgeRepository reads disease records from the knowledge collection.
type KnowledgeRepository struct {
	collection *mongo.Collection
}

func NewKnowledgeRepository(db *mongo.Database) *KnowledgeRepository {
	return &KnowledgeRepository{
		collection: db.Collection(database.CollectionKnowledge),
	}
}

// ListEntries returns all knowledge entries sorted by _id ascending. The
// sort pins the enumeration order for a fixed data-loading run so that
// retrieval tie-breaks stay reproducible. Entries failing required-field
// validation are dropped here, at the store boundary.
func (r *KnowledgeRepository) ListEntries(ctx context.Context) ([]models.KnowledgeEntry, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("querying knowledge: %w", err)
	}
	defer cursor.Close(ctx)

	var entries []models.KnowledgeEntry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("decoding knowledge entries: %w", err)
	}

	valid := entries[:0]
	for _, entry := range entries {
		if entry.Validate() == nil {
			valid = append(valid, entry)
		}
	}
	return valid, nil
}
