package models

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// KnowledgeEntry is one diagnosable crop condition. Entries are written by an
// administrative loader and are read-only from the chat engine's side.
type KnowledgeEntry struct {
	ID                  primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	DiseaseName         string               `bson:"disease_name" json:"disease_name"`
	Symptoms            []string             `bson:"symptoms" json:"symptoms"`
	ActiveIngredients   []string             `bson:"active_ingredients,omitempty" json:"active_ingredients,omitempty"`
	TreatmentGuide      string               `bson:"treatment_guide,omitempty" json:"treatment_guide,omitempty"`
	Prevention          string               `bson:"prevention,omitempty" json:"prevention,omitempty"`
	Description         string               `bson:"description,omitempty" json:"description,omitempty"`
	RecommendedProducts []primitive.ObjectID `bson:"recommended_products,omitempty" json:"recommended_products,omitempty"`
}

// Validate enforces the required fields at the store boundary.
func (e *KnowledgeEntry) Validate() error {
	if e.DiseaseName == "" {
		return fmt.Errorf("knowledge entry %s: disease_name is required", e.ID.Hex())
	}
	return nil
}
