package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// CategoryTreatment is the catalog category for plant protection products,
// the only category the recommender searches.
const CategoryTreatment = "thuoc-bao-ve-thuc-vat"

// Product mirrors the catalog document. The chat engine only reads products;
// catalog CRUD lives elsewhere.
type Product struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name              string             `bson:"name" json:"name"`
	Category          string             `bson:"category" json:"category"`
	Price             float64            `bson:"price" json:"price"`
	Unit              string             `bson:"unit,omitempty" json:"unit,omitempty"`
	ActiveIngredients []string           `bson:"active_ingredients,omitempty" json:"active_ingredients,omitempty"`
	Description       string             `bson:"description,omitempty" json:"description,omitempty"`
	ImageURL          string             `bson:"image_url,omitempty" json:"image_url,omitempty"`
}
