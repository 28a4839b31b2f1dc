package services

import (
	"context"
	"fmt"

	"agrishop-chatbot-backend/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// maxRecommendations caps ingredient-based lookups. Curated lists bypass the
// cap: they are assumed to be already bounded by the knowledge editors.
const maxRecommendations = 5

// ProductStore is the read-only catalog lookup the recommender consumes.
type ProductStore interface {
	// FindByIDs resolves product references, preserving the given order.
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Product, error)
	// FindTreatments returns treatment-category products whose active
	// ingredients intersect the given set, up to limit.
	FindTreatments(ctx context.Context, ingredients []string, limit int64) ([]models.Product, error)
}

// ProductService resolves the treatment products to suggest for a matched
// disease.
type ProductService struct {
	store ProductStore
}

func NewProductService(store ProductStore) *ProductService {
	return &ProductService{store: store}
}

// Recommend returns the products for a matched entry. A curated
// recommended-products list wins verbatim; otherwise treatment products are
// looked up by active ingredient. An empty result is a valid "nothing to
// recommend" outcome, not an error.
func (s *ProductService) Recommend(ctx context.Context, entry models.KnowledgeEntry) ([]models.Product, error) {
	if len(entry.RecommendedProducts) > 0 {
		products, err := s.store.FindByIDs(ctx, entry.RecommendedProducts)
		if err != nil {
			return nil, fmt.Errorf("resolving curated products: %w", err)
		}
		return products, nil
	}

	if len(entry.ActiveIngredients) == 0 {
		return nil, nil
	}

	products, err := s.store.FindTreatments(ctx, entry.ActiveIngredients, maxRecommendations)
	if err != nil {
		return nil, fmt.Errorf("searching treatment products: %w", err)
	}
	return products, nil
}
