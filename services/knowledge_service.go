package services

import (
	"context"
	"fmt"

	"agrishop-chatbot-backend/models"
	"agrishop-chatbot-backend/utils"
)

// KnowledgeStore lists diagnosable conditions. The store must return entries
// in a stable order (sorted by _id): ties in retrieval keep the
// earliest-encountered entry, so enumeration order is part of the contract.
type KnowledgeStore interface {
	ListEntries(ctx context.Context) ([]models.KnowledgeEntry, error)
}

// Match is a retrieval result: the best-scoring entry and its score.
type Match struct {
	Entry models.KnowledgeEntry
	Score int
}

// KnowledgeService scores knowledge entries against message keywords and
// picks the best candidate.
type KnowledgeService struct {
	store KnowledgeStore
}

func NewKnowledgeService(store KnowledgeStore) *KnowledgeService {
	return &KnowledgeService{store: store}
}

// Retrieve returns the best-matching entry for the message, or nil when the
// message carries no usable keywords or nothing scores above zero. A message
// without keywords never touches the store.
//
// Scoring: +5 when any whole token of the disease name appears as a whole
// token of the message, +1 per symptom sharing at least one whole token.
// Tokens shorter than three characters and stop words never match. An entry
// replaces the current best only on a strictly greater score.
func (s *KnowledgeService) Retrieve(ctx context.Context, message string) (*Match, error) {
	keywords := utils.KeywordSet(message)
	if len(keywords) == 0 {
		return nil, nil
	}

	entries, err := s.store.ListEntries(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing knowledge entries: %w", err)
	}

	var best *Match
	for _, entry := range entries {
		score := scoreEntry(entry, keywords)
		if best == nil || score > best.Score {
			best = &Match{Entry: entry, Score: score}
		}
	}

	if best == nil || best.Score <= 0 {
		return nil, nil
	}
	return best, nil
}

func scoreEntry(entry models.KnowledgeEntry, keywords map[string]struct{}) int {
	score := 0

	for _, tok := range utils.Keywords(entry.DiseaseName) {
		if _, ok := keywords[tok]; ok {
			score += 5
			break
		}
	}

	for _, symptom := range entry.Symptoms {
		for _, tok := range utils.Keywords(symptom) {
			if _, ok := keywords[tok]; ok {
				score++
				break
			}
		}
	}

	return score
}
