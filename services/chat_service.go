package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"agrishop-chatbot-backend/logging"
	"agrishop-chatbot-backend/models"
	"agrishop-chatbot-backend/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrSessionNotFound is returned by SessionStore lookups for unknown ids.
var ErrSessionNotFound = errors.New("chat session not found")

// SessionStore persists conversation sessions. Save writes the full updated
// document in one operation.
type SessionStore interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.ChatSession, error)
	FindByUser(ctx context.Context, userID string) ([]models.ChatSession, error)
	Insert(ctx context.Context, session *models.ChatSession) error
	Save(ctx context.Context, session *models.ChatSession) error
}

// ChatService orchestrates one conversational turn: session resolution,
// intent routing, diagnosis, response composition and persistence.
//
// Sessions are handled load-modify-save with no per-session lock. Two
// concurrent turns on the same session can each read the prior transcript
// and the later write will omit the other's messages. This lost-update
// window is accepted, documented behavior, not a bug to paper over here.
type ChatService struct {
	sessions   SessionStore
	knowledge  *KnowledgeService
	products   *ProductService
	composer   *ResponseComposer
	classifier *utils.IntentClassifier
	log        *logging.Logger
}

func NewChatService(
	sessions SessionStore,
	knowledge *KnowledgeService,
	products *ProductService,
	composer *ResponseComposer,
	log *logging.Logger,
) *ChatService {
	return &ChatService{
		sessions:   sessions,
		knowledge:  knowledge,
		products:   products,
		composer:   composer,
		classifier: utils.NewIntentClassifier(),
		log:        log,
	}
}

// HandleTurn processes one user message and always returns a well-formed
// result: any internal failure is logged with full context and converted to
// a fixed apology, never surfaced to the caller.
func (s *ChatService) HandleTurn(ctx context.Context, userID, sessionID, message string) *models.TurnResult {
	result, err := s.handleTurn(ctx, userID, sessionID, message)
	if err != nil {
		s.log.Error().
			Err(err).
			Str("user_id", userID).
			Str("session_id", sessionID).
			Msg("turn failed")
		return &models.TurnResult{
			SessionID: sessionID,
			Answer:    ApologyReply,
		}
	}
	return result
}

func (s *ChatService) handleTurn(ctx context.Context, userID, sessionID, message string) (*models.TurnResult, error) {
	session, isNew, err := s.resolveSession(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}

	session.Append(models.RoleUser, message, "")

	normalized := utils.Normalize(message)
	intent := s.classifier.Classify(normalized)

	result := &models.TurnResult{SessionID: session.ID.Hex()}
	var answer, source string

	if intent == models.IntentDiagnosis {
		match, err := s.knowledge.Retrieve(ctx, message)
		if err != nil {
			return nil, err
		}
		if match == nil {
			answer, source = s.composer.ComposeNoMatch()
			session.SuggestedProducts = nil
		} else {
			products, err := s.products.Recommend(ctx, match.Entry)
			if err != nil {
				return nil, err
			}
			answer, source = s.composer.ComposeDiagnosis(ctx, match.Entry, message)

			result.IsDiagnosis = true
			result.Disease = match.Entry.DiseaseName
			result.Products = products

			session.Title = match.Entry.DiseaseName
			session.Disease = match.Entry.DiseaseName
			session.SuggestedProducts = productIDs(products)
		}
	} else {
		answer, source = s.composer.ComposeChitChat(ctx, intent, message)
		session.SuggestedProducts = nil
	}

	session.Append(models.RoleBot, answer, source)
	result.Answer = answer

	if isNew {
		err = s.sessions.Insert(ctx, session)
	} else {
		err = s.sessions.Save(ctx, session)
	}
	if err != nil {
		return nil, fmt.Errorf("persisting session %s: %w", session.ID.Hex(), err)
	}

	return result, nil
}

// resolveSession loads the session when a known id is supplied; a missing,
// malformed or unknown id starts a fresh session instead of failing.
func (s *ChatService) resolveSession(ctx context.Context, userID, sessionID string) (*models.ChatSession, bool, error) {
	if sessionID != "" {
		id, err := primitive.ObjectIDFromHex(sessionID)
		if err == nil {
			session, err := s.sessions.FindByID(ctx, id)
			switch {
			case err == nil:
				return session, false, nil
			case errors.Is(err, ErrSessionNotFound):
				// fall through to a new session
			default:
				return nil, false, fmt.Errorf("loading session %s: %w", sessionID, err)
			}
		}
	}

	now := time.Now()
	return &models.ChatSession{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		Title:     models.DefaultSessionTitle,
		Messages:  []models.ChatMessage{},
		CreatedAt: now,
		UpdatedAt: now,
	}, true, nil
}

// History lists the user's sessions, most recently updated first. An empty
// user id yields an empty list, not an error.
func (s *ChatService) History(ctx context.Context, userID string) ([]models.ChatSession, error) {
	if strings.TrimSpace(userID) == "" {
		return []models.ChatSession{}, nil
	}
	sessions, err := s.sessions.FindByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing sessions for user %s: %w", userID, err)
	}
	return sessions, nil
}

func productIDs(products []models.Product) []primitive.ObjectID {
	if len(products) == 0 {
		return nil
	}
	ids := make([]primitive.ObjectID, len(products))
	for i, p := range products {
		ids[i] = p.ID
	}
	return ids
}
