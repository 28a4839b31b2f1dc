package utils

import (
	"strings"

	"agrishop-chatbot-backend/models"
)

// IntentClassifier routes a normalized message to a coarse category before
// any diagnosis logic runs. Classification is a first-match-wins cascade,
// not a scored vote: weather is checked first, then greeting, then small
// talk, and anything else falls through to diagnosis. A message carrying
// both a greeting token and a disease token therefore still reaches
// diagnosis only when every non-diagnosis pattern fails.
type IntentClassifier struct {
	weatherPhrases []string
	weatherTokens  map[string]struct{}
	greetings      map[string]struct{}
	greetingStarts map[string]struct{}
	smallTalk      []string
}

// All patterns are stored in normalized form; Classify expects its input to
// have gone through Normalize already.
func NewIntentClassifier() *IntentClassifier {
	return &IntentClassifier{
		weatherPhrases: []string{
			"thoi tiet", "nhiet do", "du bao", "khi hau",
			"nang nong", "mua bao", "do am",
		},
		weatherTokens: map[string]struct{}{
			"mua": {}, "nang": {}, "ret": {},
		},
		greetings: map[string]struct{}{
			"chao": {}, "chao ban": {}, "chao bac": {}, "chao anh": {},
			"chao chi": {}, "chao em": {}, "chao shop": {}, "xin chao": {},
			"chao buoi sang": {}, "chao buoi toi": {},
			"hello": {}, "hi": {}, "alo": {},
		},
		greetingStarts: map[string]struct{}{
			"chao": {}, "hello": {}, "hi": {}, "alo": {},
		},
		smallTalk: []string{
			"khoe khong", "co khoe", "ban la ai", "ban ten gi",
			"may ten gi", "cam on", "an com chua", "lam gi do",
			"noi chuyen", "biet gi",
		},
	}
}

// Classify maps normalized text to an intent. It never fails: an unmatched
// message is a diagnosis request by default.
func (ic *IntentClassifier) Classify(normalized string) models.MessageIntent {
	if ic.isWeather(normalized) {
		return models.IntentWeather
	}
	if ic.isGreeting(normalized) {
		return models.IntentGreeting
	}
	if ic.isSmallTalk(normalized) {
		return models.IntentSmallTalk
	}
	return models.IntentDiagnosis
}

func (ic *IntentClassifier) isWeather(normalized string) bool {
	for _, phrase := range ic.weatherPhrases {
		if strings.Contains(normalized, phrase) {
			return true
		}
	}
	for _, tok := range Tokens(normalized) {
		if _, ok := ic.weatherTokens[tok]; ok {
			return true
		}
	}
	return false
}

// Greetings must match (near-)exactly: either the whole message is a known
// greeting phrase, or a very short message opens with one.
func (ic *IntentClassifier) isGreeting(normalized string) bool {
	tokens := Tokens(normalized)
	joined := strings.Join(tokens, " ")
	if _, ok := ic.greetings[joined]; ok {
		return true
	}
	if len(tokens) > 0 && len(tokens) <= 3 {
		if _, ok := ic.greetingStarts[tokens[0]]; ok {
			return true
		}
	}
	return false
}

func (ic *IntentClassifier) isSmallTalk(normalized string) bool {
	for _, phrase := range ic.smallTalk {
		if strings.Contains(normalized, phrase) {
			return true
		}
	}
	return false
}
