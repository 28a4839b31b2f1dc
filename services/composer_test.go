package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agrishop-chatbot-backend/models"
)

// mockGenerator implements TextGenerator for testing.
type mockGenerator struct {
	reply      string
	err        error
	calls      int
	lastPrompt string
}

func (m *mockGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	m.calls++
	m.lastPrompt = prompt
	return m.reply, m.err
}

func TestComposeChitChatUsesGenerator(t *testing.T) {
	gen := &mockGenerator{reply: "Chào bạn, mình có thể giúp gì?"}
	composer := NewResponseComposer(gen, nil)

	answer, source := composer.ComposeChitChat(context.Background(), models.IntentGreeting, "chào bác")

	assert.Equal(t, "Chào bạn, mình có thể giúp gì?", answer)
	assert.Equal(t, models.SourceAI, source)
	assert.Equal(t, 1, gen.calls)
}

func TestComposeChitChatFallbackOnFailure(t *testing.T) {
	gen := &mockGenerator{err: errors.New("boom")}
	composer := NewResponseComposer(gen, nil)

	answer, source := composer.ComposeChitChat(context.Background(), models.IntentWeather, "thời tiết thế nào")

	assert.Equal(t, fallbackReplies[models.IntentWeather], answer)
	assert.Equal(t, models.SourceTemplate, source)
}

func TestComposeChitChatNilGenerator(t *testing.T) {
	composer := NewResponseComposer(nil, nil)

	answer, source := composer.ComposeChitChat(context.Background(), models.IntentSmallTalk, "bạn khỏe không")

	assert.Equal(t, fallbackReplies[models.IntentSmallTalk], answer)
	assert.Equal(t, models.SourceTemplate, source)
}

func TestComposeDiagnosisPromptPinsDisease(t *testing.T) {
	gen := &mockGenerator{reply: "Cây lúa của bạn bị đạo ôn."}
	composer := NewResponseComposer(gen, nil)

	entry := models.KnowledgeEntry{
		DiseaseName:       "Bệnh đạo ôn lá lúa",
		Symptoms:          []string{"một", "hai", "ba", "bốn"},
		ActiveIngredients: []string{"Tricyclazole"},
		TreatmentGuide:    "Phun thuốc khi bệnh chớm xuất hiện.",
	}

	answer, source := composer.ComposeDiagnosis(context.Background(), entry, "lúa tôi bị đạo ôn")

	assert.Equal(t, models.SourceAI, source)
	assert.NotEmpty(t, answer)
	assert.Contains(t, gen.lastPrompt, "Bệnh đạo ôn lá lúa")
	assert.Contains(t, gen.lastPrompt, "không tự đưa ra chẩn đoán khác")
	// only the top three symptoms go into the prompt
	assert.Contains(t, gen.lastPrompt, "ba")
	assert.NotContains(t, gen.lastPrompt, "bốn")
}

func TestComposeDiagnosisFallbackTemplate(t *testing.T) {
	gen := &mockGenerator{err: errors.New("timeout")}
	composer := NewResponseComposer(gen, nil)

	entry := models.KnowledgeEntry{
		DiseaseName:       "Bệnh đạo ôn lá lúa",
		Symptoms:          []string{"vết bệnh hình thoi trên lá"},
		ActiveIngredients: []string{"Tricyclazole", "Isoprothiolane"},
		TreatmentGuide:    "Phun thuốc khi bệnh chớm xuất hiện.",
		Prevention:        "Không bón thừa đạm.",
	}

	answer, source := composer.ComposeDiagnosis(context.Background(), entry, "lúa bị đạo ôn")

	assert.Equal(t, models.SourceTemplate, source)
	assert.Contains(t, answer, "Bệnh đạo ôn lá lúa")
	assert.Contains(t, answer, "Tricyclazole")
	assert.Contains(t, answer, "Phun thuốc khi bệnh chớm xuất hiện.")
	assert.Contains(t, answer, "Không bón thừa đạm.")
}

func TestComposeNoMatchSkipsGenerator(t *testing.T) {
	gen := &mockGenerator{reply: "should not be used"}
	composer := NewResponseComposer(gen, nil)

	answer, source := composer.ComposeNoMatch()

	assert.Equal(t, NoMatchReply, answer)
	assert.Equal(t, models.SourceTemplate, source)
	assert.Equal(t, 0, gen.calls)
}

func TestComposeEmptyGenerationFallsBack(t *testing.T) {
	gen := &mockGenerator{reply: "   \n\n  "}
	composer := NewResponseComposer(gen, nil)

	answer, source := composer.ComposeChitChat(context.Background(), models.IntentGreeting, "chào")

	assert.Equal(t, fallbackReplies[models.IntentGreeting], answer)
	assert.Equal(t, models.SourceTemplate, source)
}

func TestSanitizeCollapsesBlankLines(t *testing.T) {
	got := Sanitize("dòng một\n\n\n\n\ndòng hai")
	assert.Equal(t, "dòng một\n\ndòng hai", got)
}

func TestSanitizeBreaksAroundHeadings(t *testing.T) {
	got := Sanitize("Kết quả: **Chẩn đoán:** cây bị đạo ôn.")

	lines := strings.Split(got, "\n")
	require.Greater(t, len(lines), 1)
	assert.Contains(t, got, "**Chẩn đoán:**")
	// heading sits on its own line
	found := false
	for _, line := range lines {
		if strings.TrimSpace(line) == "**Chẩn đoán:**" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestSanitizeIdempotentOnCleanText(t *testing.T) {
	clean := "một đoạn văn bình thường"
	assert.Equal(t, clean, Sanitize(clean))
}
