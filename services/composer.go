package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"agrishop-chatbot-backend/logging"
	"agrishop-chatbot-backend/models"
)

// Fixed replies. Everything user-facing must stay well-formed even when the
// generative service is down, so every intent has a deterministic fallback.
const (
	// PromptForInputReply is returned when userId or message is missing.
	PromptForInputReply = "Bạn vui lòng cho mình biết nội dung cần tư vấn nhé. Hãy mô tả triệu chứng cây trồng đang gặp để mình hỗ trợ chẩn đoán."

	// NoMatchReply asks the user to elaborate when retrieval comes back empty.
	NoMatchReply = "Mình chưa đủ thông tin để chẩn đoán bệnh. Bạn mô tả chi tiết hơn giúp mình nhé: cây trồng là cây gì, vết bệnh màu gì, xuất hiện ở lá, thân hay rễ?"

	// ApologyReply is the catch-all answer when a turn fails internally.
	ApologyReply = "Xin lỗi, hệ thống đang gặp sự cố. Bạn vui lòng thử lại sau ít phút nhé."
)

var fallbackReplies = map[models.MessageIntent]string{
	models.IntentGreeting:  "Chào bạn! Mình là trợ lý tư vấn cây trồng của AgriShop. Bạn hãy mô tả triệu chứng cây trồng đang gặp để mình hỗ trợ chẩn đoán và gợi ý thuốc phù hợp nhé.",
	models.IntentSmallTalk: "Mình vẫn khỏe và luôn sẵn sàng hỗ trợ bạn. Hôm nay bạn cần tư vấn gì về cây trồng không?",
	models.IntentWeather:   "Mình chưa tra cứu được dự báo thời tiết lúc này, bạn nên theo dõi bản tin địa phương nhé. Nếu sau đợt mưa kéo dài cây trồng có dấu hiệu bất thường, bạn mô tả triệu chứng để mình tư vấn.",
}

const personaPreamble = "Bạn là trợ lý tư vấn nông nghiệp thân thiện của cửa hàng AgriShop, xưng \"mình\" và gọi người dùng là \"bạn\". Trả lời ngắn gọn bằng tiếng Việt."

// ResponseComposer builds the outbound reply for a turn: a role-primed
// prompt to the generative service when available, a deterministic template
// when not.
type ResponseComposer struct {
	generator TextGenerator
	log       *logging.Logger
}

func NewResponseComposer(generator TextGenerator, log *logging.Logger) *ResponseComposer {
	return &ResponseComposer{generator: generator, log: log}
}

// ComposeChitChat answers the non-diagnosis intents. Returns the reply text
// and its source tag.
func (c *ResponseComposer) ComposeChitChat(ctx context.Context, intent models.MessageIntent, message string) (string, string) {
	fallback, ok := fallbackReplies[intent]
	if !ok {
		fallback = fallbackReplies[models.IntentGreeting]
	}

	var sb strings.Builder
	sb.WriteString(personaPreamble)
	switch intent {
	case models.IntentWeather:
		sb.WriteString(" Người dùng hỏi về thời tiết nhưng bạn không có dữ liệu dự báo. Khuyên họ theo dõi bản tin địa phương và nhắc rằng bạn có thể tư vấn bệnh cây trồng.")
	case models.IntentSmallTalk:
		sb.WriteString(" Người dùng đang trò chuyện xã giao. Đáp lại tự nhiên rồi khéo léo gợi ý rằng bạn có thể tư vấn bệnh cây trồng.")
	default:
		sb.WriteString(" Người dùng vừa chào bạn. Chào lại và giới thiệu rằng bạn có thể chẩn đoán bệnh cây trồng từ mô tả triệu chứng.")
	}
	sb.WriteString("\n\nTin nhắn của người dùng: ")
	sb.WriteString(message)

	return c.generate(ctx, sb.String(), fallback)
}

// ComposeDiagnosis answers a diagnosis turn with a matched knowledge entry.
func (c *ResponseComposer) ComposeDiagnosis(ctx context.Context, entry models.KnowledgeEntry, message string) (string, string) {
	symptoms := entry.Symptoms
	if len(symptoms) > 3 {
		symptoms = symptoms[:3]
	}

	var sb strings.Builder
	sb.WriteString(personaPreamble)
	sb.WriteString(" Dựa trên mô tả của người dùng, hệ thống đã xác định bệnh. ")
	sb.WriteString("Chỉ được tư vấn theo đúng bệnh dưới đây, tuyệt đối không tự đưa ra chẩn đoán khác.\n\n")
	fmt.Fprintf(&sb, "Bệnh: %s\n", entry.DiseaseName)
	if len(symptoms) > 0 {
		fmt.Fprintf(&sb, "Triệu chứng điển hình: %s\n", strings.Join(symptoms, "; "))
	}
	if len(entry.ActiveIngredients) > 0 {
		fmt.Fprintf(&sb, "Hoạt chất phòng trừ: %s\n", strings.Join(entry.ActiveIngredients, ", "))
	}
	if entry.TreatmentGuide != "" {
		fmt.Fprintf(&sb, "Cách xử lý: %s\n", entry.TreatmentGuide)
	}
	if entry.Prevention != "" {
		fmt.Fprintf(&sb, "Phòng ngừa: %s\n", entry.Prevention)
	}
	sb.WriteString("\nTin nhắn của người dùng: ")
	sb.WriteString(message)
	sb.WriteString("\n\nHãy xác nhận bệnh, tóm tắt cách xử lý và phòng ngừa cho người dùng.")

	return c.generate(ctx, sb.String(), diagnosisTemplate(entry))
}

// ComposeNoMatch is the reply when retrieval found nothing. No generative
// call is made for this path.
func (c *ResponseComposer) ComposeNoMatch() (string, string) {
	return NoMatchReply, models.SourceTemplate
}

// generate runs the prompt through the generative service and falls back to
// the given template on any failure. Failures are logged for operators and
// never propagated.
func (c *ResponseComposer) generate(ctx context.Context, prompt, fallback string) (string, string) {
	if c.generator == nil {
		return fallback, models.SourceTemplate
	}

	answer, err := c.generator.Generate(ctx, prompt)
	if err != nil {
		if c.log != nil {
			c.log.Warn().Err(err).Msg("generative call failed, using template")
		}
		return fallback, models.SourceTemplate
	}

	answer = Sanitize(answer)
	if answer == "" {
		return fallback, models.SourceTemplate
	}
	return answer, models.SourceAI
}

// diagnosisTemplate assembles the deterministic diagnosis paragraph from the
// same fields the prompt embeds.
func diagnosisTemplate(entry models.KnowledgeEntry) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "**Chẩn đoán: %s**\n\n", entry.DiseaseName)
	if entry.Description != "" {
		sb.WriteString(entry.Description)
		sb.WriteString("\n\n")
	}
	if len(entry.Symptoms) > 0 {
		symptoms := entry.Symptoms
		if len(symptoms) > 3 {
			symptoms = symptoms[:3]
		}
		fmt.Fprintf(&sb, "Triệu chứng điển hình: %s.\n", strings.Join(symptoms, "; "))
	}
	if len(entry.ActiveIngredients) > 0 {
		fmt.Fprintf(&sb, "Hoạt chất phòng trừ: %s.\n", strings.Join(entry.ActiveIngredients, ", "))
	}
	if entry.TreatmentGuide != "" {
		fmt.Fprintf(&sb, "Cách xử lý: %s\n", entry.TreatmentGuide)
	}
	if entry.Prevention != "" {
		fmt.Fprintf(&sb, "Phòng ngừa: %s\n", entry.Prevention)
	}
	return Sanitize(sb.String())
}

var (
	boldHeadingPattern = regexp.MustCompile(`\*\*[^*\n]+\*\*:?`)
	blankRunPattern    = regexp.MustCompile(`\n{3,}`)
)

// Sanitize makes generated markdown readable for the chat client: bold
// headings get their own lines and runs of blank lines collapse to one.
// Semantic content is left untouched.
func Sanitize(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = boldHeadingPattern.ReplaceAllString(text, "\n$0\n")
	text = blankRunPattern.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}
