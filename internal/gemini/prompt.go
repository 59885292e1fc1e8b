package gemini

import (
	"fmt"
	"strings"

	"github.com/financeai/financeai-backend/internal"
)

// systemInstruction is the fixed advisor persona sent with every request.
// Not user-editable.
const systemInstruction = `You are FinanceAI, a professional financial advisor AI assistant. Your role is to help users with:

1. Investment guidance and portfolio analysis
2. Personal budgeting and financial planning
3. Tax strategies and optimization
4. Debt management and credit improvement
5. Retirement planning
6. Savings strategies
7. Financial goal setting

Guidelines:
- Provide practical, actionable advice
- Always remind users that you're not a licensed financial advisor and they should consult with professionals for major decisions
- Use simple language for complex financial concepts
- Include specific examples and scenarios when helpful
- Ask clarifying questions to provide personalized advice
- Stay focused on financial topics; politely redirect non-financial questions
- When documents are provided, analyze them carefully and reference specific data from them
- Be thorough in document analysis - extract key financial metrics, patterns, and insights

Keep responses concise but informative (2-3 paragraphs typically).`

// BuildUserContent assembles the outgoing user turn: the free text first,
// with one annotation line per attached document, then one inline-binary
// part per document in attachment order. The text cue precedes the bytes so
// the model has context before receiving them.
func BuildUserContent(userText string, docs []internal.DocumentDescriptor) Content {
	text := userText
	if len(docs) > 0 {
		notes := make([]string, 0, len(docs))
		for _, d := range docs {
			notes = append(notes, fmt.Sprintf("\n[Document: %s]\nContent to analyze for financial insights.", d.Name))
		}
		text += strings.Join(notes, "\n")
	}

	parts := make([]Part, 0, 1+len(docs))
	parts = append(parts, Part{Text: text})
	for _, d := range docs {
		parts = append(parts, Part{InlineData: &InlineData{
			MimeType: d.MimeType,
			Data:     d.Base64Content,
		}})
	}
	return Content{Role: "user", Parts: parts}
}

// BuildHistory maps prior turns into the upstream role vocabulary
// (user/model), dropping the seeded welcome turn: the API requires the
// first history entry to be user-authored and the welcome is not.
// Returns nil when nothing remains so the request omits history entirely.
func BuildHistory(turns []internal.Message) []Content {
	var out []Content
	for i, m := range turns {
		if m.Seed {
			continue
		}
		// Histories replayed by clients that never set the flag still
		// open with the assistant greeting.
		if i == 0 && m.Role == internal.RoleAssistant {
			continue
		}
		role := "model"
		if m.Role == internal.RoleUser {
			role = "user"
		}
		out = append(out, Content{Role: role, Parts: []Part{{Text: m.Content}}})
	}
	return out
}
