package gemini_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/financeai/financeai-backend/internal"
	"github.com/financeai/financeai-backend/internal/gemini"
)

func TestBuildUserContentPlainText(t *testing.T) {
	content := gemini.BuildUserContent("What is an emergency fund?", nil)

	assert.Equal(t, "user", content.Role)
	require.Len(t, content.Parts, 1)
	assert.Equal(t, "What is an emergency fund?", content.Parts[0].Text)
	assert.Nil(t, content.Parts[0].InlineData)
}

func TestBuildUserContentWithDocument(t *testing.T) {
	doc := internal.DocumentDescriptor{
		FileID:        "f1",
		Name:          "statement.csv",
		MimeType:      "text/csv",
		Base64Content: "ZGF0YQ==",
	}

	content := gemini.BuildUserContent("Analyze this", []internal.DocumentDescriptor{doc})

	require.Len(t, content.Parts, 2)
	assert.Contains(t, content.Parts[0].Text, "Analyze this")
	assert.Contains(t, content.Parts[0].Text, "[Document: statement.csv]")
	assert.Contains(t, content.Parts[0].Text, "Content to analyze for financial insights.")

	require.NotNil(t, content.Parts[1].InlineData)
	assert.Equal(t, "text/csv", content.Parts[1].InlineData.MimeType)
	assert.Equal(t, "ZGF0YQ==", content.Parts[1].InlineData.Data)
}

func TestBuildUserContentKeepsAttachmentOrder(t *testing.T) {
	docs := []internal.DocumentDescriptor{
		{Name: "a.pdf", MimeType: "application/pdf", Base64Content: "YQ=="},
		{Name: "b.csv", MimeType: "text/csv", Base64Content: "Yg=="},
	}

	content := gemini.BuildUserContent("Compare these", docs)

	require.Len(t, content.Parts, 3)
	assert.Equal(t, "application/pdf", content.Parts[1].InlineData.MimeType)
	assert.Equal(t, "text/csv", content.Parts[2].InlineData.MimeType)
}

func TestBuildHistoryEmptyStaysNil(t *testing.T) {
	assert.Nil(t, gemini.BuildHistory(nil))
	assert.Nil(t, gemini.BuildHistory([]internal.Message{}))
}

func TestBuildHistoryDropsSeededWelcome(t *testing.T) {
	turns := []internal.Message{
		{Role: internal.RoleAssistant, Content: "welcome", Seed: true},
		{Role: internal.RoleUser, Content: "hi"},
		{Role: internal.RoleAssistant, Content: "hello"},
	}

	history := gemini.BuildHistory(turns)
	require.Len(t, history, 2)
	assert.Equal(t, "user", history[0].Role)
	assert.Equal(t, "hi", history[0].Parts[0].Text)
	assert.Equal(t, "model", history[1].Role)
	assert.Equal(t, "hello", history[1].Parts[0].Text)
}

func TestBuildHistoryDropsUnflaggedLeadingAssistantTurn(t *testing.T) {
	turns := []internal.Message{
		{Role: internal.RoleAssistant, Content: "welcome"},
		{Role: internal.RoleUser, Content: "hi"},
	}

	history := gemini.BuildHistory(turns)
	require.Len(t, history, 1)
	assert.Equal(t, "user", history[0].Role)
}

func TestBuildHistoryOnlyWelcomeYieldsNil(t *testing.T) {
	turns := []internal.Message{
		{Role: internal.RoleAssistant, Content: "welcome", Seed: true},
	}
	assert.Nil(t, gemini.BuildHistory(turns))
}
