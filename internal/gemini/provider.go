package gemini

import (
	"context"

	"github.com/financeai/financeai-backend/internal"
)

// Generator is what the HTTP layer depends on; *Client is the live
// implementation and tests substitute a stub.
type Generator interface {
	Model() string
	Generate(ctx context.Context, history []internal.Message, userText string, docs []internal.DocumentDescriptor) (string, error)
}
