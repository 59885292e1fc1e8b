package internal

import "time"

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one turn in the conversation log. Immutable once created.
// Seed marks the synthetic welcome turn so it can be excluded from the
// history replayed to the model.
type Message struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	Seed      bool      `json:"seed,omitempty"`
}

// DocumentDescriptor is the transport-ready form of an uploaded file:
// base64 payload plus the resolved content type. Produced once by the
// encoder, attached by the client to a single chat request.
type DocumentDescriptor struct {
	FileID        string `json:"fileId"`
	Name          string `json:"name"`
	SizeBytes     int64  `json:"sizeBytes"`
	MimeType      string `json:"mimeType"`
	Base64Content string `json:"base64Content"`
}

type ChatHistory struct {
	Messages []Message `json:"messages"`
}

// ChatTurn is the collaborator's view of a prior turn, as replayed in a
// chat request.
type ChatTurn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
	Seed    bool   `json:"seed,omitempty"`
}

type ChatRequest struct {
	Messages    []ChatTurn           `json:"messages"`
	UserMessage string               `json:"userMessage"`
	Documents   []DocumentDescriptor `json:"documents,omitempty"`
}

type ChatResponse struct {
	Reply string `json:"reply"`
}

type UploadResponse struct {
	FileID        string `json:"fileId"`
	FileName      string `json:"fileName"`
	MimeType      string `json:"mimeType"`
	Base64Content string `json:"base64Content"`
	SizeBytes     int64  `json:"sizeBytes"`
}
