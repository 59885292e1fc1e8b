package store

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/financeai/financeai-backend/internal"
)

// ConversationStore is the append-only message log for one session.
// No deletion, no reordering, no in-place edits; Reset starts a fresh
// session in place.
type ConversationStore struct {
	mu       sync.Mutex
	messages []internal.Message
}

func NewConversationStore() *ConversationStore {
	return &ConversationStore{messages: make([]internal.Message, 0, 64)}
}

// Append creates a turn with a fresh ID and timestamp and adds it to the log.
func (s *ConversationStore) Append(role internal.Role, content string) internal.Message {
	return s.append(role, content, false)
}

func (s *ConversationStore) append(role internal.Role, content string, seed bool) internal.Message {
	msg := internal.Message{
		ID:        uuid.NewString(),
		Role:      role,
		Content:   content,
		CreatedAt: time.Now(),
		Seed:      seed,
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, msg)
	return msg
}

// Snapshot returns a copy of the log; callers may not mutate stored turns
// through it.
func (s *ConversationStore) Snapshot() []internal.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := make([]internal.Message, len(s.messages))
	copy(cp, s.messages)
	return cp
}

func (s *ConversationStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.messages)
}

func (s *ConversationStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = s.messages[:0]
}

// SeedWelcome appends the synthetic assistant greeting that opens a session.
// The Seed flag keeps it out of the history replayed to the model.
func SeedWelcome(s *ConversationStore, text string) internal.Message {
	return s.append(internal.RoleAssistant, text, true)
}
