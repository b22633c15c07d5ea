package store

import (
	"sort"

	"github.com/vj-tring/SalesBoostAI-V1/internal/model"
)

func copyMessage(m model.Message) *model.Message {
	m.Metadata = cloneBytes(m.Metadata)
	return &m
}

// CreateMessage appends a message to an existing conversation.
// Returns nil if the conversation does not exist.
func (s *Store) CreateMessage(params model.CreateMessageParams) *model.Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.conversations[params.ConversationID]; !ok {
		return nil
	}

	msg := model.Message{
		ID:             s.allocID(),
		ConversationID: params.ConversationID,
		Role:           params.Role,
		Content:        params.Content,
		Metadata:       cloneBytes(params.Metadata),
		CreatedAt:      now(),
	}
	s.messages[msg.ID] = msg
	return copyMessage(msg)
}

// ListMessages returns a conversation's messages, oldest first.
func (s *Store) ListMessages(conversationID int64) []model.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Message, 0)
	for _, msg := range s.messages {
		if msg.ConversationID == conversationID {
			out = append(out, *copyMessage(msg))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

// RecentMessages returns up to limit messages for a conversation,
// newest first.
func (s *Store) RecentMessages(conversationID int64, limit int) []model.Message {
	msgs := s.ListMessages(conversationID)
	for i, j := 0, len(msgs)-1; i < j; i, j = i+1, j-1 {
		msgs[i], msgs[j] = msgs[j], msgs[i]
	}
	if limit > 0 && len(msgs) > limit {
		msgs = msgs[:limit]
	}
	return msgs
}
