package store

import (
	"sort"

	"github.com/vj-tring/SalesBoostAI-V1/internal/model"
)

func copyConversation(c model.Conversation) *model.Conversation {
	c.Context = cloneBytes(c.Context)
	return &c
}

func (s *Store) CreateConversation(params model.CreateConversationParams) *model.Conversation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyConversation(s.createConversationLocked(params))
}

func (s *Store) createConversationLocked(params model.CreateConversationParams) model.Conversation {
	ts := now()
	conv := model.Conversation{
		ID:           s.allocID(),
		SessionID:    params.SessionID,
		CustomerID:   params.CustomerID,
		CustomerName: params.CustomerName,
		Status:       model.ConversationStatusActive,
		Context:      cloneBytes(params.Context),
		CreatedAt:    ts,
		UpdatedAt:    ts,
	}
	s.conversations[conv.ID] = conv
	return conv
}

func (s *Store) GetConversation(id int64) *model.Conversation {
	s.mu.RLock()
	defer s.mu.RUnlock()

	conv, ok := s.conversations[id]
	if !ok {
		return nil
	}
	return copyConversation(conv)
}

func (s *Store) GetConversationBySession(sessionID string) *model.Conversation {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, conv := range s.conversations {
		if conv.SessionID == sessionID {
			return copyConversation(conv)
		}
	}
	return nil
}

// FindOrCreateConversation resolves a session to its conversation, creating
// one on first contact. The lookup and the insert happen under one lock so
// two racing handlers cannot mint duplicate conversations for a session.
func (s *Store) FindOrCreateConversation(params model.CreateConversationParams) (*model.Conversation, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, conv := range s.conversations {
		if conv.SessionID == params.SessionID {
			return copyConversation(conv), false
		}
	}
	return copyConversation(s.createConversationLocked(params)), true
}

// UpdateConversation applies a shallow merge and re-stamps UpdatedAt.
// Returns nil if the id is absent.
func (s *Store) UpdateConversation(id int64, patch model.ConversationPatch) *model.Conversation {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv, ok := s.conversations[id]
	if !ok {
		return nil
	}

	if patch.CustomerID != nil {
		conv.CustomerID = patch.CustomerID
	}
	if patch.CustomerName != nil {
		conv.CustomerName = patch.CustomerName
	}
	if patch.Status != nil {
		conv.Status = *patch.Status
	}
	if patch.LastMessage != nil {
		conv.LastMessage = *patch.LastMessage
	}
	if patch.Context != nil {
		conv.Context = cloneBytes(patch.Context)
	}
	conv.UpdatedAt = now()

	s.conversations[id] = conv
	return copyConversation(conv)
}

// ListConversations returns conversations, optionally filtered by status,
// most recently updated first.
func (s *Store) ListConversations(status *model.ConversationStatus) []model.Conversation {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Conversation, 0, len(s.conversations))
	for _, conv := range s.conversations {
		if status != nil && conv.Status != *status {
			continue
		}
		out = append(out, *copyConversation(conv))
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out
}
