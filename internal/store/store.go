// Package store is the sole owner of all entity state. It is an in-process
// repository backed by one map per entity kind, a single id counter shared
// across kinds, and one store-wide lock. Nothing survives a restart.
package store

import (
	"sync"
	"time"

	"github.com/vj-tring/SalesBoostAI-V1/internal/model"
)

type Store struct {
	mu     sync.RWMutex
	nextID int64

	conversations   map[int64]model.Conversation
	messages        map[int64]model.Message
	products        map[int64]model.Product
	orders          map[int64]model.Order
	recommendations map[int64]model.Recommendation
	subscriptions   map[int64]model.WebhookSubscription
}

func New() *Store {
	return &Store{
		conversations:   make(map[int64]model.Conversation),
		messages:        make(map[int64]model.Message),
		products:        make(map[int64]model.Product),
		orders:          make(map[int64]model.Order),
		recommendations: make(map[int64]model.Recommendation),
		subscriptions:   make(map[int64]model.WebhookSubscription),
	}
}

// allocID hands out the next identifier. Callers must hold mu.
func (s *Store) allocID() int64 {
	s.nextID++
	return s.nextID
}

func now() time.Time {
	return time.Now().UTC()
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func cloneBytes(in []byte) []byte {
	if in == nil {
		return nil
	}
	out := make([]byte, len(in))
	copy(out, in)
	return out
}
