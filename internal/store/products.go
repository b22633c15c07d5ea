package store

import (
	"github.com/vj-tring/SalesBoostAI-V1/internal/model"
)

func copyProduct(p model.Product) *model.Product {
	p.Tags = cloneStrings(p.Tags)
	return &p
}

func (s *Store) CreateProduct(draft model.ProductDraft) *model.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyProduct(s.createProductLocked(draft))
}

func (s *Store) createProductLocked(draft model.ProductDraft) model.Product {
	p := model.Product{
		ID:             s.allocID(),
		ExternalID:     draft.ExternalID,
		Title:          draft.Title,
		Description:    draft.Description,
		Price:          draft.Price,
		CompareAtPrice: draft.CompareAtPrice,
		Category:       draft.Category,
		Tags:           cloneStrings(draft.Tags),
		Inventory:      draft.Inventory,
		ImageURL:       draft.ImageURL,
		Active:         draft.Active,
		SyncedAt:       now(),
	}
	s.products[p.ID] = p
	return p
}

func (s *Store) GetProduct(id int64) *model.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[id]
	if !ok {
		return nil
	}
	return copyProduct(p)
}

func (s *Store) GetProductByExternalID(externalID string) *model.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.products {
		if p.ExternalID != nil && *p.ExternalID == externalID {
			return copyProduct(p)
		}
	}
	return nil
}

// UpdateProduct applies a shallow merge and re-stamps SyncedAt.
// Returns nil if the id is absent.
func (s *Store) UpdateProduct(id int64, patch model.ProductPatch) *model.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[id]
	if !ok {
		return nil
	}

	if patch.Title != nil {
		p.Title = *patch.Title
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.CompareAtPrice != nil {
		p.CompareAtPrice = patch.CompareAtPrice
	}
	if patch.Category != nil {
		p.Category = *patch.Category
	}
	if patch.Tags != nil {
		p.Tags = cloneStrings(patch.Tags)
	}
	if patch.Inventory != nil {
		p.Inventory = *patch.Inventory
	}
	if patch.ImageURL != nil {
		p.ImageURL = *patch.ImageURL
	}
	if patch.Active != nil {
		p.Active = *patch.Active
	}
	p.SyncedAt = now()

	s.products[id] = p
	return copyProduct(p)
}

func (s *Store) ListProducts(activeOnly bool) []model.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Product, 0, len(s.products))
	for _, p := range s.products {
		if activeOnly && !p.Active {
			continue
		}
		out = append(out, *copyProduct(p))
	}
	return out
}

// SyncProducts reconciles the supplied catalog against the store by external
// id: update-if-present, else insert. Every matched product is overwritten
// wholesale with the draft's fields; nothing is removed. Applying the same
// list twice yields the same state apart from SyncedAt. Results are in
// input order.
func (s *Store) SyncProducts(drafts []model.ProductDraft) []model.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Product, 0, len(drafts))
	for _, draft := range drafts {
		var existing *model.Product
		if draft.ExternalID != nil {
			for id, p := range s.products {
				if p.ExternalID != nil && *p.ExternalID == *draft.ExternalID {
					prod := s.products[id]
					existing = &prod
					break
				}
			}
		}

		if existing == nil {
			out = append(out, s.createProductLocked(draft))
			continue
		}

		existing.Title = draft.Title
		existing.Description = draft.Description
		existing.Price = draft.Price
		existing.CompareAtPrice = draft.CompareAtPrice
		existing.Category = draft.Category
		existing.Tags = cloneStrings(draft.Tags)
		existing.Inventory = draft.Inventory
		existing.ImageURL = draft.ImageURL
		existing.Active = draft.Active
		existing.SyncedAt = now()

		s.products[existing.ID] = *existing
		out = append(out, *existing)
	}
	return out
}
