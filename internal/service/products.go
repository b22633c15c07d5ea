package service

import (
	"context"

	"github.com/rs/zerolog/log"

	apperrors "github.com/vj-tring/SalesBoostAI-V1/internal/errors"
	"github.com/vj-tring/SalesBoostAI-V1/internal/metrics"
	"github.com/vj-tring/SalesBoostAI-V1/internal/model"
	"github.com/vj-tring/SalesBoostAI-V1/internal/store"
)

// CatalogSource is where the product feed comes from.
type CatalogSource interface {
	FetchProducts(ctx context.Context) ([]model.ProductDraft, error)
	Enabled() bool
}

type ProductService struct {
	store   *store.Store
	source  CatalogSource
	metrics *metrics.Metrics
}

func NewProductService(st *store.Store, source CatalogSource, m *metrics.Metrics) *ProductService {
	return &ProductService{store: st, source: source, metrics: m}
}

// Sync pulls the catalog from the commerce platform and upserts it into the
// store. Products already present under the same external id are updated in
// place; running a sync twice with the same feed is a no-op.
func (s *ProductService) Sync(ctx context.Context) ([]model.Product, error) {
	if s.source == nil || !s.source.Enabled() {
		return nil, apperrors.InvalidInput("sync", "no commerce platform configured")
	}

	drafts, err := s.source.FetchProducts(ctx)
	if err != nil {
		if s.metrics != nil {
			s.metrics.Errors.WithLabelValues("commerce").Inc()
		}
		return nil, err
	}

	synced := s.store.SyncProducts(drafts)
	if s.metrics != nil {
		s.metrics.ProductSyncs.Inc()
	}
	log.Info().Int("products", len(synced)).Msg("product catalog synced")
	return synced, nil
}

func (s *ProductService) Create(draft model.ProductDraft) (*model.Product, error) {
	if draft.Title == "" {
		return nil, apperrors.MissingRequired("title")
	}
	if draft.Price.IsNegative() {
		return nil, apperrors.InvalidInput("price", "must not be negative")
	}
	if draft.ExternalID != nil && s.store.GetProductByExternalID(*draft.ExternalID) != nil {
		return nil, apperrors.AlreadyExists("product")
	}
	return s.store.CreateProduct(draft), nil
}

func (s *ProductService) Get(id int64) (*model.Product, error) {
	p := s.store.GetProduct(id)
	if p == nil {
		return nil, apperrors.NotFound("product")
	}
	return p, nil
}

func (s *ProductService) Update(id int64, patch model.ProductPatch) (*model.Product, error) {
	if patch.Price != nil && patch.Price.IsNegative() {
		return nil, apperrors.InvalidInput("price", "must not be negative")
	}
	p := s.store.UpdateProduct(id, patch)
	if p == nil {
		return nil, apperrors.NotFound("product")
	}
	return p, nil
}

func (s *ProductService) List(activeOnly bool) []model.Product {
	return s.store.ListProducts(activeOnly)
}
