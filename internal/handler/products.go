package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	apperrors "github.com/vj-tring/SalesBoostAI-V1/internal/errors"
	"github.com/vj-tring/SalesBoostAI-V1/internal/model"
	"github.com/vj-tring/SalesBoostAI-V1/internal/service"
	"github.com/vj-tring/SalesBoostAI-V1/internal/store"
)

const defaultTopProductsLimit = 10

type ProductsHandler struct {
	productService *service.ProductService
	store          *store.Store
}

func NewProductsHandler(productService *service.ProductService, st *store.Store) *ProductsHandler {
	return &ProductsHandler{productService: productService, store: st}
}

func (h *ProductsHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Post("/sync", h.Sync)
	r.Get("/top", h.Top)
	r.Get("/{id}", h.Get)
	r.Patch("/{id}", h.Update)
	return r
}

type productRequest struct {
	ExternalID     *string  `json:"externalId"`
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Price          string   `json:"price"`
	CompareAtPrice *string  `json:"compareAtPrice"`
	Category       string   `json:"category"`
	Tags           []string `json:"tags"`
	Inventory      int      `json:"inventory"`
	ImageURL       string   `json:"imageUrl"`
	Active         *bool    `json:"active"`
}

func (req productRequest) toDraft() (model.ProductDraft, error) {
	price, err := decimal.NewFromString(req.Price)
	if err != nil {
		return model.ProductDraft{}, apperrors.InvalidInput("price", "must be a decimal string")
	}

	var compareAt *decimal.Decimal
	if req.CompareAtPrice != nil {
		parsed, err := decimal.NewFromString(*req.CompareAtPrice)
		if err != nil {
			return model.ProductDraft{}, apperrors.InvalidInput("compareAtPrice", "must be a decimal string")
		}
		compareAt = &parsed
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	return model.ProductDraft{
		ExternalID:     req.ExternalID,
		Title:          req.Title,
		Description:    req.Description,
		Price:          price,
		CompareAtPrice: compareAt,
		Category:       req.Category,
		Tags:           req.Tags,
		Inventory:      req.Inventory,
		ImageURL:       req.ImageURL,
		Active:         active,
	}, nil
}

func (h *ProductsHandler) List(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active") == "true"
	products := h.productService.List(activeOnly)
	writeJSON(w, http.StatusOK, map[string]any{"products": products})
}

func (h *ProductsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	draft, err := req.toDraft()
	if err != nil {
		writeError(w, err)
		return
	}

	product, err := h.productService.Create(draft)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, product)
}

func (h *ProductsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	product, err := h.productService.Get(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

func (h *ProductsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req struct {
		Title          *string  `json:"title"`
		Description    *string  `json:"description"`
		Price          *string  `json:"price"`
		CompareAtPrice *string  `json:"compareAtPrice"`
		Category       *string  `json:"category"`
		Tags           []string `json:"tags"`
		Inventory      *int     `json:"inventory"`
		ImageURL       *string  `json:"imageUrl"`
		Active         *bool    `json:"active"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	patch := model.ProductPatch{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Tags:        req.Tags,
		Inventory:   req.Inventory,
		ImageURL:    req.ImageURL,
		Active:      req.Active,
	}
	if req.Price != nil {
		price, err := decimal.NewFromString(*req.Price)
		if err != nil {
			writeError(w, apperrors.InvalidInput("price", "must be a decimal string"))
			return
		}
		patch.Price = &price
	}
	if req.CompareAtPrice != nil {
		compareAt, err := decimal.NewFromString(*req.CompareAtPrice)
		if err != nil {
			writeError(w, apperrors.InvalidInput("compareAtPrice", "must be a decimal string"))
			return
		}
		patch.CompareAtPrice = &compareAt
	}

	product, err := h.productService.Update(id, patch)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

// Sync triggers an immediate catalog pull from the commerce platform.
func (h *ProductsHandler) Sync(w http.ResponseWriter, r *http.Request) {
	products, err := h.productService.Sync(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"count":    len(products),
		"products": products,
	})
}

// Top returns the most recommended products with their acceptance rates.
func (h *ProductsHandler) Top(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit <= 0 {
		limit = defaultTopProductsLimit
	}
	writeJSON(w, http.StatusOK, map[string]any{"products": h.store.TopRecommendedProducts(limit)})
}
