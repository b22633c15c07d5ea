package commerce

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vj-tring/SalesBoostAI-V1/internal/model"
)

func TestFetchProducts(t *testing.T) {
	t.Run("maps product feed to drafts", func(t *testing.T) {
		var gotAuth string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			assert.Equal(t, "/products", r.URL.Path)
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"products":[
				{"id":"ext-1","title":"Trail Shoe","description":"Grippy","price":"89.90","compare_at_price":"119.00","category":"footwear","tags":["trail","shoe"],"inventory":12,"image_url":"https://cdn.example.com/1.jpg","active":true},
				{"id":"ext-2","title":"Running Sock","description":"","price":"9.5","category":"apparel","inventory":0,"active":false}
			]}`))
		}))
		defer srv.Close()

		c := NewClient(srv.URL, "test-key")
		drafts, err := c.FetchProducts(context.Background())
		require.NoError(t, err)
		require.Len(t, drafts, 2)

		assert.Equal(t, "Bearer test-key", gotAuth)

		first := drafts[0]
		require.NotNil(t, first.ExternalID)
		assert.Equal(t, "ext-1", *first.ExternalID)
		assert.True(t, first.Price.Equal(decimal.RequireFromString("89.90")))
		require.NotNil(t, first.CompareAtPrice)
		assert.True(t, first.CompareAtPrice.Equal(decimal.RequireFromString("119.00")))
		assert.Equal(t, []string{"trail", "shoe"}, first.Tags)
		assert.True(t, first.Active)

		second := drafts[1]
		assert.True(t, second.Price.Equal(decimal.RequireFromString("9.50")))
		assert.Nil(t, second.CompareAtPrice)
		assert.False(t, second.Active)
	})

	t.Run("invalid price fails the sync", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"products":[{"id":"ext-1","title":"Bad","price":"not-a-price"}]}`))
		}))
		defer srv.Close()

		_, err := NewClient(srv.URL, "").FetchProducts(context.Background())
		assert.Error(t, err)
	})

	t.Run("non-200 is an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()

		_, err := NewClient(srv.URL, "").FetchProducts(context.Background())
		assert.Error(t, err)
	})

	t.Run("unconfigured client errors", func(t *testing.T) {
		_, err := NewClient("", "").FetchProducts(context.Background())
		assert.Error(t, err)
	})
}

func TestPushOrder(t *testing.T) {
	t.Run("posts order payload", func(t *testing.T) {
		var got map[string]any
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/orders", r.URL.Path)
			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			w.WriteHeader(http.StatusCreated)
		}))
		defer srv.Close()

		order := model.Order{
			CustomerEmail: "buyer@example.com",
			Status:        "pending",
			Total:         decimal.RequireFromString("42.10"),
			Currency:      "USD",
			Source:        "ai_chatbot",
		}
		require.NoError(t, NewClient(srv.URL, "").PushOrder(context.Background(), order))
		assert.Equal(t, "buyer@example.com", got["customer_email"])
		assert.Equal(t, "42.10", got["total"])
	})

	t.Run("unconfigured client is a no-op", func(t *testing.T) {
		assert.NoError(t, NewClient("", "").PushOrder(context.Background(), model.Order{}))
	})

	t.Run("server error surfaces", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		assert.Error(t, NewClient(srv.URL, "").PushOrder(context.Background(), model.Order{}))
	})
}
