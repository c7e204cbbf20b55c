package service_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"civdef-inventory-backend/internal/domain"
	"civdef-inventory-backend/internal/service"
)

func TestAssistantService_Answer(t *testing.T) {
	ctx := context.Background()
	items := []domain.Item{
		{ID: 1, Name: "VHF Radio", Category: domain.CategoryComms, Quantity: 10, Available: 7},
	}

	t.Run("ReturnsModelAnswer", func(t *testing.T) {
		var gotBody map[string]any
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))
			assert.True(t, strings.HasSuffix(r.URL.Path, "/v1beta/models/test-model:generateContent"))
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
			_ = json.NewEncoder(w).Encode(map[string]any{
				"candidates": []map[string]any{
					{"content": map[string]any{"parts": []map[string]any{{"text": "7 radios available."}}}},
				},
			})
		}))
		defer srv.Close()

		itemRepo := new(MockItemRepo)
		itemRepo.On("List", ctx).Return(items, nil)
		svc := service.NewAssistantService(itemRepo, srv.URL, "test-model", "test-key")

		answer, err := svc.Answer(ctx, "how many radios do we have?")
		require.NoError(t, err)
		assert.Equal(t, "7 radios available.", answer)

		// Inventory context is carried in the system instruction.
		sys, _ := json.Marshal(gotBody["system_instruction"])
		assert.Contains(t, string(sys), "VHF Radio")
	})

	t.Run("FallbackOnUpstreamFailure", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		itemRepo := new(MockItemRepo)
		itemRepo.On("List", ctx).Return(items, nil)
		svc := service.NewAssistantService(itemRepo, srv.URL, "test-model", "test-key")

		answer, err := svc.Answer(ctx, "anything")
		require.NoError(t, err)
		assert.Equal(t, service.FallbackAnswer, answer)
	})

	t.Run("FallbackWithoutAPIKey", func(t *testing.T) {
		itemRepo := new(MockItemRepo)
		itemRepo.On("List", ctx).Return(items, nil)
		svc := service.NewAssistantService(itemRepo, "http://unused.invalid", "test-model", "")

		answer, err := svc.Answer(ctx, "anything")
		require.NoError(t, err)
		assert.Equal(t, service.FallbackAnswer, answer)
	})

	t.Run("FallbackOnEmptyCandidates", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(map[string]any{"candidates": []any{}})
		}))
		defer srv.Close()

		itemRepo := new(MockItemRepo)
		itemRepo.On("List", ctx).Return(items, nil)
		svc := service.NewAssistantService(itemRepo, srv.URL, "test-model", "test-key")

		answer, err := svc.Answer(ctx, "anything")
		require.NoError(t, err)
		assert.Equal(t, service.FallbackAnswer, answer)
	})
}
