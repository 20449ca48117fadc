package client

import (
	"context"
	"encoding/json"
	"flag"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storely/store-rating-service/internal/services"
)

func TestLoadConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		fs := flag.NewFlagSet("test", flag.ContinueOnError)
		cfg, err := LoadConfig(fs, nil)
		require.NoError(t, err)
		assert.Equal(t, "http://127.0.0.1:8080", cfg.ServerAddr)
		assert.Equal(t, 10*time.Second, cfg.Timeout)
	})

	t.Run("flags override defaults", func(t *testing.T) {
		fs := flag.NewFlagSet("test", flag.ContinueOnError)
		cfg, err := LoadConfig(fs, []string{"-server", "https://ratings.example.com", "-timeout", "3"})
		require.NoError(t, err)
		assert.Equal(t, "https://ratings.example.com", cfg.ServerAddr)
		assert.Equal(t, 3*time.Second, cfg.Timeout)
	})

	t.Run("environment overrides defaults", func(t *testing.T) {
		t.Setenv("STORECTL_SERVER", "https://env.example.com")
		fs := flag.NewFlagSet("test", flag.ContinueOnError)
		cfg, err := LoadConfig(fs, nil)
		require.NoError(t, err)
		assert.Equal(t, "https://env.example.com", cfg.ServerAddr)
	})
}

func TestAPI_DecodesEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/stores/3", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"message": "Store retrieved successfully",
			"data": map[string]any{
				"id":            3,
				"name":          "Golden Gate Grocery Emporium",
				"averageRating": 4.5,
				"totalRatings":  2,
			},
		})
	}))
	defer server.Close()

	api := NewAPI(server.URL, time.Second)
	store, err := api.GetStore(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, uint(3), store.ID)
	assert.Equal(t, 4.5, store.AverageRating)
}

func TestAPI_SendsBearerToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok-abc", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(map[string]any{"success": true, "data": []any{}})
	}))
	defer server.Close()

	api := NewAPI(server.URL, time.Second)
	api.SetToken("tok-abc")
	_, err := api.MyRatings(context.Background())
	require.NoError(t, err)
}

func TestAPI_ErrorEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]any{
			"success": false,
			"message": "Validation failed",
			"errors":  []string{"Rating must be at most 5"},
		})
	}))
	defer server.Close()

	api := NewAPI(server.URL, time.Second)
	_, err := api.SubmitRating(context.Background(), 3, 9)
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Contains(t, apiErr.Error(), "Rating must be at most 5")
}

func TestAPI_SessionExpired(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]any{"success": false, "message": "Invalid or expired token"})
	}))
	defer server.Close()

	api := NewAPI(server.URL, time.Second)
	api.SetToken("stale")
	_, err := api.Profile(context.Background())
	assert.ErrorIs(t, err, ErrSessionExpired)
}

func TestResolveDashboardView(t *testing.T) {
	tests := []struct {
		role string
		want DashboardView
	}{
		{"USER", ViewMyRatings},
		{"OWNER", ViewOwnerStores},
		{"ADMIN", ViewPlatformStats},
		{"", ViewMyRatings},
		{"WIZARD", ViewMyRatings},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ResolveDashboardView(tt.role), "role %q", tt.role)
	}
}

func TestAPI_LoginRoundtrip(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req services.LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "rater@example.com", req.Email)

		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"message": "Login successful",
			"data": map[string]any{
				"token": "tok-abc",
				"user":  map[string]any{"id": 7, "email": "rater@example.com", "role": "USER"},
			},
		})
	}))
	defer server.Close()

	api := NewAPI(server.URL, time.Second)
	resp, err := api.Login(context.Background(), "rater@example.com", "Warp5Engage!")
	require.NoError(t, err)
	assert.Equal(t, "tok-abc", resp.Token)
	assert.Equal(t, uint(7), resp.User.ID)
}
