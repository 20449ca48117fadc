package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/storely/store-rating-service/internal/services"
)

// ErrSessionExpired means the server rejected the stored token; the caller
// should clear the session and ask for a fresh login.
var ErrSessionExpired = errors.New("session expired, please log in again")

// APIError carries the server's envelope for a non-2xx response.
type APIError struct {
	StatusCode int
	Message    string
	Errors     []string
}

func (e *APIError) Error() string {
	if len(e.Errors) > 0 {
		return fmt.Sprintf("%s: %s", e.Message, strings.Join(e.Errors, "; "))
	}
	return e.Message
}

// API is a thin typed client over the service's REST surface.
type API struct {
	baseURL string
	http    *http.Client
	token   string
}

func NewAPI(baseURL string, timeout time.Duration) *API {
	return &API{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// SetToken attaches the bearer token used on subsequent requests.
func (a *API) SetToken(token string) {
	a.token = token
}

func (a *API) Register(ctx context.Context, req *services.RegisterRequest) (*services.AuthResponse, error) {
	var resp services.AuthResponse
	if err := a.do(ctx, http.MethodPost, "/api/auth/register", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (a *API) Login(ctx context.Context, email, password string) (*services.AuthResponse, error) {
	req := services.LoginRequest{Email: email, Password: password}
	var resp services.AuthResponse
	if err := a.do(ctx, http.MethodPost, "/api/auth/login", &req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (a *API) Profile(ctx context.Context) (*services.UserDetailResponse, error) {
	var resp services.UserDetailResponse
	if err := a.do(ctx, http.MethodGet, "/api/users/profile", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (a *API) ListStores(ctx context.Context, page int, search string) (*services.StoreListResponse, error) {
	path := fmt.Sprintf("/api/stores?page=%d", page)
	if search != "" {
		path += "&search=" + search
	}
	var resp services.StoreListResponse
	if err := a.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (a *API) GetStore(ctx context.Context, id uint) (*services.StoreDetailResponse, error) {
	var resp services.StoreDetailResponse
	if err := a.do(ctx, http.MethodGet, fmt.Sprintf("/api/stores/%d", id), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (a *API) SubmitRating(ctx context.Context, storeID uint, value int) (*services.RatingResponse, error) {
	req := services.CreateRatingRequest{StoreID: storeID, Rating: value}
	var resp services.RatingResponse
	if err := a.do(ctx, http.MethodPost, "/api/ratings", &req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (a *API) MyRatings(ctx context.Context) ([]services.RatingResponse, error) {
	var resp []services.RatingResponse
	if err := a.do(ctx, http.MethodGet, "/api/ratings/my-ratings", nil, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (a *API) OwnerDashboard(ctx context.Context) (*services.OwnerDashboardResponse, error) {
	var resp services.OwnerDashboardResponse
	if err := a.do(ctx, http.MethodGet, "/api/owner/dashboard", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (a *API) AdminDashboard(ctx context.Context) (*services.DashboardStatsResponse, error) {
	var resp services.DashboardStatsResponse
	if err := a.do(ctx, http.MethodGet, "/api/admin/dashboard", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// envelope mirrors the server's response wrapper.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Errors  []string        `json:"errors"`
}

func (a *API) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if a.token != "" {
		req.Header.Set("Authorization", "Bearer "+a.token)
	}

	resp, err := a.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized && a.token != "" {
		return ErrSessionExpired
	}
	if resp.StatusCode >= 400 || !env.Success {
		return &APIError{StatusCode: resp.StatusCode, Message: env.Message, Errors: env.Errors}
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("failed to decode response data: %w", err)
		}
	}
	return nil
}
