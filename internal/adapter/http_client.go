package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rlozanop/credvault/internal/config"
	"github.com/rlozanop/credvault/internal/utils"
	"github.com/rlozanop/credvault/models"
)

type httpServerAdapter struct {
	client *resty.Client

	mu    sync.RWMutex
	token string
}

// NewHTTPServerAdapter builds the REST implementation of [ServerAdapter]
// from the client configuration.
func NewHTTPServerAdapter(cfg config.Client) ServerAdapter {
	baseURL := cfg.ServerURL
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	cli := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(timeout)

	return &httpServerAdapter{client: cli}
}

func (h *httpServerAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

func (h *httpServerAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

func (h *httpServerAdapter) Register(ctx context.Context, user models.User) (models.Token, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(user).
		Post("/api/auth/register")
	if err != nil {
		return models.Token{}, fmt.Errorf("register request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Token{}, err
	}

	return h.adoptToken(resp)
}

func (h *httpServerAdapter) Login(ctx context.Context, user models.User) (models.Token, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(user).
		Post("/api/auth/login")
	if err != nil {
		return models.Token{}, fmt.Errorf("login request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Token{}, err
	}

	return h.adoptToken(resp)
}

// adoptToken extracts the bearer token from an auth response, remembers it
// for subsequent requests, and returns it with the principal id decoded from
// the (unverified) subject claim. Verification happens server-side; the
// client only needs the id for display and caching.
func (h *httpServerAdapter) adoptToken(resp *resty.Response) (models.Token, error) {
	token, err := utils.ParseBearerToken(resp.Header().Get("Authorization"))
	if err != nil {
		return models.Token{}, fmt.Errorf("parse bearer token: %w", err)
	}
	userID, err := utils.ParseUserIDFromJWT(token)
	if err != nil {
		return models.Token{}, fmt.Errorf("parse user id: %w", err)
	}

	h.SetToken(token)
	return models.Token{SignedString: token, UserID: userID}, nil
}

func (h *httpServerAdapter) CreateCredential(ctx context.Context, create models.CredentialCreate) (models.CredentialResponse, error) {
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(create).
		Post("/api/credentials")
	if err != nil {
		return models.CredentialResponse{}, fmt.Errorf("create credential request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.CredentialResponse{}, err
	}

	var created models.CredentialResponse
	if err = json.Unmarshal(resp.Body(), &created); err != nil {
		return models.CredentialResponse{}, fmt.Errorf("decode create response: %w", err)
	}

	return created, nil
}

func (h *httpServerAdapter) ListCredentials(ctx context.Context, filter models.ListFilter) ([]models.CredentialResponse, error) {
	req := h.authedRequest(ctx)
	if filter.ServiceName != "" {
		req.SetQueryParam("service", filter.ServiceName)
	}

	resp, err := req.Get("/api/credentials")
	if err != nil {
		return nil, fmt.Errorf("list credentials request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var credentials []models.CredentialResponse
	if err = json.Unmarshal(resp.Body(), &credentials); err != nil {
		return nil, fmt.Errorf("decode list response: %w", err)
	}

	return credentials, nil
}

func (h *httpServerAdapter) GetCredential(ctx context.Context, credentialID int64) (models.CredentialResponse, error) {
	resp, err := h.authedRequest(ctx).
		Get("/api/credentials/" + strconv.FormatInt(credentialID, 10))
	if err != nil {
		return models.CredentialResponse{}, fmt.Errorf("get credential request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.CredentialResponse{}, err
	}

	var credential models.CredentialResponse
	if err = json.Unmarshal(resp.Body(), &credential); err != nil {
		return models.CredentialResponse{}, fmt.Errorf("decode get response: %w", err)
	}

	return credential, nil
}

func (h *httpServerAdapter) UpdateCredential(ctx context.Context, credentialID int64, update models.CredentialUpdate) (models.CredentialResponse, error) {
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(update).
		Patch("/api/credentials/" + strconv.FormatInt(credentialID, 10))
	if err != nil {
		return models.CredentialResponse{}, fmt.Errorf("update credential request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.CredentialResponse{}, err
	}

	var updated models.CredentialResponse
	if err = json.Unmarshal(resp.Body(), &updated); err != nil {
		return models.CredentialResponse{}, fmt.Errorf("decode update response: %w", err)
	}

	return updated, nil
}

func (h *httpServerAdapter) DeleteCredential(ctx context.Context, credentialID int64) error {
	resp, err := h.authedRequest(ctx).
		Delete("/api/credentials/" + strconv.FormatInt(credentialID, 10))
	if err != nil {
		return fmt.Errorf("delete credential request: %w", err)
	}

	return mapHTTPError(resp)
}

func (h *httpServerAdapter) RevealCredential(ctx context.Context, credentialID int64) (string, error) {
	resp, err := h.authedRequest(ctx).
		Post("/api/credentials/" + strconv.FormatInt(credentialID, 10) + "/reveal")
	if err != nil {
		return "", fmt.Errorf("reveal credential request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	var reveal models.RevealResponse
	if err = json.Unmarshal(resp.Body(), &reveal); err != nil {
		return "", fmt.Errorf("decode reveal response: %w", err)
	}

	return reveal.Password, nil
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}

func mapHTTPError(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	switch resp.StatusCode() {
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusConflict:
		return ErrConflict
	}

	body := strings.TrimSpace(string(resp.Body()))
	if body == "" {
		body = http.StatusText(resp.StatusCode())
	}
	return fmt.Errorf("http %d: %s", resp.StatusCode(), body)
}
