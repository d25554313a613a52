package services

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/desertthunder/listmerge/internal/models"
	"github.com/desertthunder/listmerge/internal/shared"
)

const DefaultBaseURL = "http://localhost:3000"
const DefaultListsPath = "/list-creation/lists"

// HTTPListSource loads lists with a GET against the lists endpoint.
type HTTPListSource struct {
	baseURL    string
	path       string
	httpClient *http.Client
}

// NewHTTPListSource creates a source for baseURL+path. Empty arguments fall back to defaults.
func NewHTTPListSource(baseURL, path string, client *http.Client) *HTTPListSource {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if path == "" {
		path = DefaultListsPath
	}
	if client == nil {
		client = http.DefaultClient
	}

	return &HTTPListSource{
		baseURL:    strings.TrimRight(baseURL, "/"),
		path:       path,
		httpClient: client,
	}
}

// Name returns the endpoint URL.
func (s *HTTPListSource) Name() string {
	return s.baseURL + s.path
}

// Load fetches and partitions the lists.
func (s *HTTPListSource) Load(ctx context.Context) ([]models.List, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.Name(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: request failed: %v", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %v", shared.ErrAPIRequest, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: status %d", shared.ErrAPIRequest, resp.StatusCode)
	}

	raw, err := DecodePayload(body)
	if err != nil {
		return nil, err
	}

	return models.Partition(raw), nil
}
