// Package client is a small SDK for the events API. It mirrors the
// behavior of the web clients: responses are cached per dataset for a
// bounded time, and when a refresh attempt fails an existing cache entry
// is served as a stale fallback instead of surfacing the error.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"community-events-backend/internal/cache"
	"community-events-backend/internal/config"
	"community-events-backend/internal/models"

	"github.com/rs/zerolog/log"
)

// Cache keys per logical dataset
const (
	keyEvents        = "events"
	keyBoardProfiles = "board_profiles"
	keyMediaPrefix   = "media:"
)

const cacheSize = 64

// Client calls the events API with a TTL cache in front
type Client struct {
	baseURL string
	http    *http.Client
	cache   *cache.Store
}

// NewFromConfig creates a client using the cache section of the shared
// configuration file.
func NewFromConfig(baseURL string, cfg config.CacheConfig) (*Client, error) {
	return New(baseURL, cfg.TTL())
}

// New creates a client for the API at baseURL. ttl bounds cache
// freshness; zero selects the default of five minutes.
func New(baseURL string, ttl time.Duration) (*Client, error) {
	store, err := cache.NewStore(cacheSize, ttl)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
		cache:   store,
	}, nil
}

type envelope struct {
	Status int             `json:"status"`
	Data   json.RawMessage `json:"data"`
	Error  *struct {
		Kind   string `json:"kind"`
		Detail string `json:"detail"`
	} `json:"error"`
}

// GetEvents returns all events, served from cache while fresh
func (c *Client) GetEvents(ctx context.Context) ([]*models.Event, error) {
	var events []*models.Event
	err := c.cachedGet(ctx, keyEvents, http.MethodGet, "/api/events/fetch", nil, &events)
	return events, err
}

// GetEventMedia returns the URL map for the given event IDs
func (c *Client) GetEventMedia(ctx context.Context, ids []string) (map[string][]string, error) {
	body := map[string]interface{}{"id_list": ids}
	key := keyMediaPrefix + strings.Join(ids, ",")

	var media map[string][]string
	err := c.cachedGet(ctx, key, http.MethodPost, "/api/events/retrieve/media", body, &media)
	return media, err
}

// GetBoardProfiles returns the board member profiles
func (c *Client) GetBoardProfiles(ctx context.Context) ([]*models.BoardProfile, error) {
	var profiles []*models.BoardProfile
	err := c.cachedGet(ctx, keyBoardProfiles, http.MethodGet, "/api/board/fetch", nil, &profiles)
	return profiles, err
}

// cachedGet resolves one dataset: a fresh cache entry wins, otherwise the
// API is called and the entry overwritten. When the call fails and any
// entry exists, even an expired one, the entry is served instead of the
// error.
func (c *Client) cachedGet(ctx context.Context, key, method, path string, body interface{}, out interface{}) error {
	payload, fresh, ok := c.cache.Get(key)
	if ok && fresh {
		return json.Unmarshal(payload, out)
	}

	data, err := c.call(ctx, method, path, body)
	if err != nil {
		if ok {
			log.Warn().Err(err).Str("key", key).Msg("Fetch failed, serving stale cache entry")
			return json.Unmarshal(payload, out)
		}
		return err
	}

	c.cache.Put(key, data)
	return json.Unmarshal(data, out)
}

func (c *Client) call(ctx context.Context, method, path string, body interface{}) (json.RawMessage, error) {
	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if env.Error != nil {
		return nil, fmt.Errorf("api error %s: %s", env.Error.Kind, env.Error.Detail)
	}
	if env.Status < 200 || env.Status >= 300 {
		return nil, fmt.Errorf("api returned status %d", env.Status)
	}

	return env.Data, nil
}
