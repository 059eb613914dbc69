// Package lookup resolves the public address and provider through an ipinfo-style JSON service.
package lookup

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"hotwatch/internal/types"
	"hotwatch/internal/version"

	"go.uber.org/zap"
)

// Timeout bounds a single lookup; there are no retries within a call
const Timeout = 5 * time.Second

// DefaultURL is the ipinfo endpoint returning {"ip": ..., "org": ...}
const DefaultURL = "https://ipinfo.io/json"

// Client queries the lookup service
type Client struct {
	url    string
	client *http.Client
	logger *zap.Logger
}

// response is the subset of the ipinfo payload we read
type response struct {
	IP  string `json:"ip"`
	Org string `json:"org"`
}

// NewClient creates a lookup client for url
func NewClient(url string, logger *zap.Logger) *Client {
	if url == "" {
		url = DefaultURL
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	client := &http.Client{
		Timeout: Timeout,
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout:   Timeout,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			MaxIdleConns:        10,
			IdleConnTimeout:     30 * time.Second,
			TLSHandshakeTimeout: Timeout,
		},
	}

	return &Client{url: url, client: client, logger: logger}
}

// Lookup returns the current public identity. On any failure it returns
// types.UnknownIdentity together with the error. Missing fields in an
// otherwise valid reply are filled with the unknown markers.
func (c *Client) Lookup(ctx context.Context) (types.Identity, error) {
	ctx, cancel := context.WithTimeout(ctx, Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return types.UnknownIdentity, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", version.UserAgent())
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return types.UnknownIdentity, fmt.Errorf("request failed: %w", err)
	}

	defer func(Body io.ReadCloser) {
		if err := Body.Close(); err != nil {
			c.logger.Error("Failed to close response body", zap.Error(err))
		}
	}(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return types.UnknownIdentity, fmt.Errorf("lookup service returned status %d", resp.StatusCode)
	}

	var body response
	if err := json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&body); err != nil {
		return types.UnknownIdentity, fmt.Errorf("failed to decode response: %w", err)
	}

	id := types.Identity{
		Address:  strings.TrimSpace(body.IP),
		Provider: strings.TrimSpace(body.Org),
	}
	if id.Address == "" {
		id.Address = types.UnknownAddress
	}
	if id.Provider == "" {
		id.Provider = types.UnknownProvider
	}
	if !id.Known() {
		c.logger.Warn("Lookup reply incomplete",
			zap.String("ip", id.Address),
			zap.String("org", id.Provider))
	}

	return id, nil
}
