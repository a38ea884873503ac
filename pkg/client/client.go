package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"cosmossdk.io/errors"

	"github.com/oxygene76/celestial-lookup/internal/types"
	"github.com/oxygene76/celestial-lookup/pkg/sources"
	"github.com/oxygene76/celestial-lookup/pkg/utils"
)

// maxBodyBytes caps how much of a response is read.
const maxBodyBytes = 4 << 20

// BodyClient fetches body documents from the configured sources
type BodyClient struct {
	http      *http.Client
	sources   map[string]utils.SourceConfig
	userAgent string
}

// NewBodyClient creates a client for the sources in config. A nil
// httpClient gets one with the configured timeout.
func NewBodyClient(config *utils.Config, httpClient *http.Client) *BodyClient {
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: time.Duration(config.Client.TimeoutSeconds) * time.Second,
		}
	}
	srcs := make(map[string]utils.SourceConfig, len(config.Sources))
	for name, src := range config.Sources {
		srcs[name] = src
	}
	return &BodyClient{
		http:      httpClient,
		sources:   srcs,
		userAgent: config.Client.UserAgent,
	}
}

// Schema returns the adapter name configured for source.
func (c *BodyClient) Schema(source string) (string, error) {
	src, ok := c.sources[source]
	if !ok {
		return "", errors.Wrapf(types.ErrUnknownSource, "%q is not configured", source)
	}
	return src.Schema, nil
}

// URL expands the source's URL template for id.
func (c *BodyClient) URL(source, id string) (string, error) {
	src, ok := c.sources[source]
	if !ok {
		return "", errors.Wrapf(types.ErrUnknownSource, "%q is not configured", source)
	}
	r := strings.NewReplacer(
		"{id}", url.PathEscape(id),
		"{query_id}", url.QueryEscape(id),
	)
	return r.Replace(src.URL), nil
}

// Fetch retrieves the JSON document for id from source.
func (c *BodyClient) Fetch(ctx context.Context, source, id string) ([]byte, error) {
	target, err := c.URL(source, id)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, errors.Wrapf(types.ErrFetchFailed, "build request: %v", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Wrapf(types.ErrFetchFailed, "%s: %v", source, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// drain so the connection can be reused
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return nil, errors.Wrapf(types.ErrFetchFailed, "%s returned %s", source, resp.Status)
	}

	doc, err := sources.ReadDocument(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, errors.Wrapf(types.ErrFetchFailed, "%s: read: %v", source, err)
	}
	return doc, nil
}

// String implements fmt.Stringer
func (c *BodyClient) String() string {
	return fmt.Sprintf("BodyClient(%d sources)", len(c.sources))
}
