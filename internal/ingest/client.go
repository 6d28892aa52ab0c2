// Package ingest downloads Data Dragon static data, trims it to the fields
// the pipeline reads, and writes per-patch snapshots into the data
// directory.
package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client fetches raw Data Dragon payloads.
type Client struct {
	baseURL string
	locale  string
	http    *http.Client
}

func NewClient(baseURL, locale string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		locale:  locale,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// LatestVersion returns the newest patch from the version manifest.
func (c *Client) LatestVersion(ctx context.Context) (string, error) {
	raw, err := c.get(ctx, c.baseURL+"/api/versions.json")
	if err != nil {
		return "", err
	}
	var versions []string
	if err := json.Unmarshal(raw, &versions); err != nil {
		return "", fmt.Errorf("decode version manifest: %w", err)
	}
	if len(versions) == 0 {
		return "", fmt.Errorf("version manifest is empty")
	}
	return versions[0], nil
}

// Champions fetches the raw champion table for a patch.
func (c *Client) Champions(ctx context.Context, version string) ([]byte, error) {
	return c.get(ctx, fmt.Sprintf("%s/cdn/%s/data/%s/champion.json", c.baseURL, version, c.locale))
}

// Items fetches the raw item table for a patch.
func (c *Client) Items(ctx context.Context, version string) ([]byte, error) {
	return c.get(ctx, fmt.Sprintf("%s/cdn/%s/data/%s/item.json", c.baseURL, version, c.locale))
}

// RuneTrees fetches the raw rune-tree list for a patch.
func (c *Client) RuneTrees(ctx context.Context, version string) ([]byte, error) {
	return c.get(ctx, fmt.Sprintf("%s/cdn/%s/data/%s/runesReforged.json", c.baseURL, version, c.locale))
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: unexpected status %s", url, resp.Status)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", url, err)
	}
	return body, nil
}
