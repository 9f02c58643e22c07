// Package feed fetches and normalizes the precomputed record payload
// published by an external job (typically a jobs.json written by a
// scheduled fetcher). The engine treats a broken or unreachable feed as
// "zero records available", never as a pipeline error.
package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const maxPayloadBytes = 8 << 20

// Item is one partial-or-full record as it arrives on the wire. The
// classification fields are pointers so a missing key can be told apart
// from a present-but-false value; only missing keys get recomputed.
type Item struct {
	ID           string `json:"id,omitempty"`
	Index        int    `json:"index,omitempty"`
	Subject      string `json:"subject"`
	From         string `json:"from"`
	Date         string `json:"date"`
	Organization string `json:"organization"`
	Deadline     string `json:"deadline"`
	PositionType string `json:"positionType"`

	Links   []string `json:"links"`
	Snippet string   `json:"snippet"`

	IsJob                   *bool    `json:"isJob,omitempty"`
	IsDsPolicyFit           *bool    `json:"isDsPolicyFit,omitempty"`
	DsPolicyScore           *int     `json:"dsPolicyScore,omitempty"`
	DsPolicyMatchedKeywords []string `json:"dsPolicyMatchedKeywords,omitempty"`
}

// Stats mirrors the payload's bookkeeping block.
type Stats struct {
	NewItems          int `json:"new_items,omitempty"`
	TotalItems        int `json:"total_items"`
	ProcessedMessages int `json:"processed_messages,omitempty"`
}

// Payload is the feed document: items plus a display timestamp.
type Payload struct {
	GeneratedAt string          `json:"generated_at"`
	Source      string          `json:"source,omitempty"`
	Items       json.RawMessage `json:"items"`
	Stats       *Stats          `json:"stats,omitempty"`
}

// DecodeItems returns the payload's items, treating a missing or
// non-array items field as an empty sequence.
func (p Payload) DecodeItems() []Item {
	if len(p.Items) == 0 {
		return nil
	}
	var items []Item
	if err := json.Unmarshal(p.Items, &items); err != nil {
		return nil
	}
	return items
}

// Client fetches feed payloads over HTTP.
type Client struct {
	HTTP    *http.Client
	Limiter *HostLimiter
}

func NewClient() *Client {
	return &Client{
		HTTP:    &http.Client{Timeout: 20 * time.Second},
		Limiter: NewHostLimiter(1.0, 2),
	}
}

// Fetch retrieves and decodes the payload at url. Any transport or
// decode failure surfaces as an error; the caller presents that as a
// "feed unavailable" state and falls back to manual input.
func (c *Client) Fetch(ctx context.Context, url string) (Payload, error) {
	var p Payload

	if c.Limiter != nil {
		if err := c.Limiter.WaitURL(ctx, url); err != nil {
			return p, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return p, fmt.Errorf("feed request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return p, fmt.Errorf("feed fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return p, fmt.Errorf("feed fetch: unexpected status %s", resp.Status)
	}

	b, err := io.ReadAll(io.LimitReader(resp.Body, maxPayloadBytes))
	if err != nil {
		return p, fmt.Errorf("feed read: %w", err)
	}
	if err := json.Unmarshal(b, &p); err != nil {
		return p, fmt.Errorf("feed decode: %w", err)
	}
	return p, nil
}
