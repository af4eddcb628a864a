// Package gas talks to the Google-Apps-Script spreadsheet relay: one
// action-tagged JSON payload per operation, POSTed as text/plain (Apps
// Script web apps reject preflighted requests). All writes are best
// effort; only export returns data.
package gas

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"tableflip.dev/senryoku/pkg/fleet"
	"tableflip.dev/senryoku/pkg/roster"
)

// ErrNoEndpoint is returned when no relay URL is configured. Surfaced
// once at the boundary, never retried.
var ErrNoEndpoint = errors.New("gas: endpoint not configured")

const contentType = "text/plain;charset=utf-8"

// Sender is the remote write/pull surface the rest of the app depends
// on. Client implements it; tests substitute fakes.
type Sender interface {
	CreateUser(ctx context.Context, userName string) error
	DeleteUser(ctx context.Context, userName string) error
	UpsertOwn(ctx context.Context, userName, shipName string, own bool) error
	UpsertPt(ctx context.Context, userName, series string, pt *int) error
	UpsertUnusedPt(ctx context.Context, userName string, cls fleet.Category, pt *int) error
	Export(ctx context.Context) (roster.Snapshot, error)
}

// Client is the HTTP relay client.
type Client struct {
	url string
	hc  *http.Client
}

// NewClient returns a client for the relay URL. The URL may be empty;
// every call then fails with ErrNoEndpoint.
func NewClient(url string) *Client {
	return &Client{
		url: url,
		hc:  &http.Client{Timeout: 30 * time.Second},
	}
}

type response struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

type exportResponse struct {
	response
	roster.Snapshot
}

func (c *Client) post(ctx context.Context, payload any, out any) error {
	if c.url == "" {
		return ErrNoEndpoint
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("gas: encode payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("gas: build request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	res, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("gas: post: %w", err)
	}
	defer func() { _ = res.Body.Close() }()
	data, err := io.ReadAll(res.Body)
	if err != nil {
		return fmt.Errorf("gas: read response: %w", err)
	}
	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("gas: relay returned %s", res.Status)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("gas: decode response: %w", err)
	}
	return nil
}

func (c *Client) action(ctx context.Context, payload any) error {
	var res response
	if err := c.post(ctx, payload, &res); err != nil {
		return err
	}
	if !res.OK {
		if res.Error == "" {
			res.Error = "unknown error"
		}
		return fmt.Errorf("gas: relay rejected request: %s", res.Error)
	}
	return nil
}

// CreateUser creates the user record if absent. This is the one write
// whose failure gates a UI transition, so callers surface its error.
func (c *Client) CreateUser(ctx context.Context, userName string) error {
	return c.action(ctx, struct {
		Action   string `json:"action"`
		UserName string `json:"userName"`
	}{"createUser", userName})
}

// DeleteUser removes the user and all three sub-records remotely.
func (c *Client) DeleteUser(ctx context.Context, userName string) error {
	return c.action(ctx, struct {
		Action   string `json:"action"`
		UserName string `json:"userName"`
	}{"deleteUser", userName})
}

// UpsertOwn adds or removes one item from the user's ownership set.
func (c *Client) UpsertOwn(ctx context.Context, userName, shipName string, own bool) error {
	v := 0
	if own {
		v = 1
	}
	return c.action(ctx, struct {
		Action   string `json:"action"`
		UserName string `json:"userName"`
		ShipName string `json:"shipName"`
		Own      int    `json:"own"`
	}{"upsertOwn", userName, shipName, v})
}

// UpsertPt sets a series point entry. A nil pt is the explicit clear
// marker (JSON null): the remote clears the cell instead of writing 0.
func (c *Client) UpsertPt(ctx context.Context, userName, series string, pt *int) error {
	return c.action(ctx, struct {
		Action   string `json:"action"`
		UserName string `json:"userName"`
		Series   string `json:"series"`
		Pt       *int   `json:"pt"`
	}{"upsertPt", userName, series, pt})
}

// UpsertUnusedPt sets an unused point entry, nil pt clearing it.
func (c *Client) UpsertUnusedPt(ctx context.Context, userName string, cls fleet.Category, pt *int) error {
	return c.action(ctx, struct {
		Action   string `json:"action"`
		UserName string `json:"userName"`
		Cls      string `json:"cls"`
		Pt       *int   `json:"pt"`
	}{"upsertUnusedPt", userName, string(cls), pt})
}

// Export pulls the full authoritative snapshot.
func (c *Client) Export(ctx context.Context) (roster.Snapshot, error) {
	var res exportResponse
	if err := c.post(ctx, struct {
		Action string `json:"action"`
	}{"export"}, &res); err != nil {
		return roster.Snapshot{}, err
	}
	if !res.OK {
		if res.Error == "" {
			res.Error = "unknown error"
		}
		return roster.Snapshot{}, fmt.Errorf("gas: export failed: %s", res.Error)
	}
	return res.Snapshot, nil
}
