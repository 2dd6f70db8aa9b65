package mirror

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/patroldesk/core/internal/domain/entities"
)

// URLResolver returns the mirror endpoint URL for a request, or empty when
// the mirror is not configured.
type URLResolver func(ctx context.Context) (string, error)

// Client talks to the remote spreadsheet mirror. The endpoint is a single
// web-app URL dispatching on an action query parameter: SAVE and DELETE are
// POSTs carrying the collection name in the type parameter, READ_ALL is a
// plain GET returning every mirrored collection at once.
type Client struct {
	http       *http.Client
	resolveURL URLResolver
}

// NewClient creates a mirror client
func NewClient(timeout time.Duration, resolveURL URLResolver) *Client {
	return &Client{
		http:       &http.Client{Timeout: timeout},
		resolveURL: resolveURL,
	}
}

// Snapshot is the READ_ALL response. Collections absent from the response
// stay nil and must be left untouched locally.
type Snapshot struct {
	Accidents     []entities.AccidentCase        `json:"accidents"`
	Registrations []entities.VehicleRegistration `json:"registrations"`
	Campaigns     []entities.Campaign            `json:"campaigns"`
	Verifications []entities.VerificationRequest `json:"verifications"`
	Results       []entities.WorkResult          `json:"results"`
	Documents     []entities.Document            `json:"documents"`
	Folders       []entities.Folder              `json:"folders"`
	Tasks         []entities.Task                `json:"tasks"`
}

func (c *Client) endpoint(ctx context.Context, params url.Values) (string, error) {
	base, err := c.resolveURL(ctx)
	if err != nil {
		return "", err
	}
	if base == "" {
		return "", entities.ErrMirrorNotConfigured
	}

	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("invalid mirror endpoint URL: %w", err)
	}
	q := u.Query()
	for key, values := range params {
		for _, v := range values {
			q.Set(key, v)
		}
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func (c *Client) post(ctx context.Context, params url.Values, body interface{}) error {
	target, err := c.endpoint(ctx, params)
	if err != nil {
		return err
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode mirror payload: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, reader)
	if err != nil {
		return fmt.Errorf("failed to build mirror request: %w", err)
	}
	// The Apps Script endpoint rejects preflighted content types; text/plain
	// keeps the request simple.
	req.Header.Set("Content-Type", "text/plain;charset=utf-8")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("mirror request failed: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= 400 {
		return fmt.Errorf("mirror returned status %d", resp.StatusCode)
	}
	return nil
}

// Save mirrors one upserted record of the named collection
func (c *Client) Save(ctx context.Context, collection string, record interface{}) error {
	params := url.Values{}
	params.Set("action", "SAVE")
	params.Set("type", collection)
	return c.post(ctx, params, map[string]interface{}{"data": record})
}

// Delete mirrors one deletion by id
func (c *Client) Delete(ctx context.Context, collection, id string) error {
	params := url.Values{}
	params.Set("action", "DELETE")
	params.Set("type", collection)
	params.Set("id", id)
	return c.post(ctx, params, nil)
}

// PullAll fetches every mirrored collection in one call
func (c *Client) PullAll(ctx context.Context) (*Snapshot, error) {
	params := url.Values{}
	params.Set("action", "READ_ALL")

	target, err := c.endpoint(ctx, params)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build mirror request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("mirror request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("mirror returned status %d", resp.StatusCode)
	}

	var snapshot Snapshot
	if err := json.NewDecoder(resp.Body).Decode(&snapshot); err != nil {
		return nil, fmt.Errorf("failed to decode mirror snapshot: %w", err)
	}
	return &snapshot, nil
}
