// Package api provides the HTTP client the editor uses to load and save
// room-scoped layouts against the layout service.
//
// Loads and saves are both safe to retry (GET and idempotent PUT), so
// transient transport failures and 5xx responses are retried with backoff.
// Client errors fail immediately: a 404 means the room has no layout and a
// 400 means the payload is wrong, and neither improves on retry. Concurrency
// control (one save in flight at a time) lives in the editor session, not
// here.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/elvisburrniku/OrderTable-sub008/pkg/errors"
	"github.com/elvisburrniku/OrderTable-sub008/pkg/httputil"
	"github.com/elvisburrniku/OrderTable-sub008/pkg/layout"
	"github.com/elvisburrniku/OrderTable-sub008/pkg/observability"
)

// defaultTimeout bounds a single save/load attempt.
const defaultTimeout = 15 * time.Second

// Client talks to the layout service.
type Client struct {
	baseURL string
	http    *http.Client
	retry   httputil.Policy
}

// NewClient creates a client for the layout service at baseURL
// (e.g. "http://localhost:8080").
func NewClient(baseURL string) (*Client, error) {
	if err := errors.ValidateURL(baseURL); err != nil {
		return nil, err
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
		retry:   httputil.DefaultPolicy,
	}, nil
}

// Load fetches the layout for a room. A missing room yields an
// ErrCodeRoomNotFound error; transport failures yield ErrCodeNetwork.
func (c *Client) Load(ctx context.Context, room string) (*layout.RoomLayout, error) {
	if err := errors.ValidateRoom(room); err != nil {
		return nil, err
	}

	var l *layout.RoomLayout
	err := httputil.Retry(ctx, c.retry, func() error {
		resp, err := c.do(ctx, http.MethodGet, c.layoutURL(room), nil)
		if err != nil {
			return httputil.Transient(errors.Wrap(errors.ErrCodeNetwork, err, "load layout for %q", room))
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusOK:
			l, err = layout.Read(resp.Body)
			if err != nil {
				return errors.Wrap(errors.ErrCodeInvalidLayout, err, "decode layout for %q", room)
			}
			return nil
		case resp.StatusCode == http.StatusNotFound:
			return errors.New(errors.ErrCodeRoomNotFound, "no layout for room %q", room)
		case resp.StatusCode >= 500:
			return httputil.Transient(errors.New(errors.ErrCodeNetwork,
				"load layout for %q: status %d", room, resp.StatusCode))
		default:
			return errors.New(errors.ErrCodeNetwork, "load layout for %q: status %d", room, resp.StatusCode)
		}
	})
	if err != nil {
		return nil, err
	}
	return l, nil
}

// Save upserts the layout for its room. The server replaces any previous
// layout wholesale; saving an unchanged layout twice sends identical payloads.
func (c *Client) Save(ctx context.Context, l *layout.RoomLayout) error {
	if err := errors.ValidateRoom(l.Room); err != nil {
		return err
	}

	body, err := layout.Marshal(l)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode layout for %q", l.Room)
	}

	return httputil.Retry(ctx, c.retry, func() error {
		resp, err := c.do(ctx, http.MethodPut, c.layoutURL(l.Room), body)
		if err != nil {
			return httputil.Transient(errors.Wrap(errors.ErrCodeNetwork, err, "save layout for %q", l.Room))
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusNoContent || resp.StatusCode == http.StatusOK:
			return nil
		case resp.StatusCode >= 500:
			return httputil.Transient(errors.New(errors.ErrCodeNetwork,
				"save layout for %q: status %d", l.Room, resp.StatusCode))
		default:
			return errors.New(errors.ErrCodeNetwork, "save layout for %q: status %d", l.Room, resp.StatusCode)
		}
	})
}

// Rooms lists the rooms that have a stored layout.
func (c *Client) Rooms(ctx context.Context) ([]string, error) {
	resp, err := c.do(ctx, http.MethodGet, c.baseURL+"/api/rooms", nil)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "list rooms")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.New(errors.ErrCodeNetwork, "list rooms: status %d", resp.StatusCode)
	}

	var out struct {
		Rooms []string `json:"rooms"`
	}
	if err := decodeJSON(resp, &out); err != nil {
		return nil, err
	}
	return out.Rooms, nil
}

// do performs one HTTP attempt, emitting observability events.
func (c *Client) do(ctx context.Context, method, url string, body []byte) (*http.Response, error) {
	var reader *bytes.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	var req *http.Request
	var err error
	if reader != nil {
		req, err = http.NewRequestWithContext(ctx, method, url, reader)
	} else {
		req, err = http.NewRequestWithContext(ctx, method, url, nil)
	}
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	observability.HTTP().OnRequest(ctx, method, req.URL.Path)
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		observability.HTTP().OnError(ctx, method, req.URL.Path, err)
		return nil, err
	}
	observability.HTTP().OnResponse(ctx, method, req.URL.Path, resp.StatusCode, time.Since(start))
	return resp, nil
}

func (c *Client) layoutURL(room string) string {
	return fmt.Sprintf("%s/api/rooms/%s/layout", c.baseURL, room)
}

func decodeJSON(resp *http.Response, v any) error {
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidLayout, err, "decode response")
	}
	return nil
}
