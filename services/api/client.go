// Package apisvc is the typed façade over the portal backend's REST surface.
// Every authenticated call carries the session token as a bearer header; a
// 401 from any endpoint clears the session at a single interception point.
package apisvc

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"io/ioutil"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/everyedu/portal/core"
	"github.com/everyedu/portal/core/session"
)

type Client struct {
	base     string
	http     *http.Client
	sessions *session.Store
	log      core.Logger

	mu             sync.Mutex
	onUnauthorized func()

	Auth       AuthAPI
	Wellbeing  WellbeingAPI
	Attendance AttendanceAPI
	Grades     GradesAPI
	Alerts     AlertsAPI
}

func NewClient(conf *core.Config, sessions *session.Store, log core.Logger) *Client {
	c := &Client{
		base:     strings.TrimRight(conf.API.BaseURL, "/"),
		http:     &http.Client{Timeout: conf.API.Timeout},
		sessions: sessions,
		log:      log,
	}
	c.Auth = AuthAPI{c}
	c.Wellbeing = WellbeingAPI{c}
	c.Attendance = AttendanceAPI{c}
	c.Grades = GradesAPI{c}
	c.Alerts = AlertsAPI{c}
	return c
}

// OnUnauthorized registers the single handler fired after a 401 response has
// cleared the session (the router uses it to fall back to Anonymous).
func (c *Client) OnUnauthorized(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onUnauthorized = fn
}

func (c *Client) unauthorized() {
	c.sessions.Clear()
	c.mu.Lock()
	fn := c.onUnauthorized
	c.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// do performs one JSON round trip. Transport failures wrap ErrUnavailable;
// a 401 triggers the centralized session teardown and returns
// ErrUnauthorized; other non-2xx statuses become an APIError carrying the
// server message when one is present.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, in, out interface{}) error {
	u := c.base + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return errors.Wrap(err, "encoding request body")
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return errors.Wrap(err, "building request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.New().String())
	if sess := c.sessions.Get(); !sess.IsAnonymous() {
		req.Header.Set("Authorization", "Bearer "+sess.Token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Wrap(core.ErrUnavailable, err.Error())
	}
	defer resp.Body.Close()

	data, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(core.ErrUnavailable, err.Error())
	}

	if resp.StatusCode == http.StatusUnauthorized {
		c.unauthorized()
		return errors.Wrap(core.ErrUnauthorized, serverMessage(data))
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &core.APIError{StatusCode: resp.StatusCode, Message: serverMessage(data)}
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return errors.Wrapf(err, "decoding %s %s response", method, path)
		}
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) post(ctx context.Context, path string, in, out interface{}) error {
	return c.do(ctx, http.MethodPost, path, nil, in, out)
}

func (c *Client) put(ctx context.Context, path string, in, out interface{}) error {
	return c.do(ctx, http.MethodPut, path, nil, in, out)
}

// serverMessage extracts the backend's {"error": ...} message, if any.
func serverMessage(data []byte) string {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return ""
	}
	return payload.Error
}
