// file: api/client.go
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"go-ballpark/logger"
)

// Call describes one finished gateway call for observers.
type Call struct {
	Op      string
	Method  string
	Status  int
	Elapsed time.Duration
	Err     error
}

// Observer is notified after every call.
type Observer func(Call)

// Client talks to the backend on behalf of one visitor. It owns the
// visitor's cookie jar so the backend session cookie is never shared.
type Client struct {
	baseURL  *url.URL
	http     *http.Client
	token    *Token
	observer Observer
	now      func() time.Time

	Auth         *AuthService
	Games        *GameService
	Comments     *CommentService
	Lineups      *LineupService
	Teams        *TeamService
	Rankings     *RankingService
	AdminMembers *AdminMemberService
	Members      *MemberService
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the transport client. Its Jar is replaced when nil.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithObserver installs a per-call hook.
func WithObserver(o Observer) Option {
	return func(c *Client) { c.observer = o }
}

// WithToken seeds the bearer token.
func WithToken(raw string) Option {
	return func(c *Client) { c.token.Set(raw) }
}

// New creates a Client for baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", baseURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid base URL %q: scheme and host are required", baseURL)
	}

	c := &Client{
		baseURL: u,
		token:   &Token{},
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.http == nil {
		c.http = &http.Client{}
	}
	if c.http.Jar == nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, err
		}
		clone := *c.http
		clone.Jar = jar
		c.http = &clone
	}

	c.Auth = &AuthService{c: c}
	c.Games = &GameService{c: c}
	c.Comments = &CommentService{c: c}
	c.Lineups = &LineupService{c: c}
	c.Teams = &TeamService{c: c}
	c.Rankings = &RankingService{c: c}
	c.AdminMembers = &AdminMemberService{c: c}
	c.Members = &MemberService{c: c}
	return c, nil
}

// Token exposes the bearer token holder.
func (c *Client) Token() *Token { return c.token }

// request is one call's inputs.
type request struct {
	op     string
	method string
	path   string
	query  url.Values
	body   any
	form   url.Values
}

func (c *Client) do(ctx context.Context, r request, out any) (err error) {
	start := c.now()
	status := 0
	defer func() {
		if c.observer != nil {
			c.observer(Call{Op: r.op, Method: r.method, Status: status, Elapsed: c.now().Sub(start), Err: err})
		}
	}()

	req, err := c.newRequest(ctx, r)
	if err != nil {
		return &Error{Kind: KindRequest, Op: r.op, Method: r.method, Path: r.path, Err: err}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		logger.Error.Printf("[api] %s %s: no response: %v", r.method, r.path, err)
		return &Error{Kind: KindNetwork, Op: r.op, Method: r.method, Path: r.path, Err: err}
	}
	defer resp.Body.Close()
	status = resp.StatusCode

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Kind: KindNetwork, Op: r.op, Method: r.method, Path: r.path, Status: status, Err: err}
	}

	if status >= http.StatusBadRequest {
		logger.Warn.Printf("[api] %s %s -> %d", r.method, r.path, status)
		return &Error{Kind: KindServer, Op: r.op, Method: r.method, Path: r.path, Status: status, Message: serverMessage(payload)}
	}

	if out == nil || len(bytes.TrimSpace(payload)) == 0 {
		return nil
	}
	if s, ok := out.(*string); ok {
		*s = string(payload)
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return &Error{Kind: KindServer, Op: r.op, Method: r.method, Path: r.path, Status: status, Err: fmt.Errorf("decoding response: %w", err)}
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, r request) (*http.Request, error) {
	u := *c.baseURL
	u.Path = u.Path + r.path
	if len(r.query) > 0 {
		u.RawQuery = r.query.Encode()
	}

	var body io.Reader
	contentType := ""
	switch {
	case r.form != nil:
		body = strings.NewReader(r.form.Encode())
		contentType = "application/x-www-form-urlencoded"
	case r.body != nil:
		data, err := json.Marshal(r.body)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(data)
		contentType = "application/json"
	}

	req, err := http.NewRequestWithContext(ctx, r.method, u.String(), body)
	if err != nil {
		return nil, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	if bearer := c.token.Bearer(c.now()); bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	return req, nil
}

// serverMessage extracts {"message": "..."} or falls back to the plain body.
func serverMessage(payload []byte) string {
	trimmed := bytes.TrimSpace(payload)
	if len(trimmed) == 0 {
		return ""
	}
	var structured struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if trimmed[0] == '{' {
		if err := json.Unmarshal(trimmed, &structured); err == nil {
			if structured.Message != "" {
				return structured.Message
			}
			return structured.Error
		}
	}
	if trimmed[0] == '<' {
		// HTML error pages carry nothing useful for the user
		return ""
	}
	return string(trimmed)
}

func idPath(format string, ids ...any) string {
	escaped := make([]any, len(ids))
	for i, id := range ids {
		escaped[i] = url.PathEscape(fmt.Sprint(id))
	}
	return fmt.Sprintf(format, escaped...)
}
