// Package gateway is the client's single point of access to the taskboard API.
package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/valyala/fasthttp"

	"github.com/fastygo/taskboard/api/transport"
)

// APIError is a non-2xx answer from the server.
type APIError struct {
	Status int
	Msg    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d %s", e.Status, e.Msg)
}

// Message returns the server's msg for API errors and the error text otherwise.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Msg != "" {
		return apiErr.Msg
	}
	return err.Error()
}

type Option func(*Client)

// WithHTTPClient replaces the underlying fasthttp client.
func WithHTTPClient(c *fasthttp.Client) Option {
	return func(cl *Client) { cl.http = c }
}

// WithTimeout bounds calls whose context has no deadline.
func WithTimeout(d time.Duration) Option {
	return func(cl *Client) {
		if d > 0 {
			cl.timeout = d
		}
	}
}

// Client issues one request per call against baseURL, with no retries and no caching.
type Client struct {
	baseURL string
	http    *fasthttp.Client
	timeout time.Duration
}

// New creates a client for baseURL, e.g. http://localhost:8080/api.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &fasthttp.Client{Name: "taskctl"},
		timeout: 10 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Do sends one request. in is encoded as the JSON body when non-nil and a 2xx body
// is decoded into out when non-nil.
func (c *Client) Do(ctx context.Context, method, path, token string, in, out interface{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.baseURL + path)
	req.Header.SetMethod(method)
	req.Header.Set(fasthttp.HeaderAccept, "application/json")
	if token != "" {
		req.Header.Set(fasthttp.HeaderAuthorization, token)
	}
	if in != nil {
		body, err := json.Marshal(in)
		if err != nil {
			return err
		}
		req.Header.SetContentType("application/json")
		req.SetBodyRaw(body)
	}

	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Now().Add(c.timeout)
	}
	if err := c.http.DoDeadline(req, resp, deadline); err != nil {
		return err
	}

	status := resp.StatusCode()
	if status < 200 || status >= 300 {
		var body transport.StatusResponse
		if err := json.Unmarshal(resp.Body(), &body); err != nil || body.Msg == "" {
			body.Msg = http.StatusText(status)
		}
		return &APIError{Status: status, Msg: body.Msg}
	}

	if out == nil {
		return nil
	}
	return json.Unmarshal(resp.Body(), out)
}

func (c *Client) Signup(ctx context.Context, req transport.SignupRequest) (*transport.StatusResponse, error) {
	var out transport.StatusResponse
	if err := c.Do(ctx, fasthttp.MethodPost, "/auth/signup", "", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (*transport.LoginResponse, error) {
	var out transport.LoginResponse
	req := transport.LoginRequest{Email: email, Password: password}
	if err := c.Do(ctx, fasthttp.MethodPost, "/auth/login", "", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Profile(ctx context.Context, token string) (*transport.ProfileResponse, error) {
	var out transport.ProfileResponse
	if err := c.Do(ctx, fasthttp.MethodGet, "/profile", token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListTasks(ctx context.Context, token string) (*transport.TaskListResponse, error) {
	var out transport.TaskListResponse
	if err := c.Do(ctx, fasthttp.MethodGet, "/tasks", token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetTask(ctx context.Context, token, id string) (*transport.TaskResponse, error) {
	var out transport.TaskResponse
	if err := c.Do(ctx, fasthttp.MethodGet, "/tasks/"+id, token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateTask(ctx context.Context, token string, req transport.TaskRequest) (*transport.TaskResponse, error) {
	var out transport.TaskResponse
	if err := c.Do(ctx, fasthttp.MethodPost, "/tasks", token, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateTask(ctx context.Context, token, id string, req transport.TaskRequest) (*transport.TaskResponse, error) {
	var out transport.TaskResponse
	if err := c.Do(ctx, fasthttp.MethodPut, "/tasks/"+id, token, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteTask(ctx context.Context, token, id string) (*transport.StatusResponse, error) {
	var out transport.StatusResponse
	if err := c.Do(ctx, fasthttp.MethodDelete, "/tasks/"+id, token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
