// Package client is a typed HTTP client for the complaint-desk REST API.
// Every failure, whether transport, status or decoding, surfaces as the fixed
// error for the operation; the cause stays reachable through errors.Unwrap.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/complaint-desk/internal/api/dto"
	"github.com/spec-kit/complaint-desk/internal/ticketlist"
)

const (
	defaultBaseURL = "http://localhost:3000/api"
	defaultTimeout = 10 * time.Second
	dateLayout     = "2006-01-02"
)

// OperationError is the error returned for a failed API call. Its message is
// fixed per operation.
type OperationError struct {
	Op     string
	Status int
	Err    error
}

func (e *OperationError) Error() string { return e.Op }

func (e *OperationError) Unwrap() error { return e.Err }

// Is matches any OperationError for the same operation.
func (e *OperationError) Is(target error) bool {
	t, ok := target.(*OperationError)
	return ok && t.Op == e.Op
}

var (
	ErrFetchComplaints = &OperationError{Op: "failed to fetch complaints"}
	ErrCreateComplaint = &OperationError{Op: "failed to create complaint"}
	ErrUpdateComplaint = &OperationError{Op: "failed to update complaint"}
	ErrFetchUsers      = &OperationError{Op: "failed to fetch users"}
	ErrCreateUser      = &OperationError{Op: "failed to create user"}
	ErrFetchTickets    = &OperationError{Op: "failed to fetch tickets"}
	ErrCreateTicket    = &OperationError{Op: "failed to create ticket"}
)

// Client talks to the API rooted at BaseURL (for example http://host:3000/api).
type Client struct {
	baseURL string
	timeout time.Duration
}

// Option customizes a Client.
type Option func(*Client)

// WithTimeout bounds each request when the context carries no deadline.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// New builds a client. An empty baseURL targets the local development server.
func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	c := &Client{baseURL: strings.TrimRight(baseURL, "/"), timeout: defaultTimeout}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListComplaints GET /complaints.
func (c *Client) ListComplaints(ctx context.Context) ([]dto.ComplaintResponse, error) {
	var out []dto.ComplaintResponse
	if err := c.do(ctx, fiber.MethodGet, "/complaints", nil, &out, ErrFetchComplaints); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateComplaint POST /complaints.
func (c *Client) CreateComplaint(ctx context.Context, req dto.CreateComplaintRequest) (*dto.ComplaintResponse, error) {
	var out dto.ComplaintResponse
	if err := c.do(ctx, fiber.MethodPost, "/complaints", req, &out, ErrCreateComplaint); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateComplaintStatus PATCH /complaints/:id.
func (c *Client) UpdateComplaintStatus(ctx context.Context, id int64, status string) (*dto.ComplaintResponse, error) {
	var out dto.ComplaintResponse
	path := "/complaints/" + strconv.FormatInt(id, 10)
	if err := c.do(ctx, fiber.MethodPatch, path, dto.UpdateComplaintRequest{Status: status}, &out, ErrUpdateComplaint); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListUsers GET /users.
func (c *Client) ListUsers(ctx context.Context) ([]dto.UserResponse, error) {
	var out []dto.UserResponse
	if err := c.do(ctx, fiber.MethodGet, "/users", nil, &out, ErrFetchUsers); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateUser POST /users.
func (c *Client) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*dto.UserResponse, error) {
	var out dto.UserResponse
	if err := c.do(ctx, fiber.MethodPost, "/users", req, &out, ErrCreateUser); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListTickets GET /tickets for one page of the filtered view.
func (c *Client) ListTickets(ctx context.Context, q ticketlist.Query, page int) (*dto.TicketPageResponse, error) {
	params := queryParams(q)
	if page > 0 {
		params.Set("page", strconv.Itoa(page))
	}
	var out dto.TicketPageResponse
	if err := c.do(ctx, fiber.MethodGet, "/tickets?"+params.Encode(), nil, &out, ErrFetchTickets); err != nil {
		return nil, err
	}
	return &out, nil
}

// ExportTickets GET /tickets/export. ok is false when the server reports no
// matching tickets.
func (c *Client) ExportTickets(ctx context.Context, q ticketlist.Query) (body []byte, ok bool, err error) {
	code, body, err := c.send(ctx, fiber.MethodGet, "/tickets/export?"+queryParams(q).Encode(), nil)
	if err != nil {
		return nil, false, &OperationError{Op: ErrFetchTickets.Op, Err: err}
	}
	switch {
	case code == http.StatusNoContent:
		return nil, false, nil
	case code < 200 || code > 299:
		return nil, false, statusError(ErrFetchTickets, code, body)
	}
	return body, true, nil
}

// CreateTicket POST /tickets.
func (c *Client) CreateTicket(ctx context.Context, req dto.CreateTicketRequest) (*dto.TicketResponse, error) {
	var out dto.TicketResponse
	if err := c.do(ctx, fiber.MethodPost, "/tickets", req, &out, ErrCreateTicket); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any, opErr *OperationError) error {
	code, body, err := c.send(ctx, method, path, in)
	if err != nil {
		return &OperationError{Op: opErr.Op, Err: err}
	}
	if code < 200 || code > 299 {
		return statusError(opErr, code, body)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &OperationError{Op: opErr.Op, Status: code, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

func (c *Client) send(ctx context.Context, method, path string, in any) (int, []byte, error) {
	if err := ctx.Err(); err != nil {
		return 0, nil, err
	}
	timeout := c.timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
		if timeout <= 0 {
			return 0, nil, context.DeadlineExceeded
		}
	}

	agent := fiber.AcquireAgent()
	req := agent.Request()
	req.Header.SetMethod(method)
	req.SetRequestURI(c.baseURL + path)
	agent.Timeout(timeout)
	if in != nil {
		agent.JSON(in)
	}
	if err := agent.Parse(); err != nil {
		fiber.ReleaseAgent(agent)
		return 0, nil, err
	}

	code, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return code, nil, errs[0]
	}
	return code, body, nil
}

// statusError carries the server's {"error": ...} message as the cause.
func statusError(opErr *OperationError, code int, body []byte) error {
	var payload struct {
		Error string `json:"error"`
	}
	cause := fmt.Errorf("unexpected status %d", code)
	if json.Unmarshal(body, &payload) == nil && payload.Error != "" {
		cause = fmt.Errorf("unexpected status %d: %s", code, payload.Error)
	}
	return &OperationError{Op: opErr.Op, Status: code, Err: cause}
}

func queryParams(q ticketlist.Query) url.Values {
	params := url.Values{}
	if !q.AllReasons() {
		params.Set("reason", string(q.Reason))
	}
	if q.From != nil {
		params.Set("from", q.From.Format(dateLayout))
	}
	if q.To != nil {
		params.Set("to", q.To.Format(dateLayout))
	}
	return params
}
