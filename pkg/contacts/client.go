package contacts

import (
	"context"
	"fmt"
	"net/url"

	"github.com/mesh-intelligence/contactsim/internal/logging"
	"github.com/mesh-intelligence/contactsim/pkg/portal"
	"github.com/mesh-intelligence/contactsim/pkg/types"
)

// Client issues Contacts API requests over a portal connection. Page and
// batch sizes must agree with the portal's, which for a simulated portal
// are the simulation's types.Config sizes.
type Client struct {
	conn      portal.Connection
	pageSize  int
	batchSize int
	logger    *logging.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithPageSize sets the number of records requested per retrieval page.
func WithPageSize(n int) Option {
	return func(c *Client) {
		c.pageSize = n
	}
}

// WithBatchSize sets the number of records sent per write call.
func WithBatchSize(n int) Option {
	return func(c *Client) {
		c.batchSize = n
	}
}

// WithLogger logs page fetches and batch writes at debug level.
func WithLogger(logger *logging.Logger) Option {
	return func(c *Client) {
		c.logger = logger.WithComponent("contacts")
	}
}

// NewClient returns a client using the API's default page and batch sizes
// unless overridden.
// Returns ErrPageSizeInvalid or ErrBatchSizeInvalid for non-positive sizes.
func NewClient(conn portal.Connection, opts ...Option) (*Client, error) {
	c := &Client{
		conn:      conn,
		pageSize:  types.DefaultPageSize,
		batchSize: types.DefaultBatchSize,
		logger:    logging.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.pageSize <= 0 {
		return nil, types.ErrPageSizeInvalid
	}
	if c.batchSize <= 0 {
		return nil, types.ErrBatchSizeInvalid
	}
	return c, nil
}

// send issues req and decodes the response into out, unless out is nil.
func (c *Client) send(ctx context.Context, req types.Request, out any) error {
	body, err := c.conn.Send(ctx, req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.Method, req.Path, err)
	}
	if out == nil {
		return nil
	}
	return decode(req.Path, body, out)
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.send(ctx, types.Request{Method: types.MethodGet, Path: path, Query: query}, out)
}
