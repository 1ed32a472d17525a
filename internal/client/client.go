// Package client talks to a minipm GraphQL endpoint the way the browser
// board does: one operation per call, organization chosen by header.
package client

import (
	"context"
	"fmt"
	"net/http"
	"time"

	graphql "github.com/hasura/go-graphql-client"

	"minipm/internal/logging"
)

// MutationError is returned when the server reports success=false.
type MutationError struct {
	Operation string
	Message   string
}

func (e *MutationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Operation, e.Message)
}

// Client is a minipm GraphQL client bound to one organization.
type Client struct {
	gql          *graphql.Client
	endpoint     string
	organization string
}

// Option configures a Client.
type Option func(*options)

type options struct {
	timeout time.Duration
}

// WithTimeout bounds every request.
func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

// New creates a client for endpoint that acts for organization.
func New(endpoint, organization string, opts ...Option) *Client {
	o := &options{timeout: 30 * time.Second}
	for _, opt := range opts {
		opt(o)
	}
	hc := &http.Client{Timeout: o.timeout}
	gql := graphql.NewClient(endpoint, hc).WithRequestModifier(func(r *http.Request) {
		if organization != "" {
			r.Header.Set("X-Organization", organization)
		}
	})
	return &Client{gql: gql, endpoint: endpoint, organization: organization}
}

// Endpoint returns the GraphQL URL.
func (c *Client) Endpoint() string { return c.endpoint }

// Organization returns the organization header value.
func (c *Client) Organization() string { return c.organization }

// slowRequest is the duration after which a call is logged as a warning.
const slowRequest = 2 * time.Second

// exec runs one document and decodes its data into out, matching response
// keys to the graphql struct tags.
func (c *Client) exec(ctx context.Context, op, query string, vars map[string]interface{}, out interface{}) error {
	timer := logging.StartTimer(logging.CategoryClient, op)
	defer timer.StopWithThreshold(slowRequest)

	logging.ClientDebug("%s org=%q vars=%v", op, c.organization, vars)
	if err := c.gql.Exec(ctx, query, out, vars); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func checkMutation(op string, r MutationResult) error {
	if !r.Success {
		return &MutationError{Operation: op, Message: r.Message}
	}
	return nil
}

func setString(vars map[string]interface{}, key string, v *string) {
	if v != nil {
		vars[key] = *v
	}
}
