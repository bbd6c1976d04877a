// Package graphql runs single-endpoint GraphQL mutations against a collaborator and decodes
// the two response shapes they answer with: a top-level error list, or a data payload whose
// field carries a success flag and a message.
package graphql

import (
	"context"
	"encoding/json"
	"fmt"

	collabDomain "github.com/allisson/stockpay/internal/collaborator/domain"
	"github.com/allisson/stockpay/internal/collaborator/transport"
)

// Endpoint is the path every collaborator serves GraphQL on.
const Endpoint = "/graphql"

// Request is a GraphQL document with its variables.
type Request struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

// Error is one entry of the top-level error list.
type Error struct {
	Message string `json:"message"`
}

type envelope struct {
	Data   map[string]json.RawMessage `json:"data"`
	Errors []Error                    `json:"errors"`
}

// Result is the status part every mutation payload carries.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Client executes mutations through a transport client.
type Client struct {
	transport *transport.Client
}

// NewClient creates a GraphQL client on top of t.
func NewClient(t *transport.Client) *Client {
	return &Client{transport: t}
}

// Mutate executes req and decodes data.<field> into out. Any top-level error, a missing
// payload or a payload reporting success=false is a Downstream-Rejected error. The raw
// payload is returned for integration snapshots.
func (c *Client) Mutate(
	ctx context.Context,
	operation string,
	req Request,
	field string,
	out any,
) (json.RawMessage, error) {
	service := c.transport.Service()

	var env envelope
	if err := c.transport.PostJSON(ctx, operation, Endpoint, req, &env); err != nil {
		return nil, err
	}

	if len(env.Errors) > 0 {
		message := env.Errors[0].Message
		if message == "" {
			message = "GraphQL error"
		}
		return nil, collabDomain.NewRejectedError(service, operation, message)
	}

	raw, ok := env.Data[field]
	if !ok || len(raw) == 0 || string(raw) == "null" {
		return nil, collabDomain.NewRejectedError(service, operation, fmt.Sprintf("empty %s response", field))
	}

	var result Result
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, collabDomain.NewRejectedError(service, operation, "invalid response body: "+err.Error())
	}
	if !result.Success {
		message := result.Message
		if message == "" {
			message = fmt.Sprintf("%s failed", field)
		}
		return nil, collabDomain.NewRejectedError(service, operation, message)
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return nil, collabDomain.NewRejectedError(service, operation, "invalid response body: "+err.Error())
		}
	}

	return raw, nil
}
