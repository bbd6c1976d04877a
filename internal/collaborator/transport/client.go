// Package transport is the JSON over HTTP layer shared by the collaborator clients. It bounds
// every call with a timeout and turns transport failures into classified collaborator errors.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	collabDomain "github.com/allisson/stockpay/internal/collaborator/domain"
)

const (
	// TransactionIDHeader carries the transaction id to the collaborators for correlation.
	TransactionIDHeader = "X-Transaction-ID"

	maxResponseSize = 1 << 20
	defaultTimeout  = 10 * time.Second
)

// Config holds the connection settings of one collaborator.
type Config struct {
	BaseURL string
	Timeout time.Duration
	// Transport overrides the pooled default transport, mostly for tests.
	Transport http.RoundTripper
}

// Client posts JSON documents to a single collaborator.
type Client struct {
	service    collabDomain.Service
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
}

// NewClient creates a client for service. A zero timeout falls back to 10 seconds.
func NewClient(service collabDomain.Service, cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	transport := cfg.Transport
	if transport == nil {
		transport = &http.Transport{
			Proxy:                 http.ProxyFromEnvironment,
			MaxIdleConns:          100,
			MaxIdleConnsPerHost:   20,
			IdleConnTimeout:       90 * time.Second,
			TLSHandshakeTimeout:   10 * time.Second,
			ExpectContinueTimeout: time.Second,
		}
	}

	return &Client{
		service: service,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		timeout: timeout,
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
	}
}

// Service returns the collaborator this client talks to.
func (c *Client) Service() collabDomain.Service {
	return c.service
}

// PostJSON sends body to path and decodes a 2xx answer into out. Transport failures and 5xx
// answers are Downstream-Unavailable, 4xx answers and undecodable bodies are Downstream-Rejected.
func (c *Client) PostJSON(ctx context.Context, operation, path string, body, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	payload, err := json.Marshal(body)
	if err != nil {
		return collabDomain.NewRejectedError(c.service, operation, "failed to encode request: "+err.Error())
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return collabDomain.NewUnavailableError(c.service, operation, err.Error())
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if transactionID, ok := collabDomain.TransactionIDFromContext(ctx); ok {
		req.Header.Set(TransactionIDHeader, transactionID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Classify(c.service, operation, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return Classify(c.service, operation, err)
	}

	switch {
	case resp.StatusCode >= http.StatusInternalServerError:
		return collabDomain.NewUnavailableError(c.service, operation, statusMessage(resp.StatusCode, data))
	case resp.StatusCode >= http.StatusBadRequest:
		return collabDomain.NewRejectedError(c.service, operation, statusMessage(resp.StatusCode, data))
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return collabDomain.NewRejectedError(c.service, operation, "invalid response body: "+err.Error())
	}
	return nil
}

// statusMessage prefers the collaborator's own error message over the bare status code.
func statusMessage(statusCode int, body []byte) string {
	var payload struct {
		Message string `json:"message"`
		Errors  []struct {
			Message string `json:"message"`
		} `json:"errors"`
	}
	if json.Unmarshal(body, &payload) == nil {
		if len(payload.Errors) > 0 && payload.Errors[0].Message != "" {
			return payload.Errors[0].Message
		}
		if payload.Message != "" {
			return payload.Message
		}
	}
	return fmt.Sprintf("request failed with status code %d", statusCode)
}
