package graphql

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	collabDomain "github.com/allisson/stockpay/internal/collaborator/domain"
	"github.com/allisson/stockpay/internal/collaborator/transport"
)

type payload struct {
	Result
	Order struct {
		ID transport.ID `json:"id"`
	} `json:"order"`
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewClient(transport.NewClient(collabDomain.ServiceOrder, transport.Config{
		BaseURL: server.URL,
		Timeout: time.Second,
	}))
}

func respond(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, body)
	}
}

func TestClient_Mutate(t *testing.T) {
	ctx := context.Background()
	req := Request{Query: "mutation { createOrder { success } }"}

	t.Run("Success", func(t *testing.T) {
		var received Request
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, Endpoint, r.URL.Path)
			assert.Equal(t, "TXN-1-AAAAAAAA", r.Header.Get(transport.TransactionIDHeader))
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&received))
			respond(`{"data":{"createOrder":{"success":true,"message":"ok","order":{"id":42}}}}`)(w, r)
		})

		var out payload
		raw, err := client.Mutate(
			collabDomain.WithTransactionID(ctx, "TXN-1-AAAAAAAA"),
			collabDomain.OperationOrderCreate,
			Request{Query: req.Query, Variables: map[string]any{"id": "1"}},
			"createOrder",
			&out,
		)

		require.NoError(t, err)
		assert.Equal(t, transport.ID("42"), out.Order.ID)
		assert.Contains(t, string(raw), `"success":true`)
		assert.Equal(t, "1", received.Variables["id"])
	})

	t.Run("Top-level errors", func(t *testing.T) {
		client := newTestClient(t, respond(`{"errors":[{"message":"customer not found"}]}`))

		_, err := client.Mutate(ctx, collabDomain.OperationOrderCreate, req, "createOrder", nil)

		var collabErr *collabDomain.Error
		require.ErrorAs(t, err, &collabErr)
		assert.ErrorIs(t, err, collabDomain.ErrDownstreamRejected)
		assert.Equal(t, "customer not found", collabErr.Message)
		assert.Equal(t, "Order service rejected request: customer not found", err.Error())
	})

	t.Run("Success flag false", func(t *testing.T) {
		client := newTestClient(t, respond(`{"data":{"createOrder":{"success":false,"message":"items out of range"}}}`))

		_, err := client.Mutate(ctx, collabDomain.OperationOrderCreate, req, "createOrder", nil)

		assert.ErrorIs(t, err, collabDomain.ErrDownstreamRejected)
		assert.Contains(t, err.Error(), "items out of range")
	})

	t.Run("Success flag false without message", func(t *testing.T) {
		client := newTestClient(t, respond(`{"data":{"createOrder":{"success":false}}}`))

		_, err := client.Mutate(ctx, collabDomain.OperationOrderCreate, req, "createOrder", nil)

		assert.Contains(t, err.Error(), "createOrder failed")
	})

	t.Run("Missing field", func(t *testing.T) {
		client := newTestClient(t, respond(`{"data":{"createOrder":null}}`))

		_, err := client.Mutate(ctx, collabDomain.OperationOrderCreate, req, "createOrder", nil)

		assert.ErrorIs(t, err, collabDomain.ErrDownstreamRejected)
		assert.Contains(t, err.Error(), "empty createOrder response")
	})

	t.Run("Server error", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		})

		_, err := client.Mutate(ctx, collabDomain.OperationOrderCreate, req, "createOrder", nil)

		assert.ErrorIs(t, err, collabDomain.ErrDownstreamUnavailable)
		assert.Contains(t, err.Error(), "status code 502")
	})
}
