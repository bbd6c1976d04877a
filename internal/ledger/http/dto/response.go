// Package dto provides the JSON shapes of the ledger endpoints.
package dto

import (
	"encoding/json"
	"time"

	ledgerDomain "github.com/allisson/stockpay/internal/ledger/domain"
	outboxDomain "github.com/allisson/stockpay/internal/outbox/domain"
)

// AuditLogResponse represents an audit log entry in API responses.
type AuditLogResponse struct {
	ID            string         `json:"id"`
	TransactionID *string        `json:"transaction_id"`
	Action        string         `json:"action"`
	Actor         string         `json:"actor"`
	Details       map[string]any `json:"details,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
}

// ListAuditLogsResponse wraps the audit trail of a transaction.
type ListAuditLogsResponse struct {
	Data []AuditLogResponse `json:"data"`
}

// MapAuditLogsToListResponse converts audit log entries to a list API response.
func MapAuditLogsToListResponse(entries []*ledgerDomain.AuditLogEntry) ListAuditLogsResponse {
	data := make([]AuditLogResponse, 0, len(entries))
	for _, entry := range entries {
		data = append(data, AuditLogResponse{
			ID:            entry.ID.String(),
			TransactionID: entry.TransactionID,
			Action:        entry.Action,
			Actor:         entry.Actor,
			Details:       entry.Details,
			CreatedAt:     entry.CreatedAt,
		})
	}
	return ListAuditLogsResponse{Data: data}
}

// IntegrationStatusResponse represents one collaborator call in API responses.
type IntegrationStatusResponse struct {
	ID            string          `json:"id"`
	TransactionID *string         `json:"transaction_id"`
	ServiceName   string          `json:"service_name"`
	Operation     string          `json:"operation"`
	Status        string          `json:"status"`
	RequestData   json.RawMessage `json:"request_data,omitempty"`
	ResponseData  json.RawMessage `json:"response_data,omitempty"`
	ErrorMessage  *string         `json:"error_message,omitempty"`
	DurationMs    int64           `json:"duration_ms"`
	CreatedAt     time.Time       `json:"created_at"`
}

// ListIntegrationStatusResponse wraps the collaborator calls of a transaction.
type ListIntegrationStatusResponse struct {
	Data []IntegrationStatusResponse `json:"data"`
}

// MapIntegrationStatusToListResponse converts integration status entries to a list API response.
func MapIntegrationStatusToListResponse(
	entries []*ledgerDomain.IntegrationStatusEntry,
) ListIntegrationStatusResponse {
	data := make([]IntegrationStatusResponse, 0, len(entries))
	for _, entry := range entries {
		data = append(data, IntegrationStatusResponse{
			ID:            entry.ID.String(),
			TransactionID: entry.TransactionID,
			ServiceName:   entry.ServiceName,
			Operation:     entry.Operation,
			Status:        string(entry.Status),
			RequestData:   entry.RequestData,
			ResponseData:  entry.ResponseData,
			ErrorMessage:  entry.ErrorMessage,
			DurationMs:    entry.DurationMs,
			CreatedAt:     entry.CreatedAt,
		})
	}
	return ListIntegrationStatusResponse{Data: data}
}

// OutboxEventResponse represents an emitted outbox event in API responses.
type OutboxEventResponse struct {
	ID          string          `json:"id"`
	EventType   string          `json:"event_type"`
	Payload     json.RawMessage `json:"payload"`
	Status      string          `json:"status"`
	Retries     int             `json:"retries"`
	LastError   *string         `json:"last_error,omitempty"`
	ProcessedAt *time.Time      `json:"processed_at,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// ListOutboxEventsResponse wraps the outbox events of a transaction.
type ListOutboxEventsResponse struct {
	Data []OutboxEventResponse `json:"data"`
}

// MapOutboxEventsToListResponse converts outbox events to a list API response.
func MapOutboxEventsToListResponse(events []*outboxDomain.OutboxEvent) ListOutboxEventsResponse {
	data := make([]OutboxEventResponse, 0, len(events))
	for _, event := range events {
		data = append(data, OutboxEventResponse{
			ID:          event.ID.String(),
			EventType:   event.EventType,
			Payload:     json.RawMessage(event.Payload),
			Status:      string(event.Status),
			Retries:     event.Retries,
			LastError:   event.LastError,
			ProcessedAt: event.ProcessedAt,
			CreatedAt:   event.CreatedAt,
		})
	}
	return ListOutboxEventsResponse{Data: data}
}
