package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// IntegrationOutcome is the result of one outbound collaborator call.
type IntegrationOutcome string

const (
	IntegrationSuccess IntegrationOutcome = "SUCCESS"
	IntegrationFailed  IntegrationOutcome = "FAILED"
)

// IntegrationStatusEntry records one outbound call to a collaborator. Exactly one entry is
// written per call attempt, whatever its outcome.
type IntegrationStatusEntry struct {
	ID            uuid.UUID
	TransactionID *string
	ServiceName   string
	Operation     string
	Status        IntegrationOutcome
	RequestData   json.RawMessage
	ResponseData  json.RawMessage
	ErrorMessage  *string
	DurationMs    int64
	CreatedAt     time.Time
}

// NewIntegrationStatusEntry builds an entry from the request and response snapshots. A nil
// callErr produces a SUCCESS entry, otherwise a FAILED one carrying the error message.
// Snapshots that cannot be encoded are stored as null.
func NewIntegrationStatusEntry(
	transactionID string,
	serviceName string,
	operation string,
	request any,
	response any,
	callErr error,
	duration time.Duration,
) *IntegrationStatusEntry {
	entry := &IntegrationStatusEntry{
		ID:          uuid.Must(uuid.NewV7()),
		ServiceName: serviceName,
		Operation:   operation,
		Status:      IntegrationSuccess,
		RequestData: snapshot(request),
		DurationMs:  duration.Milliseconds(),
		CreatedAt:   time.Now().UTC(),
	}

	if transactionID != "" {
		entry.TransactionID = &transactionID
	}

	if callErr != nil {
		message := callErr.Error()
		entry.Status = IntegrationFailed
		entry.ErrorMessage = &message
		return entry
	}

	entry.ResponseData = snapshot(response)
	return entry
}

func snapshot(v any) json.RawMessage {
	if v == nil {
		return nil
	}
	if raw, ok := v.(json.RawMessage); ok {
		return raw
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return data
}
