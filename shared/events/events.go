package events

import (
	"context"
	"encoding/json"
	"time"
)

// Event types
const (
	MemberCreated     = "member.created"
	AccountCreated    = "account.created"
	TransferCompleted = "transfer.completed"
)

// ActivityStream is the Redis stream the console appends its activity to.
const ActivityStream = "console.activity"

// DefaultMaxLen bounds the activity stream; older entries are trimmed.
const DefaultMaxLen = 1000

// Base event structure
type Event struct {
	ID        string          `json:"id,omitempty"`
	Type      string          `json:"type"`
	Summary   string          `json:"summary"`
	Timestamp time.Time       `json:"timestamp"`
	Data      json.RawMessage `json:"data,omitempty"`
}

// Feed records console activity and reads back the latest entries, newest first.
type Feed interface {
	Publish(ctx context.Context, eventType, summary string, data any) error
	Recent(ctx context.Context, n int64) ([]Event, error)
}

type MemberCreatedEvent struct {
	MemberID int64  `json:"memberId"`
	Name     string `json:"name"`
	Email    string `json:"email"`
}

type AccountCreatedEvent struct {
	AccountNumber  string `json:"accountNumber"`
	OwnerName      string `json:"ownerName"`
	InitialBalance string `json:"initialBalance"`
}

type TransferCompletedEvent struct {
	FromAccountNumber string `json:"fromAccountNumber"`
	ToAccountNumber   string `json:"toAccountNumber"`
	Amount            string `json:"amount"`
}

func newEvent(eventType, summary string, data any) (Event, error) {
	event := Event{
		Type:      eventType,
		Summary:   summary,
		Timestamp: time.Now().UTC(),
	}
	if data != nil {
		raw, err := json.Marshal(data)
		if err != nil {
			return Event{}, err
		}
		event.Data = raw
	}
	return event, nil
}
