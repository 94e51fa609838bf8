package event

import (
	"context"
	"log/slog"
	"time"
)

type EventPublisher interface {
	PublishCustomerCreated(ctx context.Context, event CustomerCreatedEvent) error
	PublishCustomerUpdated(ctx context.Context, event CustomerUpdatedEvent) error
	PublishCustomerDeleted(ctx context.Context, event CustomerDeletedEvent) error
}

// CustomerEventPayload deliberately leaves out the password.
type CustomerEventPayload struct {
	CustomerID   int64   `json:"customerId"`
	FirstName    string  `json:"firstName"`
	LastName     string  `json:"lastName"`
	Userid       *string `json:"userid,omitempty"`
	Active       bool    `json:"active"`
	AddressCount int     `json:"addressCount"`
}

type CustomerCreatedEvent struct {
	Timestamp time.Time            `json:"timestamp"`
	Payload   CustomerEventPayload `json:"payload"`
}

type CustomerUpdatedEvent struct {
	Timestamp time.Time            `json:"timestamp"`
	Payload   CustomerEventPayload `json:"payload"`
}

type CustomerDeletedEvent struct {
	Timestamp  time.Time `json:"timestamp"`
	CustomerID int64     `json:"customerId"`
}

// LogEventPublisher is used when no broker is configured; it only records the events it sees.
type LogEventPublisher struct {
	logger *slog.Logger
}

func NewLogEventPublisher(logger *slog.Logger) *LogEventPublisher {
	return &LogEventPublisher{logger: logger.With("component", "LogEventPublisher")}
}

func (p *LogEventPublisher) PublishCustomerCreated(ctx context.Context, event CustomerCreatedEvent) error {
	p.logger.DebugContext(ctx, "Customer created event", slog.String("routingKey", routingKeyCustomerCreated), slog.Int64("customerID", event.Payload.CustomerID))
	return nil
}

func (p *LogEventPublisher) PublishCustomerUpdated(ctx context.Context, event CustomerUpdatedEvent) error {
	p.logger.DebugContext(ctx, "Customer updated event", slog.String("routingKey", routingKeyCustomerUpdated), slog.Int64("customerID", event.Payload.CustomerID))
	return nil
}

func (p *LogEventPublisher) PublishCustomerDeleted(ctx context.Context, event CustomerDeletedEvent) error {
	p.logger.DebugContext(ctx, "Customer deleted event", slog.String("routingKey", routingKeyCustomerDeleted), slog.Int64("customerID", event.CustomerID))
	return nil
}

var _ EventPublisher = (*LogEventPublisher)(nil)
