package event

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingConnection struct {
	err error
}

func (c *failingConnection) Channel() (*amqp.Channel, error) {
	return nil, c.err
}

func TestNewRabbitMQEventPublisherValidation(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("nil connection", func(t *testing.T) {
		pub, err := NewRabbitMQEventPublisher(nil, "customer-service", logger)
		assert.Nil(t, pub)
		assert.EqualError(t, err, "RabbitMQ connection cannot be nil")
	})

	t.Run("empty exchange", func(t *testing.T) {
		pub, err := NewRabbitMQEventPublisher(&amqp.Connection{}, "", logger)
		assert.Nil(t, pub)
		assert.EqualError(t, err, "RabbitMQ exchange name cannot be empty")
	})
}

func TestRabbitMQEventPublisherChannelFailure(t *testing.T) {
	channelErr := errors.New("connection closed")
	pub := &RabbitMQEventPublisher{
		conn:         &failingConnection{err: channelErr},
		exchangeName: "customer-service",
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	ctx := context.Background()

	err := pub.PublishCustomerCreated(ctx, CustomerCreatedEvent{Timestamp: time.Now()})
	assert.ErrorIs(t, err, channelErr)

	err = pub.PublishCustomerUpdated(ctx, CustomerUpdatedEvent{Timestamp: time.Now()})
	assert.ErrorIs(t, err, channelErr)

	err = pub.PublishCustomerDeleted(ctx, CustomerDeletedEvent{Timestamp: time.Now(), CustomerID: 3})
	assert.ErrorIs(t, err, channelErr)
}

func TestCustomerEventPayloadOmitsPassword(t *testing.T) {
	userid := "jd1"
	body, err := json.Marshal(CustomerCreatedEvent{
		Payload: CustomerEventPayload{CustomerID: 1, FirstName: "Jash", LastName: "Doshi", Userid: &userid, Active: true},
	})
	require.NoError(t, err)

	assert.Contains(t, string(body), `"userid":"jd1"`)
	assert.NotContains(t, string(body), "password")
}

func TestLogEventPublisher(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	pub := NewLogEventPublisher(logger)
	ctx := context.Background()

	assert.NoError(t, pub.PublishCustomerCreated(ctx, CustomerCreatedEvent{Payload: CustomerEventPayload{CustomerID: 1}}))
	assert.NoError(t, pub.PublishCustomerUpdated(ctx, CustomerUpdatedEvent{Payload: CustomerEventPayload{CustomerID: 1}}))
	assert.NoError(t, pub.PublishCustomerDeleted(ctx, CustomerDeletedEvent{CustomerID: 1}))

	out := buf.String()
	assert.Contains(t, out, routingKeyCustomerCreated)
	assert.Contains(t, out, routingKeyCustomerUpdated)
	assert.Contains(t, out, routingKeyCustomerDeleted)
}
