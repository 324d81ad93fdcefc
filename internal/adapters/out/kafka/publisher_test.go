package kafka_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"printshop/internal/adapters/out/kafka"
	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/core/domain/model/order"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockWriter struct {
	mock.Mock
}

func (m *MockWriter) WriteMessages(ctx context.Context, msgs ...kafkago.Message) error {
	args := m.Called(ctx, msgs)
	return args.Error(0)
}

func (m *MockWriter) Close() error {
	return m.Called().Error(0)
}

var now = time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)

func newPublisher(w kafka.MessageWriter) *kafka.Publisher {
	return kafka.NewPublisherWithWriter(w, "orders", kernel.ClockFunc(func() time.Time { return now }),
		slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func sampleChange(t *testing.T) order.StatusChange {
	t.Helper()
	actor, err := kernel.NewActorID("u1")
	require.NoError(t, err)
	return order.NewStatusChange("QUOTE", "SP - In Production", now.Add(-time.Minute), actor)
}

func TestPublisher_PublishStatusChanged(t *testing.T) {
	writer := &MockWriter{}
	var sent []kafkago.Message
	writer.On("WriteMessages", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { sent = args.Get(1).([]kafkago.Message) }).
		Return(nil).Once()

	err := newPublisher(writer).PublishStatusChanged(t.Context(), "1042", sampleChange(t))

	require.NoError(t, err)
	writer.AssertExpectations(t)
	require.Len(t, sent, 1)
	assert.Equal(t, []byte("1042"), sent[0].Key)
	assert.Equal(t, now, sent[0].Time)

	var event kafka.Event
	require.NoError(t, json.Unmarshal(sent[0].Value, &event))
	_, err = uuid.Parse(event.EventID)
	assert.NoError(t, err)
	assert.Equal(t, "1042", event.OrderID)
	assert.Equal(t, kafka.EventTypeStatusChanged, event.Type)
	assert.Equal(t, now, event.CreatedAt)
	assert.Equal(t, kafka.StatusChangedPayload{
		From:      "QUOTE",
		To:        "SP - In Production",
		ChangedBy: "u1",
		ChangedAt: now.Add(-time.Minute),
		Phase:     "Screen Print",
	}, event.Payload)
}

func TestPublisher_WriteFailure(t *testing.T) {
	writer := &MockWriter{}
	brokerDown := errors.New("broker down")
	writer.On("WriteMessages", mock.Anything, mock.Anything).Return(brokerDown).Once()

	err := newPublisher(writer).PublishStatusChanged(t.Context(), "1042", sampleChange(t))

	assert.ErrorIs(t, err, brokerDown)
	writer.AssertExpectations(t)
}

func TestPublisher_Disabled(t *testing.T) {
	p := kafka.NewPublisher(" , ", "", nil, slog.New(slog.NewTextHandler(io.Discard, nil)))

	assert.False(t, p.Enabled())
	assert.NoError(t, p.PublishStatusChanged(t.Context(), "1042", sampleChange(t)))
	assert.NoError(t, p.Close())
}

func TestPublisher_EnabledWithBrokers(t *testing.T) {
	p := kafka.NewPublisher("localhost:9092, localhost:9093", "", nil, slog.New(slog.NewTextHandler(io.Discard, nil)))

	assert.True(t, p.Enabled())
	assert.NoError(t, p.Close())
}

func TestPublisher_Close(t *testing.T) {
	writer := &MockWriter{}
	writer.On("Close").Return(nil).Once()

	require.NoError(t, newPublisher(writer).Close())
	writer.AssertExpectations(t)
}
