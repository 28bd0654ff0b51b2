package event

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lightbnb/lightbnb/internal/domain"
	pkgkafka "github.com/lightbnb/lightbnb/pkg/kafka"
	"github.com/lightbnb/lightbnb/pkg/logger"
)

type recordingSink struct {
	topics []string
	events []*pkgkafka.Event
	err    error
}

func (s *recordingSink) Publish(_ context.Context, topic string, event *pkgkafka.Event) error {
	if s.err != nil {
		return s.err
	}
	s.topics = append(s.topics, topic)
	s.events = append(s.events, event)
	return nil
}

func newTestProducer(sink eventSink) *Producer {
	return &Producer{sink: sink, logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

func TestProducer_PublishUserRegistered(t *testing.T) {
	sink := &recordingSink{}
	ctx := logger.WithCorrelationID(context.Background(), "corr-9")

	user := &domain.User{ID: 3, Name: "Kim", Email: "kim@example.com", Password: "secret-hash"}
	require.NoError(t, newTestProducer(sink).PublishUserRegistered(ctx, user))

	require.Len(t, sink.events, 1)
	assert.Equal(t, TopicUserRegistered, sink.topics[0])

	evt := sink.events[0]
	assert.Equal(t, "user.registered", evt.Type)
	assert.Equal(t, "3", evt.AggregateID)
	assert.Equal(t, Source, evt.Source)
	assert.Equal(t, "corr-9", evt.CorrelationID)
	assert.NotContains(t, string(evt.Data), "secret-hash")

	var data UserRegisteredData
	require.NoError(t, evt.Decode(&data))
	assert.Equal(t, UserRegisteredData{ID: 3, Name: "Kim", Email: "kim@example.com"}, data)
}

func TestProducer_PublishPropertyCreated(t *testing.T) {
	sink := &recordingSink{}
	property := &domain.Property{ID: 11, OwnerID: 3, Title: "Loft", City: "Vancouver", CostPerNight: 12000}

	require.NoError(t, newTestProducer(sink).PublishPropertyCreated(context.Background(), property))

	require.Len(t, sink.events, 1)
	assert.Equal(t, TopicPropertyCreated, sink.topics[0])

	var data PropertyCreatedData
	require.NoError(t, sink.events[0].Decode(&data))
	assert.Equal(t, int64(11), data.ID)
	assert.Equal(t, int64(12000), data.CostPerNight)
}

func TestProducer_PublishError(t *testing.T) {
	sink := &recordingSink{err: errors.New("broker down")}

	err := newTestProducer(sink).PublishPropertyCreated(context.Background(), &domain.Property{ID: 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "publish property.created event")
}

func TestNoopPublisher(t *testing.T) {
	var p Publisher = NoopPublisher{}
	assert.NoError(t, p.PublishUserRegistered(context.Background(), &domain.User{}))
	assert.NoError(t, p.PublishPropertyCreated(context.Background(), &domain.Property{}))
}
