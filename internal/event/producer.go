package event

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/lightbnb/lightbnb/internal/domain"
	pkgkafka "github.com/lightbnb/lightbnb/pkg/kafka"
	"github.com/lightbnb/lightbnb/pkg/logger"
)

// Kafka topics for LightBnB domain events.
const (
	TopicUserRegistered  = "lightbnb.user.registered"
	TopicPropertyCreated = "lightbnb.property.created"
)

// Source identifies events published by this service.
const Source = "lightbnb-api"

// Publisher publishes domain events.
type Publisher interface {
	PublishUserRegistered(ctx context.Context, user *domain.User) error
	PublishPropertyCreated(ctx context.Context, property *domain.Property) error
}

// UserRegisteredData is the payload of a user.registered event.
type UserRegisteredData struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// PropertyCreatedData is the payload of a property.created event.
type PropertyCreatedData struct {
	ID           int64  `json:"id"`
	OwnerID      int64  `json:"owner_id"`
	Title        string `json:"title"`
	City         string `json:"city"`
	CostPerNight int64  `json:"cost_per_night"`
}

type eventSink interface {
	Publish(ctx context.Context, topic string, event *pkgkafka.Event) error
}

// Producer publishes domain events to Kafka.
type Producer struct {
	sink   eventSink
	logger *slog.Logger
}

// NewProducer creates a Kafka-backed publisher.
func NewProducer(kafka *pkgkafka.Producer, logger *slog.Logger) *Producer {
	return &Producer{sink: kafka, logger: logger}
}

// PublishUserRegistered publishes a user.registered event. The password hash
// is never part of the payload.
func (p *Producer) PublishUserRegistered(ctx context.Context, user *domain.User) error {
	data := UserRegisteredData{ID: user.ID, Name: user.Name, Email: user.Email}
	return p.publish(ctx, TopicUserRegistered, "user.registered", user.ID, data)
}

// PublishPropertyCreated publishes a property.created event.
func (p *Producer) PublishPropertyCreated(ctx context.Context, property *domain.Property) error {
	data := PropertyCreatedData{
		ID:           property.ID,
		OwnerID:      property.OwnerID,
		Title:        property.Title,
		City:         property.City,
		CostPerNight: property.CostPerNight,
	}
	return p.publish(ctx, TopicPropertyCreated, "property.created", property.ID, data)
}

func (p *Producer) publish(ctx context.Context, topic, eventType string, aggregateID int64, data any) error {
	evt, err := pkgkafka.NewEvent(eventType, strconv.FormatInt(aggregateID, 10), Source, data)
	if err != nil {
		return fmt.Errorf("create %s event: %w", eventType, err)
	}
	evt.CorrelationID = logger.CorrelationIDFromContext(ctx)

	if err := p.sink.Publish(ctx, topic, evt); err != nil {
		return fmt.Errorf("publish %s event: %w", eventType, err)
	}

	p.logger.DebugContext(ctx, "published event",
		slog.String("event_type", eventType),
		slog.Int64("aggregate_id", aggregateID),
	)
	return nil
}

// NoopPublisher discards events. It is used when no brokers are configured.
type NoopPublisher struct{}

func (NoopPublisher) PublishUserRegistered(context.Context, *domain.User) error { return nil }

func (NoopPublisher) PublishPropertyCreated(context.Context, *domain.Property) error { return nil }

var (
	_ Publisher = (*Producer)(nil)
	_ Publisher = NoopPublisher{}
)
