package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/iliyamo/movie-ticket-cms/internal/model"
	"github.com/iliyamo/movie-ticket-cms/internal/queue"
)

// Publisher delivers catalog events.  Implementations must be safe for
// concurrent use.
type Publisher interface {
	Publish(ctx context.Context, ev queue.MovieEvent) error
}

// NopPublisher drops every event.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, queue.MovieEvent) error { return nil }

// AMQPPublisher publishes events to the durable catalog queue.  Each call
// dials the broker, so a broker outage never leaves a stale connection
// behind.
type AMQPPublisher struct {
	URL string
}

func NewAMQPPublisher(url string) *AMQPPublisher { return &AMQPPublisher{URL: url} }

// Publish sends ev as a persistent JSON message on the default exchange
// with the queue name as routing key.
func (p *AMQPPublisher) Publish(ctx context.Context, ev queue.MovieEvent) error {
	conn, err := amqp.Dial(p.URL)
	if err != nil {
		return fmt.Errorf("rabbitmq dial: %w", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("rabbitmq channel: %w", err)
	}
	defer func() { _ = ch.Close() }()

	// Ensure the queue exists (idempotent). Durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare(queue.CatalogQueueName, true, false, false, false, nil); err != nil {
		return fmt.Errorf("rabbitmq queue declare: %w", err)
	}

	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	return ch.PublishWithContext(ctx, "", queue.CatalogQueueName, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Type:         string(ev.Type),
		Body:         body,
	})
}

// NewMovieEvent builds the event describing a write to m.
func NewMovieEvent(t queue.EventType, m model.Movie, actorID string) queue.MovieEvent {
	return queue.MovieEvent{
		Type:       t,
		MovieID:    m.ID,
		Title:      m.Title,
		IsActive:   m.IsActive,
		ActorID:    actorID,
		OccurredAt: time.Now().UTC(),
	}
}

// PublishBestEffort publishes ev and only logs a failure.  Catalog writes
// have already committed when this runs.
func PublishBestEffort(ctx context.Context, p Publisher, ev queue.MovieEvent) {
	if p == nil {
		return
	}
	if err := p.Publish(ctx, ev); err != nil {
		slog.Warn("catalog event publish failed", "type", ev.Type, "movie_id", ev.MovieID, "err", err)
	}
}
