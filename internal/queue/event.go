// Package queue defines message payloads exchanged over the message broker
// and the background consumer that records them.
package queue

import "time"

// CatalogQueueName is the durable queue carrying catalog change events.
const CatalogQueueName = "catalog.events"

// EventType names a catalog change.
type EventType string

const (
	MovieCreated     EventType = "movie.created"
	MovieUpdated     EventType = "movie.updated"
	MovieDeactivated EventType = "movie.deactivated"
)

// MovieEvent is published after every successful write to the movie
// catalog.  It carries enough information for downstream consumers to log
// or re-index without querying the primary database.
type MovieEvent struct {
	Type       EventType `json:"type"`
	MovieID    string    `json:"movie_id"`
	Title      string    `json:"title"`
	IsActive   bool      `json:"is_active"`
	ActorID    string    `json:"actor_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}
