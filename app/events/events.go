// Package events carries entity change notifications from the services to
// whoever keeps derived data, such as cached models, in sync.
package events

import (
	"context"
	"sync"

	"storenews/app/logger"
	"storenews/app/metrics"
)

// Entity names the kind of record that changed.
type Entity string

const (
	EntityNewsItem    Entity = "news_item"
	EntityNewsComment Entity = "news_comment"
)

// Action names what happened to the record.
type Action string

const (
	ActionInserted Action = "inserted"
	ActionUpdated  Action = "updated"
	ActionDeleted  Action = "deleted"
)

// Event is a change to one record. NewsItemID is the owning news item for comments.
type Event struct {
	Entity     Entity `json:"entity"`
	Action     Action `json:"action"`
	ID         int    `json:"id"`
	NewsItemID int    `json:"newsItemId,omitempty"`
}

// Handler consumes events.
type Handler func(ctx context.Context, e Event)

// Publisher publishes events.
type Publisher interface {
	Publish(ctx context.Context, e Event)
}

// Bus delivers events synchronously to every subscriber in subscription order.
type Bus struct {
	mu       sync.RWMutex
	handlers []Handler
}

func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers h for all future events.
func (b *Bus) Subscribe(h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers = append(b.handlers, h)
}

func (b *Bus) Publish(ctx context.Context, e Event) {
	b.mu.RLock()
	handlers := make([]Handler, len(b.handlers))
	copy(handlers, b.handlers)
	b.mu.RUnlock()

	metrics.NewsEventsTotal.WithLabelValues(string(e.Entity), string(e.Action)).Inc()
	logger.WithFields(logger.Fields{
		"entity": e.Entity,
		"action": e.Action,
		"id":     e.ID,
	}).Debug("publishing event")

	for _, h := range handlers {
		h(ctx, e)
	}
}

// NopPublisher drops every event.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) {}
