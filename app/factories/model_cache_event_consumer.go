package factories

import (
	"context"

	"storenews/app/cache"
	"storenews/app/events"
	"storenews/app/logger"
)

// ModelCacheEventConsumer drops cached news view models when the news they were
// built from changes.
type ModelCacheEventConsumer struct {
	cache cache.Manager
}

func NewModelCacheEventConsumer(cacheManager cache.Manager) *ModelCacheEventConsumer {
	return &ModelCacheEventConsumer{cache: cacheManager}
}

// Subscribe registers the consumer on bus.
func (c *ModelCacheEventConsumer) Subscribe(bus *events.Bus) {
	bus.Subscribe(c.HandleEvent)
}

// HandleEvent removes every homepage news block on news item or comment changes.
// Comment changes matter because the block carries comment counts.
func (c *ModelCacheEventConsumer) HandleEvent(ctx context.Context, e events.Event) {
	switch e.Entity {
	case events.EntityNewsItem, events.EntityNewsComment:
		c.cache.RemoveByPrefix(HomePagePrefixCacheKey)
		logger.WithFields(logger.Fields{
			"entity": e.Entity,
			"action": e.Action,
			"id":     e.ID,
		}).Debug("homepage news cache cleared")
	}
}
