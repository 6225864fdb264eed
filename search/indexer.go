package search

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// Event describes an article change the search index worker should pick up.
type Event struct {
	ArticleID uint   `json:"article_id"`
	Action    string `json:"action"`
}

const (
	ActionUpsert = "upsert"
	ActionDelete = "delete"
)

// Indexer receives change notifications after article mutations commit.
// Notifications are best effort and must never fail the calling operation.
type Indexer interface {
	NotifyArticleChanged(articleID uint)
	NotifyArticleDeleted(articleID uint)
}

// RedisIndexer publishes change events to a redis channel.
type RedisIndexer struct {
	client  *redis.Client
	channel string
}

func NewRedisIndexer(client *redis.Client, channel string) *RedisIndexer {
	return &RedisIndexer{client: client, channel: channel}
}

func (i *RedisIndexer) NotifyArticleChanged(articleID uint) {
	i.publish(Event{ArticleID: articleID, Action: ActionUpsert})
}

func (i *RedisIndexer) NotifyArticleDeleted(articleID uint) {
	i.publish(Event{ArticleID: articleID, Action: ActionDelete})
}

func (i *RedisIndexer) publish(event Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		slog.Warn("search: marshal event", "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := i.client.Publish(ctx, i.channel, payload).Err(); err != nil {
		slog.Warn("search: publish event",
			"channel", i.channel,
			"article_id", event.ArticleID,
			"action", event.Action,
			"error", err,
		)
	}
}

// NoopIndexer drops all notifications. Used when redis is disabled.
type NoopIndexer struct{}

func (NoopIndexer) NotifyArticleChanged(uint) {}
func (NoopIndexer) NotifyArticleDeleted(uint) {}
