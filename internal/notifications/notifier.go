// Package notifications publishes domain events over Redis pub/sub so
// external consumers (feeds, moderation dashboards) can react without
// polling the database.
package notifications

import (
	"context"
	"encoding/json"
	"time"

	"inkwell/internal/middleware"

	"github.com/redis/go-redis/v9"
)

// Channel is the single pub/sub channel carrying post lifecycle events.
const Channel = "inkwell:events"

// Event names.
const (
	EventPostCreated  = "post.created"
	EventPostApproved = "post.approved"
	EventPostDeleted  = "post.deleted"
)

// Event is the wire payload published for every post lifecycle change.
type Event struct {
	Name       string    `json:"name"`
	PostID     uint      `json:"post_id"`
	Slug       string    `json:"slug"`
	AuthorID   uint      `json:"author_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Notifier provides helpers to publish events into the Redis channel.
// All publishing is best-effort: a nil client or a failed publish never
// fails the request that triggered the event.
type Notifier struct {
	rdb *redis.Client
}

// NewNotifier creates a new Notifier instance using the provided Redis client.
func NewNotifier(rdb *redis.Client) *Notifier {
	return &Notifier{rdb: rdb}
}

// Publish sends one event. Safe to call with a nil receiver or client.
func (n *Notifier) Publish(ctx context.Context, ev Event) {
	if n == nil || n.rdb == nil {
		return
	}
	if ev.OccurredAt.IsZero() {
		ev.OccurredAt = time.Now().UTC()
	}
	payload, err := json.Marshal(ev)
	if err != nil {
		return
	}
	if err := n.rdb.Publish(ctx, Channel, payload).Err(); err != nil {
		middleware.RedisErrors.WithLabelValues("publish").Inc()
		middleware.Logger.WarnContext(ctx, "event publish failed",
			"event", ev.Name, "error", err.Error())
	}
}

// Subscribe listens on the events channel and calls onEvent for each
// decoded event until ctx is cancelled.
func (n *Notifier) Subscribe(ctx context.Context, onEvent func(Event)) error {
	if n == nil || n.rdb == nil {
		return nil
	}
	sub := n.rdb.Subscribe(ctx, Channel)
	ch := sub.Channel()

	go func() {
		defer func() { _ = sub.Close() }()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				var ev Event
				if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
					continue
				}
				onEvent(ev)
			}
		}
	}()

	return nil
}
