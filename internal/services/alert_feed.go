package services

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// AlertChannel is the Redis channel every instance listens on for new feedback alerts.
const AlertChannel = "guestexp:alerts"

const alertSubscriberBuffer = 16

// AlertEvent announces that a submission triggered a management alert.
type AlertEvent struct {
	FeedbackID string    `json:"feedback_id,omitempty"`
	Category   string    `json:"category,omitempty"`
	Subject    string    `json:"subject,omitempty"`
	Sentiment  string    `json:"sentiment,omitempty"`
	Rating     int       `json:"rating,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// AlertHub fans alert events out to the admin dashboards connected to this instance.
// With a Redis client, events travel through AlertChannel so every instance sees them.
type AlertHub struct {
	client *redis.Client
	logger *zap.Logger

	mu          sync.RWMutex
	subscribers map[uuid.UUID]chan AlertEvent
	started     sync.Once
}

// NewAlertHub returns a hub. client may be nil for single-instance deployments.
func NewAlertHub(client *redis.Client, logger *zap.Logger) *AlertHub {
	return &AlertHub{
		client:      client,
		logger:      logger,
		subscribers: make(map[uuid.UUID]chan AlertEvent),
	}
}

// Subscribe registers a local listener. The returned func unregisters it and closes the channel.
func (h *AlertHub) Subscribe() (<-chan AlertEvent, func()) {
	id := uuid.New()
	ch := make(chan AlertEvent, alertSubscriberBuffer)

	h.mu.Lock()
	h.subscribers[id] = ch
	h.mu.Unlock()

	return ch, func() {
		h.mu.Lock()
		if _, ok := h.subscribers[id]; ok {
			delete(h.subscribers, id)
			close(ch)
		}
		h.mu.Unlock()
	}
}

// Publish announces an alert to every instance (or only this one without Redis).
func (h *AlertHub) Publish(ctx context.Context, event AlertEvent) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	if h.client == nil {
		h.fanOut(event)
		return nil
	}
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return h.client.Publish(ctx, AlertChannel, data).Err()
}

// fanOut delivers without blocking; a slow dashboard drops events rather than stalling the hub.
func (h *AlertHub) fanOut(event AlertEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, ch := range h.subscribers {
		select {
		case ch <- event:
		default:
			h.logger.Warn("alert subscriber full, dropping event", zap.String("feedback_id", event.FeedbackID))
		}
	}
}

// Start runs the shared Redis listener once per hub. It is a no-op without Redis.
func (h *AlertHub) Start(ctx context.Context) {
	if h.client == nil {
		return
	}
	h.started.Do(func() {
		go h.runSubscriber(ctx)
	})
}

func (h *AlertHub) runSubscriber(ctx context.Context) {
	backoff := time.Second

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		func() {
			pubsub := h.client.Subscribe(ctx, AlertChannel)
			defer pubsub.Close()

			h.logger.Info("alert subscriber started", zap.String("channel", AlertChannel))

			for {
				msg, err := pubsub.ReceiveMessage(ctx)
				if err != nil {
					if ctx.Err() != nil {
						return
					}
					h.logger.Error("alert subscriber error", zap.Error(err), zap.Duration("retry_in", backoff))
					time.Sleep(backoff)
					backoff *= 2
					if backoff > 30*time.Second {
						backoff = 30 * time.Second
					}
					return
				}

				backoff = time.Second

				var event AlertEvent
				if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
					h.logger.Warn("failed to unmarshal alert event", zap.Error(err))
					continue
				}
				h.fanOut(event)
			}
		}()
	}
}
