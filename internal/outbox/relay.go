// Package outbox publishes committed outbox events to Kafka and prunes old rows.
package outbox

import (
	"context"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"

	"github.com/light-bringer/checkout-pricing-service/internal/logging"
	"github.com/light-bringer/checkout-pricing-service/internal/models/m_outbox"
	"github.com/light-bringer/checkout-pricing-service/internal/pkg/clock"
	"github.com/light-bringer/checkout-pricing-service/internal/pkg/committer"
)

// Publisher is satisfied by *kafka.Writer.
type Publisher interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// Observer receives relay counts.
type Observer interface {
	ObserveOutbox(result string, n int)
}

type nopObserver struct{}

func (nopObserver) ObserveOutbox(string, int) {}

// NewKafkaWriter builds the writer used by the relay.
func NewKafkaWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: true,
	}
}

// RelayConfig tunes a Relay.
type RelayConfig struct {
	BatchSize  int
	MaxRetries int
}

// Result counts what one relay pass did.
type Result struct {
	Published int
	Retried   int
	Failed    int
	// Deferred events stayed pending because an earlier event of the same aggregate
	// failed in this pass.
	Deferred int
}

// Relay moves pending events to Kafka. Events are keyed by aggregate id, so every event
// of one quote lands on the same partition in commit order. Once an event fails, later
// events of its aggregate wait for the next pass.
type Relay struct {
	store     Store
	publisher Publisher
	committer committer.Applier
	clock     clock.Clock
	cfg       RelayConfig
	observer  Observer
	logger    logrus.FieldLogger
}

// NewRelay creates a Relay. observer may be nil.
func NewRelay(store Store, publisher Publisher, applier committer.Applier, clk clock.Clock, cfg RelayConfig, observer Observer) *Relay {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 100
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 5
	}
	if observer == nil {
		observer = nopObserver{}
	}
	return &Relay{
		store:     store,
		publisher: publisher,
		committer: applier,
		clock:     clk,
		cfg:       cfg,
		observer:  observer,
		logger:    logging.NewModuleLogger("outbox-relay"),
	}
}

// RunOnce publishes one batch and records every outcome in a single commit.
func (r *Relay) RunOnce(ctx context.Context) (Result, error) {
	var res Result

	events, err := r.store.FetchPending(ctx, r.cfg.BatchSize)
	if err != nil {
		return res, err
	}
	if len(events) == 0 {
		return res, nil
	}

	model := m_outbox.NewModel()
	plan := committer.NewPlan()
	held := make(map[string]struct{})
	for _, event := range events {
		if _, ok := held[event.AggregateID]; ok {
			res.Deferred++
			continue
		}

		now := r.clock.Now()
		if err := r.publisher.WriteMessages(ctx, message(event)); err != nil {
			held[event.AggregateID] = struct{}{}
			retries := event.RetryCount + 1
			plan.Add(model.MarkRetryMut(event.EventID, retries, int64(r.cfg.MaxRetries), err.Error(), now))

			logger := r.logger.WithError(err).WithFields(logrus.Fields{
				"event_id":    event.EventID,
				"event_type":  event.EventType,
				"retry_count": retries,
			})
			if retries >= int64(r.cfg.MaxRetries) {
				res.Failed++
				logger.Error("Giving up on outbox event")
			} else {
				res.Retried++
				logger.Warn("Outbox publish failed, will retry")
			}
			continue
		}
		plan.Add(model.MarkCompletedMut(event.EventID, now))
		res.Published++
	}

	if err := r.committer.Apply(ctx, plan); err != nil {
		return res, fmt.Errorf("failed to record relay results: %w", err)
	}

	r.observer.ObserveOutbox("published", res.Published)
	r.observer.ObserveOutbox("retried", res.Retried)
	r.observer.ObserveOutbox("failed", res.Failed)
	r.observer.ObserveOutbox("deferred", res.Deferred)
	return res, nil
}

// Run polls until ctx is cancelled. A full batch is followed immediately by another pass.
func (r *Relay) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		res, err := r.RunOnce(ctx)
		if err != nil {
			r.logger.WithError(err).Error("Outbox relay pass failed")
		} else if res.Published+res.Retried+res.Failed > 0 {
			r.logger.WithFields(logrus.Fields{
				"published": res.Published,
				"retried":   res.Retried,
				"failed":    res.Failed,
			}).Info("Outbox relay pass")
		}
		if err == nil && res.Published+res.Retried+res.Failed >= r.cfg.BatchSize {
			continue
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func message(event *m_outbox.Data) kafka.Message {
	return kafka.Message{
		Key:   []byte(event.AggregateID),
		Value: []byte(event.PayloadString()),
		Headers: []kafka.Header{
			{Key: "event_id", Value: []byte(event.EventID)},
			{Key: "event_type", Value: []byte(event.EventType)},
		},
	}
}
