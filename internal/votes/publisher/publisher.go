// Package publisher emits finished rollcall records to a Kafka topic.
package publisher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"

	"rollcall/internal/votes/aggregate"
	"rollcall/internal/votes/models"
	"rollcall/pkg/platform/sentinel"
)

// Producer is the part of *kgo.Client the publisher uses.
type Producer interface {
	ProduceSync(ctx context.Context, rs ...*kgo.Record) kgo.ProduceResults
	Close()
}

// Publisher keys every record by chamber/congress/session/rollcall so all
// versions of one rollcall land on the same partition.
type Publisher struct {
	producer Producer
	topic    string
	logger   *slog.Logger
}

type Option func(*Publisher)

func WithLogger(logger *slog.Logger) Option {
	return func(p *Publisher) {
		p.logger = logger
	}
}

// New wraps an existing producer.
func New(producer Producer, topic string, opts ...Option) (*Publisher, error) {
	if producer == nil {
		return nil, errors.New("producer is required")
	}
	if topic == "" {
		return nil, errors.New("topic is required")
	}
	p := &Publisher{
		producer: producer,
		topic:    topic,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Dial connects to brokers, makes sure topic exists and returns a Publisher
// owning the client.
func Dial(ctx context.Context, brokers []string, topic string, opts ...Option) (*Publisher, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
		kgo.RequiredAcks(kgo.AllISRAcks()),
		kgo.ProducerBatchCompression(kgo.SnappyCompression()),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: kafka client: %w", sentinel.ErrPublish, err)
	}
	if err := client.Ping(ctx); err != nil {
		client.Close()
		return nil, fmt.Errorf("%w: kafka ping: %w", sentinel.ErrPublish, err)
	}
	if err := EnsureTopic(ctx, kadm.NewClient(client), topic); err != nil {
		client.Close()
		return nil, err
	}
	return New(client, topic, opts...)
}

// TopicCreator is the part of *kadm.Client used to provision the topic.
type TopicCreator interface {
	CreateTopics(ctx context.Context, partitions int32, replicationFactor int16, configs map[string]*string, topics ...string) (kadm.CreateTopicResponses, error)
}

// EnsureTopic creates topic with broker default partitions and replication.
// An existing topic is not an error.
func EnsureTopic(ctx context.Context, admin TopicCreator, topic string) error {
	resp, err := admin.CreateTopics(ctx, -1, -1, nil, topic)
	if err != nil {
		return fmt.Errorf("%w: create topic %s: %w", sentinel.ErrPublish, topic, err)
	}
	for _, r := range resp {
		if r.Err != nil && !errors.Is(r.Err, kerr.TopicAlreadyExists) {
			return fmt.Errorf("%w: create topic %s: %w", sentinel.ErrPublish, r.Topic, r.Err)
		}
	}
	return nil
}

// Event is the record value.
type Event struct {
	RunID    string                 `json:"run_id"`
	Chamber  models.Chamber         `json:"chamber"`
	Congress uint16                 `json:"congress_number"`
	Session  uint8                  `json:"session_number"`
	Record   *models.RollCallRecord `json:"record"`
}

// PublishTree publishes every record of root once, in walk order, and
// returns how many were delivered.
func (p *Publisher) PublishTree(ctx context.Context, runID string, root *models.Root) (int, error) {
	var records []*kgo.Record
	err := aggregate.Walk(root, func(key models.RollcallKey, rc *models.RollCallRecord) error {
		value, err := json.Marshal(Event{
			RunID:    runID,
			Chamber:  key.Chamber,
			Congress: key.Congress,
			Session:  key.Session,
			Record:   rc,
		})
		if err != nil {
			return fmt.Errorf("%w: encode %s: %w", sentinel.ErrPublish, key, err)
		}
		records = append(records, &kgo.Record{
			Topic: p.topic,
			Key:   []byte(key.String()),
			Value: value,
		})
		return nil
	})
	if err != nil {
		return 0, err
	}
	if len(records) == 0 {
		return 0, nil
	}

	results := p.producer.ProduceSync(ctx, records...)
	delivered := 0
	for _, r := range results {
		if r.Err == nil {
			delivered++
		}
	}
	if err := results.FirstErr(); err != nil {
		return delivered, fmt.Errorf("%w: %d of %d records: %w", sentinel.ErrPublish, len(records)-delivered, len(records), err)
	}
	p.logger.InfoContext(ctx, "rollcall records published", "topic", p.topic, "records", delivered)
	return delivered, nil
}

func (p *Publisher) Close() {
	p.producer.Close()
}
