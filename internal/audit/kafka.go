package audit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"
)

// producer is the slice of *kgo.Client the Kafka store needs.
type producer interface {
	ProduceSync(ctx context.Context, rs ...*kgo.Record) kgo.ProduceResults
	Close()
}

// KafkaStore streams audit events to a Kafka topic, keyed by origin so one
// origin's events stay ordered within a partition.
type KafkaStore struct {
	client producer
	admin  *kadm.Client
	topic  string
}

// NewKafkaStore connects to the given brokers. The returned store owns the
// client; call Close on shutdown.
func NewKafkaStore(brokers []string, topic string, opts ...kgo.Opt) (*KafkaStore, error) {
	if len(brokers) == 0 {
		return nil, errors.New("kafka audit sink requires at least one broker")
	}
	if topic == "" {
		return nil, errors.New("kafka audit sink requires a topic")
	}
	opts = append([]kgo.Opt{
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
	}, opts...)
	client, err := kgo.NewClient(opts...)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}
	return &KafkaStore{client: client, admin: kadm.NewClient(client), topic: topic}, nil
}

func newKafkaStoreWithProducer(p producer, topic string) *KafkaStore {
	return &KafkaStore{client: p, topic: topic}
}

// EnsureTopic creates the audit topic when it does not exist yet.
func (s *KafkaStore) EnsureTopic(ctx context.Context, partitions int32, replicationFactor int16) error {
	if s.admin == nil {
		return errors.New("kafka admin client not configured")
	}
	resp, err := s.admin.CreateTopics(ctx, partitions, replicationFactor, nil, s.topic)
	if err != nil {
		return fmt.Errorf("create audit topic: %w", err)
	}
	for name, r := range resp {
		if r.Err != nil && !errors.Is(r.Err, kerr.TopicAlreadyExists) {
			return fmt.Errorf("create audit topic %s: %w", name, r.Err)
		}
	}
	return nil
}

func (s *KafkaStore) Append(ctx context.Context, event Event) error {
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode audit event: %w", err)
	}
	record := &kgo.Record{
		Topic:     s.topic,
		Key:       []byte(event.Origin),
		Value:     value,
		Timestamp: event.Timestamp,
		Headers: []kgo.RecordHeader{
			{Key: "action", Value: []byte(event.Action)},
			{Key: "category", Value: []byte(event.Category)},
		},
	}
	if err := s.client.ProduceSync(ctx, record).FirstErr(); err != nil {
		return fmt.Errorf("produce audit event: %w", err)
	}
	return nil
}

func (s *KafkaStore) Close() {
	s.client.Close()
}
