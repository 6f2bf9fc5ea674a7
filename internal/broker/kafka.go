package broker

import (
	"context"
	"fmt"

	"github.com/SergeyBogomolovv/marketplace-core/internal/config"
	"github.com/SergeyBogomolovv/marketplace-core/internal/events"
	"github.com/segmentio/kafka-go"
)

const HeaderEventType = "event_type"

// kafkaPublisher пишет события в один топик. Ключ сообщения - id заказа,
// поэтому Hash балансировщик кладет события заказа в одну партицию.
type kafkaPublisher struct {
	w *kafka.Writer
}

func NewKafkaPublisher(cfg config.Kafka) *kafkaPublisher {
	return &kafkaPublisher{
		w: &kafka.Writer{
			Addr:                   kafka.TCP(cfg.Brokers...),
			Topic:                  cfg.Topic,
			Balancer:               &kafka.Hash{},
			RequiredAcks:           kafka.RequireAll,
			BatchTimeout:           cfg.BatchTimeout,
			AllowAutoTopicCreation: true,
		},
	}
}

func (p *kafkaPublisher) Publish(ctx context.Context, ev events.Event) error {
	msg, err := Message(ev)
	if err != nil {
		return err
	}
	if err := p.w.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to write %s: %w", ev.Type(), err)
	}
	return nil
}

func (p *kafkaPublisher) Close() error {
	return p.w.Close()
}

// Message собирает kafka сообщение из события.
func Message(ev events.Event) (kafka.Message, error) {
	value, err := events.Encode(ev)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("failed to encode %s: %w", ev.Type(), err)
	}
	return kafka.Message{
		Key:   []byte(ev.PartitionKey()),
		Value: value,
		Time:  ev.Time(),
		Headers: []kafka.Header{
			{Key: HeaderEventType, Value: []byte(ev.Type())},
		},
	}, nil
}
