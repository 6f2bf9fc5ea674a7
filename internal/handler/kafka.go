package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/SergeyBogomolovv/marketplace-core/internal/config"
	"github.com/SergeyBogomolovv/marketplace-core/internal/entities"
	"github.com/SergeyBogomolovv/marketplace-core/internal/events"
	"github.com/SergeyBogomolovv/marketplace-core/pkg/utils"
	"github.com/segmentio/kafka-go"
)

var handleRetry = utils.RetryConfig{
	InitialDelay: 100 * time.Millisecond,
	MaxAttempts:  3,
	Multiplier:   2,
}

type PaymentEventHandler interface {
	HandlePaymentEvent(ctx context.Context, ev events.Event) error
}

type kafkaHandler struct {
	dlq     *kafka.Writer
	reader  *kafka.Reader
	logger  *slog.Logger
	handler PaymentEventHandler
}

func NewKafkaHandler(logger *slog.Logger, cfg config.Kafka, handler PaymentEventHandler) *kafkaHandler {
	return &kafkaHandler{
		logger: logger.With(slog.String("handler", "kafka")),
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers: cfg.Brokers,
			GroupID: cfg.GroupID,
			Topic:   cfg.Topic,
			MaxWait: cfg.ReaderMaxWait,
		}),
		dlq: &kafka.Writer{
			Addr:                   kafka.TCP(cfg.Brokers...),
			Balancer:               &kafka.LeastBytes{},
			BatchTimeout:           cfg.BatchTimeout,
			AllowAutoTopicCreation: true,
		},
		handler: handler,
	}
}

func (h *kafkaHandler) Consume(ctx context.Context) {
	for {
		m, err := h.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
				break
			}
			h.logger.Error("failed to fetch message", slog.Any("error", err))
			continue
		}

		if err := h.Handle(ctx, m); err != nil {
			eventsFailed.Inc()
			h.logger.ErrorContext(ctx, "failed to handle message",
				slog.Any("error", err),
				slog.String("key", string(m.Key)),
				slog.Int64("offset", m.Offset),
			)

			// В библиотеке уже есть retry
			if err := h.WriteToDLQ(ctx, m); err != nil {
				h.logger.Error("failed to write message to DLQ", slog.Any("error", err))
				continue
			}
			eventsDLQ.Inc()
		}

		if err := h.reader.CommitMessages(ctx, m); err != nil {
			commitErrors.Inc()
			h.logger.Error("failed to commit message", slog.Any("error", err))
		}
	}
}

// Handle декодирует конверт и передает события оплаты в сервис заказов.
// Остальные типы событий пропускаются.
func (h *kafkaHandler) Handle(ctx context.Context, m kafka.Message) error {
	eventsInProgress.Inc()
	defer eventsInProgress.Dec()
	start := time.Now()
	defer func() { eventProcessingDuration.Observe(time.Since(start).Seconds()) }()

	ev, err := events.Decode(m.Value)
	if err != nil {
		return fmt.Errorf("failed to decode event: %w", err)
	}

	if ev.Entity() == events.EntityPayment {
		fn := func() error {
			return h.handler.HandlePaymentEvent(ctx, ev)
		}
		// Заказа нет - повтор не поможет, сообщение уходит в DLQ.
		if err := utils.Retry(handleRetry, fn, entities.ErrNotFound); err != nil {
			return err
		}
	}

	eventsConsumed.WithLabelValues(string(ev.Type())).Inc()
	return nil
}

func (h *kafkaHandler) WriteToDLQ(ctx context.Context, m kafka.Message) error {
	m.Topic = fmt.Sprintf("%s-dlq", m.Topic)
	return h.dlq.WriteMessages(ctx, m)
}

func (h *kafkaHandler) Close() error {
	if err := h.reader.Close(); err != nil {
		return err
	}
	return h.dlq.Close()
}
