package service

import (
	"context"
	"log/slog"

	"github.com/SergeyBogomolovv/marketplace-core/internal/events"
)

type Publisher interface {
	Publish(ctx context.Context, ev events.Event) error
}

type Archiver interface {
	Archive(ctx context.Context, ev events.Event) error
}

// Emitter отправляет события после коммита. Ошибки шины и архива
// только логируются: состояние уже зафиксировано и не откатывается.
type Emitter struct {
	logger    *slog.Logger
	publisher Publisher
	archiver  Archiver
}

// NewEmitter. archiver может быть nil, если архив выключен.
func NewEmitter(logger *slog.Logger, publisher Publisher, archiver Archiver) *Emitter {
	return &Emitter{
		logger:    logger.With(slog.String("component", "emitter")),
		publisher: publisher,
		archiver:  archiver,
	}
}

func (e *Emitter) Emit(ctx context.Context, evs ...events.Event) {
	ctx = context.WithoutCancel(ctx)

	for _, ev := range evs {
		if ev == nil {
			continue
		}

		if err := e.publisher.Publish(ctx, ev); err != nil {
			sideChannelFailures.WithLabelValues("publish").Inc()
			e.logger.ErrorContext(ctx, "failed to publish event",
				slog.String("type", string(ev.Type())),
				slog.String("entity_id", ev.EntityID()),
				slog.Any("error", err),
			)
		} else {
			eventsEmitted.WithLabelValues(string(ev.Type())).Inc()
		}

		if e.archiver == nil {
			continue
		}
		if err := e.archiver.Archive(ctx, ev); err != nil {
			sideChannelFailures.WithLabelValues("archive").Inc()
			e.logger.WarnContext(ctx, "failed to archive event",
				slog.String("type", string(ev.Type())),
				slog.String("entity_id", ev.EntityID()),
				slog.Any("error", err),
			)
		}
	}
}
