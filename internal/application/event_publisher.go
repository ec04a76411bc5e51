package application

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/KokoroRay/Shopflow-E-commerce-sub000/internal/domain"
	"github.com/KokoroRay/Shopflow-E-commerce-sub000/pkg/helpers"
)

// eventEnvelope is the wire format for domain events on the broker.
type eventEnvelope struct {
	Event      string       `json:"event"`
	OccurredAt time.Time    `json:"occurred_at"`
	Payload    domain.Event `json:"payload"`
}

// EventPublisher drains aggregate event logs onto RabbitMQ after the
// aggregate has been persisted. Delivery is at-least-once; consumers
// are expected to dedupe.
type EventPublisher struct {
	Rabbit *helpers.RabbitPublisher
	Logger *logrus.Logger
}

func NewEventPublisher(rabbit *helpers.RabbitPublisher, logger *logrus.Logger) *EventPublisher {
	return &EventPublisher{Rabbit: rabbit, Logger: logger}
}

// PublishAll drains the log and publishes every event. Broker failures
// are logged, not returned; the state change has already been committed
// and must not be rolled back over a delivery hiccup.
func (p *EventPublisher) PublishAll(ctx context.Context, log *domain.EventLog) {
	if p == nil || log == nil {
		return
	}
	events := log.Drain()
	if p.Rabbit == nil {
		return
	}
	for _, ev := range events {
		env := eventEnvelope{Event: ev.EventName(), OccurredAt: ev.OccurredAt(), Payload: ev}
		if err := p.Rabbit.PublishJSON(ctx, env); err != nil && p.Logger != nil {
			p.Logger.WithError(err).WithField("event", ev.EventName()).Warn("event publish failed")
		}
	}
}
