package kafka

import (
	"context"
	"log/slog"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
	"github.com/twmb/franz-go/pkg/kgo"
)

var _ port.ClientEventsProducer = (*ClientEventsProducer)(nil)

// A ClientEventsProducer publishes [domain.ClientEvent] values to the
// client events topic. Producing is fire-and-forget: broker-side
// failures are logged by the delivery promise, never returned.
type ClientEventsProducer struct {
	cl      ProducerClient
	encoder Encoder
}

func NewClientEventsProducer(
	opts ...ProducerOpt,
) (ClientEventsProducer, error) {
	const op = "NewClientEventsProducer"

	if len(opts) != 2 {
		panic(opErr(ErrTooFewOpts, op)) // develop mistake
	}

	var options producerOpts
	for _, opt := range opts {
		if err := opt(&options); err != nil {
			return ClientEventsProducer{}, opErr(err, op)
		}
	}
	return ClientEventsProducer{options.cl, options.encoder}, nil
}

func (p ClientEventsProducer) Close() {
	const op = "ClientEventsProducer.Close"
	log := slog.With("op", op)
	log.Info("closing producer...")
	p.cl.Close()
	log.Info("producer is closed")
}

func (p ClientEventsProducer) ProduceEvent(
	ctx context.Context, evt domain.ClientEvent,
) error {
	const op = "ClientEventsProducer.ProduceEvent"

	if err := ctx.Err(); err != nil {
		return opErr(err, op)
	}

	r, err := p.createRecord(evt)
	if err != nil {
		return opErr(err, op)
	}

	// delivery must not be tied to the request lifetime
	p.cl.Produce(context.WithoutCancel(ctx), r, func(r *kgo.Record, err error) {
		if err != nil {
			slog.Warn("client event is not delivered",
				"op", op, "err", err)
		}
	})
	return nil
}

func (p ClientEventsProducer) createRecord(
	evt domain.ClientEvent,
) (*kgo.Record, error) {
	const op = "ClientEventsProducer.createRecord"

	s := eventToSchemaV1(evt)
	v, err := p.encoder.Encode(s)
	if err != nil {
		return nil, opErr(err, op)
	}
	return &kgo.Record{Key: []byte(s.Type), Value: v}, nil
}
