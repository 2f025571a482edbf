package notification

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Message is a rendered email queued for delivery.
type Message struct {
	To         string
	TemplateID string
	Data       map[string]string
}

// Dispatcher delivers emails in the background. Enqueue never blocks the
// caller: when the queue is full the message is dropped and logged.
// Delivery failures are logged and not surfaced to the enqueuer.
type Dispatcher struct {
	sender    EmailSender
	templates *TemplateEngine
	logger    zerolog.Logger

	queue chan Message
	wg    sync.WaitGroup
	once  sync.Once
}

// NewDispatcher creates a dispatcher with the given queue capacity and
// starts its worker.
func NewDispatcher(sender EmailSender, templates *TemplateEngine, logger zerolog.Logger, capacity int) *Dispatcher {
	if capacity <= 0 {
		capacity = 64
	}
	d := &Dispatcher{
		sender:    sender,
		templates: templates,
		logger:    logger,
		queue:     make(chan Message, capacity),
	}
	d.wg.Add(1)
	go d.run()
	return d
}

// Enqueue queues a message for delivery. It returns immediately.
func (d *Dispatcher) Enqueue(msg Message) {
	select {
	case d.queue <- msg:
	default:
		d.logger.Warn().
			Str("to", msg.To).
			Str("template", msg.TemplateID).
			Msg("notification queue full, message dropped")
	}
}

func (d *Dispatcher) run() {
	defer d.wg.Done()
	for msg := range d.queue {
		subject, body, err := d.templates.Render(msg.TemplateID, msg.Data)
		if err != nil {
			d.logger.Error().Err(err).
				Str("template", msg.TemplateID).
				Msg("notification template render failed")
			continue
		}

		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		err = d.sender.SendEmail(ctx, msg.To, subject, body)
		cancel()
		if err != nil {
			d.logger.Error().Err(err).
				Str("to", msg.To).
				Str("template", msg.TemplateID).
				Msg("notification delivery failed")
			continue
		}

		d.logger.Debug().
			Str("to", msg.To).
			Str("template", msg.TemplateID).
			Msg("notification sent")
	}
}

// Close stops accepting messages and waits for queued deliveries to finish.
func (d *Dispatcher) Close() {
	d.once.Do(func() {
		close(d.queue)
	})
	d.wg.Wait()
}
