package outbox

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrWorkerNotConfigured = errors.New("outbox: worker missing dependencies")

// maxBatchPerTick bounds how many events one tick may relay so a large
// backlog cannot starve shutdown.
const maxBatchPerTick = 32

type Producer interface {
	Publish(ctx context.Context, topic string, key string, payload []byte, headers map[string]string) error
}

// Worker polls the outbox store and relays claimed events to the broker
// as CloudEvents. Calendar and garment events share one worker; the
// topic is derived from the event name's first segment.
type Worker struct {
	Store       *Store
	Producer    Producer
	Logger      *slog.Logger
	Interval    time.Duration
	TopicPrefix string
	Source      string
	ID          string
	Backoff     []time.Duration
}

func (w *Worker) Run(ctx context.Context) error {
	if w.Store == nil || w.Producer == nil {
		return ErrWorkerNotConfigured
	}
	if w.ID == "" {
		w.ID = uuid.NewString()
	}
	interval := w.Interval
	if interval <= 0 {
		interval = 500 * time.Millisecond
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := w.drain(ctx); err != nil {
				return err
			}
		}
	}
}

// drain relays claimed events until the queue is empty or the batch cap
// is hit. Publish failures reschedule the single event and keep draining.
func (w *Worker) drain(ctx context.Context) error {
	for i := 0; i < maxBatchPerTick; i++ {
		doc, err := w.Store.Claim(ctx, w.ID)
		if err != nil {
			return err
		}
		if doc == nil {
			return nil
		}
		if err := w.relay(ctx, doc); err != nil {
			w.logError("outbox relay failed", doc, err)
			if markErr := w.Store.MarkFailed(ctx, doc.ID, w.retryAt(doc.Attempts), err.Error()); markErr != nil {
				return markErr
			}
			continue
		}
		if err := w.Store.MarkSent(ctx, doc.ID); err != nil {
			return err
		}
	}
	return nil
}

func (w *Worker) relay(ctx context.Context, doc *EventDocument) error {
	payload, headers, err := w.envelope(doc)
	if err != nil {
		return err
	}
	return w.Producer.Publish(ctx, w.topicFor(doc.Name), doc.Aggregate, payload, headers)
}

type cloudEvent struct {
	SpecVersion     string          `json:"specversion"`
	ID              string          `json:"id"`
	Type            string          `json:"type"`
	Source          string          `json:"source"`
	Time            time.Time       `json:"time"`
	DataContentType string          `json:"datacontenttype"`
	TraceParent     string          `json:"traceparent,omitempty"`
	Data            json.RawMessage `json:"data"`
}

func (w *Worker) envelope(doc *EventDocument) ([]byte, map[string]string, error) {
	if !json.Valid(doc.Payload) {
		return nil, nil, errors.New("outbox: event payload is not valid JSON")
	}
	source := w.Source
	if source == "" {
		source = "app://rentwear"
	}
	evt := cloudEvent{
		SpecVersion:     "1.0",
		ID:              uuid.NewString(),
		Type:            doc.Name + ".v1",
		Source:          source,
		Time:            doc.OccurredAt,
		DataContentType: "application/json",
		TraceParent:     doc.Headers["traceparent"],
		Data:            doc.Payload,
	}
	payload, err := json.Marshal(evt)
	if err != nil {
		return nil, nil, err
	}
	headers := map[string]string{"content-type": "application/cloudevents+json"}
	for k, v := range doc.Headers {
		headers[k] = v
	}
	return payload, headers, nil
}

// topicFor maps "availability.date_opened" to "availability.events.v1",
// with the optional deployment prefix in front.
func (w *Worker) topicFor(name string) string {
	base, _, _ := strings.Cut(name, ".")
	return w.TopicPrefix + base + ".events.v1"
}

func (w *Worker) retryAt(attempts int) time.Time {
	if len(w.Backoff) == 0 {
		return time.Now().Add(5 * time.Second)
	}
	if attempts >= len(w.Backoff) {
		attempts = len(w.Backoff) - 1
	}
	return time.Now().Add(w.Backoff[attempts])
}

func (w *Worker) logError(msg string, doc *EventDocument, err error) {
	if w.Logger == nil {
		return
	}
	w.Logger.Error(msg, "event", doc.Name, "aggregate", doc.Aggregate, "attempts", doc.Attempts, "error", err)
}
