// Package events publishes account lifecycle events to NATS JetStream.
package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"

	"github.com/napowa/napowa-server/internal/model"
)

const (
	// StreamName is the JetStream stream that captures every napowa subject.
	StreamName    = "NAPOWA"
	streamSubject = "napowa.>"
)

var _ model.EventPublisher = (*Publisher)(nil)

// Publisher wraps a NATS JetStream connection.
type Publisher struct {
	conn *nats.Conn
	js   nats.JetStreamContext
}

// New connects to url and makes sure the stream exists.
func New(url string, opts ...nats.Option) (*Publisher, error) {
	opts = append([]nats.Option{nats.Name("napowa-server"), nats.MaxReconnects(-1)}, opts...)
	nc, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to nats: %w", err)
	}

	js, err := nc.JetStream()
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("failed to open jetstream: %w", err)
	}

	if err := ensureStream(js); err != nil {
		nc.Close()
		return nil, err
	}

	return &Publisher{conn: nc, js: js}, nil
}

func ensureStream(js nats.JetStreamContext) error {
	_, err := js.StreamInfo(StreamName)
	if err == nil {
		return nil
	}
	if !errors.Is(err, nats.ErrStreamNotFound) {
		return fmt.Errorf("failed to look up stream: %w", err)
	}
	_, err = js.AddStream(&nats.StreamConfig{
		Name:     StreamName,
		Subjects: []string{streamSubject},
		MaxAge:   7 * 24 * time.Hour,
		Storage:  nats.FileStorage,
	})
	if err != nil {
		return fmt.Errorf("failed to create stream: %w", err)
	}
	return nil
}

// Publish encodes payload as JSON and publishes it to subject. Each message
// carries a unique ID so JetStream drops client retries.
func (p *Publisher) Publish(ctx context.Context, subject string, payload any) error {
	if p == nil {
		return errors.New("nil publisher")
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}

	msg := nats.NewMsg(subject)
	msg.Data = data
	msg.Header.Set(nats.MsgIdHdr, uuid.NewString())

	if _, err := p.js.PublishMsg(msg, nats.Context(ctx)); err != nil {
		return fmt.Errorf("failed to publish %s: %w", subject, err)
	}
	return nil
}

// Ping reports whether the connection is up.
func (p *Publisher) Ping(_ context.Context) error {
	if p == nil || !p.conn.IsConnected() {
		return errors.New("nats is not connected")
	}
	return nil
}

// Close drains the connection.
func (p *Publisher) Close() {
	if p == nil {
		return
	}
	if err := p.conn.Drain(); err != nil {
		p.conn.Close()
	}
}
