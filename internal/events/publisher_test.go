package events

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPublisher_NilSafe(t *testing.T) {
	var p *Publisher

	assert.Error(t, p.Publish(context.Background(), "napowa.users.registered", map[string]string{}))
	assert.Error(t, p.Ping(context.Background()))
	assert.NotPanics(t, p.Close)
}

func TestNew_Unreachable(t *testing.T) {
	_, err := New("nats://127.0.0.1:1")
	assert.ErrorContains(t, err, "failed to connect to nats")
}
