package nats

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/telhawk-systems/ocsf-mcp/internal/logging"
	"github.com/telhawk-systems/ocsf-mcp/internal/messaging"
	"github.com/telhawk-systems/ocsf-mcp/internal/messaging/nats/natstest"
)

func newTestClient(t *testing.T, url string) *Client {
	t.Helper()
	cfg := DefaultConfig()
	cfg.URL = url
	cfg.Name = t.Name()
	c, err := NewClient(cfg, logging.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestClient_PublishSubscribe(t *testing.T) {
	url := natstest.RunServer(t)
	c := newTestClient(t, url)

	received := make(chan *messaging.Message, 1)
	sub, err := c.Subscribe("ocsf.test.events", func(_ context.Context, msg *messaging.Message) error {
		received <- msg
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "ocsf.test.events", sub.Subject())
	assert.True(t, sub.IsValid())

	err = c.PublishMsg(context.Background(), &messaging.Message{
		Subject:  "ocsf.test.events",
		Data:     []byte(`{"class_uid":3002}`),
		Metadata: map[string]string{messaging.HeaderRequestID: "req-1"},
	})
	require.NoError(t, err)

	select {
	case msg := <-received:
		assert.Equal(t, `{"class_uid":3002}`, string(msg.Data))
		assert.Equal(t, "req-1", msg.Metadata[messaging.HeaderRequestID])
		assert.False(t, msg.Timestamp.IsZero())
	case <-time.After(5 * time.Second):
		t.Fatal("message not delivered")
	}

	require.NoError(t, sub.Unsubscribe())
	assert.False(t, sub.IsValid())
	assert.NoError(t, sub.Unsubscribe(), "second unsubscribe is a no-op")
}

func TestClient_RequestReply(t *testing.T) {
	url := natstest.RunServer(t)
	server := newTestClient(t, url)
	client := newTestClient(t, url)

	_, err := server.QueueSubscribe("ocsf.test.echo", "workers", func(ctx context.Context, msg *messaging.Message) error {
		return messaging.Reply(ctx, server, msg, append([]byte("echo:"), msg.Data...), nil)
	})
	require.NoError(t, err)

	resp, err := client.Request(context.Background(), &messaging.Message{
		Subject: "ocsf.test.echo",
		Data:    []byte("ping"),
	}, 5*time.Second)
	require.NoError(t, err)
	assert.Equal(t, "echo:ping", string(resp.Data))
}

func TestClient_RequestNoResponders(t *testing.T) {
	url := natstest.RunServer(t)
	c := newTestClient(t, url)

	_, err := c.Request(context.Background(), &messaging.Message{Subject: "ocsf.test.nobody"}, 2*time.Second)
	require.Error(t, err)
	assert.True(t, errors.Is(err, messaging.ErrNoResponders), "got %v", err)
}

func TestClient_RequestCancelledContext(t *testing.T) {
	url := natstest.RunServer(t)
	c := newTestClient(t, url)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Request(ctx, &messaging.Message{Subject: "ocsf.test.echo"}, time.Second)
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, c.Publish(ctx, "ocsf.test.echo", nil), context.Canceled)
}

func TestCheckClientHealth(t *testing.T) {
	url := natstest.RunServer(t)
	c := newTestClient(t, url)

	status := messaging.CheckClientHealth(context.Background(), c)
	assert.True(t, status.Connected)
	assert.Empty(t, status.Error)

	require.NoError(t, c.Close())
	status = messaging.CheckClientHealth(context.Background(), c)
	assert.False(t, status.Connected)
	assert.Equal(t, "not connected to message broker", status.Error)
}
