package messaging

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// HealthStatus represents the health state of a messaging connection.
type HealthStatus struct {
	Connected bool          `json:"connected"`
	Latency   time.Duration `json:"latency_ms"`
	Error     string        `json:"error,omitempty"`
}

// ErrNoResponders is returned by clients when a request finds no subscriber.
var ErrNoResponders = errors.New("no responders available for request")

// CheckClientHealth checks if a Client is healthy by verifying the connection
// and timing a ping request.
func CheckClientHealth(ctx context.Context, client Client) HealthStatus {
	status := HealthStatus{}

	if client == nil {
		status.Error = "client is nil"
		return status
	}

	status.Connected = client.IsConnected()
	if !status.Connected {
		status.Error = "not connected to message broker"
		return status
	}

	start := time.Now()
	_, err := client.Request(ctx, &Message{Subject: "_HEALTH.ping", Data: []byte("ping")}, 2*time.Second)
	status.Latency = time.Since(start)

	// Nobody answers the ping subject; reaching the server is enough.
	if err != nil && !errors.Is(err, ErrNoResponders) {
		status.Error = fmt.Sprintf("health check failed: %v", err)
	}

	return status
}
