// Package nats provides the broker connection helper.
package nats

import (
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
)

// NewClient connects to the broker with a bounded dial timeout. Reconnects
// are unlimited; the subscriber keeps serving once the broker returns.
func NewClient(url, name string, timeout time.Duration) (*nats.Conn, error) {
	nc, err := nats.Connect(url,
		nats.Name(name),
		nats.Timeout(timeout),
		nats.MaxReconnects(-1),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	return nc, nil
}
