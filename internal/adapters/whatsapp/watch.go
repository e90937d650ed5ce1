package whatsapp

import (
	"context"
	"time"

	"github.com/bnema/opbots/internal/ports"
)

const DefaultPollInterval = 3 * time.Second

// Watch polls the gateway session until ctx ends and reports connection
// transitions and pairing codes to handle. handle is never called
// concurrently.
func (c *Client) Watch(ctx context.Context, interval time.Duration, handle func(context.Context, ports.ConnectionEvent)) error {
	if interval <= 0 {
		interval = DefaultPollInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	wasConnected := false
	for {
		wasConnected = c.poll(ctx, wasConnected, handle)

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func (c *Client) poll(ctx context.Context, wasConnected bool, handle func(context.Context, ports.ConnectionEvent)) bool {
	status, err := c.Status(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return wasConnected
		}
		c.logger().Warn("gateway session poll failed", "error", err)
		c.connected.Store(false)
		if wasConnected {
			handle(ctx, ports.ConnectionEvent{Kind: ports.EventDisconnected})
		}
		return false
	}

	switch {
	case status.Connected && !wasConnected:
		handle(ctx, ports.ConnectionEvent{Kind: ports.EventConnected})
	case !status.Connected && wasConnected:
		handle(ctx, ports.ConnectionEvent{Kind: ports.EventDisconnected})
	}
	if !status.Connected && status.QR != "" {
		handle(ctx, ports.ConnectionEvent{Kind: ports.EventPairing, Code: status.QR})
	}

	return status.Connected
}
