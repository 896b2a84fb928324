// Copyright 2026 The Casedesk Authors
// SPDX-License-Identifier: Apache-2.0

// Package push maintains the live event stream from a casedesk
// server. A Channel owns one WebSocket connection plus its reconnect
// lifecycle and delivers decoded events on a single channel in
// arrival order. Events are at-most-once: anything broadcast while
// disconnected is gone, which is why consumers refetch on reconnect
// rather than trusting the stream for completeness.
package push

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/casedesk/casedesk/lib/clock"
	"github.com/casedesk/casedesk/lib/schema/support"
)

// Status is the connection state of the push channel. The list view
// renders it as the connectivity indicator.
type Status string

const (
	// StatusConnecting means no connection is established and a
	// dial attempt is in progress or scheduled.
	StatusConnecting Status = "connecting"

	// StatusConnected means events are flowing.
	StatusConnected Status = "connected"

	// StatusDisconnected means the channel was closed and will not
	// reconnect.
	StatusDisconnected Status = "disconnected"
)

// Reconnection backoff parameters. The delay doubles per failed
// attempt and resets after any successful connect.
const (
	initialBackoff = 1 * time.Second
	maxBackoff     = 30 * time.Second
)

// handshakeTimeout bounds the WebSocket dial and upgrade.
const handshakeTimeout = 10 * time.Second

// eventBuffer is the capacity of the delivery channel. It absorbs
// short consumer stalls; a full buffer blocks the reader rather than
// dropping or reordering events.
const eventBuffer = 32

// Config holds configuration for opening a Channel.
type Config struct {
	// URL is the WebSocket endpoint (see api.Client.WebSocketURL).
	URL string

	// Token is the bearer credential sent on the upgrade request.
	// Required: the channel never connects without a session.
	Token string

	// Clock schedules reconnection backoff. If nil, clock.Real().
	Clock clock.Clock

	// Logger is used for structured logging. If nil, slog.Default().
	Logger *slog.Logger

	// Dialer overrides the WebSocket dialer, for tests. If nil, a
	// dialer with handshakeTimeout is used.
	Dialer *websocket.Dialer
}

// Channel is a live event subscription. Open starts the background
// connection goroutine; Close stops it. Safe for concurrent use.
type Channel struct {
	url    string
	token  string
	clock  clock.Clock
	logger *slog.Logger
	dialer *websocket.Dialer

	events chan support.LiveEvent

	mu     sync.Mutex
	status Status

	cancel    context.CancelFunc
	closeOnce sync.Once
}

// Open starts the connection lifecycle and returns immediately. The
// first dial happens in the background; watch Status for progress.
func Open(config Config) (*Channel, error) {
	if config.URL == "" {
		return nil, fmt.Errorf("push: URL is required")
	}
	if config.Token == "" {
		return nil, fmt.Errorf("push: no session token, not connecting")
	}

	channelClock := config.Clock
	if channelClock == nil {
		channelClock = clock.Real()
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	dialer := config.Dialer
	if dialer == nil {
		dialer = &websocket.Dialer{HandshakeTimeout: handshakeTimeout}
	}

	channel := &Channel{
		url:    config.URL,
		token:  config.Token,
		clock:  channelClock,
		logger: logger,
		dialer: dialer,
		events: make(chan support.LiveEvent, eventBuffer),
		status: StatusConnecting,
	}

	ctx, cancel := context.WithCancel(context.Background())
	channel.cancel = cancel
	go channel.streamLoop(ctx)

	return channel, nil
}

// Events returns the delivery channel. Events arrive in the order the
// server sent them. The channel is closed when the stream loop exits
// after Close.
func (c *Channel) Events() <-chan support.LiveEvent {
	return c.events
}

// Status returns the current connection state.
func (c *Channel) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

func (c *Channel) setStatus(status Status) {
	c.mu.Lock()
	c.status = status
	c.mu.Unlock()
}

// Close stops the connection lifecycle immediately: no further dials,
// no further deliveries. Safe to call multiple times.
func (c *Channel) Close() {
	c.closeOnce.Do(c.cancel)
}

// streamLoop manages the connection lifecycle with capped exponential
// backoff. Runs in a background goroutine until the context is
// cancelled.
func (c *Channel) streamLoop(ctx context.Context) {
	defer close(c.events)
	defer c.setStatus(StatusDisconnected)

	backoff := initialBackoff
	for {
		c.setStatus(StatusConnecting)
		connected, err := c.runStream(ctx)
		if ctx.Err() != nil {
			return
		}
		if connected {
			// The last connect succeeded, so the next failure
			// starts the backoff ladder from the bottom.
			backoff = initialBackoff
		}
		c.logger.Warn("push channel disconnected",
			"url", c.url,
			"error", err,
			"backoff", backoff,
		)

		select {
		case <-ctx.Done():
			return
		case <-c.clock.After(backoff):
		}
		backoff = min(backoff*2, maxBackoff)
	}
}

// runStream establishes a single connection and processes messages
// until it ends. The bool reports whether the dial succeeded, so the
// caller can reset backoff.
func (c *Channel) runStream(ctx context.Context) (bool, error) {
	header := http.Header{}
	header.Set("Authorization", "Bearer "+c.token)

	conn, response, err := c.dialer.DialContext(ctx, c.url, header)
	if err != nil {
		if response != nil {
			return false, fmt.Errorf("dialing %s: %w (status %d)", c.url, err, response.StatusCode)
		}
		return false, fmt.Errorf("dialing %s: %w", c.url, err)
	}
	defer conn.Close()

	// Close the connection when the context is cancelled. This
	// unblocks the blocking ReadMessage below. The done channel ends
	// the watchdog with its connection so reconnects don't stack one
	// goroutine per attempt.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	c.setStatus(StatusConnected)
	c.logger.Info("push channel connected", "url", c.url)

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return true, fmt.Errorf("reading message: %w", err)
		}

		event, err := support.DecodeLiveEvent(data)
		if err != nil {
			// Unknown event types are expected across version skew;
			// malformed payloads are not, but neither is worth
			// killing a healthy stream over.
			if errors.Is(err, support.ErrUnknownEvent) {
				c.logger.Debug("dropping unknown push event", "error", err)
			} else {
				c.logger.Warn("dropping malformed push event", "error", err)
			}
			continue
		}

		select {
		case c.events <- event:
		case <-ctx.Done():
			return true, ctx.Err()
		}
	}
}
