// Copyright 2026 The Casedesk Authors
// SPDX-License-Identifier: Apache-2.0

// Package notify maintains the user's notification state: a polled
// local copy of the server's list, read-state mutations, and the
// alert hook for newly arrived unread notifications.
//
// The presenter refreshes on start, every poll interval, and whenever
// Poke is called (the push channel pokes it on case events). A failed
// refresh is logged and the previous state kept — background failures
// never surface in the UI. Mutations the user asked for (MarkAllRead)
// return their error so the UI can toast it.
package notify

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/casedesk/casedesk/lib/clock"
	"github.com/casedesk/casedesk/lib/schema/support"
)

// DefaultInterval is the poll period for the notification list.
const DefaultInterval = 30 * time.Second

// API is the slice of the REST client the presenter needs.
// *api.Client satisfies it.
type API interface {
	ListNotifications(ctx context.Context) ([]support.Notification, error)
	MarkNotificationRead(ctx context.Context, id int64) error
	MarkAllNotificationsRead(ctx context.Context) error
}

// Alerter is called once per refresh that brings previously unseen
// unread notifications. Implementations ring the terminal bell or
// emit a desktop notification; a nil Alerter means silence.
type Alerter interface {
	Alert(fresh []support.Notification)
}

// Config holds configuration for starting a Presenter.
type Config struct {
	// API performs the notification calls. Required.
	API API

	// Clock schedules the poll ticker. If nil, clock.Real().
	Clock clock.Clock

	// Logger is used for structured logging. If nil, slog.Default().
	Logger *slog.Logger

	// Interval is the poll period. If zero, DefaultInterval.
	Interval time.Duration

	// Alerter receives newly arrived unread notifications. Optional.
	Alerter Alerter

	// OnChange is called after the local state changes, outside the
	// presenter's lock. The TUI uses it to schedule a re-render.
	// Optional.
	OnChange func()
}

// Presenter owns the local notification state. Start begins the poll
// loop; Close stops it and makes every in-flight completion a no-op.
// Safe for concurrent use.
type Presenter struct {
	api      API
	clock    clock.Clock
	logger   *slog.Logger
	interval time.Duration
	alerter  Alerter
	onChange func()

	mu            sync.Mutex
	notifications []support.Notification
	seenUnread    map[int64]bool
	closed        bool

	poke      chan struct{}
	cancel    context.CancelFunc
	closeOnce sync.Once
}

// Start creates a Presenter and launches its poll loop. The first
// refresh happens immediately.
func Start(config Config) *Presenter {
	presenterClock := config.Clock
	if presenterClock == nil {
		presenterClock = clock.Real()
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	interval := config.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}

	presenter := &Presenter{
		api:        config.API,
		clock:      presenterClock,
		logger:     logger,
		interval:   interval,
		alerter:    config.Alerter,
		onChange:   config.OnChange,
		seenUnread: make(map[int64]bool),
		poke:       make(chan struct{}, 1),
	}

	ctx, cancel := context.WithCancel(context.Background())
	presenter.cancel = cancel
	go presenter.pollLoop(ctx)

	return presenter
}

// Notifications returns the current list, newest first. The returned
// slice is a copy.
func (p *Presenter) Notifications() []support.Notification {
	p.mu.Lock()
	defer p.mu.Unlock()
	notifications := make([]support.Notification, len(p.notifications))
	copy(notifications, p.notifications)
	return notifications
}

// Unread returns the number of unread notifications.
func (p *Presenter) Unread() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return support.UnreadCount(p.notifications)
}

// Poke asks for a refresh outside the poll schedule. Non-blocking; a
// poke while one is already queued coalesces with it.
func (p *Presenter) Poke() {
	select {
	case p.poke <- struct{}{}:
	default:
	}
}

// MarkRead marks one notification read, locally at once and on the
// server in the background. Marking an already-read notification does
// nothing at all, so the UI can issue it on every selection without
// tracking state. It never blocks: the caller navigates immediately
// while the server call completes on its own.
func (p *Presenter) MarkRead(ctx context.Context, id int64) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	already := true
	for i := range p.notifications {
		if p.notifications[i].ID == id {
			already = p.notifications[i].Read
			p.notifications[i].Read = true
			break
		}
	}
	p.mu.Unlock()

	if already {
		return
	}
	p.notifyChange()

	go func() {
		if err := p.api.MarkNotificationRead(ctx, id); err != nil {
			// The local state stays read. The next refresh
			// reconciles with the server either way.
			p.logger.Warn("marking notification read failed",
				"notification_id", id,
				"error", err,
			)
		}
	}()
}

// MarkAllRead marks every notification read. Unlike MarkRead this is
// an explicit user action, so the error comes back for a toast. Local
// state updates only when the server call succeeds.
func (p *Presenter) MarkAllRead(ctx context.Context) error {
	if err := p.api.MarkAllNotificationsRead(ctx); err != nil {
		return err
	}

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	for i := range p.notifications {
		p.notifications[i].Read = true
	}
	p.mu.Unlock()

	p.notifyChange()
	return nil
}

// Close stops the poll loop. In-flight refreshes finish but their
// results are discarded. Safe to call multiple times.
func (p *Presenter) Close() {
	p.closeOnce.Do(func() {
		p.mu.Lock()
		p.closed = true
		p.mu.Unlock()
		p.cancel()
	})
}

// pollLoop refreshes immediately, then on every tick and poke, until
// the context is cancelled.
func (p *Presenter) pollLoop(ctx context.Context) {
	p.refresh(ctx)

	ticker := p.clock.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.refresh(ctx)
		case <-p.poke:
			p.refresh(ctx)
		}
	}
}

// refresh fetches the list and replaces local state on success. On
// failure the previous state is kept and the error logged.
func (p *Presenter) refresh(ctx context.Context) {
	// A tick can race Close out of the same select; never fetch on
	// behalf of a closed presenter.
	p.mu.Lock()
	closed := p.closed
	p.mu.Unlock()
	if closed || ctx.Err() != nil {
		return
	}

	notifications, err := p.api.ListNotifications(ctx)
	if err != nil {
		if ctx.Err() == nil {
			p.logger.Warn("notification refresh failed", "error", err)
		}
		return
	}

	var fresh []support.Notification
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	for _, notification := range notifications {
		if !notification.Read && !p.seenUnread[notification.ID] {
			p.seenUnread[notification.ID] = true
			fresh = append(fresh, notification)
		}
	}
	firstLoad := p.notifications == nil
	p.notifications = notifications
	p.mu.Unlock()

	// Everything present at startup predates this session; alerting
	// on it would ring the bell on every launch.
	if p.alerter != nil && len(fresh) > 0 && !firstLoad {
		p.alerter.Alert(fresh)
	}
	p.notifyChange()
}

func (p *Presenter) notifyChange() {
	if p.onChange != nil {
		p.onChange()
	}
}
