// Copyright 2026 The Casedesk Authors
// SPDX-License-Identifier: Apache-2.0

package notify

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/casedesk/casedesk/lib/clock"
	"github.com/casedesk/casedesk/lib/schema/support"
)

// stubAPI is a scriptable API implementation. Each ListNotifications
// call pops the next response; the last response repeats.
type stubAPI struct {
	mu        sync.Mutex
	responses [][]support.Notification
	listErr   error
	listCalls int
	readCalls []int64
	allCalls  int
	allErr    error
}

func (s *stubAPI) ListNotifications(ctx context.Context) ([]support.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listCalls++
	if s.listErr != nil {
		return nil, s.listErr
	}
	if len(s.responses) == 0 {
		return nil, errors.New("stub: no response scripted")
	}
	response := s.responses[0]
	if len(s.responses) > 1 {
		s.responses = s.responses[1:]
	}
	out := make([]support.Notification, len(response))
	copy(out, response)
	return out, nil
}

func (s *stubAPI) MarkNotificationRead(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.readCalls = append(s.readCalls, id)
	return nil
}

func (s *stubAPI) MarkAllNotificationsRead(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.allCalls++
	return s.allErr
}

func (s *stubAPI) counts() (list, all int, reads []int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listCalls, s.allCalls, append([]int64(nil), s.readCalls...)
}

// changeRecorder turns OnChange callbacks into a channel the test can
// wait on.
type changeRecorder struct {
	changes chan struct{}
}

func newChangeRecorder() *changeRecorder {
	return &changeRecorder{changes: make(chan struct{}, 16)}
}

func (r *changeRecorder) onChange() {
	select {
	case r.changes <- struct{}{}:
	default:
	}
}

func (r *changeRecorder) wait(t *testing.T) {
	t.Helper()
	select {
	case <-r.changes:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for a state change")
	}
}

// recordingAlerter captures Alert calls.
type recordingAlerter struct {
	mu    sync.Mutex
	calls [][]support.Notification
}

func (a *recordingAlerter) Alert(fresh []support.Notification) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.calls = append(a.calls, append([]support.Notification(nil), fresh...))
}

func (a *recordingAlerter) callCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.calls)
}

var notifyEpoch = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func TestRefreshOnStartAndOnTick(t *testing.T) {
	api := &stubAPI{responses: [][]support.Notification{
		{{ID: 1, Message: "first", Read: true}},
		{{ID: 2, Message: "second"}, {ID: 1, Message: "first", Read: true}},
	}}
	fake := clock.Fake(notifyEpoch)
	recorder := newChangeRecorder()

	presenter := Start(Config{API: api, Clock: fake, OnChange: recorder.onChange})
	defer presenter.Close()

	recorder.wait(t)
	if unread := presenter.Unread(); unread != 0 {
		t.Fatalf("Unread after first load = %d, want 0", unread)
	}

	fake.WaitForTimers(1)
	fake.Advance(DefaultInterval)
	recorder.wait(t)

	if unread := presenter.Unread(); unread != 1 {
		t.Fatalf("Unread after tick = %d, want 1", unread)
	}
	if list, _, _ := api.counts(); list != 2 {
		t.Errorf("ListNotifications calls = %d, want 2", list)
	}
}

func TestRefreshFailureKeepsPriorState(t *testing.T) {
	api := &stubAPI{responses: [][]support.Notification{
		{{ID: 1, Message: "kept"}},
	}}
	fake := clock.Fake(notifyEpoch)
	recorder := newChangeRecorder()

	presenter := Start(Config{API: api, Clock: fake, OnChange: recorder.onChange})
	defer presenter.Close()
	recorder.wait(t)

	api.mu.Lock()
	api.listErr = errors.New("server down")
	api.mu.Unlock()

	fake.WaitForTimers(1)
	fake.Advance(DefaultInterval)

	// The failed refresh emits no change; give the loop a moment and
	// confirm the state survived.
	deadline := time.Now().Add(5 * time.Second)
	for {
		if list, _, _ := api.counts(); list >= 2 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("timed out waiting for the failed refresh attempt")
		}
		time.Sleep(time.Millisecond)
	}

	notifications := presenter.Notifications()
	if len(notifications) != 1 || notifications[0].Message != "kept" {
		t.Fatalf("state after failed refresh = %+v, want the prior list", notifications)
	}
}

func TestMarkReadIsIdempotent(t *testing.T) {
	api := &stubAPI{responses: [][]support.Notification{
		{{ID: 1, Message: "unread"}, {ID: 2, Message: "read", Read: true}},
	}}
	fake := clock.Fake(notifyEpoch)
	recorder := newChangeRecorder()

	presenter := Start(Config{API: api, Clock: fake, OnChange: recorder.onChange})
	defer presenter.Close()
	recorder.wait(t)

	presenter.MarkRead(context.Background(), 1)
	if unread := presenter.Unread(); unread != 0 {
		t.Fatalf("Unread after MarkRead = %d, want 0", unread)
	}

	// Second mark of the same notification, and a mark of one that
	// was already read: neither reaches the server.
	presenter.MarkRead(context.Background(), 1)
	presenter.MarkRead(context.Background(), 2)

	deadline := time.Now().Add(5 * time.Second)
	for {
		if _, _, reads := api.counts(); len(reads) >= 1 {
			if len(reads) > 1 {
				t.Fatalf("MarkNotificationRead calls = %v, want exactly [1]", reads)
			}
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("timed out waiting for the mark-read call")
		}
		time.Sleep(time.Millisecond)
	}
}

func TestMarkAllRead(t *testing.T) {
	api := &stubAPI{responses: [][]support.Notification{
		{{ID: 1, Message: "a"}, {ID: 2, Message: "b"}},
	}}
	fake := clock.Fake(notifyEpoch)
	recorder := newChangeRecorder()

	presenter := Start(Config{API: api, Clock: fake, OnChange: recorder.onChange})
	defer presenter.Close()
	recorder.wait(t)

	if err := presenter.MarkAllRead(context.Background()); err != nil {
		t.Fatalf("MarkAllRead: %v", err)
	}
	if unread := presenter.Unread(); unread != 0 {
		t.Fatalf("Unread after MarkAllRead = %d, want 0", unread)
	}
}

func TestMarkAllReadFailureLeavesState(t *testing.T) {
	api := &stubAPI{
		responses: [][]support.Notification{{{ID: 1, Message: "a"}}},
		allErr:    errors.New("server down"),
	}
	fake := clock.Fake(notifyEpoch)
	recorder := newChangeRecorder()

	presenter := Start(Config{API: api, Clock: fake, OnChange: recorder.onChange})
	defer presenter.Close()
	recorder.wait(t)

	if err := presenter.MarkAllRead(context.Background()); err == nil {
		t.Fatal("MarkAllRead should surface the server error")
	}
	if unread := presenter.Unread(); unread != 1 {
		t.Fatalf("Unread after failed MarkAllRead = %d, want 1 (state kept)", unread)
	}
}

func TestAlerterFiresOncePerFreshUnread(t *testing.T) {
	api := &stubAPI{responses: [][]support.Notification{
		{{ID: 1, Message: "preexisting"}},
		{{ID: 2, Message: "fresh"}, {ID: 1, Message: "preexisting"}},
		{{ID: 2, Message: "fresh"}, {ID: 1, Message: "preexisting"}},
	}}
	fake := clock.Fake(notifyEpoch)
	recorder := newChangeRecorder()
	alerter := &recordingAlerter{}

	presenter := Start(Config{API: api, Clock: fake, OnChange: recorder.onChange, Alerter: alerter})
	defer presenter.Close()

	// Startup load: unread but preexisting, no alert.
	recorder.wait(t)
	if got := alerter.callCount(); got != 0 {
		t.Fatalf("alerts after startup = %d, want 0", got)
	}

	fake.WaitForTimers(1)
	fake.Advance(DefaultInterval)
	recorder.wait(t)
	if got := alerter.callCount(); got != 1 {
		t.Fatalf("alerts after fresh unread arrived = %d, want 1", got)
	}

	fake.Advance(DefaultInterval)
	recorder.wait(t)
	if got := alerter.callCount(); got != 1 {
		t.Fatalf("alerts after repeat of same unread = %d, want still 1", got)
	}
}

func TestPokeTriggersRefresh(t *testing.T) {
	api := &stubAPI{responses: [][]support.Notification{
		{},
		{{ID: 9, Message: "pushed"}},
	}}
	fake := clock.Fake(notifyEpoch)
	recorder := newChangeRecorder()

	presenter := Start(Config{API: api, Clock: fake, OnChange: recorder.onChange})
	defer presenter.Close()
	recorder.wait(t)

	presenter.Poke()
	recorder.wait(t)

	if unread := presenter.Unread(); unread != 1 {
		t.Fatalf("Unread after poke = %d, want 1", unread)
	}
}

func TestCloseStopsPollingAndMutations(t *testing.T) {
	api := &stubAPI{responses: [][]support.Notification{
		{{ID: 1, Message: "a"}},
	}}
	fake := clock.Fake(notifyEpoch)
	recorder := newChangeRecorder()

	presenter := Start(Config{API: api, Clock: fake, OnChange: recorder.onChange})
	recorder.wait(t)
	fake.WaitForTimers(1)

	presenter.Close()
	presenter.Close()

	listBefore, _, _ := api.counts()
	presenter.Poke()
	fake.Advance(10 * DefaultInterval)
	presenter.MarkRead(context.Background(), 1)

	time.Sleep(50 * time.Millisecond)
	listAfter, _, reads := api.counts()
	if listAfter != listBefore {
		t.Errorf("ListNotifications calls went %d -> %d after Close", listBefore, listAfter)
	}
	if len(reads) != 0 {
		t.Errorf("MarkNotificationRead called after Close: %v", reads)
	}
}
