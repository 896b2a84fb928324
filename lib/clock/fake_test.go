// Copyright 2026 The Casedesk Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import (
	"testing"
	"time"
)

var testEpoch = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func TestFakeNowAdvances(t *testing.T) {
	fake := Fake(testEpoch)
	if !fake.Now().Equal(testEpoch) {
		t.Fatalf("Now() = %v, want %v", fake.Now(), testEpoch)
	}
	fake.Advance(90 * time.Second)
	want := testEpoch.Add(90 * time.Second)
	if !fake.Now().Equal(want) {
		t.Fatalf("Now() after Advance = %v, want %v", fake.Now(), want)
	}
}

func TestFakeAfterFires(t *testing.T) {
	fake := Fake(testEpoch)
	channel := fake.After(30 * time.Second)

	select {
	case <-channel:
		t.Fatal("After fired before Advance")
	default:
	}

	fake.Advance(30 * time.Second)
	select {
	case <-channel:
	default:
		t.Fatal("After did not fire at its deadline")
	}
}

func TestFakeAfterImmediateForNonPositive(t *testing.T) {
	fake := Fake(testEpoch)
	select {
	case <-fake.After(0):
	default:
		t.Fatal("After(0) should receive immediately")
	}
}

func TestFakeAfterFuncRunsInDeadlineOrder(t *testing.T) {
	fake := Fake(testEpoch)
	var order []string
	fake.AfterFunc(20*time.Second, func() { order = append(order, "second") })
	fake.AfterFunc(10*time.Second, func() { order = append(order, "first") })

	fake.Advance(time.Minute)

	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Fatalf("callbacks ran in order %v, want [first second]", order)
	}
}

func TestFakeAfterFuncStop(t *testing.T) {
	fake := Fake(testEpoch)
	fired := false
	timer := fake.AfterFunc(10*time.Second, func() { fired = true })

	if !timer.Stop() {
		t.Fatal("Stop on a pending timer should return true")
	}
	fake.Advance(time.Minute)
	if fired {
		t.Fatal("stopped timer fired anyway")
	}
	if timer.Stop() {
		t.Fatal("second Stop should return false")
	}
}

func TestFakeTickerFiresPerInterval(t *testing.T) {
	fake := Fake(testEpoch)
	ticker := fake.NewTicker(10 * time.Second)
	defer ticker.Stop()

	ticks := 0
	// The channel has capacity 1, so advance one interval at a time
	// and drain between advances.
	for i := 0; i < 3; i++ {
		fake.Advance(10 * time.Second)
		select {
		case <-ticker.C:
			ticks++
		default:
		}
	}
	if ticks != 3 {
		t.Fatalf("got %d ticks over 3 intervals, want 3", ticks)
	}
}

func TestFakeTickerStop(t *testing.T) {
	fake := Fake(testEpoch)
	ticker := fake.NewTicker(5 * time.Second)
	ticker.Stop()
	fake.Advance(time.Minute)

	select {
	case <-ticker.C:
		t.Fatal("stopped ticker delivered a tick")
	default:
	}
}

func TestFakeWaitForTimers(t *testing.T) {
	fake := Fake(testEpoch)
	go fake.After(time.Second)
	fake.WaitForTimers(1)
	if fake.PendingCount() != 1 {
		t.Fatalf("PendingCount = %d, want 1", fake.PendingCount())
	}
}
