// Copyright 2026 The Casedesk Authors
// SPDX-License-Identifier: Apache-2.0

package caseindex

import (
	"time"
)

// DefaultMarkerTTL is how long a freshly arrived case keeps its NEW
// badge.
const DefaultMarkerTTL = 30 * time.Second

// MarkerSet tracks which cases carry a NEW badge and when each badge
// expires. The set holds absolute deadlines, not timers: the owner
// schedules one sweep on its clock and calls Sweep when it fires.
// Marking an already-marked case restarts its window.
type MarkerSet struct {
	ttl    time.Duration
	expiry map[int64]time.Time
}

// NewMarkerSet returns an empty set whose badges last ttl.
func NewMarkerSet(ttl time.Duration) *MarkerSet {
	return &MarkerSet{
		ttl:    ttl,
		expiry: make(map[int64]time.Time),
	}
}

// Mark badges the case as of now.
func (set *MarkerSet) Mark(id int64, now time.Time) {
	set.expiry[id] = now.Add(set.ttl)
}

// IsNew reports whether the case's badge is still live at now.
// Expired entries not yet swept answer false, so display never
// depends on sweep timing.
func (set *MarkerSet) IsNew(id int64, now time.Time) bool {
	deadline, exists := set.expiry[id]
	return exists && now.Before(deadline)
}

// Sweep removes every badge expired at now and returns the IDs that
// were removed. An empty return means no re-render is needed.
func (set *MarkerSet) Sweep(now time.Time) []int64 {
	var removed []int64
	for id, deadline := range set.expiry {
		if !now.Before(deadline) {
			delete(set.expiry, id)
			removed = append(removed, id)
		}
	}
	return removed
}

// NextExpiry returns the soonest badge deadline, for scheduling the
// next sweep. The bool is false when no badges are live.
func (set *MarkerSet) NextExpiry() (time.Time, bool) {
	var soonest time.Time
	found := false
	for _, deadline := range set.expiry {
		if !found || deadline.Before(soonest) {
			soonest = deadline
			found = true
		}
	}
	return soonest, found
}

// Len returns the number of live badges, counting expired entries not
// yet swept.
func (set *MarkerSet) Len() int {
	return len(set.expiry)
}
