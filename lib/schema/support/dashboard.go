// Copyright 2026 The Casedesk Authors
// SPDX-License-Identifier: Apache-2.0

package support

// DashboardStats is the aggregate snapshot returned by the dashboard
// stats endpoint. All counts are computed server-side over the cases
// visible to the requesting user.
type DashboardStats struct {
	// Total is the number of cases.
	Total int `json:"total"`

	// Completed is the number of cases with status "done".
	Completed int `json:"completed"`

	// Pending is the number of cases with status "pending" or
	// "in_progress".
	Pending int `json:"pending"`

	// WaitingOnClient is the number of cases with status
	// "waiting_on_client".
	WaitingOnClient int `json:"waiting_on_client"`

	// CompletionPercent is Completed/Total as a percentage, zero
	// when there are no cases.
	CompletionPercent float64 `json:"completion_percent"`

	// ByInsurer breaks the total down per insurer, ordered by count
	// descending.
	ByInsurer []InsurerCount `json:"by_insurer,omitempty"`
}

// InsurerCount is one row of the per-insurer breakdown.
type InsurerCount struct {
	Insurer string `json:"insurer"`
	Count   int    `json:"count"`
}

// ChartPoint is one day of the completed-versus-pending history
// returned by the dashboard charts endpoint.
type ChartPoint struct {
	// Date is the day in "2006-01-02" form.
	Date string `json:"date"`

	// Completed is the number of cases closed on that day.
	Completed int `json:"completed"`

	// Opened is the number of cases opened on that day.
	Opened int `json:"opened"`
}
