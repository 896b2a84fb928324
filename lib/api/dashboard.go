// Copyright 2026 The Casedesk Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"

	"github.com/casedesk/casedesk/lib/schema/support"
)

// DashboardStats returns the aggregate case counts for the dashboard.
func (c *Client) DashboardStats(ctx context.Context) (*support.DashboardStats, error) {
	var stats support.DashboardStats
	if err := c.getJSON(ctx, "/api/dashboard/stats", &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// DashboardCharts returns the per-day opened/completed history, oldest
// day first.
func (c *Client) DashboardCharts(ctx context.Context) ([]support.ChartPoint, error) {
	var points []support.ChartPoint
	if err := c.getJSON(ctx, "/api/dashboard/charts", &points); err != nil {
		return nil, err
	}
	return points, nil
}
