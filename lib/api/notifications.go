// Copyright 2026 The Casedesk Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/casedesk/casedesk/lib/schema/support"
)

// ListNotifications returns the authenticated user's notifications,
// newest first, read and unread alike.
func (c *Client) ListNotifications(ctx context.Context) ([]support.Notification, error) {
	var notifications []support.Notification
	if err := c.getJSON(ctx, "/api/notifications", &notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}

// MarkNotificationRead marks one notification as read. The server
// treats marking an already-read notification as success, so callers
// need not track read state before issuing the call.
func (c *Client) MarkNotificationRead(ctx context.Context, id int64) error {
	_, err := c.doRequest(ctx, http.MethodPost, fmt.Sprintf("/api/notifications/%d/read", id), nil)
	return err
}

// MarkAllNotificationsRead marks every notification read in one call.
func (c *Client) MarkAllNotificationsRead(ctx context.Context) error {
	_, err := c.doRequest(ctx, http.MethodPost, "/api/notifications/mark-all-read", nil)
	return err
}
