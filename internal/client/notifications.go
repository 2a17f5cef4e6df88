package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"activity-hub/internal/api"
	"activity-hub/internal/models"
)

func (c *Client) Notifications(ctx context.Context, unreadOnly bool, limit, offset int) (*models.NotificationPage, error) {
	q := url.Values{}
	if unreadOnly {
		q.Set("unreadOnly", "true")
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	if offset > 0 {
		q.Set("offset", strconv.Itoa(offset))
	}
	var page models.NotificationPage
	if err := c.Do(ctx, "GET", withQuery("/notifications", q), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *Client) MarkNotificationRead(ctx context.Context, id int64) error {
	return c.Do(ctx, "PATCH", fmt.Sprintf("/notifications/%d/read", id), struct{}{}, nil)
}

func (c *Client) MarkAllNotificationsRead(ctx context.Context) error {
	return c.Do(ctx, "PATCH", "/notifications/read-all", struct{}{}, nil)
}

// Health calls /health, which lives outside the /api prefix.
func (c *Client) Health(ctx context.Context) (*api.HealthResponse, error) {
	var health api.HealthResponse
	if err := c.do(ctx, "GET", "/health", nil, &health); err != nil {
		return nil, err
	}
	return &health, nil
}

func (c *Client) AdminStats(ctx context.Context) (*models.StoreStats, error) {
	var stats models.StoreStats
	if err := c.Do(ctx, "GET", "/admin/stats", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (c *Client) ResetStore(ctx context.Context) (*models.StoreStats, error) {
	var stats models.StoreStats
	if err := c.Do(ctx, "POST", "/admin/reset", struct{}{}, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
