package api

import (
	"context"
	"fmt"
	"net/url"
)

// ActivityListOptions filters the activity listing.
type ActivityListOptions struct {
	// Status filters by lifecycle state; empty or "all" returns everything.
	Status string
	// Page is 1-based; zero means the backend default.
	Page    int
	PerPage int
}

type activityListResponse struct {
	envelope
	Activities []Activity `json:"activities"`
	Total      int        `json:"total"`
	Page       int        `json:"page"`
	Pages      int        `json:"pages"`
}

type activityResponse struct {
	envelope
	Activity Activity `json:"activity"`
}

// ListActivities fetches one page of activities.
func (c *Client) ListActivities(ctx context.Context, opts ActivityListOptions) (*ActivityPage, error) {
	q := url.Values{}
	if opts.Status == "" {
		opts.Status = "all"
	}
	q.Set("status", opts.Status)
	if opts.Page > 0 {
		q.Set("page", fmt.Sprintf("%d", opts.Page))
	}
	if opts.PerPage > 0 {
		q.Set("per_page", fmt.Sprintf("%d", opts.PerPage))
	}

	var resp activityListResponse
	if err := c.get(ctx, "/api/activities/?"+q.Encode(), "activity listing", &resp); err != nil {
		return nil, err
	}

	return &ActivityPage{
		Activities: resp.Activities,
		Total:      resp.Total,
		Page:       resp.Page,
		Pages:      resp.Pages,
	}, nil
}

// GetActivity fetches a single activity by id.
func (c *Client) GetActivity(ctx context.Context, id int) (*Activity, error) {
	var resp activityResponse
	if err := c.get(ctx, fmt.Sprintf("/api/activities/%d", id), "activity fetch", &resp); err != nil {
		return nil, err
	}
	return &resp.Activity, nil
}

// CreateActivity creates a new activity (admin only).
func (c *Client) CreateActivity(ctx context.Context, draft ActivityDraft) (*Activity, error) {
	var resp activityResponse
	if err := c.post(ctx, "/api/activities/", "activity creation", draft, &resp); err != nil {
		return nil, err
	}
	return &resp.Activity, nil
}

// UpdateActivity updates an existing activity (admin only).
func (c *Client) UpdateActivity(ctx context.Context, id int, draft ActivityDraft) (*Activity, error) {
	var resp activityResponse
	if err := c.put(ctx, fmt.Sprintf("/api/activities/%d", id), "activity update", draft, &resp); err != nil {
		return nil, err
	}
	return &resp.Activity, nil
}

// DeleteActivity removes an activity (admin only).
func (c *Client) DeleteActivity(ctx context.Context, id int) error {
	return c.del(ctx, fmt.Sprintf("/api/activities/%d", id), "activity deletion")
}
