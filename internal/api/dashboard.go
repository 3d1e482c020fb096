package api

import (
	"context"
	"fmt"
	"net/url"
)

type dashboardStatsResponse struct {
	envelope
	Stats              DashboardStats `json:"stats"`
	RecentActivities   []Activity     `json:"recent_activities"`
	UpcomingActivities []Activity     `json:"upcoming_activities"`
}

type dashboardActivitiesResponse struct {
	envelope
	Activities []DashboardActivity `json:"activities"`
}

type dashboardUsersResponse struct {
	envelope
	Users []DashboardUser `json:"users"`
}

type participantExportResponse struct {
	envelope
	Activity Activity `json:"activity"`
	Filename string   `json:"filename"`
	CSVData  string   `json:"csv_data"`
}

type updateStatusRequest struct {
	Registrations []int  `json:"registrations"`
	Status        string `json:"status"`
}

type updateStatusResponse struct {
	envelope
	UpdatedCount int `json:"updated_count"`
}

// DashboardSummary fetches the admin dashboard statistics.
func (c *Client) DashboardSummary(ctx context.Context) (*DashboardSummary, error) {
	var resp dashboardStatsResponse
	if err := c.get(ctx, "/api/dashboard/stats", "dashboard stats", &resp); err != nil {
		return nil, err
	}
	return &DashboardSummary{
		Stats:              resp.Stats,
		RecentActivities:   resp.RecentActivities,
		UpcomingActivities: resp.UpcomingActivities,
	}, nil
}

// DashboardActivities lists activities with registration stats (admin only).
func (c *Client) DashboardActivities(ctx context.Context, status string) ([]DashboardActivity, error) {
	if status == "" {
		status = "all"
	}
	q := url.Values{}
	q.Set("status", status)

	var resp dashboardActivitiesResponse
	if err := c.get(ctx, "/api/dashboard/activities?"+q.Encode(), "dashboard activities", &resp); err != nil {
		return nil, err
	}
	return resp.Activities, nil
}

// DashboardUsers lists members with registration stats (admin only).
func (c *Client) DashboardUsers(ctx context.Context, role string) ([]DashboardUser, error) {
	if role == "" {
		role = "all"
	}
	q := url.Values{}
	q.Set("role", role)

	var resp dashboardUsersResponse
	if err := c.get(ctx, "/api/dashboard/users?"+q.Encode(), "dashboard users", &resp); err != nil {
		return nil, err
	}
	return resp.Users, nil
}

// ExportParticipants fetches a CSV export of an activity's participants
// (admin only).
func (c *Client) ExportParticipants(ctx context.Context, activityID int) (*ParticipantExport, error) {
	var resp participantExportResponse
	path := fmt.Sprintf("/api/dashboard/export/participants/%d", activityID)
	if err := c.get(ctx, path, "participant export", &resp); err != nil {
		return nil, err
	}
	return &ParticipantExport{
		Activity: resp.Activity,
		Filename: resp.Filename,
		CSVData:  resp.CSVData,
	}, nil
}

// UpdateRegistrationStatuses batch-updates registration states (admin only).
// It returns the number of registrations actually updated.
func (c *Client) UpdateRegistrationStatuses(ctx context.Context, ids []int, status string) (int, error) {
	body := updateStatusRequest{Registrations: ids, Status: status}

	var resp updateStatusResponse
	if err := c.post(ctx, "/api/dashboard/registrations/update-status", "registration status update", body, &resp); err != nil {
		return 0, err
	}
	return resp.UpdatedCount, nil
}
