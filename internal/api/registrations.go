package api

import (
	"context"
	"fmt"
	"net/url"
)

type registrationResponse struct {
	envelope
	Registration Registration `json:"registration"`
}

type myRegistrationsResponse struct {
	envelope
	Registrations []RegistrationWithActivity `json:"registrations"`
}

type registrationStateResponse struct {
	envelope
	IsRegistered bool          `json:"is_registered"`
	Registration *Registration `json:"registration"`
	Activity     Activity      `json:"activity"`
}

// SignUp registers the caller for an activity.
func (c *Client) SignUp(ctx context.Context, activityID int, notes string) (*Registration, error) {
	body := map[string]string{}
	if notes != "" {
		body["notes"] = notes
	}

	var resp registrationResponse
	path := fmt.Sprintf("/api/registrations/activities/%d/register", activityID)
	if err := c.post(ctx, path, "sign-up", body, &resp); err != nil {
		return nil, err
	}
	return &resp.Registration, nil
}

// CancelRegistration withdraws the caller's registration for an activity.
func (c *Client) CancelRegistration(ctx context.Context, activityID int) error {
	path := fmt.Sprintf("/api/registrations/activities/%d/cancel", activityID)
	return c.post(ctx, path, "cancellation", nil, nil)
}

// MyRegistrations lists the caller's registrations with activity context.
// Status filters by registration state; empty or "all" returns everything.
func (c *Client) MyRegistrations(ctx context.Context, status string) ([]RegistrationWithActivity, error) {
	if status == "" {
		status = "all"
	}
	q := url.Values{}
	q.Set("status", status)

	var resp myRegistrationsResponse
	if err := c.get(ctx, "/api/registrations/my-registrations?"+q.Encode(), "registration listing", &resp); err != nil {
		return nil, err
	}
	return resp.Registrations, nil
}

// RegistrationStatus reports the caller's relationship with one activity.
func (c *Client) RegistrationStatus(ctx context.Context, activityID int) (*RegistrationState, error) {
	var resp registrationStateResponse
	path := fmt.Sprintf("/api/registrations/activities/%d/registration-status", activityID)
	if err := c.get(ctx, path, "registration status", &resp); err != nil {
		return nil, err
	}
	return &RegistrationState{
		IsRegistered: resp.IsRegistered,
		Registration: resp.Registration,
		Activity:     resp.Activity,
	}, nil
}
