package api

import (
	"context"
	"fmt"
)

type userListResponse struct {
	envelope
	Users []User `json:"users"`
}

// ListUsers returns all members (admin only).
func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	var resp userListResponse
	if err := c.get(ctx, "/api/auth/users", "user listing", &resp); err != nil {
		return nil, err
	}
	return resp.Users, nil
}

// GetUser fetches a single member by id (admin only).
func (c *Client) GetUser(ctx context.Context, id int) (*User, error) {
	var resp userResponse
	if err := c.get(ctx, fmt.Sprintf("/api/auth/users/%d", id), "user fetch", &resp); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

// UpdateUserRole changes a member's role (admin only).
func (c *Client) UpdateUserRole(ctx context.Context, id int, role string) (*User, error) {
	body := map[string]string{"role": role}

	var resp userResponse
	if err := c.put(ctx, fmt.Sprintf("/api/auth/users/%d/role", id), "role update", body, &resp); err != nil {
		return nil, err
	}
	return &resp.User, nil
}
