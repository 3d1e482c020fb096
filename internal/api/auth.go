package api

import "context"

// LoginRequest carries credentials for the login endpoint.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResult is the outcome of a successful login.
type LoginResult struct {
	User  User
	Token string
}

type loginResponse struct {
	envelope
	User  User   `json:"user"`
	Token string `json:"token"`
}

type userResponse struct {
	envelope
	User User `json:"user"`
}

// RegisterRequest carries the sign-up form fields.
type RegisterRequest struct {
	Username   string `json:"username"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	FullName   string `json:"full_name"`
	StudentID  string `json:"student_id,omitempty"`
	Department string `json:"department,omitempty"`
	Major      string `json:"major,omitempty"`
	Phone      string `json:"phone,omitempty"`
}

// ProfileUpdate carries the fields a member may change about themselves.
type ProfileUpdate struct {
	FullName   string `json:"full_name,omitempty"`
	Phone      string `json:"phone,omitempty"`
	Department string `json:"department,omitempty"`
	Major      string `json:"major,omitempty"`
	Password   string `json:"password,omitempty"`
}

// Login authenticates with the backend. On success the returned token (when
// the backend issues one) is attached to all future requests.
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	var resp loginResponse
	if err := c.post(ctx, "/api/auth/login", "login", LoginRequest{Username: username, Password: password}, &resp); err != nil {
		return nil, err
	}

	if resp.Token != "" {
		c.SetToken(resp.Token)
	}

	return &LoginResult{User: resp.User, Token: resp.Token}, nil
}

// Logout invalidates the server-side session. Callers clear local state
// regardless of the outcome.
func (c *Client) Logout(ctx context.Context) error {
	return c.post(ctx, "/api/auth/logout", "logout", nil, nil)
}

// Register creates a new member account.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	var resp userResponse
	if err := c.post(ctx, "/api/auth/register", "registration", req, &resp); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

// Profile fetches the identity behind the current credentials.
func (c *Client) Profile(ctx context.Context) (*User, error) {
	var resp userResponse
	if err := c.get(ctx, "/api/auth/profile", "profile fetch", &resp); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

// UpdateProfile changes the caller's own profile fields.
func (c *Client) UpdateProfile(ctx context.Context, update ProfileUpdate) (*User, error) {
	var resp userResponse
	if err := c.put(ctx, "/api/auth/profile", "profile update", update, &resp); err != nil {
		return nil, err
	}
	return &resp.User, nil
}
