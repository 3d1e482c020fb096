package api

import "time"

// Roles recognized by the backend.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Activity lifecycle states.
const (
	ActivityStatusDraft     = "draft"
	ActivityStatusActive    = "active"
	ActivityStatusCompleted = "completed"
	ActivityStatusCancelled = "cancelled"
)

// Registration states.
const (
	RegistrationStatusRegistered = "registered"
	RegistrationStatusCancelled  = "cancelled"
	RegistrationStatusAttended   = "attended"
)

// envelope is the common response wrapper. Every backend response carries a
// success indicator and a human-readable message on failure; anything else
// is treated as a failure.
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// User represents a platform member.
type User struct {
	ID         int       `json:"id"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	FullName   string    `json:"full_name"`
	Role       string    `json:"role"`
	StudentID  string    `json:"student_id,omitempty"`
	Department string    `json:"department,omitempty"`
	Major      string    `json:"major,omitempty"`
	Phone      string    `json:"phone,omitempty"`
	CreatedAt  time.Time `json:"created_at,omitempty"`
}

// Activity is an event members can register for. Copies held by the client
// are read-only and discarded on navigation.
type Activity struct {
	ID                   int       `json:"id"`
	Title                string    `json:"title"`
	Description          string    `json:"description"`
	Location             string    `json:"location"`
	StartTime            time.Time `json:"start_time"`
	EndTime              time.Time `json:"end_time"`
	RegistrationDeadline time.Time `json:"registration_deadline"`
	// MaxParticipants of zero means unlimited capacity.
	MaxParticipants int       `json:"max_participants"`
	RegisteredCount int       `json:"registered_count"`
	ImageURL        string    `json:"image_url,omitempty"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at,omitempty"`
	UpdatedAt       time.Time `json:"updated_at,omitempty"`
}

// IsRegistrationOpen reports whether sign-up is currently possible:
// the activity is active and the deadline has not passed.
func (a Activity) IsRegistrationOpen(now time.Time) bool {
	if a.Status != ActivityStatusActive {
		return false
	}
	if !a.RegistrationDeadline.IsZero() && now.After(a.RegistrationDeadline) {
		return false
	}
	return true
}

// IsFull reports whether the activity has reached its capacity.
func (a Activity) IsFull() bool {
	return a.MaxParticipants > 0 && a.RegisteredCount >= a.MaxParticipants
}

// Registration associates a user with an activity they signed up for.
type Registration struct {
	ID         int       `json:"id"`
	ActivityID int       `json:"activity_id"`
	UserID     int       `json:"user_id"`
	Status     string    `json:"status"`
	Notes      string    `json:"notes,omitempty"`
	CreatedAt  time.Time `json:"created_at,omitempty"`
}

// RegistrationWithActivity pairs a registration with its activity for the
// "my registrations" listing.
type RegistrationWithActivity struct {
	Registration Registration `json:"registration"`
	Activity     Activity     `json:"activity"`
}

// RegistrationState describes the caller's relationship with one activity.
type RegistrationState struct {
	IsRegistered bool          `json:"is_registered"`
	Registration *Registration `json:"registration,omitempty"`
	Activity     Activity      `json:"activity"`
}

// ActivityPage is one page of the activity listing.
type ActivityPage struct {
	Activities []Activity `json:"activities"`
	Total      int        `json:"total"`
	Page       int        `json:"page"`
	Pages      int        `json:"pages"`
}

// ActivityDraft carries the editable fields of an activity for
// create/update calls.
type ActivityDraft struct {
	Title                string    `json:"title"`
	Description          string    `json:"description"`
	Location             string    `json:"location"`
	StartTime            time.Time `json:"start_time"`
	EndTime              time.Time `json:"end_time"`
	RegistrationDeadline time.Time `json:"registration_deadline"`
	MaxParticipants      int       `json:"max_participants"`
	ImageURL             string    `json:"image_url,omitempty"`
	Status               string    `json:"status"`
}

// RegistrationStats summarizes registrations for one activity or user.
type RegistrationStats struct {
	Total  int `json:"total"`
	Active int `json:"active"`
}

// DashboardActivity is an activity with admin-only registration stats.
type DashboardActivity struct {
	Activity
	RegistrationStats RegistrationStats `json:"registration_stats"`
}

// DashboardUser is a user with admin-only registration stats.
type DashboardUser struct {
	User
	RegistrationStats RegistrationStats `json:"registration_stats"`
}

// DashboardStats is the admin dashboard summary.
type DashboardStats struct {
	Users struct {
		Total  int `json:"total"`
		Admins int `json:"admins"`
		Users  int `json:"users"`
	} `json:"users"`
	Activities struct {
		Total     int `json:"total"`
		Active    int `json:"active"`
		Completed int `json:"completed"`
		Cancelled int `json:"cancelled"`
	} `json:"activities"`
	Registrations struct {
		Total     int `json:"total"`
		Active    int `json:"active"`
		Cancelled int `json:"cancelled"`
	} `json:"registrations"`
}

// DashboardSummary bundles the stats with highlighted activities.
type DashboardSummary struct {
	Stats              DashboardStats `json:"stats"`
	RecentActivities   []Activity     `json:"recent_activities"`
	UpcomingActivities []Activity     `json:"upcoming_activities"`
}

// ParticipantExport is a ready-to-save CSV export of an activity's
// participants.
type ParticipantExport struct {
	Activity Activity `json:"activity"`
	Filename string   `json:"filename"`
	CSVData  string   `json:"csv_data"`
}
