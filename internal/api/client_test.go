package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/Stuart-0728/cqnu/internal/errors"
)

func newTestClient(handler http.Handler) (*Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	client := NewClient(srv.URL, 5*time.Second)
	return client, srv
}

func TestLoginSuccessSetsToken(t *testing.T) {
	var gotBody LoginRequest
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/auth/login", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))

		decodeJSON(t, r, &gotBody)
		writeJSON(w, http.StatusOK, `{"success":true,"user":{"id":1,"username":"alice","role":"user"},"token":"tok-123"}`)
	}))
	defer srv.Close()

	result, err := client.Login(context.Background(), "alice", "correct")
	require.NoError(t, err)

	assert.Equal(t, "alice", gotBody.Username)
	assert.Equal(t, "correct", gotBody.Password)
	assert.Equal(t, "alice", result.User.Username)
	assert.Equal(t, RoleUser, result.User.Role)
	assert.Equal(t, "tok-123", result.Token)
	assert.Equal(t, "tok-123", client.Token, "token should attach to future requests")
}

func TestLoginFailureCarriesBackendMessage(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, `{"success":false,"message":"invalid username or password"}`)
	}))
	defer srv.Close()

	_, err := client.Login(context.Background(), "alice", "wrong")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid username or password")
	assert.Empty(t, client.Token)
}

func TestBearerTokenAttached(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		writeJSON(w, http.StatusOK, `{"success":true,"user":{"id":1,"username":"alice","role":"admin"}}`)
	}))
	defer srv.Close()

	client.SetToken("tok-123")
	user, err := client.Profile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, user.Role)
}

func TestProfileUnauthorized(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, `{"success":false,"message":"please log in"}`)
	}))
	defer srv.Close()

	_, err := client.Profile(context.Background())
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrCodeAuthSessionExpired, appErr.Code)
}

func TestListActivitiesQuery(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/activities/", r.URL.Path)
		assert.Equal(t, "active", r.URL.Query().Get("status"))
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "10", r.URL.Query().Get("per_page"))
		writeJSON(w, http.StatusOK, `{"success":true,"activities":[{"id":7,"title":"Hiking","status":"active"}],"total":11,"page":2,"pages":2}`)
	}))
	defer srv.Close()

	page, err := client.ListActivities(context.Background(), ActivityListOptions{Status: "active", Page: 2, PerPage: 10})
	require.NoError(t, err)

	require.Len(t, page.Activities, 1)
	assert.Equal(t, "Hiking", page.Activities[0].Title)
	assert.Equal(t, 11, page.Total)
	assert.Equal(t, 2, page.Pages)
}

func TestListActivitiesDefaultsToAll(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "all", r.URL.Query().Get("status"))
		writeJSON(w, http.StatusOK, `{"success":true,"activities":[],"total":0,"page":1,"pages":0}`)
	}))
	defer srv.Close()

	_, err := client.ListActivities(context.Background(), ActivityListOptions{})
	require.NoError(t, err)
}

func TestGetActivityNotFound(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, `{"success":false,"message":"activity not found"}`)
	}))
	defer srv.Close()

	_, err := client.GetActivity(context.Background(), 999)
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrCodeAPINotFound, appErr.Code)
}

func TestSignUpSendsNotes(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/registrations/activities/7/register", r.URL.Path)
		var body map[string]string
		decodeJSON(t, r, &body)
		assert.Equal(t, "vegetarian", body["notes"])
		writeJSON(w, http.StatusCreated, `{"success":true,"registration":{"id":3,"activity_id":7,"user_id":1,"status":"registered"}}`)
	}))
	defer srv.Close()

	reg, err := client.SignUp(context.Background(), 7, "vegetarian")
	require.NoError(t, err)
	assert.Equal(t, 7, reg.ActivityID)
	assert.Equal(t, RegistrationStatusRegistered, reg.Status)
}

func TestSuccessFalseOnOKStatusIsFailure(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// The original backend returns 200 with success=false on some errors.
		writeJSON(w, http.StatusOK, `{"success":false,"activities":[],"message":"service unavailable, try later"}`)
	}))
	defer srv.Close()

	_, err := client.ListActivities(context.Background(), ActivityListOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "service unavailable")
}

func TestMalformedResponseIsFailure(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `<html>not json</html>`)
	}))
	defer srv.Close()

	_, err := client.Profile(context.Background())
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrCodeAPIBadResponse, appErr.Code)
}

func TestNetworkFailure(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", 500*time.Millisecond)

	_, err := client.Profile(context.Background())
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrCodeNetUnavailable, appErr.Code)
}

func TestRejectedWithoutMessageUsesActionFallback(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, `{"success":false}`)
	}))
	defer srv.Close()

	_, err := client.SignUp(context.Background(), 7, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sign-up failed")
}

func TestUpdateUserRole(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/auth/users/4/role", r.URL.Path)
		var body map[string]string
		decodeJSON(t, r, &body)
		assert.Equal(t, "admin", body["role"])
		writeJSON(w, http.StatusOK, `{"success":true,"user":{"id":4,"username":"bob","role":"admin"}}`)
	}))
	defer srv.Close()

	user, err := client.UpdateUserRole(context.Background(), 4, RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, user.Role)
}

func TestDashboardSummary(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/dashboard/stats", r.URL.Path)
		writeJSON(w, http.StatusOK, `{
			"success": true,
			"stats": {
				"users": {"total": 12, "admins": 2, "users": 10},
				"activities": {"total": 5, "active": 3, "completed": 1, "cancelled": 1},
				"registrations": {"total": 40, "active": 35, "cancelled": 5}
			},
			"recent_activities": [{"id":1,"title":"Orientation"}],
			"upcoming_activities": []
		}`)
	}))
	defer srv.Close()

	summary, err := client.DashboardSummary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 12, summary.Stats.Users.Total)
	assert.Equal(t, 3, summary.Stats.Activities.Active)
	require.Len(t, summary.RecentActivities, 1)
	assert.Empty(t, summary.UpcomingActivities)
}

func TestUpdateRegistrationStatuses(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body updateStatusRequest
		decodeJSON(t, r, &body)
		assert.Equal(t, []int{1, 2, 3}, body.Registrations)
		assert.Equal(t, RegistrationStatusAttended, body.Status)
		writeJSON(w, http.StatusOK, `{"success":true,"updated_count":3}`)
	}))
	defer srv.Close()

	count, err := client.UpdateRegistrationStatuses(context.Background(), []int{1, 2, 3}, RegistrationStatusAttended)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestExportParticipants(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/dashboard/export/participants/7", r.URL.Path)
		writeJSON(w, http.StatusOK, `{"success":true,"activity":{"id":7,"title":"Hiking"},"filename":"participants_7.csv","csv_data":"id,name\n1,alice\n"}`)
	}))
	defer srv.Close()

	export, err := client.ExportParticipants(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "participants_7.csv", export.Filename)
	assert.Contains(t, export.CSVData, "alice")
}

func TestRegistrationStatus(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/registrations/activities/7/registration-status", r.URL.Path)
		writeJSON(w, http.StatusOK, `{"success":true,"is_registered":true,"registration":{"id":3,"activity_id":7,"status":"registered"},"activity":{"id":7,"title":"Hiking","status":"active"}}`)
	}))
	defer srv.Close()

	state, err := client.RegistrationStatus(context.Background(), 7)
	require.NoError(t, err)
	assert.True(t, state.IsRegistered)
	require.NotNil(t, state.Registration)
	assert.Equal(t, "Hiking", state.Activity.Title)
}

func TestListUsers(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/auth/users", r.URL.Path)
		writeJSON(w, http.StatusOK, `{"success":true,"users":[{"id":1,"username":"alice","role":"admin"},{"id":2,"username":"bob","role":"user"}]}`)
	}))
	defer srv.Close()

	users, err := client.ListUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "alice", users[0].Username)
	assert.Equal(t, RoleAdmin, users[0].Role)
}

func TestGetUserForbiddenForNonAdmin(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusForbidden, `{"success":false,"message":"admin privileges required"}`)
	}))
	defer srv.Close()

	_, err := client.GetUser(context.Background(), 2)
	require.Error(t, err)
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrCodeAuthAdminRequired, appErr.Code)
}

func TestUpdateProfileSendsOnlySetFields(t *testing.T) {
	var raw map[string]interface{}
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/auth/profile", r.URL.Path)
		decodeJSON(t, r, &raw)
		writeJSON(w, http.StatusOK, `{"success":true,"user":{"id":1,"username":"alice","phone":"13800000000"}}`)
	}))
	defer srv.Close()

	user, err := client.UpdateProfile(context.Background(), ProfileUpdate{Phone: "13800000000"})
	require.NoError(t, err)
	assert.Equal(t, "13800000000", user.Phone)

	assert.Equal(t, "13800000000", raw["phone"])
	_, hasPassword := raw["password"]
	assert.False(t, hasPassword, "empty fields should be omitted from the body")
}

func decodeJSON(t *testing.T, r *http.Request, target interface{}) {
	t.Helper()
	defer r.Body.Close()
	require.NoError(t, json.NewDecoder(r.Body).Decode(target))
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	fmt.Fprint(w, body)
}
