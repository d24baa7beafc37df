package handlers_test

import (
	"net/http"
	"testing"

	"github.com/reelay-dev/reelay/db"
	"github.com/reelay-dev/reelay/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterCreatesPersonalWorkspaceAndSubscription(t *testing.T) {
	r := setupTest(t)

	recorder := doRequest(t, r, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name":     "Ada",
		"email":    "ada@example.com",
		"password": "password123",
	}, nil)

	require.Equal(t, http.StatusCreated, recorder.Code)

	var user models.User
	require.NoError(t, db.DB.Where("email = ?", "ada@example.com").First(&user).Error)

	var workspaces []models.Workspace
	require.NoError(t, db.DB.Where("owner_id = ?", user.ID).Find(&workspaces).Error)
	require.Len(t, workspaces, 1)
	assert.Equal(t, models.WorkspacePersonal, workspaces[0].Type)

	var subscription models.Subscription
	require.NoError(t, db.DB.Where("user_id = ?", user.ID).First(&subscription).Error)
	assert.Equal(t, models.PlanFree, subscription.Plan)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	r := setupTest(t)
	seedUser(t, "ada@example.com", models.RoleMember, models.PlanFree)

	recorder := doRequest(t, r, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name":     "Ada",
		"email":    "ada@example.com",
		"password": "password123",
	}, nil)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestLoginAndMe(t *testing.T) {
	r := setupTest(t)
	_, token := seedUser(t, "ada@example.com", models.RoleMember, models.PlanPro)

	recorder := doRequest(t, r, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "ada@example.com",
		"password": "password123",
	}, nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	recorder = doRequest(t, r, http.MethodGet, "/api/auth/me", token, nil, nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	var body struct {
		User struct {
			Email string `json:"email"`
			Plan  string `json:"plan"`
		} `json:"user"`
	}
	decodeBody(t, recorder, &body)
	assert.Equal(t, "ada@example.com", body.User.Email)
	assert.Equal(t, models.PlanPro, body.User.Plan)
}

func TestLoginWrongPassword(t *testing.T) {
	r := setupTest(t)
	seedUser(t, "ada@example.com", models.RoleMember, models.PlanFree)

	recorder := doRequest(t, r, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "ada@example.com",
		"password": "wrongpassword",
	}, nil)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestUnauthenticatedRequestsRejected(t *testing.T) {
	r := setupTest(t)

	recorder := doRequest(t, r, http.MethodGet, "/api/workspaces", "", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	recorder = doRequest(t, r, http.MethodGet, "/api/auth/me", "not-a-token", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestUpdateFirstViewSetting(t *testing.T) {
	r := setupTest(t)
	user, token := seedUser(t, "ada@example.com", models.RoleMember, models.PlanFree)

	recorder := doRequest(t, r, http.MethodPatch, "/api/users/me/first-view", token, map[string]interface{}{
		"enabled": false,
	}, nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	var updated models.User
	require.NoError(t, db.DB.First(&updated, user.ID).Error)
	assert.False(t, updated.FirstViewEnabled)
}
