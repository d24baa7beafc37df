package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/reelay-dev/reelay/db"
	"github.com/reelay-dev/reelay/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func firstViewPath(video models.Video) string {
	return fmt.Sprintf("/api/videos/%d/first-view", video.ID)
}

func TestFirstViewNotifiesOnce(t *testing.T) {
	r := setupTest(t)

	owner, _ := seedUser(t, "owner@example.com", models.RoleMember, models.PlanPro)
	_, viewerToken := seedUser(t, "viewer@example.com", models.RoleMember, models.PlanFree)

	workspace := seedWorkspace(t, owner, models.WorkspacePublic)
	video := seedVideo(t, owner, workspace)

	recorder := doRequest(t, r, http.MethodPost, firstViewPath(video), viewerToken, nil, nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	var after models.Video
	require.NoError(t, db.DB.First(&after, video.ID).Error)
	assert.Equal(t, 1, after.Views)

	// SMTP is not configured in tests, so the fallback in-app notification
	// carries the event. It is written before the request returns.
	var notifications []models.Notification
	require.NoError(t, db.DB.Where("user_id = ?", owner.ID).Find(&notifications).Error)
	require.Len(t, notifications, 1)
	assert.Contains(t, notifications[0].Content, video.Title)
	assert.Contains(t, notifications[0].Content, "first viewer")

	// A second report is a no-op: views stay at 1, no extra notification.
	recorder = doRequest(t, r, http.MethodPost, firstViewPath(video), viewerToken, nil, nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	require.NoError(t, db.DB.First(&after, video.ID).Error)
	assert.Equal(t, 1, after.Views)

	db.DB.Where("user_id = ?", owner.ID).Find(&notifications)
	assert.Len(t, notifications, 1)
}

func TestFirstViewRespectsSetting(t *testing.T) {
	r := setupTest(t)

	owner, _ := seedUser(t, "owner@example.com", models.RoleMember, models.PlanPro)
	_, viewerToken := seedUser(t, "viewer@example.com", models.RoleMember, models.PlanFree)

	require.NoError(t, db.DB.Model(&models.User{}).
		Where("id = ?", owner.ID).
		Update("first_view_enabled", false).Error)

	workspace := seedWorkspace(t, owner, models.WorkspacePublic)
	video := seedVideo(t, owner, workspace)

	recorder := doRequest(t, r, http.MethodPost, firstViewPath(video), viewerToken, nil, nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	// Disabled setting means no effect at all: no view bump, no
	// notification.
	var after models.Video
	require.NoError(t, db.DB.First(&after, video.ID).Error)
	assert.Equal(t, 0, after.Views)

	var count int64
	db.DB.Model(&models.Notification{}).Count(&count)
	assert.EqualValues(t, 0, count)
}

func TestFirstViewSkipsViewedVideos(t *testing.T) {
	r := setupTest(t)

	owner, _ := seedUser(t, "owner@example.com", models.RoleMember, models.PlanPro)
	_, viewerToken := seedUser(t, "viewer@example.com", models.RoleMember, models.PlanFree)

	workspace := seedWorkspace(t, owner, models.WorkspacePublic)
	video := seedVideo(t, owner, workspace)
	require.NoError(t, db.DB.Model(&video).Update("views", 4).Error)

	recorder := doRequest(t, r, http.MethodPost, firstViewPath(video), viewerToken, nil, nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	var after models.Video
	require.NoError(t, db.DB.First(&after, video.ID).Error)
	assert.Equal(t, 4, after.Views)

	var count int64
	db.DB.Model(&models.Notification{}).Count(&count)
	assert.EqualValues(t, 0, count)
}

func TestListNotificationsNewestFirst(t *testing.T) {
	r := setupTest(t)

	user, token := seedUser(t, "user@example.com", models.RoleMember, models.PlanFree)

	for _, content := range []string{"first", "second"} {
		require.NoError(t, db.DB.Create(&models.Notification{UserID: user.ID, Content: content}).Error)
	}

	recorder := doRequest(t, r, http.MethodGet, "/api/notifications", token, nil, nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	var body []struct {
		Content string `json:"content"`
	}
	decodeBody(t, recorder, &body)
	require.Len(t, body, 2)
}
