package handlers_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/reelay-dev/reelay/db"
	"github.com/reelay-dev/reelay/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ingestPath(video models.Video) string {
	return fmt.Sprintf("/api/videos/%d/analytics", video.ID)
}

func TestIngestAnalyticsDedupsViewsByIP(t *testing.T) {
	r := setupTest(t)

	owner, token := seedUser(t, "owner@example.com", models.RoleMember, models.PlanPro)
	workspace := seedWorkspace(t, owner, models.WorkspacePublic)
	video := seedVideo(t, owner, workspace)

	sample := map[string]interface{}{"watch_time": 10, "watch_percentage": 50}
	fromIP := func(ip string) map[string]string {
		return map[string]string{"X-Forwarded-For": ip}
	}

	// Two samples from the same IP inside the window count one view.
	for i := 0; i < 2; i++ {
		recorder := doRequest(t, r, http.MethodPost, ingestPath(video), token, sample, fromIP("203.0.113.9"))
		require.Equal(t, http.StatusOK, recorder.Code)
	}

	var after models.Video
	require.NoError(t, db.DB.First(&after, video.ID).Error)
	assert.Equal(t, 1, after.Views)

	// A different IP counts another view.
	recorder := doRequest(t, r, http.MethodPost, ingestPath(video), token, sample, fromIP("198.51.100.7"))
	require.Equal(t, http.StatusOK, recorder.Code)

	require.NoError(t, db.DB.First(&after, video.ID).Error)
	assert.Equal(t, 2, after.Views)

	// Every report still lands as its own sample row.
	var samples int64
	db.DB.Model(&models.VideoAnalytics{}).Where("video_id = ?", video.ID).Count(&samples)
	assert.EqualValues(t, 3, samples)
}

func TestIngestAnalyticsCountsAgainAfterWindow(t *testing.T) {
	r := setupTest(t)

	owner, token := seedUser(t, "owner@example.com", models.RoleMember, models.PlanPro)
	workspace := seedWorkspace(t, owner, models.WorkspacePublic)
	video := seedVideo(t, owner, workspace)

	// A sample from this IP older than the window must not suppress the
	// increment.
	stale := models.VideoAnalytics{
		VideoID:         video.ID,
		WatchTime:       5,
		WatchPercentage: 10,
		ViewerIP:        "203.0.113.9",
		ViewerCountry:   "US",
		ViewedAt:        time.Now().Add(-25 * time.Hour),
	}
	require.NoError(t, db.DB.Create(&stale).Error)

	recorder := doRequest(t, r, http.MethodPost, ingestPath(video), token,
		map[string]interface{}{"watch_time": 10, "watch_percentage": 50},
		map[string]string{"X-Forwarded-For": "203.0.113.9"})
	require.Equal(t, http.StatusOK, recorder.Code)

	var after models.Video
	require.NoError(t, db.DB.First(&after, video.ID).Error)
	assert.Equal(t, 1, after.Views)
}

func TestGetAnalyticsAggregates(t *testing.T) {
	r := setupTest(t)

	owner, token := seedUser(t, "owner@example.com", models.RoleMember, models.PlanPro)
	workspace := seedWorkspace(t, owner, models.WorkspacePublic)
	video := seedVideo(t, owner, workspace)

	for i, tc := range []struct {
		watchTime float64
		country   string
	}{
		{10, "US"},
		{20, "US"},
		{30, "FR"},
	} {
		sample := models.VideoAnalytics{
			VideoID:         video.ID,
			WatchTime:       tc.watchTime,
			WatchPercentage: 50,
			ViewerIP:        fmt.Sprintf("203.0.113.%d", i),
			ViewerCountry:   tc.country,
			ViewedAt:        time.Now(),
		}
		require.NoError(t, db.DB.Create(&sample).Error)
	}

	recorder := doRequest(t, r, http.MethodGet, ingestPath(video), token, nil, nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	var body struct {
		AverageWatchTime float64        `json:"average_watch_time"`
		ViewsByCountry   map[string]int `json:"views_by_country"`
	}
	decodeBody(t, recorder, &body)
	assert.InDelta(t, 20.0, body.AverageWatchTime, 0.0001)
	assert.Equal(t, map[string]int{"US": 2, "FR": 1}, body.ViewsByCountry)
}

func TestGetAnalyticsNoSamples(t *testing.T) {
	r := setupTest(t)

	owner, token := seedUser(t, "owner@example.com", models.RoleMember, models.PlanPro)
	workspace := seedWorkspace(t, owner, models.WorkspacePublic)
	video := seedVideo(t, owner, workspace)

	recorder := doRequest(t, r, http.MethodGet, ingestPath(video), token, nil, nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	var body struct {
		AverageWatchTime       float64 `json:"average_watch_time"`
		AverageWatchPercentage float64 `json:"average_watch_percentage"`
	}
	decodeBody(t, recorder, &body)
	assert.Zero(t, body.AverageWatchTime)
	assert.Zero(t, body.AverageWatchPercentage)
}

func TestCTAClickIncrements(t *testing.T) {
	r := setupTest(t)

	owner, token := seedUser(t, "owner@example.com", models.RoleMember, models.PlanPro)
	workspace := seedWorkspace(t, owner, models.WorkspacePublic)
	video := seedVideo(t, owner, workspace)

	cta := models.CallToAction{
		VideoID:    video.ID,
		ButtonText: "Book a demo",
		ButtonLink: "https://example.com/demo",
	}
	require.NoError(t, db.DB.Create(&cta).Error)

	path := fmt.Sprintf("/api/videos/%d/cta-click", video.ID)

	for i := 0; i < 3; i++ {
		recorder := doRequest(t, r, http.MethodPost, path, token, nil, nil)
		require.Equal(t, http.StatusOK, recorder.Code)
	}

	var after models.CallToAction
	require.NoError(t, db.DB.First(&after, cta.ID).Error)
	assert.Equal(t, 3, after.Clicks)
}

func TestCTAClickWithoutCTA(t *testing.T) {
	r := setupTest(t)

	owner, token := seedUser(t, "owner@example.com", models.RoleMember, models.PlanPro)
	workspace := seedWorkspace(t, owner, models.WorkspacePublic)
	video := seedVideo(t, owner, workspace)

	recorder := doRequest(t, r, http.MethodPost, fmt.Sprintf("/api/videos/%d/cta-click", video.ID), token, nil, nil)
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestUpsertCTAPreservesClicks(t *testing.T) {
	r := setupTest(t)

	owner, ownerToken := seedUser(t, "owner@example.com", models.RoleMember, models.PlanPro)
	_, otherToken := seedUser(t, "other@example.com", models.RoleMember, models.PlanFree)

	workspace := seedWorkspace(t, owner, models.WorkspacePublic)
	video := seedVideo(t, owner, workspace)

	path := fmt.Sprintf("/api/videos/%d/cta", video.ID)

	recorder := doRequest(t, r, http.MethodPut, path, otherToken,
		map[string]string{"button_text": "x", "button_link": "https://x"}, nil)
	assert.Equal(t, http.StatusForbidden, recorder.Code)

	recorder = doRequest(t, r, http.MethodPut, path, ownerToken,
		map[string]string{"button_text": "Try it", "button_link": "https://example.com"}, nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	require.NoError(t, db.DB.Model(&models.CallToAction{}).
		Where("video_id = ?", video.ID).
		Update("clicks", 5).Error)

	recorder = doRequest(t, r, http.MethodPut, path, ownerToken,
		map[string]string{"button_text": "Try it now", "button_link": "https://example.com"}, nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	var cta models.CallToAction
	require.NoError(t, db.DB.Where("video_id = ?", video.ID).First(&cta).Error)
	assert.Equal(t, "Try it now", cta.ButtonText)
	assert.Equal(t, 5, cta.Clicks)
}
