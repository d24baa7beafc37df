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

func TestCreateVideoRequiresKeyAndTitle(t *testing.T) {
	r := setupTest(t)

	owner, token := seedUser(t, "owner@example.com", models.RoleMember, models.PlanPro)
	workspace := seedWorkspace(t, owner, models.WorkspacePublic)

	recorder := doRequest(t, r, http.MethodPost, "/api/videos", token, map[string]interface{}{
		"title":        "no key",
		"workspace_id": workspace.ID,
	}, nil)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	recorder = doRequest(t, r, http.MethodPost, "/api/videos", token, map[string]interface{}{
		"key":          "videos/a.mp4",
		"title":        "demo",
		"workspace_id": workspace.ID,
	}, nil)
	require.Equal(t, http.StatusCreated, recorder.Code)

	var video models.Video
	require.NoError(t, db.DB.Where("owner_id = ?", owner.ID).First(&video).Error)
	assert.True(t, video.Processing)
	assert.Equal(t, "videos/a.mp4", video.Source)
}

func TestListWorkspaceVideosOrderedAscending(t *testing.T) {
	r := setupTest(t)

	owner, token := seedUser(t, "owner@example.com", models.RoleMember, models.PlanPro)
	workspace := seedWorkspace(t, owner, models.WorkspacePublic)

	first := seedVideo(t, owner, workspace)
	second := seedVideo(t, owner, workspace)

	recorder := doRequest(t, r, http.MethodGet, fmt.Sprintf("/api/workspaces/%d/videos", workspace.ID), token, nil, nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	var body []struct {
		ID uint `json:"id"`
	}
	decodeBody(t, recorder, &body)
	require.Len(t, body, 2)
	assert.Equal(t, first.ID, body[0].ID)
	assert.Equal(t, second.ID, body[1].ID)
}

func TestListFolderVideos(t *testing.T) {
	r := setupTest(t)

	owner, token := seedUser(t, "owner@example.com", models.RoleMember, models.PlanPro)
	workspace := seedWorkspace(t, owner, models.WorkspacePublic)

	folder := models.Folder{Name: "Untitled", WorkspaceID: workspace.ID}
	require.NoError(t, db.DB.Create(&folder).Error)

	inFolder := seedVideo(t, owner, workspace)
	require.NoError(t, db.DB.Model(&inFolder).Update("folder_id", folder.ID).Error)
	seedVideo(t, owner, workspace) // not in the folder

	recorder := doRequest(t, r, http.MethodGet, fmt.Sprintf("/api/folders/%d/videos", folder.ID), token, nil, nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	var body []struct {
		ID uint `json:"id"`
	}
	decodeBody(t, recorder, &body)
	require.Len(t, body, 1)
	assert.Equal(t, inFolder.ID, body[0].ID)
}

func TestGetPreviewVideoAuthorFlag(t *testing.T) {
	r := setupTest(t)

	owner, ownerToken := seedUser(t, "owner@example.com", models.RoleMember, models.PlanPro)
	_, viewerToken := seedUser(t, "viewer@example.com", models.RoleMember, models.PlanFree)

	workspace := seedWorkspace(t, owner, models.WorkspacePublic)
	video := seedVideo(t, owner, workspace)

	path := fmt.Sprintf("/api/videos/%d/preview", video.ID)

	recorder := doRequest(t, r, http.MethodGet, path, ownerToken, nil, nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	var body struct {
		Author    bool   `json:"author"`
		OwnerName string `json:"owner_name"`
	}
	decodeBody(t, recorder, &body)
	assert.True(t, body.Author)
	assert.Equal(t, owner.Name, body.OwnerName)

	recorder = doRequest(t, r, http.MethodGet, path, viewerToken, nil, nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	decodeBody(t, recorder, &body)
	assert.False(t, body.Author)

	// An anonymous caller gets a 401 from the middleware before the
	// handler's own not-found-for-anonymous rule can apply.
	recorder = doRequest(t, r, http.MethodGet, path, "", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestEditVideoInfo(t *testing.T) {
	r := setupTest(t)

	owner, token := seedUser(t, "owner@example.com", models.RoleMember, models.PlanPro)
	workspace := seedWorkspace(t, owner, models.WorkspacePublic)
	video := seedVideo(t, owner, workspace)

	recorder := doRequest(t, r, http.MethodPut, fmt.Sprintf("/api/videos/%d", video.ID), token,
		map[string]string{"title": "new title", "description": "new description"}, nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	var updated models.Video
	require.NoError(t, db.DB.First(&updated, video.ID).Error)
	assert.Equal(t, "new title", updated.Title)
	assert.Equal(t, "new description", updated.Description)

	recorder = doRequest(t, r, http.MethodPut, "/api/videos/9999", token,
		map[string]string{"title": "x", "description": "y"}, nil)
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestCompleteProcessingOwnerOnly(t *testing.T) {
	r := setupTest(t)

	owner, ownerToken := seedUser(t, "owner@example.com", models.RoleMember, models.PlanPro)
	_, otherToken := seedUser(t, "other@example.com", models.RoleMember, models.PlanFree)

	workspace := seedWorkspace(t, owner, models.WorkspacePublic)

	video := models.Video{
		Title:       "processing",
		Source:      "videos/p.mp4",
		WorkspaceID: workspace.ID,
		OwnerID:     owner.ID,
		Processing:  true,
	}
	require.NoError(t, db.DB.Create(&video).Error)

	path := fmt.Sprintf("/api/videos/%d/processing", video.ID)

	recorder := doRequest(t, r, http.MethodPatch, path, otherToken, nil, nil)
	assert.Equal(t, http.StatusForbidden, recorder.Code)

	recorder = doRequest(t, r, http.MethodPatch, path, ownerToken,
		map[string]interface{}{"metadata": map[string]interface{}{"duration": 42}}, nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	var done models.Video
	require.NoError(t, db.DB.First(&done, video.ID).Error)
	assert.False(t, done.Processing)
	assert.NotEmpty(t, done.Metadata)
}
