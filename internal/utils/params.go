package utils

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

func pathID(ctx *gin.Context, name string) (uint, error) {
	raw := ctx.Param(name)

	if raw == "" {
		return 0, errors.New(name + " not found")
	}

	id, err := strconv.ParseUint(raw, 10, 32)

	if err != nil {
		return 0, errors.New("Invalid " + name)
	}

	return uint(id), nil
}

func GetWorkspaceID(ctx *gin.Context) (uint, error) {
	return pathID(ctx, "workspace_id")
}

func GetFolderID(ctx *gin.Context) (uint, error) {
	return pathID(ctx, "folder_id")
}

func GetVideoID(ctx *gin.Context) (uint, error) {
	return pathID(ctx, "video_id")
}

func GetMemberID(ctx *gin.Context) (uint, error) {
	return pathID(ctx, "member_id")
}
