package utils

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/reelay-dev/reelay/internal/middleware"
	"github.com/reelay-dev/reelay/internal/types"
)

var errNoPrincipal = errors.New("no authenticated user in request context")

// GetCurrentUser returns the principal the auth middleware resolved for this
// request. Handlers call it once and pass the principal down explicitly.
func GetCurrentUser(ctx *gin.Context) (middleware.AuthenticatedUser, error) {
	value, exists := ctx.Get(types.ContextUserKey)

	if !exists {
		return middleware.AuthenticatedUser{}, errNoPrincipal
	}

	principal, ok := value.(middleware.AuthenticatedUser)

	if !ok {
		return middleware.AuthenticatedUser{}, errNoPrincipal
	}

	return principal, nil
}
