package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/monocle-dev/storefront/internal/models"
	"github.com/monocle-dev/storefront/internal/types"
	"github.com/pkg/errors"
)

func GetCurrentUser(ctx *gin.Context) (*models.User, error) {
	user, exists := ctx.Get(types.ContextUserKey)

	if !exists {
		return nil, errors.New("user not authenticated")
	}

	authenticatedUser, ok := user.(*models.User)

	if !ok {
		return nil, errors.New("invalid user type in context")
	}

	return authenticatedUser, nil
}

func GetCurrentUserID(ctx *gin.Context) (uint, error) {
	user, err := GetCurrentUser(ctx)

	if err != nil {
		return 0, err
	}

	return user.ID, nil
}

// ParseID reads a positive integer path parameter.
func ParseID(ctx *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 0)

	if err != nil || id == 0 {
		return 0, errors.Errorf("invalid %s", name)
	}

	return uint(id), nil
}

func GetRequestID(ctx *gin.Context) string {
	return ctx.GetString(types.ContextRequestIDKey)
}
