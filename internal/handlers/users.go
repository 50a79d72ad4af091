package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/monocle-dev/storefront/internal/services"
	"github.com/monocle-dev/storefront/internal/types"
	"github.com/monocle-dev/storefront/internal/utils"
)

// UpdateUserRequest fields are optional; only those present are changed.
type UpdateUserRequest struct {
	Title     *string `json:"title"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Gender    *string `json:"gender"`
	Email     *string `json:"email"`
	Password  *string `json:"password" binding:"omitempty,min=8"`
}

func (h *Handler) UpdateMe(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req UpdateUserRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request", err)
		return
	}

	user, err := h.users.UpdateProfile(ctx.Request.Context(), currentUser, services.ProfileUpdate{
		Title:     req.Title,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Gender:    req.Gender,
		Email:     req.Email,
		Password:  req.Password,
	})

	if err != nil {
		respondError(ctx, err, "User")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "User updated successfully",
		"user":    types.NewUserResponse(user),
	})
}
