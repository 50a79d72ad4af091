package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/monocle-dev/storefront/internal/models"
	"github.com/monocle-dev/storefront/internal/types"
	"github.com/monocle-dev/storefront/internal/utils"
)

// LoginRequest accepts the OAuth2 password form as well as JSON.
type LoginRequest struct {
	Username string `form:"username" json:"username" binding:"required"`
	Password string `form:"password" json:"password" binding:"required"`
}

func (h *Handler) Login(ctx *gin.Context) {
	var req LoginRequest

	if err := ctx.ShouldBind(&req); err != nil {
		badRequest(ctx, "username and password are required", err)
		return
	}

	token, err := h.identity.Authenticate(ctx.Request.Context(), req.Username, req.Password)

	if err != nil {
		respondError(ctx, err, "User")
		return
	}

	h.setTokenCookie(ctx, token, int(h.cookie.MaxAge.Seconds()))

	ctx.JSON(http.StatusOK, types.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
	})
}

func (h *Handler) Logout(ctx *gin.Context) {
	h.setTokenCookie(ctx, "", -1)

	ctx.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

func (h *Handler) Me(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"email":    currentUser.Email,
		"is_admin": currentUser.IsAdmin,
	})
}

func (h *Handler) ListUsers(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	users, err := h.identity.ListUsers(ctx.Request.Context(), currentUser)

	if err != nil {
		respondError(ctx, err, "User")
		return
	}

	ctx.JSON(http.StatusOK, userResponses(users))
}

func (h *Handler) setTokenCookie(ctx *gin.Context, value string, maxAge int) {
	http.SetCookie(ctx.Writer, &http.Cookie{
		Name:     types.TokenCookie,
		Value:    value,
		Path:     "/",
		Domain:   h.cookie.Domain,
		MaxAge:   maxAge,
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteNoneMode,
	})
}

func userResponses(users []models.User) []types.UserResponse {
	out := make([]types.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, types.NewUserResponse(&users[i]))
	}
	return out
}
