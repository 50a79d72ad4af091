package types

import (
	"time"

	"github.com/monocle-dev/storefront/internal/models"
)

type UserResponse struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Gender    string    `json:"gender"`
	Email     string    `json:"email"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
}

func NewUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Title:     u.Title,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Gender:    u.Gender,
		Email:     u.Email,
		IsAdmin:   u.IsAdmin,
		CreatedAt: u.CreatedAt,
	}
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// CartEvent is pushed to a user's websocket connections.
type CartEvent struct {
	Type   string `json:"type"`
	CartID uint   `json:"cart_id,omitempty"`
}
