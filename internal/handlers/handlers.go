package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/monocle-dev/storefront/internal/services"
	"github.com/monocle-dev/storefront/internal/utils"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Pinger reports whether the database is reachable. *sql.DB satisfies it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Services struct {
	Identity *services.IdentityService
	Users    *services.UserService
	Carts    *services.CartService
	Catalog  *services.CatalogService
	Orders   *services.OrderService
}

type CookieConfig struct {
	Domain string
	MaxAge time.Duration
}

type Handler struct {
	identity *services.IdentityService
	users    *services.UserService
	carts    *services.CartService
	catalog  *services.CatalogService
	orders   *services.OrderService
	hub      *CartHub
	db       Pinger
	cookie   CookieConfig
}

func New(svc Services, hub *CartHub, db Pinger, cookie CookieConfig) *Handler {
	return &Handler{
		identity: svc.Identity,
		users:    svc.Users,
		carts:    svc.Carts,
		catalog:  svc.Catalog,
		orders:   svc.Orders,
		hub:      hub,
		db:       db,
		cookie:   cookie,
	}
}

// respondError writes the status that matches err. what names the resource
// in 404 messages. Unexpected errors are logged and hidden from the client.
func respondError(ctx *gin.Context, err error, what string) {
	var status int
	message := err.Error()

	switch {
	case errors.Is(err, services.ErrInvalidCredentials):
		status, message = http.StatusUnauthorized, "Invalid credentials"
	case errors.Is(err, services.ErrInvalidToken):
		status, message = http.StatusUnauthorized, "Invalid token"
	case errors.Is(err, services.ErrUserNotFound):
		status, message = http.StatusUnauthorized, "User not found"
	case errors.Is(err, services.ErrForbidden):
		status, message = http.StatusForbidden, "Access not allowed"
	case errors.Is(err, services.ErrNotFound):
		status, message = http.StatusNotFound, what+" not found"
	case errors.Is(err, services.ErrInvalidArgument):
		status = http.StatusBadRequest
	case errors.Is(err, services.ErrCartInactive):
		status, message = http.StatusConflict, "The cart is inactive"
	case errors.Is(err, services.ErrEmailTaken):
		status, message = http.StatusConflict, "Email already exists"
	default:
		log.WithError(err).WithFields(log.Fields{
			"request_id": utils.GetRequestID(ctx),
			"path":       ctx.Request.URL.Path,
		}).Error("Request failed")
		_ = ctx.Error(err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if status == http.StatusUnauthorized {
		ctx.Header("WWW-Authenticate", "Bearer")
	}

	ctx.JSON(status, gin.H{"error": message})
}

func badRequest(ctx *gin.Context, message string, err error) {
	log.WithError(err).WithField("request_id", utils.GetRequestID(ctx)).Debug("Rejected request")
	ctx.JSON(http.StatusBadRequest, gin.H{"error": message})
}
