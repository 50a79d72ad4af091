package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/monocle-dev/storefront/internal/utils"
)

func (h *Handler) MyOrders(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	orders, err := h.orders.History(ctx.Request.Context(), currentUser)

	if err != nil {
		respondError(ctx, err, "Order")
		return
	}

	ctx.JSON(http.StatusOK, orders)
}

func (h *Handler) MyOrder(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	orderID, err := utils.ParseID(ctx, "order_id")

	if err != nil {
		badRequest(ctx, "Invalid order id", err)
		return
	}

	order, err := h.orders.Order(ctx.Request.Context(), orderID, currentUser)

	if err != nil {
		respondError(ctx, err, "Order")
		return
	}

	ctx.JSON(http.StatusOK, order)
}
