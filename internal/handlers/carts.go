package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/monocle-dev/storefront/internal/services"
	"github.com/monocle-dev/storefront/internal/utils"
	"github.com/shopspring/decimal"
)

type AddCartItemRequest struct {
	ProductVariantID uint             `json:"product_variant_id" binding:"required"`
	Quantity         int              `json:"quantity" binding:"required"`
	Price            *decimal.Decimal `json:"price" binding:"required"`
}

type AddItemToCartRequest struct {
	CartID *uint `json:"cart_id" binding:"required"`
	AddCartItemRequest
}

// GetActiveCart answers {"cart": null} when the user has no active cart.
func (h *Handler) GetActiveCart(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	cart, found, err := h.carts.GetActiveCart(ctx.Request.Context(), currentUser)

	if err != nil {
		respondError(ctx, err, "Cart")
		return
	}

	if !found {
		ctx.JSON(http.StatusOK, gin.H{"cart": nil})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"cart": cart})
}

func (h *Handler) CreateCart(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	cart, created, err := h.carts.CreateCart(ctx.Request.Context(), currentUser)

	if err != nil {
		respondError(ctx, err, "Cart")
		return
	}

	if !created {
		ctx.JSON(http.StatusOK, gin.H{
			"message": "An existing active cart for the logged in user already exists",
			"cart":    cart,
		})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"message": "Active cart created for the logged in user",
		"cart":    cart,
	})
}

// AddCartItem adds to the caller's active cart, creating it when needed.
func (h *Handler) AddCartItem(ctx *gin.Context) {
	var req AddCartItemRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "product_variant_id, quantity and price are required", err)
		return
	}

	h.addItem(ctx, services.AddItem{
		VariantID: req.ProductVariantID,
		Quantity:  req.Quantity,
		Price:     *req.Price,
	})
}

// AddItemToCart adds to an explicitly named cart owned by the caller.
func (h *Handler) AddItemToCart(ctx *gin.Context) {
	var req AddItemToCartRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "cart_id, product_variant_id, quantity and price are required", err)
		return
	}

	h.addItem(ctx, services.AddItem{
		CartID:    req.CartID,
		VariantID: req.ProductVariantID,
		Quantity:  req.Quantity,
		Price:     *req.Price,
	})
}

func (h *Handler) addItem(ctx *gin.Context, in services.AddItem) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	item, err := h.carts.AddOrAccumulate(ctx.Request.Context(), currentUser, in)

	if err != nil {
		respondError(ctx, err, "Cart")
		return
	}

	ctx.JSON(http.StatusCreated, item)
}

func (h *Handler) ListCartItems(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	cartID, err := utils.ParseID(ctx, "cart_id")

	if err != nil {
		badRequest(ctx, "Invalid cart id", err)
		return
	}

	items, err := h.carts.ListItems(ctx.Request.Context(), cartID, currentUser)

	if err != nil {
		respondError(ctx, err, "Cart")
		return
	}

	ctx.JSON(http.StatusOK, items)
}

func (h *Handler) CountCartItems(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	cartID, err := utils.ParseID(ctx, "cart_id")

	if err != nil {
		badRequest(ctx, "Invalid cart id", err)
		return
	}

	total, err := h.carts.CountItems(ctx.Request.Context(), cartID, currentUser)

	if err != nil {
		respondError(ctx, err, "Cart")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"total_cart_items": total})
}

// CloseCart marks the cart inactive. Closing it again is not an error.
func (h *Handler) CloseCart(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	cartID, err := utils.ParseID(ctx, "cart_id")

	if err != nil {
		badRequest(ctx, "Invalid cart id", err)
		return
	}

	cart, alreadyInactive, err := h.carts.CloseCart(ctx.Request.Context(), cartID, currentUser)

	if err != nil {
		respondError(ctx, err, "Cart")
		return
	}

	if alreadyInactive {
		ctx.JSON(http.StatusOK, gin.H{
			"message": "The cart is already inactive",
			"cart":    cart,
		})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Cart closed",
		"cart":    cart,
	})
}

func (h *Handler) DeleteCart(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	cartID, err := utils.ParseID(ctx, "cart_id")

	if err != nil {
		badRequest(ctx, "Invalid cart id", err)
		return
	}

	if err := h.carts.DeleteCart(ctx.Request.Context(), cartID, currentUser); err != nil {
		respondError(ctx, err, "Cart")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Cart deleted successfully"})
}
