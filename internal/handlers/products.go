package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/monocle-dev/storefront/internal/utils"
)

type ProductQuery struct {
	ProductID uint   `form:"product_id" binding:"required"`
	ColorCode string `form:"color_code"`
}

func (h *Handler) ListVariants(ctx *gin.Context) {
	skip, err := strconv.Atoi(ctx.DefaultQuery("skip", "0"))

	if err != nil {
		badRequest(ctx, "skip must be an integer", err)
		return
	}

	limit, err := strconv.Atoi(ctx.DefaultQuery("limit", "0"))

	if err != nil {
		badRequest(ctx, "limit must be an integer", err)
		return
	}

	variants, err := h.catalog.Variants(ctx.Request.Context(), skip, limit)

	if err != nil {
		respondError(ctx, err, "Variant")
		return
	}

	ctx.JSON(http.StatusOK, variants)
}

func (h *Handler) ProductsByCategory(ctx *gin.Context) {
	categoryID, err := utils.ParseID(ctx, "id")

	if err != nil {
		badRequest(ctx, "Invalid category id", err)
		return
	}

	products, err := h.catalog.ProductsByCategory(ctx.Request.Context(), categoryID)

	if err != nil {
		respondError(ctx, err, "Category")
		return
	}

	ctx.JSON(http.StatusOK, products)
}

func (h *Handler) GetProduct(ctx *gin.Context) {
	productID, err := utils.ParseID(ctx, "id")

	if err != nil {
		badRequest(ctx, "Invalid product id", err)
		return
	}

	rows, err := h.catalog.Product(ctx.Request.Context(), productID)

	if err != nil {
		respondError(ctx, err, "Product")
		return
	}

	ctx.JSON(http.StatusOK, rows)
}

func (h *Handler) ProductImages(ctx *gin.Context) {
	var q ProductQuery

	if err := ctx.ShouldBindQuery(&q); err != nil {
		badRequest(ctx, "product_id is required", err)
		return
	}

	images, err := h.catalog.ProductImages(ctx.Request.Context(), q.ProductID, q.ColorCode)

	if err != nil {
		respondError(ctx, err, "Product images")
		return
	}

	ctx.JSON(http.StatusOK, images)
}

func (h *Handler) ProductColors(ctx *gin.Context) {
	var q ProductQuery

	if err := ctx.ShouldBindQuery(&q); err != nil {
		badRequest(ctx, "product_id is required", err)
		return
	}

	colors, err := h.catalog.ProductColors(ctx.Request.Context(), q.ProductID)

	if err != nil {
		respondError(ctx, err, "Product colors")
		return
	}

	ctx.JSON(http.StatusOK, colors)
}

func (h *Handler) ProductSizes(ctx *gin.Context) {
	var q ProductQuery

	if err := ctx.ShouldBindQuery(&q); err != nil {
		badRequest(ctx, "product_id is required", err)
		return
	}

	sizes, err := h.catalog.ProductSizes(ctx.Request.Context(), q.ProductID, q.ColorCode)

	if err != nil {
		respondError(ctx, err, "Product sizes")
		return
	}

	ctx.JSON(http.StatusOK, sizes)
}
