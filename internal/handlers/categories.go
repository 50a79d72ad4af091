package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/monocle-dev/storefront/internal/utils"
)

func (h *Handler) ListCategories(ctx *gin.Context) {
	categories, err := h.catalog.Categories(ctx.Request.Context())

	if err != nil {
		respondError(ctx, err, "Category")
		return
	}

	ctx.JSON(http.StatusOK, categories)
}

func (h *Handler) GetCategory(ctx *gin.Context) {
	id, err := utils.ParseID(ctx, "id")

	if err != nil {
		badRequest(ctx, "Invalid category id", err)
		return
	}

	category, err := h.catalog.Category(ctx.Request.Context(), id)

	if err != nil {
		respondError(ctx, err, "Category")
		return
	}

	ctx.JSON(http.StatusOK, category)
}

func (h *Handler) ListSubcategories(ctx *gin.Context) {
	subcategories, err := h.catalog.Subcategories(ctx.Request.Context())

	if err != nil {
		respondError(ctx, err, "Subcategory")
		return
	}

	ctx.JSON(http.StatusOK, subcategories)
}

// SubcategoriesOf accepts parent 0 so the service can reject it as a bad request.
func (h *Handler) SubcategoriesOf(ctx *gin.Context) {
	parentID, err := strconv.ParseUint(ctx.Param("parent_id"), 10, 0)

	if err != nil {
		badRequest(ctx, "Invalid parent id", err)
		return
	}

	subcategories, err := h.catalog.SubcategoriesOf(ctx.Request.Context(), uint(parentID))

	if err != nil {
		respondError(ctx, err, "Subcategory")
		return
	}

	ctx.JSON(http.StatusOK, subcategories)
}
