package store

import (
	"context"

	"github.com/monocle-dev/storefront/internal/models"
)

// Lookups return ErrNotFound when no row matches and ErrDuplicate when a
// write hits a unique constraint. Other errors are opaque store failures.

type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id uint) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Create(ctx context.Context, user *models.User) error
	Save(ctx context.Context, user *models.User) error
}

type CartRepository interface {
	// Transaction runs fn against a repository bound to one database
	// transaction. Returning an error from fn rolls everything back.
	Transaction(ctx context.Context, fn func(tx CartRepository) error) error

	FindActive(ctx context.Context, userID uint) (*models.Cart, error)
	FindOwned(ctx context.Context, cartID, userID uint) (*models.Cart, error)
	CreateCart(ctx context.Context, cart *models.Cart) error
	UpdateStatus(ctx context.Context, cart *models.Cart, status string) error
	// DeleteCart removes the cart row and all of its items.
	DeleteCart(ctx context.Context, cartID uint) error

	FindItem(ctx context.Context, cartID, variantID uint) (*models.CartItem, error)
	FindItemByID(ctx context.Context, itemID uint) (*models.CartItem, error)
	CreateItem(ctx context.Context, item *models.CartItem) error
	IncrementItem(ctx context.Context, itemID uint, quantity int) error
	ListItemViews(ctx context.Context, cartID uint) ([]models.CartItemView, error)
	SumQuantity(ctx context.Context, cartID uint) (int64, error)
}

type CatalogRepository interface {
	ListVariants(ctx context.Context, offset, limit int) ([]models.VariantView, error)
	ListProductsByCategory(ctx context.Context, categoryID uint) ([]models.CategoryProductView, error)
	ProductDetail(ctx context.Context, productID uint) ([]models.ProductDetailView, error)
	ProductImages(ctx context.Context, productID uint, colorCode string) ([]models.ProductImageView, error)
	ProductColors(ctx context.Context, productID uint) ([]models.ProductColorView, error)
	ProductSizes(ctx context.Context, productID uint, colorCode string) ([]models.ProductSizeView, error)

	ListRootCategories(ctx context.Context) ([]models.Category, error)
	FindRootCategory(ctx context.Context, id uint) (*models.Category, error)
	ListSubcategories(ctx context.Context) ([]models.Category, error)
	ListSubcategoriesOf(ctx context.Context, parentID uint) ([]models.Category, error)
}

type OrderRepository interface {
	ListByUser(ctx context.Context, userID uint) ([]models.OrderSummary, error)
	FindOwned(ctx context.Context, orderID, userID uint) (*models.Order, error)
}
