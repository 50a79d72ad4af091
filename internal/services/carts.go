package services

import (
	"context"

	"github.com/monocle-dev/storefront/internal/models"
	"github.com/monocle-dev/storefront/internal/store"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

// maxWriteAttempts bounds how often a unit of work is replayed after losing
// a unique-constraint race to a concurrent request.
const maxWriteAttempts = 3

// CartNotifier hears about committed cart mutations.
type CartNotifier interface {
	CartChanged(userID, cartID uint)
}

type AddItem struct {
	// CartID is optional; without it the caller's active cart is used,
	// and created if there is none.
	CartID    *uint
	VariantID uint
	Quantity  int
	Price     decimal.Decimal
}

type CartService struct {
	carts    store.CartRepository
	notifier CartNotifier
}

func NewCartService(carts store.CartRepository, notifier CartNotifier) *CartService {
	return &CartService{carts: carts, notifier: notifier}
}

// GetActiveCart reports found=false, not an error, when the user has no active cart.
func (s *CartService) GetActiveCart(ctx context.Context, user *models.User) (*models.Cart, bool, error) {
	cart, err := s.carts.FindActive(ctx, user.ID)

	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}

	return cart, true, nil
}

// CreateCart returns the existing active cart with created=false if there is one.
func (s *CartService) CreateCart(ctx context.Context, user *models.User) (*models.Cart, bool, error) {
	var (
		cart    *models.Cart
		created bool
	)

	err := s.write(ctx, func(tx store.CartRepository) error {
		var err error
		cart, created, err = activeOrNewCart(ctx, tx, user.ID)
		return err
	})

	if err != nil {
		return nil, false, err
	}

	if created {
		s.notify(user.ID, cart.ID)
	}

	return cart, created, nil
}

func (s *CartService) ListItems(ctx context.Context, cartID uint, user *models.User) ([]models.CartItemView, error) {
	if _, err := ownedCart(ctx, s.carts, cartID, user.ID); err != nil {
		return nil, err
	}

	return s.carts.ListItemViews(ctx, cartID)
}

// CountItems sums quantities; an empty cart counts 0.
func (s *CartService) CountItems(ctx context.Context, cartID uint, user *models.User) (int64, error) {
	if _, err := ownedCart(ctx, s.carts, cartID, user.ID); err != nil {
		return 0, err
	}

	return s.carts.SumQuantity(ctx, cartID)
}

// AddOrAccumulate adds quantity to the cart's line for the variant, creating
// the line (and, without an explicit cart, the cart) when missing. The price
// of an existing line is never overwritten.
func (s *CartService) AddOrAccumulate(ctx context.Context, user *models.User, in AddItem) (*models.CartItem, error) {
	if err := validateAddItem(in); err != nil {
		return nil, err
	}

	var item *models.CartItem

	err := s.write(ctx, func(tx store.CartRepository) error {
		cart, err := targetCart(ctx, tx, user.ID, in.CartID)
		if err != nil {
			return err
		}

		itemID, err := accumulate(ctx, tx, cart.ID, in)
		if err != nil {
			return err
		}

		item, err = tx.FindItemByID(ctx, itemID)
		if err != nil {
			return errors.Wrap(err, "reload cart item")
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	s.notify(user.ID, item.CartID)

	return item, nil
}

// CloseCart moves an active cart to inactive. A cart that is already
// inactive is returned unchanged with alreadyInactive=true.
func (s *CartService) CloseCart(ctx context.Context, cartID uint, user *models.User) (*models.Cart, bool, error) {
	var (
		cart            *models.Cart
		alreadyInactive bool
	)

	err := s.write(ctx, func(tx store.CartRepository) error {
		var err error

		cart, err = ownedCart(ctx, tx, cartID, user.ID)
		if err != nil {
			return err
		}

		if !cart.Active() {
			alreadyInactive = true
			return nil
		}

		alreadyInactive = false

		return tx.UpdateStatus(ctx, cart, models.CartStatusInactive)
	})

	if err != nil {
		return nil, false, err
	}

	if !alreadyInactive {
		s.notify(user.ID, cart.ID)
	}

	return cart, alreadyInactive, nil
}

// DeleteCart removes the cart and its items together.
func (s *CartService) DeleteCart(ctx context.Context, cartID uint, user *models.User) error {
	err := s.write(ctx, func(tx store.CartRepository) error {
		if _, err := ownedCart(ctx, tx, cartID, user.ID); err != nil {
			return err
		}

		return tx.DeleteCart(ctx, cartID)
	})

	if err != nil {
		return err
	}

	s.notify(user.ID, cartID)

	return nil
}

// write runs fn in a transaction and replays it when the store reports a
// unique violation, so the next attempt reads and merges into the row that
// won the race.
func (s *CartService) write(ctx context.Context, fn func(tx store.CartRepository) error) error {
	var err error

	for attempt := 1; attempt <= maxWriteAttempts; attempt++ {
		err = s.carts.Transaction(ctx, fn)

		if !errors.Is(err, store.ErrDuplicate) {
			return err
		}

		log.WithFields(log.Fields{
			"attempt": attempt,
			"error":   err,
		}).Debug("cart write lost a uniqueness race, retrying")
	}

	return errors.Wrap(err, "cart write kept conflicting")
}

func (s *CartService) notify(userID, cartID uint) {
	if s.notifier != nil {
		s.notifier.CartChanged(userID, cartID)
	}
}

func validateAddItem(in AddItem) error {
	switch {
	case in.VariantID == 0:
		return errors.Wrap(ErrInvalidArgument, "product_variant_id is required")
	case in.Quantity <= 0:
		return errors.Wrap(ErrInvalidArgument, "quantity must be positive")
	case in.Price.IsNegative():
		return errors.Wrap(ErrInvalidArgument, "price must not be negative")
	}

	return nil
}

func ownedCart(ctx context.Context, carts store.CartRepository, cartID, userID uint) (*models.Cart, error) {
	cart, err := carts.FindOwned(ctx, cartID, userID)

	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return cart, nil
}

func activeOrNewCart(ctx context.Context, tx store.CartRepository, userID uint) (*models.Cart, bool, error) {
	cart, err := tx.FindActive(ctx, userID)

	if err == nil {
		return cart, false, nil
	}

	if !errors.Is(err, store.ErrNotFound) {
		return nil, false, err
	}

	cart = &models.Cart{
		UserID:     userID,
		CartStatus: models.CartStatusActive,
	}

	if err := tx.CreateCart(ctx, cart); err != nil {
		return nil, false, err
	}

	return cart, true, nil
}

func targetCart(ctx context.Context, tx store.CartRepository, userID uint, cartID *uint) (*models.Cart, error) {
	if cartID == nil {
		cart, _, err := activeOrNewCart(ctx, tx, userID)
		return cart, err
	}

	cart, err := ownedCart(ctx, tx, *cartID, userID)

	if err != nil {
		return nil, err
	}

	if !cart.Active() {
		return nil, ErrCartInactive
	}

	return cart, nil
}

// accumulate returns the id of the line that now holds the quantity.
func accumulate(ctx context.Context, tx store.CartRepository, cartID uint, in AddItem) (uint, error) {
	existing, err := tx.FindItem(ctx, cartID, in.VariantID)

	if err == nil {
		if err := tx.IncrementItem(ctx, existing.ID, in.Quantity); err != nil {
			return 0, err
		}
		return existing.ID, nil
	}

	if !errors.Is(err, store.ErrNotFound) {
		return 0, err
	}

	item := &models.CartItem{
		CartID:           cartID,
		ProductVariantID: in.VariantID,
		Quantity:         in.Quantity,
		Price:            in.Price,
	}

	if err := tx.CreateItem(ctx, item); err != nil {
		return 0, err
	}

	return item.ID, nil
}
