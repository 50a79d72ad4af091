package storetest

import (
	"context"

	"github.com/monocle-dev/storefront/internal/models"
	"github.com/monocle-dev/storefront/internal/store"
)

// Carts implements store.CartRepository. Inside a transaction every write
// records how to undo itself.
type Carts struct {
	s    *Store
	undo *[]func()
}

var _ store.CartRepository = (*Carts)(nil)

func (c *Carts) Transaction(_ context.Context, fn func(tx store.CartRepository) error) error {
	if c.undo != nil {
		return fn(c)
	}

	c.s.txMu.Lock()
	defer c.s.txMu.Unlock()

	var undo []func()
	tx := &Carts{s: c.s, undo: &undo}

	if err := fn(tx); err != nil {
		c.s.mu.Lock()
		for i := len(undo) - 1; i >= 0; i-- {
			undo[i]()
		}
		c.s.Rollbacks++
		c.s.mu.Unlock()

		return err
	}

	c.s.mu.Lock()
	c.s.Commits++
	c.s.mu.Unlock()

	return nil
}

// record must be called with mu held.
func (c *Carts) record(fn func()) {
	if c.undo != nil {
		*c.undo = append(*c.undo, fn)
	}
}

func (c *Carts) FindActive(_ context.Context, userID uint) (*models.Cart, error) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	var found *models.Cart
	for _, cart := range c.s.carts {
		if cart.UserID == userID && cart.CartStatus == models.CartStatusActive {
			if found == nil || cart.ID < found.ID {
				cp := cart
				found = &cp
			}
		}
	}

	if found == nil {
		return nil, store.ErrNotFound
	}

	return found, nil
}

func (c *Carts) FindOwned(_ context.Context, cartID, userID uint) (*models.Cart, error) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	cart, ok := c.s.carts[cartID]
	if !ok || cart.UserID != userID {
		return nil, store.ErrNotFound
	}

	return &cart, nil
}

func (c *Carts) CreateCart(_ context.Context, cart *models.Cart) error {
	if hook := c.s.BeforeCreateCart; hook != nil {
		hook()
	}

	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	if cart.CartStatus == models.CartStatusActive {
		for _, other := range c.s.carts {
			if other.UserID == cart.UserID && other.CartStatus == models.CartStatusActive {
				return store.ErrDuplicate
			}
		}
	}

	now := c.s.tick()
	cart.ID = c.s.id()
	cart.CreatedAt = now
	cart.UpdatedAt = now
	c.s.carts[cart.ID] = *cart

	id := cart.ID
	c.record(func() { delete(c.s.carts, id) })

	return nil
}

func (c *Carts) UpdateStatus(_ context.Context, cart *models.Cart, status string) error {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	prev, ok := c.s.carts[cart.ID]
	if !ok {
		return store.ErrNotFound
	}

	next := prev
	next.CartStatus = status
	next.UpdatedAt = c.s.tick()
	c.s.carts[cart.ID] = next

	cart.CartStatus = next.CartStatus
	cart.UpdatedAt = next.UpdatedAt

	c.record(func() { c.s.carts[prev.ID] = prev })

	return nil
}

func (c *Carts) DeleteCart(_ context.Context, cartID uint) error {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	cart, ok := c.s.carts[cartID]
	if !ok {
		return store.ErrNotFound
	}

	removed := c.s.itemsOf(cartID)
	for _, it := range removed {
		delete(c.s.items, it.ID)
	}
	delete(c.s.carts, cartID)

	c.record(func() {
		c.s.carts[cart.ID] = cart
		for _, it := range removed {
			c.s.items[it.ID] = it
		}
	})

	return nil
}

func (c *Carts) FindItem(_ context.Context, cartID, variantID uint) (*models.CartItem, error) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	for _, it := range c.s.itemsOf(cartID) {
		if it.ProductVariantID == variantID {
			return &it, nil
		}
	}

	return nil, store.ErrNotFound
}

func (c *Carts) FindItemByID(_ context.Context, itemID uint) (*models.CartItem, error) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	if c.s.ReloadErr != nil {
		return nil, c.s.ReloadErr
	}

	it, ok := c.s.items[itemID]
	if !ok {
		return nil, store.ErrNotFound
	}

	return &it, nil
}

func (c *Carts) CreateItem(_ context.Context, item *models.CartItem) error {
	if hook := c.s.BeforeCreateItem; hook != nil {
		hook()
	}

	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	for _, other := range c.s.items {
		if other.CartID == item.CartID && other.ProductVariantID == item.ProductVariantID {
			return store.ErrDuplicate
		}
	}

	now := c.s.tick()
	item.ID = c.s.id()
	item.CreatedAt = now
	item.UpdatedAt = now
	c.s.items[item.ID] = *item

	id := item.ID
	c.record(func() { delete(c.s.items, id) })

	return nil
}

func (c *Carts) IncrementItem(_ context.Context, itemID uint, quantity int) error {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	prev, ok := c.s.items[itemID]
	if !ok {
		return store.ErrNotFound
	}

	next := prev
	next.Quantity += quantity
	next.UpdatedAt = c.s.tick()
	c.s.items[itemID] = next

	c.record(func() { c.s.items[prev.ID] = prev })

	return nil
}

// ListItemViews drops lines whose variant is unknown or has no image, like
// the inner join in the SQL store.
func (c *Carts) ListItemViews(_ context.Context, cartID uint) ([]models.CartItemView, error) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	views := []models.CartItemView{}
	for _, it := range c.s.itemsOf(cartID) {
		v, ok := c.s.variants[it.ProductVariantID]
		if !ok || v.ImageURL == "" {
			continue
		}

		v.ID = it.ID
		v.CartID = it.CartID
		v.Quantity = it.Quantity
		v.Price = it.Price
		views = append(views, v)
	}

	return views, nil
}

func (c *Carts) SumQuantity(_ context.Context, cartID uint) (int64, error) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	if c.s.SumErr != nil {
		return 0, c.s.SumErr
	}

	var total int64
	for _, it := range c.s.itemsOf(cartID) {
		total += int64(it.Quantity)
	}

	return total, nil
}
