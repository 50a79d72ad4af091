package services

import (
	"context"
	"sync"
	"testing"

	"github.com/monocle-dev/storefront/internal/models"
	"github.com/monocle-dev/storefront/internal/store/storetest"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingNotifier struct {
	mu     sync.Mutex
	events [][2]uint
}

func (n *recordingNotifier) CartChanged(userID, cartID uint) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.events = append(n.events, [2]uint{userID, cartID})
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()

	return len(n.events)
}

func setupCarts(t *testing.T) (*CartService, *storetest.Store, *recordingNotifier) {
	t.Helper()

	db := storetest.New()
	notifier := &recordingNotifier{}

	return NewCartService(db.Carts(), notifier), db, notifier
}

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestGetActiveCart(t *testing.T) {
	carts, db, _ := setupCarts(t)
	ctx := context.Background()
	alice := db.SeedUser(models.User{Email: "alice@example.com"})

	t.Run("None yet", func(t *testing.T) {
		cart, found, err := carts.GetActiveCart(ctx, alice)

		require.NoError(t, err)
		assert.False(t, found)
		assert.Nil(t, cart)
	})

	t.Run("Ignores inactive carts", func(t *testing.T) {
		db.SeedCart(alice.ID, models.CartStatusInactive)

		_, found, err := carts.GetActiveCart(ctx, alice)

		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("Finds the active cart", func(t *testing.T) {
		seeded := db.SeedCart(alice.ID, models.CartStatusActive)

		cart, found, err := carts.GetActiveCart(ctx, alice)

		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, seeded.ID, cart.ID)
	})
}

func TestCreateCartIsIdempotent(t *testing.T) {
	carts, db, notifier := setupCarts(t)
	ctx := context.Background()
	alice := db.SeedUser(models.User{Email: "alice@example.com"})

	first, created, err := carts.CreateCart(ctx, alice)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, models.CartStatusActive, first.CartStatus)

	second, created, err := carts.CreateCart(ctx, alice)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)

	assert.Len(t, db.CartsOf(alice.ID), 1)
	assert.Equal(t, 1, notifier.count())
}

func TestCreateCartRetriesAfterLosingRace(t *testing.T) {
	carts, db, _ := setupCarts(t)
	ctx := context.Background()
	alice := db.SeedUser(models.User{Email: "alice@example.com"})

	var winner *models.Cart
	db.BeforeCreateCart = func() {
		if winner == nil {
			winner = db.SeedCart(alice.ID, models.CartStatusActive)
		}
	}

	cart, created, err := carts.CreateCart(ctx, alice)

	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, winner.ID, cart.ID)
	assert.Len(t, db.CartsOf(alice.ID), 1)
	assert.Equal(t, 1, db.Rollbacks)
}

func TestAddOrAccumulate(t *testing.T) {
	carts, db, _ := setupCarts(t)
	ctx := context.Background()
	alice := db.SeedUser(models.User{Email: "alice@example.com"})
	cart := db.SeedCart(alice.ID, models.CartStatusActive)

	first, err := carts.AddOrAccumulate(ctx, alice, AddItem{
		CartID: &cart.ID, VariantID: 7, Quantity: 2, Price: price("9.99"),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, first.Quantity)

	second, err := carts.AddOrAccumulate(ctx, alice, AddItem{
		CartID: &cart.ID, VariantID: 7, Quantity: 3, Price: price("11.00"),
	})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 5, second.Quantity)
	assert.True(t, second.Price.Equal(price("9.99")), "price of an existing line is kept, got %s", second.Price)

	items := db.ItemsOf(cart.ID)
	require.Len(t, items, 1)
	assert.Equal(t, 5, items[0].Quantity)
}

func TestAddOrAccumulateImplicitCart(t *testing.T) {
	carts, db, notifier := setupCarts(t)
	ctx := context.Background()
	alice := db.SeedUser(models.User{Email: "alice@example.com"})

	item, err := carts.AddOrAccumulate(ctx, alice, AddItem{
		VariantID: 42, Quantity: 1, Price: price("19.99"),
	})
	require.NoError(t, err)

	active, found, err := carts.GetActiveCart(ctx, alice)
	require.NoError(t, err)
	require.True(t, found)

	assert.Equal(t, active.ID, item.CartID)
	assert.Equal(t, uint(42), item.ProductVariantID)
	assert.Equal(t, 1, item.Quantity)
	assert.True(t, item.Price.Equal(price("19.99")))
	assert.Len(t, db.CartsOf(alice.ID), 1)
	assert.Equal(t, 1, notifier.count())

	_, err = carts.AddOrAccumulate(ctx, alice, AddItem{VariantID: 42, Quantity: 4, Price: price("19.99")})
	require.NoError(t, err)

	assert.Len(t, db.CartsOf(alice.ID), 1)
	count, err := carts.CountItems(ctx, active.ID, alice)
	require.NoError(t, err)
	assert.Equal(t, int64(5), count)
}

func TestAddOrAccumulateRetriesAfterLosingRace(t *testing.T) {
	carts, db, _ := setupCarts(t)
	ctx := context.Background()
	alice := db.SeedUser(models.User{Email: "alice@example.com"})
	cart := db.SeedCart(alice.ID, models.CartStatusActive)

	raced := false
	db.BeforeCreateItem = func() {
		if !raced {
			raced = true
			db.SeedItem(models.CartItem{CartID: cart.ID, ProductVariantID: 7, Quantity: 2, Price: price("9.99")})
		}
	}

	item, err := carts.AddOrAccumulate(ctx, alice, AddItem{
		CartID: &cart.ID, VariantID: 7, Quantity: 3, Price: price("11.00"),
	})

	require.NoError(t, err)
	assert.Equal(t, 5, item.Quantity)
	assert.True(t, item.Price.Equal(price("9.99")))
	assert.Len(t, db.ItemsOf(cart.ID), 1)
	assert.Equal(t, 1, db.Rollbacks)
}

func TestAddOrAccumulateRollsBack(t *testing.T) {
	carts, db, notifier := setupCarts(t)
	ctx := context.Background()
	alice := db.SeedUser(models.User{Email: "alice@example.com"})
	db.ReloadErr = errors.New("connection reset")

	_, err := carts.AddOrAccumulate(ctx, alice, AddItem{VariantID: 42, Quantity: 1, Price: price("19.99")})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "reload cart item")
	assert.Empty(t, db.CartsOf(alice.ID), "implicitly created cart must not survive")
	assert.Equal(t, 1, db.Rollbacks)
	assert.Zero(t, notifier.count())
}

func TestAddOrAccumulateValidation(t *testing.T) {
	carts, db, _ := setupCarts(t)
	ctx := context.Background()
	alice := db.SeedUser(models.User{Email: "alice@example.com"})

	tests := []struct {
		name string
		in   AddItem
	}{
		{"Missing variant", AddItem{Quantity: 1, Price: price("1.00")}},
		{"Zero quantity", AddItem{VariantID: 1, Quantity: 0, Price: price("1.00")}},
		{"Negative quantity", AddItem{VariantID: 1, Quantity: -2, Price: price("1.00")}},
		{"Negative price", AddItem{VariantID: 1, Quantity: 1, Price: price("-0.01")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := carts.AddOrAccumulate(ctx, alice, tt.in)
			assert.ErrorIs(t, err, ErrInvalidArgument)
		})
	}

	assert.Empty(t, db.CartsOf(alice.ID))
}

func TestAddOrAccumulateExplicitCart(t *testing.T) {
	carts, db, _ := setupCarts(t)
	ctx := context.Background()
	alice := db.SeedUser(models.User{Email: "alice@example.com"})
	bob := db.SeedUser(models.User{Email: "bob@example.com"})

	t.Run("Inactive cart", func(t *testing.T) {
		closed := db.SeedCart(alice.ID, models.CartStatusInactive)

		_, err := carts.AddOrAccumulate(ctx, alice, AddItem{CartID: &closed.ID, VariantID: 1, Quantity: 1})

		assert.ErrorIs(t, err, ErrCartInactive)
		assert.Empty(t, db.ItemsOf(closed.ID))
	})

	t.Run("Someone else's cart", func(t *testing.T) {
		bobs := db.SeedCart(bob.ID, models.CartStatusActive)

		_, err := carts.AddOrAccumulate(ctx, alice, AddItem{CartID: &bobs.ID, VariantID: 1, Quantity: 1})

		assert.ErrorIs(t, err, ErrNotFound)
		assert.Empty(t, db.ItemsOf(bobs.ID))
	})
}

func TestCountItems(t *testing.T) {
	carts, db, _ := setupCarts(t)
	ctx := context.Background()
	alice := db.SeedUser(models.User{Email: "alice@example.com"})
	cart := db.SeedCart(alice.ID, models.CartStatusActive)

	count, err := carts.CountItems(ctx, cart.ID, alice)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	db.SeedItem(models.CartItem{CartID: cart.ID, ProductVariantID: 1, Quantity: 2})
	db.SeedItem(models.CartItem{CartID: cart.ID, ProductVariantID: 2, Quantity: 3})

	count, err = carts.CountItems(ctx, cart.ID, alice)
	require.NoError(t, err)
	assert.Equal(t, int64(5), count)
}

func TestListItems(t *testing.T) {
	carts, db, _ := setupCarts(t)
	ctx := context.Background()
	alice := db.SeedUser(models.User{Email: "alice@example.com"})
	cart := db.SeedCart(alice.ID, models.CartStatusActive)

	db.SeedVariant(1, "Linen Shirt", "https://cdn.example.com/shirt.jpg", "Sand", "M")
	db.SeedVariant(2, "Wool Scarf", "", "Grey", "One size")
	db.SeedItem(models.CartItem{CartID: cart.ID, ProductVariantID: 1, Quantity: 2, Price: price("29.90")})
	db.SeedItem(models.CartItem{CartID: cart.ID, ProductVariantID: 2, Quantity: 1, Price: price("15.00")})

	views, err := carts.ListItems(ctx, cart.ID, alice)

	require.NoError(t, err)
	require.Len(t, views, 1, "lines without a primary image are not listed")
	assert.Equal(t, "Linen Shirt", views[0].ProductName)
	assert.Equal(t, 2, views[0].Quantity)
	assert.True(t, views[0].Price.Equal(price("29.90")))
}

func TestCartOwnershipIsolation(t *testing.T) {
	carts, db, _ := setupCarts(t)
	ctx := context.Background()
	alice := db.SeedUser(models.User{Email: "alice@example.com"})
	bob := db.SeedUser(models.User{Email: "bob@example.com"})
	bobs := db.SeedCart(bob.ID, models.CartStatusActive)
	db.SeedItem(models.CartItem{CartID: bobs.ID, ProductVariantID: 1, Quantity: 1})

	_, err := carts.ListItems(ctx, bobs.ID, alice)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = carts.CountItems(ctx, bobs.ID, alice)
	assert.ErrorIs(t, err, ErrNotFound)

	_, _, err = carts.CloseCart(ctx, bobs.ID, alice)
	assert.ErrorIs(t, err, ErrNotFound)

	err = carts.DeleteCart(ctx, bobs.ID, alice)
	assert.ErrorIs(t, err, ErrNotFound)

	remaining := db.CartsOf(bob.ID)
	require.Len(t, remaining, 1)
	assert.Equal(t, models.CartStatusActive, remaining[0].CartStatus)
	assert.Len(t, db.ItemsOf(bobs.ID), 1)
}

func TestCloseCart(t *testing.T) {
	carts, db, notifier := setupCarts(t)
	ctx := context.Background()
	alice := db.SeedUser(models.User{Email: "alice@example.com"})
	cart := db.SeedCart(alice.ID, models.CartStatusActive)

	closed, already, err := carts.CloseCart(ctx, cart.ID, alice)
	require.NoError(t, err)
	assert.False(t, already)
	assert.Equal(t, models.CartStatusInactive, closed.CartStatus)
	assert.True(t, closed.UpdatedAt.After(cart.UpdatedAt))

	again, already, err := carts.CloseCart(ctx, cart.ID, alice)
	require.NoError(t, err)
	assert.True(t, already)
	assert.Equal(t, models.CartStatusInactive, again.CartStatus)
	assert.Equal(t, closed.UpdatedAt, again.UpdatedAt)
	assert.Equal(t, 1, notifier.count())

	_, found, err := carts.GetActiveCart(ctx, alice)
	require.NoError(t, err)
	assert.False(t, found)

	fresh, created, err := carts.CreateCart(ctx, alice)
	require.NoError(t, err)
	assert.True(t, created)
	assert.NotEqual(t, cart.ID, fresh.ID)
}

func TestDeleteCart(t *testing.T) {
	carts, db, _ := setupCarts(t)
	ctx := context.Background()
	alice := db.SeedUser(models.User{Email: "alice@example.com"})
	cart := db.SeedCart(alice.ID, models.CartStatusActive)
	db.SeedItem(models.CartItem{CartID: cart.ID, ProductVariantID: 1, Quantity: 2})

	require.NoError(t, carts.DeleteCart(ctx, cart.ID, alice))

	assert.Empty(t, db.CartsOf(alice.ID))
	assert.Empty(t, db.ItemsOf(cart.ID))

	err := carts.DeleteCart(ctx, cart.ID, alice)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestConcurrentAddsKeepOneActiveCart(t *testing.T) {
	carts, db, _ := setupCarts(t)
	ctx := context.Background()
	alice := db.SeedUser(models.User{Email: "alice@example.com"})

	const workers = 8
	var wg sync.WaitGroup
	errs := make(chan error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := carts.AddOrAccumulate(ctx, alice, AddItem{VariantID: 3, Quantity: 1, Price: price("5.00")})
			errs <- err
		}()
	}

	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}

	active := 0
	for _, c := range db.CartsOf(alice.ID) {
		if c.Active() {
			active++
		}
	}
	assert.Equal(t, 1, active)

	cart, found, err := carts.GetActiveCart(ctx, alice)
	require.NoError(t, err)
	require.True(t, found)

	count, err := carts.CountItems(ctx, cart.ID, alice)
	require.NoError(t, err)
	assert.Equal(t, int64(workers), count)
	assert.Len(t, db.ItemsOf(cart.ID), 1)
}
