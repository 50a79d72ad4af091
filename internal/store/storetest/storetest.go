// Package storetest provides in-memory implementations of the store
// repositories for tests. Uniqueness rules mirror the database constraints
// and transactions roll back through an undo log, so writes made by a
// simulated concurrent request survive a rollback.
package storetest

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/monocle-dev/storefront/internal/models"
	"github.com/monocle-dev/storefront/internal/store"
)

type Store struct {
	mu       sync.Mutex
	txMu     sync.Mutex // serializes transactions, standing in for row locks
	nextID   uint
	clock    time.Time
	users    map[uint]models.User
	carts    map[uint]models.Cart
	items    map[uint]models.CartItem
	variants map[uint]models.CartItemView

	// Fault injection. Hooks run before the uniqueness check of the
	// matching insert and may call the Seed methods to simulate a
	// competing request.
	BeforeCreateCart func()
	BeforeCreateItem func()
	ReloadErr        error
	SumErr           error

	Commits   int
	Rollbacks int
}

func New() *Store {
	return &Store{
		clock:    time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		users:    map[uint]models.User{},
		carts:    map[uint]models.Cart{},
		items:    map[uint]models.CartItem{},
		variants: map[uint]models.CartItemView{},
	}
}

// tick must be called with mu held. Every write moves the clock forward so
// timestamp changes are observable.
func (s *Store) tick() time.Time {
	s.clock = s.clock.Add(time.Second)
	return s.clock
}

func (s *Store) id() uint {
	s.nextID++
	return s.nextID
}

func (s *Store) Users() *Users {
	return &Users{s: s}
}

func (s *Store) Carts() *Carts {
	return &Carts{s: s}
}

// SeedUser stores u as-is apart from id and timestamps.
func (s *Store) SeedUser(u models.User) *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	u.ID = s.id()
	u.CreatedAt = s.tick()
	u.UpdatedAt = u.CreatedAt
	s.users[u.ID] = u

	return &u
}

func (s *Store) DeleteUser(id uint) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.users, id)
}

// SeedCart inserts a cart outside of any transaction.
func (s *Store) SeedCart(userID uint, status string) *models.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.tick()
	cart := models.Cart{UserID: userID, CartStatus: status}
	cart.ID = s.id()
	cart.CreatedAt = now
	cart.UpdatedAt = now
	s.carts[cart.ID] = cart

	return &cart
}

// SeedItem inserts a cart line outside of any transaction.
func (s *Store) SeedItem(item models.CartItem) *models.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.tick()
	item.ID = s.id()
	item.CreatedAt = now
	item.UpdatedAt = now
	s.items[item.ID] = item

	return &item
}

// SeedVariant registers the catalog data joined into cart item views. An
// empty imageURL means the variant has no primary image.
func (s *Store) SeedVariant(variantID uint, productName, imageURL, color, size string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.variants[variantID] = models.CartItemView{
		ProductVariantID: variantID,
		ProductName:      productName,
		ImageURL:         imageURL,
		Color:            color,
		Size:             size,
	}
}

// CartsOf returns every cart of the user, ordered by id.
func (s *Store) CartsOf(userID uint) []models.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.Cart
	for _, c := range s.carts {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out
}

// ItemsOf returns every line of the cart, ordered by id.
func (s *Store) ItemsOf(cartID uint) []models.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.itemsOf(cartID)
}

func (s *Store) itemsOf(cartID uint) []models.CartItem {
	var out []models.CartItem
	for _, it := range s.items {
		if it.CartID == cartID {
			out = append(out, it)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out
}

type Users struct {
	s *Store
}

var _ store.UserRepository = (*Users)(nil)

func (u *Users) FindByEmail(_ context.Context, email string) (*models.User, error) {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()

	for _, user := range u.s.users {
		if user.Email == email {
			found := user
			return &found, nil
		}
	}

	return nil, store.ErrNotFound
}

func (u *Users) FindByID(_ context.Context, id uint) (*models.User, error) {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()

	user, ok := u.s.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}

	return &user, nil
}

func (u *Users) List(_ context.Context) ([]models.User, error) {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()

	out := make([]models.User, 0, len(u.s.users))
	for _, user := range u.s.users {
		out = append(out, user)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out, nil
}

func (u *Users) Create(_ context.Context, user *models.User) error {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()

	if u.emailTaken(user.Email, 0) {
		return store.ErrDuplicate
	}

	user.ID = u.s.id()
	user.CreatedAt = u.s.tick()
	user.UpdatedAt = user.CreatedAt
	u.s.users[user.ID] = *user

	return nil
}

func (u *Users) Save(_ context.Context, user *models.User) error {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()

	if u.emailTaken(user.Email, user.ID) {
		return store.ErrDuplicate
	}

	user.UpdatedAt = u.s.tick()
	u.s.users[user.ID] = *user

	return nil
}

func (u *Users) emailTaken(email string, except uint) bool {
	for id, other := range u.s.users {
		if id != except && other.Email == email {
			return true
		}
	}

	return false
}
