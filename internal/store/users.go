package store

import (
	"context"

	"github.com/monocle-dev/storefront/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserStore struct {
	db *gorm.DB
}

func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{db: db}
}

func (s *UserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User

	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, translate(err, "find user by email")
	}

	return &user, nil
}

func (s *UserStore) FindByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User

	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, translate(err, "find user")
	}

	return &user, nil
}

func (s *UserStore) List(ctx context.Context) ([]models.User, error) {
	var users []models.User

	if err := s.db.WithContext(ctx).Order("id").Find(&users).Error; err != nil {
		return nil, translate(err, "list users")
	}

	return users, nil
}

func (s *UserStore) Create(ctx context.Context, user *models.User) error {
	err := s.db.WithContext(ctx).Omit(clause.Associations).Create(user).Error
	return translate(err, "create user")
}

func (s *UserStore) Save(ctx context.Context, user *models.User) error {
	err := s.db.WithContext(ctx).Omit(clause.Associations).Save(user).Error
	return translate(err, "save user")
}
