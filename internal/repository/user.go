package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Skotchmaster/auction-api/internal/models"
)

type UserRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{db: db}
}

// GraphByID loads a user together with the two-level relation graph the
// profile page needs: the user's products with their bids, and the
// user's bids with their product and that product's full bid list.
// Each Preload path is fetched as one batched query per level, so the
// depth never turns into per-row round trips.
func (r *UserRepo) GraphByID(ctx context.Context, id uint) (*models.User, error) {
	user := models.User{}
	if err := r.db.WithContext(ctx).
		Preload("Products.Bids").
		Preload("Bids.Product.Bids").
		First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepo) ByUsername(ctx context.Context, username string) (*models.User, error) {
	user := models.User{}
	if err := r.db.WithContext(ctx).
		Where("username = ?", username).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepo) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}
