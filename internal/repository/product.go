package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Skotchmaster/auction-api/internal/models"
)

type ProductRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) *ProductRepo {
	return &ProductRepo{db: db}
}

// List loads every product with its seller and bids in three batched
// queries, one per relation.
func (r *ProductRepo) List(ctx context.Context) ([]models.Product, error) {
	var items []models.Product
	if err := r.db.WithContext(ctx).
		Preload("Seller").
		Preload("Bids").
		Order("id ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// ByID loads one product with its seller and its bids, each bid
// carrying its bidder.
func (r *ProductRepo) ByID(ctx context.Context, id uint) (*models.Product, error) {
	product := models.Product{}
	if err := r.db.WithContext(ctx).
		Preload("Seller").
		Preload("Bids.Bidder").
		First(&product, id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// Get loads a bare product row, no relations. Used by the update path
// after the ownership check has passed.
func (r *ProductRepo) Get(ctx context.Context, id uint) (*models.Product, error) {
	product := models.Product{}
	if err := r.db.WithContext(ctx).First(&product, id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// OwnerID reads only the ownership columns, enough for the
// owner-or-admin check without loading the whole row.
func (r *ProductRepo) OwnerID(ctx context.Context, id uint) (uint, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).
		Select("id", "seller_id").
		First(&product, id).Error; err != nil {
		return 0, err
	}
	return product.SellerID, nil
}

func (r *ProductRepo) Create(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *ProductRepo) Save(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

// Delete removes the product and its bids in one transaction. A delete
// that races another one loses with gorm.ErrRecordNotFound.
func (r *ProductRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", id).Delete(&models.Bid{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Product{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
