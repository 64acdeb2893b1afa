package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Skotchmaster/auction-api/internal/models"
)

type BidRepo struct {
	db *gorm.DB
}

func NewBidRepo(db *gorm.DB) *BidRepo {
	return &BidRepo{db: db}
}

func (r *BidRepo) Create(ctx context.Context, bid *models.Bid) error {
	return r.db.WithContext(ctx).Create(bid).Error
}

// ByID re-reads a bid after creation so the response reflects
// server-assigned columns.
func (r *BidRepo) ByID(ctx context.Context, id uint) (*models.Bid, error) {
	bid := models.Bid{}
	if err := r.db.WithContext(ctx).First(&bid, id).Error; err != nil {
		return nil, err
	}
	return &bid, nil
}

// OwnerID reads only the ownership columns for the owner-or-admin check.
func (r *BidRepo) OwnerID(ctx context.Context, id uint) (uint, error) {
	var bid models.Bid
	if err := r.db.WithContext(ctx).
		Select("id", "bidder_id").
		First(&bid, id).Error; err != nil {
		return 0, err
	}
	return bid.BidderID, nil
}

func (r *BidRepo) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Bid{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
