package repository

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Skotchmaster/auction-api/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Product{}, &models.Bid{}))
	return db
}

func seedGraph(t *testing.T, db *gorm.DB) (seller, bidder models.User, product models.Product) {
	seller = models.User{Username: "seller", PasswordHash: "x"}
	bidder = models.User{Username: "bidder", PasswordHash: "x"}
	require.NoError(t, db.Create(&seller).Error)
	require.NoError(t, db.Create(&bidder).Error)

	product = models.Product{
		Name:          "lamp",
		Category:      "decoration",
		OriginalPrice: 20,
		EndDate:       time.Now().AddDate(1, 0, 0),
		SellerID:      seller.ID,
	}
	require.NoError(t, db.Create(&product).Error)

	bid := models.Bid{Price: 25, Date: time.Now().UTC(), ProductID: product.ID, BidderID: bidder.ID}
	require.NoError(t, db.Create(&bid).Error)
	return seller, bidder, product
}

func TestProductOwnerID(t *testing.T) {
	db := newTestDB(t)
	seller, _, product := seedGraph(t, db)

	repo := NewProductRepo(db)

	ownerID, err := repo.OwnerID(context.Background(), product.ID)
	require.NoError(t, err)
	require.Equal(t, seller.ID, ownerID)

	_, err = repo.OwnerID(context.Background(), 999)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestProductDeleteRemovesBids(t *testing.T) {
	db := newTestDB(t)
	_, _, product := seedGraph(t, db)

	repo := NewProductRepo(db)
	require.NoError(t, repo.Delete(context.Background(), product.ID))

	var bidCount int64
	require.NoError(t, db.Model(&models.Bid{}).Count(&bidCount).Error)
	require.Zero(t, bidCount)

	// second delete loses the race
	require.ErrorIs(t, repo.Delete(context.Background(), product.ID), gorm.ErrRecordNotFound)
}

func TestBidDeleteMissing(t *testing.T) {
	db := newTestDB(t)
	repo := NewBidRepo(db)

	require.ErrorIs(t, repo.Delete(context.Background(), 123), gorm.ErrRecordNotFound)
}

func TestUserGraphByID(t *testing.T) {
	db := newTestDB(t)
	seller, bidder, product := seedGraph(t, db)

	// a second bid so the nested product carries a full bid list
	require.NoError(t, db.Create(&models.Bid{
		Price: 30, Date: time.Now().UTC(), ProductID: product.ID, BidderID: seller.ID,
	}).Error)

	repo := NewUserRepo(db)

	graph, err := repo.GraphByID(context.Background(), bidder.ID)
	require.NoError(t, err)
	require.Empty(t, graph.Products)
	require.Len(t, graph.Bids, 1)
	require.NotNil(t, graph.Bids[0].Product)
	require.Equal(t, product.ID, graph.Bids[0].Product.ID)
	require.Len(t, graph.Bids[0].Product.Bids, 2)

	sellerGraph, err := repo.GraphByID(context.Background(), seller.ID)
	require.NoError(t, err)
	require.Len(t, sellerGraph.Products, 1)
	require.Len(t, sellerGraph.Products[0].Bids, 2)

	_, err = repo.GraphByID(context.Background(), 999)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
