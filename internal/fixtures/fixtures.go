package fixtures

import (
	"time"

	"gorm.io/gorm"

	"github.com/Skotchmaster/auction-api/internal/hash"
	"github.com/Skotchmaster/auction-api/internal/models"
)

// Regenerate wipes the three tables and reseeds a small deterministic
// data set for local frontends and manual testing. Never wire this up
// in production.
func Regenerate(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		session := tx.Session(&gorm.Session{AllowGlobalUpdate: true})
		if err := session.Delete(&models.Bid{}).Error; err != nil {
			return err
		}
		if err := session.Delete(&models.Product{}).Error; err != nil {
			return err
		}
		if err := session.Delete(&models.User{}).Error; err != nil {
			return err
		}

		users := make([]models.User, 0, 3)
		for _, u := range []struct {
			username string
			password string
			admin    bool
		}{
			{"admin", "admin123", true},
			{"alice", "alice123", false},
			{"bob", "bob12345", false},
		} {
			passwordHash, err := hash.HashPassword(u.password)
			if err != nil {
				return err
			}
			users = append(users, models.User{
				Username:     u.username,
				PasswordHash: passwordHash,
				Admin:        u.admin,
			})
		}
		if err := tx.Create(&users).Error; err != nil {
			return err
		}

		endDate := time.Now().AddDate(0, 1, 0).Truncate(time.Second)
		products := []models.Product{
			{
				Name:          "Vintage armchair",
				Description:   "Mid-century armchair, reupholstered",
				Category:      "furniture",
				OriginalPrice: 120,
				PictureURL:    "https://example.com/armchair.jpg",
				EndDate:       endDate,
				SellerID:      users[1].ID,
			},
			{
				Name:          "Road bike",
				Description:   "Aluminium frame, 18 gears",
				Category:      "sport",
				OriginalPrice: 250,
				PictureURL:    "https://example.com/bike.jpg",
				EndDate:       endDate,
				SellerID:      users[2].ID,
			},
		}
		if err := tx.Create(&products).Error; err != nil {
			return err
		}

		now := time.Now().UTC().Truncate(time.Second)
		bids := []models.Bid{
			{Price: 130, Date: now.Add(-2 * time.Hour), ProductID: products[0].ID, BidderID: users[2].ID},
			{Price: 140, Date: now.Add(-1 * time.Hour), ProductID: products[0].ID, BidderID: users[0].ID},
			{Price: 260, Date: now.Add(-30 * time.Minute), ProductID: products[1].ID, BidderID: users[1].ID},
		}
		return tx.Create(&bids).Error
	})
}
