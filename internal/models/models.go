package models

import (
	"time"
)

type User struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string    `gorm:"unique;not null"          json:"username"`
	PasswordHash string    `gorm:"not null"                 json:"-"`
	Admin        bool      `gorm:"not null;default:false"   json:"admin"`
	Products     []Product `gorm:"foreignKey:SellerID"      json:"products,omitempty"`
	Bids         []Bid     `gorm:"foreignKey:BidderID"      json:"bids,omitempty"`
}

type Product struct {
	ID            uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name          string    `gorm:"not null"                 json:"name"`
	Description   string    `json:"description"`
	Category      string    `gorm:"not null"                 json:"category"`
	OriginalPrice float64   `gorm:"not null"                 json:"originalPrice"`
	PictureURL    string    `gorm:"column:picture_url"       json:"pictureUrl"`
	EndDate       time.Time `gorm:"not null"                 json:"endDate"`
	SellerID      uint      `gorm:"index;not null"           json:"sellerId"`
	Seller        *User     `gorm:"foreignKey:SellerID"      json:"seller,omitempty"`
	Bids          []Bid     `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"bids,omitempty"`
}

type Bid struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Price     float64   `gorm:"not null"                 json:"price"`
	Date      time.Time `gorm:"not null"                 json:"date"`
	ProductID uint      `gorm:"index;not null"           json:"productId"`
	BidderID  uint      `gorm:"index;not null"           json:"bidderId"`
	Product   *Product  `gorm:"foreignKey:ProductID"     json:"product,omitempty"`
	Bidder    *User     `gorm:"foreignKey:BidderID"      json:"bidder,omitempty"`
}
