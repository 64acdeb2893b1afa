package handlers

import (
	"time"

	"github.com/Skotchmaster/auction-api/internal/models"
)

// Response projections. Each route returns a fixed subset of entity
// fields, so the shapes live here instead of leaking gorm models with
// their password hashes and association noise into the JSON bodies.

type UserSummary struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

type BidSummary struct {
	ID    uint      `json:"id"`
	Price float64   `json:"price"`
	Date  time.Time `json:"date"`
}

// BidDetail expands a bid with its bidder, used on the product page.
type BidDetail struct {
	BidSummary
	Bidder UserSummary `json:"bidder"`
}

type ProductFields struct {
	ID            uint      `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Category      string    `json:"category"`
	OriginalPrice float64   `json:"originalPrice"`
	PictureURL    string    `json:"pictureUrl"`
	EndDate       time.Time `json:"endDate"`
}

type ProductListItem struct {
	ProductFields
	Seller UserSummary  `json:"seller"`
	Bids   []BidSummary `json:"bids"`
}

type ProductDetail struct {
	ProductFields
	SellerID uint        `json:"sellerId"`
	Seller   UserSummary `json:"seller"`
	Bids     []BidDetail `json:"bids"`
}

type ProductResponse struct {
	ProductFields
	SellerID uint `json:"sellerId"`
}

type BidResponse struct {
	ID        uint      `json:"id"`
	ProductID uint      `json:"productId"`
	Price     float64   `json:"price"`
	Date      time.Time `json:"date"`
	BidderID  uint      `json:"bidderId"`
}

type ProductWithBids struct {
	ProductFields
	Bids []BidSummary `json:"bids"`
}

type UserBid struct {
	BidSummary
	Product ProductWithBids `json:"product"`
}

type UserGraph struct {
	ID       uint              `json:"id"`
	Username string            `json:"username"`
	Admin    bool              `json:"admin"`
	Products []ProductWithBids `json:"products"`
	Bids     []UserBid         `json:"bids"`
}

func newUserSummary(u *models.User) UserSummary {
	if u == nil {
		return UserSummary{}
	}
	return UserSummary{ID: u.ID, Username: u.Username}
}

func newBidSummary(b *models.Bid) BidSummary {
	return BidSummary{ID: b.ID, Price: b.Price, Date: b.Date}
}

func newBidSummaries(bids []models.Bid) []BidSummary {
	out := make([]BidSummary, 0, len(bids))
	for i := range bids {
		out = append(out, newBidSummary(&bids[i]))
	}
	return out
}

func newProductFields(p *models.Product) ProductFields {
	return ProductFields{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		Category:      p.Category,
		OriginalPrice: p.OriginalPrice,
		PictureURL:    p.PictureURL,
		EndDate:       p.EndDate,
	}
}

func newProductListItem(p *models.Product) ProductListItem {
	return ProductListItem{
		ProductFields: newProductFields(p),
		Seller:        newUserSummary(p.Seller),
		Bids:          newBidSummaries(p.Bids),
	}
}

func newProductDetail(p *models.Product) ProductDetail {
	bids := make([]BidDetail, 0, len(p.Bids))
	for i := range p.Bids {
		bids = append(bids, BidDetail{
			BidSummary: newBidSummary(&p.Bids[i]),
			Bidder:     newUserSummary(p.Bids[i].Bidder),
		})
	}
	return ProductDetail{
		ProductFields: newProductFields(p),
		SellerID:      p.SellerID,
		Seller:        newUserSummary(p.Seller),
		Bids:          bids,
	}
}

func newProductResponse(p *models.Product) ProductResponse {
	return ProductResponse{ProductFields: newProductFields(p), SellerID: p.SellerID}
}

func newBidResponse(b *models.Bid) BidResponse {
	return BidResponse{
		ID:        b.ID,
		ProductID: b.ProductID,
		Price:     b.Price,
		Date:      b.Date,
		BidderID:  b.BidderID,
	}
}

func newProductWithBids(p *models.Product) ProductWithBids {
	return ProductWithBids{
		ProductFields: newProductFields(p),
		Bids:          newBidSummaries(p.Bids),
	}
}

func newUserGraph(u *models.User) UserGraph {
	products := make([]ProductWithBids, 0, len(u.Products))
	for i := range u.Products {
		products = append(products, newProductWithBids(&u.Products[i]))
	}

	bids := make([]UserBid, 0, len(u.Bids))
	for i := range u.Bids {
		ub := UserBid{BidSummary: newBidSummary(&u.Bids[i])}
		if u.Bids[i].Product != nil {
			ub.Product = newProductWithBids(u.Bids[i].Product)
		}
		bids = append(bids, ub)
	}

	return UserGraph{
		ID:       u.ID,
		Username: u.Username,
		Admin:    u.Admin,
		Products: products,
		Bids:     bids,
	}
}
