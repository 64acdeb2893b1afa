package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/Skotchmaster/auction-api/internal/auth"
	"github.com/Skotchmaster/auction-api/internal/logging"
	"github.com/Skotchmaster/auction-api/internal/models"
	"github.com/Skotchmaster/auction-api/internal/mykafka"
	"github.com/Skotchmaster/auction-api/internal/repository"
	"github.com/Skotchmaster/auction-api/internal/validation"
)

type BidHandler struct {
	Bids     *repository.BidRepo
	Products *repository.ProductRepo
	Producer *mykafka.Producer
}

// CreateBidRequest deliberately has a single field: date and bidderId
// are server-assigned, whatever the client sends for them is dropped
// at bind time.
type CreateBidRequest struct {
	Price float64 `json:"price" validate:"required,gt=0"`
}

func (h *BidHandler) publish(c echo.Context, event map[string]any) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, "bid_events", fmt.Sprint(event["bidID"]), event); err != nil {
		c.Logger().Errorf("Kafka publish error: %v", err)
	}
}

func (h *BidHandler) CreateBid(c echo.Context) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing principal")
	}

	productID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return badRequest(c, "product id must be an integer")
	}

	var req CreateBidRequest
	if err := c.Bind(&req); err != nil {
		return invalidFields(c, []string{"request body must be valid JSON"})
	}
	if err := c.Validate(&req); err != nil {
		return invalidFields(c, validation.Details(err))
	}

	ctx := c.Request().Context()

	// Existence check only, the owner id is not used here: anyone may
	// bid, including the seller.
	if _, err := h.Products.OwnerID(ctx, uint(productID)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound(c, "product not found")
		}
		return internalError(c, "cannot load product")
	}

	bid := models.Bid{
		Price:     req.Price,
		Date:      time.Now().UTC(),
		ProductID: uint(productID),
		BidderID:  principal.ID,
	}

	if err := h.Bids.Create(ctx, &bid); err != nil {
		logging.FromContext(ctx).Error("create_bid_failed", "product_id", productID, "error", err)
		return internalError(c, "cannot create bid")
	}

	// Re-read so the response carries the row as stored, including any
	// column defaults or coercions applied by the database.
	saved, err := h.Bids.ByID(ctx, bid.ID)
	if err != nil {
		return internalError(c, "cannot load created bid")
	}

	h.publish(c, map[string]any{
		"type":      "bid_placed",
		"bidID":     saved.ID,
		"productID": saved.ProductID,
		"bidderID":  saved.BidderID,
		"price":     saved.Price,
	})

	return c.JSON(http.StatusCreated, newBidResponse(saved))
}

func (h *BidHandler) DeleteBid(c echo.Context) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing principal")
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return badRequest(c, "bid id must be an integer")
	}

	ctx := c.Request().Context()

	bidderID, err := h.Bids.OwnerID(ctx, uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound(c, "bid not found")
		}
		return internalError(c, "cannot load bid")
	}
	if bidderID != principal.ID && !principal.Admin {
		return forbidden(c)
	}

	if err := h.Bids.Delete(ctx, uint(id)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound(c, "bid not found")
		}
		return internalError(c, "cannot delete bid")
	}

	h.publish(c, map[string]any{
		"type":  "bid_deleted",
		"bidID": uint(id),
	})

	return c.NoContent(http.StatusNoContent)
}
