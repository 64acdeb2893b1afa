package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/Skotchmaster/auction-api/internal/auth"
	"github.com/Skotchmaster/auction-api/internal/logging"
	"github.com/Skotchmaster/auction-api/internal/models"
	"github.com/Skotchmaster/auction-api/internal/mykafka"
	"github.com/Skotchmaster/auction-api/internal/repository"
	"github.com/Skotchmaster/auction-api/internal/service/search"
	"github.com/Skotchmaster/auction-api/internal/validation"
)

type ProductHandler struct {
	Products *repository.ProductRepo
	Producer *mykafka.Producer
	ES       *elasticsearch.Client
	ESIndex  string
}

type CreateProductRequest struct {
	Name          string  `json:"name" validate:"required"`
	Description   string  `json:"description"`
	Category      string  `json:"category" validate:"required"`
	OriginalPrice float64 `json:"originalPrice" validate:"required,gt=0"`
	PictureURL    string  `json:"pictureUrl"`
	EndDate       string  `json:"endDate" validate:"required"`
}

// UpdateProductRequest carries only the mutable columns; sellerId and
// id have no field here, so a client cannot reassign ownership through
// the update path.
type UpdateProductRequest struct {
	Name          *string  `json:"name"`
	Description   *string  `json:"description"`
	Category      *string  `json:"category"`
	OriginalPrice *float64 `json:"originalPrice" validate:"omitempty,gt=0"`
	PictureURL    *string  `json:"pictureUrl"`
	EndDate       *string  `json:"endDate"`
}

// parseDate accepts RFC3339 or a bare date, which is what frontends
// send for endDate.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

func (h *ProductHandler) publish(c echo.Context, event map[string]any) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, "product_events", fmt.Sprint(event["productID"]), event); err != nil {
		c.Logger().Errorf("Kafka publish error: %v", err)
	}
}

func (h *ProductHandler) reindex(c echo.Context, product *models.Product) {
	if h.ES == nil {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := search.IndexProduct(ctx, h.ES, h.ESIndex, product); err != nil {
		c.Logger().Errorf("ES index error: %v", err)
	}
}

func (h *ProductHandler) deindex(c echo.Context, id uint) {
	if h.ES == nil {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := search.DeleteProduct(ctx, h.ES, h.ESIndex, id); err != nil {
		c.Logger().Errorf("ES delete error: %v", err)
	}
}

func (h *ProductHandler) GetProducts(c echo.Context) error {
	ctx := c.Request().Context()
	products, err := h.Products.List(ctx)
	if err != nil {
		logging.FromContext(ctx).Error("list_products_failed", "error", err)
		return internalError(c, "cannot list products")
	}

	items := make([]ProductListItem, 0, len(products))
	for i := range products {
		items = append(items, newProductListItem(&products[i]))
	}
	return c.JSON(http.StatusOK, items)
}

func (h *ProductHandler) GetProduct(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return badRequest(c, "product id must be an integer")
	}

	product, err := h.Products.ByID(c.Request().Context(), uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound(c, "product not found")
		}
		return internalError(c, "cannot get product")
	}

	return c.JSON(http.StatusOK, newProductDetail(product))
}

func (h *ProductHandler) CreateProduct(c echo.Context) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing principal")
	}

	var req CreateProductRequest
	if err := c.Bind(&req); err != nil {
		return invalidFields(c, []string{"request body must be valid JSON"})
	}
	if err := c.Validate(&req); err != nil {
		return invalidFields(c, validation.Details(err))
	}

	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return invalidFields(c, []string{"endDate must be a valid date"})
	}

	product := models.Product{
		Name:          req.Name,
		Description:   req.Description,
		Category:      req.Category,
		OriginalPrice: req.OriginalPrice,
		PictureURL:    req.PictureURL,
		EndDate:       endDate,
		SellerID:      principal.ID,
	}

	if err := h.Products.Create(c.Request().Context(), &product); err != nil {
		logging.FromContext(c.Request().Context()).Error("create_product_failed", "error", err)
		return internalError(c, "cannot create product")
	}

	h.publish(c, map[string]any{
		"type":      "product_created",
		"productID": product.ID,
		"sellerID":  product.SellerID,
		"name":      product.Name,
	})
	h.reindex(c, &product)

	return c.JSON(http.StatusCreated, newProductResponse(&product))
}

func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing principal")
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return badRequest(c, "product id must be an integer")
	}

	var req UpdateProductRequest
	if err := c.Bind(&req); err != nil {
		return invalidFields(c, []string{"request body must be valid JSON"})
	}

	ctx := c.Request().Context()

	ownerID, err := h.Products.OwnerID(ctx, uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound(c, "product not found")
		}
		return internalError(c, "cannot load product")
	}
	if ownerID != principal.ID && !principal.Admin {
		return forbidden(c)
	}

	if err := c.Validate(&req); err != nil {
		return invalidFields(c, validation.Details(err))
	}

	product, err := h.Products.Get(ctx, uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound(c, "product not found")
		}
		return internalError(c, "cannot load product")
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Category != nil {
		product.Category = *req.Category
	}
	if req.OriginalPrice != nil {
		product.OriginalPrice = *req.OriginalPrice
	}
	if req.PictureURL != nil {
		product.PictureURL = *req.PictureURL
	}
	if req.EndDate != nil {
		endDate, err := parseDate(*req.EndDate)
		if err != nil {
			return invalidFields(c, []string{"endDate must be a valid date"})
		}
		product.EndDate = endDate
	}

	if err := h.Products.Save(ctx, product); err != nil {
		return internalError(c, "cannot update product")
	}

	h.publish(c, map[string]any{
		"type":      "product_updated",
		"productID": product.ID,
		"name":      product.Name,
	})
	h.reindex(c, product)

	return c.JSON(http.StatusOK, newProductResponse(product))
}

func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing principal")
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return badRequest(c, "product id must be an integer")
	}

	ctx := c.Request().Context()

	ownerID, err := h.Products.OwnerID(ctx, uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound(c, "product not found")
		}
		return internalError(c, "cannot load product")
	}
	if ownerID != principal.ID && !principal.Admin {
		return forbidden(c)
	}

	if err := h.Products.Delete(ctx, uint(id)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound(c, "product not found")
		}
		return internalError(c, "cannot delete product")
	}

	h.publish(c, map[string]any{
		"type":      "product_deleted",
		"productID": uint(id),
	})
	h.deindex(c, uint(id))

	return c.NoContent(http.StatusNoContent)
}
