package httpserver

import (
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/Skotchmaster/auction-api/internal/auth"
	"github.com/Skotchmaster/auction-api/internal/handlers"
)

type Deps struct {
	DB             *gorm.DB
	JWTSecret      []byte
	AuthHandler    *handlers.AuthHandler
	ProductHandler *handlers.ProductHandler
	BidHandler     *handlers.BidHandler
	UserHandler    *handlers.UserHandler
	SearchHandler  *handlers.SearchHandler
	DevHandler     *handlers.DevHandler
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(200) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(200) })

	api := e.Group("/api")

	api.POST("/auth/register", d.AuthHandler.Register)
	api.POST("/auth/login", d.AuthHandler.Login)

	api.GET("/users/:id", d.UserHandler.GetUser)

	api.GET("/products", d.ProductHandler.GetProducts)
	api.GET("/products/search", d.SearchHandler.Search)
	api.GET("/products/:id", d.ProductHandler.GetProduct)

	authed := api.Group("", auth.RequireAuth(d.JWTSecret))

	authed.POST("/products", d.ProductHandler.CreateProduct)
	authed.PUT("/products/:id", d.ProductHandler.UpdateProduct)
	authed.DELETE("/products/:id", d.ProductHandler.DeleteProduct)

	authed.POST("/products/:id/bids", d.BidHandler.CreateBid)
	authed.DELETE("/bids/:id", d.BidHandler.DeleteBid)

	if d.DevHandler != nil {
		api.GET("/dev/reset", d.DevHandler.Reset)
	}
}
