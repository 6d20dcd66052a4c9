package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"

	"bookstore/internal/metrics"
	"bookstore/internal/middleware"
)

type Deps struct {
	AuthHandler   *AuthHTTP
	BookHandler   *BookHTTP
	CartHandler   *CartHTTP
	OrderHandler  *OrderHTTP
	ReviewHandler *ReviewHTTP
	SearchHandler *SearchHTTP
	AdminHandler  *AdminHTTP

	Metrics   *metrics.Metrics
	JWTSecret []byte
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	if d.Metrics != nil {
		e.GET("/metrics", echo.WrapHandler(d.Metrics.Handler()))
	}

	authMW := middleware.NewAuth(d.JWTSecret)

	// Credential endpoints are rate limited; everything else is not.
	creds := e.Group("/auth", middleware.RateLimit(rate.Limit(5), 10))
	creds.POST("/register", d.AuthHandler.Register)
	creds.POST("/login", d.AuthHandler.Login)
	creds.POST("/refresh", d.AuthHandler.Refresh)

	e.GET("/books", d.BookHandler.ListBooks)
	e.GET("/books/:isbn", d.BookHandler.GetBook)
	e.GET("/search", d.SearchHandler.Search)

	authed := e.Group("", authMW.RequireAuth)
	authed.POST("/order", d.OrderHandler.PlaceOrder)

	authed.GET("/cart", d.CartHandler.GetCart)
	authed.POST("/cart", d.CartHandler.AddToCart)
	authed.DELETE("/cart/:isbn", d.CartHandler.RemoveFromCart)
	authed.GET("/cart/check", d.CartHandler.CheckInCart)

	authed.POST("/books/:isbn/reviews", d.ReviewHandler.AddReview)
	authed.GET("/books/:isbn/reviews/status", d.ReviewHandler.ReviewStatus)
	authed.GET("/reviews", d.ReviewHandler.MyReviews)

	admin := e.Group("/admin", authMW.RequireAdmin)
	admin.POST("/books", d.AdminHandler.CreateBook)
	admin.PUT("/books/:isbn", d.AdminHandler.UpdateBook)
	admin.DELETE("/books/:isbn", d.AdminHandler.DeleteBook)
}
