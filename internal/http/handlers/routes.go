package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	applog "sutradhar/internal/log"
)

// Register mounts the versioned JSON API.
func Register(app *fiber.App, deps *Deps) {
	api := app.Group("/api/v1")

	// Catalog (public)
	api.Get("/products", deps.CatalogHandler.List)
	api.Get("/products/:id", deps.CatalogHandler.Detail)

	// Auth (login throttled)
	loginLimiter := limiter.New(limiter.Config{
		Max:        5,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "too many attempts, try again later"})
		},
	})
	api.Post("/auth/signup", deps.AuthHandler.Signup)
	api.Post("/auth/login", loginLimiter, deps.AuthHandler.Login)
	api.Post("/auth/logout", deps.AuthHandler.Logout)
	api.Get("/auth/me", deps.AuthHandler.Me)
	api.Post("/auth/role", RequireUser(deps.Auth), deps.AuthHandler.SwitchRole)

	// Cart: the view is public (empty cart without a session), mutations are not.
	api.Get("/cart", deps.CartHandler.View)
	api.Post("/cart", RequireUser(deps.Auth), deps.CartHandler.Add)
	api.Patch("/cart/:id", RequireUser(deps.Auth), deps.CartHandler.UpdateQuantity)
	api.Delete("/cart/:id", RequireUser(deps.Auth), deps.CartHandler.Remove)
	api.Delete("/cart", RequireUser(deps.Auth), deps.CartHandler.Clear)

	// Wishlist
	wish := api.Group("/wishlist", RequireUser(deps.Auth))
	wish.Get("/", deps.WishlistHandler.List)
	wish.Post("/", deps.WishlistHandler.Add)
	wish.Delete("/:productId", deps.WishlistHandler.Remove)

	// Checkout & orders
	api.Post("/checkout", RequireUser(deps.Auth), deps.CheckoutHandler.Place)
	api.Post("/offers/apply", RequireUser(deps.Auth), deps.CheckoutHandler.ApplyOffer)
	api.Get("/orders", RequireUser(deps.Auth), deps.CheckoutHandler.History)
	api.Get("/orders/:id", RequireUser(deps.Auth), deps.CheckoutHandler.Detail)

	// Rewards
	api.Get("/rewards", RequireUser(deps.Auth), deps.RewardsHandler.Summary)
	api.Post("/rewards/redeem", RequireUser(deps.Auth), deps.RewardsHandler.Redeem)

	// Custom requests (buyer side)
	reqs := api.Group("/custom-requests", RequireUser(deps.Auth))
	reqs.Get("/", deps.RequestHandler.List)
	reqs.Post("/", deps.RequestHandler.Create)
	reqs.Post("/:id/accept", deps.RequestHandler.Accept)

	// Seller operations
	seller := api.Group("/seller", RequireRole(deps.Auth, "seller", "admin"))
	seller.Get("/products", deps.SellerHandler.Products)
	seller.Post("/products", deps.SellerHandler.CreateProduct)
	seller.Put("/products/:id", deps.SellerHandler.UpdateProduct)
	seller.Get("/orders", deps.SellerHandler.Orders)
	seller.Post("/orders/:id/status", deps.SellerHandler.UpdateOrderStatus)
	seller.Get("/custom-requests", deps.SellerHandler.CustomRequests)
	seller.Post("/custom-requests/:id/quote", deps.SellerHandler.QuoteRequest)

	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(404).JSON(fiber.Map{"error": "not found"})
	})
}
