package handlers

import (
	"github.com/gofiber/fiber/v2"

	"sutradhar/internal/services"
	"sutradhar/internal/validate"
)

type WishlistHandler struct {
	Wish *services.WishlistService
}

func (h *WishlistHandler) List(c *fiber.Ctx) error {
	items, err := h.Wish.List(session(c).User.ID)
	if err != nil {
		return jsonError(c, 500, "could not load wishlist")
	}
	return c.JSON(fiber.Map{"items": items})
}

type wishReq struct {
	ProductID string `json:"product_id" validate:"required"`
}

// Add is idempotent: saving an already-saved product is a no-op success.
func (h *WishlistHandler) Add(c *fiber.Ctx) error {
	var req wishReq
	if err := parseBody(c, &req); err != nil {
		return jsonError(c, 400, err.Error())
	}
	if err := h.Wish.Add(session(c).User.ID, req.ProductID); err != nil {
		return jsonError(c, 500, "could not save to wishlist")
	}
	return c.Status(201).JSON(fiber.Map{"ok": true})
}

func (h *WishlistHandler) Remove(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("productId"))
	if !ok {
		return jsonError(c, 400, "invalid product id")
	}
	if err := h.Wish.Remove(session(c).User.ID, id); err != nil {
		return jsonError(c, 500, "could not update wishlist")
	}
	return c.JSON(fiber.Map{"ok": true})
}
