package handlers

import (
	"github.com/gofiber/fiber/v2"

	"sutradhar/internal/log"
	"sutradhar/internal/services"
	"sutradhar/internal/validate"
)

type CartHandler struct {
	Cart *services.CartService
	Auth *services.AuthService
}

// userID resolves the current user without requiring one. The cart view is
// public: no session means an empty cart, not a 401.
func (h *CartHandler) userID(c *fiber.Ctx) string {
	if sess := session(c); sess != nil {
		return sess.User.ID
	}
	if sid := c.Cookies("sid"); sid != "" {
		if sess, err := h.Auth.Current(sid); err == nil && sess != nil {
			return sess.User.ID
		}
	}
	return ""
}

func (h *CartHandler) View(c *fiber.Ctx) error {
	cv, err := h.Cart.View(h.userID(c))
	if err != nil {
		return jsonError(c, 500, "could not load cart")
	}
	return c.JSON(cv)
}

type addCartReq struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"gte=0,lte=50"`
}

func (h *CartHandler) Add(c *fiber.Ctx) error {
	var req addCartReq
	if err := parseBody(c, &req); err != nil {
		return jsonError(c, 400, err.Error())
	}
	sess := session(c)
	if err := h.Cart.Add(sess.User.ID, req.ProductID, req.Quantity); err != nil {
		return jsonError(c, 400, "could not add to cart")
	}
	log.Info(c, "cart.add", map[string]any{"user": sess.User.ID, "product": req.ProductID})
	return h.View(c)
}

type qtyReq struct {
	Quantity int `json:"quantity" validate:"lte=50"`
}

func (h *CartHandler) UpdateQuantity(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonError(c, 400, "invalid cart line id")
	}
	var req qtyReq
	if err := parseBody(c, &req); err != nil {
		return jsonError(c, 400, err.Error())
	}
	sess := session(c)
	if err := h.Cart.UpdateQuantity(sess.User.ID, id, req.Quantity); err != nil {
		return jsonError(c, 500, "could not update cart")
	}
	return h.View(c)
}

func (h *CartHandler) Remove(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonError(c, 400, "invalid cart line id")
	}
	sess := session(c)
	if err := h.Cart.Remove(sess.User.ID, id); err != nil {
		return jsonError(c, 500, "could not update cart")
	}
	return h.View(c)
}

func (h *CartHandler) Clear(c *fiber.Ctx) error {
	sess := session(c)
	if err := h.Cart.Clear(sess.User.ID); err != nil {
		return jsonError(c, 500, "could not clear cart")
	}
	return h.View(c)
}
