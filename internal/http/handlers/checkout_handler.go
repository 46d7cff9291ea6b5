package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"sutradhar/internal/log"
	"sutradhar/internal/repos"
	"sutradhar/internal/services"
	"sutradhar/internal/validate"
)

type CheckoutHandler struct {
	Checkout *services.CheckoutService
	Orders   *repos.OrderRepo
}

type checkoutReq struct {
	ShippingAddress string `json:"shipping_address" validate:"required,min=10,max=500"`
	PromoCode       string `json:"promo_code"`
}

// Place prices the cart, splits it into one order per seller and commits the
// whole checkout atomically.
func (h *CheckoutHandler) Place(c *fiber.Ctx) error {
	var req checkoutReq
	if err := parseBody(c, &req); err != nil {
		return jsonError(c, 400, "shipping address is required")
	}
	if _, ok := validate.PromoCode(req.PromoCode); !ok {
		return jsonError(c, 400, "invalid promo code")
	}
	sess := session(c)
	receipt, err := h.Checkout.Place(sess.User.ID, req.ShippingAddress, req.PromoCode)
	if err != nil {
		if isCheckoutInput(err) {
			return jsonError(c, 400, err.Error())
		}
		log.Error(c, "checkout.fail", err, map[string]any{"user": sess.User.ID})
		return jsonError(c, 500, "could not place order")
	}
	log.Audit(c, "checkout.placed", map[string]any{
		"user": sess.User.ID, "orders": len(receipt.OrderIDs),
		"total": receipt.Quote.FinalTotal, "points": receipt.PointsEarned,
	})
	return c.Status(201).JSON(receipt)
}

func isCheckoutInput(err error) bool {
	return errors.Is(err, services.ErrEmptyCart) ||
		errors.Is(err, services.ErrAddressRequired) ||
		errors.Is(err, services.ErrInvalidPromo) ||
		errors.Is(err, services.ErrPromoMinCart) ||
		errors.Is(err, services.ErrPromoFirstOrder)
}

type offerReq struct {
	Code string `json:"code" validate:"required"`
}

// ApplyOffer previews a promo code against the current cart without writing
// anything.
func (h *CheckoutHandler) ApplyOffer(c *fiber.Ctx) error {
	var req offerReq
	if err := parseBody(c, &req); err != nil {
		return jsonError(c, 400, err.Error())
	}
	if _, ok := validate.PromoCode(req.Code); !ok {
		return jsonError(c, 400, "invalid promo code")
	}
	q, err := h.Checkout.PreviewQuote(session(c).User.ID, req.Code)
	if err != nil {
		if isCheckoutInput(err) {
			return jsonError(c, 400, err.Error())
		}
		return jsonError(c, 500, "could not apply promo code")
	}
	return c.JSON(q)
}

func (h *CheckoutHandler) History(c *fiber.Ctx) error {
	orders, err := h.Orders.ListByBuyer(session(c).User.ID)
	if err != nil {
		return jsonError(c, 500, "could not load orders")
	}
	return c.JSON(fiber.Map{"orders": orders})
}

func (h *CheckoutHandler) Detail(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonError(c, 400, "invalid order id")
	}
	o, err := h.Orders.Get(id)
	if err != nil || o.BuyerID != session(c).User.ID {
		return jsonError(c, 404, "order not found")
	}
	return c.JSON(o)
}
