package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"sutradhar/internal/domain"
	"sutradhar/internal/log"
	"sutradhar/internal/services"
	"sutradhar/internal/validate"
)

type SellerHandler struct {
	Seller   *services.SellerService
	Requests *services.RequestService
}

func (h *SellerHandler) seller(c *fiber.Ctx) (domain.Seller, error) {
	sess := session(c)
	return h.Seller.SellerFor(sess.User.ID, sess.Profile.DisplayName)
}

func (h *SellerHandler) Products(c *fiber.Ctx) error {
	sel, err := h.seller(c)
	if err != nil {
		return jsonError(c, 500, "could not load seller profile")
	}
	items, err := h.Seller.ListProducts(sel.ID)
	if err != nil {
		return jsonError(c, 500, "could not load products")
	}
	return c.JSON(fiber.Map{"seller": sel, "products": items})
}

func (h *SellerHandler) CreateProduct(c *fiber.Ctx) error {
	var in services.ProductInput
	if err := parseBody(c, &in); err != nil {
		return jsonError(c, 400, err.Error())
	}
	sel, err := h.seller(c)
	if err != nil {
		return jsonError(c, 500, "could not load seller profile")
	}
	p, err := h.Seller.CreateProduct(sel.ID, in)
	if err != nil {
		return jsonError(c, 500, "could not create product")
	}
	log.Audit(c, "seller.product.create", map[string]any{"seller": sel.ID, "product": p.ID})
	return c.Status(201).JSON(p)
}

func (h *SellerHandler) UpdateProduct(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonError(c, 400, "invalid product id")
	}
	var in services.ProductInput
	if err := parseBody(c, &in); err != nil {
		return jsonError(c, 400, err.Error())
	}
	sel, err := h.seller(c)
	if err != nil {
		return jsonError(c, 500, "could not load seller profile")
	}
	p, err := h.Seller.UpdateProduct(sel.ID, id, in)
	if err != nil {
		return jsonError(c, 404, "product not found")
	}
	log.Audit(c, "seller.product.update", map[string]any{"seller": sel.ID, "product": id})
	return c.JSON(p)
}

func (h *SellerHandler) Orders(c *fiber.Ctx) error {
	sel, err := h.seller(c)
	if err != nil {
		return jsonError(c, 500, "could not load seller profile")
	}
	orders, err := h.Seller.ListOrders(sel.ID)
	if err != nil {
		return jsonError(c, 500, "could not load orders")
	}
	return c.JSON(fiber.Map{"orders": orders})
}

type statusReq struct {
	Status string `json:"status" validate:"required,oneof=packed shipped delivered cancelled"`
}

func (h *SellerHandler) UpdateOrderStatus(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonError(c, 400, "invalid order id")
	}
	var req statusReq
	if err := parseBody(c, &req); err != nil {
		return jsonError(c, 400, "status must be packed, shipped, delivered or cancelled")
	}
	sel, err := h.seller(c)
	if err != nil {
		return jsonError(c, 500, "could not load seller profile")
	}
	if err := h.Seller.UpdateOrderStatus(sel.ID, id, req.Status); err != nil {
		if errors.Is(err, services.ErrBadOrderStatus) {
			return jsonError(c, 409, "status change not allowed")
		}
		return jsonError(c, 404, "order not found")
	}
	log.Audit(c, "seller.order.status", map[string]any{"seller": sel.ID, "order": id, "status": req.Status})
	return c.JSON(fiber.Map{"ok": true})
}

func (h *SellerHandler) CustomRequests(c *fiber.Ctx) error {
	sel, err := h.seller(c)
	if err != nil {
		return jsonError(c, 500, "could not load seller profile")
	}
	reqs, err := h.Requests.ListForSeller(sel.ID)
	if err != nil {
		return jsonError(c, 500, "could not load requests")
	}
	return c.JSON(fiber.Map{"requests": reqs})
}

type quoteReq struct {
	QuoteAmount       float64 `json:"quote_amount" validate:"required,gt=0"`
	QuoteTimelineDays int     `json:"quote_timeline_days" validate:"gte=0,lte=365"`
}

// QuoteRequest claims an open custom request for this seller.
func (h *SellerHandler) QuoteRequest(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonError(c, 400, "invalid request id")
	}
	var req quoteReq
	if err := parseBody(c, &req); err != nil {
		return jsonError(c, 400, err.Error())
	}
	sel, err := h.seller(c)
	if err != nil {
		return jsonError(c, 500, "could not load seller profile")
	}
	if err := h.Requests.Quote(id, sel.ID, req.QuoteAmount, req.QuoteTimelineDays); err != nil {
		if errors.Is(err, services.ErrNotQuotable) {
			return jsonError(c, 409, "request is not open for quoting")
		}
		return jsonError(c, 500, "could not submit quote")
	}
	log.Audit(c, "seller.request.quote", map[string]any{"seller": sel.ID, "request": id, "amount": req.QuoteAmount})
	return c.JSON(fiber.Map{"ok": true})
}
