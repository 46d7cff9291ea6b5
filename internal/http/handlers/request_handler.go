package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"sutradhar/internal/log"
	"sutradhar/internal/services"
	"sutradhar/internal/validate"
)

type RequestHandler struct {
	Requests *services.RequestService
}

func (h *RequestHandler) List(c *fiber.Ctx) error {
	reqs, err := h.Requests.ListForBuyer(session(c).User.ID)
	if err != nil {
		return jsonError(c, 500, "could not load requests")
	}
	return c.JSON(fiber.Map{"requests": reqs})
}

type createRequestReq struct {
	BriefText    string  `json:"brief_text" validate:"required,min=10,max=2000"`
	Budget       float64 `json:"budget" validate:"gte=0"`
	TimelineDays int     `json:"timeline_days" validate:"gte=0,lte=365"`
	Materials    string  `json:"materials" validate:"max=500"`
}

func (h *RequestHandler) Create(c *fiber.Ctx) error {
	var req createRequestReq
	if err := parseBody(c, &req); err != nil {
		return jsonError(c, 400, err.Error())
	}
	sess := session(c)
	cr, err := h.Requests.Create(sess.User.ID, req.BriefText, req.Budget, req.TimelineDays, req.Materials)
	if err != nil {
		if errors.Is(err, services.ErrBriefRequired) {
			return jsonError(c, 400, err.Error())
		}
		return jsonError(c, 500, "could not create request")
	}
	log.Audit(c, "request.create", map[string]any{"user": sess.User.ID, "request": cr.ID})
	return c.Status(201).JSON(cr)
}

// Accept turns a quoted request into a placed order. Any other status is a
// conflict, not a server error.
func (h *RequestHandler) Accept(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonError(c, 400, "invalid request id")
	}
	sess := session(c)
	order, err := h.Requests.AcceptQuote(id, sess.User.ID)
	if err != nil {
		if errors.Is(err, services.ErrNotQuoted) {
			return jsonError(c, 409, "request has no open quote to accept")
		}
		return jsonError(c, 500, "could not accept quote")
	}
	log.Audit(c, "request.accept", map[string]any{"user": sess.User.ID, "request": id, "order": order.ID})
	return c.Status(201).JSON(order)
}
