package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"sutradhar/internal/log"
	"sutradhar/internal/services"
)

type RewardsHandler struct {
	Rewards *services.RewardsService
}

func (h *RewardsHandler) Summary(c *fiber.Ctx) error {
	sum, err := h.Rewards.Summary(session(c).User.ID)
	if err != nil {
		return jsonError(c, 500, "could not load rewards")
	}
	return c.JSON(sum)
}

type redeemReq struct {
	Points int `json:"points" validate:"required,gt=0"`
}

func (h *RewardsHandler) Redeem(c *fiber.Ctx) error {
	var req redeemReq
	if err := parseBody(c, &req); err != nil {
		return jsonError(c, 400, err.Error())
	}
	sess := session(c)
	r, err := h.Rewards.Redeem(sess.User.ID, req.Points)
	if err != nil {
		if errors.Is(err, services.ErrRedeemAmount) || errors.Is(err, services.ErrRedeemBalance) {
			return jsonError(c, 400, err.Error())
		}
		return jsonError(c, 500, "could not redeem points")
	}
	log.Audit(c, "rewards.redeem", map[string]any{"user": sess.User.ID, "points": r.Points, "value": r.Value})
	return c.JSON(r)
}
