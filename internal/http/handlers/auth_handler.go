package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"sutradhar/internal/log"
	"sutradhar/internal/services"
	"sutradhar/internal/validate"
)

type AuthHandler struct {
	Auth *services.AuthService
}

func ensureSID(c *fiber.Ctx) string {
	sid := c.Cookies("sid")
	if sid == "" {
		sid = uuid.NewString()
		c.Cookie(&fiber.Cookie{
			Name:     "sid",
			Value:    sid,
			Path:     "/",
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
			Secure:   false,
		})
	}
	return sid
}

type signupReq struct {
	Email       string `json:"email" validate:"required"`
	Password    string `json:"password" validate:"required"`
	DisplayName string `json:"display_name" validate:"required,min=2,max=60"`
	Role        string `json:"role"`
}

func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req signupReq
	if err := parseBody(c, &req); err != nil {
		return jsonError(c, 400, err.Error())
	}
	email, ok := validate.Email(req.Email)
	if !ok {
		return jsonError(c, 400, "invalid email address")
	}
	if !validate.Password(req.Password) {
		return jsonError(c, 400, "password must be 8-64 chars with upper, lower, digit and symbol")
	}

	sid := ensureSID(c)
	sess, err := h.Auth.SignUp(sid, email, req.Password, req.DisplayName, req.Role)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			log.Security(c, "auth.signup.fail", map[string]any{"email": email, "reason": "email_taken"})
			return jsonError(c, 409, "email already registered")
		}
		if errors.Is(err, services.ErrInvalidRole) {
			return jsonError(c, 400, "role must be buyer or seller")
		}
		return jsonError(c, 500, "could not create account")
	}
	log.Audit(c, "auth.signup", map[string]any{"email": email, "role": sess.Profile.Role})
	return c.Status(201).JSON(sess)
}

type loginReq struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginReq
	if err := parseBody(c, &req); err != nil {
		return jsonError(c, 400, err.Error())
	}
	email, ok := validate.Email(req.Email)
	if !ok {
		log.Security(c, "auth.login.fail", map[string]any{"email": req.Email, "reason": "bad_format"})
		return jsonError(c, 401, "invalid email or password")
	}

	sid := ensureSID(c)
	sess, err := h.Auth.Login(sid, email, req.Password)
	if err != nil {
		log.Security(c, "auth.login.fail", map[string]any{"email": email})
		return jsonError(c, 401, "invalid email or password")
	}
	log.Audit(c, "auth.login.success", map[string]any{"email": email})
	return c.JSON(sess)
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	sid := c.Cookies("sid")
	if sid != "" {
		_ = h.Auth.Logout(sid)
	}
	c.Cookie(&fiber.Cookie{
		Name:     "sid",
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Secure:   false,
		Expires:  time.Now().Add(-1 * time.Hour),
	})
	log.Audit(c, "auth.logout", map[string]any{"sid": sid})
	return c.JSON(fiber.Map{"ok": true})
}

// Me returns the current session: user, profile and derived tier.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	sid := c.Cookies("sid")
	if sid == "" {
		return jsonError(c, 401, "login required")
	}
	sess, err := h.Auth.Current(sid)
	if err != nil || sess == nil {
		return jsonError(c, 401, "login required")
	}
	return c.JSON(sess)
}

type roleReq struct {
	Role string `json:"role" validate:"required,oneof=buyer seller"`
}

func (h *AuthHandler) SwitchRole(c *fiber.Ctx) error {
	var req roleReq
	if err := parseBody(c, &req); err != nil {
		return jsonError(c, 400, "role must be buyer or seller")
	}
	sess := session(c)
	if err := h.Auth.SwitchRole(sess.User.ID, req.Role); err != nil {
		return jsonError(c, 500, "could not switch role")
	}
	log.Audit(c, "auth.role.switch", map[string]any{"user": sess.User.ID, "role": req.Role})
	fresh, err := h.Auth.Current(c.Cookies("sid"))
	if err != nil {
		return jsonError(c, 500, "could not load profile")
	}
	return c.JSON(fresh)
}
