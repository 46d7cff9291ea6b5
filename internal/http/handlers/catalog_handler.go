package handlers

import (
	"github.com/gofiber/fiber/v2"

	"sutradhar/internal/services"
	"sutradhar/internal/validate"
)

type CatalogHandler struct {
	Catalog *services.CatalogService
}

// List serves the marketplace feed: published products with seller info,
// optionally narrowed by a search term and a tag.
func (h *CatalogHandler) List(c *fiber.Ctx) error {
	q, ok := validate.Q(c.Query("q"))
	if !ok {
		return jsonError(c, 400, "invalid search term")
	}
	tag, ok := validate.Q(c.Query("tag"))
	if !ok {
		return jsonError(c, 400, "invalid tag")
	}
	items, err := h.Catalog.Browse(q, tag)
	if err != nil {
		return jsonError(c, 500, "could not load products")
	}
	return c.JSON(fiber.Map{"products": items})
}

func (h *CatalogHandler) Detail(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonError(c, 400, "invalid product id")
	}
	p, err := h.Catalog.GetProduct(id)
	if err != nil {
		return jsonError(c, 404, "product not found")
	}
	return c.JSON(p)
}
