package seller

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/chaow95/storefront-backend/internal/user"
)

// ProfileReader is the slice of the user service the handler needs to check
// the caller's role.
type ProfileReader interface {
	GetByID(id int) (user.User, error)
}

// Handler exposes the seller inventory endpoints. Routes are protected and
// additionally require the seller role.
type Handler struct {
	service  *Service
	profiles ProfileReader
}

func NewHandler(s *Service, profiles ProfileReader) *Handler {
	return &Handler{service: s, profiles: profiles}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Get("/api/v1/seller/products", h.listProducts)
	app.Post("/api/v1/seller/products", h.createProduct)
	app.Delete("/api/v1/seller/products/:id", h.deleteProduct)
}

// requireSeller resolves the caller and rejects anyone without the seller
// role. On rejection the response has already been written and the bool is
// false; callers must stop there.
func (h *Handler) requireSeller(c *fiber.Ctx) (int, bool) {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		_ = c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
		return 0, false
	}

	u, err := h.profiles.GetByID(userID)
	if err != nil {
		_ = c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
		return 0, false
	}
	if u.Role != user.RoleSeller {
		_ = c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "seller role required"})
		return 0, false
	}
	return userID, true
}

func (h *Handler) listProducts(c *fiber.Ctx) error {
	sellerID, ok := h.requireSeller(c)
	if !ok {
		return nil
	}

	products, err := h.service.List(c.Context(), sellerID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(products)
}

func (h *Handler) createProduct(c *fiber.Ctx) error {
	sellerID, ok := h.requireSeller(c)
	if !ok {
		return nil
	}

	payload := new(CreateInput)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	created, err := h.service.Create(c.Context(), sellerID, *payload)
	if err != nil {
		if errors.Is(err, ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "name is required; price and stock must be non-negative"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *Handler) deleteProduct(c *fiber.Ctx) error {
	sellerID, ok := h.requireSeller(c)
	if !ok {
		return nil
	}

	if err := h.service.Delete(c.Context(), sellerID, c.Params("id")); err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "product not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
