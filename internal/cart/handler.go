package cart

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/chaow95/storefront-backend/internal/catalog"
	"github.com/chaow95/storefront-backend/internal/user"
)

// CatalogReader is the slice of the catalog service the cart needs.
type CatalogReader interface {
	GetByID(ctx context.Context, id string) (catalog.ProductView, error)
}

// Handler exposes the per-session cart over HTTP. All routes are protected.
type Handler struct {
	carts   *Manager
	catalog CatalogReader
}

func NewHandler(carts *Manager, catalogReader CatalogReader) *Handler {
	return &Handler{carts: carts, catalog: catalogReader}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Get("/api/v1/cart", h.getCart)
	app.Post("/api/v1/cart/items", h.addItem)
	app.Patch("/api/v1/cart/items/:productId", h.updateItem)
	app.Delete("/api/v1/cart/items/:productId", h.removeItem)
	app.Delete("/api/v1/cart", h.clearCart)
}

type cartResponse struct {
	Items    []Item  `json:"items"`
	Subtotal float64 `json:"subtotal"`
}

func (h *Handler) respond(c *fiber.Ctx, st *Store) error {
	return c.JSON(cartResponse{Items: st.Items(), Subtotal: st.Total()})
}

type addItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

func (h *Handler) addItem(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	payload := new(addItemRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.ProductID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "productId is required"})
	}
	if payload.Quantity == 0 {
		payload.Quantity = 1
	}

	view, err := h.catalog.GetByID(c.Context(), payload.ProductID)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "product not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	st := h.carts.Get(userID)
	if err := st.Add(view, payload.Quantity); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	return h.respond(c, st)
}

type updateItemRequest struct {
	Quantity int `json:"quantity"`
}

func (h *Handler) updateItem(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	payload := new(updateItemRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	st := h.carts.Get(userID)
	st.UpdateQuantity(c.Params("productId"), payload.Quantity)
	return h.respond(c, st)
}

func (h *Handler) removeItem(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	st := h.carts.Get(userID)
	st.Remove(c.Params("productId"))
	return h.respond(c, st)
}

func (h *Handler) getCart(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	return h.respond(c, h.carts.Get(userID))
}

func (h *Handler) clearCart(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	h.carts.Get(userID).Clear()
	return c.SendStatus(fiber.StatusNoContent)
}
