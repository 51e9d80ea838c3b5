package checkout

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/chaow95/storefront-backend/internal/user"
)

// Handler exposes the checkout flow. All routes are protected.
type Handler struct {
	orch *Orchestrator
}

func NewHandler(orch *Orchestrator) *Handler {
	return &Handler{orch: orch}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Get("/api/v1/checkout", h.getCheckout)
	app.Post("/api/v1/checkout/shipping", h.submitShipping)
	app.Post("/api/v1/checkout/payment", h.submitPayment)
	app.Post("/api/v1/checkout/place-order", h.placeOrder)
}

type checkoutState struct {
	Step    string  `json:"step"`
	Summary Summary `json:"summary"`
}

func (h *Handler) getCheckout(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	return c.JSON(checkoutState{
		Step:    h.orch.Session(userID).Step().String(),
		Summary: h.orch.Quote(userID),
	})
}

func (h *Handler) submitShipping(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	payload := new(ShippingDetails)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	if err := h.orch.Session(userID).SubmitShipping(*payload); err != nil {
		return stepError(c, err)
	}
	return h.getCheckout(c)
}

func (h *Handler) submitPayment(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	payload := new(PaymentDetails)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	if err := h.orch.Session(userID).SubmitPayment(*payload); err != nil {
		return stepError(c, err)
	}
	return h.getCheckout(c)
}

func (h *Handler) placeOrder(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	ord, err := h.orch.PlaceOrder(c.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotAuthenticated):
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
		case errors.Is(err, ErrInvalidStep):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": "complete the checkout steps first"})
		case errors.Is(err, ErrEmptyCart):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "cart is empty"})
		case errors.Is(err, ErrMissingProductReference):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": "a cart item is missing its product reference"})
		case errors.Is(err, ErrOrderCreateFailed):
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"message": "order could not be created, please retry"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}
	return c.Status(fiber.StatusCreated).JSON(ord)
}

func stepError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, ErrInvalidStep):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": "checkout step out of order"})
	case errors.Is(err, ErrValidationFailed):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "required fields missing"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
}
