package order

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cleancart/cart-backend/internal/auth"
	"github.com/cleancart/cart-backend/internal/messages"
)

// Notifier receives the fixed success/error messages shown by the UI.
type Notifier interface {
	Success(message string)
	Error(message string)
}

type Handler struct {
	service  *Service
	notifier Notifier
}

func NewHandler(service *Service, notifier Notifier) *Handler {
	return &Handler{service: service, notifier: notifier}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Post("/api/v1/order/complete", h.completeOrder)
	app.Get("/api/v1/orders", h.getOrders)
}

func (h *Handler) completeOrder(c *fiber.Ctx) error {
	userID, err := auth.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	ord, err := h.service.Complete(userID)
	if err != nil {
		switch err {
		case ErrEmptyCart:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "empty cart"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}

	if h.notifier != nil {
		h.notifier.Success(messages.OrderCompleted(ord.OrderNumber))
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"order":   ord,
		"message": messages.OrderCompleted(ord.OrderNumber),
	})
}

func (h *Handler) getOrders(c *fiber.Ctx) error {
	userID, err := auth.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	orders, err := h.service.ListByUser(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(orders)
}
