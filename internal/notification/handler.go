package notification

import (
	"github.com/gofiber/fiber/v2"
)

type Handler struct {
	store *Store
}

func NewHandler(store *Store) *Handler {
	return &Handler{store: store}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Get("/api/v1/notifications", h.getNotifications)
	app.Delete("/api/v1/notifications/:id", h.removeNotification)
	app.Delete("/api/v1/notifications", h.clearNotifications)
}

func (h *Handler) getNotifications(c *fiber.Ctx) error {
	return c.JSON(h.store.List())
}

func (h *Handler) removeNotification(c *fiber.Ctx) error {
	h.store.Remove(c.Params("id"))
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) clearNotifications(c *fiber.Ctx) error {
	h.store.Clear()
	return c.SendStatus(fiber.StatusNoContent)
}
