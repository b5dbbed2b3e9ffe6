package cart

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cleancart/cart-backend/internal/auth"
	"github.com/cleancart/cart-backend/internal/coupon"
	"github.com/cleancart/cart-backend/internal/messages"
	"github.com/cleancart/cart-backend/internal/product"
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

func (h *Handler) notifySuccess(message string) {
	if h.notifier != nil {
		h.notifier.Success(message)
	}
}

func (h *Handler) notifyError(message string) {
	if h.notifier != nil {
		h.notifier.Error(message)
	}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Get("/api/v1/cart", h.getCart)
	app.Post("/api/v1/cart", h.addToCart)
	app.Put("/api/v1/cart/:productId", h.updateQuantity)
	app.Delete("/api/v1/cart/coupon", h.clearCoupon)
	app.Delete("/api/v1/cart/:productId", h.removeFromCart)
	app.Delete("/api/v1/cart", h.clearCart)
	app.Get("/api/v1/cart/totals", h.getTotals)
	app.Post("/api/v1/cart/coupon", h.applyCoupon)
}

type addRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity,omitempty"`
}

type quantityRequest struct {
	Quantity int `json:"quantity"`
}

type couponRequest struct {
	Code string `json:"code"`
}

// cartView is the cart payload the UI renders: lines plus the badge count.
type cartView struct {
	Lines     []Line `json:"lines"`
	ItemCount int    `json:"itemCount"`
}

func toCartView(lines []Line) cartView {
	if lines == nil {
		lines = []Line{}
	}
	return cartView{Lines: lines, ItemCount: TotalItemCount(lines)}
}

func (h *Handler) getCart(c *fiber.Ctx) error {
	userID, err := auth.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	lines, err := h.service.Get(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(toCartView(lines))
}

func (h *Handler) addToCart(c *fiber.Ctx) error {
	userID, err := auth.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	payload := new(addRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.ProductID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid productId"})
	}

	res, err := h.service.AddToCart(userID, payload.ProductID, payload.Quantity)
	if err != nil {
		switch err {
		case product.ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "product not found"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}
	return h.respondCartResult(c, res, messages.ItemAddedToCart)
}

func (h *Handler) updateQuantity(c *fiber.Ctx) error {
	userID, err := auth.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	payload := new(quantityRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	res, err := h.service.UpdateQuantity(userID, c.Params("productId"), payload.Quantity)
	if err != nil {
		switch err {
		case product.ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "product not found"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}
	return h.respondCartResult(c, res, "")
}

// respondCartResult maps a core result kind onto an HTTP status and the fixed
// message for that outcome.
func (h *Handler) respondCartResult(c *fiber.Ctx, res Result, successMessage string) error {
	switch res.Kind {
	case StockInsufficient:
		h.notifyError(messages.StockInsufficient)
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": messages.StockInsufficient})
	case StockExceeded:
		msg := messages.StockExceeded(res.MaxStock)
		h.notifyError(msg)
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"message":  msg,
			"maxStock": res.MaxStock,
		})
	case CouponUnusable:
		h.notifyError(res.Message)
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"message": res.Message})
	default:
		if successMessage != "" {
			h.notifySuccess(successMessage)
		}
		return c.JSON(toCartView(res.Lines))
	}
}

func (h *Handler) removeFromCart(c *fiber.Ctx) error {
	userID, err := auth.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	lines, err := h.service.RemoveFromCart(userID, c.Params("productId"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(toCartView(lines))
}

func (h *Handler) clearCart(c *fiber.Ctx) error {
	userID, err := auth.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	if err := h.service.Clear(userID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) getTotals(c *fiber.Ctx) error {
	userID, err := auth.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	totals, err := h.service.CartTotals(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(totals)
}

func (h *Handler) applyCoupon(c *fiber.Ctx) error {
	userID, err := auth.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	payload := new(couponRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	res, err := h.service.ApplyCoupon(userID, payload.Code)
	if err != nil {
		switch err {
		case coupon.ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "coupon not found"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}
	if res.Kind == Ok {
		h.notifySuccess(messages.CouponApplied)
		totals, err := h.service.CartTotals(userID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
		return c.JSON(totals)
	}
	return h.respondCartResult(c, res, "")
}

func (h *Handler) clearCoupon(c *fiber.Ctx) error {
	userID, err := auth.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	if err := h.service.ClearCoupon(userID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
