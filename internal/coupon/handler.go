package coupon

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/cleancart/cart-backend/internal/messages"
	"github.com/cleancart/cart-backend/internal/validate"
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

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/coupons", h.getCoupons)
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Post("/coupons", h.createCoupon)
	app.Delete("/coupon/:code", h.deleteCoupon)
}

func (h *Handler) getCoupons(c *fiber.Ctx) error {
	coupons, err := h.service.List()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(coupons)
}

func (h *Handler) createCoupon(c *fiber.Ctx) error {
	payload := new(Coupon)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	payload.Code = strings.ToUpper(strings.TrimSpace(payload.Code))
	if !validate.CouponCode(payload.Code) {
		h.notifyError(messages.InvalidCouponCode)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": messages.InvalidCouponCode})
	}
	if payload.DiscountType != TypeAmount && payload.DiscountType != TypePercentage {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "discountType must be \"amount\" or \"percentage\""})
	}
	if res := validate.DiscountValue(payload.DiscountValue, payload.DiscountType); !res.IsValid {
		h.notifyError(res.Error)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message":        res.Error,
			"correctedValue": res.CorrectedValue,
		})
	}

	created, err := h.service.Create(*payload)
	if err != nil {
		if err == ErrDuplicateCode {
			h.notifyError(messages.DuplicateCouponCode)
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": messages.DuplicateCouponCode})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	h.notifySuccess(messages.CouponAdded)
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *Handler) deleteCoupon(c *fiber.Ctx) error {
	if err := h.service.Delete(c.Params("code")); err != nil {
		if err == ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "coupon not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	h.notifySuccess(messages.CouponDeleted)
	return c.SendStatus(fiber.StatusNoContent)
}

// SampleCoupons is the default seed coupon list.
func SampleCoupons() []Coupon {
	return []Coupon{
		{Name: "5,000 off", Code: "AMOUNT5000", DiscountType: TypeAmount, DiscountValue: 5000},
		{Name: "10% off", Code: "PERCENT10", DiscountType: TypePercentage, DiscountValue: 10},
	}
}
