package cart

import (
	"io"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	"github.com/cleancart/cart-backend/internal/coupon"
	"github.com/cleancart/cart-backend/internal/product"
)

func makeAppWithCartHandler(h *Handler) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if v := c.Get("X-User-ID"); v != "" {
			id, err := strconv.Atoi(v)
			if err == nil {
				claims := jwt.MapClaims{"user_id": id}
				tok := &jwt.Token{Claims: claims}
				c.Locals("user", tok)
			}
		}
		return c.Next()
	})
	h.RegisterProtectedRoutes(app)
	return app
}

func TestCartRoutes_Basic(t *testing.T) {
	products := []product.Product{
		{ID: "p1", Name: "Premium Cotton T-Shirt", Price: 10000, Stock: 5},
	}
	coupons := []coupon.Coupon{
		{Name: "10% off", Code: "PERCENT10", DiscountType: coupon.TypePercentage, DiscountValue: 10},
	}
	svc, _ := newTestService(products, coupons)
	app := makeAppWithCartHandler(NewHandler(svc, nil))

	// unauthorized access should be blocked
	req := httptest.NewRequest("GET", "/api/v1/cart", nil)
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401 for unauthenticated GET, got %d", res.StatusCode)
	}

	// authorized GET returns an empty cart
	req2 := httptest.NewRequest("GET", "/api/v1/cart", nil)
	req2.Header.Set("X-User-ID", "42")
	res2, _ := app.Test(req2)
	if res2.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for authenticated GET, got %d", res2.StatusCode)
	}
	b2, _ := io.ReadAll(res2.Body)
	if !strings.Contains(string(b2), `"itemCount":0`) {
		t.Fatalf("expected empty cart, got %s", string(b2))
	}

	// add a product
	req3 := httptest.NewRequest("POST", "/api/v1/cart", strings.NewReader(`{"productId":"p1","quantity":2}`))
	req3.Header.Set("Content-Type", "application/json")
	req3.Header.Set("X-User-ID", "42")
	res3, _ := app.Test(req3)
	if res3.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for add, got %d", res3.StatusCode)
	}
	b3, _ := io.ReadAll(res3.Body)
	if !strings.Contains(string(b3), `"itemCount":2`) {
		t.Fatalf("expected item count 2, got %s", string(b3))
	}

	// adding past the stock limit is rejected in full
	req4 := httptest.NewRequest("POST", "/api/v1/cart", strings.NewReader(`{"productId":"p1","quantity":4}`))
	req4.Header.Set("Content-Type", "application/json")
	req4.Header.Set("X-User-ID", "42")
	res4, _ := app.Test(req4)
	if res4.StatusCode != fiber.StatusConflict {
		t.Fatalf("expected 409 for over-stock add, got %d", res4.StatusCode)
	}
	b4, _ := io.ReadAll(res4.Body)
	if !strings.Contains(string(b4), `"maxStock":5`) {
		t.Fatalf("expected maxStock in rejection, got %s", string(b4))
	}

	// update quantity to the limit
	req5 := httptest.NewRequest("PUT", "/api/v1/cart/p1", strings.NewReader(`{"quantity":5}`))
	req5.Header.Set("Content-Type", "application/json")
	req5.Header.Set("X-User-ID", "42")
	res5, _ := app.Test(req5)
	if res5.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for quantity update, got %d", res5.StatusCode)
	}

	// totals reflect the cart
	req6 := httptest.NewRequest("GET", "/api/v1/cart/totals", nil)
	req6.Header.Set("X-User-ID", "42")
	res6, _ := app.Test(req6)
	b6, _ := io.ReadAll(res6.Body)
	if !strings.Contains(string(b6), `"totalBeforeDiscount":50000`) {
		t.Fatalf("unexpected totals: %s", string(b6))
	}

	// percentage coupon applies at this total
	req7 := httptest.NewRequest("POST", "/api/v1/cart/coupon", strings.NewReader(`{"code":"PERCENT10"}`))
	req7.Header.Set("Content-Type", "application/json")
	req7.Header.Set("X-User-ID", "42")
	res7, _ := app.Test(req7)
	if res7.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for coupon apply, got %d", res7.StatusCode)
	}
	b7, _ := io.ReadAll(res7.Body)
	if !strings.Contains(string(b7), `"totalAfterDiscount":45000`) {
		t.Fatalf("unexpected coupon totals: %s", string(b7))
	}

	// remove the line and clear the cart
	req8 := httptest.NewRequest("DELETE", "/api/v1/cart/p1", nil)
	req8.Header.Set("X-User-ID", "42")
	res8, _ := app.Test(req8)
	if res8.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for remove, got %d", res8.StatusCode)
	}

	req9 := httptest.NewRequest("DELETE", "/api/v1/cart", nil)
	req9.Header.Set("X-User-ID", "42")
	res9, _ := app.Test(req9)
	if res9.StatusCode != fiber.StatusNoContent {
		t.Fatalf("expected 204 for clear, got %d", res9.StatusCode)
	}
}

func TestCartRoutes_CouponRejectedBelowMinimum(t *testing.T) {
	products := []product.Product{{ID: "p1", Price: 5000, Stock: 5}}
	coupons := []coupon.Coupon{
		{Name: "10% off", Code: "PERCENT10", DiscountType: coupon.TypePercentage, DiscountValue: 10},
	}
	svc, _ := newTestService(products, coupons)
	app := makeAppWithCartHandler(NewHandler(svc, nil))

	add := httptest.NewRequest("POST", "/api/v1/cart", strings.NewReader(`{"productId":"p1"}`))
	add.Header.Set("Content-Type", "application/json")
	add.Header.Set("X-User-ID", "1")
	if res, _ := app.Test(add); res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for add, got %d", res.StatusCode)
	}

	apply := httptest.NewRequest("POST", "/api/v1/cart/coupon", strings.NewReader(`{"code":"PERCENT10"}`))
	apply.Header.Set("Content-Type", "application/json")
	apply.Header.Set("X-User-ID", "1")
	res, _ := app.Test(apply)
	if res.StatusCode != fiber.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for unusable coupon, got %d", res.StatusCode)
	}
	b, _ := io.ReadAll(res.Body)
	if !strings.Contains(string(b), "10,000") {
		t.Fatalf("expected minimum-purchase message, got %s", string(b))
	}

	// totals unchanged at 5000
	totals := httptest.NewRequest("GET", "/api/v1/cart/totals", nil)
	totals.Header.Set("X-User-ID", "1")
	resT, _ := app.Test(totals)
	bT, _ := io.ReadAll(resT.Body)
	if !strings.Contains(string(bT), `"totalAfterDiscount":5000`) {
		t.Fatalf("expected totals unchanged, got %s", string(bT))
	}
}
