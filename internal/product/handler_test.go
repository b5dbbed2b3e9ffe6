package product

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func makeApp(products []Product) (*fiber.App, *Service) {
	svc := NewService(NewInMemoryRepository(products))
	h := NewHandler(svc, nil)
	app := fiber.New()
	h.RegisterPublicRoutes(app)
	h.RegisterProtectedRoutes(app)
	return app, svc
}

func TestGetProducts_SearchAndStockStatus(t *testing.T) {
	app, _ := makeApp([]Product{
		{ID: "p1", Name: "Premium Cotton T-Shirt", Price: 10000, Stock: 20},
		{ID: "p2", Name: "Slim Fit Jeans", Price: 20000, Stock: 0},
	})

	res, _ := app.Test(httptest.NewRequest("GET", "/products", nil))
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}
	b, _ := io.ReadAll(res.Body)
	if !strings.Contains(string(b), `"stockStatus":"soldOut"`) {
		t.Fatalf("expected soldOut status for p2, got %s", string(b))
	}
	if !strings.Contains(string(b), `"priceLabel":"₩10,000"`) {
		t.Fatalf("expected shop price label, got %s", string(b))
	}

	res2, _ := app.Test(httptest.NewRequest("GET", "/products?q=jeans", nil))
	b2, _ := io.ReadAll(res2.Body)
	if strings.Contains(string(b2), "p1") || !strings.Contains(string(b2), "p2") {
		t.Fatalf("expected only p2 in search results, got %s", string(b2))
	}
}

func TestGetProduct_NotFound(t *testing.T) {
	app, _ := makeApp(nil)
	res, _ := app.Test(httptest.NewRequest("GET", "/product/ghost", nil))
	if res.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected 404, got %d", res.StatusCode)
	}
}

func TestCreateProduct_RangeErrorsCarryCorrectedValues(t *testing.T) {
	app, _ := makeApp(nil)

	req := httptest.NewRequest("POST", "/products",
		strings.NewReader(`{"name":"Bad Hat","price":0,"stock":10000}`))
	req.Header.Set("Content-Type", "application/json")
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d", res.StatusCode)
	}

	b, _ := io.ReadAll(res.Body)
	body := string(b)
	if !strings.Contains(body, `"price"`) || !strings.Contains(body, `"stock"`) {
		t.Fatalf("expected price and stock errors, got %s", body)
	}
	// stock above range is corrected down to the boundary
	if !strings.Contains(body, `"correctedValue":9999`) {
		t.Fatalf("expected corrected stock 9999, got %s", body)
	}
}

func TestCreateProduct_FiltersInvalidTiersAndGeneratesID(t *testing.T) {
	app, svc := makeApp(nil)

	// the second tier has a rate above 1 and must be dropped, not rejected
	req := httptest.NewRequest("POST", "/products",
		strings.NewReader(`{"name":"Wool Socks","price":3000,"stock":50,"discounts":[{"quantity":10,"rate":0.1},{"quantity":5,"rate":1.5}]}`))
	req.Header.Set("Content-Type", "application/json")
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusCreated {
		t.Fatalf("expected 201, got %d", res.StatusCode)
	}

	products, err := svc.List("")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(products) != 1 {
		t.Fatalf("expected 1 product, got %d", len(products))
	}
	if !strings.HasPrefix(products[0].ID, "p") {
		t.Fatalf("expected generated id, got %q", products[0].ID)
	}
	if len(products[0].Discounts) != 1 || products[0].Discounts[0].Quantity != 10 {
		t.Fatalf("expected only the valid tier to survive, got %+v", products[0].Discounts)
	}
}

func TestCreateProduct_TextInputAndDefaultTier(t *testing.T) {
	app, svc := makeApp(nil)

	// price arrives as the admin form's display text; the blank tier row is
	// pre-filled with the default tier
	req := httptest.NewRequest("POST", "/products",
		strings.NewReader(`{"name":"Wool Beanie","priceText":"12,000 won","stock":30,"discounts":[{}]}`))
	req.Header.Set("Content-Type", "application/json")
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusCreated {
		t.Fatalf("expected 201, got %d", res.StatusCode)
	}
	b, _ := io.ReadAll(res.Body)
	if !strings.Contains(string(b), `"priceLabel":"12,000 won"`) {
		t.Fatalf("expected admin price label, got %s", string(b))
	}

	products, err := svc.List("")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(products) != 1 || products[0].Price != 12000 {
		t.Fatalf("expected parsed price 12000, got %+v", products)
	}
	want := DefaultDiscount()
	if len(products[0].Discounts) != 1 || products[0].Discounts[0] != want {
		t.Fatalf("expected default tier %+v, got %+v", want, products[0].Discounts)
	}
}

func TestUpdateAndDeleteProduct(t *testing.T) {
	app, _ := makeApp([]Product{{ID: "p1", Name: "Premium Cotton T-Shirt", Price: 10000, Stock: 20}})

	req := httptest.NewRequest("PUT", "/product/p1",
		strings.NewReader(`{"name":"Premium Cotton T-Shirt","price":12000,"stock":15}`))
	req.Header.Set("Content-Type", "application/json")
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for update, got %d", res.StatusCode)
	}
	b, _ := io.ReadAll(res.Body)
	if !strings.Contains(string(b), `"price":12000`) {
		t.Fatalf("expected updated price, got %s", string(b))
	}

	res2, _ := app.Test(httptest.NewRequest("DELETE", "/product/p1", nil))
	if res2.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for delete, got %d", res2.StatusCode)
	}

	res3, _ := app.Test(httptest.NewRequest("DELETE", "/product/p1", nil))
	if res3.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected 404 for second delete, got %d", res3.StatusCode)
	}
}
