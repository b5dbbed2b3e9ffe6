package product

import (
	"os"
	"time"

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

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/products", h.getProducts)
	app.Get("/product/:id", h.getProduct)

	// dev-only endpoint, enabled when ALLOW_RESET_PRODUCTS=1
	app.Post("/dev/reset-products", h.resetProducts)
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Post("/products", h.createProduct)
	app.Put("/product/:id", h.updateProduct)
	app.Delete("/product/:id", h.deleteProduct)
}

// productView decorates a product with its display stock status and the
// shop-facing price label.
type productView struct {
	Product
	StockStatus string `json:"stockStatus"`
	PriceLabel  string `json:"priceLabel"`
}

func toView(p Product) productView {
	return productView{
		Product:     p,
		StockStatus: StockStatus(p.Stock),
		PriceLabel:  messages.FormatUserPrice(p.Price),
	}
}

func (h *Handler) getProducts(c *fiber.Ctx) error {
	products, err := h.service.List(c.Query("q"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	views := make([]productView, 0, len(products))
	for _, p := range products {
		views = append(views, toView(p))
	}
	return c.JSON(views)
}

func (h *Handler) getProduct(c *fiber.Ctx) error {
	p, err := h.service.GetByID(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).SendString("Product not found")
	}
	return c.JSON(toView(p))
}

// productForm is the admin payload. Price and stock may also arrive as the
// form's display text ("12,000 won"); the text fields win over the numeric
// ones when set.
type productForm struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Price         int        `json:"price"`
	PriceText     string     `json:"priceText"`
	Stock         int        `json:"stock"`
	StockText     string     `json:"stockText"`
	Description   string     `json:"description"`
	Discounts     []Discount `json:"discounts"`
	IsRecommended bool       `json:"isRecommended"`
}

func (f *productForm) toProduct() Product {
	p := Product{
		ID:            f.ID,
		Name:          f.Name,
		Price:         f.Price,
		Stock:         f.Stock,
		Description:   f.Description,
		Discounts:     f.Discounts,
		IsRecommended: f.IsRecommended,
	}
	if f.PriceText != "" {
		p.Price = validate.SafeParseInt(validate.ExtractNumbers(f.PriceText), f.Price)
	}
	if f.StockText != "" {
		p.Stock = validate.SafeParseInt(validate.ExtractNumbers(f.StockText), f.Stock)
	}
	// a blank tier row means "use the default"
	for i, d := range p.Discounts {
		if d == (Discount{}) {
			p.Discounts[i] = DefaultDiscount()
		}
	}
	return p
}

// validateProductPayload runs the range rules and collects every violation
// together with its corrected boundary value, so the admin form can both show
// the error and auto-correct the field. Malformed discount tiers are not an
// error; the service silently drops them.
func validateProductPayload(p Product) map[string]validate.Result {
	errs := map[string]validate.Result{}
	if p.Name == "" {
		errs["name"] = validate.Result{Error: "name is required"}
	}
	if res := validate.Price(p.Price); !res.IsValid {
		errs["price"] = res
	}
	if res := validate.Stock(p.Stock); !res.IsValid {
		errs["stock"] = res
	}
	return errs
}

func (h *Handler) createProduct(c *fiber.Ctx) error {
	form := new(productForm)
	if err := c.BodyParser(form); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	p := form.toProduct()

	if ves := validateProductPayload(p); len(ves) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": ves})
	}

	if p.ID == "" {
		p.ID = NewProductID(time.Now())
	}
	if p.Discounts == nil {
		p.Discounts = []Discount{}
	}

	created, err := h.service.Create(p)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	h.notifySuccess(messages.ProductAdded)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"product":    created,
		"priceLabel": messages.FormatAdminPrice(created.Price),
	})
}

func (h *Handler) updateProduct(c *fiber.Ctx) error {
	form := new(productForm)
	if err := c.BodyParser(form); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	p := form.toProduct()

	if ves := validateProductPayload(p); len(ves) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": ves})
	}

	updated, err := h.service.Update(c.Params("id"), p)
	if err != nil {
		return c.Status(fiber.StatusNotFound).SendString("Product not found")
	}
	h.notifySuccess(messages.ProductUpdated)
	return c.JSON(fiber.Map{
		"product":    updated,
		"priceLabel": messages.FormatAdminPrice(updated.Price),
	})
}

func (h *Handler) deleteProduct(c *fiber.Ctx) error {
	if err := h.service.Delete(c.Params("id")); err != nil {
		return c.Status(fiber.StatusNotFound).SendString("Product not found")
	}
	h.notifySuccess(messages.ProductDeleted)
	return c.SendString("Product deleted")
}

// resetProducts clears the catalog and inserts the provided list (or a default
// sample list). Protected by the ALLOW_RESET_PRODUCTS environment variable.
func (h *Handler) resetProducts(c *fiber.Ctx) error {
	if os.Getenv("ALLOW_RESET_PRODUCTS") != "1" {
		return c.Status(fiber.StatusForbidden).SendString("reset not allowed")
	}

	var products []Product
	// If body parsing fails, fall back to the default sample catalog.
	// An explicit empty array clears the table without re-seeding.
	if err := c.BodyParser(&products); err != nil {
		products = SampleProducts()
	}

	if err := h.service.ResetProducts(products); err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString(err.Error())
	}
	return c.JSON(products)
}

// SampleProducts is the default seed catalog.
func SampleProducts() []Product {
	return []Product{
		{
			ID:          "p1",
			Name:        "Premium Cotton T-Shirt",
			Price:       10000,
			Stock:       20,
			Description: "Soft everyday tee in heavyweight cotton",
			Discounts:   []Discount{{Quantity: 10, Rate: 0.1}, {Quantity: 20, Rate: 0.2}},
		},
		{
			ID:          "p2",
			Name:        "Slim Fit Jeans",
			Price:       20000,
			Stock:       20,
			Description: "Stretch denim with a tapered leg",
			Discounts:   []Discount{{Quantity: 10, Rate: 0.15}},
		},
		{
			ID:            "p3",
			Name:          "Canvas Sneakers",
			Price:         30000,
			Stock:         20,
			Description:   "Low-top sneakers with rubber sole",
			Discounts:     []Discount{{Quantity: 10, Rate: 0.2}},
			IsRecommended: true,
		},
	}
}
