package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"stylos/internal/core/id"
	"stylos/internal/domain/catalog/product"
	"stylos/internal/infrastructure/http/v1/dto"
)

// ProductHandler handles HTTP requests for the product catalog.
type ProductHandler struct {
	*BaseHandler
	service *product.Service
}

// NewProductHandler creates a new product handler.
func NewProductHandler(base *BaseHandler, service *product.Service) *ProductHandler {
	return &ProductHandler{BaseHandler: base, service: service}
}

// Create handles POST /products.
func (h *ProductHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.ProductRequest
	if !h.BindJSON(c, &req) {
		return
	}

	p := product.New(req.Name, req.Category)
	applyProductRequest(p, req)

	if err := h.service.Create(ctx, p); err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewProductResponse(p, h.IsAdmin(c)))
}

// Update handles PUT /products/:id.
func (h *ProductHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	productID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	var req dto.ProductRequest
	if !h.BindJSON(c, &req) {
		return
	}

	p, err := h.service.GetByID(ctx, productID)
	if err != nil {
		h.Error(c, err)
		return
	}

	p.Name = req.Name
	p.Category = req.Category
	p.Version = req.Version
	applyProductRequest(p, req)

	if err := h.service.Update(ctx, p); err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.NewProductResponse(p, h.IsAdmin(c)))
}

// Get handles GET /products/:id.
func (h *ProductHandler) Get(c *gin.Context) {
	productID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	p, err := h.service.GetByID(c.Request.Context(), productID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.NewProductResponse(p, h.IsAdmin(c)))
}

// List handles GET /products.
func (h *ProductHandler) List(c *gin.Context) {
	filter := product.ListFilter{
		Search:   c.Query("search"),
		Category: c.Query("category"),
		Status:   product.Status(c.Query("status")),
		Limit:    h.ParseIntQuery(c, "limit", 50),
		Offset:   h.ParseIntQuery(c, "offset", 0),
	}
	if categories, ok := c.GetQueryArray("categories"); ok {
		filter.Categories = categories
	}

	products, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.NewProductListResponse(products, h.IsAdmin(c)))
}

// applyProductRequest copies mutable fields and rebuilds the variant set.
// Stock counters are only honored for brand-new variants; existing ones keep
// their persisted counter (the ledger owns it).
func applyProductRequest(p *product.Product, req dto.ProductRequest) {
	p.Description = req.Description
	p.Price = req.Price
	p.Cost = req.Cost
	p.MinStock = req.MinStock
	p.Image = req.Image
	if req.Status != "" {
		p.Status = product.Status(req.Status)
	}

	currentStock := make(map[id.ID]int, len(p.Variants))
	for i := range p.Variants {
		currentStock[p.Variants[i].ID] = p.Variants[i].Stock
	}

	variants := make([]product.Variant, 0, len(req.Variants))
	for _, vr := range req.Variants {
		v := product.NewVariant(p.ID, vr.Size, vr.Color, vr.Stock, vr.SKU, vr.Model)
		if vr.ID != "" {
			if parsed, err := id.Parse(vr.ID); err == nil {
				v.ID = parsed
				if stock, ok := currentStock[parsed]; ok {
					v.Stock = stock
				}
			}
		}
		variants = append(variants, v)
	}
	p.Variants = variants
	p.BuildIndex()
}
