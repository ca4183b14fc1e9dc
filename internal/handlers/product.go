package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/inoxmetalart/backend/internal/jsoncol"
	"github.com/inoxmetalart/backend/internal/logger"
	"github.com/inoxmetalart/backend/internal/services"
	"github.com/inoxmetalart/backend/internal/types"
)

type ProductHandler struct {
	log            *logger.Logger
	productService services.ProductService
}

func NewProductHandler(log *logger.Logger, productService services.ProductService) *ProductHandler {
	return &ProductHandler{
		log:            log.With("handler", "ProductHandler"),
		productService: productService,
	}
}

// GET /api/v1/products
func (h *ProductHandler) List(c *gin.Context) {
	filter := listFilter(c)
	products, total, err := h.productService.List(c.Request.Context(), filter)
	if err != nil {
		RespondErr(c, err)
		return
	}
	RespondOK(c, gin.H{
		"products": products,
		"total":    total,
		"page":     pageOf(filter),
		"size":     filter.Limit,
	})
}

// GET /api/v1/products/categories
func (h *ProductHandler) Categories(c *gin.Context) {
	categories, err := h.productService.Categories(c.Request.Context())
	if err != nil {
		RespondErr(c, err)
		return
	}
	RespondOK(c, categories)
}

// GET /api/v1/products/:id
func (h *ProductHandler) Get(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		RespondErr(c, err)
		return
	}
	product, err := h.productService.Get(c.Request.Context(), id)
	if err != nil {
		RespondErr(c, err)
		return
	}
	RespondOK(c, product)
}

type productCreateRequest struct {
	Name           string       `json:"name" binding:"required"`
	Category       string       `json:"category" binding:"required"`
	Description    string       `json:"description"`
	Features       jsoncol.List `json:"features"`
	ImagePath      string       `json:"image_path"`
	Images         jsoncol.List `json:"images"`
	Videos         jsoncol.List `json:"videos"`
	Specifications jsoncol.Map  `json:"specifications"`
	Detailed       jsoncol.Map  `json:"detailed"`
	Price          *float64     `json:"price"`
	Status         string       `json:"status"`
}

// POST /api/v1/products
func (h *ProductHandler) Create(c *gin.Context) {
	var req productCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "validation_failed", err)
		return
	}
	product := &types.Product{
		Name:           req.Name,
		Category:       req.Category,
		Description:    req.Description,
		Features:       req.Features,
		ImagePath:      req.ImagePath,
		Images:         req.Images,
		Videos:         req.Videos,
		Specifications: req.Specifications,
		Detailed:       req.Detailed,
		Price:          req.Price,
		Status:         req.Status,
	}
	if err := h.productService.Create(c.Request.Context(), product); err != nil {
		RespondErr(c, err)
		return
	}
	RespondCreated(c, product)
}

type productUpdateRequest struct {
	Name           *string       `json:"name"`
	Category       *string       `json:"category"`
	Description    *string       `json:"description"`
	Features       *jsoncol.List `json:"features"`
	ImagePath      *string       `json:"image_path"`
	Images         *jsoncol.List `json:"images"`
	Videos         *jsoncol.List `json:"videos"`
	Specifications *jsoncol.Map  `json:"specifications"`
	Detailed       *jsoncol.Map  `json:"detailed"`
	Price          *float64      `json:"price"`
	Status         *string       `json:"status"`
}

func (r *productUpdateRequest) fields() map[string]interface{} {
	fields := map[string]interface{}{}
	if r.Name != nil {
		fields["name"] = *r.Name
	}
	if r.Category != nil {
		fields["category"] = *r.Category
	}
	if r.Description != nil {
		fields["description"] = *r.Description
	}
	if r.Features != nil {
		fields["features"] = *r.Features
	}
	if r.ImagePath != nil {
		fields["image_path"] = *r.ImagePath
	}
	if r.Images != nil {
		fields["images"] = *r.Images
	}
	if r.Videos != nil {
		fields["videos"] = *r.Videos
	}
	if r.Specifications != nil {
		fields["specifications"] = *r.Specifications
	}
	if r.Detailed != nil {
		fields["detailed"] = *r.Detailed
	}
	if r.Price != nil {
		fields["price"] = *r.Price
	}
	if r.Status != nil {
		fields["status"] = *r.Status
	}
	return fields
}

// PUT /api/v1/products/:id
func (h *ProductHandler) Update(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		RespondErr(c, err)
		return
	}
	var req productUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "validation_failed", err)
		return
	}
	product, err := h.productService.Update(c.Request.Context(), id, req.fields())
	if err != nil {
		RespondErr(c, err)
		return
	}
	RespondOK(c, product)
}

// DELETE /api/v1/products/:id
func (h *ProductHandler) Delete(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		RespondErr(c, err)
		return
	}
	if err := h.productService.Delete(c.Request.Context(), id); err != nil {
		RespondErr(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "Продукт успешно удален"})
}

// POST /api/v1/products/upload-image
func (h *ProductHandler) UploadImage(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "validation_failed", err)
		return
	}
	saved, err := h.productService.UploadImage(c.Request.Context(), fh)
	if err != nil {
		RespondErr(c, err)
		return
	}
	RespondOK(c, gin.H{"file_path": saved.Path, "filename": saved.Filename})
}

// POST /api/v1/products/:id/upload-video
func (h *ProductHandler) UploadVideo(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		RespondErr(c, err)
		return
	}
	fh, err := c.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "validation_failed", err)
		return
	}
	product, err := h.productService.UploadVideo(c.Request.Context(), id, fh)
	if err != nil {
		RespondErr(c, err)
		return
	}
	RespondOK(c, product)
}
