package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/inoxmetalart/backend/internal/logger"
	"github.com/inoxmetalart/backend/internal/services"
	"github.com/inoxmetalart/backend/internal/types"
)

type GalleryHandler struct {
	log            *logger.Logger
	galleryService services.GalleryService
}

func NewGalleryHandler(log *logger.Logger, galleryService services.GalleryService) *GalleryHandler {
	return &GalleryHandler{
		log:            log.With("handler", "GalleryHandler"),
		galleryService: galleryService,
	}
}

// GET /api/v1/gallery
func (h *GalleryHandler) List(c *gin.Context) {
	filter := listFilter(c)
	items, total, err := h.galleryService.List(c.Request.Context(), filter)
	if err != nil {
		RespondErr(c, err)
		return
	}
	RespondOK(c, gin.H{
		"galleries": items,
		"total":     total,
		"page":      pageOf(filter),
		"size":      filter.Limit,
	})
}

// GET /api/v1/gallery/categories
func (h *GalleryHandler) Categories(c *gin.Context) {
	categories, err := h.galleryService.Categories(c.Request.Context())
	if err != nil {
		RespondErr(c, err)
		return
	}
	RespondOK(c, categories)
}

// GET /api/v1/gallery/:id
func (h *GalleryHandler) Get(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		RespondErr(c, err)
		return
	}
	item, err := h.galleryService.Get(c.Request.Context(), id)
	if err != nil {
		RespondErr(c, err)
		return
	}
	RespondOK(c, item)
}

// POST /api/v1/gallery
// Multipart form: text fields plus an optional "image" file. The features
// field may be a JSON array or a single value.
func (h *GalleryHandler) Create(c *gin.Context) {
	title := c.PostForm("title")
	category := c.PostForm("category")
	if title == "" || category == "" {
		RespondError(c, http.StatusBadRequest, "validation_failed", errRequired("title", "category"))
		return
	}
	sortOrder, _ := strconv.Atoi(c.DefaultPostForm("sort_order", "0"))
	item := &types.GalleryItem{
		Title:       title,
		Description: c.PostForm("description"),
		Category:    category,
		Color:       c.PostForm("color"),
		Finish:      c.PostForm("finish"),
		Features:    parseListField(c.PostForm("features")),
		Status:      c.DefaultPostForm("status", "active"),
		SortOrder:   sortOrder,
	}
	image, _ := c.FormFile("image")
	if err := h.galleryService.Create(c.Request.Context(), item, image); err != nil {
		RespondErr(c, err)
		return
	}
	RespondCreated(c, item)
}

// PUT /api/v1/gallery/:id
// Same form shape as Create, every field optional; a posted "image" file
// replaces the stored one.
func (h *GalleryHandler) Update(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		RespondErr(c, err)
		return
	}
	fields := map[string]interface{}{}
	setForm(c, fields, "title")
	setForm(c, fields, "description")
	setForm(c, fields, "category")
	setForm(c, fields, "color")
	setForm(c, fields, "finish")
	setFormList(c, fields, "features")
	setForm(c, fields, "status")
	setFormInt(c, fields, "sort_order")

	image, _ := c.FormFile("image")
	item, err := h.galleryService.Update(c.Request.Context(), id, fields, image)
	if err != nil {
		RespondErr(c, err)
		return
	}
	RespondOK(c, item)
}

// DELETE /api/v1/gallery/:id
func (h *GalleryHandler) Delete(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		RespondErr(c, err)
		return
	}
	if err := h.galleryService.Delete(c.Request.Context(), id); err != nil {
		RespondErr(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "Элемент галереи успешно удален"})
}
