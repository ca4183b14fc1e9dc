package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/inoxmetalart/backend/internal/jsoncol"
	"github.com/inoxmetalart/backend/internal/logger"
	"github.com/inoxmetalart/backend/internal/services"
	"github.com/inoxmetalart/backend/internal/types"
)

type MaterialHandler struct {
	log             *logger.Logger
	materialService services.MaterialService
}

func NewMaterialHandler(log *logger.Logger, materialService services.MaterialService) *MaterialHandler {
	return &MaterialHandler{
		log:             log.With("handler", "MaterialHandler"),
		materialService: materialService,
	}
}

// GET /api/v1/materials
func (h *MaterialHandler) List(c *gin.Context) {
	filter := listFilter(c)
	materials, total, err := h.materialService.List(c.Request.Context(), filter)
	if err != nil {
		RespondErr(c, err)
		return
	}
	RespondOK(c, gin.H{"materials": materials, "total": total})
}

// GET /api/v1/materials/categories
// Categories carry a display name: the raw value with underscores spaced
// out and each word capitalized.
func (h *MaterialHandler) Categories(c *gin.Context) {
	categories, err := h.materialService.Categories(c.Request.Context())
	if err != nil {
		RespondErr(c, err)
		return
	}
	out := make([]gin.H, 0, len(categories))
	for _, cat := range categories {
		out = append(out, gin.H{
			"id":    cat.Name,
			"name":  categoryTitle(cat.Name),
			"count": cat.Count,
		})
	}
	RespondOK(c, out)
}

func categoryTitle(raw string) string {
	words := strings.Split(strings.ReplaceAll(raw, "_", " "), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// GET /api/v1/materials/:id
func (h *MaterialHandler) Get(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		RespondErr(c, err)
		return
	}
	material, err := h.materialService.Get(c.Request.Context(), id)
	if err != nil {
		RespondErr(c, err)
		return
	}
	RespondOK(c, material)
}

// POST /api/v1/materials
// Multipart form with a required "file". Tags may arrive as a JSON array
// or a single value.
func (h *MaterialHandler) Create(c *gin.Context) {
	name := c.PostForm("name")
	category := c.PostForm("category")
	if name == "" || category == "" {
		RespondError(c, http.StatusBadRequest, "validation_failed", errRequired("name", "category"))
		return
	}
	file, err := c.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "validation_failed", err)
		return
	}
	sortOrder, _ := strconv.Atoi(c.DefaultPostForm("sort_order", "0"))
	isFeatured, _ := strconv.ParseBool(c.DefaultPostForm("is_featured", "false"))
	material := &types.Material{
		Name:        name,
		Description: c.PostForm("description"),
		Category:    category,
		Tags:        parseListField(c.PostForm("tags")),
		SortOrder:   sortOrder,
		IsFeatured:  isFeatured,
	}
	if err := h.materialService.Create(c.Request.Context(), material, file); err != nil {
		RespondErr(c, err)
		return
	}
	RespondCreated(c, material)
}

type materialUpdateRequest struct {
	Name        *string       `json:"name"`
	Description *string       `json:"description"`
	Category    *string       `json:"category"`
	Tags        *jsoncol.List `json:"tags"`
	SortOrder   *int          `json:"sort_order"`
	IsFeatured  *bool         `json:"is_featured"`
	IsActive    *bool         `json:"is_active"`
	FilePath    *string       `json:"file_path"`
	FileSize    *string       `json:"file_size"`
	FileType    *string       `json:"file_type"`
	DownloadURL *string       `json:"download_url"`
}

// PUT /api/v1/materials/:id
func (h *MaterialHandler) Update(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		RespondErr(c, err)
		return
	}
	var req materialUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "validation_failed", err)
		return
	}
	fields := map[string]interface{}{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.Category != nil {
		fields["category"] = *req.Category
	}
	if req.Tags != nil {
		fields["tags"] = *req.Tags
	}
	if req.SortOrder != nil {
		fields["sort_order"] = *req.SortOrder
	}
	if req.IsFeatured != nil {
		fields["is_featured"] = *req.IsFeatured
	}
	if req.IsActive != nil {
		fields["is_active"] = *req.IsActive
	}
	if req.FilePath != nil {
		fields["file_path"] = *req.FilePath
	}
	if req.FileSize != nil {
		fields["file_size"] = *req.FileSize
	}
	if req.FileType != nil {
		fields["file_type"] = *req.FileType
	}
	if req.DownloadURL != nil {
		fields["download_url"] = *req.DownloadURL
	}
	material, err := h.materialService.Update(c.Request.Context(), id, fields)
	if err != nil {
		RespondErr(c, err)
		return
	}
	RespondOK(c, material)
}

// DELETE /api/v1/materials/:id
func (h *MaterialHandler) Delete(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		RespondErr(c, err)
		return
	}
	if err := h.materialService.Delete(c.Request.Context(), id); err != nil {
		RespondErr(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "Материал успешно удален"})
}

// POST /api/v1/materials/:id/download
func (h *MaterialHandler) Download(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		RespondErr(c, err)
		return
	}
	if err := h.materialService.RecordDownload(c.Request.Context(), id); err != nil {
		RespondErr(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "Счетчик скачиваний обновлен"})
}

// POST /api/v1/materials/upload-file
func (h *MaterialHandler) UploadFile(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "validation_failed", err)
		return
	}
	saved, err := h.materialService.UploadFile(c.Request.Context(), fh)
	if err != nil {
		RespondErr(c, err)
		return
	}
	RespondOK(c, saved)
}
