package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/inoxmetalart/backend/internal/logger"
	"github.com/inoxmetalart/backend/internal/services"
	"github.com/inoxmetalart/backend/internal/types"
)

type ProjectHandler struct {
	log            *logger.Logger
	projectService services.ProjectService
}

func NewProjectHandler(log *logger.Logger, projectService services.ProjectService) *ProjectHandler {
	return &ProjectHandler{
		log:            log.With("handler", "ProjectHandler"),
		projectService: projectService,
	}
}

// GET /api/v1/projects
func (h *ProjectHandler) List(c *gin.Context) {
	filter := listFilter(c)
	projects, total, err := h.projectService.List(c.Request.Context(), filter)
	if err != nil {
		RespondErr(c, err)
		return
	}
	RespondOK(c, gin.H{
		"projects": projects,
		"total":    total,
		"page":     pageOf(filter),
		"size":     filter.Limit,
	})
}

// GET /api/v1/projects/categories
func (h *ProjectHandler) Categories(c *gin.Context) {
	categories, err := h.projectService.Categories(c.Request.Context())
	if err != nil {
		RespondErr(c, err)
		return
	}
	RespondOK(c, categories)
}

// GET /api/v1/projects/:id
func (h *ProjectHandler) Get(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		RespondErr(c, err)
		return
	}
	project, err := h.projectService.Get(c.Request.Context(), id)
	if err != nil {
		RespondErr(c, err)
		return
	}
	RespondOK(c, project)
}

// POST /api/v1/projects
// Multipart form with an optional "main_image" file and any number of
// "gallery_images" files.
func (h *ProjectHandler) Create(c *gin.Context) {
	title := c.PostForm("title")
	category := c.PostForm("category")
	if title == "" || category == "" {
		RespondError(c, http.StatusBadRequest, "validation_failed", errRequired("title", "category"))
		return
	}
	sortOrder, _ := strconv.Atoi(c.DefaultPostForm("sort_order", "0"))
	isFeatured, _ := strconv.ParseBool(c.DefaultPostForm("is_featured", "false"))
	project := &types.Project{
		Title:            title,
		Description:      c.PostForm("description"),
		ShortDescription: c.PostForm("short_description"),
		Category:         category,
		Client:           c.PostForm("client"),
		Location:         c.PostForm("location"),
		Area:             c.PostForm("area"),
		CompletionDate:   c.PostForm("completion_date"),
		Features:         parseListField(c.PostForm("features")),
		Technologies:     parseListField(c.PostForm("technologies")),
		Status:           c.DefaultPostForm("status", "active"),
		SortOrder:        sortOrder,
		IsFeatured:       isFeatured,
	}
	mainImage, _ := c.FormFile("main_image")
	galleryImages := formFiles(c, "gallery_images")
	if err := h.projectService.Create(c.Request.Context(), project, mainImage, galleryImages); err != nil {
		RespondErr(c, err)
		return
	}
	RespondCreated(c, project)
}

// PUT /api/v1/projects/:id
func (h *ProjectHandler) Update(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		RespondErr(c, err)
		return
	}
	fields := map[string]interface{}{}
	setForm(c, fields, "title")
	setForm(c, fields, "description")
	setForm(c, fields, "short_description")
	setForm(c, fields, "category")
	setForm(c, fields, "client")
	setForm(c, fields, "location")
	setForm(c, fields, "area")
	setForm(c, fields, "completion_date")
	setFormList(c, fields, "features")
	setFormList(c, fields, "technologies")
	setForm(c, fields, "status")
	setFormInt(c, fields, "sort_order")
	setFormBool(c, fields, "is_featured")

	mainImage, _ := c.FormFile("main_image")
	galleryImages := formFiles(c, "gallery_images")
	project, err := h.projectService.Update(c.Request.Context(), id, fields, mainImage, galleryImages)
	if err != nil {
		RespondErr(c, err)
		return
	}
	RespondOK(c, project)
}

// DELETE /api/v1/projects/:id
func (h *ProjectHandler) Delete(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		RespondErr(c, err)
		return
	}
	if err := h.projectService.Delete(c.Request.Context(), id); err != nil {
		RespondErr(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "Проект успешно удален"})
}
