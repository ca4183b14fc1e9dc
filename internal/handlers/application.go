package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/inoxmetalart/backend/internal/logger"
	"github.com/inoxmetalart/backend/internal/services"
	"github.com/inoxmetalart/backend/internal/types"
)

type ApplicationHandler struct {
	log                *logger.Logger
	applicationService services.ApplicationService
}

func NewApplicationHandler(log *logger.Logger, applicationService services.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{
		log:                log.With("handler", "ApplicationHandler"),
		applicationService: applicationService,
	}
}

// POST /api/v1/applications
// The public lead form: multipart with required contact fields and any
// number of "files" attachments.
func (h *ApplicationHandler) Create(c *gin.Context) {
	application := &types.Application{
		CompanyName:    c.PostForm("company_name"),
		ContactPerson:  c.PostForm("contact_person"),
		Email:          c.PostForm("email"),
		Phone:          c.PostForm("phone"),
		Country:        c.PostForm("country"),
		City:           c.PostForm("city"),
		ProductType:    c.PostForm("product_type"),
		Quantity:       c.PostForm("quantity"),
		Application:    c.PostForm("application"),
		Deadline:       c.PostForm("deadline"),
		AdditionalInfo: c.PostForm("additional_info"),
	}
	var missing []string
	for _, f := range []struct{ key, val string }{
		{"company_name", application.CompanyName},
		{"contact_person", application.ContactPerson},
		{"email", application.Email},
		{"phone", application.Phone},
		{"country", application.Country},
		{"city", application.City},
		{"product_type", application.ProductType},
		{"quantity", application.Quantity},
		{"application", application.Application},
	} {
		if f.val == "" {
			missing = append(missing, f.key)
		}
	}
	if len(missing) > 0 {
		RespondError(c, http.StatusBadRequest, "validation_failed", errRequired(missing...))
		return
	}

	files := formFiles(c, "files")
	if err := h.applicationService.Create(c.Request.Context(), application, files); err != nil {
		RespondErr(c, err)
		return
	}
	RespondCreated(c, application)
}

// GET /api/v1/applications
func (h *ApplicationHandler) List(c *gin.Context) {
	filter := listFilter(c)
	applications, total, err := h.applicationService.List(c.Request.Context(), filter)
	if err != nil {
		RespondErr(c, err)
		return
	}
	RespondOK(c, gin.H{"applications": applications, "total": total})
}

// GET /api/v1/applications/:id
func (h *ApplicationHandler) Get(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		RespondErr(c, err)
		return
	}
	application, err := h.applicationService.Get(c.Request.Context(), id)
	if err != nil {
		RespondErr(c, err)
		return
	}
	RespondOK(c, application)
}

// PUT /api/v1/applications/:id
func (h *ApplicationHandler) Update(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		RespondErr(c, err)
		return
	}
	var req struct {
		IsProcessed *bool `json:"is_processed"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "validation_failed", err)
		return
	}
	fields := map[string]interface{}{}
	if req.IsProcessed != nil {
		fields["is_processed"] = *req.IsProcessed
	}
	application, err := h.applicationService.Update(c.Request.Context(), id, fields)
	if err != nil {
		RespondErr(c, err)
		return
	}
	RespondOK(c, application)
}

// DELETE /api/v1/applications/:id
func (h *ApplicationHandler) Delete(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		RespondErr(c, err)
		return
	}
	if err := h.applicationService.Delete(c.Request.Context(), id); err != nil {
		RespondErr(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "Заявка успешно удалена"})
}
