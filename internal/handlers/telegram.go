package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/inoxmetalart/backend/internal/jsoncol"
	"github.com/inoxmetalart/backend/internal/logger"
	"github.com/inoxmetalart/backend/internal/services"
	"github.com/inoxmetalart/backend/internal/types"
)

// TelegramHandler exposes the notification relay directly: the site frontend
// posts a lead payload here to push it to the chat without creating a row.
type TelegramHandler struct {
	log      *logger.Logger
	telegram *services.TelegramService
}

func NewTelegramHandler(log *logger.Logger, telegram *services.TelegramService) *TelegramHandler {
	return &TelegramHandler{
		log:      log.With("handler", "TelegramHandler"),
		telegram: telegram,
	}
}

type telegramApplicationRequest struct {
	CompanyName    string `json:"company_name" binding:"required"`
	ContactPerson  string `json:"contact_person" binding:"required"`
	Email          string `json:"email" binding:"required"`
	Phone          string `json:"phone" binding:"required"`
	Country        string `json:"country" binding:"required"`
	City           string `json:"city" binding:"required"`
	ProductType    string `json:"product_type" binding:"required"`
	Quantity       string `json:"quantity" binding:"required"`
	Application    string `json:"application" binding:"required"`
	Deadline       string `json:"deadline"`
	AdditionalInfo string `json:"additional_info"`
	FilePaths      string `json:"file_paths"`
}

// POST /api/v1/telegram/send-application
func (h *TelegramHandler) SendApplication(c *gin.Context) {
	if h.telegram == nil {
		RespondError(c, http.StatusServiceUnavailable, "internal", errNotConfigured)
		return
	}
	var req telegramApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "validation_failed", err)
		return
	}

	// file_paths arrives as encoded column text; a malformed value means
	// no attachments, not a failed request.
	var paths jsoncol.List
	if list, ok := jsoncol.Decode(req.FilePaths).([]interface{}); ok {
		for _, v := range list {
			if s, ok := v.(string); ok {
				paths = append(paths, s)
			}
		}
	}

	application := &types.Application{
		CompanyName:    req.CompanyName,
		ContactPerson:  req.ContactPerson,
		Email:          req.Email,
		Phone:          req.Phone,
		Country:        req.Country,
		City:           req.City,
		ProductType:    req.ProductType,
		Quantity:       req.Quantity,
		Application:    req.Application,
		Deadline:       req.Deadline,
		AdditionalInfo: req.AdditionalInfo,
		FilePaths:      paths,
	}
	if err := h.telegram.SendApplication(c.Request.Context(), application); err != nil {
		RespondErr(c, err)
		return
	}
	RespondOK(c, gin.H{"success": true, "message": "Заявка успешно отправлена в Telegram"})
}

// GET /api/v1/telegram/test
func (h *TelegramHandler) Test(c *gin.Context) {
	if h.telegram == nil {
		RespondError(c, http.StatusServiceUnavailable, "internal", errNotConfigured)
		return
	}
	if err := h.telegram.SendTest(c.Request.Context()); err != nil {
		RespondErr(c, err)
		return
	}
	RespondOK(c, gin.H{"success": true, "message": "Тестовое сообщение отправлено"})
}
