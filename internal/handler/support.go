package handler

import (
	"log"
	"net/http"
	"strings"

	"github.com/Louis-BT/Student-Portal/internal/middleware"
	"github.com/Louis-BT/Student-Portal/internal/models"
	"github.com/Louis-BT/Student-Portal/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SupportHandler appends tickets to the support inbox. Tickets have no
// status; admins read them through the admin console.
type SupportHandler struct {
	DB *gorm.DB
}

func NewSupportHandler(db *gorm.DB) *SupportHandler {
	return &SupportHandler{DB: db}
}

type createTicketReq struct {
	Message string `json:"message" binding:"required"`
}

func (h *SupportHandler) Create(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, "authentication required")
		return
	}

	var req createTicketReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, "message is required")
		return
	}

	ticket := models.SupportTicket{
		UserID:  user.ID,
		Name:    user.Name,
		Message: strings.TrimSpace(req.Message),
	}
	if err := h.DB.Create(&ticket).Error; err != nil {
		log.Printf("support: create ticket: %v", err)
		util.Error(c, http.StatusInternalServerError, "something went wrong")
		return
	}

	util.Success(c, nil)
}
