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

const chatPageSize = 100

// ChatHandler serves the append-only chat wall. Reading is public,
// posting requires login.
type ChatHandler struct {
	DB *gorm.DB
}

func NewChatHandler(db *gorm.DB) *ChatHandler {
	return &ChatHandler{DB: db}
}

func (h *ChatHandler) List(c *gin.Context) {
	// fetch the newest page, then flip it back to chronological order so
	// fresh posts are never pushed out by the cap
	var messages []models.ChatMessage
	if err := h.DB.Order("id DESC").
		Limit(chatPageSize).
		Find(&messages).Error; err != nil {
		log.Printf("chat: list: %v", err)
		util.Error(c, http.StatusInternalServerError, "something went wrong")
		return
	}
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}

	list := make([]gin.H, 0, len(messages))
	for _, m := range messages {
		list = append(list, gin.H{
			"id":        m.ID,
			"name":      m.Name,
			"message":   m.Message,
			"timestamp": m.CreatedAt,
		})
	}

	util.Success(c, util.Response{"messages": list})
}

type postChatReq struct {
	Message string `json:"message" binding:"required,max=1024"`
}

func (h *ChatHandler) Post(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, "authentication required")
		return
	}

	var req postChatReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, "message is required")
		return
	}

	msg := models.ChatMessage{
		UserID:  user.ID,
		Name:    user.Name,
		Message: strings.TrimSpace(req.Message),
	}
	if err := h.DB.Create(&msg).Error; err != nil {
		log.Printf("chat: post: %v", err)
		util.Error(c, http.StatusInternalServerError, "something went wrong")
		return
	}

	util.Success(c, nil)
}
