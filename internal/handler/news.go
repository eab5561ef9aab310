package handler

import (
	"log"
	"net/http"

	"github.com/Louis-BT/Student-Portal/internal/models"
	"github.com/Louis-BT/Student-Portal/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// NewsHandler serves the public announcement feed. Items are created
// through the admin broadcast endpoint only.
type NewsHandler struct {
	DB        *gorm.DB
	FeedLimit int
}

func NewNewsHandler(db *gorm.DB, feedLimit int) *NewsHandler {
	if feedLimit <= 0 {
		feedLimit = 50
	}
	return &NewsHandler{DB: db, FeedLimit: feedLimit}
}

// List returns the most recent announcements first, capped.
func (h *NewsHandler) List(c *gin.Context) {
	var items []models.NewsItem
	if err := h.DB.Order("id DESC").
		Limit(h.FeedLimit).
		Find(&items).Error; err != nil {
		log.Printf("news: list: %v", err)
		util.Error(c, http.StatusInternalServerError, "something went wrong")
		return
	}

	list := make([]gin.H, 0, len(items))
	for _, item := range items {
		list = append(list, gin.H{
			"id":        item.ID,
			"title":     item.Title,
			"message":   item.Message,
			"category":  item.Category,
			"timestamp": item.CreatedAt,
		})
	}

	util.Success(c, util.Response{"news": list})
}
