package handler

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/Louis-BT/Student-Portal/internal/middleware"
	"github.com/Louis-BT/Student-Portal/internal/models"
	"github.com/Louis-BT/Student-Portal/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// LeadershipHandler serves the student side of the leadership workflow.
// Review and approval live in the admin handler.
type LeadershipHandler struct {
	DB *gorm.DB
}

func NewLeadershipHandler(db *gorm.DB) *LeadershipHandler {
	return &LeadershipHandler{DB: db}
}

// ---------- apply ----------

type applyReq struct {
	Position   string `json:"position" binding:"required,max=64"`
	Experience string `json:"experience"`
	Vision     string `json:"vision" binding:"required"`
	Reference  string `json:"reference" binding:"max=128"`
}

// Apply files a new application. Earlier applications are not deleted;
// the latest one (by recency) answers the status query.
func (h *LeadershipHandler) Apply(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, "authentication required")
		return
	}

	var req applyReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, "position and vision are required")
		return
	}

	app := models.LeadershipApplication{
		UserID:      user.ID,
		Name:        user.Name,
		Institution: user.Institution,
		Position:    strings.TrimSpace(req.Position),
		Experience:  req.Experience,
		Vision:      req.Vision,
		Reference:   strings.TrimSpace(req.Reference),
		Status:      models.StatusPending,
	}
	if err := h.DB.Create(&app).Error; err != nil {
		log.Printf("leadership: create application: %v", err)
		util.Error(c, http.StatusInternalServerError, "something went wrong")
		return
	}

	util.Success(c, util.Response{
		"application": gin.H{
			"id":       app.ID,
			"position": app.Position,
			"status":   app.Status,
		},
	})
}

// Status returns the status of the user's most recent application, or
// NONE when they have never applied.
func (h *LeadershipHandler) Status(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, "authentication required")
		return
	}

	var app models.LeadershipApplication
	err := h.DB.Where("user_id = ?", user.ID).
		Order("id DESC").
		First(&app).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		util.Success(c, util.Response{"status": "NONE"})
		return
	}
	if err != nil {
		log.Printf("leadership: load status: %v", err)
		util.Error(c, http.StatusInternalServerError, "something went wrong")
		return
	}

	util.Success(c, util.Response{
		"status":   app.Status,
		"position": app.Position,
	})
}
