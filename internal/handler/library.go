package handler

import (
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/Louis-BT/Student-Portal/internal/middleware"
	"github.com/Louis-BT/Student-Portal/internal/models"
	"github.com/Louis-BT/Student-Portal/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LibraryHandler serves the moderated resource library.
type LibraryHandler struct {
	DB        *gorm.DB
	UploadDir string
}

func NewLibraryHandler(db *gorm.DB, uploadDir string) *LibraryHandler {
	if uploadDir == "" {
		uploadDir = "data/uploads"
	}
	return &LibraryHandler{DB: db, UploadDir: uploadDir}
}

// ListResources is the public listing. It filters strictly to APPROVED;
// pending uploads are invisible until an admin approves them.
func (h *LibraryHandler) ListResources(c *gin.Context) {
	var resources []models.Resource
	if err := h.DB.Where("status = ?", models.StatusApproved).
		Order("id DESC").
		Find(&resources).Error; err != nil {
		log.Printf("library: list resources: %v", err)
		util.Error(c, http.StatusInternalServerError, "something went wrong")
		return
	}

	list := make([]gin.H, 0, len(resources))
	for _, r := range resources {
		list = append(list, gin.H{
			"id":       r.ID,
			"title":    r.Title,
			"category": r.Category,
			"uploader": r.UploaderName,
			"file":     r.FilePath,
		})
	}

	util.Success(c, util.Response{"resources": list})
}

// Upload accepts a multipart form with title, category and a file. The
// file lands on disk under a random name; the row starts out PENDING.
func (h *LibraryHandler) Upload(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, "authentication required")
		return
	}

	title := strings.TrimSpace(c.PostForm("title"))
	if title == "" {
		util.Error(c, http.StatusBadRequest, "title is required")
		return
	}
	category := strings.TrimSpace(c.PostForm("category"))

	file, err := c.FormFile("file")
	if err != nil {
		util.Error(c, http.StatusBadRequest, "file is required")
		return
	}

	if err := os.MkdirAll(h.UploadDir, 0o755); err != nil {
		log.Printf("library: create upload dir: %v", err)
		util.Error(c, http.StatusInternalServerError, "something went wrong")
		return
	}

	storedName := uuid.NewString() + filepath.Ext(file.Filename)
	storedPath := filepath.Join(h.UploadDir, storedName)
	if err := c.SaveUploadedFile(file, storedPath); err != nil {
		log.Printf("library: save upload: %v", err)
		util.Error(c, http.StatusInternalServerError, "something went wrong")
		return
	}

	resource := models.Resource{
		Title:        title,
		Category:     category,
		FilePath:     storedPath,
		UploaderID:   user.ID,
		UploaderName: user.Name,
		Status:       models.StatusPending,
	}
	if err := h.DB.Create(&resource).Error; err != nil {
		log.Printf("library: create resource: %v", err)
		util.Error(c, http.StatusInternalServerError, "something went wrong")
		return
	}

	util.Success(c, util.Response{
		"message": "upload received, pending review",
		"resource": gin.H{
			"id":     resource.ID,
			"title":  resource.Title,
			"status": resource.Status,
		},
	})
}
