package handler

import (
	"errors"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/Louis-BT/Student-Portal/internal/models"
	"github.com/Louis-BT/Student-Portal/internal/session"
	"github.com/Louis-BT/Student-Portal/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AdminHandler serves the admin console: aggregate stats, user
// management, leadership review, resource moderation, broadcasts, the
// support inbox, the audit trail and the system reset.
type AdminHandler struct {
	DB       *gorm.DB
	Sessions session.Store
}

func NewAdminHandler(db *gorm.DB, sessions session.Store) *AdminHandler {
	return &AdminHandler{DB: db, Sessions: sessions}
}

// ---------- stats ----------

func (h *AdminHandler) Stats(c *gin.Context) {
	queries := []struct {
		name  string
		query *gorm.DB
	}{
		{"users", h.DB.Model(&models.User{})},
		{"leaders", h.DB.Model(&models.User{}).Where("role = ?", models.RoleLeader)},
		{"pending_applications", h.DB.Model(&models.LeadershipApplication{}).Where("status = ?", models.StatusPending)},
		{"resources", h.DB.Model(&models.Resource{})},
		{"pending_resources", h.DB.Model(&models.Resource{}).Where("status = ?", models.StatusPending)},
		{"support_tickets", h.DB.Model(&models.SupportTicket{})},
		{"news_items", h.DB.Model(&models.NewsItem{})},
	}

	stats := gin.H{}
	for _, q := range queries {
		var n int64
		if err := q.query.Count(&n).Error; err != nil {
			log.Printf("admin: stats %s: %v", q.name, err)
			util.Error(c, http.StatusInternalServerError, "something went wrong")
			return
		}
		stats[q.name] = n
	}
	util.Success(c, util.Response{"stats": stats})
}

// ---------- users ----------

func (h *AdminHandler) ListUsers(c *gin.Context) {
	var users []models.User
	if err := h.DB.Order("id ASC").Find(&users).Error; err != nil {
		log.Printf("admin: list users: %v", err)
		util.Error(c, http.StatusInternalServerError, "something went wrong")
		return
	}

	list := make([]gin.H, 0, len(users))
	for _, u := range users {
		list = append(list, gin.H{
			"id":          u.ID,
			"name":        u.Name,
			"email":       u.Email,
			"role":        u.Role,
			"institution": u.Institution,
			"gpa":         u.GPA,
			"created_at":  u.CreatedAt,
		})
	}

	util.Success(c, util.Response{"users": list})
}

// DeleteUser removes a single account and its dependent rows. Admin
// accounts cannot be deleted this way. Library resources and audit
// rows are kept on purpose: uploads stay in the library under the
// uploader-name snapshot on the row, and the audit trail must survive
// the accounts it describes.
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		util.Error(c, http.StatusBadRequest, "invalid user id")
		return
	}
	userID := uint(id)

	var user models.User
	if err := h.DB.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.Error(c, http.StatusNotFound, "user not found")
		} else {
			log.Printf("admin: find user: %v", err)
			util.Error(c, http.StatusInternalServerError, "something went wrong")
		}
		return
	}
	if user.Role == models.RoleAdmin {
		util.Error(c, http.StatusBadRequest, "admin accounts cannot be deleted")
		return
	}

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		for _, model := range []interface{}{
			&models.CourseRecord{},
			&models.LeadershipApplication{},
			&models.SupportTicket{},
			&models.ChatMessage{},
			&models.Session{},
		} {
			if err := tx.Where("user_id = ?", userID).Delete(model).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&models.User{}, userID).Error
	})
	if err != nil {
		log.Printf("admin: delete user %d: %v", userID, err)
		util.Error(c, http.StatusInternalServerError, "something went wrong")
		return
	}

	// non-database session stores are invalidated outside the transaction
	if err := h.Sessions.RevokeUser(c.Request.Context(), userID); err != nil {
		log.Printf("admin: revoke sessions of user %d: %v", userID, err)
	}

	util.Success(c, nil)
}

// ---------- leadership review ----------

func (h *AdminHandler) PendingApplications(c *gin.Context) {
	var apps []models.LeadershipApplication
	if err := h.DB.Where("status = ?", models.StatusPending).
		Order("id ASC").
		Find(&apps).Error; err != nil {
		log.Printf("admin: list applications: %v", err)
		util.Error(c, http.StatusInternalServerError, "something went wrong")
		return
	}

	list := make([]gin.H, 0, len(apps))
	for _, app := range apps {
		list = append(list, gin.H{
			"id":          app.ID,
			"user_id":     app.UserID,
			"name":        app.Name,
			"institution": app.Institution,
			"position":    app.Position,
			"experience":  app.Experience,
			"vision":      app.Vision,
			"reference":   app.Reference,
			"status":      app.Status,
			"created_at":  app.CreatedAt,
		})
	}

	util.Success(c, util.Response{"applications": list})
}

type leadershipReviewReq struct {
	ID     uint   `json:"id" binding:"required"`
	Status string `json:"status" binding:"required,oneof=APPROVED REJECTED"`
}

// LeadershipReview moves a PENDING application into a terminal state.
// Approval promotes the applicant to LEADER in the same transaction as
// the status update; rejection never touches the role. Already-issued
// sessions keep their login-time role either way.
func (h *AdminHandler) LeadershipReview(c *gin.Context) {
	var req leadershipReviewReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, "id and status (APPROVED or REJECTED) are required")
		return
	}

	var app models.LeadershipApplication
	if err := h.DB.First(&app, req.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.Error(c, http.StatusNotFound, "application not found")
		} else {
			log.Printf("admin: find application: %v", err)
			util.Error(c, http.StatusInternalServerError, "something went wrong")
		}
		return
	}
	if app.Status != models.StatusPending {
		util.Error(c, http.StatusBadRequest, "application has already been reviewed")
		return
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&app).Update("status", req.Status).Error; err != nil {
			return err
		}
		if req.Status == models.StatusApproved {
			return tx.Model(&models.User{}).
				Where("id = ?", app.UserID).
				Update("role", models.RoleLeader).Error
		}
		return nil
	})
	if err != nil {
		log.Printf("admin: review application %d: %v", req.ID, err)
		util.Error(c, http.StatusInternalServerError, "something went wrong")
		return
	}

	util.Success(c, util.Response{"status": req.Status})
}

// ---------- resource moderation ----------

func (h *AdminHandler) ListResources(c *gin.Context) {
	var resources []models.Resource
	if err := h.DB.Order("id DESC").Find(&resources).Error; err != nil {
		log.Printf("admin: list resources: %v", err)
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
			"status":   r.Status,
			"file":     r.FilePath,
		})
	}

	util.Success(c, util.Response{"resources": list})
}

type approveResourceReq struct {
	ID uint `json:"id" binding:"required"`
}

func (h *AdminHandler) ApproveResource(c *gin.Context) {
	var req approveResourceReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, "id is required")
		return
	}

	result := h.DB.Model(&models.Resource{}).
		Where("id = ?", req.ID).
		Update("status", models.StatusApproved)
	if result.Error != nil {
		log.Printf("admin: approve resource %d: %v", req.ID, result.Error)
		util.Error(c, http.StatusInternalServerError, "something went wrong")
		return
	}
	if result.RowsAffected == 0 {
		util.Error(c, http.StatusNotFound, "resource not found")
		return
	}

	util.Success(c, nil)
}

func (h *AdminHandler) DeleteResource(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		util.Error(c, http.StatusBadRequest, "invalid resource id")
		return
	}

	var resource models.Resource
	if err := h.DB.First(&resource, uint(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.Error(c, http.StatusNotFound, "resource not found")
		} else {
			log.Printf("admin: find resource: %v", err)
			util.Error(c, http.StatusInternalServerError, "something went wrong")
		}
		return
	}

	if err := h.DB.Delete(&resource).Error; err != nil {
		log.Printf("admin: delete resource %d: %v", id, err)
		util.Error(c, http.StatusInternalServerError, "something went wrong")
		return
	}

	// best effort, the row is already gone
	if resource.FilePath != "" {
		_ = os.Remove(resource.FilePath)
	}

	util.Success(c, nil)
}

// ---------- broadcast ----------

type broadcastReq struct {
	Title    string `json:"title" binding:"required,max=128"`
	Message  string `json:"message" binding:"required"`
	Category string `json:"category" binding:"max=64"`
}

func (h *AdminHandler) Broadcast(c *gin.Context) {
	var req broadcastReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, "title and message are required")
		return
	}

	item := models.NewsItem{
		Title:    strings.TrimSpace(req.Title),
		Message:  req.Message,
		Category: strings.TrimSpace(req.Category),
	}
	if err := h.DB.Create(&item).Error; err != nil {
		log.Printf("admin: broadcast: %v", err)
		util.Error(c, http.StatusInternalServerError, "something went wrong")
		return
	}

	util.Success(c, util.Response{"id": item.ID})
}

// ---------- support inbox / audit trail ----------

func (h *AdminHandler) ListSupportTickets(c *gin.Context) {
	var tickets []models.SupportTicket
	if err := h.DB.Order("id DESC").Find(&tickets).Error; err != nil {
		log.Printf("admin: list tickets: %v", err)
		util.Error(c, http.StatusInternalServerError, "something went wrong")
		return
	}

	list := make([]gin.H, 0, len(tickets))
	for _, t := range tickets {
		list = append(list, gin.H{
			"id":         t.ID,
			"user_id":    t.UserID,
			"name":       t.Name,
			"message":    t.Message,
			"created_at": t.CreatedAt,
		})
	}

	util.Success(c, util.Response{"tickets": list})
}

func (h *AdminHandler) ListAuditLog(c *gin.Context) {
	var entries []models.AuditLog
	if err := h.DB.Order("id DESC").Limit(500).Find(&entries).Error; err != nil {
		log.Printf("admin: list audit log: %v", err)
		util.Error(c, http.StatusInternalServerError, "something went wrong")
		return
	}

	list := make([]gin.H, 0, len(entries))
	for _, e := range entries {
		list = append(list, gin.H{
			"id":         e.ID,
			"user_id":    e.UserID,
			"method":     e.Method,
			"path":       e.Path,
			"ip":         e.IP,
			"created_at": e.CreatedAt,
		})
	}

	util.Success(c, util.Response{"audit": list})
}

// ---------- reset ----------

// ResetSystem wipes everything except admin accounts in one transaction:
// dependents first, then non-admin users. Partial completion rolls back
// and the caller sees a generic failure. Running it twice is a no-op.
func (h *AdminHandler) ResetSystem(c *gin.Context) {
	var victimIDs []uint

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.User{}).
			Where("role <> ?", models.RoleAdmin).
			Pluck("id", &victimIDs).Error; err != nil {
			return err
		}

		for _, model := range []interface{}{
			&models.LeadershipApplication{},
			&models.SupportTicket{},
			&models.ChatMessage{},
			&models.AuditLog{},
		} {
			if err := tx.Where("1 = 1").Delete(model).Error; err != nil {
				return err
			}
		}

		if len(victimIDs) > 0 {
			for _, model := range []interface{}{
				&models.CourseRecord{},
				&models.Session{},
			} {
				if err := tx.Where("user_id IN ?", victimIDs).Delete(model).Error; err != nil {
					return err
				}
			}
			if err := tx.Where("id IN ?", victimIDs).Delete(&models.User{}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Printf("admin: reset system: %v", err)
		util.Error(c, http.StatusInternalServerError, "reset failed")
		return
	}

	// non-database session stores are invalidated outside the transaction
	for _, id := range victimIDs {
		if err := h.Sessions.RevokeUser(c.Request.Context(), id); err != nil {
			log.Printf("admin: revoke sessions of user %d: %v", id, err)
		}
	}

	util.Success(c, nil)
}
