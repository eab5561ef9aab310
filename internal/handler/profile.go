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

// ProfileHandler serves the authenticated user's own record.
type ProfileHandler struct {
	DB *gorm.DB
}

func NewProfileHandler(db *gorm.DB) *ProfileHandler {
	return &ProfileHandler{DB: db}
}

// GetProfile returns the full user record minus the password hash.
// It reads the role fresh from the store, so a promotion shows up here
// even while the session's guard role stays at its login-time snapshot.
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, "authentication required")
		return
	}

	var courses []models.CourseRecord
	if err := h.DB.Where("user_id = ?", user.ID).
		Order("position ASC").
		Find(&courses).Error; err != nil {
		log.Printf("profile: load courses: %v", err)
		util.Error(c, http.StatusInternalServerError, "something went wrong")
		return
	}

	courseList := make([]gin.H, 0, len(courses))
	for _, course := range courses {
		courseList = append(courseList, gin.H{
			"name":    course.Name,
			"credits": course.Credits,
			"grade":   course.Grade,
		})
	}

	util.Success(c, util.Response{
		"user": gin.H{
			"id":          user.ID,
			"name":        user.Name,
			"email":       user.Email,
			"role":        user.Role,
			"institution": user.Institution,
			"phone":       user.Phone,
			"avatar":      user.Avatar,
			"bio":         user.Bio,
			"gpa":         user.GPA,
			"courses":     courseList,
			"created_at":  user.CreatedAt,
		},
	})
}

// ---------- update profile ----------

type updateProfileReq struct {
	Name        string `json:"name" binding:"max=64"`
	Institution string `json:"institution" binding:"max=128"`
	Phone       string `json:"phone" binding:"max=32"`
	Avatar      string `json:"avatar" binding:"max=255"`
	Bio         string `json:"bio" binding:"max=512"`
}

func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, "authentication required")
		return
	}

	var req updateProfileReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, "invalid profile fields")
		return
	}

	// only fields present in the request are touched
	updates := map[string]interface{}{}
	for column, value := range map[string]string{
		"name":        req.Name,
		"institution": req.Institution,
		"phone":       req.Phone,
		"avatar":      req.Avatar,
		"bio":         req.Bio,
	} {
		if v := strings.TrimSpace(value); v != "" {
			updates[column] = v
		}
	}
	if len(updates) == 0 {
		util.Success(c, nil)
		return
	}

	if err := h.DB.Model(user).Updates(updates).Error; err != nil {
		log.Printf("profile: update: %v", err)
		util.Error(c, http.StatusInternalServerError, "something went wrong")
		return
	}

	util.Success(c, nil)
}

// ---------- save GPA ----------

type courseReq struct {
	Name    string  `json:"name" binding:"required,max=128"`
	Credits float64 `json:"credits" binding:"required"`
	Grade   string  `json:"grade" binding:"max=8"`
}

type saveGPAReq struct {
	GPA     float64     `json:"gpa"`
	Courses []courseReq `json:"courses" binding:"dive"`
}

// SaveGPA replaces the user's course sheet. The submitted order is kept
// via the position column.
func (h *ProfileHandler) SaveGPA(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, "authentication required")
		return
	}

	var req saveGPAReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, "invalid gpa payload")
		return
	}

	if err := util.ValidateGPA(req.GPA); err != nil {
		util.Error(c, http.StatusBadRequest, "gpa must be between 0.0 and 4.0")
		return
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", user.ID).
			Delete(&models.CourseRecord{}).Error; err != nil {
			return err
		}
		for i, course := range req.Courses {
			record := models.CourseRecord{
				UserID:   user.ID,
				Name:     strings.TrimSpace(course.Name),
				Credits:  course.Credits,
				Grade:    strings.TrimSpace(course.Grade),
				Position: i,
			}
			if err := tx.Create(&record).Error; err != nil {
				return err
			}
		}
		return tx.Model(user).Update("gpa", req.GPA).Error
	})
	if err != nil {
		log.Printf("profile: save gpa: %v", err)
		util.Error(c, http.StatusInternalServerError, "something went wrong")
		return
	}

	util.Success(c, nil)
}
