package handler

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/Louis-BT/Student-Portal/internal/config"
	"github.com/Louis-BT/Student-Portal/internal/middleware"
	"github.com/Louis-BT/Student-Portal/internal/models"
	"github.com/Louis-BT/Student-Portal/internal/session"
	"github.com/Louis-BT/Student-Portal/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AuthHandler serves signup/login/logout.
type AuthHandler struct {
	DB       *gorm.DB
	Sessions session.Store
	Cfg      *config.Config
}

func NewAuthHandler(db *gorm.DB, sessions session.Store, cfg *config.Config) *AuthHandler {
	return &AuthHandler{DB: db, Sessions: sessions, Cfg: cfg}
}

// ---------- signup ----------

type signupReq struct {
	Name     string `json:"name" binding:"required,max=64"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Phone    string `json:"phone" binding:"max=32"`
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var req signupReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, "name, email and password are required")
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	if err := util.ValidateEmail(req.Email); err != nil {
		util.Error(c, http.StatusBadRequest, "invalid email address")
		return
	}
	if err := util.ValidatePassword(req.Password); err != nil {
		util.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	// Friendly duplicate check. A concurrent signup with the same email can
	// slip past it and hit the unique index below, which surfaces as a
	// generic server error instead of this message.
	var count int64
	if err := h.DB.Model(&models.User{}).
		Where("email = ?", req.Email).
		Count(&count).Error; err != nil {
		log.Printf("signup: count users: %v", err)
		util.Error(c, http.StatusInternalServerError, "something went wrong")
		return
	}
	if count > 0 {
		util.Error(c, http.StatusBadRequest, "an account with this email already exists")
		return
	}

	hash, err := util.HashPassword(req.Password, h.Cfg.Security.BcryptCost)
	if err != nil {
		log.Printf("signup: hash password: %v", err)
		util.Error(c, http.StatusInternalServerError, "something went wrong")
		return
	}

	role := models.RoleStudent
	for _, adminEmail := range h.Cfg.Admin.BootstrapEmails {
		if strings.EqualFold(adminEmail, req.Email) {
			role = models.RoleAdmin
			break
		}
	}

	user := models.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        req.Email,
		PasswordHash: hash,
		Role:         role,
		Phone:        strings.TrimSpace(req.Phone),
	}
	if err := h.DB.Create(&user).Error; err != nil {
		log.Printf("signup: create user: %v", err)
		util.Error(c, http.StatusInternalServerError, "something went wrong")
		return
	}

	util.Success(c, util.Response{
		"message": "account created, you can log in now",
	})
}

// ---------- login ----------

type loginReq struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// invalidCredentials is shared by the unknown-email and wrong-password
// paths so responses never disclose whether an email is registered.
const invalidCredentials = "invalid email or password"

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, "email and password are required")
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User
	if err := h.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusUnauthorized, invalidCredentials)
		} else {
			log.Printf("login: find user: %v", err)
			util.Error(c, http.StatusInternalServerError, "something went wrong")
		}
		return
	}

	if !util.CheckPassword(req.Password, user.PasswordHash) {
		util.Error(c, http.StatusUnauthorized, invalidCredentials)
		return
	}

	ttl := time.Duration(h.Cfg.Session.ExpireHours) * time.Hour
	sess := session.New(&user, ttl)
	if err := h.Sessions.Create(c.Request.Context(), sess); err != nil {
		log.Printf("login: create session: %v", err)
		util.Error(c, http.StatusInternalServerError, "something went wrong")
		return
	}

	token, err := util.GenerateToken(h.Cfg.Session.Secret, sess.ID, user.ID, ttl)
	if err != nil {
		log.Printf("login: sign token: %v", err)
		util.Error(c, http.StatusInternalServerError, "something went wrong")
		return
	}

	c.SetCookie(h.Cfg.Session.CookieName, token, int(ttl.Seconds()), "/", "", false, true)

	util.Success(c, util.Response{
		"token": token,
		"user": gin.H{
			"id":          user.ID,
			"name":        user.Name,
			"email":       user.Email,
			"role":        user.Role,
			"institution": user.Institution,
			"avatar":      user.Avatar,
		},
	})
}

// ---------- logout ----------

// Logout revokes the session behind the presented token, so reusing the
// token afterwards resolves to nothing. A request without a valid token
// still gets a success response; there is nothing to invalidate.
func (h *AuthHandler) Logout(c *gin.Context) {
	tokenStr := middleware.ExtractToken(c, h.Cfg.Session.CookieName)
	if tokenStr != "" {
		if claims, err := util.ParseToken(h.Cfg.Session.Secret, tokenStr); err == nil {
			if err := h.Sessions.Revoke(c.Request.Context(), claims.SessionID); err != nil {
				log.Printf("logout: revoke session: %v", err)
				util.Error(c, http.StatusInternalServerError, "something went wrong")
				return
			}
		}
	}

	c.SetCookie(h.Cfg.Session.CookieName, "", -1, "/", "", false, true)
	util.Success(c, nil)
}

// ---------- forgot password ----------

type forgotPasswordReq struct {
	Email string `json:"email" binding:"required"`
}

// ForgotPassword always reports success so the endpoint cannot be used
// to probe which emails are registered.
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req forgotPasswordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, "email is required")
		return
	}

	util.Success(c, util.Response{
		"message": "if that email is registered, reset instructions have been sent",
	})
}
