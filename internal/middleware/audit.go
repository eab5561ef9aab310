package middleware

import (
	"github.com/Louis-BT/Student-Portal/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Audit appends one AuditLog row per authenticated request. Anonymous
// traffic is not recorded. Failures to write the row never fail the
// request itself.
func Audit(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		// the session is the audited identity, not the user row
		sess, ok := CurrentSession(c)
		if !ok {
			return
		}

		entry := models.AuditLog{
			UserID:    sess.UserID,
			Method:    c.Request.Method,
			Path:      c.Request.URL.Path,
			IP:        c.ClientIP(),
			UserAgent: c.Request.UserAgent(),
		}
		_ = db.Create(&entry).Error
	}
}
