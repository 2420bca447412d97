package middleware

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const dbContextKey = "db"

// InjectDB makes the global DB handle available to handlers via the request
// context.
func InjectDB(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(dbContextKey, db)
		c.Next()
	}
}

// GetDB fetches the injected DB handle, nil when none was injected
func GetDB(c *gin.Context) *gorm.DB {
	if v, ok := c.Get(dbContextKey); ok {
		if db, ok := v.(*gorm.DB); ok {
			return db
		}
	}
	return nil
}
