package api

import (
	"github.com/gin-gonic/gin"

	"github.com/abysswarrior/aban-tether-interview/internal/transport/api/middlewares"
)

// getUserIDFromContext возвращает id текущего юзера, записанный auth-middleware.
func getUserIDFromContext(c *gin.Context) int64 {
	return c.GetInt64(middlewares.CurrentUserIDKey)
}
