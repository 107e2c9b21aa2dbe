package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/cemse-backend/internal/http/response"
	"github.com/yungbote/cemse-backend/internal/platform/apierr"
	"github.com/yungbote/cemse-backend/internal/platform/ctxutil"
	"github.com/yungbote/cemse-backend/internal/platform/logger"
	"github.com/yungbote/cemse-backend/internal/services"
)

type AuthMiddleware struct {
	log         *logger.Logger
	authService services.AuthService
}

func NewAuthMiddleware(log *logger.Logger, authService services.AuthService) *AuthMiddleware {
	return &AuthMiddleware{log: log.With("middleware", "AuthMiddleware"), authService: authService}
}

func (am *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractBearer(c)
		if tokenString == "" {
			response.Abort(c, apierr.Unauthorized())
			return
		}
		ctx, err := am.authService.SetContextFromToken(c.Request.Context(), tokenString)
		if err != nil {
			am.log.Debug("Token rejected", append(ctxutil.LogFields(c.Request.Context()), "error", err)...)
			response.Abort(c, apierr.Unauthorized().WithCause(err))
			return
		}
		rd := ctxutil.GetRequestData(ctx)
		if rd == nil || rd.UserID == "" {
			response.Abort(c, apierr.Forbidden())
			return
		}
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func extractBearer(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}
	return ""
}
