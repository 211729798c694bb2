package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"community-pulse/internal/model"
	"community-pulse/internal/service"
	apperrors "community-pulse/pkg/app_errors"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// ContextUserKey handler 從 gin context 取得目前使用者的 key
const ContextUserKey = "currentUser"

// Auth 驗證 Authorization: Bearer <token>，載入使用者並放進 context。
// 被封鎖的使用者在這裡就擋下。
func Auth(users service.AuthService, secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authorization header required"})
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authorization header format must be Bearer {token}"})
			c.Abort()
			return
		}

		token, err := jwt.Parse(parts[1], func(t *jwt.Token) (interface{}, error) {
			// enforce HMAC signing method
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token claims"})
			c.Abort()
			return
		}

		sub, ok := claims["sub"].(string)
		if !ok || sub == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token subject"})
			c.Abort()
			return
		}

		userID, err := strconv.Atoi(sub)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token subject"})
			c.Abort()
			return
		}

		// 每次都讀取最新的使用者旗標，封鎖與授權變更立即生效
		user, err := users.GetUserByID(c, userID)
		if err != nil {
			if err == apperrors.ErrUserNotFound {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "could not validate credentials"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			}
			c.Abort()
			return
		}

		if user.IsBanned {
			c.JSON(http.StatusForbidden, gin.H{"error": apperrors.ErrUserBanned.Error()})
			c.Abort()
			return
		}

		c.Set(ContextUserKey, user)
		c.Next()
	}
}

// RequireAdmin 必須先通過 Auth
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok || !user.IsAdmin {
			c.JSON(http.StatusForbidden, gin.H{"error": apperrors.ErrForbidden.Error()})
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentUser 取出 Auth 放進 context 的使用者
func CurrentUser(c *gin.Context) (*model.User, bool) {
	value, exists := c.Get(ContextUserKey)
	if !exists {
		return nil, false
	}
	user, ok := value.(*model.User)
	return user, ok
}
