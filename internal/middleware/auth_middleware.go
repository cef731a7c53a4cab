package middleware

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	autherrors "go-leavehub/internal/auth/errors"
	"go-leavehub/internal/shared/apperror"
	"go-leavehub/internal/shared/response"
)

// AuthMiddleware memvalidasi access token (Bearer header atau cookie) dan
// menaruh user_id, employee_id, dan role di gin context.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c)
		if tokenString == "" {
			abortAuth(c, autherrors.ErrInvalidToken.HTTPStatus, "UNAUTHORIZED", "Token not found")
			return
		}

		claims := jwt.MapClaims{}
		_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %q", token.Method.Alg())
			}
			return []byte(os.Getenv("JWT_SECRET")), nil
		})
		if err != nil {
			appErr := autherrors.ErrInvalidToken
			if errors.Is(err, jwt.ErrTokenExpired) {
				appErr = autherrors.ErrTokenExpired
			}
			abortAuth(c, appErr.HTTPStatus, appErr.Code, appErr.Message)
			return
		}

		userID, _ := claims["user_id"].(string)
		employeeID, _ := claims["employee_id"].(string)
		role, _ := claims["role"].(string)
		if userID == "" || employeeID == "" {
			abortAuth(c, autherrors.ErrInvalidToken.HTTPStatus, apperror.CodeUnauthorized, "Incomplete token claims")
			return
		}

		c.Set("user_id", userID)
		c.Set("employee_id", employeeID)
		c.Set("role", role)

		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); header != "" {
		if token, found := strings.CutPrefix(header, "Bearer "); found {
			return token
		}
	}
	if cookie, err := c.Cookie("access_token"); err == nil {
		return cookie
	}
	return ""
}

func abortAuth(c *gin.Context, status int, code, message string) {
	response.Error(c, status, code, message, nil)
	c.Abort()
}
