package middleware

import (
	"fmt"
	"net/http"
	"os"
	"strings"

	"hrm-core/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// StationAuth guards the attendance endpoints: only registered scanning
// stations holding a station JWT may forward tokens. This is deliberately
// not a user-facing session scheme.
func StationAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		tokenString, found := strings.CutPrefix(authHeader, "Bearer ")
		if !found || tokenString == "" {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Station token not found", nil)
			c.Abort()
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method")
			}
			return []byte(os.Getenv("STATION_JWT_SECRET")), nil
		})
		if err != nil || !token.Valid {
			code := "INVALID_TOKEN"
			message := "Invalid station token"
			if err != nil && strings.Contains(err.Error(), "expired") {
				message = "Station token expired"
			}
			response.Error(c, http.StatusUnauthorized, code, message, nil)
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid station token claims", nil)
			c.Abort()
			return
		}

		stationID, ok := claims["station_id"].(string)
		if !ok || stationID == "" {
			response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Station ID not found in token", nil)
			c.Abort()
			return
		}

		c.Set("station_id", stationID)
		c.Next()
	}
}
