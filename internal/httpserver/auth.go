package httpserver

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	sessionsvc "github.com/Guilherme-Krepke-Rpv-Senai/catalogo-online/internal/service/session"
)

const loginPath = "/auth/login"

type loginRequest struct {
	Password string `json:"password" binding:"required"`
}

func loginHandler(svc *sessionsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "password required"})
			return
		}
		token, expiresAt, err := svc.Login(c.Request.Context(), req.Password)
		if err != nil {
			if errors.Is(err, sessionsvc.ErrInvalidPassword) {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid password"})
				return
			}
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"token": token, "expiresAt": expiresAt})
	}
}

func logoutHandler(svc *sessionsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := bearerToken(c); token != "" {
			svc.Logout(c.Request.Context(), token)
		}
		c.Status(http.StatusNoContent)
	}
}

// requireAuth is the gate in front of admin routes. Unauthenticated requests
// get a login hint; navigation is the client's job.
func requireAuth(svc *sessionsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !svc.IsAuthenticated(c.Request.Context(), bearerToken(c)) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "authentication required",
				"login": loginPath,
			})
			return
		}
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if token, ok := strings.CutPrefix(header, "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	return ""
}
