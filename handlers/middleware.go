package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	"housing-service/domain"
	"housing-service/services"
	"housing-service/utils"
)

const currentUserKey = "currentUser"

func ExtractTraceInfoMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := otel.GetTextMapPropagator().Extract(c.Request.Context(), propagation.HeaderCarrier(c.Request.Header))
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// DeserializeUser resolves the bearer token into the stored user and puts
// it on the gin context for the route handlers.
func DeserializeUser(userService services.UserService, secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var accessToken string

		authorizationHeader := c.GetHeader("Authorization")
		fields := strings.Fields(authorizationHeader)
		if len(fields) == 2 && fields[0] == "Bearer" {
			accessToken = fields[1]
		}

		if accessToken == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"status": "fail", "message": "You are not logged in"})
			return
		}

		claims, err := utils.ValidateToken(accessToken, secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"status": "fail", "message": err.Error()})
			return
		}

		userID, err := primitive.ObjectIDFromHex(claims.UserID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"status": "fail", "message": "invalid token subject"})
			return
		}

		user, err := userService.FindUserByID(c.Request.Context(), userID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"status": "fail", "message": "The user belonging to this token no longer exists"})
			return
		}

		c.Set(currentUserKey, user)
		c.Next()
	}
}

// RequireRole gates a route group to one user role.
func RequireRole(role domain.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok || user.UserRole != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"status": "fail", "message": "Permission denied"})
			return
		}
		c.Next()
	}
}

func CurrentUser(c *gin.Context) (*domain.User, bool) {
	value, exists := c.Get(currentUserKey)
	if !exists {
		return nil, false
	}
	user, ok := value.(*domain.User)
	return user, ok
}
