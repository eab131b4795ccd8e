package routes

import (
	"github.com/gin-gonic/gin"

	"housing-service/handlers"
)

type AuthRouteHandler struct {
	authHandler handlers.AuthHandler
	requireUser gin.HandlerFunc
}

func NewAuthRouteHandler(authHandler handlers.AuthHandler, requireUser gin.HandlerFunc) AuthRouteHandler {
	return AuthRouteHandler{authHandler, requireUser}
}

func (rc *AuthRouteHandler) AuthRoute(rg *gin.RouterGroup) {
	router := rg.Group("/auth")
	router.Use(handlers.ExtractTraceInfoMiddleware())

	router.POST("/signup", rc.authHandler.Signup)
	router.POST("/login", rc.authHandler.Login)
	router.POST("/forgotPassword", rc.authHandler.ForgotPassword)
	router.POST("/resetPassword", rc.authHandler.ResetPassword)

	router.GET("/me", rc.requireUser, rc.authHandler.CurrentUserProfile)
}
