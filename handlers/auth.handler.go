package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"housing-service/domain"
	"housing-service/services"
)

type AuthHandler struct {
	authService services.AuthService
	Tracer      trace.Tracer
}

func NewAuthHandler(authService services.AuthService, tracer trace.Tracer) AuthHandler {
	return AuthHandler{authService, tracer}
}

func (h *AuthHandler) Signup(c *gin.Context) {
	spanCtx, span := h.Tracer.Start(c.Request.Context(), "AuthHandler.Signup")
	defer span.End()

	var input domain.SignupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		span.SetStatus(codes.Error, "Invalid JSON request")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON request"})
		return
	}

	user, err := h.authService.Signup(spanCtx, &input)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		abortWithError(c, err)
		return
	}

	user.Password = ""
	span.SetStatus(codes.Ok, "user registered")
	c.JSON(http.StatusCreated, user)
}

func (h *AuthHandler) Login(c *gin.Context) {
	spanCtx, span := h.Tracer.Start(c.Request.Context(), "AuthHandler.Login")
	defer span.End()

	var input domain.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		span.SetStatus(codes.Error, "Invalid JSON request")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON request"})
		return
	}

	accessToken, user, err := h.authService.Login(spanCtx, &input)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		// Credential failures all read the same to the caller.
		if domain.IsValidationError(err) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
			return
		}
		abortWithError(c, err)
		return
	}

	user.Password = ""
	span.SetStatus(codes.Ok, "user logged in")
	c.JSON(http.StatusOK, gin.H{"access_token": accessToken, "user": user})
}

func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	spanCtx, span := h.Tracer.Start(c.Request.Context(), "AuthHandler.ForgotPassword")
	defer span.End()

	var requestBody struct {
		Email string `json:"email"`
	}
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		span.SetStatus(codes.Error, "Invalid JSON request")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON request"})
		return
	}

	if err := h.authService.ForgotPassword(spanCtx, requestBody.Email); err != nil {
		span.SetStatus(codes.Error, err.Error())
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "if the address exists, a reset email was sent"})
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	spanCtx, span := h.Tracer.Start(c.Request.Context(), "AuthHandler.ResetPassword")
	defer span.End()

	var requestBody struct {
		Token    string `json:"token"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		span.SetStatus(codes.Error, "Invalid JSON request")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON request"})
		return
	}

	if err := h.authService.ResetPassword(spanCtx, requestBody.Token, requestBody.Password); err != nil {
		span.SetStatus(codes.Error, err.Error())
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "password updated"})
}

func (h *AuthHandler) CurrentUserProfile(c *gin.Context) {
	_, span := h.Tracer.Start(c.Request.Context(), "AuthHandler.CurrentUserProfile")
	defer span.End()

	user, ok := CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not logged in"})
		return
	}

	profile := *user
	profile.Password = ""
	c.JSON(http.StatusOK, &profile)
}
