package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gradesphere/gradesphere/internal/app/models/dto"
	"github.com/gradesphere/gradesphere/internal/app/services"
	"github.com/gradesphere/gradesphere/internal/middleware"
	"github.com/gradesphere/gradesphere/internal/pkg/apperrors"
)

// AuthController handles student self-service authentication endpoints
type AuthController struct {
	authService *services.AuthService
}

// NewAuthController creates a new AuthController
func NewAuthController(authService *services.AuthService) *AuthController {
	return &AuthController{
		authService: authService,
	}
}

// Login authenticates a student with email and password
// @Summary Student login
// @Description Authenticates a student and returns a session token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.StudentLoginRequest true "Login credentials"
// @Success 200 {object} dto.APIResponse{data=dto.StudentLoginResponse}
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Router /auth/student/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.StudentLoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	resp, err := c.authService.Login(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp))
}

// Verify confirms the caller's token and returns the student profile
// @Summary Verify student session
// @Description Returns the profile behind a valid student token
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.StudentProfile}
// @Failure 401 {object} dto.ErrorResponse "Invalid or expired token"
// @Router /auth/student/verify [post]
func (c *AuthController) Verify(ctx *gin.Context) {
	principal := middleware.GetPrincipal(ctx)
	if principal == nil || !principal.IsStudent() {
		middleware.HandleAPIError(ctx, apperrors.ErrNotAuthenticated)
		return
	}

	profile, err := c.authService.GetProfile(ctx, principal.StudentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(profile))
}

// ChangePassword replaces the authenticated student's password
// @Summary Change password
// @Description Verifies the current password and stores a new one
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ChangePasswordRequest true "Current and new passwords"
// @Success 200 {object} dto.APIResponse
// @Failure 401 {object} dto.ErrorResponse "Current password is wrong"
// @Router /auth/student/change-password [post]
func (c *AuthController) ChangePassword(ctx *gin.Context) {
	principal := middleware.GetPrincipal(ctx)
	if principal == nil || !principal.IsStudent() {
		middleware.HandleAPIError(ctx, apperrors.ErrNotAuthenticated)
		return
	}

	var req dto.ChangePasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	if err := c.authService.ChangePassword(ctx, principal.StudentID, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Password changed successfully"))
}
