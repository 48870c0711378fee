package controllers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gradesphere/gradesphere/internal/app/models/dto"
	"github.com/gradesphere/gradesphere/internal/app/services"
	"github.com/gradesphere/gradesphere/internal/middleware"
	"github.com/gradesphere/gradesphere/internal/pkg/apperrors"
	"github.com/gradesphere/gradesphere/internal/pkg/logger"
	"github.com/gradesphere/gradesphere/internal/pkg/provider"
)

// UserController handles user management and provider webhook endpoints
type UserController struct {
	userService *services.UserService
	verifier    provider.WebhookVerifier
}

// NewUserController creates a new UserController
func NewUserController(userService *services.UserService, verifier provider.WebhookVerifier) *UserController {
	return &UserController{
		userService: userService,
		verifier:    verifier,
	}
}

// HandleProviderWebhook ingests identity provider user events. The raw body
// is verified against the signature headers before any parsing.
// @Summary Provider webhook
// @Description Receives signed user lifecycle events from the identity provider
// @Tags webhooks
// @Accept json
// @Produce json
// @Success 200 {object} dto.APIResponse
// @Failure 401 {object} dto.ErrorResponse "Signature verification failed"
// @Router /webhooks/provider [post]
func (c *UserController) HandleProviderWebhook(ctx *gin.Context) {
	payload, err := io.ReadAll(ctx.Request.Body)
	if err != nil {
		middleware.HandleAPIError(ctx, apperrors.ErrBadRequest)
		return
	}

	if err := c.verifier.Verify(payload, ctx.Request.Header); err != nil {
		logger.Warn().Err(err).Msg("Rejected webhook with bad signature")
		middleware.HandleAPIError(ctx, apperrors.ErrWebhookSignature)
		return
	}

	var event dto.ProviderWebhookEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	if err := c.userService.HandleProviderEvent(ctx, &event); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Webhook processed"))
}

// GetAllUsers lists all synced users
// @Summary List users
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.User}
// @Router /users [get]
func (c *UserController) GetAllUsers(ctx *gin.Context) {
	users, err := c.userService.GetAllUsers(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(users))
}

// UpdateUserRole assigns a role to a user
// @Summary Update user role
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateUserRoleRequest true "User and role"
// @Success 200 {object} dto.APIResponse{data=models.User}
// @Failure 400 {object} dto.ErrorResponse "Invalid role"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /users/role [put]
func (c *UserController) UpdateUserRole(ctx *gin.Context) {
	var req dto.UpdateUserRoleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	user, err := c.userService.UpdateUserRole(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(user))
}

// UpdateUser applies a partial update to a user record
// @Summary Update user
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param request body dto.UpdateUserRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=models.User}
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /users/{id} [put]
func (c *UserController) UpdateUser(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	var req dto.UpdateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	user, err := c.userService.UpdateUser(ctx, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(user))
}

// DeleteUser removes a user record
// @Summary Delete user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /users/{id} [delete]
func (c *UserController) DeleteUser(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	if err := c.userService.DeleteUser(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("User deleted successfully"))
}
