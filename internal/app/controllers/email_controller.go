package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gradesphere/gradesphere/internal/app/models/dto"
	"github.com/gradesphere/gradesphere/internal/app/services"
	"github.com/gradesphere/gradesphere/internal/middleware"
	"github.com/gradesphere/gradesphere/internal/pkg/apperrors"
)

// EmailController handles ad hoc email endpoints
type EmailController struct {
	messagingService *services.MessagingService
}

// NewEmailController creates a new EmailController
func NewEmailController(messagingService *services.MessagingService) *EmailController {
	return &EmailController{
		messagingService: messagingService,
	}
}

// SendToStudents queues a staff message for a list of students
// @Summary Email students
// @Description Queues an email to each addressed student
// @Tags emails
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.SendToStudentsRequest true "Recipients and message"
// @Success 200 {object} dto.APIResponse{data=dto.BulkEmailResponse}
// @Router /emails/send-to-students [post]
func (c *EmailController) SendToStudents(ctx *gin.Context) {
	principal := middleware.GetPrincipal(ctx)
	if principal == nil {
		middleware.HandleAPIError(ctx, apperrors.ErrNotAuthenticated)
		return
	}

	var req dto.SendToStudentsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	result, err := c.messagingService.SendToStudents(ctx, principal, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(result))
}

// SendToAdmin queues a message from the authenticated student to the
// administration
// @Summary Email the administration
// @Tags emails
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.SendToAdminRequest true "Subject and message"
// @Success 200 {object} dto.APIResponse
// @Router /emails/send-to-admin [post]
func (c *EmailController) SendToAdmin(ctx *gin.Context) {
	principal := middleware.GetPrincipal(ctx)
	if principal == nil || !principal.IsStudent() {
		middleware.HandleAPIError(ctx, apperrors.ErrNotAuthenticated)
		return
	}

	var req dto.SendToAdminRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	if err := c.messagingService.SendToAdmin(ctx, principal.StudentID, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Message queued for delivery"))
}
