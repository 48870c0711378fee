package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gradesphere/gradesphere/internal/app/models/dto"
	"github.com/gradesphere/gradesphere/internal/app/services"
	"github.com/gradesphere/gradesphere/internal/middleware"
	"github.com/gradesphere/gradesphere/internal/pkg/apperrors"
)

// GradeController handles grade recording and retrieval endpoints
type GradeController struct {
	gradeService *services.GradeService
}

// NewGradeController creates a new GradeController
func NewGradeController(gradeService *services.GradeService) *GradeController {
	return &GradeController{
		gradeService: gradeService,
	}
}

// CreateGrade records a grade for a student in a course
// @Summary Record a grade
// @Description Records a grade (0 to 20) for a student in a course and notifies the student
// @Tags grades
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateGradeRequest true "Grade information"
// @Success 201 {object} dto.APIResponse{data=models.Grade}
// @Failure 400 {object} dto.ErrorResponse "Grade out of range"
// @Failure 409 {object} dto.ErrorResponse "Grade already exists for this student and course"
// @Router /grades [post]
func (c *GradeController) CreateGrade(ctx *gin.Context) {
	var req dto.CreateGradeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	grade, err := c.gradeService.CreateGrade(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(grade))
}

// GetAllGrades lists all grades with students and courses
// @Summary List grades
// @Tags grades
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Grade}
// @Router /grades [get]
func (c *GradeController) GetAllGrades(ctx *gin.Context) {
	grades, err := c.gradeService.GetAllGrades(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(grades))
}

// GetGradeByID retrieves one grade with its student and course
// @Summary Get grade
// @Tags grades
// @Produce json
// @Security BearerAuth
// @Param id path int true "Grade ID"
// @Success 200 {object} dto.APIResponse{data=models.Grade}
// @Failure 404 {object} dto.ErrorResponse "Grade not found"
// @Router /grades/{id} [get]
func (c *GradeController) GetGradeByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	grade, err := c.gradeService.GetGradeByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(grade))
}

// GetMyGrades lists the authenticated student's grades
// @Summary Get my grades
// @Tags grades
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Grade}
// @Router /grades/my-grades [get]
func (c *GradeController) GetMyGrades(ctx *gin.Context) {
	principal := middleware.GetPrincipal(ctx)
	if principal == nil || !principal.IsStudent() {
		middleware.HandleAPIError(ctx, apperrors.ErrNotAuthenticated)
		return
	}

	grades, err := c.gradeService.GetGradesForStudent(ctx, principal.StudentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(grades))
}

// GetGradesForStudent lists grades for one student
// @Summary Get grades by student
// @Tags grades
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Success 200 {object} dto.APIResponse{data=[]models.Grade}
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /grades/student/{id} [get]
func (c *GradeController) GetGradesForStudent(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	grades, err := c.gradeService.GetGradesForStudent(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(grades))
}

// UpdateGrade replaces the grade value
// @Summary Update grade
// @Tags grades
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Grade ID"
// @Param request body dto.UpdateGradeRequest true "New grade value"
// @Success 200 {object} dto.APIResponse{data=models.Grade}
// @Failure 404 {object} dto.ErrorResponse "Grade not found"
// @Router /grades/{id} [put]
func (c *GradeController) UpdateGrade(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	var req dto.UpdateGradeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	grade, err := c.gradeService.UpdateGrade(ctx, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(grade))
}

// DeleteGrade removes a grade
// @Summary Delete grade
// @Tags grades
// @Produce json
// @Security BearerAuth
// @Param id path int true "Grade ID"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.ErrorResponse "Grade not found"
// @Router /grades/{id} [delete]
func (c *GradeController) DeleteGrade(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	if err := c.gradeService.DeleteGrade(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Grade deleted successfully"))
}
