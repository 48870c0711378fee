package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gradesphere/gradesphere/internal/app/controllers"
	"github.com/gradesphere/gradesphere/internal/app/models"
	"github.com/gradesphere/gradesphere/internal/app/models/dto"
	"github.com/gradesphere/gradesphere/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	studentController *controllers.StudentController,
	courseController *controllers.CourseController,
	gradeController *controllers.GradeController,
	userController *controllers.UserController,
	emailController *controllers.EmailController,
	authMiddleware *middleware.AuthMiddleware,
) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, dto.NewMessageResponse("ok"))
	})

	api := router.Group("/api")

	// --- Public routes ---

	// Provider webhooks authenticate by signature, not by session.
	api.POST("/webhooks/provider", userController.HandleProviderWebhook)

	auth := api.Group("/auth/student")
	{
		auth.POST("/login", authController.Login)

		authProtected := auth.Group("")
		authProtected.Use(authMiddleware.RequireStudent())
		{
			authProtected.POST("/verify", authController.Verify)
			authProtected.POST("/change-password", authController.ChangePassword)
		}
	}

	// --- Student self-service routes ---

	me := api.Group("/students/me")
	me.Use(authMiddleware.RequireStudent())
	{
		me.GET("", studentController.GetMyProfile)
		me.PUT("", studentController.UpdateMyProfile)
	}

	myGrades := api.Group("/grades/my-grades")
	myGrades.Use(authMiddleware.RequireStudent())
	{
		myGrades.GET("", gradeController.GetMyGrades)
	}

	sendToAdmin := api.Group("/emails/send-to-admin")
	sendToAdmin.Use(authMiddleware.RequireStudent())
	{
		sendToAdmin.POST("", emailController.SendToAdmin)
	}

	// --- Staff routes ---

	students := api.Group("/students")
	students.Use(authMiddleware.RequireStaff(models.StaffRoles...))
	{
		students.POST("", studentController.CreateStudent)
		students.GET("", studentController.GetAllStudents)
		students.GET("/:id", studentController.GetStudentByID)
		students.PUT("/:id", studentController.UpdateStudent)
		students.DELETE("/:id", studentController.DeleteStudent)
	}

	courses := api.Group("/courses")
	courses.Use(authMiddleware.RequireStaff(models.StaffRoles...))
	{
		courses.POST("", courseController.CreateCourse)
		courses.GET("", courseController.GetAllCourses)
		courses.GET("/:id", courseController.GetCourseByID)
		courses.PUT("/:id", courseController.UpdateCourse)
		courses.DELETE("/:id", courseController.DeleteCourse)
	}

	grades := api.Group("/grades")
	grades.Use(authMiddleware.RequireStaff(models.StaffRoles...))
	{
		grades.POST("", gradeController.CreateGrade)
		grades.GET("", gradeController.GetAllGrades)
		grades.GET("/:id", gradeController.GetGradeByID)
		grades.GET("/student/:id", gradeController.GetGradesForStudent)
		grades.PUT("/:id", gradeController.UpdateGrade)
		grades.DELETE("/:id", gradeController.DeleteGrade)
	}

	sendToStudents := api.Group("/emails/send-to-students")
	sendToStudents.Use(authMiddleware.RequireStaff(models.StaffRoles...))
	{
		sendToStudents.POST("", emailController.SendToStudents)
	}

	// --- Administrator routes ---

	users := api.Group("/users")
	users.Use(authMiddleware.RequireStaff(models.RoleAdministrator))
	{
		users.GET("", userController.GetAllUsers)
		users.PUT("/role", userController.UpdateUserRole)
		users.PUT("/:id", userController.UpdateUser)
		users.DELETE("/:id", userController.DeleteUser)
	}
}
