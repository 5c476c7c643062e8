// Package routes wires the controllers onto the gin router with the
// session and role gates each view needs.
package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/ecemk/classboard/internal/app/controllers"
	"github.com/ecemk/classboard/internal/app/models"
	"github.com/ecemk/classboard/internal/middleware"
)

// SetupRouter configures all application routes.
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	dashboardController *controllers.DashboardController,
	roomController *controllers.RoomController,
	userController *controllers.UserController,
	academicsController *controllers.AcademicsController,
	contentController *controllers.ContentController,
	authMiddleware *middleware.AuthMiddleware,
) {
	v1 := router.Group("/api/v1")

	// --- Public routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/login", authController.Login)
		auth.POST("/logout", authController.Logout)
		auth.POST("/forgot-password", authController.ForgotPassword)
	}

	// Room browsing and the selector collections are public reads.
	v1.GET("/rooms", roomController.ListRooms)
	v1.GET("/blocks", roomController.ListBlocks)
	v1.GET("/departments", academicsController.ListDepartments)
	v1.GET("/faculties", academicsController.ListFaculties)

	// Anyone may leave feedback; moderation stays gated below.
	v1.POST("/feedback", contentController.SubmitFeedback)

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.SessionAuth())
	{
		authenticated.GET("/auth/profile", authController.Profile)
		authenticated.GET("/dashboard", dashboardController.Overview)
		authenticated.GET("/announcements", contentController.ListAnnouncements)
		authenticated.GET("/courses", academicsController.ListCourses)
		authenticated.GET("/students", userController.ListStudents)

		// Room management is shared by admins and department heads.
		roomAdmin := authenticated.Group("/rooms")
		roomAdmin.Use(authMiddleware.RoleRequired(models.RoleAdmin, models.RoleDepartmentHead))
		{
			roomAdmin.POST("", roomController.CreateRoom)
			roomAdmin.PUT("/:id", roomController.UpdateRoom)
			roomAdmin.DELETE("/:id", roomController.DeleteRoom)
			roomAdmin.GET("/export", roomController.ExportRooms)
		}

		// User management is admin only.
		userAdmin := authenticated.Group("/users")
		userAdmin.Use(authMiddleware.RoleRequired(models.RoleAdmin))
		{
			userAdmin.GET("", userController.ListUsers)
			userAdmin.POST("/provision", userController.ProvisionUser)
			userAdmin.PUT("/:id", userController.UpdateUser)
			userAdmin.DELETE("/:id", userController.DeleteUser)
			userAdmin.GET("/export", userController.ExportUsers)
		}

		studentAdmin := authenticated.Group("/students")
		studentAdmin.Use(authMiddleware.RoleRequired(models.RoleAdmin, models.RoleDepartmentHead))
		{
			studentAdmin.PUT("/:id", userController.UpdateStudent)
		}

		courseAdmin := authenticated.Group("/courses")
		courseAdmin.Use(authMiddleware.RoleRequired(models.RoleAdmin, models.RoleDepartmentHead))
		{
			courseAdmin.POST("", academicsController.CreateCourse)
			courseAdmin.PUT("/:id", academicsController.UpdateCourse)
			courseAdmin.DELETE("/:id", academicsController.DeleteCourse)
		}

		departmentAdmin := authenticated.Group("/departments")
		departmentAdmin.Use(authMiddleware.RoleRequired(models.RoleAdmin))
		{
			departmentAdmin.DELETE("/:id", academicsController.DeleteDepartment)
		}

		// Feedback moderation is open to staff roles.
		feedbackStaff := authenticated.Group("/feedback")
		feedbackStaff.Use(authMiddleware.RoleRequired(models.RoleAdmin, models.RoleInstructor, models.RoleDepartmentHead))
		{
			feedbackStaff.GET("", contentController.ListFeedback)
			feedbackStaff.PUT("/:id/status", contentController.ModerateFeedback)
			feedbackStaff.DELETE("/:id", contentController.DeleteFeedback)
			feedbackStaff.GET("/export", contentController.ExportFeedback)
		}

		announcementStaff := authenticated.Group("/announcements")
		announcementStaff.Use(authMiddleware.RoleRequired(models.RoleAdmin, models.RoleDepartmentHead))
		{
			announcementStaff.POST("", contentController.CreateAnnouncement)
			announcementStaff.PUT("/:id", contentController.UpdateAnnouncement)
			announcementStaff.DELETE("/:id", contentController.DeleteAnnouncement)
		}
	}
}
