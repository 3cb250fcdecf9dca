package app

import (
	"lms_backend/docs"
	"lms_backend/internal/config"
	"lms_backend/internal/middleware"
	"lms_backend/internal/model"
	"lms_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())
	router.GET("/health", c.health.Health)

	a.registerPublicRoutes(router, c)

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		a.registerLearnerRoutes(authGroup, c)
		a.registerInstructorRoutes(authGroup, c)
		a.registerAdminRoutes(authGroup, c)
	}
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.POST("/auth/register", c.auth.Register)
		public.POST("/auth/login", c.auth.Login)

		public.GET("/courses", c.course.ListCourses)
		public.GET("/courses/:id", c.course.GetCourse)

		public.GET("/certificates/verify/:code", c.enrollment.VerifyCertificate)
		public.GET("/leaderboard", c.points.Leaderboard)
	}
}

func (a *App) registerLearnerRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/users/me", c.user.GetProfile)
	rg.PUT("/users/me", c.user.UpdateProfile)

	rg.POST("/courses/:id/enroll", c.enrollment.Enroll)
	rg.GET("/enrollments", c.enrollment.ListMine)
	rg.GET("/enrollments/:id", c.enrollment.GetEnrollment)
	rg.POST("/enrollments/:id/lessons/:lessonId/complete", c.enrollment.CompleteLesson)
	rg.GET("/certificates", c.enrollment.ListCertificates)

	rg.POST("/quizzes/:id/attempts", c.quiz.StartAttempt)
	rg.POST("/quizzes/:id/attempts/:attemptId", c.quiz.SubmitAttempt)
	rg.GET("/quizzes/:id/attempts", c.quiz.ListAttempts)
	rg.GET("/attempts/:attemptId", c.quiz.GetAttemptResult)

	rg.GET("/notifications", c.notification.List)
	rg.GET("/notifications/unread", c.notification.UnreadCount)
	rg.POST("/notifications/:id/read", c.notification.MarkRead)
	rg.POST("/notifications/read-all", c.notification.MarkAllRead)

	rg.GET("/points", c.points.MySummary)

	rg.POST("/courses/:id/discussions", c.discussion.CreatePost)
	rg.GET("/courses/:id/discussions", c.discussion.ListPosts)
	rg.GET("/discussions/:id", c.discussion.GetPost)
	rg.DELETE("/discussions/:id", c.discussion.DeletePost)
	rg.POST("/discussions/:id/comments", c.discussion.AddComment)
	rg.DELETE("/discussions/comments/:id", c.discussion.DeleteComment)

	rg.POST("/messages", c.message.Send)
	rg.GET("/conversations", c.message.ListConversations)
	rg.GET("/conversations/:id/messages", c.message.ListMessages)
}

func (a *App) registerInstructorRoutes(rg *gin.RouterGroup, c *controllers) {
	instructor := rg.Group("/instructor")
	instructor.Use(middleware.RoleMiddleware(model.Instructor))
	{
		instructor.GET("/courses", c.course.ListMyCourses)
		instructor.POST("/courses", c.course.CreateCourse)
		instructor.PUT("/courses/:id", c.course.UpdateCourse)
		instructor.DELETE("/courses/:id", c.course.DeleteCourse)

		instructor.POST("/courses/:id/lessons", c.course.AddLesson)
		instructor.PUT("/lessons/:id", c.course.UpdateLesson)
		instructor.DELETE("/lessons/:id", c.course.DeleteLesson)

		instructor.POST("/courses/:id/quizzes", c.course.AddQuiz)
		instructor.PUT("/quizzes/:id", c.course.UpdateQuiz)

		instructor.POST("/quizzes/:id/questions", c.course.AddQuestion)
		instructor.PUT("/questions/:id", c.course.UpdateQuestion)
		instructor.DELETE("/questions/:id", c.course.DeleteQuestion)
	}
}

func (a *App) registerAdminRoutes(rg *gin.RouterGroup, c *controllers) {
	admin := rg.Group("/admin")
	admin.Use(middleware.RoleMiddleware(model.Admin))
	{
		admin.GET("/dashboard", c.dashboard.GetStats)
		admin.GET("/users", c.user.ListUsers)
	}
}
