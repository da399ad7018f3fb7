package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/tranminh/mangareader/internal/app/controllers"
	"github.com/tranminh/mangareader/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	accountController *controllers.AccountController,
	groupController *controllers.GroupController,
	storyController *controllers.StoryController,
	commentController *controllers.CommentController,
	followController *controllers.FollowController,
	notificationController *controllers.NotificationController,
	donateController *controllers.DonateController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
	}

	// --- Public read routes ---
	// Account reads carry an optional token: the email field only shows up
	// for the owner or an admin.
	v1.GET("/accounts/:id", authMiddleware.OptionalJWTAuth(), accountController.Get)
	v1.GET("/accounts/username/:username", authMiddleware.OptionalJWTAuth(), accountController.GetByUsername)

	groups := v1.Group("/groups")
	{
		groups.GET("", groupController.List)
		groups.GET("/:id", groupController.Get)
		groups.GET("/:id/comments", commentController.ListByGroup)
		groups.GET("/:id/donates", donateController.ListByGroup)
	}

	stories := v1.Group("/stories")
	{
		stories.GET("", storyController.List)
		stories.GET("/:id", storyController.Get)
		stories.GET("/:id/chapters", storyController.ListChapters)
		stories.GET("/:id/comments", commentController.ListByStory)
		stories.GET("/:id/donates", donateController.ListByStory)
	}

	chapters := v1.Group("/chapters")
	{
		chapters.GET("/:id", storyController.GetChapter)
		chapters.GET("/:id/comments", commentController.ListByChapter)
	}

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.GET("/auth/me", authController.Me)

		authenticated.GET("/accounts", accountController.List)
		authenticated.PATCH("/accounts/:id", accountController.Update)
		authenticated.POST("/accounts/:id/anonymize", accountController.Anonymize)
		authenticated.DELETE("/accounts/:id", accountController.Delete)

		authenticated.POST("/groups", groupController.Create)
		authenticated.PATCH("/groups/:id", groupController.Update)
		authenticated.DELETE("/groups/:id", groupController.Delete)
		authenticated.POST("/groups/:id/members", groupController.AddMember)
		authenticated.DELETE("/groups/:id/members/:accountId", groupController.RemoveMember)

		authenticated.POST("/stories", storyController.Create)
		authenticated.PATCH("/stories/:id", storyController.Update)
		authenticated.PUT("/stories/:id/approval", storyController.SetApproval)
		authenticated.DELETE("/stories/:id", storyController.Delete)
		authenticated.POST("/stories/:id/groups", storyController.AssignGroup)
		authenticated.DELETE("/stories/:id/groups/:groupId", storyController.UnassignGroup)
		authenticated.POST("/stories/:id/chapters", storyController.CreateChapter)

		authenticated.PATCH("/chapters/:id", storyController.UpdateChapter)
		authenticated.PUT("/chapters/:id/approval", storyController.SetChapterApproval)
		authenticated.DELETE("/chapters/:id", storyController.DeleteChapter)

		authenticated.POST("/comments", commentController.Create)
		authenticated.DELETE("/comments/:id", commentController.Delete)

		authenticated.POST("/follows", followController.Create)
		authenticated.GET("/follows", followController.List)
		authenticated.DELETE("/follows/:id", followController.Delete)

		authenticated.GET("/notifications", notificationController.List)
		authenticated.POST("/notifications/read", notificationController.MarkAllRead)
		authenticated.POST("/notifications/:id/read", notificationController.MarkRead)

		authenticated.POST("/donates", donateController.Create)
	}
}
