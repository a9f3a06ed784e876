package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/emre/hardwarehub/internal/app/controllers"
	"github.com/emre/hardwarehub/internal/middleware"
)

// Controllers bundles everything the route table needs
type Controllers struct {
	Auth    *controllers.AuthController
	Review  *controllers.ReviewController
	Admin   *controllers.AdminController
	Session *middleware.SessionMiddleware
}

// SetupRoutes registers the web-shell API surface
func SetupRoutes(router *gin.Engine, c Controllers) {
	api := router.Group("/api")
	{
		api.GET("/session", c.Auth.GetSession)
		api.POST("/session/login", c.Auth.Login)
		api.POST("/session/logout", c.Auth.Logout)
		api.POST("/register", c.Auth.Register)
		api.GET("/tags", c.Auth.Tags)

		api.GET("/reviews", c.Review.ListReviews)
		api.GET("/reviews/:id", c.Review.GetReview)
		api.POST("/reviews/:id/comments", c.Session.RequireLogin(), c.Review.PostComment)

		admin := api.Group("/admin", c.Session.RequireAdmin())
		{
			admin.GET("/profiles", c.Admin.ListProfiles)
			admin.POST("/profiles", c.Admin.CreateProfile)
			admin.PUT("/profiles/:id", c.Admin.UpdateProfile)
			admin.POST("/profiles/:id/delete", c.Admin.RequestDelete)
			admin.POST("/profiles/:id/delete/cancel", c.Admin.CancelDelete)
			admin.DELETE("/profiles/:id", c.Admin.ConfirmDelete)
		}
	}
}
