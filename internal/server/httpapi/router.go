// Package httpapi exposes the REST surface of the server: authentication,
// user account routes and the resume document routes, with a JSON error
// envelope of the form {"message": ...}.
package httpapi

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/ekarpova/resumecraft/internal/logging"
	"github.com/ekarpova/resumecraft/internal/server/config"
	"github.com/ekarpova/resumecraft/internal/server/resumes"
	"github.com/ekarpova/resumecraft/internal/server/users"
)

// NewRouter assembles the gin engine. Auth routes are public; everything
// else requires a Bearer access token.
func NewRouter(cfg *config.Config, logger logging.Logger, userService *users.Service, resumeService *resumes.Service) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestID())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORSAllowOrigins
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	r.Use(cors.New(corsConfig))

	authHandler := NewAuthHandler(logger, userService)
	userHandler := NewUserHandler(logger, userService)
	resumeHandler := NewResumeHandler(logger, resumeService)
	authMiddleware := NewAuthMiddleware(cfg.SecretKey)

	api := r.Group("/api")

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/refresh", authHandler.Refresh)
	}

	protected := api.Group("")
	protected.Use(authMiddleware.RequireAuth())
	{
		userGroup := protected.Group("/user")
		{
			userGroup.GET("/profile", userHandler.Profile)
			userGroup.PUT("/profile", userHandler.UpdateProfile)
			userGroup.PUT("/password", userHandler.ChangePassword)
			userGroup.DELETE("/account", userHandler.DeleteAccount)
			userGroup.GET("/stats", userHandler.Stats)
		}

		resumeGroup := protected.Group("/resume")
		{
			resumeGroup.GET("", resumeHandler.List)
			resumeGroup.POST("", resumeHandler.Create)
			resumeGroup.GET("/:id", resumeHandler.Get)
			resumeGroup.PUT("/:id", resumeHandler.Update)
			resumeGroup.DELETE("/:id", resumeHandler.Delete)

			resumeGroup.POST("/:id/personal-info", resumeHandler.SavePersonalInfo)
			resumeGroup.POST("/:id/work-experience", resumeHandler.AddWorkExperience)
			resumeGroup.POST("/:id/education", resumeHandler.AddEducation)
			resumeGroup.POST("/:id/skills", resumeHandler.AddSkill)
		}
	}

	return r
}
