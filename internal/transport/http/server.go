package http

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	appsvc "gopherblog/internal/app"
	"gopherblog/internal/bootstrap"
	"gopherblog/internal/repository"
	"gopherblog/internal/transport/http/handler"
	"gopherblog/internal/transport/http/middleware"
)

func NewRouter(app *bootstrap.App) *gin.Engine {
	gin.SetMode(app.Config.App.GinMode)
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins: app.Config.CORS.AllowedOrigins,
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders: []string{"Content-Type", "Authorization"},
	}))

	router.Static("/uploads", app.Config.Upload.Dir)

	healthHandler := handler.NewHealthHandler(app)
	router.GET("/healthz", healthHandler.Check)

	userRepo := repository.NewUserRepository(app.DB)
	postRepo := repository.NewPostRepository(app.DB)
	authService := appsvc.NewAuthService(
		userRepo,
		app.Config.Auth.JWTSecret,
		time.Duration(app.Config.Auth.TokenTTLMinute)*time.Minute,
	)
	blogService := appsvc.NewBlogService(postRepo, app.Uploads, app.Config.App.PublicBaseURL)
	authHandler := handler.NewAuthHandler(authService)
	blogHandler := handler.NewBlogHandler(blogService)

	api := router.Group("/api")
	api.GET("", func(c *gin.Context) {
		c.String(http.StatusOK, "Blog API running")
	})
	api.POST("/register", authHandler.Register)
	api.POST("/login", authHandler.Login)
	api.GET("/blogs", blogHandler.List)

	authorized := api.Group("", middleware.AuthJWT(app.Config.Auth.JWTSecret))
	authorized.POST("/logout", authHandler.Logout)
	authorized.GET("/me", authHandler.Me)
	authorized.PUT("/update-profile", authHandler.UpdateProfile)
	authorized.GET("/my-blogs", blogHandler.ListMine)
	authorized.POST("/blogs", blogHandler.Create)
	authorized.PUT("/blogs/:id", blogHandler.Update)
	authorized.DELETE("/blogs/:id", blogHandler.Delete)

	return router
}
