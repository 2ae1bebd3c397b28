package routes

import (
	"net/http"

	"foodhopper/config"
	"foodhopper/controllers"
	middlewares "foodhopper/middleware"
	"foodhopper/services"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func SetupRoutes(router *gin.Engine, db *gorm.DB, redisCli *redis.Client, cld *cloudinary.Cloudinary) {

	// Uploaded images are served by filename; the map client is plain static
	// files.
	router.Static("/uploads", config.UploadDir())
	router.Static("/static", "./static")
	router.StaticFile("/", "./static/index.html")

	v1 := router.Group("/api/v1")

	v1.GET("/health", func(c *gin.Context) {
		if sqlDB, err := db.DB(); err != nil || sqlDB.Ping() != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"code": 0, "mess": "database unavailable"})
			return
		}
		redisOK := redisCli != nil && redisCli.Ping(config.Ctx).Err() == nil
		c.JSON(http.StatusOK, gin.H{"code": 1, "mess": "ok", "data": gin.H{"redis": redisOK}})
	})

	v1.POST("/auth/register", controllers.RegisterUser)
	v1.POST("/auth/login", controllers.Login)
	v1.POST("/auth/google", controllers.AuthGoogle)
	v1.DELETE("/auth/logout", controllers.Logout)

	v1.GET("/places", controllers.GetAllPlaces)
	v1.GET("/places/:id", controllers.GetPlaceDetail)
	v1.POST("/places", middlewares.AuthMiddleware(0, 1, 2), controllers.CreatePlace)
	v1.POST("/places/:id/review", middlewares.AuthMiddleware(0, 1, 2), controllers.CreateReview)
	v1.POST("/places/:id/like", middlewares.AuthMiddleware(0, 1, 2), controllers.ToggleLike)
	v1.POST("/places/:id/favorite", middlewares.AuthMiddleware(0, 1, 2), controllers.FavoritePlace)

	v1.GET("/reviews", controllers.GetAllReviews)

	v1.GET("/vendor/places", middlewares.AuthMiddleware(1, 2), controllers.GetMyPlaces)

	v1.GET("/admin/places", middlewares.AuthMiddleware(1), controllers.GetAllPlacesAdmin)
	v1.GET("/admin/reviews", middlewares.AuthMiddleware(1), controllers.GetAllReviewsAdmin)
	v1.DELETE("/admin/places/:id", middlewares.AuthMiddleware(1), controllers.DeletePlace)
	v1.DELETE("/admin/reviews/:id", middlewares.AuthMiddleware(1), controllers.DeleteReview)

	v1.POST("/img/upload", middlewares.AuthMiddleware(0, 1, 2), func(c *gin.Context) {
		file, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"code": 0, "mess": "No file attached"})
			return
		}

		url, err := services.UploadAvatar(file)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"code": 0, "mess": "Upload failed", "error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"code": 1, "mess": "Avatar uploaded successfully", "data": gin.H{"url": url}})
	})
}
