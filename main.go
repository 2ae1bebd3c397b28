package main

import (
	"log"
	"os"

	"foodhopper/config"
	_ "foodhopper/docs"
	"foodhopper/models"
	"foodhopper/routes"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func migrate() {
	if err := config.DB.AutoMigrate(
		&models.User{},
		&models.Place{},
		&models.PlaceImage{},
		&models.Review{},
		&models.Like{},
		&models.Favorite{},
	); err != nil {
		panic("Failed to migrate tables: " + err.Error())
	}
}

func main() {
	router := gin.Default()

	if err := config.LoadEnv(); err != nil {
		log.Println("No .env file found, using environment")
	}

	config.ConnectDB()
	config.ConnectCloudinary()

	migrate()

	redisCli, err := config.ConnectRedis()
	if err != nil {
		// Cache is best-effort; handlers fall through to the database.
		log.Printf("Redis unavailable, running without cache: %v", err)
	}

	configCors := cors.DefaultConfig()
	configCors.AddAllowHeaders("Authorization")
	configCors.AllowCredentials = true
	configCors.AllowAllOrigins = false
	configCors.AllowOriginFunc = func(origin string) bool {
		return true
	}

	router.Use(cors.New(configCors))

	routes.SetupRoutes(router, config.DB, redisCli, config.Cloudinary)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8083"
	}
	router.Run(":" + port)
}
