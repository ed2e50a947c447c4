package main

import (
	"log"
	"os"

	"github.com/isntboxs/docsofboxs-api/db"
	_ "github.com/isntboxs/docsofboxs-api/docs"
	"github.com/isntboxs/docsofboxs-api/routes"

	"github.com/gin-gonic/gin"
)

// @title DocsOfBoxs API
// @version 1.0
// @description Blogging REST API with nested comments and likes
// @host localhost:8080
// @BasePath /api
// @SecurityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Enter the JWT with the Bearer prefix: Bearer <JWT>
func main() {

	if os.Getenv("APP_ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db.InitDB()

	r := routes.SetupRouter()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	if err := r.Run(":" + port); err != nil {
		log.Fatal("Error starting the server:", err)
	}
}
