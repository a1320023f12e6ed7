// Package mockapi is a development stand-in for the storefront's REST
// backend. It exposes the same resource endpoints the real backend does, so
// the client packages run unchanged against it.
package mockapi

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/dnminh/vshop/config"
	"github.com/dnminh/vshop/internal/middleware"
	"github.com/dnminh/vshop/internal/storage"
)

// Server bundles the fixture API's dependencies
type Server struct {
	db      *gorm.DB
	uploads storage.Storage
	cfg     *config.Config
}

func NewServer(db *gorm.DB, uploads storage.Storage, cfg *config.Config) *Server {
	return &Server{db: db, uploads: uploads, cfg: cfg}
}

// Router builds the gin engine with all resource routes
func (s *Server) Router() *gin.Engine {
	if s.cfg != nil {
		gin.SetMode(s.cfg.Server.GinMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logging())

	corsConfig := cors.DefaultConfig()
	if s.cfg != nil && len(s.cfg.CORS.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = s.cfg.CORS.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"message": "vshop fixture API is running",
		})
	})

	// Uploaded images are served straight from disk in local mode
	router.Static("/uploads", "./uploads")

	users := router.Group("/users")
	{
		users.GET("", s.ListUsers)
		users.POST("", s.CreateUser)
		users.GET("/:id", s.GetUser)
		users.PUT("/:id", s.UpdateUser)
		users.PATCH("/:id", s.PatchUser)
	}

	products := router.Group("/products")
	{
		products.GET("", s.ListProducts)
		products.POST("", s.CreateProduct)
		products.GET("/:id", s.GetProduct)
		products.PUT("/:id", s.UpdateProduct)
		products.DELETE("/:id", s.DeleteProduct)
	}

	router.GET("/featured_products", s.FeaturedProducts)
	router.POST("/upload", s.Upload)

	return router
}
