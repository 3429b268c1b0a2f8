package server

import (
	feed "listing-feed/internal/feedService"
	"listing-feed/internal/stream"
	handler "listing-feed/services/feed/handler"

	"github.com/gin-gonic/gin"
)

// SetupRouter configures all Gin routes for the application
func SetupRouter(feedService *feed.FeedService, manager *stream.Manager) *gin.Engine {
	router := gin.New() // New router without default middleware for full control over middleware and logging

	router.Use(gin.Recovery())          // recover from panics
	router.Use(RequestLoggerMiddleware) // custom request logging

	feedHandler := handler.NewFeedHandler(feedService, manager)

	listings := router.Group("/listings")
	{
		listings.GET("", feedHandler.BrowseListingsHandler)
		listings.GET("/counts", feedHandler.CategoryCountsHandler)
		listings.GET("/:listing_id/countdown", feedHandler.CountdownHandler)
	}

	tags := router.Group("/tags")
	{
		tags.GET("/popular", feedHandler.PopularTagsHandler)
	}

	router.GET("/ws/ticks", feedHandler.TickStreamHandler)

	return router
}
