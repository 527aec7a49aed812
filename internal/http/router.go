package http

import (
	"github.com/gin-gonic/gin"

	"github.com/ehonlab/ehon-server/internal/entities"
)

// NewRouter creates and configures the HTTP router with all endpoints.
// Uses RouterConfig to receive all dependencies, improving testability
// and reducing parameter count.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	router.Use(cfg.AuthMiddleware.Handler())

	adminOnly := cfg.AuthMiddleware.RequireTier(entities.UserTierAdmin)

	// Controllers with their narrow store interfaces
	health := NewHealthController(cfg.Database, cfg.Version)
	authController := NewAuthController(cfg.AuthService)
	usersController := NewUsersController(cfg.UserStore)
	childrenController := NewChildrenController(cfg.ChildStore)
	themesController := NewThemesController(cfg.ThemeStore)
	booksController := NewBooksController(cfg.BookStore, cfg.SummaryStore)
	reviewsController := NewReviewsController(cfg.ReviewStore, cfg.BookStore, cfg.SummaryStore, cfg.ActivityStore)
	favoritesController := NewFavoritesController(cfg.FavoriteStore, cfg.BookStore)
	progressController := NewProgressController(cfg.ProgressStore, cfg.BookStore, cfg.ChildStore, cfg.ActivityStore)
	activitiesController := NewActivitiesController(cfg.ActivityStore, cfg.ChildStore)

	// Health endpoints
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	// Auth endpoints
	router.POST("/auth/register", authController.Register)
	router.POST("/auth/login", authController.Login)

	// Account endpoints
	router.GET("/api/users/me", usersController.GetMe)
	router.PUT("/api/users/me", usersController.UpdateMe)
	router.DELETE("/api/users/me", usersController.DeleteMe)
	router.GET("/api/users/me/settings", usersController.GetSettings)
	router.PUT("/api/users/me/settings", usersController.UpdateSettings)
	router.PUT("/api/users/me/change-email", authController.ChangeEmail)
	router.PUT("/api/users/me/change-password", authController.ChangePassword)

	// Child profile endpoints
	router.GET("/api/children", childrenController.ListChildren)
	router.POST("/api/children", childrenController.CreateChild)
	router.GET("/api/children/:id", childrenController.GetChild)
	router.PUT("/api/children/:id", childrenController.UpdateChild)
	router.DELETE("/api/children/:id", childrenController.DeleteChild)

	// Theme catalog endpoints (mutations are admin-only)
	router.GET("/api/themes", themesController.ListThemes)
	router.POST("/api/themes", adminOnly, themesController.CreateTheme)
	router.GET("/api/themes/:id", themesController.GetTheme)
	router.PUT("/api/themes/:id", adminOnly, themesController.UpdateTheme)
	router.DELETE("/api/themes/:id", adminOnly, themesController.DeleteTheme)
	router.GET("/api/themes/:id/books", themesController.ListBooksByTheme)

	// Book catalog endpoints (mutations are admin-only)
	router.GET("/api/books", booksController.ListBooks)
	router.POST("/api/books", adminOnly, booksController.CreateBook)
	router.GET("/api/books/:id", booksController.GetBook)
	router.PUT("/api/books/:id", adminOnly, booksController.UpdateBook)
	router.DELETE("/api/books/:id", adminOnly, booksController.DeleteBook)
	router.GET("/api/books/:id/pages", booksController.ListPages)
	router.POST("/api/books/:id/pages", adminOnly, booksController.CreatePage)
	router.PUT("/api/books/:id/pages/:pageId", adminOnly, booksController.UpdatePage)
	router.DELETE("/api/books/:id/pages/:pageId", adminOnly, booksController.DeletePage)
	router.GET("/api/books/:id/toc", booksController.ListTocItems)
	router.POST("/api/books/:id/toc", adminOnly, booksController.CreateTocItem)
	router.PUT("/api/books/:id/toc/:tocId", adminOnly, booksController.UpdateTocItem)
	router.DELETE("/api/books/:id/toc/:tocId", adminOnly, booksController.DeleteTocItem)

	// Review endpoints
	router.GET("/api/books/:id/reviews", reviewsController.ListByBook)
	router.POST("/api/books/:id/reviews", reviewsController.CreateReview)
	router.GET("/api/books/:id/reviews/summary", reviewsController.GetSummary)
	router.PUT("/api/reviews/:id", reviewsController.UpdateReview)
	router.DELETE("/api/reviews/:id", reviewsController.DeleteReview)
	router.GET("/api/users/me/reviews", reviewsController.ListMine)

	// Favorite endpoints
	router.GET("/api/users/me/favorites", favoritesController.ListFavorites)
	router.PUT("/api/users/me/favorites/:bookId", favoritesController.AddFavorite)
	router.DELETE("/api/users/me/favorites/:bookId", favoritesController.RemoveFavorite)

	// Reading progress endpoints
	router.GET("/api/users/me/books/:bookId/progress", progressController.GetProgress)
	router.PUT("/api/users/me/books/:bookId/progress", progressController.UpdateProgress)
	router.GET("/api/users/me/books/:bookId/bookmarks", progressController.ListBookmarks)
	router.POST("/api/users/me/books/:bookId/bookmarks", progressController.AddBookmark)
	router.DELETE("/api/users/me/books/:bookId/bookmarks/:pageNumber", progressController.RemoveBookmark)
	router.GET("/api/users/me/books/:bookId/notes", progressController.ListNotes)
	router.POST("/api/users/me/books/:bookId/notes", progressController.AddNote)
	router.PUT("/api/users/me/books/:bookId/notes/:noteId", progressController.UpdateNote)
	router.DELETE("/api/users/me/books/:bookId/notes/:noteId", progressController.DeleteNote)

	// Learning activity endpoints
	router.GET("/api/users/me/activities", activitiesController.ListActivities)
	router.POST("/api/users/me/activities", activitiesController.RecordActivity)

	return router
}
