package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ehonlab/ehon-server/internal/database/favorites"
)

// FavoriteStore defines database operations for favorite books.
type FavoriteStore interface {
	AddFavorite(userID, bookID uint) error
	RemoveFavorite(userID, bookID uint) error
	IsFavorite(userID, bookID uint) (bool, error)
	ListFavoriteBooks(userID uint, limit, offset int) ([]favorites.FavoriteBook, int64, error)
}

type FavoritesController struct {
	store FavoriteStore
	books BookFinder
}

func NewFavoritesController(store FavoriteStore, books BookFinder) *FavoritesController {
	return &FavoritesController{store: store, books: books}
}

// ListFavorites returns the caller's starred books, most recent first.
// GET /api/users/me/favorites
func (fc *FavoritesController) ListFavorites(c *gin.Context) {
	limit, offset := parsePagination(c)
	books, total, err := fc.store.ListFavoriteBooks(GetUserID(c), limit, offset)
	if err != nil {
		respondInternalError(c, err, "list favorites")
		return
	}
	respondPaginated(c, books, total, limit, offset)
}

// AddFavorite stars a book. Starring twice is a no-op.
// PUT /api/users/me/favorites/:bookId
func (fc *FavoritesController) AddFavorite(c *gin.Context) {
	bookID, ok := parseIDParam(c, "bookId")
	if !ok {
		return
	}

	if _, err := fc.books.GetBookByID(bookID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "book")
			return
		}
		respondInternalError(c, err, "add favorite")
		return
	}

	if err := fc.store.AddFavorite(GetUserID(c), bookID); err != nil {
		respondInternalError(c, err, "add favorite")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "favorite added", "is_favorite": true})
}

// RemoveFavorite unstars a book.
// DELETE /api/users/me/favorites/:bookId
func (fc *FavoritesController) RemoveFavorite(c *gin.Context) {
	bookID, ok := parseIDParam(c, "bookId")
	if !ok {
		return
	}

	err := fc.store.RemoveFavorite(GetUserID(c), bookID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "favorite")
			return
		}
		respondInternalError(c, err, "remove favorite")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "favorite removed", "is_favorite": false})
}
