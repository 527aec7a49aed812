package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ehonlab/ehon-server/internal/database/reviews"
	"github.com/ehonlab/ehon-server/internal/entities"
)

// BookStore defines database operations for the book catalog.
type BookStore interface {
	CreateBook(book *entities.Book, themeIDs []uint) error
	GetBookByID(id uint) (*entities.Book, error)
	GetBookDetail(id uint) (*entities.Book, error)
	ListBooks(themeID uint, limit, offset int) ([]entities.Book, int64, error)
	UpdateBook(book *entities.Book, themeIDs []uint) error
	DeleteBook(id uint) error

	CreatePage(page *entities.BookPage) error
	GetPage(id, bookID uint) (*entities.BookPage, error)
	ListPages(bookID uint) ([]entities.BookPage, error)
	UpdatePage(page *entities.BookPage) error
	DeletePage(id, bookID uint) error

	CreateTocItem(item *entities.BookTocItem) error
	GetTocItem(id, bookID uint) (*entities.BookTocItem, error)
	ListTocItems(bookID uint) ([]entities.BookTocItem, error)
	UpdateTocItem(item *entities.BookTocItem) error
	DeleteTocItem(id, bookID uint) error
}

// ReviewSummaryStore provides the rating aggregate embedded in book details.
type ReviewSummaryStore interface {
	GetSummary(bookID uint) (*reviews.Summary, error)
}

type BooksController struct {
	store     BookStore
	summaries ReviewSummaryStore
}

func NewBooksController(store BookStore, summaries ReviewSummaryStore) *BooksController {
	return &BooksController{store: store, summaries: summaries}
}

// bookDetailResponse embeds everything a reader screen needs in one call.
type bookDetailResponse struct {
	*entities.Book
	Pages    []entities.BookPage    `json:"pages"`
	TocItems []entities.BookTocItem `json:"toc_items"`
	Summary  *reviews.Summary       `json:"review_summary"`
}

// ListBooks returns a page of the catalog, optionally filtered by theme.
// GET /api/books?theme_id=&limit=&offset=
func (bc *BooksController) ListBooks(c *gin.Context) {
	themeID, ok := parseOptionalQueryID(c, "theme_id")
	if !ok {
		return
	}

	limit, offset := parsePagination(c)
	books, total, err := bc.store.ListBooks(themeID, limit, offset)
	if err != nil {
		respondInternalError(c, err, "list books")
		return
	}
	respondPaginated(c, books, total, limit, offset)
}

type bookRequest struct {
	Title       string `json:"title" binding:"required,max=512"`
	Author      string `json:"author" binding:"max=256"`
	Description string `json:"description"`
	CoverURL    string `json:"cover_url" binding:"omitempty,max=2048"`
	MinAge      int    `json:"min_age" binding:"min=0,max=18"`
	MaxAge      int    `json:"max_age" binding:"min=0,max=18"`
	TotalPages  int    `json:"total_pages" binding:"min=0"`
	IsPremium   bool   `json:"is_premium"`
	IsFree      bool   `json:"is_free"`
	ThemeIDs    []uint `json:"theme_ids"`
}

// CreateBook adds a book with its theme links.
// POST /api/books
func (bc *BooksController) CreateBook(c *gin.Context) {
	var req bookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	book := entities.Book{
		Title:       req.Title,
		Author:      req.Author,
		Description: req.Description,
		CoverURL:    req.CoverURL,
		MinAge:      req.MinAge,
		MaxAge:      req.MaxAge,
		TotalPages:  req.TotalPages,
		IsPremium:   req.IsPremium,
		IsFree:      req.IsFree,
	}
	err := bc.store.CreateBook(&book, req.ThemeIDs)
	if err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			respondBadRequest(c, "unknown theme id")
			return
		}
		respondInternalError(c, err, "create book")
		return
	}

	detail, err := bc.store.GetBookDetail(book.ID)
	if err != nil {
		respondInternalError(c, err, "create book")
		return
	}
	respondCreated(c, detail)
}

// GetBook returns a book with its themes, pages, TOC and review summary.
// GET /api/books/:id
func (bc *BooksController) GetBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	book, err := bc.store.GetBookDetail(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "book")
			return
		}
		respondInternalError(c, err, "get book")
		return
	}

	pages, err := bc.store.ListPages(id)
	if err != nil {
		respondInternalError(c, err, "get book")
		return
	}
	tocItems, err := bc.store.ListTocItems(id)
	if err != nil {
		respondInternalError(c, err, "get book")
		return
	}
	summary, err := bc.summaries.GetSummary(id)
	if err != nil {
		respondInternalError(c, err, "get book")
		return
	}

	c.JSON(http.StatusOK, bookDetailResponse{
		Book:     book,
		Pages:    pages,
		TocItems: tocItems,
		Summary:  summary,
	})
}

type updateBookRequest struct {
	Title       *string `json:"title" binding:"omitempty,max=512"`
	Author      *string `json:"author" binding:"omitempty,max=256"`
	Description *string `json:"description"`
	CoverURL    *string `json:"cover_url" binding:"omitempty,max=2048"`
	MinAge      *int    `json:"min_age" binding:"omitempty,min=0,max=18"`
	MaxAge      *int    `json:"max_age" binding:"omitempty,min=0,max=18"`
	TotalPages  *int    `json:"total_pages" binding:"omitempty,min=0"`
	IsPremium   *bool   `json:"is_premium"`
	IsFree      *bool   `json:"is_free"`
	ThemeIDs    []uint  `json:"theme_ids"`
}

// UpdateBook updates book fields and reconciles theme links when theme_ids
// is present. Omitting theme_ids leaves the links untouched.
// PUT /api/books/:id
func (bc *BooksController) UpdateBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req updateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	book, err := bc.store.GetBookByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "book")
			return
		}
		respondInternalError(c, err, "update book")
		return
	}

	if req.Title != nil {
		book.Title = *req.Title
	}
	if req.Author != nil {
		book.Author = *req.Author
	}
	if req.Description != nil {
		book.Description = *req.Description
	}
	if req.CoverURL != nil {
		book.CoverURL = *req.CoverURL
	}
	if req.MinAge != nil {
		book.MinAge = *req.MinAge
	}
	if req.MaxAge != nil {
		book.MaxAge = *req.MaxAge
	}
	if req.TotalPages != nil {
		book.TotalPages = *req.TotalPages
	}
	if req.IsPremium != nil {
		book.IsPremium = *req.IsPremium
	}
	if req.IsFree != nil {
		book.IsFree = *req.IsFree
	}

	err = bc.store.UpdateBook(book, req.ThemeIDs)
	if err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			respondBadRequest(c, "unknown theme id")
			return
		}
		respondInternalError(c, err, "update book")
		return
	}

	detail, err := bc.store.GetBookDetail(id)
	if err != nil {
		respondInternalError(c, err, "update book")
		return
	}
	c.JSON(http.StatusOK, detail)
}

// DeleteBook removes a book and everything referencing it.
// DELETE /api/books/:id
func (bc *BooksController) DeleteBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	err := bc.store.DeleteBook(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "book")
			return
		}
		respondInternalError(c, err, "delete book")
		return
	}
	respondSuccess(c, "book deleted")
}

// --- Pages ---

// requireBook loads a book or responds with 404.
func (bc *BooksController) requireBook(c *gin.Context, id uint) bool {
	if _, err := bc.store.GetBookByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "book")
		} else {
			respondInternalError(c, err, "load book")
		}
		return false
	}
	return true
}

// ListPages returns a book's pages ordered by page number.
// GET /api/books/:id/pages
func (bc *BooksController) ListPages(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok || !bc.requireBook(c, id) {
		return
	}

	pages, err := bc.store.ListPages(id)
	if err != nil {
		respondInternalError(c, err, "list pages")
		return
	}
	c.JSON(http.StatusOK, pages)
}

type pageRequest struct {
	PageNumber int    `json:"page_number" binding:"required,min=1"`
	ImageURL   string `json:"image_url" binding:"omitempty,max=2048"`
	AudioURL   string `json:"audio_url" binding:"omitempty,max=2048"`
	Text       string `json:"text"`
}

// CreatePage adds a page to a book.
// POST /api/books/:id/pages
func (bc *BooksController) CreatePage(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok || !bc.requireBook(c, id) {
		return
	}

	var req pageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	page := entities.BookPage{
		BookID:     id,
		PageNumber: req.PageNumber,
		ImageURL:   req.ImageURL,
		AudioURL:   req.AudioURL,
		Text:       req.Text,
	}
	if err := bc.store.CreatePage(&page); err != nil {
		respondInternalError(c, err, "create page")
		return
	}
	respondCreated(c, page)
}

type updatePageRequest struct {
	PageNumber *int    `json:"page_number" binding:"omitempty,min=1"`
	ImageURL   *string `json:"image_url" binding:"omitempty,max=2048"`
	AudioURL   *string `json:"audio_url" binding:"omitempty,max=2048"`
	Text       *string `json:"text"`
}

// UpdatePage updates a page. Only the provided fields change.
// PUT /api/books/:id/pages/:pageId
func (bc *BooksController) UpdatePage(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	pageID, ok := parseIDParam(c, "pageId")
	if !ok {
		return
	}

	var req updatePageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	page, err := bc.store.GetPage(pageID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "page")
			return
		}
		respondInternalError(c, err, "update page")
		return
	}

	if req.PageNumber != nil {
		page.PageNumber = *req.PageNumber
	}
	if req.ImageURL != nil {
		page.ImageURL = *req.ImageURL
	}
	if req.AudioURL != nil {
		page.AudioURL = *req.AudioURL
	}
	if req.Text != nil {
		page.Text = *req.Text
	}

	if err := bc.store.UpdatePage(page); err != nil {
		respondInternalError(c, err, "update page")
		return
	}
	c.JSON(http.StatusOK, page)
}

// DeletePage removes a page from a book.
// DELETE /api/books/:id/pages/:pageId
func (bc *BooksController) DeletePage(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	pageID, ok := parseIDParam(c, "pageId")
	if !ok {
		return
	}

	err := bc.store.DeletePage(pageID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "page")
			return
		}
		respondInternalError(c, err, "delete page")
		return
	}
	respondSuccess(c, "page deleted")
}

// --- Table of contents ---

// ListTocItems returns a book's TOC ordered by page number.
// GET /api/books/:id/toc
func (bc *BooksController) ListTocItems(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok || !bc.requireBook(c, id) {
		return
	}

	items, err := bc.store.ListTocItems(id)
	if err != nil {
		respondInternalError(c, err, "list toc")
		return
	}
	c.JSON(http.StatusOK, items)
}

type tocItemRequest struct {
	Title      string `json:"title" binding:"required,max=256"`
	PageNumber int    `json:"page_number" binding:"required,min=1"`
}

// CreateTocItem adds a TOC item to a book.
// POST /api/books/:id/toc
func (bc *BooksController) CreateTocItem(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok || !bc.requireBook(c, id) {
		return
	}

	var req tocItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	item := entities.BookTocItem{
		BookID:     id,
		Title:      req.Title,
		PageNumber: req.PageNumber,
	}
	if err := bc.store.CreateTocItem(&item); err != nil {
		respondInternalError(c, err, "create toc item")
		return
	}
	respondCreated(c, item)
}

type updateTocItemRequest struct {
	Title      *string `json:"title" binding:"omitempty,max=256"`
	PageNumber *int    `json:"page_number" binding:"omitempty,min=1"`
}

// UpdateTocItem updates a TOC item. Only the provided fields change.
// PUT /api/books/:id/toc/:tocId
func (bc *BooksController) UpdateTocItem(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	tocID, ok := parseIDParam(c, "tocId")
	if !ok {
		return
	}

	var req updateTocItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	item, err := bc.store.GetTocItem(tocID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "toc item")
			return
		}
		respondInternalError(c, err, "update toc item")
		return
	}

	if req.Title != nil {
		item.Title = *req.Title
	}
	if req.PageNumber != nil {
		item.PageNumber = *req.PageNumber
	}

	if err := bc.store.UpdateTocItem(item); err != nil {
		respondInternalError(c, err, "update toc item")
		return
	}
	c.JSON(http.StatusOK, item)
}

// DeleteTocItem removes a TOC item from a book.
// DELETE /api/books/:id/toc/:tocId
func (bc *BooksController) DeleteTocItem(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	tocID, ok := parseIDParam(c, "tocId")
	if !ok {
		return
	}

	err := bc.store.DeleteTocItem(tocID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "toc item")
			return
		}
		respondInternalError(c, err, "delete toc item")
		return
	}
	respondSuccess(c, "toc item deleted")
}
