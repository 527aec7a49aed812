package http

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ehonlab/ehon-server/internal/entities"
)

// ProgressStore defines database operations for reading progress, bookmarks
// and notes.
type ProgressStore interface {
	GetOrCreate(userID, bookID, childID uint) (*entities.ReadingProgress, error)
	UpdatePage(record *entities.ReadingProgress, page int, completed bool) error

	AddBookmark(progressID uint, pageNumber int) (*entities.Bookmark, error)
	ListBookmarks(progressID uint) ([]entities.Bookmark, error)
	RemoveBookmark(progressID uint, pageNumber int) error

	AddNote(note *entities.Note) error
	GetNote(id, progressID uint) (*entities.Note, error)
	ListNotes(progressID uint) ([]entities.Note, error)
	UpdateNote(note *entities.Note) error
	DeleteNote(id, progressID uint) error
}

// ChildFinder checks that a child profile exists and belongs to the caller.
type ChildFinder interface {
	GetChild(id, userID uint) (*entities.Child, error)
}

type ProgressController struct {
	store      ProgressStore
	books      BookFinder
	children   ChildFinder
	activities ActivityRecorder
}

func NewProgressController(store ProgressStore, books BookFinder, children ChildFinder, activities ActivityRecorder) *ProgressController {
	return &ProgressController{store: store, books: books, children: children, activities: activities}
}

// resolveProgress validates the book and optional child_id query parameter,
// then returns the caller's progress record, creating it on first read.
func (pc *ProgressController) resolveProgress(c *gin.Context) (*entities.ReadingProgress, bool) {
	bookID, ok := parseIDParam(c, "bookId")
	if !ok {
		return nil, false
	}

	if _, err := pc.books.GetBookByID(bookID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "book")
			return nil, false
		}
		respondInternalError(c, err, "load book")
		return nil, false
	}

	childID, ok := parseOptionalQueryID(c, "child_id")
	if !ok {
		return nil, false
	}
	userID := GetUserID(c)
	if childID > 0 {
		if _, err := pc.children.GetChild(childID, userID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				respondNotFound(c, "child")
				return nil, false
			}
			respondInternalError(c, err, "load child")
			return nil, false
		}
	}

	record, err := pc.store.GetOrCreate(userID, bookID, childID)
	if err != nil {
		respondInternalError(c, err, "load progress")
		return nil, false
	}
	return record, true
}

// GetProgress returns the progress record for a book, creating it at page 1
// on the first read.
// GET /api/users/me/books/:bookId/progress?child_id=
func (pc *ProgressController) GetProgress(c *gin.Context) {
	record, ok := pc.resolveProgress(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, record)
}

type updateProgressRequest struct {
	CurrentPage int  `json:"current_page" binding:"required,min=1"`
	IsCompleted bool `json:"is_completed"`
}

// UpdateProgress moves the reader to a page. The page is stored verbatim,
// even past the book's length.
// PUT /api/users/me/books/:bookId/progress?child_id=
func (pc *ProgressController) UpdateProgress(c *gin.Context) {
	var req updateProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	record, ok := pc.resolveProgress(c)
	if !ok {
		return
	}

	justCompleted := req.IsCompleted && !record.IsCompleted
	if err := pc.store.UpdatePage(record, req.CurrentPage, req.IsCompleted); err != nil {
		respondInternalError(c, err, "update progress")
		return
	}

	if justCompleted {
		if err := pc.activities.Record(&entities.LearningActivity{
			UserID:       record.UserID,
			ChildID:      record.ChildID,
			BookID:       record.BookID,
			ActivityType: entities.ActivityBookReadCompleted,
		}); err != nil {
			log.Printf("Failed to record completion activity: %v", err)
		}
	}

	c.JSON(http.StatusOK, record)
}

// --- Bookmarks ---

// ListBookmarks returns the bookmarks for a book, ordered by page number.
// GET /api/users/me/books/:bookId/bookmarks?child_id=
func (pc *ProgressController) ListBookmarks(c *gin.Context) {
	record, ok := pc.resolveProgress(c)
	if !ok {
		return
	}

	bookmarks, err := pc.store.ListBookmarks(record.ID)
	if err != nil {
		respondInternalError(c, err, "list bookmarks")
		return
	}
	c.JSON(http.StatusOK, bookmarks)
}

type bookmarkRequest struct {
	PageNumber int `json:"page_number" binding:"required,min=1"`
}

// AddBookmark marks a page. Marking the same page twice returns the
// existing bookmark.
// POST /api/users/me/books/:bookId/bookmarks?child_id=
func (pc *ProgressController) AddBookmark(c *gin.Context) {
	var req bookmarkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	record, ok := pc.resolveProgress(c)
	if !ok {
		return
	}

	bookmark, err := pc.store.AddBookmark(record.ID, req.PageNumber)
	if err != nil {
		respondInternalError(c, err, "add bookmark")
		return
	}
	respondCreated(c, bookmark)
}

// RemoveBookmark unmarks a page.
// DELETE /api/users/me/books/:bookId/bookmarks/:pageNumber?child_id=
func (pc *ProgressController) RemoveBookmark(c *gin.Context) {
	pageNumber, ok := parseIDParam(c, "pageNumber")
	if !ok {
		return
	}

	record, ok := pc.resolveProgress(c)
	if !ok {
		return
	}

	err := pc.store.RemoveBookmark(record.ID, int(pageNumber))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "bookmark")
			return
		}
		respondInternalError(c, err, "remove bookmark")
		return
	}
	respondSuccess(c, "bookmark removed")
}

// --- Notes ---

// ListNotes returns the notes for a book, ordered by page then creation time.
// GET /api/users/me/books/:bookId/notes?child_id=
func (pc *ProgressController) ListNotes(c *gin.Context) {
	record, ok := pc.resolveProgress(c)
	if !ok {
		return
	}

	notes, err := pc.store.ListNotes(record.ID)
	if err != nil {
		respondInternalError(c, err, "list notes")
		return
	}
	c.JSON(http.StatusOK, notes)
}

type noteRequest struct {
	PageNumber int    `json:"page_number" binding:"required,min=1"`
	Content    string `json:"content" binding:"required"`
}

// AddNote attaches a note to a page and logs the activity. A page can carry
// any number of notes.
// POST /api/users/me/books/:bookId/notes?child_id=
func (pc *ProgressController) AddNote(c *gin.Context) {
	var req noteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	record, ok := pc.resolveProgress(c)
	if !ok {
		return
	}

	note := entities.Note{
		ProgressID: record.ID,
		PageNumber: req.PageNumber,
		Content:    req.Content,
	}
	if err := pc.store.AddNote(&note); err != nil {
		respondInternalError(c, err, "add note")
		return
	}

	if err := pc.activities.Record(&entities.LearningActivity{
		UserID:       record.UserID,
		ChildID:      record.ChildID,
		BookID:       record.BookID,
		ActivityType: entities.ActivityNoteTaken,
	}); err != nil {
		log.Printf("Failed to record note activity: %v", err)
	}

	respondCreated(c, note)
}

type updateNoteRequest struct {
	PageNumber *int    `json:"page_number" binding:"omitempty,min=1"`
	Content    *string `json:"content" binding:"omitempty,min=1"`
}

// UpdateNote edits a note. Only the provided fields change.
// PUT /api/users/me/books/:bookId/notes/:noteId?child_id=
func (pc *ProgressController) UpdateNote(c *gin.Context) {
	noteID, ok := parseIDParam(c, "noteId")
	if !ok {
		return
	}

	var req updateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	record, ok := pc.resolveProgress(c)
	if !ok {
		return
	}

	note, err := pc.store.GetNote(noteID, record.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "note")
			return
		}
		respondInternalError(c, err, "update note")
		return
	}

	if req.PageNumber != nil {
		note.PageNumber = *req.PageNumber
	}
	if req.Content != nil {
		note.Content = *req.Content
	}

	if err := pc.store.UpdateNote(note); err != nil {
		respondInternalError(c, err, "update note")
		return
	}
	c.JSON(http.StatusOK, note)
}

// DeleteNote removes a note.
// DELETE /api/users/me/books/:bookId/notes/:noteId?child_id=
func (pc *ProgressController) DeleteNote(c *gin.Context) {
	noteID, ok := parseIDParam(c, "noteId")
	if !ok {
		return
	}

	record, ok := pc.resolveProgress(c)
	if !ok {
		return
	}

	err := pc.store.DeleteNote(noteID, record.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "note")
			return
		}
		respondInternalError(c, err, "delete note")
		return
	}
	respondSuccess(c, "note deleted")
}
