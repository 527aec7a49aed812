// Package database provides the data access layer for the application.
//
// # Architecture
//
// The database layer is organized into domain-specific sub-packages:
//
//	database/
//	├── database.go      # Connection setup, migrations, theme seeding
//	├── users/           # Accounts and settings
//	├── children/        # Child profiles
//	├── themes/          # Theme catalog
//	├── books/           # Book catalog, pages, table of contents
//	├── reviews/         # Reviews and rating summaries
//	├── favorites/       # Favorite books per user
//	├── progress/        # Reading progress, bookmarks, notes
//	└── activities/      # Learning activity log
//
// # Using Sub-packages
//
// Each sub-package provides a Repository type with domain-specific operations:
//
//	// Initialize database connection
//	db, err := database.NewDatabase("./app.db")
//
//	// Create domain-specific repositories
//	booksRepo := books.NewRepository(db.DB)
//	progressRepo := progress.NewRepository(db.DB)
//
//	// Use repositories
//	book, err := booksRepo.GetBookByID(123)
//	record, err := progressRepo.GetOrCreate(userID, bookID, childID)
//
// # Interface Implementations
//
// Each sub-package implements the store interface declared by the HTTP
// controller that consumes it. Compile-time checks for every pairing live in
// internal/interfaces/checks.go:
//
//	var _ http.BookStore = (*books.Repository)(nil)
//
// # Adding a New Domain
//
// To add a new domain:
//
//  1. Create a new sub-package: internal/database/<domain>/
//  2. Define a Repository struct with a *gorm.DB field
//  3. Add NewRepository(db *gorm.DB) constructor
//  4. Implement the required interface
//  5. Add a compile-time check to internal/interfaces/checks.go
package database
