// Package interfaces documents the core abstractions used throughout the
// application and verifies them at compile time.
//
// # Interface Categories
//
// ## Data Access Interfaces
//
// Each HTTP controller declares the narrow store interface it needs, and the
// matching repository under internal/database implements it:
//
//   - UserStore: account and settings management (internal/http/users.go)
//   - ChildStore: child profile management (internal/http/children.go)
//   - ThemeStore: theme catalog (internal/http/themes.go)
//   - BookStore: book catalog, pages and TOC (internal/http/books.go)
//   - ReviewStore / ReviewSummaryStore: reviews and aggregates (internal/http/reviews.go)
//   - FavoriteStore: starred books (internal/http/favorites.go)
//   - ProgressStore: reading progress, bookmarks, notes (internal/http/progress.go)
//   - ActivityStore / ActivityRecorder: learning activity log (internal/http/activities.go)
//
// ## Background Work Interfaces
//
//   - ActivityCleaner: retention pruning (internal/tasks/cleanup_activities.go)
//   - PopularityRecomputer: score refresh (internal/tasks/recompute_popularity.go)
//
// # Adding a New Database Domain
//
// To add a new data domain:
//
//  1. Create a sub-package: internal/database/<domain>/
//
//  2. Define a repository:
//
//     type Repository struct { db *gorm.DB }
//
//     func NewRepository(db *gorm.DB) *Repository
//
//  3. Declare the store interface next to the controller that consumes it,
//     listing only the methods that controller calls
//
//  4. Add a compile-time check to checks.go
//
// # Compile-Time Interface Checks
//
// All implementations should include compile-time checks to ensure they
// satisfy their interfaces. This catches missing methods at compile time
// rather than runtime:
//
//	var _ SomeInterface = (*MyImplementation)(nil)
//
// See checks.go for the full set.
package interfaces
