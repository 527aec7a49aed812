package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/ehonlab/ehon-server/internal/database/activities"
	"github.com/ehonlab/ehon-server/internal/database/books"
	"github.com/ehonlab/ehon-server/internal/database/children"
	"github.com/ehonlab/ehon-server/internal/database/favorites"
	"github.com/ehonlab/ehon-server/internal/database/progress"
	"github.com/ehonlab/ehon-server/internal/database/reviews"
	"github.com/ehonlab/ehon-server/internal/database/themes"
	"github.com/ehonlab/ehon-server/internal/database/users"
	"github.com/ehonlab/ehon-server/internal/http"
	"github.com/ehonlab/ehon-server/internal/tasks"
)

// =============================================================================
// Data Access Layer
// =============================================================================

// UserStore implementations
var _ http.UserStore = (*users.Repository)(nil)

// ChildStore implementations
var _ http.ChildStore = (*children.Repository)(nil)
var _ http.ChildFinder = (*children.Repository)(nil)

// ThemeStore implementations
var _ http.ThemeStore = (*themes.Repository)(nil)

// BookStore implementations
var _ http.BookStore = (*books.Repository)(nil)
var _ http.BookFinder = (*books.Repository)(nil)

// ReviewStore implementations
var _ http.ReviewStore = (*reviews.Repository)(nil)
var _ http.ReviewSummaryStore = (*reviews.Repository)(nil)

// FavoriteStore implementations
var _ http.FavoriteStore = (*favorites.Repository)(nil)

// ProgressStore implementations
var _ http.ProgressStore = (*progress.Repository)(nil)

// ActivityStore implementations
var _ http.ActivityStore = (*activities.Repository)(nil)
var _ http.ActivityRecorder = (*activities.Repository)(nil)

// =============================================================================
// Background Work
// =============================================================================

// ActivityCleaner implementations
var _ tasks.ActivityCleaner = (*activities.Repository)(nil)

// PopularityRecomputer implementations
var _ tasks.PopularityRecomputer = (*books.Repository)(nil)
