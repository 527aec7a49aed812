package http

import (
	"github.com/ehonlab/ehon-server/internal/auth"
	"github.com/ehonlab/ehon-server/internal/database"
)

// RouterConfig carries every dependency the router needs. Passing one struct
// keeps NewRouter's signature stable as stores come and go.
type RouterConfig struct {
	Version string

	Database *database.Database

	AuthService    *auth.Service
	AuthMiddleware *auth.Middleware

	UserStore     UserStore
	ChildStore    ChildStore
	ThemeStore    ThemeStore
	BookStore     BookStore
	ReviewStore   ReviewStore
	SummaryStore  ReviewSummaryStore
	FavoriteStore FavoriteStore
	ProgressStore ProgressStore
	ActivityStore ActivityStore
}
