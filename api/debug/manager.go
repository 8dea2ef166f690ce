package debug

import (
	"buysell_server/api/middleware"
	"database/sql"
	"net/http"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

// CacheStats exposes the redis pool counters.
type CacheStats interface {
	GetConnectionStats() map[string]any
}

type DatabaseStats interface {
	Stats() sql.DBStats
}

type DebugRoutesManager struct {
	cache      CacheStats
	db         DatabaseStats
	mw         *middleware.Middleware
	production bool
}

func NewDebugRoutesManager(cache CacheStats, db DatabaseStats, mw *middleware.Middleware, production bool) *DebugRoutesManager {
	return &DebugRoutesManager{
		cache:      cache,
		db:         db,
		mw:         mw,
		production: production,
	}
}

func (drm *DebugRoutesManager) RegisterRoutes(r chi.Router) {
	// Debug routes - only in non-production environments
	if drm.production {
		return
	}

	r.Route("/debug", func(r chi.Router) {
		r.Use(drm.mw.UserAuthMiddleware)
		r.Use(drm.mw.AdminAuthMiddleware)
		r.Get("/cache/stats", drm.GetCacheStats)
		r.Get("/database/stats", drm.GetDatabaseStats)
	})
}

func (drm *DebugRoutesManager) GetCacheStats(w http.ResponseWriter, r *http.Request) {
	gecho.Success(w,
		gecho.WithData(drm.cache.GetConnectionStats()),
		gecho.Send(),
	)
}

func (drm *DebugRoutesManager) GetDatabaseStats(w http.ResponseWriter, r *http.Request) {
	stats := drm.db.Stats()
	gecho.Success(w,
		gecho.WithData(map[string]any{
			"open_connections": stats.OpenConnections,
			"in_use":           stats.InUse,
			"idle":             stats.Idle,
			"wait_count":       stats.WaitCount,
			"wait_duration_ms": stats.WaitDuration.Milliseconds(),
		}),
		gecho.Send(),
	)
}
