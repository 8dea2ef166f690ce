package api

import (
	"buysell_server/api/auth"
	"buysell_server/api/cities"
	"buysell_server/api/debug"
	"buysell_server/api/health"
	"buysell_server/api/images"
	"buysell_server/api/middleware"
	"buysell_server/api/products"
	"buysell_server/services"
	"buysell_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type routerManager struct {
	productRoutes *products.ProductRoutesManager
	imageRoutes   *images.ImageRoutesManager
	cityRoutes    *cities.CityRoutesManager
	authRoutes    *auth.AuthRoutesManager
	healthRoutes  *health.HealthRoutesManager
	debugRoutes   *debug.DebugRoutesManager
}

func NewRouterManager(logger *gecho.Logger, cfg *structs.Config, sm *services.ServiceManager, db debug.DatabaseStats, mw *middleware.Middleware) *routerManager {
	return &routerManager{
		productRoutes: products.NewProductRoutesManager(logger, sm.ProductService, cfg, mw),
		imageRoutes:   images.NewImageRoutesManager(logger, sm.ImageService),
		cityRoutes:    cities.NewCityRoutesManager(logger, sm.CityService, mw),
		authRoutes:    auth.NewAuthRoutesManager(logger, sm.UserService, sm.AuthService, mw),
		healthRoutes:  health.NewHealthRoutesManager(sm.HealthService),
		debugRoutes:   debug.NewDebugRoutesManager(sm.CacheService, db, mw, cfg.Server.Environment == "production"),
	}
}

func (rm *routerManager) RegisterRoutes(r chi.Router) {
	rm.productRoutes.RegisterRoutes(r)
	rm.imageRoutes.RegisterRoutes(r)
	rm.cityRoutes.RegisterRoutes(r)
	rm.authRoutes.RegisterRoutes(r)
	rm.healthRoutes.RegisterRoutes(r)
	rm.debugRoutes.RegisterRoutes(r)
}
