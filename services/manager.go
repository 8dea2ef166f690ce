package services

import (
	"buysell_server/database"
	"buysell_server/repository"
	"buysell_server/structs"

	"github.com/MonkyMars/gecho"
)

// ServiceManager owns every service and the stores behind them.
type ServiceManager struct {
	AuthService    *AuthService
	EmailService   *EmailService
	CacheService   *CacheService
	HealthService  *HealthService
	UserService    *UserService
	CityService    *GermanCityService
	ProductService *ProductService
	ImageService   *ImageService
}

func NewServiceManager(logger *gecho.Logger, cfg *structs.Config, db *database.DB) *ServiceManager {
	products := repository.NewProductRepository(db.DB)
	cities := repository.NewCityRepository(db.DB)
	users := repository.NewUserRepository(db.DB)
	images := repository.NewImageRepository(db.DB)

	cacheService := NewCacheService(logger, cfg)
	authService := NewAuthService(cfg, logger, cacheService)
	emailService := NewEmailService(logger, cfg)
	healthService := NewHealthService(logger, db, cacheService)
	userService := NewUserService(logger, users, db, NewArgon2Hasher(DefaultParams), emailService)
	cityService := NewGermanCityService(logger, cities)
	productService := NewProductService(logger, products, cityService, userService, db)
	imageService := NewImageService(logger, images)

	return &ServiceManager{
		AuthService:    authService,
		EmailService:   emailService,
		CacheService:   cacheService,
		HealthService:  healthService,
		UserService:    userService,
		CityService:    cityService,
		ProductService: productService,
		ImageService:   imageService,
	}
}
