package router

import (
	app "github.com/KokoroRay/Shopflow-E-commerce-sub000/internal/application"
	"github.com/KokoroRay/Shopflow-E-commerce-sub000/internal/container"
	pginfra "github.com/KokoroRay/Shopflow-E-commerce-sub000/internal/infrastructure/postgres"
	handlers "github.com/KokoroRay/Shopflow-E-commerce-sub000/internal/interface/http"
	"github.com/KokoroRay/Shopflow-E-commerce-sub000/internal/router/modules"
)

// InitModules wires all feature modules from the container singletons
// and registers them with the router registry. Call once at startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()

	events := app.NewEventPublisher(container.GetEventQueue(), logger)

	catalogSvc := app.NewCatalogService(
		pginfra.NewProductRepository(container.GetPGPool()),
		pginfra.NewCategoryRepository(container.GetPGPool()),
		events,
		container.GetRedis(),
		logger,
		container.GetES(),
		cfg.ESProductsIndex,
		container.GetGCS(),
		cfg.GCSBucket,
		cfg.BarcodeCompanyPrefix,
	)
	authSvc := app.NewAuthService(
		pginfra.NewUserRepository(container.GetPGPool()),
		container.GetJWT(),
		container.GetRedis(),
		container.GetEmailQueue(),
		logger,
		cfg.AppName,
		cfg.ResetTokenTTLMinutes,
	)

	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(authSvc, logger, cfg.CookieDomain, cfg.CookieSecure)))
	r.Add(modules.NewCatalogModule(handlers.NewCatalogHandler(catalogSvc, logger), container.GetJWT()))
}
