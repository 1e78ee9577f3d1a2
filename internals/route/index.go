// file: internals/route/index.go
package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"smart_eujian_backend/internals/configs"
	examRepo "smart_eujian_backend/internals/features/exams/exams/repository"
	authRepo "smart_eujian_backend/internals/features/users/auth/repository"
	authMw "smart_eujian_backend/internals/middlewares/auth"
	routeDetails "smart_eujian_backend/internals/route/details"
)

var startTime time.Time

// SetupRoutes; rdb boleh nil (cache katalog mati).
func SetupRoutes(app *fiber.App, db *gorm.DB, rdb *redis.Client) {
	startTime = time.Now()

	log.Println("[INFO] Setting up BaseRoutes...")
	BaseRoutes(app)

	api := app.Group("/api")

	// ===================== PUBLIC =====================
	log.Println("[INFO] Setting up AuthRoutes (public)...")
	routeDetails.AuthPublicRoutes(api, db)

	// ===================== PRIVATE =====================
	log.Println("[INFO] Setting up PRIVATE group...")
	private := api.Group("",
		authMw.AuthJWT(authMw.AuthJWTOpts{
			Secret:              configs.JWTSecret,
			BlacklistChecker:    authRepo.BlacklistChecker(db),
			AllowCookieFallback: true,
		}),
	)

	routeDetails.AuthPrivateRoutes(private, db)

	var catalog examRepo.ExamResolver = examRepo.NewGormCatalog(db)
	if rdb != nil {
		catalog = examRepo.NewCachedCatalog(catalog, rdb, configs.CatalogCacheTTL)
		log.Printf("[INFO] Exam catalog cache aktif (ttl=%s)", configs.CatalogCacheTTL)
	}

	log.Println("[INFO] Mounting Exam routes...")
	routeDetails.ExamPrivateRoutes(private, db, catalog)
}
