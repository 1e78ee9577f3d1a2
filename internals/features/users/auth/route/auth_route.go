// file: internals/features/users/auth/route/auth_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "smart_eujian_backend/internals/features/users/auth/controller"
	rateLimiter "smart_eujian_backend/internals/middlewares"
)

// AuthPublicRoutes: /api/auth tanpa token
func AuthPublicRoutes(api fiber.Router, db *gorm.DB) {
	authController := controller.NewAuthController(db)
	api.Post("/auth/login", rateLimiter.LoginRateLimiter(), authController.Login)
}

// AuthProtectedRoutes: /api/auth dengan token (group sudah memasang AuthJWT)
func AuthProtectedRoutes(r fiber.Router, db *gorm.DB) {
	authController := controller.NewAuthController(db)
	r.Post("/auth/logout", authController.Logout)
	r.Get("/auth/me", authController.Me)
}
