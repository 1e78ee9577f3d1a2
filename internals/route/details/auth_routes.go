package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authRoute "smart_eujian_backend/internals/features/users/auth/route"
)

func AuthPublicRoutes(api fiber.Router, db *gorm.DB) {
	authRoute.AuthPublicRoutes(api, db)
}

func AuthPrivateRoutes(private fiber.Router, db *gorm.DB) {
	authRoute.AuthProtectedRoutes(private, db)
}
