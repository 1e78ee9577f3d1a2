package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	sessionRoute "smart_eujian_backend/internals/features/exams/exam_sessions/route"
	"smart_eujian_backend/internals/features/exams/exam_sessions/service"
	resultRoute "smart_eujian_backend/internals/features/exams/results/route"
	authMw "smart_eujian_backend/internals/middlewares/auth"
)

func ExamPrivateRoutes(private fiber.Router, db *gorm.DB, catalog service.CatalogProvider) {
	lookup := authMw.UserLookupFromDB(db)
	sessionRoute.ExamSessionRoutes(private, db, catalog, lookup)
	resultRoute.ResultRoutes(private, db, lookup)
}
