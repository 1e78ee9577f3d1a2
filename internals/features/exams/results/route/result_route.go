// file: internals/features/exams/results/route/result_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"smart_eujian_backend/internals/constants"
	"smart_eujian_backend/internals/features/exams/results/controller"
	resultRepo "smart_eujian_backend/internals/features/exams/results/repository"
	authMw "smart_eujian_backend/internals/middlewares/auth"
)

// ResultRoutes: r sudah terpasang AuthJWT.
func ResultRoutes(r fiber.Router, db *gorm.DB, lookup authMw.UserLookup) {
	ctl := controller.NewResultController(resultRepo.NewGormResultStore(db))
	teacherUp := authMw.RequireRoles(lookup, constants.RoleErrorTeacher("hasil ujian"), constants.TeacherAndAbove...)
	anyRole := authMw.RequireRoles(lookup, "", constants.AllRoles...)

	g := r.Group("/results")
	g.Get("/my", anyRole, ctl.My)
	g.Get("/summary/:examId", teacherUp, ctl.Summary)
	g.Get("/", teacherUp, ctl.List)
}
