// file: internals/features/exams/exam_sessions/route/exam_session_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"smart_eujian_backend/internals/constants"
	"smart_eujian_backend/internals/features/exams/exam_sessions/controller"
	sessionRepo "smart_eujian_backend/internals/features/exams/exam_sessions/repository"
	"smart_eujian_backend/internals/features/exams/exam_sessions/service"
	resultRepo "smart_eujian_backend/internals/features/exams/results/repository"
	"smart_eujian_backend/internals/middlewares"
	authMw "smart_eujian_backend/internals/middlewares/auth"
)

// ExamSessionRoutes: r sudah terpasang AuthJWT.
func ExamSessionRoutes(r fiber.Router, db *gorm.DB, catalog service.CatalogProvider, lookup authMw.UserLookup) {
	sessions := sessionRepo.NewGormSessionStore(db)
	results := resultRepo.NewGormResultStore(db)
	svc := service.NewExamSessionService(catalog, sessions, results, sessions)
	ctl := controller.NewExamSessionController(svc, sessions)

	onlyStudent := authMw.RequireRoles(lookup, constants.RoleErrorStudent("ujian"), constants.StudentOnly...)
	teacherUp := authMw.RequireRoles(lookup, constants.RoleErrorTeacher("sesi ujian"), constants.TeacherAndAbove...)

	g := r.Group("/exam-session")
	g.Post("/start", onlyStudent, ctl.Start)
	g.Post("/submit", onlyStudent, middlewares.SubmitRateLimiter(), ctl.Submit)
	g.Get("/by-exam/:examId", teacherUp, ctl.ListByExam)
}
