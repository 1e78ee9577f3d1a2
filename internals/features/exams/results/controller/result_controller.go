// file: internals/features/exams/results/controller/result_controller.go
package controller

import (
	"context"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"smart_eujian_backend/internals/features/exams/results/dto"
	resultRepo "smart_eujian_backend/internals/features/exams/results/repository"
	"smart_eujian_backend/internals/features/exams/results/service"
	helper "smart_eujian_backend/internals/helpers"
)

type resultReader interface {
	ListResults(ctx context.Context, f resultRepo.ListResultsFilter) ([]resultRepo.ResultRow, int64, error)
	ScoresByExam(ctx context.Context, examID uuid.UUID) ([]float64, error)
}

type ResultController struct {
	Results resultReader
}

func NewResultController(results resultReader) *ResultController {
	return &ResultController{Results: results}
}

// GET /api/results/my
func (ctl *ResultController) My(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	p := helper.ResolvePaging(c, 20, 100)
	rows, total, err := ctl.Results.ListResults(c.UserContext(), resultRepo.ListResultsFilter{
		StudentID: &userID,
		Limit:     p.Limit,
		Offset:    p.Offset,
	})
	if err != nil {
		log.Printf("[ResultController] my results user_id=%s: %v", userID, err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil hasil ujian")
	}

	items := dto.FromResultRows(rows, false)
	return helper.JsonList(c, "ok", items, helper.BuildPaginationFromPage(total, p.Page, p.PerPage, len(items)))
}

// GET /api/results?exam_id= (guru/admin)
func (ctl *ResultController) List(c *fiber.Ctx) error {
	filter := resultRepo.ListResultsFilter{}
	if raw := strings.TrimSpace(c.Query("exam_id")); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "exam_id tidak valid")
		}
		filter.ExamID = &id
	}

	p := helper.ResolvePaging(c, 20, 200)
	filter.Limit, filter.Offset = p.Limit, p.Offset

	rows, total, err := ctl.Results.ListResults(c.UserContext(), filter)
	if err != nil {
		log.Printf("[ResultController] list results: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data hasil ujian")
	}

	items := dto.FromResultRows(rows, true)
	return helper.JsonList(c, "ok", items, helper.BuildPaginationFromPage(total, p.Page, p.PerPage, len(items)))
}

// GET /api/results/summary/:examId (guru/admin)
func (ctl *ResultController) Summary(c *fiber.Ctx) error {
	examID, err := uuid.Parse(strings.TrimSpace(c.Params("examId")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "examId tidak valid")
	}

	scores, err := ctl.Results.ScoresByExam(c.UserContext(), examID)
	if err != nil {
		log.Printf("[ResultController] summary exam_id=%s: %v", examID, err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung ringkasan nilai")
	}
	return helper.JsonOK(c, "ok", service.Summarize(scores))
}
