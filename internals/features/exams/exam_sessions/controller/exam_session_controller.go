// file: internals/features/exams/exam_sessions/controller/exam_session_controller.go
package controller

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"smart_eujian_backend/internals/features/exams/exam_sessions/dto"
	sessionRepo "smart_eujian_backend/internals/features/exams/exam_sessions/repository"
	"smart_eujian_backend/internals/features/exams/exam_sessions/service"
	examDTO "smart_eujian_backend/internals/features/exams/exams/dto"
	helper "smart_eujian_backend/internals/helpers"
)

const (
	msgAlreadyDoneOnStart  = "Anda sudah mengerjakan dan mengumpulkan ujian ini. Ujian hanya dapat dikerjakan 1 kali."
	msgAlreadyDoneOnSubmit = "Anda sudah mengumpulkan ujian ini sebelumnya. Ujian hanya bisa dikumpulkan 1 kali."
)

type sessionLister interface {
	ListByExam(ctx context.Context, examID uuid.UUID, limit, offset int) ([]sessionRepo.SessionWithStudentRow, int64, error)
}

type ExamSessionController struct {
	Service  *service.ExamSessionService
	Sessions sessionLister
}

func NewExamSessionController(svc *service.ExamSessionService, sessions sessionLister) *ExamSessionController {
	return &ExamSessionController{Service: svc, Sessions: sessions}
}

// POST /api/exam-session/start
func (ctl *ExamSessionController) Start(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.StartExamSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format request tidak valid")
	}
	if strings.TrimSpace(req.ExamID) == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "examId wajib diisi")
	}
	if err := dto.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	res, err := ctl.Service.Start(c.UserContext(), req.ExamUUID(), userID)
	if err != nil {
		return ctl.writeError(c, err, "Gagal memulai sesi ujian", msgAlreadyDoneOnStart)
	}

	msg := "Sesi ujian dimulai"
	if res.Resumed {
		msg = "Sesi ujian dilanjutkan"
	}
	return helper.JsonOK(c, msg, dto.StartExamSessionResponse{
		SessionID: res.SessionID,
		Resumed:   res.Resumed,
		Exam:      examDTO.FromExamModel(res.Exam),
	})
}

// POST /api/exam-session/submit
func (ctl *ExamSessionController) Submit(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.SubmitExamSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format request tidak valid")
	}
	if strings.TrimSpace(req.SessionID) == "" || req.Answers == nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "sessionId dan answers wajib diisi")
	}
	if err := dto.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	answers, err := req.ToAnswers()
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	res, err := ctl.Service.Submit(c.UserContext(), req.SessionUUID(), userID, answers)
	if err != nil {
		return ctl.writeError(c, err, "Gagal mengumpulkan ujian", msgAlreadyDoneOnSubmit)
	}
	return helper.JsonOK(c, "Ujian berhasil dikumpulkan", dto.SubmitExamSessionResponse{FinalScore: res.FinalScore})
}

// GET /api/exam-session/by-exam/:examId (guru/admin)
func (ctl *ExamSessionController) ListByExam(c *fiber.Ctx) error {
	examID, err := uuid.Parse(strings.TrimSpace(c.Params("examId")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "examId tidak valid")
	}

	p := helper.ResolvePaging(c, 50, 200)
	rows, total, err := ctl.Sessions.ListByExam(c.UserContext(), examID, p.Limit, p.Offset)
	if err != nil {
		log.Printf("[ExamSessionController] list by exam exam_id=%s: %v", examID, err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data sesi ujian")
	}

	items := dto.FromSessionRows(rows)
	return helper.JsonList(c, "ok", items, helper.BuildPaginationFromPage(total, p.Page, p.PerPage, len(items)))
}

// writeError memetakan kelas error service ke status HTTP.
func (ctl *ExamSessionController) writeError(c *fiber.Ctx, err error, fallback, alreadyDoneMsg string) error {
	switch {
	case errors.Is(err, service.ErrValidation):
		msg := strings.TrimPrefix(err.Error(), service.ErrValidation.Error()+": ")
		return helper.JsonError(c, fiber.StatusBadRequest, msg)
	case errors.Is(err, service.ErrExamNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, "Ujian tidak ditemukan")
	case errors.Is(err, service.ErrSessionNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, "Sesi ujian tidak ditemukan")
	case errors.Is(err, service.ErrForbidden):
		return helper.JsonError(c, fiber.StatusForbidden, "Anda tidak berhak menyelesaikan sesi ini")
	case errors.Is(err, service.ErrAlreadyCompleted):
		return helper.JsonErrorWithCode(c, fiber.StatusBadRequest, "ALREADY_COMPLETED", alreadyDoneMsg)
	case errors.Is(err, service.ErrPartiallyRecorded):
		log.Printf("[ExamSessionController] partially recorded: %v", err)
		return helper.JsonErrorWithCode(c, fiber.StatusInternalServerError, "PARTIALLY_RECORDED",
			"Jawaban sudah tersimpan tetapi nilai gagal dicatat. Hubungi guru atau admin.")
	default:
		log.Printf("[ExamSessionController] %s: %v", fallback, err)
		return helper.JsonError(c, fiber.StatusInternalServerError, fallback)
	}
}
