package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"

	sessionModel "smart_eujian_backend/internals/features/exams/exam_sessions/model"
	sessionRepo "smart_eujian_backend/internals/features/exams/exam_sessions/repository"
	"smart_eujian_backend/internals/features/exams/exam_sessions/service"
	examModel "smart_eujian_backend/internals/features/exams/exams/model"
	resultModel "smart_eujian_backend/internals/features/exams/results/model"
)

/* ===================== fakes ===================== */

type stubCatalog struct{ exam *examModel.ExamModel }

func (s stubCatalog) ResolveExam(ctx context.Context, id uuid.UUID) (*examModel.ExamModel, error) {
	if s.exam != nil && s.exam.ExamID == id {
		return s.exam, nil
	}
	return nil, nil
}

type stubStore struct {
	sessions map[uuid.UUID]sessionModel.ExamSessionModel
	results  map[[2]uuid.UUID]resultModel.ResultModel
}

func newStubStore() *stubStore {
	return &stubStore{
		sessions: map[uuid.UUID]sessionModel.ExamSessionModel{},
		results:  map[[2]uuid.UUID]resultModel.ResultModel{},
	}
}

func (s *stubStore) FindSession(ctx context.Context, examID, userID uuid.UUID) (*sessionModel.ExamSessionModel, error) {
	for _, v := range s.sessions {
		if v.ExamSessionExamID == examID && v.ExamSessionUserID == userID && !v.IsEnded() {
			cp := v
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *stubStore) FindSessionByID(ctx context.Context, id uuid.UUID) (*sessionModel.ExamSessionModel, error) {
	v, ok := s.sessions[id]
	if !ok {
		return nil, nil
	}
	return &v, nil
}

func (s *stubStore) CreateSession(ctx context.Context, examID, userID uuid.UUID, startedAt time.Time) (*sessionModel.ExamSessionModel, error) {
	v := sessionModel.ExamSessionModel{ExamSessionID: uuid.New(), ExamSessionExamID: examID, ExamSessionUserID: userID, ExamSessionStartedAt: startedAt}
	s.sessions[v.ExamSessionID] = v
	return &v, nil
}

func (s *stubStore) SaveSession(ctx context.Context, v *sessionModel.ExamSessionModel) error {
	s.sessions[v.ExamSessionID] = *v
	return nil
}

func (s *stubStore) FindResult(ctx context.Context, examID, studentID uuid.UUID) (*resultModel.ResultModel, error) {
	r, ok := s.results[[2]uuid.UUID{examID, studentID}]
	if !ok {
		return nil, nil
	}
	return &r, nil
}

func (s *stubStore) CreateResult(ctx context.Context, examID, studentID uuid.UUID, score float64) (*resultModel.ResultModel, error) {
	r := resultModel.ResultModel{ResultID: uuid.New(), ResultExamID: examID, ResultStudentID: studentID, ResultScore: score}
	s.results[[2]uuid.UUID{examID, studentID}] = r
	return &r, nil
}

type stubLister struct {
	rows []sessionRepo.SessionWithStudentRow
}

func (l stubLister) ListByExam(ctx context.Context, examID uuid.UUID, limit, offset int) ([]sessionRepo.SessionWithStudentRow, int64, error) {
	return l.rows, int64(len(l.rows)), nil
}

/* ===================== harness ===================== */

type harness struct {
	app     *fiber.App
	store   *stubStore
	exam    *examModel.ExamModel
	mcQ     uuid.UUID
	essayQ  uuid.UUID
	student uuid.UUID
}

func newHarness(t *testing.T, lister stubLister) *harness {
	t.Helper()
	examID := uuid.New()
	correct := "A"
	mc := examModel.QuestionModel{
		QuestionID: uuid.New(), QuestionExamID: examID, QuestionText: "Q1",
		QuestionType: examModel.QuestionTypeMultipleChoice, QuestionCorrectAnswer: &correct,
		QuestionOptions: datatypes.JSON(`{"A":"benar","B":"salah"}`), QuestionWeight: 2, QuestionOrder: 1,
	}
	essay := examModel.QuestionModel{
		QuestionID: uuid.New(), QuestionExamID: examID, QuestionText: "Q2",
		QuestionType: examModel.QuestionTypeEssay, QuestionWeight: 1, QuestionOrder: 2,
	}
	exam := &examModel.ExamModel{ExamID: examID, ExamTitle: "Biologi", ExamDurationMinutes: 60,
		Questions: []examModel.QuestionModel{mc, essay}}

	store := newStubStore()
	svc := service.NewExamSessionService(stubCatalog{exam: exam}, store, store, nil)
	ctl := NewExamSessionController(svc, lister)

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if uid := c.Get("X-Test-User"); uid != "" {
			c.Locals("user_id", uid)
		}
		return c.Next()
	})
	app.Post("/api/exam-session/start", ctl.Start)
	app.Post("/api/exam-session/submit", ctl.Submit)
	app.Get("/api/exam-session/by-exam/:examId", ctl.ListByExam)

	return &harness{app: app, store: store, exam: exam, mcQ: mc.QuestionID, essayQ: essay.QuestionID, student: uuid.New()}
}

type envelope struct {
	Success   bool            `json:"success"`
	Message   string          `json:"message"`
	ErrorCode string          `json:"error_code"`
	Data      json.RawMessage `json:"data"`
}

func (h *harness) do(t *testing.T, method, path string, user uuid.UUID, body any) (int, envelope, string) {
	t.Helper()
	var rdr io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		rdr = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rdr)
	req.Header.Set("Content-Type", "application/json")
	if user != uuid.Nil {
		req.Header.Set("X-Test-User", user.String())
	}
	resp, err := h.app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)
	var env envelope
	_ = json.Unmarshal(raw, &env)
	return resp.StatusCode, env, string(raw)
}

func (h *harness) start(t *testing.T) uuid.UUID {
	t.Helper()
	status, env, raw := h.do(t, http.MethodPost, "/api/exam-session/start", h.student, map[string]any{"examId": h.exam.ExamID})
	if status != http.StatusOK {
		t.Fatalf("start status=%d body=%s", status, raw)
	}
	var data struct {
		SessionID uuid.UUID `json:"sessionId"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatal(err)
	}
	return data.SessionID
}

/* ===================== tests ===================== */

func TestStartEndpoint(t *testing.T) {
	h := newHarness(t, stubLister{})

	status, env, _ := h.do(t, http.MethodPost, "/api/exam-session/start", h.student, map[string]any{})
	if status != http.StatusBadRequest || env.Message != "examId wajib diisi" {
		t.Fatalf("missing examId: status=%d msg=%q", status, env.Message)
	}

	status, env, _ = h.do(t, http.MethodPost, "/api/exam-session/start", h.student, map[string]any{"examId": uuid.New()})
	if status != http.StatusNotFound || env.Message != "Ujian tidak ditemukan" {
		t.Fatalf("unknown exam: status=%d msg=%q", status, env.Message)
	}

	status, env, raw := h.do(t, http.MethodPost, "/api/exam-session/start", h.student, map[string]any{"examId": h.exam.ExamID})
	if status != http.StatusOK || env.Message != "Sesi ujian dimulai" {
		t.Fatalf("start: status=%d body=%s", status, raw)
	}
	if strings.Contains(strings.ToLower(raw), "correct") {
		t.Fatalf("start response leaks answer key: %s", raw)
	}
	var data struct {
		SessionID uuid.UUID `json:"sessionId"`
		Exam      struct {
			Questions []struct {
				ID uuid.UUID `json:"id"`
			} `json:"questions"`
		} `json:"exam"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatal(err)
	}
	if data.SessionID == uuid.Nil || len(data.Exam.Questions) != 2 || data.Exam.Questions[0].ID != h.mcQ {
		t.Fatalf("unexpected data: %+v", data)
	}

	_, env, _ = h.do(t, http.MethodPost, "/api/exam-session/start", h.student, map[string]any{"examId": h.exam.ExamID})
	if env.Message != "Sesi ujian dilanjutkan" {
		t.Fatalf("second start message = %q", env.Message)
	}
}

func TestStartRequiresUser(t *testing.T) {
	h := newHarness(t, stubLister{})
	status, _, _ := h.do(t, http.MethodPost, "/api/exam-session/start", uuid.Nil, map[string]any{"examId": h.exam.ExamID})
	if status != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", status)
	}
}

func TestSubmitEndpointScenario(t *testing.T) {
	h := newHarness(t, stubLister{})
	sessionID := h.start(t)

	body := map[string]any{
		"sessionId": sessionID,
		"answers": []map[string]any{
			{"questionId": h.mcQ, "chosenOption": "A"},
			{"questionId": h.essayQ, "essayAnswer": "jawaban uraian"},
		},
	}

	status, env, _ := h.do(t, http.MethodPost, "/api/exam-session/submit", uuid.New(), body)
	if status != http.StatusForbidden {
		t.Fatalf("other user: status=%d, want 403", status)
	}

	status, env, raw := h.do(t, http.MethodPost, "/api/exam-session/submit", h.student, body)
	if status != http.StatusOK || env.Message != "Ujian berhasil dikumpulkan" {
		t.Fatalf("submit: status=%d body=%s", status, raw)
	}
	var data struct {
		FinalScore float64 `json:"finalScore"`
	}
	_ = json.Unmarshal(env.Data, &data)
	if data.FinalScore != 2 {
		t.Fatalf("finalScore = %v, want 2", data.FinalScore)
	}

	status, env, _ = h.do(t, http.MethodPost, "/api/exam-session/submit", h.student, body)
	if status != http.StatusBadRequest || env.ErrorCode != "ALREADY_COMPLETED" {
		t.Fatalf("second submit: status=%d code=%q", status, env.ErrorCode)
	}

	status, env, _ = h.do(t, http.MethodPost, "/api/exam-session/start", h.student, map[string]any{"examId": h.exam.ExamID})
	if status != http.StatusBadRequest || env.Message != msgAlreadyDoneOnStart {
		t.Fatalf("start after submit: status=%d msg=%q", status, env.Message)
	}
}

func TestSubmitEndpointValidation(t *testing.T) {
	h := newHarness(t, stubLister{})
	sessionID := h.start(t)

	status, env, _ := h.do(t, http.MethodPost, "/api/exam-session/submit", h.student, map[string]any{"sessionId": sessionID})
	if status != http.StatusBadRequest || env.Message != "sessionId dan answers wajib diisi" {
		t.Fatalf("missing answers: status=%d msg=%q", status, env.Message)
	}

	ambiguous := map[string]any{
		"sessionId": sessionID,
		"answers":   []map[string]any{{"questionId": h.mcQ, "chosenOption": "A", "essayAnswer": "x"}},
	}
	if status, _, _ := h.do(t, http.MethodPost, "/api/exam-session/submit", h.student, ambiguous); status != http.StatusBadRequest {
		t.Fatalf("ambiguous answer: status=%d, want 400", status)
	}

	unknown := map[string]any{"sessionId": uuid.New(), "answers": []any{}}
	status, env, _ = h.do(t, http.MethodPost, "/api/exam-session/submit", h.student, unknown)
	if status != http.StatusNotFound || env.Message != "Sesi ujian tidak ditemukan" {
		t.Fatalf("unknown session: status=%d msg=%q", status, env.Message)
	}
}

func TestListByExamEndpoint(t *testing.T) {
	score := 4.0
	ended := time.Now().UTC()
	examID := uuid.New()
	rows := []sessionRepo.SessionWithStudentRow{{
		ExamSessionID:         uuid.New(),
		ExamSessionExamID:     examID,
		ExamSessionUserID:     uuid.New(),
		ExamSessionStartedAt:  ended.Add(-time.Hour),
		ExamSessionEndedAt:    &ended,
		ExamSessionAnswers:    datatypes.JSON(`[{"kind":"MULTIPLE_CHOICE","questionId":"` + uuid.NewString() + `","chosenOption":"B"}]`),
		ExamSessionFinalScore: &score,
		UserName:              "Budi",
		UserEmail:             "budi@sekolah.id",
	}}
	h := newHarness(t, stubLister{rows: rows})

	status, _, _ := h.do(t, http.MethodGet, "/api/exam-session/by-exam/bukan-uuid", h.student, nil)
	if status != http.StatusBadRequest {
		t.Fatalf("bad id: status=%d", status)
	}

	status, env, raw := h.do(t, http.MethodGet, "/api/exam-session/by-exam/"+examID.String(), h.student, nil)
	if status != http.StatusOK {
		t.Fatalf("list: status=%d body=%s", status, raw)
	}
	var items []struct {
		FinalScore *float64 `json:"finalScore"`
		Answers    []struct {
			ChosenOption string `json:"chosenOption"`
		} `json:"answers"`
		User struct {
			Name string `json:"name"`
		} `json:"user"`
	}
	if err := json.Unmarshal(env.Data, &items); err != nil {
		t.Fatal(err)
	}
	if len(items) != 1 || items[0].User.Name != "Budi" || *items[0].FinalScore != 4 || items[0].Answers[0].ChosenOption != "B" {
		t.Fatalf("unexpected items: %s", env.Data)
	}
	if !strings.Contains(raw, `"pagination"`) {
		t.Fatalf("pagination missing: %s", raw)
	}
}
