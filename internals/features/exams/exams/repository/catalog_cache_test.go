package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	examModel "smart_eujian_backend/internals/features/exams/exams/model"
)

type countingResolver struct {
	calls int
	exam  *examModel.ExamModel
	err   error
}

func (r *countingResolver) ResolveExam(ctx context.Context, examID uuid.UUID) (*examModel.ExamModel, error) {
	r.calls++
	return r.exam, r.err
}

type memCache struct {
	data   map[string]string
	getErr error
}

func (m *memCache) Get(ctx context.Context, key string) *redis.StringCmd {
	if m.getErr != nil {
		return redis.NewStringResult("", m.getErr)
	}
	v, ok := m.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (m *memCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	switch v := value.(type) {
	case []byte:
		m.data[key] = string(v)
	case string:
		m.data[key] = v
	}
	return redis.NewStatusResult("OK", nil)
}

func sampleExam() *examModel.ExamModel {
	examID := uuid.New()
	correct := "A"
	q := examModel.QuestionModel{
		QuestionID:            uuid.New(),
		QuestionExamID:        examID,
		QuestionText:          "Ibukota Indonesia?",
		QuestionType:          examModel.QuestionTypeMultipleChoice,
		QuestionCorrectAnswer: &correct,
		QuestionWeight:        2,
		QuestionOrder:         1,
	}
	_ = q.SetOptions(map[string]string{"A": "Jakarta", "B": "Bandung"}, "A")
	return &examModel.ExamModel{ExamID: examID, ExamTitle: "Geografi", Questions: []examModel.QuestionModel{q}}
}

func TestCachedCatalogReadThrough(t *testing.T) {
	exam := sampleExam()
	next := &countingResolver{exam: exam}
	cache := &memCache{data: map[string]string{}}
	c := &CachedCatalog{Next: next, Cache: cache, TTL: time.Minute, Prefix: "t:"}

	for i := 0; i < 3; i++ {
		got, err := c.ResolveExam(context.Background(), exam.ExamID)
		if err != nil {
			t.Fatalf("ResolveExam: %v", err)
		}
		if got.ExamTitle != "Geografi" || len(got.Questions) != 1 {
			t.Fatalf("unexpected exam: %+v", got)
		}
		if got.Questions[0].CorrectLabel() != "A" || got.Questions[0].QuestionWeight != 2 {
			t.Fatalf("question lost in cache round trip: %+v", got.Questions[0])
		}
	}
	if next.calls != 1 {
		t.Fatalf("backing catalog called %d times, want 1", next.calls)
	}

	// key kedaluwarsa (TTL) → dibaca ulang dari katalog
	delete(cache.data, c.key(exam.ExamID))
	if _, err := c.ResolveExam(context.Background(), exam.ExamID); err != nil {
		t.Fatalf("ResolveExam after expiry: %v", err)
	}
	if next.calls != 2 {
		t.Fatalf("backing catalog called %d times after expiry, want 2", next.calls)
	}
}

func TestCachedCatalogFallsThroughOnRedisError(t *testing.T) {
	exam := sampleExam()
	next := &countingResolver{exam: exam}
	c := &CachedCatalog{Next: next, Cache: &memCache{data: map[string]string{}, getErr: errors.New("connection refused")}, TTL: time.Minute}

	got, err := c.ResolveExam(context.Background(), exam.ExamID)
	if err != nil || got == nil {
		t.Fatalf("expected fallthrough to backing catalog, got exam=%v err=%v", got, err)
	}
}

func TestCachedCatalogDoesNotCacheMissing(t *testing.T) {
	next := &countingResolver{}
	cache := &memCache{data: map[string]string{}}
	c := &CachedCatalog{Next: next, Cache: cache, TTL: time.Minute}

	got, err := c.ResolveExam(context.Background(), uuid.New())
	if err != nil || got != nil {
		t.Fatalf("want (nil, nil), got (%v, %v)", got, err)
	}
	if len(cache.data) != 0 {
		t.Fatalf("missing exam must not be cached, cache=%v", cache.data)
	}
}

func TestNewCachedCatalogWithoutClient(t *testing.T) {
	next := &countingResolver{}
	if got := NewCachedCatalog(next, nil, time.Minute); got != next {
		t.Fatal("nil redis client should return the backing catalog unchanged")
	}
}
