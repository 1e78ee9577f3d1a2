// file: internals/features/exams/exams/repository/catalog_cache.go
package repository

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	examModel "smart_eujian_backend/internals/features/exams/exams/model"
)

// ExamResolver adalah kontrak katalog yang dibungkus cache.
type ExamResolver interface {
	ResolveExam(ctx context.Context, examID uuid.UUID) (*examModel.ExamModel, error)
}

// cacheBackend adalah subset redis.Cmdable yang dipakai cache katalog.
type cacheBackend interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// CachedCatalog: read-through cache Redis di depan katalog.
// Error Redis tidak pernah menggagalkan request; hanya dicatat lalu jatuh ke DB.
type CachedCatalog struct {
	Next   ExamResolver
	Cache  cacheBackend
	TTL    time.Duration
	Prefix string
}

// NewCachedCatalog mengembalikan next apa adanya kalau client nil (cache dimatikan).
func NewCachedCatalog(next ExamResolver, client redis.Cmdable, ttl time.Duration) ExamResolver {
	if client == nil {
		return next
	}
	if ttl <= 0 {
		ttl = 60 * time.Second
	}
	return &CachedCatalog{Next: next, Cache: client, TTL: ttl, Prefix: "eujian:catalog:exam:"}
}

func (c *CachedCatalog) key(examID uuid.UUID) string {
	return c.Prefix + examID.String()
}

func (c *CachedCatalog) ResolveExam(ctx context.Context, examID uuid.UUID) (*examModel.ExamModel, error) {
	key := c.key(examID)

	raw, err := c.Cache.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var exam examModel.ExamModel
		uerr := sonic.Unmarshal(raw, &exam)
		if uerr == nil {
			return &exam, nil
		}
		log.Printf("[CatalogCache] decode key=%s: %v", key, uerr)
	case errors.Is(err, redis.Nil):
		// miss
	default:
		log.Printf("[CatalogCache] get key=%s: %v", key, err)
	}

	exam, err := c.Next.ResolveExam(ctx, examID)
	if err != nil || exam == nil {
		return exam, err
	}

	if payload, merr := sonic.Marshal(exam); merr == nil {
		if serr := c.Cache.Set(ctx, key, payload, c.TTL).Err(); serr != nil {
			log.Printf("[CatalogCache] set key=%s: %v", key, serr)
		}
	} else {
		log.Printf("[CatalogCache] encode exam_id=%s: %v", examID, merr)
	}
	return exam, nil
}
