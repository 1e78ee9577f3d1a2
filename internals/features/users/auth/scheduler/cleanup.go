package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	authRepo "smart_eujian_backend/internals/features/users/auth/repository"
)

// StartBlacklistCleanupScheduler menjadwalkan penghapusan token_blacklist yang sudah kedaluwarsa.
// Kembalikan *cron.Cron supaya main bisa Stop() saat shutdown.
func StartBlacklistCleanupScheduler(db *gorm.DB, spec string) (*cron.Cron, error) {
	if spec == "" {
		spec = "@daily"
	}
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)))
	if _, err := c.AddFunc(spec, func() { CleanupBlacklist(db) }); err != nil {
		return nil, err
	}
	c.Start()
	log.Printf("[CLEANUP] token_blacklist cleanup dijadwalkan: %s", spec)
	return c, nil
}

func CleanupBlacklist(db *gorm.DB) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	log.Println("[CLEANUP] Menjalankan pembersihan token_blacklist...")
	n, err := authRepo.DeleteExpiredTokens(ctx, db, time.Now().UTC())
	if err != nil {
		log.Printf("[CLEANUP ERROR] Gagal hapus token: %v", err)
		return
	}
	log.Printf("[CLEANUP] %d token kadaluarsa dihapus", n)
}
