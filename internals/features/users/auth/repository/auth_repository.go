// internals/features/users/auth/repository/auth_repository.go
package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	authModel "smart_eujian_backend/internals/features/users/auth/model"
)

/* ====================== TOKEN BLACKLIST ====================== */

// BlacklistToken idempotent: token yang sama cukup tersimpan sekali.
func BlacklistToken(ctx context.Context, db *gorm.DB, token string, expiredAt time.Time) error {
	return db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "token"}}, DoNothing: true}).
		Create(&authModel.TokenBlacklist{Token: token, ExpiredAt: expiredAt}).Error
}

func IsTokenBlacklisted(ctx context.Context, db *gorm.DB, token string) (bool, error) {
	var row authModel.TokenBlacklist
	err := db.WithContext(ctx).
		Select("id").
		Where("token = ?", token).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// BlacklistChecker dipakai middleware AuthJWT.
func BlacklistChecker(db *gorm.DB) func(ctx context.Context, token string) (bool, error) {
	return func(ctx context.Context, token string) (bool, error) {
		return IsTokenBlacklisted(ctx, db, token)
	}
}

// DeleteExpiredTokens menghapus permanen token yang sudah lewat expired_at.
func DeleteExpiredTokens(ctx context.Context, db *gorm.DB, before time.Time) (int64, error) {
	res := db.WithContext(ctx).
		Unscoped().
		Where("expired_at < ?", before).
		Delete(&authModel.TokenBlacklist{})
	return res.RowsAffected, res.Error
}
