package auth

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserStatus adalah potongan data user yang dibutuhkan untuk otorisasi.
type UserStatus struct {
	Role     string
	IsActive bool
}

// UserLookup mengembalikan (nil, nil) kalau user tidak ditemukan.
type UserLookup func(ctx context.Context, id uuid.UUID) (*UserStatus, error)

// UserLookupFromDB membaca role & status aktif langsung dari tabel users,
// jadi perubahan role/nonaktif berlaku tanpa menunggu token kedaluwarsa.
func UserLookupFromDB(db *gorm.DB) UserLookup {
	return func(ctx context.Context, id uuid.UUID) (*UserStatus, error) {
		var row struct {
			Role     string
			IsActive bool
		}
		err := db.WithContext(ctx).
			Table("users").
			Select("role, is_active").
			Where("id = ?", id).
			Take(&row).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		return &UserStatus{Role: strings.ToUpper(row.Role), IsActive: row.IsActive}, nil
	}
}

// RequireRoles memvalidasi user (harus ada & aktif) dan role-nya.
// Harus dipasang setelah AuthJWT.
func RequireRoles(lookup UserLookup, customForbiddenMessage string, allowedRoles ...string) fiber.Handler {
	if customForbiddenMessage == "" {
		customForbiddenMessage = "Forbidden: you are not authorized to access this resource"
	}

	return func(c *fiber.Ctx) error {
		raw, _ := c.Locals(LocUserID).(string)
		userID, err := uuid.Parse(strings.TrimSpace(raw))
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized: missing user information")
		}

		status, err := lookup(c.UserContext(), userID)
		if err != nil {
			log.Printf("[RequireRoles] lookup user_id=%s: %v", userID, err)
			return fiber.NewError(fiber.StatusInternalServerError, "Gagal memverifikasi pengguna")
		}
		if status == nil || !status.IsActive {
			return fiber.NewError(fiber.StatusUnauthorized, "Akun tidak ditemukan atau tidak aktif")
		}

		// role dari DB menang atas klaim token
		c.Locals(LocUserRole, status.Role)

		for _, allowed := range allowedRoles {
			if status.Role == allowed {
				return c.Next()
			}
		}
		return fiber.NewError(fiber.StatusForbidden, customForbiddenMessage)
	}
}
