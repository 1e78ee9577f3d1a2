package service

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"

	"smart_eujian_backend/internals/configs"
	authHelper "smart_eujian_backend/internals/features/users/auth/helper"
	authRepo "smart_eujian_backend/internals/features/users/auth/repository"
	userModel "smart_eujian_backend/internals/features/users/user/model"
	userRepo "smart_eujian_backend/internals/features/users/user/repository"
	helpers "smart_eujian_backend/internals/helpers"
	authMw "smart_eujian_backend/internals/middlewares/auth"
)

func nowUTC() time.Time { return time.Now().UTC() }

func getJWTSecret() (string, error) {
	s := strings.TrimSpace(configs.JWTSecret)
	if s == "" {
		return "", errors.New("JWT_SECRET belum diset")
	}
	return s, nil
}

/* ==========================
   TOKEN
========================== */

func buildAccessClaims(user userModel.UserModel, now time.Time, ttl time.Duration) jwt.MapClaims {
	return jwt.MapClaims{
		"id":   user.ID.String(),
		"name": user.UserName,
		"role": strings.ToUpper(user.Role),
		"iat":  now.Unix(),
		"exp":  now.Add(ttl).Unix(),
	}
}

// IssueAccessToken menandatangani JWT HS256 {id, name, role, exp}.
func IssueAccessToken(user userModel.UserModel, secret string, ttl time.Duration, now time.Time) (string, time.Time, error) {
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	claims := buildAccessClaims(user, now, ttl)
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, now.Add(ttl), nil
}

type LoginUserResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Role      string  `json:"role"`
	ClassName *string `json:"class_name,omitempty"`
}

func toLoginUser(u userModel.UserModel) LoginUserResponse {
	return LoginUserResponse{
		ID:        u.ID.String(),
		Name:      u.UserName,
		Email:     u.Email,
		Role:      strings.ToUpper(u.Role),
		ClassName: u.ClassName,
	}
}

/* ==========================
   LOGIN (email + password)
========================== */

func Login(db *gorm.DB, c *fiber.Ctx) error {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&input); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid input format")
	}
	input.Email = strings.TrimSpace(input.Email)

	if err := authHelper.ValidateLoginInput(input.Email, input.Password); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	user, err := userRepo.FindUserByEmail(c.UserContext(), db, input.Email)
	if err != nil {
		log.Printf("[AuthService] login lookup email=%s: %v", input.Email, err)
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data user")
	}
	if user == nil {
		return helpers.JsonError(c, fiber.StatusUnauthorized, "Email atau Password salah")
	}
	if err := authHelper.CheckPasswordHash(user.Password, input.Password); err != nil {
		return helpers.JsonError(c, fiber.StatusUnauthorized, "Email atau Password salah")
	}
	if !user.IsActive {
		return helpers.JsonError(c, fiber.StatusForbidden, "Akun Anda telah dinonaktifkan. Hubungi admin.")
	}

	secret, err := getJWTSecret()
	if err != nil {
		log.Printf("[AuthService] %v", err)
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Konfigurasi server belum lengkap")
	}

	token, expiresAt, err := IssueAccessToken(*user, secret, configs.JWTTTL, nowUTC())
	if err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat token")
	}

	log.Printf("[AuthService] login ok user_id=%s role=%s", user.ID, user.Role)
	return helpers.JsonOK(c, "Login berhasil", fiber.Map{
		"token":      token,
		"expires_at": expiresAt,
		"user":       toLoginUser(*user),
	})
}

/* ==========================
   LOGOUT
========================== */

// Logout mem-blacklist access token sampai exp-nya; idempotent.
func Logout(db *gorm.DB, c *fiber.Ctx) error {
	accessToken, _ := c.Locals(authMw.LocAccessToken).(string)
	if accessToken == "" {
		return helpers.JsonOK(c, "Logout berhasil", nil)
	}

	expiredAt := nowUTC().Add(configs.JWTTTL)
	if claims, ok := c.Locals(authMw.LocClaims).(jwt.MapClaims); ok {
		if exp, ok := claims["exp"].(float64); ok {
			expiredAt = time.Unix(int64(exp), 0).UTC().Add(time.Minute)
		}
	}

	if err := authRepo.BlacklistToken(c.UserContext(), db, accessToken, expiredAt); err != nil {
		log.Printf("[AuthService] gagal blacklist token: %v", err)
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Gagal logout")
	}

	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    "",
		HTTPOnly: true,
		Secure:   true,
		SameSite: "None",
		Path:     "/",
		Expires:  nowUTC().Add(-time.Hour),
		MaxAge:   -1,
	})
	return helpers.JsonOK(c, "Logout berhasil", nil)
}

/* ==========================
   ME
========================== */

func Me(db *gorm.DB, c *fiber.Ctx) error {
	userID, err := helpers.GetUserIDFromToken(c)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}
	user, err := userRepo.FindUserByID(c.UserContext(), db, userID)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data user")
	}
	if user == nil {
		return helpers.JsonError(c, fiber.StatusNotFound, "User tidak ditemukan")
	}
	return helpers.JsonOK(c, "ok", toLoginUser(*user))
}
