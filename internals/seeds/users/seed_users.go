package users

import (
	"log"
	"os"
	"strings"

	"github.com/bytedance/sonic"
	"gorm.io/gorm"

	"smart_eujian_backend/internals/constants"
	authHelper "smart_eujian_backend/internals/features/users/auth/helper"
	"smart_eujian_backend/internals/features/users/user/model"
)

type UserSeed struct {
	UserName  string  `json:"user_name"`
	Email     string  `json:"email"`
	Password  string  `json:"password"`
	Role      string  `json:"role"`
	ClassName *string `json:"class_name"`
}

func SeedUsersFromJSON(db *gorm.DB, filePath string) {
	log.Println("📥 Membaca file user:", filePath)

	file, err := os.ReadFile(filePath)
	if err != nil {
		log.Fatalf("❌ Gagal membaca file JSON: %v", err)
	}

	var inputs []UserSeed
	if err := sonic.Unmarshal(file, &inputs); err != nil {
		log.Fatalf("❌ Gagal decode JSON: %v", err)
	}

	for _, data := range inputs {
		email := strings.ToLower(strings.TrimSpace(data.Email))
		role := strings.ToUpper(strings.TrimSpace(data.Role))
		if role == "" {
			role = constants.RoleStudent
		}
		if !constants.IsValidRole(role) {
			log.Printf("❌ Role '%s' untuk '%s' tidak dikenal, dilewati.", data.Role, email)
			continue
		}

		var count int64
		if err := db.Model(&model.UserModel{}).Where("LOWER(email) = ?", email).Count(&count).Error; err != nil {
			log.Printf("❌ Gagal cek user '%s': %v", email, err)
			continue
		}
		if count > 0 {
			log.Printf("ℹ️ User dengan email '%s' sudah ada, dilewati.", email)
			continue
		}

		hashedPassword, err := authHelper.HashPassword(data.Password)
		if err != nil {
			log.Printf("❌ Gagal hash password untuk '%s': %v", email, err)
			continue
		}

		newUser := model.UserModel{
			UserName:  data.UserName,
			Email:     email,
			Password:  hashedPassword,
			Role:      role,
			ClassName: data.ClassName,
			IsActive:  true,
		}
		if err := db.Create(&newUser).Error; err != nil {
			log.Printf("❌ Gagal insert user '%s': %v", email, err)
		} else {
			log.Printf("✅ Berhasil insert user '%s'", email)
		}
	}
}
