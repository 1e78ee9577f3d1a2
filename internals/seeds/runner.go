package seeds

import (
	"gorm.io/gorm"

	exams "smart_eujian_backend/internals/seeds/exams"
	users "smart_eujian_backend/internals/seeds/users"
)

func RunAllSeeds(db *gorm.DB) {
	//* User (guru harus ada sebelum ujian)
	users.SeedUsersFromJSON(db, "internals/seeds/users/data_users.json")

	//* Ujian + soal
	exams.SeedExamsFromJSON(db, "internals/seeds/exams/data_exams.json")
}
