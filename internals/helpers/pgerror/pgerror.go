// Package pgerror mengenali error constraint Postgres dari driver mana pun
// (pgx lewat gorm, atau lib/pq).
package pgerror

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

const CodeUniqueViolation = "23505"

// Code mengembalikan SQLSTATE kalau err berasal dari Postgres, "" kalau bukan.
func Code(err error) string {
	if err == nil {
		return ""
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}

func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) || Code(err) == CodeUniqueViolation {
		return true
	}
	// fallback untuk driver yang membungkus error jadi string biasa
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "sqlstate 23505")
}
