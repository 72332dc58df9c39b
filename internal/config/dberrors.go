package config

import (
	"errors"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"
)

// IsIntegrityViolation reports whether err is a unique or foreign key
// constraint failure from any supported backend.
func IsIntegrityViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) || errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// unique_violation, foreign_key_violation, not_null_violation, check_violation
		switch pgErr.Code {
		case "23505", "23503", "23502", "23514":
			return true
		}
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		// ER_DUP_ENTRY, ER_NO_REFERENCED_ROW_2, ER_ROW_IS_REFERENCED_2, ER_CHECK_CONSTRAINT_VIOLATED
		switch myErr.Number {
		case 1062, 1452, 1451, 3819:
			return true
		}
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) && liteErr.Code == sqlite3.ErrConstraint {
		return true
	}

	return false
}
