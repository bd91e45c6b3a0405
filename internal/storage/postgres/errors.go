package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
)

const pgUniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	return false
}

// textArray возвращает sql.Scanner для колонки TEXT[].
// database/sql не умеет сканировать массивы, поэтому используем кодеки pgtype.
func textArray(dst *[]string) any {
	return pgtype.NewMap().SQLScanner(dst)
}

// nonNil гарантирует, что в INSERT уйдёт '{}' вместо NULL.
func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
