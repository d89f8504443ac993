package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// nullIfEmpty guarda "" como NULL (columnas UNIQUE opcionales como barcode).
func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
