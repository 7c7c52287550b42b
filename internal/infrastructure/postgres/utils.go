package postgres

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// isRetryable indica si la transacción falló por deadlock (40P01) o serialización (40001)
// y puede reintentarse completa.
func isRetryable(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "40P01" || pgErr.Code == "40001"
	}
	return false
}

// validID evita mandar a la DB ids que no son UUID (la columna es uuid y fallaría el cast).
// Un id inválido se trata como inexistente.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// validIDs filtra los ids que no son UUID.
func validIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if validID(id) {
			out = append(out, id)
		}
	}
	return out
}

// likePattern arma el patrón ILIKE "contiene" escapando comodines.
func likePattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(s) + "%"
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
