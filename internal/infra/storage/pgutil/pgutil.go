// Package pgutil общие помощники репозиториев PostgreSQL
package pgutil

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/m04kA/EquestrianHub/internal/domain"
)

// Коды ошибок PostgreSQL
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

// IsUniqueViolation true, если err нарушение уникального ограничения
func IsUniqueViolation(err error) bool {
	var pgErr *pq.Error
	return errors.As(err, &pgErr) && pgErr.Code == codeUniqueViolation
}

// IsForeignKeyViolation true, если err нарушение внешнего ключа
func IsForeignKeyViolation(err error) bool {
	var pgErr *pq.Error
	return errors.As(err, &pgErr) && pgErr.Code == codeForeignKeyViolation
}

// StringArray значения статусов для `status = ANY(?)`
func StringArray[S ~string](values []S) interface{} {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return pq.Array(out)
}

// VerificationValue сериализует результат проверки в JSONB (nil -> NULL).
// Строка, а не []byte: lib/pq передаёт []byte как bytea
func VerificationValue(v *domain.Verification) (interface{}, error) {
	if v == nil {
		return nil, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal verification: %w", err)
	}
	return string(data), nil
}

// NullVerification приёмник для JSONB-колонки verification
type NullVerification struct {
	Verification *domain.Verification
}

// Scan реализует sql.Scanner
func (n *NullVerification) Scan(src interface{}) error {
	n.Verification = nil

	var data []byte
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("pgutil: unsupported verification type %T", src)
	}

	var verification domain.Verification
	if err := json.Unmarshal(data, &verification); err != nil {
		return fmt.Errorf("pgutil: unmarshal verification: %w", err)
	}
	n.Verification = &verification
	return nil
}

var _ sql.Scanner = (*NullVerification)(nil)
