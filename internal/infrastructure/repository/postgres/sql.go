package postgres

import (
	"database/sql"
	"fmt"

	sonic "github.com/bytedance/sonic"
)

func isNotFound(err error) bool {
	return err == sql.ErrNoRows
}

// encodeJSON renders a value for a jsonb column. A nil map or slice encodes
// as its empty container so stored documents never hold SQL nulls.
func encodeJSON(value any) (string, error) {
	encoded, err := sonic.Marshal(value)
	if err != nil {
		return "", fmt.Errorf("encode json column: %w", err)
	}
	return string(encoded), nil
}
