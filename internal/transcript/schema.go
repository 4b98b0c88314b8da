package transcript

import (
	"context"
	"database/sql"
	_ "embed"

	"github.com/pkg/errors"
)

// schemaDDL holds the transcript schema definition.
//
//go:embed schema.sql
var schemaDDL string

// EnsureSchema creates the transcript tables when they do not exist.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("transcript: db is nil")
	}
	_, err := db.ExecContext(ctx, schemaDDL)
	return errors.Wrap(err, "transcript: apply schema")
}
