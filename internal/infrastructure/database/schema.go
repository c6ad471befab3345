package database

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"

	pkgdb "catalog-backend/pkg/database"
)

//go:embed schema.sql
var schemaSQL string

// Schema returns the DDL applied by Migrate.
func Schema() string {
	return schemaSQL
}

// Migrate applies the catalog schema in one transaction. Every statement is
// idempotent, so running it against an up-to-date database is a no-op.
func Migrate(ctx context.Context, db pkgdb.Querier) error {
	err := pkgdb.WithTransaction(ctx, db, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, schemaSQL)
		return err
	})
	if err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}

	log.Info().Msg("[DATABASE] Schema is up to date")
	return nil
}
