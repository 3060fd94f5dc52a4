// Package sqlite implementa los puertos de persistencia sobre SQLite (database/sql + go-sqlite3).
//
// Se usa en modo local (STORAGE_DRIVER=sqlite) y en los tests con una base en memoria.
// El pool se limita a una conexión: SQLite admite un solo escritor y una base ":memory:"
// existe solo dentro de su conexión.
package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// timeLayout es el formato de las marcas de tiempo persistidas como TEXT.
const timeLayout = time.RFC3339Nano

// MemoryPath abre una base en memoria.
const MemoryPath = ":memory:"

// Open abre (o crea) la base en path, activa claves foráneas y aplica el esquema.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	dsn := fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000", path)
	if path != MemoryPath {
		dsn += "&_journal_mode=WAL"
	}
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("abrir sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("aplicar esquema: %w", err)
	}
	return db, nil
}
