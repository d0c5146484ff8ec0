// Package persistence_postgresql persists shells as JSONB documents in
// PostgreSQL. One row per shell; the document column carries the full
// owned tree so reads and writes stay single-row operations.
package persistence_postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	jsoniter "github.com/json-iterator/go"

	"github.com/dpp40/dpp-go-components/internal/common"
	"github.com/dpp40/dpp-go-components/internal/common/model"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const createShellTable = `
CREATE TABLE IF NOT EXISTS dpp_shell (
	id       text PRIMARY KEY,
	id_short text NOT NULL,
	created  timestamptz NOT NULL,
	modified timestamptz NOT NULL,
	document jsonb NOT NULL
);
CREATE INDEX IF NOT EXISTS dpp_shell_id_short_idx ON dpp_shell (lower(id_short));
CREATE INDEX IF NOT EXISTS dpp_shell_created_idx ON dpp_shell (created, id);
`

// PostgreSQLShellDatabase implements the shell store on a pgx pool.
type PostgreSQLShellDatabase struct {
	pool *pgxpool.Pool
}

// NewPostgreSQLShellDatabase connects to PostgreSQL using the given
// configuration and bootstraps the schema.
func NewPostgreSQLShellDatabase(ctx context.Context, cfg common.PostgresConfig) (*PostgreSQLShellDatabase, error) {
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.DBName)

	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse PostgreSQL config: %w", err)
	}
	if cfg.MaxOpenConnections > 0 {
		poolConfig.MaxConns = int32(cfg.MaxOpenConnections)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create PostgreSQL pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping PostgreSQL: %w", err)
	}
	if _, err := pool.Exec(ctx, createShellTable); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to bootstrap shell schema: %w", err)
	}
	return &PostgreSQLShellDatabase{pool: pool}, nil
}

// Close releases the connection pool.
func (db *PostgreSQLShellDatabase) Close() {
	db.pool.Close()
}

// Insert stores a new shell row.
func (db *PostgreSQLShellDatabase) Insert(ctx context.Context, shell *model.Shell) error {
	doc, err := json.Marshal(shell)
	if err != nil {
		return common.NewInternalServerError("failed to serialize shell: " + err.Error())
	}
	tag, err := db.pool.Exec(ctx, `
		INSERT INTO dpp_shell (id, id_short, created, modified, document)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO NOTHING`,
		shell.ID, shell.IdShort, shell.Created, shell.Modified, doc)
	if err != nil {
		return common.NewInternalServerError("failed to insert shell: " + err.Error())
	}
	if tag.RowsAffected() == 0 {
		return common.NewErrBadRequest("shell identifier already exists: " + shell.ID)
	}
	return nil
}

// Get loads one shell document.
func (db *PostgreSQLShellDatabase) Get(ctx context.Context, id string) (*model.Shell, error) {
	var doc []byte
	err := db.pool.QueryRow(ctx,
		`SELECT document FROM dpp_shell WHERE id = $1`, id).Scan(&doc)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, common.NewErrNotFound("shell '" + id + "'")
	}
	if err != nil {
		return nil, common.NewInternalServerError("failed to query shell: " + err.Error())
	}
	return decodeShell(doc)
}

// GetAll loads all shells, creation time ascending.
func (db *PostgreSQLShellDatabase) GetAll(ctx context.Context) ([]*model.Shell, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT document FROM dpp_shell ORDER BY created ASC, id ASC`)
	if err != nil {
		return nil, common.NewInternalServerError("failed to query shells: " + err.Error())
	}
	defer rows.Close()

	var shells []*model.Shell
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, common.NewInternalServerError("failed to scan shell row: " + err.Error())
		}
		shell, err := decodeShell(doc)
		if err != nil {
			return nil, err
		}
		shells = append(shells, shell)
	}
	if err := rows.Err(); err != nil {
		return nil, common.NewInternalServerError("failed to iterate shell rows: " + err.Error())
	}
	return shells, nil
}

// Update mutates one shell inside a transaction. The row lock taken by
// SELECT ... FOR UPDATE serializes concurrent mutations per identifier.
func (db *PostgreSQLShellDatabase) Update(ctx context.Context, id string, mutate func(*model.Shell) error) (*model.Shell, error) {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return nil, common.NewInternalServerError("failed to begin transaction: " + err.Error())
	}
	defer tx.Rollback(ctx)

	var doc []byte
	err = tx.QueryRow(ctx,
		`SELECT document FROM dpp_shell WHERE id = $1 FOR UPDATE`, id).Scan(&doc)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, common.NewErrNotFound("shell '" + id + "'")
	}
	if err != nil {
		return nil, common.NewInternalServerError("failed to lock shell row: " + err.Error())
	}

	shell, err := decodeShell(doc)
	if err != nil {
		return nil, err
	}
	if err := mutate(shell); err != nil {
		return nil, err
	}

	next, err := json.Marshal(shell)
	if err != nil {
		return nil, common.NewInternalServerError("failed to serialize shell: " + err.Error())
	}
	if _, err := tx.Exec(ctx, `
		UPDATE dpp_shell
		SET id_short = $2, modified = $3, document = $4
		WHERE id = $1`,
		shell.ID, shell.IdShort, shell.Modified, next); err != nil {
		return nil, common.NewInternalServerError("failed to update shell: " + err.Error())
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, common.NewInternalServerError("failed to commit shell update: " + err.Error())
	}
	return shell, nil
}

// Delete removes the shell row. Submodels and elements live inside the
// document, so the single row delete is the full cascade.
func (db *PostgreSQLShellDatabase) Delete(ctx context.Context, id string) error {
	tag, err := db.pool.Exec(ctx, `DELETE FROM dpp_shell WHERE id = $1`, id)
	if err != nil {
		return common.NewInternalServerError("failed to delete shell: " + err.Error())
	}
	if tag.RowsAffected() == 0 {
		return common.NewErrNotFound("shell '" + id + "'")
	}
	return nil
}

// ExistsIdShort reports whether any shell carries the idShort (case-insensitive).
func (db *PostgreSQLShellDatabase) ExistsIdShort(ctx context.Context, idShort string) (bool, error) {
	var exists bool
	err := db.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM dpp_shell WHERE lower(id_short) = lower($1))`,
		idShort).Scan(&exists)
	if err != nil {
		return false, common.NewInternalServerError("failed to query idShort: " + err.Error())
	}
	return exists, nil
}

func decodeShell(doc []byte) (*model.Shell, error) {
	var shell model.Shell
	if err := json.Unmarshal(doc, &shell); err != nil {
		return nil, common.NewInternalServerError("failed to decode shell document: " + err.Error())
	}
	return &shell, nil
}
