package db

import (
	"context"
	_ "embed"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed schema.sql
var schema string

type poolPinger interface {
	Ping(ctx context.Context) error
	Close()
}

// Execer es lo mínimo que necesita Migrate (lo cumple *pgxpool.Pool).
type Execer interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

var (
	newPool  = pgxpool.New
	pingPool = func(ctx context.Context, pool poolPinger) error {
		return pool.Ping(ctx)
	}
	closePool = func(pool poolPinger) {
		pool.Close()
	}
)

// NewPool abre el pool del catálogo y hace ping antes de devolverlo,
// con 5s de límite para no colgar el arranque si la DB no responde.
func NewPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	pool, err := newPool(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open pool: %w", err)
	}
	if err := pingPool(ctx, pool); err != nil {
		closePool(pool)
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return pool, nil
}

// Migrate aplica el schema embebido. Todas las sentencias son idempotentes.
func Migrate(ctx context.Context, database Execer) error {
	for index, statement := range Statements() {
		if _, err := database.Exec(ctx, statement); err != nil {
			return fmt.Errorf("migrate statement %d: %w", index+1, err)
		}
	}
	return nil
}

// Statements devuelve las sentencias del schema, una por elemento.
func Statements() []string {
	var statements []string
	for _, part := range strings.Split(schema, ";") {
		if statement := strings.TrimSpace(part); statement != "" {
			statements = append(statements, statement)
		}
	}
	return statements
}
