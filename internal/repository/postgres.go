package repository

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const slotsTable = "slots"

// PostgresRepository хранит слоты в таблице slots PostgreSQL в колонке JSONB.
type PostgresRepository struct {
	pool    *pgxpool.Pool
	builder squirrel.StatementBuilderType
}

type slotRow struct {
	Key   string `db:"key"`
	Value []byte `db:"value"`
}

// NewPostgresRepository создаёт новый репозиторий и инициализирует схему БД через миграции.
func NewPostgresRepository(dsn string) (*PostgresRepository, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse pool config: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	r := &PostgresRepository{
		pool:    pool,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}

	if err := r.runMigrations(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return r, nil
}

func (r *PostgresRepository) runMigrations(ctx context.Context) error {
	db := stdlib.OpenDBFromPool(r.pool)
	defer db.Close()

	goose.SetBaseFS(migrationsFS)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set dialect: %w", err)
	}

	if err := goose.UpContext(ctx, db, "migrations"); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	return nil
}

func (r *PostgresRepository) withRetry(ctx context.Context, fn func() error) error {
	var err error
	delays := []time.Duration{1 * time.Second, 3 * time.Second, 5 * time.Second}

	for i := 0; i <= len(delays); i++ {
		err = fn()
		if err == nil {
			return nil
		}

		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}

		if !isRetryable(err) || i == len(delays) {
			break
		}

		timer := time.NewTimer(delays[i])
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
	return err
}

func isRetryable(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgerrcode.SerializationFailure || pgErr.Code == pgerrcode.DeadlockDetected
	}
	return isConnectionError(err)
}

func isConnectionError(err error) bool {
	// Упрощенная проверка на ошибки соединения
	return strings.Contains(err.Error(), "connection refused") ||
		strings.Contains(err.Error(), "broken pipe") ||
		strings.Contains(err.Error(), "connection reset by peer")
}

// Close закрывает пул соединений с БД.
func (r *PostgresRepository) Close() error {
	r.pool.Close()
	return nil
}

// Get возвращает содержимое слота.
func (r *PostgresRepository) Get(ctx context.Context, key string) ([]byte, bool, error) {
	query, args, err := r.builder.
		Select("key", "value").
		From(slotsTable).
		Where(squirrel.Eq{"key": key}).
		ToSql()
	if err != nil {
		return nil, false, fmt.Errorf("build select: %w", err)
	}

	var row slotRow
	err = r.withRetry(ctx, func() error {
		return pgxscan.Get(ctx, r.pool, &row, query, args...)
	})
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("select slot %s: %w", key, err)
	}

	return row.Value, true, nil
}

// Put заменяет содержимое слота целиком.
func (r *PostgresRepository) Put(ctx context.Context, key string, value []byte) error {
	query, args, err := r.builder.
		Insert(slotsTable).
		Columns("key", "value").
		Values(key, value).
		Suffix("ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()").
		ToSql()
	if err != nil {
		return fmt.Errorf("build upsert: %w", err)
	}

	err = r.withRetry(ctx, func() error {
		_, err := r.pool.Exec(ctx, query, args...)
		return err
	})
	if err != nil {
		return fmt.Errorf("upsert slot %s: %w", key, err)
	}

	return nil
}

// Delete удаляет слот.
func (r *PostgresRepository) Delete(ctx context.Context, key string) error {
	query, args, err := r.builder.
		Delete(slotsTable).
		Where(squirrel.Eq{"key": key}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	err = r.withRetry(ctx, func() error {
		_, err := r.pool.Exec(ctx, query, args...)
		return err
	})
	if err != nil {
		return fmt.Errorf("delete slot %s: %w", key, err)
	}

	return nil
}

// Clear удаляет все слоты.
func (r *PostgresRepository) Clear(ctx context.Context) error {
	query, args, err := r.builder.Delete(slotsTable).ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	err = r.withRetry(ctx, func() error {
		_, err := r.pool.Exec(ctx, query, args...)
		return err
	})
	if err != nil {
		return fmt.Errorf("clear slots: %w", err)
	}

	return nil
}
