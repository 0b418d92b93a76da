package postgres

import (
	"context"
	"fmt"
	"time"
)

const (
	migrationLockKey  = int64(10824702)
	migrationTableDDL = `
CREATE TABLE IF NOT EXISTS schema_migrations (
    version BIGINT PRIMARY KEY,
    name TEXT NOT NULL,
    applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`
)

type migration struct {
	Version int64
	Name    string
	UpSQL   string
	DownSQL string
}

// Схема заказов книжного магазина. Позиции хранят позицию в заказе,
// чтобы чтение возвращало строки в порядке создания.
var migrations = []migration{
	{
		Version: 1,
		Name:    "create_orders",
		UpSQL: `
CREATE TABLE IF NOT EXISTS orders (
    id TEXT PRIMARY KEY,
    amount_minor BIGINT NOT NULL,
    currency TEXT NOT NULL,
    shipping_address TEXT NOT NULL,
    status TEXT NOT NULL,
    payment_session_id TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL
)`,
		DownSQL: `DROP TABLE IF EXISTS orders`,
	},
	{
		Version: 2,
		Name:    "create_order_items",
		UpSQL: `
CREATE TABLE IF NOT EXISTS order_items (
    order_id TEXT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
    position INT NOT NULL,
    book_id TEXT NOT NULL,
    title TEXT NOT NULL,
    price_minor BIGINT NOT NULL,
    qty INT NOT NULL,
    PRIMARY KEY (order_id, position)
)`,
		DownSQL: `DROP TABLE IF EXISTS order_items`,
	},
}

// MigrateUp применяет up-миграции. steps=0 означает «применить все доступные».
func (s *Store) MigrateUp(ctx context.Context, steps int) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("postgres store is not initialized")
	}

	return s.withMigrationLock(ctx, func(ctx context.Context) error {
		applied, err := s.appliedVersions(ctx)
		if err != nil {
			return err
		}

		done := 0
		for _, m := range migrations {
			if steps > 0 && done >= steps {
				break
			}
			if _, ok := applied[m.Version]; ok {
				continue
			}
			if _, err := s.db.ExecContext(ctx, m.UpSQL); err != nil {
				return fmt.Errorf("apply migration %d_%s: %w", m.Version, m.Name, err)
			}
			if _, err := s.db.ExecContext(ctx,
				`INSERT INTO schema_migrations (version, name) VALUES ($1, $2)`,
				m.Version, m.Name,
			); err != nil {
				return fmt.Errorf("record migration %d_%s: %w", m.Version, m.Name, err)
			}
			done++
		}
		return nil
	})
}

// MigrateDown откатывает миграции. steps<=0 интерпретируется как 1 шаг.
func (s *Store) MigrateDown(ctx context.Context, steps int) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("postgres store is not initialized")
	}
	if steps <= 0 {
		steps = 1
	}

	return s.withMigrationLock(ctx, func(ctx context.Context) error {
		applied, err := s.appliedVersions(ctx)
		if err != nil {
			return err
		}

		done := 0
		for i := len(migrations) - 1; i >= 0 && done < steps; i-- {
			m := migrations[i]
			if _, ok := applied[m.Version]; !ok {
				continue
			}
			if _, err := s.db.ExecContext(ctx, m.DownSQL); err != nil {
				return fmt.Errorf("revert migration %d_%s: %w", m.Version, m.Name, err)
			}
			if _, err := s.db.ExecContext(ctx,
				`DELETE FROM schema_migrations WHERE version = $1`, m.Version,
			); err != nil {
				return fmt.Errorf("unrecord migration %d_%s: %w", m.Version, m.Name, err)
			}
			done++
		}
		return nil
	})
}

// MigrationStatus возвращает текущую версию и количество применённых миграций.
func (s *Store) MigrationStatus(ctx context.Context) (int64, int, error) {
	if s == nil || s.db == nil {
		return 0, 0, fmt.Errorf("postgres store is not initialized")
	}

	queryCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := s.db.ExecContext(queryCtx, migrationTableDDL); err != nil {
		return 0, 0, fmt.Errorf("ensure schema_migrations: %w", err)
	}

	applied, err := s.appliedVersions(queryCtx)
	if err != nil {
		return 0, 0, err
	}

	var current int64
	for v := range applied {
		if v > current {
			current = v
		}
	}
	return current, len(applied), nil
}

func (s *Store) appliedVersions(ctx context.Context) (map[int64]struct{}, error) {
	if _, err := s.db.ExecContext(ctx, migrationTableDDL); err != nil {
		return nil, fmt.Errorf("ensure schema_migrations: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `SELECT version FROM schema_migrations`)
	if err != nil {
		return nil, fmt.Errorf("select applied migrations: %w", err)
	}
	defer func() { _ = rows.Close() }()

	applied := make(map[int64]struct{})
	for rows.Next() {
		var version int64
		if err := rows.Scan(&version); err != nil {
			return nil, fmt.Errorf("scan migration version: %w", err)
		}
		applied[version] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate applied migrations: %w", err)
	}
	return applied, nil
}

// withMigrationLock сериализует миграции через advisory lock,
// чтобы параллельный запуск нескольких экземпляров не ломал схему.
func (s *Store) withMigrationLock(ctx context.Context, fn func(context.Context) error) error {
	if _, err := s.db.ExecContext(ctx, `SELECT pg_advisory_lock($1)`, migrationLockKey); err != nil {
		return fmt.Errorf("acquire migration lock: %w", err)
	}
	defer func() {
		_, _ = s.db.ExecContext(ctx, `SELECT pg_advisory_unlock($1)`, migrationLockKey)
	}()

	return fn(ctx)
}
