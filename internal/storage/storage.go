package storage

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mwangaza-power/vend-server/internal/config"
	"github.com/mwangaza-power/vend-server/internal/storage/sqlconfig"
)

type Storage struct {
	Pool         *pgxpool.Pool
	Users        sqlconfig.IUsersTable
	Transactions sqlconfig.ITransactionsTable
}

// NewStorage opens a connection pool and fails fast if the database is
// unreachable.
func NewStorage(env *config.Config) (*Storage, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, env.DatabaseURL)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return &Storage{
		Pool:         pool,
		Users:        sqlconfig.NewUsersTable(pool),
		Transactions: sqlconfig.NewTransactionsTable(pool),
	}, nil
}

func (s *Storage) Ping(ctx context.Context) error {
	return s.Pool.Ping(ctx)
}

func (s *Storage) Close() {
	s.Pool.Close()
}
