package db

import (
	"context"
	"sync"

	"navsikhyo/internal/config"

	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	pool    *pgxpool.Pool
	poolErr error
	once    sync.Once
)

// Get возвращает процессный пул соединений.
// Инициализируется лениво один раз, teardown-а нет: пул живёт до конца процесса.
func Get(cfg *config.Config) (*pgxpool.Pool, error) {
	once.Do(func() {
		pool, poolErr = connect(cfg)
	})
	return pool, poolErr
}

func connect(cfg *config.Config) (*pgxpool.Pool, error) {
	dsn := cfg.GetDSN()
	p, err := pgxpool.New(context.Background(), dsn)

	if err != nil {
		return nil, err
	}

	err = p.Ping(context.Background())
	if err != nil {
		return nil, err
	}

	return p, nil
}
