package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Guilherme-Krepke-Rpv-Senai/catalogo-online/internal/domain"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

func (r *postgresRepo) Load(ctx context.Context, slot string) ([]domain.CartLine, error) {
	var raw []byte
	err := r.pool.QueryRow(ctx, `SELECT lines FROM cart_snapshots WHERE slot = $1`, slot).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []domain.CartLine{}, nil
		}
		r.logger.Printf("cart repo: load slot=%s error=%v", slot, err)
		return nil, fmt.Errorf("load cart: %w", errors.Join(domain.ErrStorage, err))
	}

	var lines []domain.CartLine
	if err := json.Unmarshal(raw, &lines); err != nil {
		// Corrupted snapshot reads as an empty cart.
		r.logger.Printf("cart repo: load slot=%s unparseable snapshot, treating as empty: %v", slot, err)
		return []domain.CartLine{}, nil
	}
	if lines == nil {
		lines = []domain.CartLine{}
	}
	return lines, nil
}

func (r *postgresRepo) Save(ctx context.Context, slot string, lines []domain.CartLine) error {
	if lines == nil {
		lines = []domain.CartLine{}
	}
	raw, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	const q = `
INSERT INTO cart_snapshots (slot, lines, updated_at)
VALUES ($1, $2, now())
ON CONFLICT (slot) DO UPDATE SET lines = EXCLUDED.lines, updated_at = now()
`
	if _, err := r.pool.Exec(ctx, q, slot, raw); err != nil {
		r.logger.Printf("cart repo: save slot=%s error=%v", slot, err)
		return fmt.Errorf("save cart: %w", errors.Join(domain.ErrStorage, err))
	}
	r.logger.Printf("cart repo: saved slot=%s lines=%d", slot, len(lines))
	return nil
}

func (r *postgresRepo) Clear(ctx context.Context, slot string) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM cart_snapshots WHERE slot = $1`, slot); err != nil {
		r.logger.Printf("cart repo: clear slot=%s error=%v", slot, err)
		return fmt.Errorf("clear cart: %w", errors.Join(domain.ErrStorage, err))
	}
	return nil
}
