package product

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Guilherme-Krepke-Rpv-Senai/catalogo-online/internal/domain"
)

const productColumns = `id, label, name, description, price, seller_phone, whatsapp_template, image_url, tags, available, created_at, updated_at`

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

func (r *postgresRepo) GetAll(ctx context.Context) ([]domain.Product, error) {
	q := `SELECT ` + productColumns + ` FROM products`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		r.logger.Printf("product repo: list error=%v", err)
		return nil, storageErr("list products", err)
	}
	defer rows.Close()

	var result []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, storageErr("scan product", err)
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		r.logger.Printf("product repo: list rows error=%v", err)
		return nil, storageErr("list products", err)
	}
	return result, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	q := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	p, err := scanProduct(r.pool.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("product repo: get id=%s error=%v", id, err)
		return nil, storageErr("get product", err)
	}
	return &p, nil
}

func (r *postgresRepo) Put(ctx context.Context, p domain.Product) error {
	const q = `
INSERT INTO products (id, label, name, description, price, seller_phone, whatsapp_template, image_url, tags, available, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
ON CONFLICT (id) DO UPDATE SET
    label = EXCLUDED.label,
    name = EXCLUDED.name,
    description = EXCLUDED.description,
    price = EXCLUDED.price,
    seller_phone = EXCLUDED.seller_phone,
    whatsapp_template = EXCLUDED.whatsapp_template,
    image_url = EXCLUDED.image_url,
    tags = EXCLUDED.tags,
    available = EXCLUDED.available,
    created_at = EXCLUDED.created_at,
    updated_at = EXCLUDED.updated_at
`
	_, err := r.pool.Exec(ctx, q,
		p.ID, p.Label, p.Name, p.Description, p.Price, p.SellerPhone,
		p.WhatsAppTemplate, p.ImageURL, p.Tags, p.Available, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		r.logger.Printf("product repo: put id=%s error=%v", p.ID, err)
		return storageErr("put product", err)
	}
	r.logger.Printf("product repo: put id=%s label=%s", p.ID, p.Label)
	return nil
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		r.logger.Printf("product repo: delete id=%s error=%v", id, err)
		return storageErr("delete product", err)
	}
	r.logger.Printf("product repo: delete id=%s removed=%d", id, cmd.RowsAffected())
	return nil
}

func (r *postgresRepo) Clear(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM products`); err != nil {
		r.logger.Printf("product repo: clear error=%v", err)
		return storageErr("clear products", err)
	}
	return nil
}

func (r *postgresRepo) ReplaceAll(ctx context.Context, products []domain.Product) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return storageErr("begin replace", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM products`); err != nil {
		return storageErr("replace clear", err)
	}
	const q = `
INSERT INTO products (id, label, name, description, price, seller_phone, whatsapp_template, image_url, tags, available, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
`
	for _, p := range products {
		if _, err := tx.Exec(ctx, q,
			p.ID, p.Label, p.Name, p.Description, p.Price, p.SellerPhone,
			p.WhatsAppTemplate, p.ImageURL, p.Tags, p.Available, p.CreatedAt, p.UpdatedAt,
		); err != nil {
			r.logger.Printf("product repo: replace insert id=%s error=%v", p.ID, err)
			return storageErr("replace insert", err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return storageErr("commit replace", err)
	}
	r.logger.Printf("product repo: replaced collection count=%d", len(products))
	return nil
}

func scanProduct(row pgx.Row) (domain.Product, error) {
	var p domain.Product
	err := row.Scan(
		&p.ID, &p.Label, &p.Name, &p.Description, &p.Price, &p.SellerPhone,
		&p.WhatsAppTemplate, &p.ImageURL, &p.Tags, &p.Available, &p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

func storageErr(op string, err error) error {
	return fmt.Errorf("%s: %w", op, errors.Join(domain.ErrStorage, err))
}
