package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shaiso/Vitrina/internal/domain"
)

// Ключи аннотаций товара в product_meta.
const (
	// MetaScheduleType — вид запланированного перехода.
	MetaScheduleType = "schedule_type"

	// MetaTimezone — таймзона товара, перекрывающая дефолт процесса.
	MetaTimezone = "timezone"
)

// ProductRepo — репозиторий товаров, их аннотаций и кэша.
type ProductRepo struct {
	pool *pgxpool.Pool
}

// NewProductRepo создаёт новый ProductRepo.
func NewProductRepo(pool *pgxpool.Pool) *ProductRepo {
	return &ProductRepo{pool: pool}
}

// Create создаёт товар и заполняет ID и таймстемпы из БД.
func (r *ProductRepo) Create(ctx context.Context, p *domain.Product) error {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO products (name, status, catalog_visibility, featured)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`, p.Name, p.Status, p.CatalogVisibility, p.Featured).
		Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID возвращает товар по ID.
func (r *ProductRepo) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	query := `
		SELECT id, name, status, catalog_visibility, featured, created_at, updated_at
		FROM products
		WHERE id = $1
	`
	var p domain.Product
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&p.ID,
		&p.Name,
		&p.Status,
		&p.CatalogVisibility,
		&p.Featured,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan product: %w", err)
	}
	return &p, nil
}

// List возвращает товары по возрастанию ID.
func (r *ProductRepo) List(ctx context.Context, limit, offset int) ([]domain.Product, error) {
	query := `
		SELECT id, name, status, catalog_visibility, featured, created_at, updated_at
		FROM products
		ORDER BY id ASC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		var p domain.Product
		err := rows.Scan(
			&p.ID,
			&p.Name,
			&p.Status,
			&p.CatalogVisibility,
			&p.Featured,
			&p.CreatedAt,
			&p.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// Save записывает товар целиком — обычный путь записи со всеми
// сопутствующими эффектами (обновление updated_at).
func (r *ProductRepo) Save(ctx context.Context, p *domain.Product) error {
	result, err := r.pool.Exec(ctx, `
		UPDATE products
		SET name = $2, status = $3, catalog_visibility = $4, featured = $5,
		    updated_at = NOW()
		WHERE id = $1
	`, p.ID, p.Name, p.Status, p.CatalogVisibility, p.Featured)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ForceStatus пишет статус напрямую, в обход обычного пути записи.
// Страховка для случаев, когда Save не довёл статус до нужного
// значения; updated_at не трогает.
func (r *ProductRepo) ForceStatus(ctx context.Context, id int64, status domain.ProductStatus) error {
	result, err := r.pool.Exec(ctx,
		`UPDATE products SET status = $2 WHERE id = $1`, id, status,
	)
	if err != nil {
		return fmt.Errorf("force status: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// InvalidateCache сбрасывает все кэшированные представления товара.
func (r *ProductRepo) InvalidateCache(ctx context.Context, productID int64) error {
	_, err := r.pool.Exec(ctx,
		`DELETE FROM product_cache WHERE product_id = $1`, productID,
	)
	if err != nil {
		return fmt.Errorf("invalidate cache: %w", err)
	}
	return nil
}

// GetMeta возвращает значение аннотации товара.
func (r *ProductRepo) GetMeta(ctx context.Context, productID int64, key string) (string, error) {
	var value string
	err := r.pool.QueryRow(ctx,
		`SELECT meta_value FROM product_meta WHERE product_id = $1 AND meta_key = $2`,
		productID, key,
	).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("get meta: %w", err)
	}
	return value, nil
}

// SetMeta записывает аннотацию товара (upsert).
func (r *ProductRepo) SetMeta(ctx context.Context, productID int64, key, value string) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO product_meta (product_id, meta_key, meta_value)
		VALUES ($1, $2, $3)
		ON CONFLICT (product_id, meta_key) DO UPDATE SET meta_value = EXCLUDED.meta_value
	`, productID, key, value)
	if err != nil {
		return fmt.Errorf("set meta: %w", err)
	}
	return nil
}

// DeleteMeta удаляет аннотацию товара. Отсутствие — не ошибка.
func (r *ProductRepo) DeleteMeta(ctx context.Context, productID int64, key string) error {
	_, err := r.pool.Exec(ctx,
		`DELETE FROM product_meta WHERE product_id = $1 AND meta_key = $2`,
		productID, key,
	)
	if err != nil {
		return fmt.Errorf("delete meta: %w", err)
	}
	return nil
}

// TimezoneOverride возвращает таймзону товара; пустая строка —
// override не задан.
func (r *ProductRepo) TimezoneOverride(ctx context.Context, productID int64) (string, error) {
	zone, err := r.GetMeta(ctx, productID, MetaTimezone)
	if errors.Is(err, ErrNotFound) {
		return "", nil
	}
	return zone, err
}
