package repository

import (
	"context"
	"fmt"

	"sweet-shop/internal/data/entity"
	"sweet-shop/pkg/database"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// ProductFilter narrows FindAll. Zero values mean no filtering.
type ProductFilter struct {
	Category string
	Search   string
}

type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	FindAll(ctx context.Context, filter ProductFilter) ([]*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	DecrementStock(ctx context.Context, id uuid.UUID, quantity int) (bool, error)
}

type productRepository struct {
	db  database.PgxIface
	sb  squirrel.StatementBuilderType
	log *zap.Logger
}

func NewProductRepository(db database.PgxIface, log *zap.Logger) ProductRepository {
	return &productRepository{
		db:  db,
		sb:  squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
		log: log.With(zap.String("repository", "product")),
	}
}

func (r *productRepository) Create(ctx context.Context, product *entity.Product) error {
	query, args, err := r.sb.Insert("products").
		SetMap(map[string]interface{}{
			"id":          product.ID,
			"name":        product.Name,
			"category":    product.Category,
			"price":       product.Price,
			"image":       product.Image,
			"rating":      product.Rating,
			"in_stock":    product.InStock,
			"description": product.Description,
			"created_at":  product.CreatedAt,
		}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert product: %w", err)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		r.log.Error("Failed to create product",
			zap.Error(err),
			zap.String("name", product.Name),
		)
		return fmt.Errorf("create product %s: %w", product.Name, err)
	}

	return nil
}

func (r *productRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	query := `
		SELECT id, name, category, price, image, rating, in_stock,
		       description, created_at
		FROM products
		WHERE id = $1
	`

	var product entity.Product
	err := r.db.QueryRow(ctx, query, id).Scan(
		&product.ID,
		&product.Name,
		&product.Category,
		&product.Price,
		&product.Image,
		&product.Rating,
		&product.InStock,
		&product.Description,
		&product.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find product by ID",
			zap.Error(err),
			zap.String("product_id", id.String()),
		)
		return nil, fmt.Errorf("find product by ID %s: %w", id.String(), err)
	}

	return &product, nil
}

// FindAll returns products newest first, optionally narrowed by category
// and a case-insensitive name/description search.
func (r *productRepository) FindAll(ctx context.Context, filter ProductFilter) ([]*entity.Product, error) {
	builder := r.sb.Select(
		"id", "name", "category", "price", "image", "rating",
		"in_stock", "description", "created_at",
	).
		From("products").
		OrderBy("created_at DESC")

	if filter.Category != "" {
		builder = builder.Where(squirrel.Eq{"category": filter.Category})
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		builder = builder.Where(squirrel.Or{
			squirrel.ILike{"name": like},
			squirrel.ILike{"description": like},
		})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build products query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to get products",
			zap.Error(err),
			zap.String("category", filter.Category),
			zap.String("search", filter.Search),
		)
		return nil, fmt.Errorf("find all products: %w", err)
	}
	defer rows.Close()

	var products []*entity.Product
	for rows.Next() {
		var product entity.Product
		err := rows.Scan(
			&product.ID,
			&product.Name,
			&product.Category,
			&product.Price,
			&product.Image,
			&product.Rating,
			&product.InStock,
			&product.Description,
			&product.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan product row", zap.Error(err))
			return nil, fmt.Errorf("scan product row: %w", err)
		}
		products = append(products, &product)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate product rows: %w", err)
	}

	return products, nil
}

func (r *productRepository) Update(ctx context.Context, product *entity.Product) error {
	query, args, err := r.sb.Update("products").
		SetMap(map[string]interface{}{
			"name":        product.Name,
			"category":    product.Category,
			"price":       product.Price,
			"image":       product.Image,
			"rating":      product.Rating,
			"in_stock":    product.InStock,
			"description": product.Description,
		}).
		Where(squirrel.Eq{"id": product.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update product: %w", err)
	}

	result, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to update product",
			zap.Error(err),
			zap.String("product_id", product.ID.String()),
		)
		return fmt.Errorf("update product %s: %w", product.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("product %s not found", product.ID.String())
	}

	return nil
}

func (r *productRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM products WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete product",
			zap.Error(err),
			zap.String("product_id", id.String()),
		)
		return fmt.Errorf("delete product %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("product %s not found", id.String())
	}

	r.log.Info("Product deleted", zap.String("product_id", id.String()))
	return nil
}

// DecrementStock subtracts quantity from in_stock and reports whether the
// row was written. The stock guard lives in the WHERE clause so two
// concurrent purchases cannot drive in_stock negative.
func (r *productRepository) DecrementStock(ctx context.Context, id uuid.UUID, quantity int) (bool, error) {
	query := `
		UPDATE products
		SET in_stock = in_stock - $2
		WHERE id = $1 AND in_stock >= $2
	`

	result, err := r.db.Exec(ctx, query, id, quantity)
	if err != nil {
		r.log.Error("Failed to decrement stock",
			zap.Error(err),
			zap.String("product_id", id.String()),
			zap.Int("quantity", quantity),
		)
		return false, fmt.Errorf("decrement stock for %s: %w", id.String(), err)
	}

	return result.RowsAffected() > 0, nil
}
