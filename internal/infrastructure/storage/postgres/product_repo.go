package postgres

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"stylos/internal/core/apperror"
	"stylos/internal/core/id"
	"stylos/internal/domain/catalog/product"
)

var productCols = []string{
	"id", "name", "category", "description", "price", "cost",
	"min_stock", "image", "status", "version", "created_at", "updated_at",
}

var variantCols = []string{
	"id", "product_id", "size", "color", "stock", "sku", "model", "variant_key",
}

var _ product.Repository = (*ProductRepo)(nil)

// ProductRepo persists products and their variants.
type ProductRepo struct {
	txManager *TxManager
}

// NewProductRepo creates a new product repository.
func NewProductRepo(txManager *TxManager) *ProductRepo {
	return &ProductRepo{txManager: txManager}
}

// Create inserts a product with its variants.
func (r *ProductRepo) Create(ctx context.Context, p *product.Product) error {
	q := builder().
		Insert("products").
		Columns(productCols...).
		Values(p.ID, p.Name, p.Category, p.Description, p.Price, p.Cost,
			p.MinStock, p.Image, p.Status, p.Version, p.CreatedAt, p.UpdatedAt)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert product: %w", err)
	}

	return r.insertVariants(ctx, p)
}

// Update replaces the product row and its variant set with optimistic locking.
func (r *ProductRepo) Update(ctx context.Context, p *product.Product) error {
	q := builder().
		Update("products").
		Set("name", p.Name).
		Set("category", p.Category).
		Set("description", p.Description).
		Set("price", p.Price).
		Set("cost", p.Cost).
		Set("min_stock", p.MinStock).
		Set("image", p.Image).
		Set("status", p.Status).
		Set("updated_at", p.UpdatedAt).
		Set("version", squirrel.Expr("version + 1")).
		Where(squirrel.Eq{"id": p.ID}).
		Where(squirrel.Eq{"version": p.Version})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	result, err := querier.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewConcurrentModification("product", p.ID.String())
	}
	p.Version++

	// Variants are replaced wholesale; stock counters for surviving variant
	// ids are preserved via upsert.
	upsert := `
		INSERT INTO product_variants (id, product_id, size, color, stock, sku, model, variant_key)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			size = EXCLUDED.size,
			color = EXCLUDED.color,
			sku = EXCLUDED.sku,
			model = EXCLUDED.model,
			variant_key = EXCLUDED.variant_key
	`
	keep := make([]id.ID, 0, len(p.Variants))
	for i := range p.Variants {
		v := &p.Variants[i]
		if _, err := querier.Exec(ctx, upsert,
			v.ID, p.ID, v.Size, v.Color, v.Stock, v.SKU, v.Model, v.Key); err != nil {
			return fmt.Errorf("upsert variant: %w", err)
		}
		keep = append(keep, v.ID)
	}

	del := builder().
		Delete("product_variants").
		Where(squirrel.Eq{"product_id": p.ID})
	if len(keep) > 0 {
		del = del.Where(squirrel.NotEq{"id": keep})
	}
	sql, args, err = del.ToSql()
	if err != nil {
		return fmt.Errorf("build variant delete: %w", err)
	}
	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("delete removed variants: %w", err)
	}

	return nil
}

// GetByID retrieves a product with its variants.
func (r *ProductRepo) GetByID(ctx context.Context, productID id.ID) (*product.Product, error) {
	q := builder().
		Select(productCols...).
		From("products").
		Where(squirrel.Eq{"id": productID}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	p := &product.Product{}
	if err := pgxscan.Get(ctx, querier, p, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("product", productID.String())
		}
		return nil, fmt.Errorf("get product: %w", err)
	}

	if err := r.loadVariants(ctx, []*product.Product{p}); err != nil {
		return nil, err
	}
	return p, nil
}

// List retrieves products with filtering, name ascending.
func (r *ProductRepo) List(ctx context.Context, filter product.ListFilter) ([]*product.Product, error) {
	q := builder().
		Select(productCols...).
		From("products").
		OrderBy("name ASC")

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		q = q.Where(squirrel.Or{
			squirrel.ILike{"name": pattern},
			squirrel.ILike{"description": pattern},
		})
	}
	if filter.Category != "" {
		q = q.Where(squirrel.Eq{"category": filter.Category})
	}
	if len(filter.Categories) > 0 {
		q = q.Where(squirrel.Eq{"category": filter.Categories})
	}
	if filter.Status != "" {
		q = q.Where(squirrel.Eq{"status": filter.Status})
	}
	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	var products []*product.Product
	if err := pgxscan.Select(ctx, querier, &products, sql, args...); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	if err := r.loadVariants(ctx, products); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *ProductRepo) insertVariants(ctx context.Context, p *product.Product) error {
	if len(p.Variants) == 0 {
		return nil
	}

	q := builder().
		Insert("product_variants").
		Columns(variantCols...)
	for i := range p.Variants {
		v := &p.Variants[i]
		q = q.Values(v.ID, p.ID, v.Size, v.Color, v.Stock, v.SKU, v.Model, v.Key)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build variant insert: %w", err)
	}

	if _, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		if isUniqueViolation(err) {
			return apperror.NewDuplicate("variant", "size/color", "").WithCause(err)
		}
		return fmt.Errorf("insert variants: %w", err)
	}
	return nil
}

func (r *ProductRepo) loadVariants(ctx context.Context, products []*product.Product) error {
	if len(products) == 0 {
		return nil
	}

	ids := make([]id.ID, len(products))
	byID := make(map[id.ID]*product.Product, len(products))
	for i, p := range products {
		ids[i] = p.ID
		byID[p.ID] = p
	}

	q := builder().
		Select(variantCols...).
		From("product_variants").
		Where(squirrel.Eq{"product_id": ids}).
		OrderBy("size ASC", "color ASC")

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build variant query: %w", err)
	}

	var variants []product.Variant
	if err := pgxscan.Select(ctx, r.txManager.GetQuerier(ctx), &variants, sql, args...); err != nil {
		return fmt.Errorf("load variants: %w", err)
	}

	for _, v := range variants {
		p := byID[v.ProductID]
		p.Variants = append(p.Variants, v)
	}
	for _, p := range products {
		p.BuildIndex()
	}
	return nil
}
