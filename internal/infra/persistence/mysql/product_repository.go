package mysql

import (
	"context"
	"database/sql"

	domproduct "example.com/shoecart/internal/domain/product"
)

// ProductRepository reads the catalog from the products and stock tables.
type ProductRepository struct {
	db *sql.DB
}

func NewProductRepository(db *sql.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) List(ctx context.Context) ([]domproduct.Product, error) {
	rows, err := r.db.QueryContext(ctx, `
        SELECT id, title, price, image
        FROM products
        ORDER BY id
    `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []domproduct.Product
	for rows.Next() {
		var p domproduct.Product
		if err := rows.Scan(&p.ID, &p.Title, &p.Price, &p.Image); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *ProductRepository) ListStock(ctx context.Context) ([]domproduct.Stock, error) {
	rows, err := r.db.QueryContext(ctx, `
        SELECT id, amount
        FROM stock
    `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stock []domproduct.Stock
	for rows.Next() {
		var s domproduct.Stock
		if err := rows.Scan(&s.ProductID, &s.Amount); err != nil {
			return nil, err
		}
		stock = append(stock, s)
	}
	return stock, rows.Err()
}
