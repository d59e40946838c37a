// Package db reads the product catalog from an SQL database.
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/3-lines-studio/storefront/internal/catalog"
	"github.com/3-lines-studio/storefront/internal/core"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	productsTable = "products"
)

var productColumns = []string{
	"id",
	"title",
	"COALESCE(body, '')",
	"price",
	"COALESCE(currency, '')",
	"COALESCE(src, '')",
	"COALESCE(alt, '')",
}

// Catalog implements catalog.Service over a products table:
//
//	id TEXT PRIMARY KEY, title TEXT, body TEXT, price NUMERIC,
//	currency TEXT, src TEXT, alt TEXT, position INTEGER
type Catalog struct {
	db      *sql.DB
	builder sq.StatementBuilderType
}

func Open(driver, dsn string) (*sql.DB, error) {
	switch driver {
	case DriverSQLite, DriverPostgres:
	default:
		return nil, fmt.Errorf("unsupported sql driver %q", driver)
	}
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}
	return db, nil
}

func NewCatalog(db *sql.DB, driver string) *Catalog {
	var placeholder sq.PlaceholderFormat = sq.Question
	if driver == DriverPostgres {
		placeholder = sq.Dollar
	}
	return &Catalog{
		db:      db,
		builder: sq.StatementBuilder.PlaceholderFormat(placeholder),
	}
}

func (c *Catalog) List(ctx context.Context) ([]core.Product, error) {
	const op = "db.Catalog.List"

	query, args, err := c.builder.
		Select(productColumns...).
		From(productsTable).
		OrderBy("position", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: build query: %w", op, err)
	}

	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var products []core.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := catalog.Validate(products); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return products, nil
}

func (c *Catalog) Get(ctx context.Context, id string) (core.Product, error) {
	const op = "db.Catalog.Get"

	query, args, err := c.builder.
		Select(productColumns...).
		From(productsTable).
		Where(sq.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return core.Product{}, fmt.Errorf("%s: build query: %w", op, err)
	}

	p, err := scanProduct(c.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return core.Product{}, core.ErrProductNotFound
	}
	if err != nil {
		return core.Product{}, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProduct(s scanner) (core.Product, error) {
	var p core.Product
	err := s.Scan(&p.ID, &p.Title, &p.Body, &p.Price, &p.Currency, &p.Src, &p.Alt)
	return p, err
}
