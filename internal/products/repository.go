package products

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier es lo que el repositorio usa del pool. Lo cumple *pgxpool.Pool.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// Repository accede a la tabla products.
// Contiene SQL y mapeo DB → modelo.
type Repository struct {
	database Querier
}

// NewRepository crea un repositorio de productos.
func NewRepository(database Querier) *Repository {
	return &Repository{database: database}
}

// Los opcionales se guardan como NULL y vuelven como "".
const productColumns = `id, name, category,
	COALESCE(shape, ''), COALESCE(size, ''), COALESCE(dimensions, ''), COALESCE(material, ''),
	price::float8, COALESCE(description, ''), COALESCE(image_url, ''),
	created_at, updated_at`

// Insert crea un producto y devuelve el registro persistido.
// Usamos RETURNING para obtener id y timestamps generados por DB.
func (repository *Repository) Insert(ctx context.Context, fields Fields) (Product, error) {
	const query = `
		INSERT INTO products (name, category, shape, size, dimensions, material, price, description, image_url)
		VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), NULLIF($5, ''), NULLIF($6, ''), $7, NULLIF($8, ''), NULLIF($9, ''))
		RETURNING ` + productColumns

	product, err := scanProduct(repository.database.QueryRow(ctx, query, fieldArgs(fields)...))
	if err != nil {
		return Product{}, mapError(err)
	}
	return product, nil
}

// List devuelve los productos, los más nuevos primero.
func (repository *Repository) List(ctx context.Context, category Category) ([]Product, error) {
	query := `SELECT ` + productColumns + ` FROM products`
	var args []any
	if category != "" {
		query += ` WHERE category = $1`
		args = append(args, string(category))
	}
	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := repository.database.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := []Product{}
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return products, nil
}

// GetByID devuelve ErrorNotFound si no existe.
func (repository *Repository) GetByID(ctx context.Context, id int64) (Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	product, err := scanProduct(repository.database.QueryRow(ctx, query, id))
	if err != nil {
		return Product{}, mapError(err)
	}
	return product, nil
}

// Update reemplaza los campos editables y refresca updated_at.
func (repository *Repository) Update(ctx context.Context, id int64, fields Fields) (Product, error) {
	const query = `
		UPDATE products
		SET name = $1, category = $2, shape = NULLIF($3, ''), size = NULLIF($4, ''),
			dimensions = NULLIF($5, ''), material = NULLIF($6, ''), price = $7,
			description = NULLIF($8, ''), image_url = NULLIF($9, ''), updated_at = now()
		WHERE id = $10
		RETURNING ` + productColumns

	args := append(fieldArgs(fields), id)
	product, err := scanProduct(repository.database.QueryRow(ctx, query, args...))
	if err != nil {
		return Product{}, mapError(err)
	}
	return product, nil
}

// Delete borra por id. Si no existía devuelve ErrorNotFound.
func (repository *Repository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM products WHERE id = $1 RETURNING id`

	var deletedID int64
	if err := repository.database.QueryRow(ctx, query, id).Scan(&deletedID); err != nil {
		return mapError(err)
	}
	return nil
}

func fieldArgs(fields Fields) []any {
	return []any{
		fields.Name,
		string(fields.Category),
		fields.Shape,
		fields.Size,
		fields.Dimensions,
		fields.Material,
		fields.Price,
		fields.Description,
		fields.ImageURL,
	}
}

func scanProduct(row pgx.Row) (Product, error) {
	var (
		product   Product
		category  string
		createdAt time.Time
		updatedAt time.Time
	)
	err := row.Scan(
		&product.ID, &product.Name, &category,
		&product.Shape, &product.Size, &product.Dimensions, &product.Material,
		&product.Price, &product.Description, &product.ImageURL,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return Product{}, err
	}

	product.Category = Category(category)
	product.CreatedAt = &createdAt
	product.UpdatedAt = &updatedAt
	return product, nil
}

// mapError traduce errores de Postgres a errores de dominio.
func mapError(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrorNotFound
	}
	// Postgres: check_violation = 23514 (categoría o precio fuera de rango).
	var postgresError *pgconn.PgError
	if errors.As(err, &postgresError) && postgresError.Code == "23514" {
		return ErrorInvalidInput
	}
	return err
}
