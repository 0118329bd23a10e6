package pgdb

import (
	"context"
	"errors"

	"github.com/DRSN-tech/catalog/internal/domain"
	"github.com/DRSN-tech/catalog/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/catalog/pkg/e"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jimlawless/whereami"
)

// DB — подмножество методов pgxpool.Pool, которым пользуется репозиторий.
type DB interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

const (
	findAllQuery = `
		SELECT id, name, description, price, created_at
		FROM products
		WHERE $1::text = '' OR strpos(name, $1::text) > 0
		ORDER BY id
	`

	findAllCaseInsensitiveQuery = `
		SELECT id, name, description, price, created_at
		FROM products
		WHERE $1::text = '' OR strpos(lower(name), lower($1::text)) > 0
		ORDER BY id
	`
)

// ProductRepo реализует репозиторий товаров поверх PostgreSQL.
// Каждый метод выполняет ровно один запрос в режиме autocommit.
type ProductRepo struct {
	db              DB
	conv            converter.ProductConverter
	caseInsensitive bool
}

func NewProductRepo(db DB, conv converter.ProductConverter, caseInsensitive bool) *ProductRepo {
	return &ProductRepo{
		db:              db,
		conv:            conv,
		caseInsensitive: caseInsensitive,
	}
}

// FindAll возвращает товары, в названии которых содержится filter.
// Пустой filter возвращает все товары.
func (p *ProductRepo) FindAll(ctx context.Context, filter string) ([]domain.Product, error) {
	query := findAllQuery
	if p.caseInsensitive {
		query = findAllCaseInsensitiveQuery
	}

	rows, err := p.db.Query(ctx, query, filter)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	models := make([]converter.ProductModel, 0)
	for rows.Next() {
		var model converter.ProductModel
		if err := rows.Scan(&model.ID, &model.Name, &model.Description, &model.Price, &model.CreatedAt); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		models = append(models, model)
	}

	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToArrEntity(models), nil
}

// FindByID возвращает товар по ID или nil, если записи нет.
func (p *ProductRepo) FindByID(ctx context.Context, id int64) (*domain.Product, error) {
	query := `
		SELECT id, name, description, price, created_at
		FROM products
		WHERE id = $1
	`

	return p.queryOne(ctx, query, id)
}

// Insert сохраняет новый товар; ID назначает база.
func (p *ProductRepo) Insert(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	query := `
		INSERT INTO products (name, description, price, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, name, description, price, created_at
	`

	model := p.conv.ToModel(product)
	created, err := p.queryOne(ctx, query, model.Name, model.Description, model.Price, model.CreatedAt)
	if err != nil {
		return nil, err
	}

	if created == nil {
		return nil, e.Wrap(whereami.WhereAmI(), pgx.ErrNoRows)
	}

	return created, nil
}

// Update перезаписывает name, description и price. created_at не трогается.
// Возвращает nil, если записи нет.
func (p *ProductRepo) Update(ctx context.Context, id int64, in domain.ProductInput) (*domain.Product, error) {
	query := `
		UPDATE products
		SET name = $2, description = $3, price = $4
		WHERE id = $1
		RETURNING id, name, description, price, created_at
	`

	return p.queryOne(ctx, query, id, in.Name, in.DescriptionOrEmpty(), in.Price)
}

// Delete удаляет товар и сообщает, была ли удалена запись.
func (p *ProductRepo) Delete(ctx context.Context, id int64) (bool, error) {
	query := `DELETE FROM products WHERE id = $1`

	tag, err := p.db.Exec(ctx, query, id)
	if err != nil {
		return false, e.Wrap(whereami.WhereAmI(), err)
	}

	return tag.RowsAffected() > 0, nil
}

// queryOne выполняет запрос, возвращающий не более одной строки products.
// pgx.ErrNoRows превращается в nil без ошибки.
func (p *ProductRepo) queryOne(ctx context.Context, query string, args ...any) (*domain.Product, error) {
	var model converter.ProductModel
	err := p.db.QueryRow(ctx, query, args...).
		Scan(&model.ID, &model.Name, &model.Description, &model.Price, &model.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToEntity(&model), nil
}
