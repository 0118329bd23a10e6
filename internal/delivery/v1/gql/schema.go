package gql

import (
	"errors"
	"fmt"

	"github.com/DRSN-tech/catalog/internal/domain"
	"github.com/DRSN-tech/catalog/internal/usecase"
	"github.com/DRSN-tech/catalog/pkg/e"
	"github.com/DRSN-tech/catalog/pkg/logger"
	"github.com/graphql-go/graphql"
	"github.com/shopspring/decimal"
)

var productType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Product",
	Fields: graphql.Fields{
		"id":          &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"name":        &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"description": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"price":       &graphql.Field{Type: graphql.NewNonNull(Decimal)},
		"createdAt":   &graphql.Field{Type: graphql.NewNonNull(graphql.DateTime)},
	},
})

var productInputType = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "ProductInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"name":        &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"description": &graphql.InputObjectFieldConfig{Type: graphql.String},
		"price":       &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(Decimal)},
	},
})

// resolver связывает поля схемы с usecase и является единственным местом,
// где ошибки catalog-сервиса классифицируются и логируются.
type resolver struct {
	prUC   usecase.ProductUC
	logger logger.Logger
}

// NewSchema строит GraphQL-схему каталога.
func NewSchema(prUC usecase.ProductUC, logger logger.Logger) (graphql.Schema, error) {
	r := &resolver{prUC: prUC, logger: logger}

	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"products": &graphql.Field{
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(productType))),
				Args: graphql.FieldConfigArgument{
					"search": &graphql.ArgumentConfig{Type: graphql.String, Description: "Search by name"},
				},
				Resolve: r.products,
			},
			"product": &graphql.Field{
				Type: productType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int), Description: "Product ID"},
				},
				Resolve: r.product,
			},
		},
	})

	mutation := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"createProduct": &graphql.Field{
				Type: productType,
				Args: graphql.FieldConfigArgument{
					"product": &graphql.ArgumentConfig{Type: graphql.NewNonNull(productInputType)},
				},
				Resolve: r.createProduct,
			},
			"updateProduct": &graphql.Field{
				Type: productType,
				Args: graphql.FieldConfigArgument{
					"id":      &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
					"product": &graphql.ArgumentConfig{Type: graphql.NewNonNull(productInputType)},
				},
				Resolve: r.updateProduct,
			},
			"deleteProduct": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Boolean),
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				},
				Resolve: r.deleteProduct,
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    query,
		Mutation: mutation,
	})
}

func (r *resolver) products(p graphql.ResolveParams) (any, error) {
	const op = "gql.products"

	search, _ := p.Args["search"].(string)

	products, err := r.prUC.ListProducts(p.Context, search)
	if err != nil {
		r.logger.Errorf(err, "%s: search=%q", op, search)
		return nil, newInternalError()
	}

	result := make([]map[string]any, 0, len(products))
	for i := range products {
		result = append(result, toGraphQLProduct(&products[i]))
	}

	return result, nil
}

func (r *resolver) product(p graphql.ResolveParams) (any, error) {
	const op = "gql.product"

	id, ok := parseID(p.Args["id"])
	if !ok {
		return nil, newBadUserInputError(e.ErrInvalidProductID)
	}

	product, err := r.prUC.GetProduct(p.Context, id)
	if err != nil {
		r.logger.Errorf(err, "%s: id=%d", op, id)
		return nil, newInternalError()
	}

	if product == nil {
		return nil, nil
	}

	return toGraphQLProduct(product), nil
}

// createProduct возвращает null без ошибки, если входные данные отклонены валидацией.
func (r *resolver) createProduct(p graphql.ResolveParams) (any, error) {
	const op = "gql.createProduct"

	in, err := toProductInput(p.Args["product"])
	if err != nil {
		r.logger.Infof("%s: rejected input: %v", op, err)
		return nil, nil
	}

	product, err := r.prUC.CreateProduct(p.Context, in)
	if err != nil {
		if errors.Is(err, e.ErrInvalidInput) {
			r.logger.Infof("%s: rejected input: %v", op, err)
			return nil, nil
		}
		r.logger.Errorf(err, "%s: name=%q", op, in.Name)
		return nil, newInternalError()
	}

	return toGraphQLProduct(product), nil
}

func (r *resolver) updateProduct(p graphql.ResolveParams) (any, error) {
	const op = "gql.updateProduct"

	id, ok := parseID(p.Args["id"])
	if !ok {
		return nil, newBadUserInputError(e.ErrInvalidProductID)
	}

	in, err := toProductInput(p.Args["product"])
	if err != nil {
		return nil, newBadUserInputError(err)
	}

	product, err := r.prUC.UpdateProduct(p.Context, id, in)
	if err != nil {
		if errors.Is(err, e.ErrInvalidInput) {
			r.logger.Infof("%s: id=%d rejected input: %v", op, id, err)
			return nil, newBadUserInputError(errors.Unwrap(err))
		}
		r.logger.Errorf(err, "%s: id=%d", op, id)
		return nil, newInternalError()
	}

	if product == nil {
		return nil, nil
	}

	return toGraphQLProduct(product), nil
}

func (r *resolver) deleteProduct(p graphql.ResolveParams) (any, error) {
	const op = "gql.deleteProduct"

	id, ok := parseID(p.Args["id"])
	if !ok {
		return nil, newBadUserInputError(e.ErrInvalidProductID)
	}

	deleted, err := r.prUC.DeleteProduct(p.Context, id)
	if err != nil {
		r.logger.Errorf(err, "%s: id=%d", op, id)
		return nil, newInternalError()
	}

	return deleted, nil
}

func toGraphQLProduct(pr *domain.Product) map[string]any {
	return map[string]any{
		"id":          pr.ID,
		"name":        pr.Name,
		"description": pr.Description,
		"price":       pr.Price,
		"createdAt":   pr.CreatedAt,
	}
}

// toProductInput разбирает аргумент ProductInput. Обязательность полей уже проверена схемой.
func toProductInput(arg any) (domain.ProductInput, error) {
	fields, ok := arg.(map[string]any)
	if !ok {
		return domain.ProductInput{}, fmt.Errorf("%w: product", e.ErrInvalidInput)
	}

	name, _ := fields["name"].(string)

	price, ok := fields["price"].(decimal.Decimal)
	if !ok {
		return domain.ProductInput{}, fmt.Errorf("%w: price", e.ErrInvalidInput)
	}

	var description *string
	if d, ok := fields["description"].(string); ok {
		description = &d
	}

	return domain.NewProductInput(name, description, price), nil
}
