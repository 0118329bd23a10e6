package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/DRSN-tech/catalog/internal/delivery/v1/middleware"
	"github.com/DRSN-tech/catalog/internal/gateway"
	"github.com/DRSN-tech/catalog/pkg/e"
	"github.com/jimlawless/whereami"
)

const (
	productFields = "id name description price createdAt"

	getProductsQuery   = `query GetProducts($search: String) { products(search: $search) { ` + productFields + ` } }`
	getProductQuery    = `query GetProduct($id: Int!) { product(id: $id) { ` + productFields + ` } }`
	createProductQuery = `mutation CreateProduct($product: ProductInput!) { createProduct(product: $product) { ` + productFields + ` } }`
	updateProductQuery = `mutation UpdateProduct($id: Int!, $product: ProductInput!) { updateProduct(id: $id, product: $product) { ` + productFields + ` } }`
	deleteProductQuery = `mutation DeleteProduct($id: Int!) { deleteProduct(id: $id) }`

	codeBadUserInput = "BAD_USER_INPUT"
	maxResponseSize  = 10 << 20
)

type graphQLRequest struct {
	Query         string         `json:"query"`
	Variables     map[string]any `json:"variables,omitempty"`
	OperationName string         `json:"operationName,omitempty"`
}

type graphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []graphQLError  `json:"errors"`
}

type graphQLError struct {
	Message    string         `json:"message"`
	Extensions map[string]any `json:"extensions"`
}

// Client обращается к GraphQL-эндпоинту catalog-сервиса.
// Ошибки транспорта, статусы кроме 200, непустой errors и data == null считаются сбоями;
// null в поле результата означает отсутствие товара.
type Client struct {
	httpClient *http.Client
	endpoint   string
}

func NewClient(httpClient *http.Client, endpoint string) *Client {
	return &Client{
		httpClient: httpClient,
		endpoint:   endpoint,
	}
}

func (c *Client) ListProducts(ctx context.Context, search string) ([]gateway.Product, error) {
	const op = "catalog.Client.ListProducts"

	var vars map[string]any
	if search != "" {
		vars = map[string]any{"search": search}
	}

	var data struct {
		Products []gateway.Product `json:"products"`
	}
	if err := c.do(ctx, "GetProducts", getProductsQuery, vars, &data); err != nil {
		return nil, e.Wrap(op, err)
	}

	return data.Products, nil
}

func (c *Client) GetProduct(ctx context.Context, id int64) (*gateway.Product, error) {
	const op = "catalog.Client.GetProduct"

	var data struct {
		Product *gateway.Product `json:"product"`
	}
	if err := c.do(ctx, "GetProduct", getProductQuery, map[string]any{"id": id}, &data); err != nil {
		return nil, e.Wrap(op, err)
	}

	return data.Product, nil
}

func (c *Client) CreateProduct(ctx context.Context, in gateway.ProductInput) (*gateway.Product, error) {
	const op = "catalog.Client.CreateProduct"

	var data struct {
		Product *gateway.Product `json:"createProduct"`
	}
	if err := c.do(ctx, "CreateProduct", createProductQuery, map[string]any{"product": in}, &data); err != nil {
		return nil, e.Wrap(op, err)
	}

	return data.Product, nil
}

func (c *Client) UpdateProduct(ctx context.Context, id int64, in gateway.ProductInput) (*gateway.Product, error) {
	const op = "catalog.Client.UpdateProduct"

	var data struct {
		Product *gateway.Product `json:"updateProduct"`
	}
	vars := map[string]any{"id": id, "product": in}
	if err := c.do(ctx, "UpdateProduct", updateProductQuery, vars, &data); err != nil {
		return nil, e.Wrap(op, err)
	}

	return data.Product, nil
}

func (c *Client) DeleteProduct(ctx context.Context, id int64) (bool, error) {
	const op = "catalog.Client.DeleteProduct"

	var data struct {
		Deleted bool `json:"deleteProduct"`
	}
	if err := c.do(ctx, "DeleteProduct", deleteProductQuery, map[string]any{"id": id}, &data); err != nil {
		return false, e.Wrap(op, err)
	}

	return data.Deleted, nil
}

// do отправляет GraphQL-документ и раскладывает data в out.
func (c *Client) do(ctx context.Context, operation, query string, vars map[string]any, out any) error {
	body, err := json.Marshal(graphQLRequest{Query: query, Variables: vars, OperationName: operation})
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if id, ok := middleware.RequestIDFromContext(ctx); ok {
		req.Header.Set(middleware.RequestIDHeader, id)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return e.Wrap(operation, fmt.Errorf("%w: %w", e.ErrUpstreamUnavailable, err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseSize))
		return e.Wrap(operation, fmt.Errorf("%w: status %d", e.ErrUpstreamResponse, resp.StatusCode))
	}

	var gqlResp graphQLResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseSize)).Decode(&gqlResp); err != nil {
		return e.Wrap(operation, fmt.Errorf("%w: %w", e.ErrUpstreamResponse, err))
	}

	if len(gqlResp.Errors) > 0 {
		return e.Wrap(operation, classifyErrors(gqlResp.Errors))
	}

	if len(gqlResp.Data) == 0 || bytes.Equal(gqlResp.Data, []byte("null")) {
		return e.Wrap(operation, e.ErrEmptyUpstreamData)
	}

	if err := json.Unmarshal(gqlResp.Data, out); err != nil {
		return e.Wrap(operation, fmt.Errorf("%w: %w", e.ErrUpstreamResponse, err))
	}

	return nil
}

// classifyErrors отличает отказ валидации (BAD_USER_INPUT) от прочих сбоев catalog-сервиса.
func classifyErrors(errs []graphQLError) error {
	messages := make([]string, 0, len(errs))
	badInput := false
	for _, gqlErr := range errs {
		messages = append(messages, gqlErr.Message)
		if code, _ := gqlErr.Extensions["code"].(string); code == codeBadUserInput {
			badInput = true
		}
	}

	joined := strings.Join(messages, ", ")
	if badInput {
		return fmt.Errorf("%w: %s", e.ErrInvalidInput, joined)
	}

	return fmt.Errorf("%w: %s", e.ErrUpstreamResponse, joined)
}
