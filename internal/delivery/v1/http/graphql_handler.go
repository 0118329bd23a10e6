package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/DRSN-tech/catalog/pkg/e"
	"github.com/DRSN-tech/catalog/pkg/logger"
	"github.com/graphql-go/graphql"
)

const maxGraphQLRequestSize = 1 << 20

// GraphQLRequest — тело запроса к /graphql.
type GraphQLRequest struct {
	Query         string         `json:"query"`
	Variables     map[string]any `json:"variables"`
	OperationName string         `json:"operationName"`
}

type GraphQLHandler struct {
	schema graphql.Schema
	logger logger.Logger
}

func NewGraphQLHandler(schema graphql.Schema, logger logger.Logger) *GraphQLHandler {
	return &GraphQLHandler{schema: schema, logger: logger}
}

// serveGraphQL исполняет GraphQL-документ. Ошибки исполнения возвращаются в поле errors со статусом 200.
func (h *GraphQLHandler) serveGraphQL(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxGraphQLRequestSize)

	var req GraphQLRequest
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	if err := dec.Decode(&req); err != nil || req.Query == "" {
		h.logger.Warnf("%d %s", http.StatusBadRequest, e.ErrInvalidRequestBody.Error())
		WriteError(w, e.ErrInvalidRequestBody)
		return
	}

	variables := make(map[string]any, len(req.Variables))
	for k, v := range req.Variables {
		variables[k] = normalizeNumbers(v)
	}

	result := graphql.Do(graphql.Params{
		Schema:         h.schema,
		RequestString:  req.Query,
		VariableValues: variables,
		OperationName:  req.OperationName,
		Context:        r.Context(),
	})

	WriteSuccess(w, http.StatusOK, result)
}

// normalizeNumbers заменяет целые json.Number на int, чтобы их принимал скаляр Int.
// Дробные числа остаются json.Number и без потерь разбираются скаляром Decimal.
func normalizeNumbers(v any) any {
	switch val := v.(type) {
	case map[string]any:
		for k, item := range val {
			val[k] = normalizeNumbers(item)
		}
		return val
	case []any:
		for i, item := range val {
			val[i] = normalizeNumbers(item)
		}
		return val
	case json.Number:
		if i, err := strconv.ParseInt(val.String(), 10, 0); err == nil {
			return int(i)
		}
		return val
	default:
		return val
	}
}
