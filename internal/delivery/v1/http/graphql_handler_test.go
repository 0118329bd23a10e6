package http

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DRSN-tech/catalog/internal/delivery/v1/gql"
	"github.com/DRSN-tech/catalog/internal/delivery/v1/middleware"
	"github.com/DRSN-tech/catalog/internal/repository/memory"
	"github.com/DRSN-tech/catalog/internal/usecase"
	"github.com/DRSN-tech/catalog/pkg/logger"
	"github.com/go-chi/chi/v5"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	log := logger.NewSlogLoggerWithHandler(slog.NewTextHandler(io.Discard, nil))
	uc := usecase.NewProductUC(memory.NewProductRepo(false), usecase.ValidationPolicy{}, time.Now)
	schema, err := gql.NewSchema(uc, log)
	if err != nil {
		t.Fatalf("failed to build schema: %v", err)
	}

	r := chi.NewRouter()
	NewRouter(r, log).Init(schema, nil)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

type gqlResponse struct {
	Data   map[string]json.RawMessage `json:"data"`
	Errors []struct {
		Message    string         `json:"message"`
		Extensions map[string]any `json:"extensions"`
	} `json:"errors"`
}

func postGraphQL(t *testing.T, srv *httptest.Server, body string) (*http.Response, gqlResponse) {
	t.Helper()

	resp, err := http.Post(srv.URL+"/graphql", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	var out gqlResponse
	if resp.StatusCode == http.StatusOK {
		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
	}
	return resp, out
}

func TestGraphQL_VariablesKeepPricePrecision(t *testing.T) {
	srv := newTestServer(t)

	resp, out := postGraphQL(t, srv, `{
		"query": "mutation($p: ProductInput!) { createProduct(product: $p) { id price } }",
		"variables": {"p": {"name": "Apple", "price": 12345678901234.56}}
	}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if len(out.Errors) > 0 {
		t.Fatalf("unexpected errors: %+v", out.Errors)
	}
	if got := string(out.Data["createProduct"]); got != `{"id":1,"price":12345678901234.56}` {
		t.Errorf("unexpected createProduct: %s", got)
	}

	_, out = postGraphQL(t, srv, `{"query": "query($id: Int!) { product(id: $id) { name } }", "variables": {"id": 1}}`)
	if got := string(out.Data["product"]); got != `{"name":"Apple"}` {
		t.Errorf("unexpected product: %s", got)
	}
}

func TestGraphQL_ExecutionErrorsReturn200(t *testing.T) {
	srv := newTestServer(t)

	resp, out := postGraphQL(t, srv, `{"query": "{ unknownField }"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if len(out.Errors) == 0 {
		t.Errorf("expected errors for unknown field")
	}
}

func TestGraphQL_MalformedBody(t *testing.T) {
	srv := newTestServer(t)

	for _, body := range []string{`{not json`, `{"query": ""}`} {
		resp, _ := postGraphQL(t, srv, body)
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("%q: expected 400, got %d", body, resp.StatusCode)
		}
	}
}

func TestRequestIDEchoed(t *testing.T) {
	srv := newTestServer(t)

	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/healthz", nil)
	req.Header.Set(middleware.RequestIDHeader, "req-123")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}
	if got := resp.Header.Get(middleware.RequestIDHeader); got != "req-123" {
		t.Errorf("expected request id echoed, got %q", got)
	}
}

func TestNormalizeNumbers(t *testing.T) {
	in := map[string]any{
		"id":    json.Number("7"),
		"price": json.Number("1.50"),
		"tags":  []any{json.Number("1"), nil, "x"},
	}

	out := normalizeNumbers(in).(map[string]any)

	if out["id"] != 7 {
		t.Errorf("expected int 7, got %#v", out["id"])
	}
	if out["price"] != json.Number("1.50") {
		t.Errorf("expected json.Number 1.50, got %#v", out["price"])
	}
	tags := out["tags"].([]any)
	if tags[0] != 1 || tags[1] != nil || tags[2] != "x" {
		t.Errorf("unexpected tags: %#v", tags)
	}
}
