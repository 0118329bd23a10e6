package gateway

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestProduct_PriceIsNumber(t *testing.T) {
	p := Product{
		ID:        1,
		Name:      "Apple",
		Price:     decimal.RequireFromString("12345678901234.567"),
		CreatedAt: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
	}

	data, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	want := `{"id":1,"name":"Apple","description":"","price":12345678901234.567,"createdAt":"2024-05-01T10:00:00Z"}`
	if string(data) != want {
		t.Errorf("unexpected json:\n got %s\nwant %s", data, want)
	}

	var back Product
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if !back.Price.Equal(p.Price) {
		t.Errorf("expected price %s, got %s", p.Price, back.Price)
	}
}

func TestProductInput_PriceIsNumber(t *testing.T) {
	data, err := json.Marshal(ProductInput{Name: "Pear", Price: decimal.RequireFromString("-1.50")})
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(data) != `{"name":"Pear","price":-1.5}` {
		t.Errorf("unexpected json: %s", data)
	}

	var in ProductInput
	if err := json.Unmarshal([]byte(`{"name":"Pear","price":"2.50"}`), &in); err != nil {
		t.Fatalf("string price should still be accepted: %v", err)
	}
	if !in.Price.Equal(decimal.RequireFromString("2.5")) {
		t.Errorf("expected price 2.5, got %s", in.Price)
	}
}
