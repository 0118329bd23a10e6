package gql

import (
	"encoding/json"
	"strconv"

	"github.com/graphql-go/graphql"
	"github.com/graphql-go/graphql/language/ast"
	"github.com/shopspring/decimal"
)

// Decimal передаёт цену без потери точности: в ответе это JSON-число,
// на входе принимается число или строка.
var Decimal = graphql.NewScalar(graphql.ScalarConfig{
	Name:        "Decimal",
	Description: "Arbitrary-precision decimal number without currency.",
	Serialize: func(value any) any {
		switch v := value.(type) {
		case decimal.Decimal:
			return json.Number(v.String())
		case *decimal.Decimal:
			if v == nil {
				return nil
			}
			return json.Number(v.String())
		default:
			return nil
		}
	},
	ParseValue: func(value any) any {
		d, ok := parseDecimal(value)
		if !ok {
			return nil
		}
		return d
	},
	ParseLiteral: func(valueAST ast.Value) any {
		switch v := valueAST.(type) {
		case *ast.IntValue:
			return parseDecimalLiteral(v.Value)
		case *ast.FloatValue:
			return parseDecimalLiteral(v.Value)
		case *ast.StringValue:
			return parseDecimalLiteral(v.Value)
		default:
			return nil
		}
	},
})

func parseDecimalLiteral(s string) any {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil
	}
	return d
}

func parseDecimal(value any) (decimal.Decimal, bool) {
	switch v := value.(type) {
	case decimal.Decimal:
		return v, true
	case json.Number:
		d, err := decimal.NewFromString(v.String())
		return d, err == nil
	case string:
		d, err := decimal.NewFromString(v)
		return d, err == nil
	case float64:
		return decimal.NewFromFloat(v), true
	case float32:
		return decimal.NewFromFloat32(v), true
	case int:
		return decimal.NewFromInt(int64(v)), true
	case int64:
		return decimal.NewFromInt(v), true
	case int32:
		return decimal.NewFromInt32(v), true
	default:
		return decimal.Decimal{}, false
	}
}

// parseID приводит аргумент id к int64.
func parseID(value any) (int64, bool) {
	switch v := value.(type) {
	case int:
		return int64(v), true
	case int64:
		return v, true
	case int32:
		return int64(v), true
	case string:
		id, err := strconv.ParseInt(v, 10, 64)
		return id, err == nil
	default:
		return 0, false
	}
}
