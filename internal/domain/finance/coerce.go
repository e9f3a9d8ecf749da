package finance

import (
	"encoding/json"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// CoercePrice convierte un precio de origen dudoso (número, texto, nil) en un decimal finito.
// Cualquier valor que no se pueda interpretar vale 0: un registro malo no debe tumbar el tablero.
func CoercePrice(v any) decimal.Decimal {
	switch p := v.(type) {
	case nil:
		return decimal.Zero
	case decimal.Decimal:
		return p
	case *decimal.Decimal:
		if p == nil {
			return decimal.Zero
		}
		return *p
	case decimal.NullDecimal:
		if !p.Valid {
			return decimal.Zero
		}
		return p.Decimal
	case float64:
		return fromFloat(p)
	case float32:
		return fromFloat(float64(p))
	case int:
		return decimal.NewFromInt(int64(p))
	case int64:
		return decimal.NewFromInt(p)
	case json.Number:
		return fromString(string(p))
	case string:
		return fromString(p)
	default:
		return decimal.Zero
	}
}

// CoerceQuantity interpreta una cantidad de unidades; inválida vale 0.
// Las fracciones se truncan.
func CoerceQuantity(v any) int {
	d := CoercePrice(v)
	return int(d.IntPart())
}

func fromFloat(f float64) decimal.Decimal {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(f)
}

func fromString(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
