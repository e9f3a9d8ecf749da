package dto

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/panaderia-api/internal/domain/finance"
)

// FlexDecimal acepta un número JSON o un texto numérico ("2.50").
// Nunca falla al decodificar: si el valor no es interpretable queda Valid=false y Value=0.
type FlexDecimal struct {
	Value decimal.Decimal
	Valid bool
}

// UnmarshalJSON implementa json.Unmarshaler.
func (f *FlexDecimal) UnmarshalJSON(b []byte) error {
	raw, ok := decodeScalar(b)
	f.Value = finance.CoercePrice(raw)
	f.Valid = ok && isNumeric(raw)
	return nil
}

// MarshalJSON implementa json.Marshaler.
func (f FlexDecimal) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.Value)
}

// FlexInt acepta un entero JSON o un texto ("3"). Las fracciones se truncan.
type FlexInt struct {
	Value int
	Valid bool
}

// UnmarshalJSON implementa json.Unmarshaler.
func (f *FlexInt) UnmarshalJSON(b []byte) error {
	raw, ok := decodeScalar(b)
	f.Value = finance.CoerceQuantity(raw)
	f.Valid = ok && isNumeric(raw)
	return nil
}

// MarshalJSON implementa json.Marshaler.
func (f FlexInt) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.Value)
}

func decodeScalar(b []byte) (any, bool) {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil || v == nil {
		return nil, false
	}
	return v, true
}

func isNumeric(v any) bool {
	switch n := v.(type) {
	case json.Number:
		_, err := decimal.NewFromString(n.String())
		return err == nil
	case string:
		_, err := decimal.NewFromString(strings.TrimSpace(n))
		return err == nil
	}
	return false
}
