// Package money formatea montos para presentación según la configuración regional.
package money

import (
	"strings"
	"sync"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Formatter convierte montos decimales en texto legible (ej. "$ 1.234,50").
// Es seguro para uso concurrente.
type Formatter struct {
	unit currency.Unit
	mu   sync.Mutex
	p    *message.Printer
}

// NewFormatter construye un formateador para la moneda ISO indicada y la región es-AR.
// Un código desconocido cae a ARS.
func NewFormatter(code string) *Formatter {
	unit, err := currency.ParseISO(strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		unit = currency.ARS
	}
	return &Formatter{unit: unit, p: message.NewPrinter(language.MustParse("es-AR"))}
}

// Format redondea a 2 decimales y aplica símbolo y separadores regionales.
func (f *Formatter) Format(amount decimal.Decimal) string {
	v := amount.Round(2).InexactFloat64()
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.p.Sprint(currency.Symbol(f.unit.Amount(v)))
}

// Round2 es el único punto donde se redondea dinero: justo antes de exponerlo.
func Round2(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(2)
}
