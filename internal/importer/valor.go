package importer

import (
	"errors"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// limpadorBR strips currency prefix, padding (including non-breaking
// spaces) and thousands separators from Brazilian monetary strings.
var limpadorBR = strings.NewReplacer(
	"\u00a0", "",
	"R$", "",
	" ", "",
	".", "",
)

// ParseValorBR parses a monetary string in Brazilian convention: optional
// "R$" prefix, "." as thousands separator, "," as decimal separator.
// "R$ 1.234,56" parses to 1234.56; the sign is preserved.
func ParseValorBR(s string) (decimal.Decimal, error) {
	s = limpadorBR.Replace(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, ",", ".")
	if s == "" {
		return decimal.Zero, errors.New("valor vazio")
	}
	return decimal.NewFromString(s)
}

// parseValorCru parses an already-numeric amount field ("." decimal point),
// as found in Nubank exports.
func parseValorCru(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, errors.New("valor vazio")
	}
	return decimal.NewFromString(s)
}

// capitalizar upper-cases the first rune and lower-cases the rest,
// matching how source categories map onto the categoria enum
// ("ALIMENTAÇÃO" -> "Alimentação").
func capitalizar(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}
	primeiro, tam := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(primeiro)) + strings.ToLower(s[tam:])
}
