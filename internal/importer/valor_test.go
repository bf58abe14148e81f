package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseValorBR(t *testing.T) {
	casos := []struct {
		entrada  string
		esperado string
	}{
		{"R$ 1.234,56", "1234.56"},
		{"1.234,56", "1234.56"},
		{"45,00", "45"},
		{"-45,00", "-45"},
		{"-R$ 2.500,10", "-2500.1"},
		{" R$ 300,00", "300"},
		{"0,99", "0.99"},
	}
	for _, caso := range casos {
		valor, err := ParseValorBR(caso.entrada)
		require.NoError(t, err, caso.entrada)
		assert.Equal(t, caso.esperado, valor.String(), caso.entrada)
	}
}

func TestParseValorBRInvalido(t *testing.T) {
	for _, entrada := range []string{"", "   ", "abc", "R$"} {
		_, err := ParseValorBR(entrada)
		assert.Error(t, err, "entrada %q", entrada)
	}
}

func TestParseValorCru(t *testing.T) {
	valor, err := parseValorCru("-20.00")
	require.NoError(t, err)
	assert.Equal(t, "-20", valor.String())

	_, err = parseValorCru("")
	assert.Error(t, err)
}

func TestCapitalizar(t *testing.T) {
	assert.Equal(t, "Alimentação", capitalizar("ALIMENTAÇÃO"))
	assert.Equal(t, "Transporte", capitalizar("transporte"))
	assert.Equal(t, "Água", capitalizar("água"))
	assert.Equal(t, "", capitalizar("  "))
}
