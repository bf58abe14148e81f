package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRegistry(t *testing.T) {
	r := DefaultRegistry(DefaultRules())

	for _, formato := range []string{
		FormatoExtratoInter,
		FormatoFaturaInter,
		FormatoExtratoNubank,
		FormatoFaturaNubank,
	} {
		p := r.Get(formato)
		require.NotNil(t, p, formato)
		assert.Equal(t, formato, p.Format())
	}

	assert.NotNil(t, r.Get("EXTRATO_INTER"))
	assert.Nil(t, r.Get("planilha_excel"))
}

func TestRegistryFormatoDuplicado(t *testing.T) {
	r := NewRegistry()
	r.Register(ExtratoInter{})
	assert.Panics(t, func() {
		r.Register(ExtratoInter{})
	})
}

func TestRulesLimparFonte(t *testing.T) {
	rules := DefaultRules()
	assert.Equal(t, "ABC", rules.limparFonte("Loja*ABC"))
	assert.Equal(t, "Mercado Central", rules.limparFonte(`"Mercado Central"`))
	assert.Equal(t, "", rules.limparFonte("Loja*"))
}
