package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sem-titulo/controle-financeiro/internal/model"
)

func TestNotionParse(t *testing.T) {
	dados := []byte("Source,Month,Amount,Tags,Obs\n" +
		"Salário,January 2025,\"R$ 5,000.00\",Inter PF,pagamento mensal\n" +
		"Freela,March 2025,800.00,,\n")

	p := Notion{Ano: 2025}
	candidatos, pulos, err := p.Parse(dados, model.TipoEntrada)
	require.NoError(t, err)
	require.Len(t, candidatos, 2)
	assert.Empty(t, pulos)

	c := candidatos[0]
	assert.Equal(t, "Salário", c.Fonte)
	assert.Equal(t, "Janeiro", c.Mes)
	assert.Equal(t, 2025, c.Ano)
	assert.Equal(t, "5000", c.Valor.String())
	assert.Equal(t, model.TipoEntrada, c.Tipo)
	assert.Equal(t, "Inter PF", c.Tag)
	assert.Equal(t, "pagamento mensal", c.Observacao)

	assert.Equal(t, "Março", candidatos[1].Mes)
}

func TestNotionParseFiltraRuido(t *testing.T) {
	dados := []byte("Source,Month,Amount,Tags,Obs\n" +
		",January 2025,10.00,,\n" +
		"Mercado,Janeiro 2025,10.00,,\n" +
		"Padaria,February 2025,dez,,\n" +
		"Farmácia,February 2025,-30.00,,\n")

	p := Notion{Ano: 2025}
	candidatos, pulos, err := p.Parse(dados, model.TipoSaida)
	require.NoError(t, err)

	// Amounts come in abs; the file decides the tipo.
	require.Len(t, candidatos, 1)
	assert.Equal(t, "Farmácia", candidatos[0].Fonte)
	assert.Equal(t, "30", candidatos[0].Valor.String())
	assert.Equal(t, model.TipoSaida, candidatos[0].Tipo)

	require.Len(t, pulos, 3)
	assert.Equal(t, "Source vazio", pulos[0].Motivo)
	assert.Contains(t, pulos[1].Motivo, "mês desconhecido")
	assert.Contains(t, pulos[2].Motivo, "valor inválido")
}
