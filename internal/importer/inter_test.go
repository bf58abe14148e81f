package importer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sem-titulo/controle-financeiro/internal/model"
)

func extratoInterArquivo(linhas ...string) []byte {
	preambulo := []string{
		"Extrato Conta Corrente",
		"",
		"Conta;12345-6",
		"Período;01/01/2025 a 31/01/2025",
		"",
		"Data Lançamento;Descrição;Valor;Saldo;Categoria",
	}
	return []byte(strings.Join(append(preambulo, linhas...), "\n"))
}

func TestExtratoInterParse(t *testing.T) {
	dados := extratoInterArquivo(
		"02/01/2025;Supermercado Central;-R$ 150,00;R$ 850,00;Alimentação",
		"03/01/2025;Salário Empresa X;R$ 3.000,00;R$ 3.850,00;Salário",
	)

	p := ExtratoInter{Rules: DefaultRules()}
	candidatos, pulos, err := p.Parse(dados, "Janeiro", 2025)
	require.NoError(t, err)
	require.Len(t, candidatos, 2)
	assert.Empty(t, pulos)

	saida := candidatos[0]
	assert.Equal(t, "Supermercado Central", saida.Fonte)
	assert.Equal(t, model.TipoSaida, saida.Tipo)
	assert.Equal(t, "150", saida.Valor.String())
	assert.Equal(t, "Janeiro", saida.Mes)
	assert.Equal(t, 2025, saida.Ano)
	assert.Equal(t, TagInterPF, saida.Tag)
	assert.NotEmpty(t, saida.ID)

	entrada := candidatos[1]
	assert.Equal(t, model.TipoEntrada, entrada.Tipo)
	assert.Equal(t, "3000", entrada.Valor.String())
}

func TestExtratoInterFiltraRuido(t *testing.T) {
	dados := extratoInterArquivo(
		"02/01/2025;Pagamento de fatura;-R$ 500,00;R$ 500,00;Cartão",
		"03/01/2025;Pix Enviado;-R$ 80,00;R$ 420,00;Transferência interna",
		"04/01/2025;;-R$ 10,00;R$ 410,00;Outros",
		"05/01/2025;Padaria;abc;R$ 400,00;Alimentação",
		"06/01/2025;Farmácia;-R$ 30,00;R$ 370,00;Saúde",
	)

	p := ExtratoInter{Rules: DefaultRules()}
	candidatos, pulos, err := p.Parse(dados, "Janeiro", 2025)
	require.NoError(t, err)

	require.Len(t, candidatos, 1)
	assert.Equal(t, "Farmácia", candidatos[0].Fonte)

	require.Len(t, pulos, 4)
	assert.Equal(t, "autotransferência: Pagamento de fatura", pulos[0].Motivo)
	assert.Equal(t, "categoria interna: Transferência interna", pulos[1].Motivo)
	assert.Equal(t, "descrição vazia", pulos[2].Motivo)
	assert.Contains(t, pulos[3].Motivo, "valor inválido")
}

func TestFaturaInterParse(t *testing.T) {
	dados := []byte("Data;Lançamento;Categoria;Tipo;Valor\n" +
		"05/01/2025;Restaurante Bom Prato;ALIMENTAÇÃO;Compra à vista;R$ 89,90\n" +
		"06/01/2025;Posto Shell;TRANSPORTE;Compra à vista;R$ 200,00\n")

	p := FaturaInter{Rules: DefaultRules()}
	candidatos, pulos, err := p.Parse(dados, "Janeiro", 2025)
	require.NoError(t, err)
	require.Len(t, candidatos, 2)
	assert.Empty(t, pulos)

	c := candidatos[0]
	assert.Equal(t, "Restaurante Bom Prato", c.Fonte)
	assert.Equal(t, model.TipoSaida, c.Tipo)
	assert.Equal(t, "89.9", c.Valor.String())
	assert.Equal(t, "Alimentação", c.Categoria)
	assert.Equal(t, "Compra à vista", c.Observacao)
	assert.Equal(t, TagInterCartao, c.Tag)
}

func TestFaturaInterLancamentoVazio(t *testing.T) {
	dados := []byte("Data;Lançamento;Categoria;Tipo;Valor\n05/01/2025;;OUTROS;Compra;R$ 10,00\n")

	p := FaturaInter{Rules: DefaultRules()}
	candidatos, pulos, err := p.Parse(dados, "Janeiro", 2025)
	require.NoError(t, err)
	assert.Empty(t, candidatos)
	require.Len(t, pulos, 1)
	assert.Equal(t, "lançamento vazio", pulos[0].Motivo)
}
