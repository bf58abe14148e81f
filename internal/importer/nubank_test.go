package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sem-titulo/controle-financeiro/internal/model"
)

func TestExtratoNubankParse(t *testing.T) {
	dados := []byte("Data,Valor,Identificador,Descrição\n" +
		"02/01/2025,-50.00,abc-1,Transferência enviada pelo Pix - MARIA EDUARDA - 000.000.000-00 - NU PAGAMENTOS\n" +
		"03/01/2025,1200.00,abc-2,Transferência recebida pelo Pix - EMPRESA X LTDA - 11.111.111/0001-11 - BANCO Y\n")

	p := ExtratoNubank{Rules: DefaultRules()}
	candidatos, pulos, err := p.Parse(dados, "Janeiro", 2025)
	require.NoError(t, err)
	require.Len(t, candidatos, 2)
	assert.Empty(t, pulos)

	pix := candidatos[0]
	assert.Equal(t, "MARIA EDUARDA", pix.Fonte)
	assert.Equal(t, model.TipoSaida, pix.Tipo)
	assert.Equal(t, "50", pix.Valor.String())
	assert.Equal(t, TagNubankPF, pix.Tag)

	recebido := candidatos[1]
	assert.Equal(t, "EMPRESA X LTDA", recebido.Fonte)
	assert.Equal(t, model.TipoEntrada, recebido.Tipo)
}

func TestExtratoNubankFiltraRuido(t *testing.T) {
	dados := []byte("Data,Valor,Identificador,Descrição\n" +
		"02/01/2025,-300.00,a,Pagamento de fatura - Cartão Nubank\n" +
		"03/01/2025,-100.00,b,Transferência enviada pelo Pix - João Carlos da Silva - 000.000.000-00 - NU PAGAMENTOS\n" +
		"04/01/2025,-25.00,c,Compra no débito - Padaria Estrela\n")

	p := ExtratoNubank{Rules: DefaultRules()}
	candidatos, pulos, err := p.Parse(dados, "Janeiro", 2025)
	require.NoError(t, err)

	require.Len(t, candidatos, 1)
	assert.Equal(t, "Padaria Estrela", candidatos[0].Fonte)

	require.Len(t, pulos, 2)
	assert.Equal(t, "pagamento de fatura", pulos[0].Motivo)
	assert.Equal(t, "transferência do titular", pulos[1].Motivo)
}

func TestExtratoNubankDescricaoVazia(t *testing.T) {
	dados := []byte("Data,Valor,Identificador,Descrição\n" +
		"02/01/2025,-15.00,a,\n" +
		"03/01/2025,-25.00,b,Compra no débito - Padaria Estrela\n")

	p := ExtratoNubank{Rules: DefaultRules()}
	candidatos, pulos, err := p.Parse(dados, "Janeiro", 2025)
	require.NoError(t, err)

	require.Len(t, candidatos, 1)
	assert.Equal(t, "Padaria Estrela", candidatos[0].Fonte)

	require.Len(t, pulos, 1)
	assert.Equal(t, "descrição vazia", pulos[0].Motivo)
}

func TestExtratoNubankFonteSemSegmentos(t *testing.T) {
	p := ExtratoNubank{Rules: DefaultRules()}
	assert.Equal(t, "Compra no débito", p.fonte("Compra no débito"))
}

func TestFaturaNubankParse(t *testing.T) {
	dados := []byte("date,title,amount\n" +
		"2025-01-05,Loja*ABC-compra mensal,-20.00\n" +
		"2025-01-06,Ifd Restaurante Sabor,-45.90\n")

	p := FaturaNubank{Rules: DefaultRules()}
	candidatos, pulos, err := p.Parse(dados, "Janeiro", 2025)
	require.NoError(t, err)
	require.Len(t, candidatos, 2)
	assert.Empty(t, pulos)

	c := candidatos[0]
	assert.Equal(t, "ABC", c.Fonte)
	assert.Equal(t, "compra mensal", c.Observacao)
	assert.Equal(t, model.TipoSaida, c.Tipo)
	assert.Equal(t, "20", c.Valor.String())
	assert.Equal(t, TagNubankCartao, c.Tag)

	assert.Equal(t, "Restaurante Sabor", candidatos[1].Fonte)
}

func TestFaturaNubankExcluiEstornos(t *testing.T) {
	dados := []byte("date,title,amount\n" +
		"2025-01-05,Estorno Loja X,5.00\n" +
		"2025-01-06,Mercado Y,-30.00\n" +
		"2025-01-07,Loja*,-10.00\n" +
		"2025-01-08,Farmácia Z,abc\n")

	p := FaturaNubank{Rules: DefaultRules()}
	candidatos, pulos, err := p.Parse(dados, "Janeiro", 2025)
	require.NoError(t, err)

	require.Len(t, candidatos, 1)
	assert.Equal(t, "Mercado Y", candidatos[0].Fonte)

	require.Len(t, pulos, 3)
	assert.Equal(t, "estorno ou crédito", pulos[0].Motivo)
	assert.Equal(t, "título vazio", pulos[1].Motivo)
	assert.Contains(t, pulos[2].Motivo, "valor inválido")
}
