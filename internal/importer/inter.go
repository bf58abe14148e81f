package importer

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/sem-titulo/controle-financeiro/internal/model"
)

// Inter checking statements open with a fixed-size junk preamble before the
// real header row.
const extratoInterPreambulo = 5

// ExtratoInter parses Banco Inter checking-account statement exports
// (semicolon-separated, preamble skipped). The amount sign decides the tipo;
// rows describing transfers between the holder's own accounts are dropped.
type ExtratoInter struct {
	Rules Rules
}

func (ExtratoInter) Format() string { return FormatoExtratoInter }

func (p ExtratoInter) Parse(data []byte, mes string, ano int) ([]model.Balanco, []Skip, error) {
	linhas, err := decodeTabela(data, ';', extratoInterPreambulo)
	if err != nil {
		return nil, nil, err
	}

	var candidatos []model.Balanco
	var pulos []Skip
	for _, l := range linhas {
		descricao := strings.TrimSpace(l.campos["Descrição"])
		if descricao == "" {
			pulos = append(pulos, Skip{l.numero, "descrição vazia"})
			continue
		}
		if p.Rules.autotransferencia(descricao) {
			pulos = append(pulos, Skip{l.numero, "autotransferência: " + descricao})
			continue
		}
		if cat := l.campos["Categoria"]; p.Rules.categoriaInterna(cat) {
			pulos = append(pulos, Skip{l.numero, "categoria interna: " + cat})
			continue
		}

		valor, err := ParseValorBR(l.campos["Valor"])
		if err != nil {
			pulos = append(pulos, Skip{l.numero, fmt.Sprintf("valor inválido %q", l.campos["Valor"])})
			continue
		}

		tipo := model.TipoEntrada
		if valor.IsNegative() {
			tipo = model.TipoSaida
		}

		candidatos = append(candidatos, model.Balanco{
			ID:    uuid.NewString(),
			Fonte: descricao,
			Valor: valor.Abs(),
			Tipo:  tipo,
			Mes:   mes,
			Ano:   ano,
			Tag:   TagInterPF,
		})
	}
	return candidatos, pulos, nil
}

// FaturaInter parses Banco Inter credit-card statements (delimiter sniffed).
// Every row is a purchase, therefore a Saída; the source category column
// maps onto the categoria enum and the free-text type column is kept as
// observação.
type FaturaInter struct {
	Rules Rules
}

func (FaturaInter) Format() string { return FormatoFaturaInter }

func (p FaturaInter) Parse(data []byte, mes string, ano int) ([]model.Balanco, []Skip, error) {
	linhas, err := decodeTabela(data, detectarSeparador(data), 0)
	if err != nil {
		return nil, nil, err
	}

	var candidatos []model.Balanco
	var pulos []Skip
	for _, l := range linhas {
		fonte := strings.TrimSpace(l.campos["Lançamento"])
		if fonte == "" {
			pulos = append(pulos, Skip{l.numero, "lançamento vazio"})
			continue
		}

		valor, err := ParseValorBR(l.campos["Valor"])
		if err != nil {
			pulos = append(pulos, Skip{l.numero, fmt.Sprintf("valor inválido %q", l.campos["Valor"])})
			continue
		}

		candidatos = append(candidatos, model.Balanco{
			ID:         uuid.NewString(),
			Fonte:      fonte,
			Valor:      valor.Abs(),
			Tipo:       model.TipoSaida,
			Mes:        mes,
			Ano:        ano,
			Observacao: strings.TrimSpace(l.campos["Tipo"]),
			Tag:        TagInterCartao,
			Categoria:  capitalizar(l.campos["Categoria"]),
		})
	}
	return candidatos, pulos, nil
}
