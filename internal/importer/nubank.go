package importer

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/sem-titulo/controle-financeiro/internal/model"
)

// ExtratoNubank parses Nubank checking-account statement exports. Amounts
// are already numeric ("." decimal point); bill payments and transfers
// carrying the holder's name are self-transfers and get dropped.
type ExtratoNubank struct {
	Rules Rules
}

func (ExtratoNubank) Format() string { return FormatoExtratoNubank }

func (p ExtratoNubank) Parse(data []byte, mes string, ano int) ([]model.Balanco, []Skip, error) {
	linhas, err := decodeTabela(data, detectarSeparador(data), 0)
	if err != nil {
		return nil, nil, err
	}

	titular := strings.ToLower(p.Rules.NomeTitular)

	var candidatos []model.Balanco
	var pulos []Skip
	for _, l := range linhas {
		descricao := strings.TrimSpace(l.campos["Descrição"])
		if descricao == "" {
			pulos = append(pulos, Skip{l.numero, "descrição vazia"})
			continue
		}
		minuscula := strings.ToLower(descricao)

		if strings.Contains(minuscula, "pagamento de fatura") {
			pulos = append(pulos, Skip{l.numero, "pagamento de fatura"})
			continue
		}
		if titular != "" && strings.Contains(minuscula, titular) {
			pulos = append(pulos, Skip{l.numero, "transferência do titular"})
			continue
		}

		valor, err := parseValorCru(l.campos["Valor"])
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
			Fonte: p.fonte(descricao),
			Valor: valor.Abs(),
			Tipo:  tipo,
			Mes:   mes,
			Ano:   ano,
			Tag:   TagNubankPF,
		})
	}
	return candidatos, pulos, nil
}

// fonte extracts the counterparty from a Nubank transfer description such
// as "Transferência enviada pelo Pix - MARIA EDUARDA - 000.000.000-00 - NU
// PAGAMENTOS". A segment holding a known personal name wins; otherwise the
// second segment is preferred, falling back to the first.
func (p ExtratoNubank) fonte(descricao string) string {
	partes := strings.Split(descricao, "-")
	for i := range partes {
		partes[i] = strings.TrimSpace(partes[i])
	}
	for _, parte := range partes {
		for _, nome := range p.Rules.NomesConhecidos {
			if nome != "" && strings.Contains(strings.ToLower(parte), strings.ToLower(nome)) {
				return parte
			}
		}
	}
	if len(partes) >= 2 {
		return partes[1]
	}
	return partes[0]
}

// FaturaNubank parses Nubank credit-card statements. Purchases are encoded
// with negative amounts; non-negative rows (refunds, credits) are excluded
// from this ingestion path entirely.
type FaturaNubank struct {
	Rules Rules
}

func (FaturaNubank) Format() string { return FormatoFaturaNubank }

func (p FaturaNubank) Parse(data []byte, mes string, ano int) ([]model.Balanco, []Skip, error) {
	linhas, err := decodeTabela(data, detectarSeparador(data), 0)
	if err != nil {
		return nil, nil, err
	}

	var candidatos []model.Balanco
	var pulos []Skip
	for _, l := range linhas {
		valor, err := parseValorCru(l.campos["amount"])
		if err != nil {
			pulos = append(pulos, Skip{l.numero, fmt.Sprintf("valor inválido %q", l.campos["amount"])})
			continue
		}
		if !valor.IsNegative() {
			pulos = append(pulos, Skip{l.numero, "estorno ou crédito"})
			continue
		}

		partes := strings.Split(l.campos["title"], "-")
		fonte := p.Rules.limparFonte(partes[0])
		if fonte == "" {
			pulos = append(pulos, Skip{l.numero, "título vazio"})
			continue
		}

		candidatos = append(candidatos, model.Balanco{
			ID:         uuid.NewString(),
			Fonte:      fonte,
			Valor:      valor.Abs(),
			Tipo:       model.TipoSaida,
			Mes:        mes,
			Ano:        ano,
			Observacao: strings.TrimSpace(strings.Join(partes[1:], "-")),
			Tag:        TagNubankCartao,
		})
	}
	return candidatos, pulos, nil
}
