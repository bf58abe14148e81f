package importer

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sem-titulo/controle-financeiro/internal/model"
)

// mesesIngles translates the English month names of Notion exports into the
// localized enum.
var mesesIngles = map[string]string{
	"January":   "Janeiro",
	"February":  "Fevereiro",
	"March":     "Março",
	"April":     "Abril",
	"May":       "Maio",
	"June":      "Junho",
	"July":      "Julho",
	"August":    "Agosto",
	"September": "Setembro",
	"October":   "Outubro",
	"November":  "Novembro",
	"December":  "Dezembro",
}

// Notion export amounts use English convention: "," thousands, "." decimal.
var limpadorNotion = strings.NewReplacer("R$", "", ",", "", " ", "", "\u00a0", "")

// Notion parses the generic Source/Month/Amount/Tags/Obs export schema.
// The rows carry no usable year, so every candidate gets the configured
// target year; the tipo (Entrada or Saída) comes from which file the rows
// arrived in, not from the data.
type Notion struct {
	// Ano is the year stamped on every imported row.
	Ano int
}

// Parse decodes one Notion export file into candidates of the given tipo.
func (p Notion) Parse(data []byte, tipo string) ([]model.Balanco, []Skip, error) {
	linhas, err := decodeTabela(data, ',', 0)
	if err != nil {
		return nil, nil, err
	}

	var candidatos []model.Balanco
	var pulos []Skip
	for _, l := range linhas {
		fonte := strings.TrimSpace(l.campos["Source"])
		if fonte == "" {
			pulos = append(pulos, Skip{l.numero, "Source vazio"})
			continue
		}

		// Month values look like "January 2025"; only the name is used.
		nomeMes := ""
		if partes := strings.Fields(l.campos["Month"]); len(partes) > 0 {
			nomeMes = partes[0]
		}
		mes, ok := mesesIngles[nomeMes]
		if !ok {
			pulos = append(pulos, Skip{l.numero, fmt.Sprintf("mês desconhecido %q", l.campos["Month"])})
			continue
		}

		valor, err := decimal.NewFromString(limpadorNotion.Replace(l.campos["Amount"]))
		if err != nil {
			pulos = append(pulos, Skip{l.numero, fmt.Sprintf("valor inválido %q", l.campos["Amount"])})
			continue
		}

		candidatos = append(candidatos, model.Balanco{
			ID:         uuid.NewString(),
			Fonte:      fonte,
			Valor:      valor.Abs(),
			Tipo:       tipo,
			Mes:        mes,
			Ano:        p.Ano,
			Tag:        strings.TrimSpace(l.campos["Tags"]),
			Observacao: strings.TrimSpace(l.campos["Obs"]),
		})
	}
	return candidatos, pulos, nil
}
