// Package importer decodes raw bank/export files (Inter and Nubank CSV
// exports, Notion-style spreadsheets) into normalized balanço candidates.
//
// Each supported format tag has its own Parser; rows that are noise
// (self-transfers, refunds, unparseable amounts) are dropped individually
// with a retained reason and never abort the batch.
package importer

import (
	"strings"

	"github.com/sem-titulo/controle-financeiro/internal/model"
)

// Parser turns a raw file into balanço candidates for the given competence
// month and year. Candidates carry a fresh ID but no owner or creation
// timestamp; those are attached at persistence time.
//
// A decode failure returns a *DecodeError. An empty candidate list with a
// nil error is a valid outcome: the file decoded but every row was filtered.
type Parser interface {
	Format() string
	Parse(data []byte, mes string, ano int) ([]model.Balanco, []Skip, error)
}

// Supported upload format tags.
const (
	FormatoExtratoInter  = "extrato_inter"
	FormatoFaturaInter   = "fatura_inter"
	FormatoExtratoNubank = "extrato_nubank"
	FormatoFaturaNubank  = "fatura_nubank"
)

// Fixed account tags assigned per format.
const (
	TagInterPF      = "Inter PF"
	TagInterCartao  = "Inter Cartão"
	TagNubankPF     = "Nubank PF"
	TagNubankCartao = "Nubank Cartão"
)

// Skip records one filtered-out row and why it was dropped.
// Reasons are surfaced on a debug channel, never as request errors.
type Skip struct {
	Linha  int
	Motivo string
}

// Rules holds the normalization knobs that identify noise rows and clean
// counterparty names. Values come from configuration; DefaultRules supplies
// the compiled-in set.
type Rules struct {
	// RotulosAutotransferencia are descriptions on extrato_inter rows that
	// mark money moving between the holder's own accounts (the credit-card
	// payment label and the holder's name as the bank prints it).
	RotulosAutotransferencia []string
	// CategoriasInternas are extrato_inter category values that mark
	// internal transfers.
	CategoriasInternas []string
	// NomeTitular is the account holder's full name; Nubank statements list
	// self-transfers under it.
	NomeTitular string
	// NomesConhecidos are personal names preferred as fonte when splitting
	// Nubank transfer descriptions.
	NomesConhecidos []string
	// PrefixosLoja are substrings stripped from fatura_nubank titles before
	// the merchant name is used as fonte.
	PrefixosLoja []string
}

func DefaultRules() Rules {
	return Rules{
		RotulosAutotransferencia: []string{
			"Pagamento de fatura",
			"Pagamento fatura cartão Inter",
			"JOAO CARLOS DA SILVA",
			"Joao Carlos Da Silva",
		},
		CategoriasInternas: []string{
			"Transferência interna",
			"Transferência entre contas",
		},
		NomeTitular: "João Carlos da Silva",
		NomesConhecidos: []string{
			"João Carlos",
			"Maria Eduarda",
			"Ana Paula",
		},
		PrefixosLoja: []string{"Loja", "Ifd", "Mp ", "Pag ", `"`, "*"},
	}
}

func (r Rules) autotransferencia(descricao string) bool {
	for _, rotulo := range r.RotulosAutotransferencia {
		if descricao == rotulo {
			return true
		}
	}
	return false
}

func (r Rules) categoriaInterna(categoria string) bool {
	for _, c := range r.CategoriasInternas {
		if strings.TrimSpace(categoria) == c {
			return true
		}
	}
	return false
}

// limparFonte strips the configured merchant prefixes and trims the result.
func (r Rules) limparFonte(s string) string {
	for _, p := range r.PrefixosLoja {
		s = strings.ReplaceAll(s, p, "")
	}
	return strings.TrimSpace(s)
}

// Registry maps format tags to their parsers.
type Registry struct {
	parsers map[string]Parser
}

func NewRegistry() *Registry {
	return &Registry{parsers: make(map[string]Parser)}
}

// Register adds a parser. Panics on a duplicate format tag; the set of
// formats is fixed at startup.
func (r *Registry) Register(p Parser) {
	tag := strings.ToLower(p.Format())
	if _, ok := r.parsers[tag]; ok {
		panic("importer: formato duplicado: " + tag)
	}
	r.parsers[tag] = p
}

// Get returns the parser for a format tag, or nil.
func (r *Registry) Get(formato string) Parser {
	return r.parsers[strings.ToLower(formato)]
}

// DefaultRegistry returns a registry with the four bank-statement parsers.
func DefaultRegistry(rules Rules) *Registry {
	r := NewRegistry()
	r.Register(ExtratoInter{Rules: rules})
	r.Register(FaturaInter{Rules: rules})
	r.Register(ExtratoNubank{Rules: rules})
	r.Register(FaturaNubank{Rules: rules})
	return r
}
