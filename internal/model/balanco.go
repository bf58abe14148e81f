package model

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	TipoEntrada = "Entrada"
	TipoSaida   = "Saída"
)

// Meses holds the twelve month names, in calendar order. Aggregation and
// uploads only accept these values; anything else is ignored.
var Meses = [12]string{
	"Janeiro",
	"Fevereiro",
	"Março",
	"Abril",
	"Maio",
	"Junho",
	"Julho",
	"Agosto",
	"Setembro",
	"Outubro",
	"Novembro",
	"Dezembro",
}

// Tags identify the account or card a transaction originated from.
var Tags = []string{
	"Inter PF",
	"Inter PJ",
	"Inter Cartão",
	"Nubank Cartão",
	"Nubank PF",
	"Caju",
}

// Categorias is the fixed spending-category list.
var Categorias = []string{
	"Alimentação",
	"Transporte",
	"Moradia",
	"Educação",
	"Saúde",
	"Lazer",
	"Investimentos",
	"Roupas",
	"Viagem",
	"Assinaturas",
	"Impostos",
	"Doações",
	"Pets",
	"Serviços",
	"Salário",
	"Freelance",
	"Venda",
	"Outros",
}

func MesValido(mes string) bool {
	for _, m := range Meses {
		if m == mes {
			return true
		}
	}
	return false
}

func TipoValido(tipo string) bool {
	return tipo == TipoEntrada || tipo == TipoSaida
}

func TagValida(tag string) bool {
	for _, t := range Tags {
		if t == tag {
			return true
		}
	}
	return false
}

func CategoriaValida(categoria string) bool {
	for _, c := range Categorias {
		if c == categoria {
			return true
		}
	}
	return false
}

// MesDe returns the month name for a calendar month (1-12).
func MesDe(m time.Month) string {
	return Meses[int(m)-1]
}

// Balanco is a single income/expense record in the ledger.
// Valor is always the absolute magnitude; direction lives in Tipo.
type Balanco struct {
	ID         string          `gorm:"type:varchar(36);primaryKey" json:"id"`
	Fonte      string          `gorm:"type:varchar(255);not null" json:"fonte"`
	Valor      decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"valor"`
	Tipo       string          `gorm:"type:varchar(16);index;not null" json:"tipo"`
	Mes        string          `gorm:"type:varchar(16);index;not null" json:"mes"`
	Ano        int             `gorm:"index;not null" json:"ano"`
	Observacao string          `gorm:"type:varchar(512)" json:"observacao,omitempty"`
	Tag        string          `gorm:"type:varchar(32);index" json:"tag,omitempty"`
	Categoria  string          `gorm:"type:varchar(32);index" json:"categoria,omitempty"`
	UsuarioID  string          `gorm:"type:varchar(36);index;not null" json:"usuario_id"`
	CriadoEm   time.Time       `gorm:"autoCreateTime" json:"criado_em"`
}

func (Balanco) TableName() string {
	return "balanco"
}

// ResumoMes is one month's slice of the yearly summary.
type ResumoMes struct {
	Entradas decimal.Decimal `json:"entradas"`
	Saidas   decimal.Decimal `json:"saidas"`
	Liquido  decimal.Decimal `json:"liquido"`
}

func init() {
	// The original API serializes amounts as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}
