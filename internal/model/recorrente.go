package model

import (
	"github.com/shopspring/decimal"
)

// Recorrente is a recurring-transaction template. It is never posted by a
// scheduler; materialization into balanço records happens on demand.
type Recorrente struct {
	ID        string          `gorm:"type:varchar(36);primaryKey" json:"id"`
	Descricao string          `gorm:"type:varchar(255);not null" json:"descricao"`
	Valor     decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"valor"`
	Tipo      string          `gorm:"type:varchar(16);not null" json:"tipo"`
	Categoria string          `gorm:"type:varchar(32)" json:"categoria,omitempty"`
	Tag       string          `gorm:"type:varchar(32)" json:"tag,omitempty"`
	Dia       int             `gorm:"not null" json:"dia"`
	Inicio    *string         `gorm:"type:varchar(10)" json:"inicio,omitempty"`
	Fim       *string         `gorm:"type:varchar(10)" json:"fim,omitempty"`
	UsuarioID string          `gorm:"type:varchar(36);index;not null" json:"usuario_id"`
}

func (Recorrente) TableName() string {
	return "transacoes_recorrentes"
}
