package model

import (
	"time"
)

const (
	OutboxStatusPending = "PENDING"
	OutboxStatusSent    = "SENT"
	OutboxStatusFailed  = "FAILED"
)

// Event types carried on the balanço topic.
const (
	EventBalancoCriado    = "balanco.criado"
	EventBalancoEditado   = "balanco.editado"
	EventBalancoDeletado  = "balanco.deletado"
	EventBalancoImportado = "balanco.importado"
)

// OutboxMessage is written in the same transaction as the balanço mutation
// it describes and drained to Kafka by the outbox sender job.
type OutboxMessage struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	MessageKey string    `gorm:"type:varchar(64);not null" json:"message_key"`
	Topic      string    `gorm:"type:varchar(64);not null" json:"topic"`
	Payload    string    `gorm:"type:text;not null" json:"payload"`
	Status     string    `gorm:"type:varchar(20);index;not null;default:PENDING" json:"status"`
	RetryCount int       `gorm:"not null;default:0" json:"retry_count"`
	CreatedAt  time.Time `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (OutboxMessage) TableName() string {
	return "outbox_message"
}

// BalancoEvent is the payload published for every balanço mutation.
type BalancoEvent struct {
	Evento     string `json:"evento"`
	UsuarioID  string `json:"usuario_id"`
	BalancoID  string `json:"balanco_id,omitempty"`
	Ano        int    `json:"ano,omitempty"`
	Quantidade int    `json:"quantidade,omitempty"`
}
