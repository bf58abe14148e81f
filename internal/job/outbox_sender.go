package job

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/sem-titulo/controle-financeiro/internal/config"
	"github.com/sem-titulo/controle-financeiro/internal/infrastructure/mq"
	"github.com/sem-titulo/controle-financeiro/internal/model"
	"github.com/sem-titulo/controle-financeiro/internal/repository"
)

// OutboxSender drains pending outbox rows to Kafka. Mutations only write
// the row; delivery happens here, so a broker outage never fails a request.
type OutboxSender struct {
	outboxRepo *repository.OutboxRepository
	producer   *mq.Producer
	maxRetry   int
	interval   time.Duration
	batchSize  int
	stopCh     chan struct{}
}

func NewOutboxSender(db *gorm.DB, producer *mq.Producer, cfg *config.Config) *OutboxSender {
	return &OutboxSender{
		outboxRepo: repository.NewOutboxRepository(db),
		producer:   producer,
		maxRetry:   cfg.Business.MaxRetryCount,
		interval:   time.Second,
		batchSize:  100,
		stopCh:     make(chan struct{}),
	}
}

func (s *OutboxSender) Start(ctx context.Context) {
	logrus.Info("outbox sender iniciado")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logrus.Info("outbox sender encerrado pelo contexto")
			return
		case <-s.stopCh:
			logrus.Info("outbox sender encerrado")
			return
		case <-ticker.C:
			s.processarPendentes(ctx)
		}
	}
}

func (s *OutboxSender) Stop() {
	close(s.stopCh)
}

func (s *OutboxSender) processarPendentes(ctx context.Context) {
	msgs, err := s.outboxRepo.GetPending(ctx, s.batchSize)
	if err != nil {
		logrus.WithError(err).Error("falha ao buscar mensagens pendentes")
		return
	}

	for _, msg := range msgs {
		s.enviar(ctx, msg)
	}
}

func (s *OutboxSender) enviar(ctx context.Context, msg *model.OutboxMessage) {
	err := s.producer.SendMessage(msg.Topic, msg.MessageKey, msg.Payload)
	if err == nil {
		if updateErr := s.outboxRepo.UpdateStatus(ctx, msg.ID, model.OutboxStatusSent); updateErr != nil {
			logrus.WithError(updateErr).WithField("id", msg.ID).Error("falha ao marcar mensagem como enviada")
		}
		return
	}

	logrus.WithError(err).WithFields(logrus.Fields{
		"id":    msg.ID,
		"topic": msg.Topic,
	}).Warn("falha ao enviar mensagem do outbox")

	if msg.RetryCount+1 >= s.maxRetry {
		if err := s.outboxRepo.MarkAsFailed(ctx, msg.ID); err != nil {
			logrus.WithError(err).WithField("id", msg.ID).Error("falha ao marcar mensagem como perdida")
		}
		return
	}
	if err := s.outboxRepo.IncrementRetryCount(ctx, msg.ID); err != nil {
		logrus.WithError(err).WithField("id", msg.ID).Error("falha ao incrementar tentativas")
	}
}
