package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/sem-titulo/controle-financeiro/internal/config"
	"github.com/sem-titulo/controle-financeiro/internal/handler"
	"github.com/sem-titulo/controle-financeiro/internal/infrastructure/cache"
	"github.com/sem-titulo/controle-financeiro/internal/infrastructure/database"
	"github.com/sem-titulo/controle-financeiro/internal/infrastructure/mq"
	"github.com/sem-titulo/controle-financeiro/internal/job"
)

func main() {
	logrus.SetFormatter(&logrus.JSONFormatter{})

	cfg, err := config.Load("config/config.yaml")
	if err != nil {
		logrus.WithError(err).Fatal("falha ao carregar configuração")
	}

	db, err := database.InitMySQL(&cfg.MySQL)
	if err != nil {
		logrus.WithError(err).Fatal("falha ao conectar no MySQL")
	}

	rdb, err := cache.InitRedis(&cfg.Redis)
	if err != nil {
		logrus.WithError(err).Fatal("falha ao conectar no Redis")
	}

	producer, err := mq.NewProducer(&cfg.Kafka)
	if err != nil {
		logrus.WithError(err).Fatal("falha ao conectar no Kafka")
	}
	defer producer.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	outboxSender := job.NewOutboxSender(db, producer, cfg)
	go outboxSender.Start(ctx)

	router := handler.SetupRouter(db, rdb, cfg)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		logrus.WithField("porta", cfg.Server.Port).Info("servidor iniciado")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Fatal("falha ao iniciar servidor")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("encerrando servidor")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("encerramento do servidor com erro")
	}
	logrus.Info("servidor encerrado")
}
