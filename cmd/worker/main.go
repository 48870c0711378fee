package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/gradesphere/gradesphere/internal/bootstrap"
	"github.com/gradesphere/gradesphere/internal/pkg/email"
	"github.com/gradesphere/gradesphere/internal/pkg/logger"
	"github.com/gradesphere/gradesphere/internal/queue"
	"github.com/gradesphere/gradesphere/internal/queue/worker"
)

func main() {
	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	redisClient, err := bootstrap.SetupRedis(cfg, lgr)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to connect to redis")
		os.Exit(1)
	}
	defer redisClient.Close()

	mailer := email.NewEmailService(email.SMTPConfig{
		Host:       cfg.SMTP.Host,
		Port:       cfg.SMTP.Port,
		Username:   cfg.SMTP.Username,
		Password:   cfg.SMTP.Password,
		FromName:   cfg.SMTP.FromName,
		FromEmail:  cfg.SMTP.FromEmail,
		AdminEmail: cfg.SMTP.AdminEmail,
		UseTLS:     cfg.SMTP.UseTLS,
	}, log.Logger)

	w := worker.New(worker.Config{
		PopTimeout: 5 * time.Second,
	}, queue.New(redisClient.Raw()), mailer)

	lgr.Info().Msg("Notification worker started")

	if err := w.Run(ctx); err != nil {
		lgr.Error().Err(err).Msg("Worker stopped with error")
		os.Exit(1)
	}

	lgr.Info().Msg("Worker shutdown complete")
}
