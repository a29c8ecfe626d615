package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/fastybox/forwarding/internal/cache"
	"github.com/fastybox/forwarding/internal/db"
	"github.com/fastybox/forwarding/internal/forwarding"
	"github.com/fastybox/forwarding/internal/gateway"
	"github.com/fastybox/forwarding/internal/kafka"
	"github.com/fastybox/forwarding/internal/logger"
	"github.com/fastybox/forwarding/internal/notify"
	"github.com/fastybox/forwarding/internal/payment"
	"github.com/fastybox/forwarding/internal/repository/postgresql"
	"github.com/fastybox/forwarding/internal/server"
	"github.com/fastybox/forwarding/internal/storage"
)

const rateCacheMaxAge = 5 * time.Minute

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	log := logger.New()
	defer log.Sync()

	db.LoadEnv()

	database, err := db.NewDB(ctx)
	if err != nil {
		log.Fatal("database init failed", zap.Error(err))
	}
	defer database.GetPool().Close()

	requestRepo := postgresql.NewRequestRepo(database)
	itemRepo := postgresql.NewItemRepo(database)
	historyRepo := postgresql.NewHistoryRepo(database)
	paymentRepo := postgresql.NewPaymentRepo(database)
	addressRepo := postgresql.NewAddressRepo(database)
	attachmentRepo := postgresql.NewAttachmentRepo(database)
	rateRepo := postgresql.NewRateRepo(database)
	userRepo := postgresql.NewUserRepo(database)
	outboxRepo := postgresql.NewOutboxTaskRepo()

	if err := userRepo.EnsureAdmin(ctx, os.Getenv("ADMIN_USERNAME"), os.Getenv("ADMIN_PASSWORD")); err != nil {
		log.Fatal("admin bootstrap failed", zap.Error(err))
	}

	rateCache := cache.NewRateCache(rateRepo, rateCacheMaxAge, log)
	if err := rateCache.Refresh(ctx); err != nil {
		log.Warn("initial rate load failed, calculator defaults apply", zap.Error(err))
	}

	files, err := storage.NewLocalFileStore(envOr("ATTACHMENT_DIR", "./attachments"))
	if err != nil {
		log.Fatal("file store init failed", zap.Error(err))
	}

	outbox := notify.NewOutbox(outboxRepo, os.Getenv("KAFKA_TOPIC"))

	fwdService := forwarding.NewService(forwarding.Deps{
		DB:          database,
		Requests:    requestRepo,
		Items:       itemRepo,
		History:     historyRepo,
		Addresses:   addressRepo,
		Attachments: attachmentRepo,
		Payments:    paymentRepo,
		Rates:       rateCache,
		Notifier:    outbox,
		Files:       files,
		Logger:      log,
	})

	payService := payment.NewService(payment.Deps{
		DB:        database,
		Payments:  paymentRepo,
		Requests:  requestRepo,
		Lifecycle: fwdService,
		Gateway:   gateway.NewStubGateway(log),
		Notifier:  outbox,
		Logger:    log,
	})

	var producer kafka.Producer
	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		producer = kafka.NewWriterProducer(strings.Split(brokers, ","))
	} else {
		log.Info("KAFKA_BROKERS not set, notifications go to the log")
		producer = kafka.NewConsoleProducer(log)
	}
	publisher := kafka.NewPublisher(database, outboxRepo, producer, kafka.PublisherConfig{}, log)

	srv := server.New(fwdService, payService, userRepo, log)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Run(envOr("HTTP_PORT", "9000"))
	})
	g.Go(func() error {
		publisher.Run(gCtx)
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		publisher.Shutdown()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatal("server exited with error", zap.Error(err))
	}
	log.Info("server gracefully stopped")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
