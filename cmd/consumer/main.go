// Notification consumer: drains the forwarding notification topic and
// renders each event. A real deployment replaces the rendering with an
// email or push provider; the consumption loop stays the same.
package main

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/fastybox/forwarding/internal/logger"
	"github.com/fastybox/forwarding/internal/notify"
	"github.com/fastybox/forwarding/internal/repository"
)

const groupID = "forwarding-notification-consumer"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	log := logger.New()
	defer log.Sync()

	brokers := os.Getenv("KAFKA_BROKERS")
	if brokers == "" {
		brokers = "localhost:9092"
	}
	topic := os.Getenv("KAFKA_TOPIC")
	if topic == "" {
		topic = notify.DefaultTopic
	}

	r := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        strings.Split(brokers, ","),
		GroupID:        groupID,
		Topic:          topic,
		MinBytes:       10e3,
		MaxBytes:       10e6,
		CommitInterval: time.Second,
		MaxWait:        3 * time.Second,
	})
	defer func() {
		if err := r.Close(); err != nil {
			log.Error("failed to close kafka reader", zap.Error(err))
		}
	}()

	log.Info("notification consumer started",
		zap.String("topic", topic), zap.String("brokers", brokers))

	for {
		m, err := r.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("shutdown signal received, stopping consumer")
				return
			}
			log.Error("failed to read message", zap.Error(err))
			time.Sleep(5 * time.Second)
			continue
		}

		var payload repository.NotificationPayload
		if err := json.Unmarshal(m.Value, &payload); err != nil {
			log.Error("malformed notification payload",
				zap.Int64("offset", m.Offset), zap.Error(err))
			continue
		}

		log.Info("notification",
			zap.String("event", payload.Event),
			zap.Int64("request_id", payload.RequestID),
			zap.String("tracking_code", payload.TrackingCode),
			zap.String("user_id", payload.UserID),
			zap.String("status", string(payload.Status)),
			zap.String("notes", payload.Notes),
			zap.Time("occurred_at", payload.OccurredAt))
	}
}
