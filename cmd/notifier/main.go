package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/example/crystal-shop/internal/email"
	"github.com/example/crystal-shop/internal/infrastructure/kafka"
	"github.com/example/crystal-shop/internal/notification"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	kafkaBrokersStr := getEnv("KAFKA_BROKERS", "localhost:9092")
	kafkaBrokers := strings.Split(kafkaBrokersStr, ",")
	kafkaTopic := getEnv("KAFKA_TOPIC", "crystal-orders")
	kafkaGroupID := getEnv("KAFKA_GROUP_ID", "crystal-notifier")

	log.Println("[Notifier] ========================================")
	log.Println("[Notifier] Crystal Shop notification worker")
	log.Println("[Notifier] ========================================")
	log.Printf("[Notifier] Kafka: %v topic=%s group=%s", kafkaBrokers, kafkaTopic, kafkaGroupID)

	emailSvc := email.NewService(
		getEnv("SMTP_HOST", "localhost"),
		getEnv("SMTP_PORT", "1025"),
		getEnv("SMTP_FROM", "orders@crystal-shop.example"),
	)

	handler := notification.NewHandler(emailSvc)

	consumer := kafka.NewConsumer(kafkaBrokers, kafkaTopic, kafkaGroupID)
	defer consumer.Close()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Println("[Notifier] Shutting down...")
		cancel()
	}()

	log.Println("[Notifier] Consuming order events...")
	if err := consumer.Consume(ctx, handler.HandleEvent); err != nil && err != context.Canceled {
		log.Fatalf("[Notifier] Consumer error: %v", err)
	}
	log.Println("[Notifier] Stopped")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
