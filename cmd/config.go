package cmd

import (
	"fmt"
	"time"
)

// Config carries all process configuration, loaded from the environment by
// the entry point. Empty collaborator URLs and an empty Kafka host disable
// the corresponding integration.
type Config struct {
	HTTPPort string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	KafkaHost              string
	KafkaOrderChangedTopic string

	EmailServiceURL     string
	ReceiptServiceURL   string
	InventoryServiceURL string

	PendingOrderTTL time.Duration
	SweepInterval   time.Duration
	SweepBatchSize  int
}

// DSN builds the postgres connection string.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}
