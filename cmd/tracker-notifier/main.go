// Command tracker-notifier logs an activity feed line for every stored
// contribution announced on the broker.
package main

import (
	"context"
	"errors"
	"os"

	"tracker/internal/amqp"
	"tracker/internal/cli"
	"tracker/internal/log"
	"tracker/internal/notifier"
)

func main() {
	cli.LoadEnvFile()
	cfg := cli.MustLoadConfig()
	logger := cli.SetupLogger(cfg.LogLevel, log.ComponentNotifier)

	if !cfg.EventsEnabled() {
		logger.Error("AMQP_URL is required for the notifier")
		os.Exit(1)
	}

	client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", log.FieldError, err)
		os.Exit(1)
	}
	defer client.Close()

	ctx, stop := cli.SignalContext(logger)
	defer stop()

	feed := notifier.NewFeed(logger)
	logger.Info("Starting tracker-notifier", "queue", cfg.AMQPQueue)
	if err := client.ConsumeContributionRecorded(ctx, feed.Handle); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Message consumption failed", log.FieldError, err, log.FieldOperation, log.OpConsume)
		os.Exit(1)
	}
	logger.Info("Notifier stopped", log.FieldOperation, log.OpShutdown)
}
