package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"cloud.google.com/go/spanner"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/light-bringer/checkout-pricing-service/internal/config"
	"github.com/light-bringer/checkout-pricing-service/internal/logging"
	"github.com/light-bringer/checkout-pricing-service/internal/metrics"
	"github.com/light-bringer/checkout-pricing-service/internal/outbox"
	"github.com/light-bringer/checkout-pricing-service/internal/pkg/clock"
	"github.com/light-bringer/checkout-pricing-service/internal/pkg/committer"
)

var (
	once        bool
	metricsAddr string
)

var rootCmd = &cobra.Command{
	Use:   "outbox_relay",
	Short: "Publish pending outbox events to Kafka",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if err := logging.Configure(cfg.Log.Level, cfg.Log.Format); err != nil {
			return err
		}
		return runRelay(cmd.Context(), cfg)
	},
}

func init() {
	rootCmd.Flags().BoolVar(&once, "once", false, "Publish a single batch and exit")
	rootCmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address, e.g. :9102")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		logrus.WithError(err).Fatal("Outbox relay failed")
	}
}

func runRelay(ctx context.Context, cfg *config.Config) error {
	client, err := spanner.NewClient(ctx, cfg.Spanner.Database)
	if err != nil {
		return fmt.Errorf("failed to create Spanner client: %w", err)
	}
	defer client.Close()

	writer := outbox.NewKafkaWriter(cfg.Kafka.Brokers, cfg.Kafka.Topic)
	defer func() {
		if err := writer.Close(); err != nil {
			logrus.WithError(err).Warn("Failed to close Kafka writer")
		}
	}()

	m := metrics.New(prometheus.NewRegistry())
	if metricsAddr != "" {
		srv := serveMetrics(m)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	relay := outbox.NewRelay(
		outbox.NewSpannerStore(client),
		writer,
		committer.NewCommitter(client),
		clock.NewRealClock(),
		outbox.RelayConfig{BatchSize: cfg.Outbox.BatchSize, MaxRetries: cfg.Outbox.MaxRetries},
		m,
	)

	logger := logrus.WithFields(logrus.Fields{
		"brokers": cfg.Kafka.Brokers,
		"topic":   cfg.Kafka.Topic,
	})

	if once {
		res, err := relay.RunOnce(ctx)
		if err != nil {
			return err
		}
		logger.WithFields(logrus.Fields{
			"published": res.Published,
			"retried":   res.Retried,
			"failed":    res.Failed,
		}).Info("Outbox relay pass completed")
		return nil
	}

	logger.WithField("interval", cfg.Outbox.PollInterval.String()).Info("Starting outbox relay")
	if err := relay.Run(ctx, cfg.Outbox.PollInterval); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	logger.Info("Outbox relay stopped")
	return nil
}

func serveMetrics(m *metrics.Metrics) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{Addr: metricsAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		logrus.WithField("addr", metricsAddr).Info("Serving relay metrics")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) && !errors.Is(err, net.ErrClosed) {
			logrus.WithError(err).Error("Metrics server error")
		}
	}()
	return srv
}
