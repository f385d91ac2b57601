package main

import (
	"context"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/light-bringer/checkout-pricing-service/internal/config"
	"github.com/light-bringer/checkout-pricing-service/internal/logging"
	"github.com/light-bringer/checkout-pricing-service/internal/services"
	grpcpricing "github.com/light-bringer/checkout-pricing-service/internal/transport/grpc/pricing"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP and gRPC servers",
	Long:  "Start both HTTP (Echo) and gRPC servers for the checkout pricing service.",
	Run:   runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}
	if err := logging.Configure(cfg.Log.Level, cfg.Log.Format); err != nil {
		logrus.WithError(err).Fatal("Failed to configure logging")
	}

	logrus.WithFields(logrus.Fields{
		"spanner_database": cfg.Spanner.Database,
		"display_currency": cfg.Pricing.DisplayCurrency,
		"exchange_rate":    cfg.Pricing.ExchangeRate.String(),
	}).Info("Starting checkout pricing service")

	opts, err := services.NewServiceOptions(cmd.Context(), cfg)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to initialize service")
	}
	defer opts.Close()

	grpcSrv, lis := setupGRPCServer(cfg, opts)
	e := opts.HTTPServer

	go func() {
		httpAddr := net.JoinHostPort(cfg.HTTP.Host, cfg.HTTP.Port)
		logrus.WithField("addr", httpAddr).Info("Starting HTTP server")
		if err := e.Start(httpAddr); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Fatal("HTTP server error")
		}
	}()

	go func() {
		logrus.WithField("addr", lis.Addr().String()).Info("Starting gRPC server")
		if err := grpcSrv.Serve(lis); err != nil {
			logrus.WithError(err).Fatal("gRPC server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Warn("HTTP shutdown error")
	}
	grpcSrv.GracefulStop()

	logrus.Info("Server stopped")
}

func setupGRPCServer(cfg *config.Config, opts *services.ServiceOptions) (*grpc.Server, net.Listener) {
	grpcAddr := net.JoinHostPort(cfg.GRPC.Host, cfg.GRPC.Port)
	lis, err := net.Listen("tcp", grpcAddr)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to listen on gRPC port")
	}

	grpcSrv := grpc.NewServer(
		grpc.ChainUnaryInterceptor(grpcpricing.ServerInterceptors(opts.Metrics)...),
	)
	grpcpricing.RegisterPricingServiceServer(grpcSrv, opts.PricingHandler)

	healthSrv := health.NewServer()
	healthSrv.SetServingStatus(grpcpricing.ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(grpcSrv, healthSrv)

	// Reflection can describe only the health service. Pricing messages use the JSON codec.
	reflection.Register(grpcSrv)

	return grpcSrv, lis
}
