package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	grpcpricing "github.com/light-bringer/checkout-pricing-service/internal/transport/grpc/pricing"
)

var quoteFlags struct {
	addr      string
	packageID string
	months    int32
	years     int32
	addOns    map[string]string
	promoCode string
	lock      bool
	timeout   time.Duration
}

var quoteCmd = &cobra.Command{
	Use:   "quote",
	Short: "Price an order against a running server over gRPC",
	Long:  "Price an order against a running server over gRPC. With --lock the price is locked as a quote.",
	RunE:  runQuote,
}

func init() {
	rootCmd.AddCommand(quoteCmd)

	f := quoteCmd.Flags()
	f.StringVar(&quoteFlags.addr, "addr", "localhost:9090", "gRPC server address")
	f.StringVar(&quoteFlags.packageID, "package", "", "Package id")
	f.Int32Var(&quoteFlags.months, "months", 0, "Subscription length in months")
	f.Int32Var(&quoteFlags.years, "years", 0, "Subscription length in years, used when --months is not set")
	f.StringToStringVar(&quoteFlags.addOns, "add-on", nil, "Add-on selections as id=quantity, repeatable; quantities may be fractional")
	f.StringVar(&quoteFlags.promoCode, "promo", "", "Promo code")
	f.BoolVar(&quoteFlags.lock, "lock", false, "Lock the price as a quote")
	f.DurationVar(&quoteFlags.timeout, "timeout", 10*time.Second, "Request timeout")
	_ = quoteCmd.MarkFlagRequired("package")
}

func runQuote(cmd *cobra.Command, _ []string) error {
	addOns, err := parseAddOns(quoteFlags.addOns)
	if err != nil {
		return err
	}

	conn, err := grpc.NewClient(quoteFlags.addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", quoteFlags.addr, err)
	}
	defer conn.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), quoteFlags.timeout)
	defer cancel()

	client := grpcpricing.NewPricingServiceClient(conn)
	req := &grpcpricing.PriceRequest{
		PackageID: quoteFlags.packageID,
		Months:    quoteFlags.months,
		Years:     quoteFlags.years,
		AddOns:    addOns,
		PromoCode: quoteFlags.promoCode,
	}

	var reply interface{}
	if quoteFlags.lock {
		reply, err = client.LockQuote(ctx, req)
	} else {
		reply, err = client.PreviewPrice(ctx, req)
	}
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(reply)
}

func parseAddOns(raw map[string]string) (map[string]decimal.Decimal, error) {
	out := make(map[string]decimal.Decimal, len(raw))
	for id, v := range raw {
		qty, err := decimal.NewFromString(v)
		if err != nil {
			return nil, fmt.Errorf("invalid quantity %q for add-on %s: %w", v, id, err)
		}
		out[id] = qty
	}
	return out, nil
}
