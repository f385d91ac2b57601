package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "checkout-pricing",
	Short: "Checkout pricing service",
	Long:  "Prices subscription orders, validates promo codes and locks quotes for payment.",
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		logrus.WithError(err).Fatal("Command failed")
	}
}
