package pricing

import (
	"strings"

	"github.com/shopspring/decimal"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func validatePriceRequest(req *PriceRequest) error {
	if strings.TrimSpace(req.PackageID) == "" {
		return status.Error(codes.InvalidArgument, "package_id is required")
	}
	if req.Years < 0 || req.Months < 0 {
		return status.Error(codes.InvalidArgument, "years and months cannot be negative")
	}
	return validateAddOns(req.AddOns)
}

func validateValidatePromoRequest(req *ValidatePromoRequest) error {
	if strings.TrimSpace(req.Code) != "" && strings.TrimSpace(req.PackageID) == "" {
		return status.Error(codes.InvalidArgument, "package_id is required")
	}
	if req.Years < 0 || req.Months < 0 {
		return status.Error(codes.InvalidArgument, "years and months cannot be negative")
	}
	return validateAddOns(req.AddOns)
}

func validateAddOns(addOns map[string]decimal.Decimal) error {
	for id, qty := range addOns {
		if qty.IsNegative() {
			return status.Errorf(codes.InvalidArgument, "quantity of add-on %q cannot be negative", id)
		}
	}
	return nil
}

func validateQuoteID(quoteID string) error {
	if strings.TrimSpace(quoteID) == "" {
		return status.Error(codes.InvalidArgument, "quote_id is required")
	}
	return nil
}
