package pricing

import (
	"errors"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/light-bringer/checkout-pricing-service/internal/app/pricing/domain"
)

const errorDomain = "pricing.checkout"

// mapDomainErrorToGRPC converts domain errors to gRPC statuses carrying an ErrorInfo
// with a stable reason.
func mapDomainErrorToGRPC(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, domain.ErrEmptyPackageID):
		return withReason(codes.InvalidArgument, "package id cannot be empty", "EMPTY_PACKAGE_ID")

	case errors.Is(err, domain.ErrQuoteNotFound):
		return withReason(codes.NotFound, "quote not found", "QUOTE_NOT_FOUND")

	case errors.Is(err, domain.ErrQuoteExpired):
		return withReason(codes.FailedPrecondition, "quote has expired", "QUOTE_EXPIRED")

	case errors.Is(err, domain.ErrQuoteAlreadyConsumed):
		return withReason(codes.FailedPrecondition, "quote was already consumed", "QUOTE_CONSUMED")

	case errors.Is(err, domain.ErrVersionConflict):
		return withReason(codes.Aborted, "quote was modified concurrently", "VERSION_CONFLICT")

	case errors.Is(err, domain.ErrConfigurationUnavailable):
		return withReason(codes.FailedPrecondition, err.Error(), "CONFIGURATION_UNAVAILABLE")

	case errors.Is(err, domain.ErrPromoNotApplicable):
		return withReason(codes.FailedPrecondition, err.Error(), "PROMO_NOT_APPLICABLE")

	default:
		return status.Error(codes.Internal, "internal server error")
	}
}

func withReason(code codes.Code, msg, reason string) error {
	st := status.New(code, msg)
	detailed, err := st.WithDetails(&errdetails.ErrorInfo{Reason: reason, Domain: errorDomain})
	if err != nil {
		return st.Err()
	}
	return detailed.Err()
}

// ReasonOf returns the ErrorInfo reason attached to err, or "".
func ReasonOf(err error) string {
	st, ok := status.FromError(err)
	if !ok {
		return ""
	}
	for _, d := range st.Details() {
		if info, ok := d.(*errdetails.ErrorInfo); ok {
			return info.GetReason()
		}
	}
	return ""
}
