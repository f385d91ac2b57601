package detect_provider

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/checkout-pricing-service/internal/app/gateway/domain"
)

type stubSettings struct {
	cfg *domain.Config
	err error
}

func (s stubSettings) LoadConfig(context.Context) (*domain.Config, error) {
	return s.cfg, s.err
}

func TestDetectProvider_Execute(t *testing.T) {
	t.Run("detects the ready provider", func(t *testing.T) {
		cfg := domain.NewConfig(
			map[string]string{"paypal_client_id_sandbox": "pp-id"},
			[]domain.Secret{{Provider: domain.ProviderPayPal, Name: "client_secret_sandbox", Ciphertext: "s", IV: "plain"}},
		)
		d, err := NewQuery(stubSettings{cfg: cfg}).Execute(context.Background())
		require.NoError(t, err)
		require.NotNil(t, d.Provider)
		assert.Equal(t, domain.ProviderPayPal, *d.Provider)
		assert.Equal(t, "pp-id", d.PayPal.ClientKey)
	})

	t.Run("storage errors are wrapped", func(t *testing.T) {
		cause := errors.New("unavailable")
		_, err := NewQuery(stubSettings{err: cause}).Execute(context.Background())
		assert.ErrorIs(t, err, cause)
	})
}
