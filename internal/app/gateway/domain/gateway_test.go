package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func plain(provider Provider, name string) Secret {
	return Secret{Provider: provider, Name: name, Ciphertext: "sk-123", IV: "plain"}
}

func TestSecret_IsPlain(t *testing.T) {
	assert.True(t, plain(ProviderXendit, "secret_key").IsPlain())
	assert.False(t, Secret{IV: "plain", Ciphertext: "  "}.IsPlain())
	assert.False(t, Secret{IV: "a1b2", Ciphertext: "enc"}.IsPlain())
}

func TestResolveMidtrans(t *testing.T) {
	tests := []struct {
		name      string
		settings  map[string]string
		secrets   []Secret
		wantEnv   Env
		wantReady bool
		wantKey   string
	}{
		{
			name:    "nothing configured falls back to sandbox",
			wantEnv: EnvSandbox,
		},
		{
			name: "production preferred when ready",
			settings: map[string]string{
				"midtrans_client_key_sandbox":    "sb-key",
				"midtrans_client_key_production": "prod-key",
			},
			secrets:   []Secret{plain(ProviderMidtrans, "server_key_sandbox"), plain(ProviderMidtrans, "server_key_production")},
			wantEnv:   EnvProduction,
			wantReady: true,
			wantKey:   "prod-key",
		},
		{
			name:      "production without server key stays on sandbox",
			settings:  map[string]string{"midtrans_client_key_sandbox": "sb-key", "midtrans_client_key_production": "prod-key"},
			secrets:   []Secret{plain(ProviderMidtrans, "server_key_sandbox")},
			wantEnv:   EnvSandbox,
			wantReady: true,
			wantKey:   "sb-key",
		},
		{
			name: "admin selection wins even when not ready",
			settings: map[string]string{
				"midtrans_active_env":            " sandbox ",
				"midtrans_client_key_sandbox":    "sb-key",
				"midtrans_client_key_production": "prod-key",
			},
			secrets: []Secret{plain(ProviderMidtrans, "server_key_production")},
			wantEnv: EnvSandbox,
			wantKey: "sb-key",
		},
		{
			name:      "invalid admin selection is ignored",
			settings:  map[string]string{"midtrans_active_env": "staging", "midtrans_client_key_production": "prod-key"},
			secrets:   []Secret{plain(ProviderMidtrans, "server_key_production")},
			wantEnv:   EnvProduction,
			wantReady: true,
			wantKey:   "prod-key",
		},
		{
			name:     "encrypted server key is not ready",
			settings: map[string]string{"midtrans_client_key_sandbox": "sb-key"},
			secrets:  []Secret{{Provider: ProviderMidtrans, Name: "server_key_sandbox", Ciphertext: "x", IV: "iv"}},
			wantEnv:  EnvSandbox,
			wantKey:  "sb-key",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveMidtrans(NewConfig(tt.settings, tt.secrets))
			assert.Equal(t, tt.wantEnv, got.Env)
			assert.Equal(t, tt.wantReady, got.Ready)
			assert.Equal(t, tt.wantKey, got.ClientKey)
		})
	}
}

func TestResolvePayPal(t *testing.T) {
	cfg := NewConfig(
		map[string]string{"paypal_client_id_production": "live-id", "merchant": "ignored"},
		[]Secret{plain(ProviderPayPal, "client_secret_production"), plain(ProviderMidtrans, "client_secret_sandbox")},
	)
	got := ResolvePayPal(cfg)
	assert.Equal(t, EnvProduction, got.Env)
	assert.True(t, got.Ready)
	assert.Equal(t, "live-id", got.ClientKey)
}

func TestDetectProvider(t *testing.T) {
	midtransReady := func(settings map[string]string) (map[string]string, []Secret) {
		settings["midtrans_client_key_sandbox"] = "sb"
		return settings, []Secret{plain(ProviderMidtrans, "server_key_sandbox")}
	}

	t.Run("no provider ready", func(t *testing.T) {
		d := DetectProvider(NewConfig(nil, nil))
		assert.Nil(t, d.Provider)
		assert.Equal(t, map[Provider]bool{ProviderXendit: false, ProviderMidtrans: false, ProviderPayPal: false}, d.Providers)
	})

	t.Run("first ready in order", func(t *testing.T) {
		settings, secrets := midtransReady(map[string]string{"paypal_client_id_sandbox": "pp"})
		secrets = append(secrets, plain(ProviderPayPal, "client_secret_sandbox"))

		d := DetectProvider(NewConfig(settings, secrets))
		require.NotNil(t, d.Provider)
		assert.Equal(t, ProviderMidtrans, *d.Provider)
		assert.True(t, d.Providers[ProviderPayPal])
	})

	t.Run("xendit comes first", func(t *testing.T) {
		settings, secrets := midtransReady(map[string]string{})
		secrets = append(secrets, plain(ProviderXendit, "secret_key"))

		d := DetectProvider(NewConfig(settings, secrets))
		require.NotNil(t, d.Provider)
		assert.Equal(t, ProviderXendit, *d.Provider)
	})

	t.Run("ready preferred provider wins", func(t *testing.T) {
		settings, secrets := midtransReady(map[string]string{"order_payment_provider": "midtrans"})
		secrets = append(secrets, plain(ProviderXendit, "secret_key"))

		d := DetectProvider(NewConfig(settings, secrets))
		require.NotNil(t, d.Provider)
		assert.Equal(t, ProviderMidtrans, *d.Provider)
	})

	t.Run("preferred provider that is not ready is skipped", func(t *testing.T) {
		d := DetectProvider(NewConfig(
			map[string]string{"order_payment_provider": "paypal"},
			[]Secret{plain(ProviderXendit, "secret_key")},
		))
		require.NotNil(t, d.Provider)
		assert.Equal(t, ProviderXendit, *d.Provider)
	})
}
