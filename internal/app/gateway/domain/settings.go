package domain

import (
	"strings"
)

// Env is a payment provider environment.
type Env string

const (
	EnvSandbox    Env = "sandbox"
	EnvProduction Env = "production"
)

// ParseEnv accepts only the two known environments.
func ParseEnv(s string) (Env, bool) {
	switch Env(strings.TrimSpace(s)) {
	case EnvSandbox:
		return EnvSandbox, true
	case EnvProduction:
		return EnvProduction, true
	}
	return "", false
}

// Provider is a payment gateway.
type Provider string

const (
	ProviderXendit   Provider = "xendit"
	ProviderMidtrans Provider = "midtrans"
	ProviderPayPal   Provider = "paypal"
)

// DetectionOrder is the fallback order when no preferred provider is ready.
var DetectionOrder = []Provider{ProviderXendit, ProviderMidtrans, ProviderPayPal}

// Website setting keys.
const (
	SettingPreferredProvider  = "order_payment_provider"
	SettingMidtransMerchantID = "midtrans_merchant_id"
	SettingMidtransActiveEnv  = "midtrans_active_env"
	SettingMidtransClientKey  = "midtrans_client_key_"
	SettingPayPalActiveEnv    = "paypal_active_env"
	SettingPayPalClientID     = "paypal_client_id_"
	SecretMidtransServerKey   = "server_key_"
	SecretPayPalClientSecret  = "client_secret_"
	SecretXenditSecretKey     = "secret_key"
	plainIV                   = "plain"
)

// SettingKeys lists every website setting the gateway resolution reads.
func SettingKeys() []string {
	return []string{
		SettingPreferredProvider,
		SettingMidtransMerchantID,
		SettingMidtransActiveEnv,
		SettingMidtransClientKey + string(EnvSandbox),
		SettingMidtransClientKey + string(EnvProduction),
		SettingPayPalActiveEnv,
		SettingPayPalClientID + string(EnvSandbox),
		SettingPayPalClientID + string(EnvProduction),
	}
}

// Secret is a stored provider credential. Only its presence is ever inspected.
type Secret struct {
	Provider   Provider
	Name       string
	Ciphertext string
	IV         string
}

// IsPlain reports whether the secret is stored unencrypted and non-empty, which is the
// only form the server can use directly.
func (s Secret) IsPlain() bool {
	return s.IV == plainIV && strings.TrimSpace(s.Ciphertext) != ""
}

// Config is a snapshot of gateway settings and secrets.
type Config struct {
	settings map[string]string
	secrets  map[Provider]map[string]Secret
}

// NewConfig indexes settings and secrets. Blank setting values are treated as unset.
func NewConfig(settings map[string]string, secrets []Secret) *Config {
	c := &Config{
		settings: make(map[string]string, len(settings)),
		secrets:  make(map[Provider]map[string]Secret),
	}
	for k, v := range settings {
		if v = strings.TrimSpace(v); v != "" {
			c.settings[k] = v
		}
	}
	for _, s := range secrets {
		if c.secrets[s.Provider] == nil {
			c.secrets[s.Provider] = make(map[string]Secret)
		}
		c.secrets[s.Provider][s.Name] = s
	}
	return c
}

// Setting returns a trimmed setting value, or "" when unset.
func (c *Config) Setting(key string) string {
	return c.settings[key]
}

// HasPlainSecret checks whether a usable secret exists.
func (c *Config) HasPlainSecret(provider Provider, name string) bool {
	s, ok := c.secrets[provider][name]
	return ok && s.IsPlain()
}
