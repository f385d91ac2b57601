package domain

// EnvSettings is the public, secret-free view of a provider that has sandbox and
// production credentials.
type EnvSettings struct {
	Env       Env    `json:"env"`
	ClientKey string `json:"client_key,omitempty"`
	Ready     bool   `json:"ready"`
}

// MidtransSettings adds the merchant id to the Midtrans environment view.
type MidtransSettings struct {
	EnvSettings
	MerchantID string `json:"merchant_id,omitempty"`
}

type envRule struct {
	provider     Provider
	activeEnvKey string
	clientKey    string
	secretName   string
}

var (
	midtransRule = envRule{ProviderMidtrans, SettingMidtransActiveEnv, SettingMidtransClientKey, SecretMidtransServerKey}
	paypalRule   = envRule{ProviderPayPal, SettingPayPalActiveEnv, SettingPayPalClientID, SecretPayPalClientSecret}
)

func (r envRule) ready(c *Config, env Env) bool {
	return c.Setting(r.clientKey+string(env)) != "" && c.HasPlainSecret(r.provider, r.secretName+string(env))
}

// resolve picks the admin-selected env when valid, else production when ready, else sandbox.
func (r envRule) resolve(c *Config) EnvSettings {
	env, ok := ParseEnv(c.Setting(r.activeEnvKey))
	if !ok {
		env = EnvSandbox
		if r.ready(c, EnvProduction) {
			env = EnvProduction
		}
	}
	return EnvSettings{
		Env:       env,
		ClientKey: c.Setting(r.clientKey + string(env)),
		Ready:     r.ready(c, env),
	}
}

// ResolveMidtrans returns the effective Midtrans environment.
func ResolveMidtrans(c *Config) MidtransSettings {
	return MidtransSettings{
		EnvSettings: midtransRule.resolve(c),
		MerchantID:  c.Setting(SettingMidtransMerchantID),
	}
}

// ResolvePayPal returns the effective PayPal environment. ClientKey holds the client id.
func ResolvePayPal(c *Config) EnvSettings {
	return paypalRule.resolve(c)
}

// XenditReady reports whether Xendit has a usable secret key.
func XenditReady(c *Config) bool {
	return c.HasPlainSecret(ProviderXendit, SecretXenditSecretKey)
}

// Detection is the payment provider the checkout should use. Provider is nil when none is
// ready.
type Detection struct {
	Provider  *Provider         `json:"provider"`
	Providers map[Provider]bool `json:"providers"`
	Midtrans  MidtransSettings  `json:"midtrans"`
	PayPal    EnvSettings       `json:"paypal"`
}

// DetectProvider prefers the configured provider when it is ready, otherwise the first
// ready provider in DetectionOrder.
func DetectProvider(c *Config) *Detection {
	midtrans := ResolveMidtrans(c)
	paypal := ResolvePayPal(c)
	d := &Detection{
		Providers: map[Provider]bool{
			ProviderXendit:   XenditReady(c),
			ProviderMidtrans: midtrans.Ready,
			ProviderPayPal:   paypal.Ready,
		},
		Midtrans: midtrans,
		PayPal:   paypal,
	}

	preferred := Provider(c.Setting(SettingPreferredProvider))
	if d.Providers[preferred] {
		d.Provider = &preferred
		return d
	}
	for _, p := range DetectionOrder {
		if d.Providers[p] {
			p := p
			d.Provider = &p
			return d
		}
	}
	return d
}
