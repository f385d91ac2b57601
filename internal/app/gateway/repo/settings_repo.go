package repo

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"

	"github.com/light-bringer/checkout-pricing-service/internal/app/gateway/contracts"
	"github.com/light-bringer/checkout-pricing-service/internal/app/gateway/domain"
	"github.com/light-bringer/checkout-pricing-service/internal/models/m_integration_secret"
	"github.com/light-bringer/checkout-pricing-service/internal/models/m_website_setting"
	"github.com/light-bringer/checkout-pricing-service/internal/pkg/query"
)

// SettingsRepo reads website_settings and integration_secrets.
type SettingsRepo struct {
	client   *spanner.Client
	settings *m_website_setting.Model
	secrets  *m_integration_secret.Model
}

// NewSettingsRepo creates a new SettingsRepo.
func NewSettingsRepo(client *spanner.Client) *SettingsRepo {
	return &SettingsRepo{
		client:   client,
		settings: m_website_setting.NewModel(),
		secrets:  m_integration_secret.NewModel(),
	}
}

var _ contracts.SettingsReader = (*SettingsRepo)(nil)

// LoadConfig reads the known setting keys and every provider secret at one timestamp.
func (r *SettingsRepo) LoadConfig(ctx context.Context) (*domain.Config, error) {
	txn := r.client.ReadOnlyTransaction()
	defer txn.Close()

	settings := make(map[string]string)
	stmt := query.From(m_website_setting.TableName).
		Select(r.settings.ReadColumns()...).
		Where(query.In(m_website_setting.Key, domain.SettingKeys())).
		Build()
	err := each(ctx, txn, stmt, func(row *spanner.Row) error {
		var data m_website_setting.Data
		if err := row.ToStruct(&data); err != nil {
			return fmt.Errorf("failed to parse setting: %w", err)
		}
		if data.Value.Valid {
			settings[data.Key] = data.Value.StringVal
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}

	providers := make([]string, 0, len(domain.DetectionOrder))
	for _, p := range domain.DetectionOrder {
		providers = append(providers, string(p))
	}
	secrets := make([]domain.Secret, 0)
	stmt = query.From(m_integration_secret.TableName).
		Select(r.secrets.ReadColumns()...).
		Where(query.In(m_integration_secret.Provider, providers)).
		Build()
	err = each(ctx, txn, stmt, func(row *spanner.Row) error {
		var data m_integration_secret.Data
		if err := row.ToStruct(&data); err != nil {
			return fmt.Errorf("failed to parse secret: %w", err)
		}
		secrets = append(secrets, domain.Secret{
			Provider:   domain.Provider(data.Provider),
			Name:       data.Name,
			Ciphertext: data.Ciphertext.StringVal,
			IV:         data.IV.StringVal,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read secrets: %w", err)
	}

	return domain.NewConfig(settings, secrets), nil
}

// SettingMut writes one website setting.
func (r *SettingsRepo) SettingMut(key, value string) *spanner.Mutation {
	return r.settings.UpsertMut(key, value)
}

// SecretMut writes one provider secret.
func (r *SettingsRepo) SecretMut(secret domain.Secret) (*spanner.Mutation, error) {
	return r.secrets.UpsertMut(&m_integration_secret.Data{
		Provider:   string(secret.Provider),
		Name:       secret.Name,
		Ciphertext: spanner.NullString{StringVal: secret.Ciphertext, Valid: true},
		IV:         spanner.NullString{StringVal: secret.IV, Valid: secret.IV != ""},
	})
}

func each(ctx context.Context, txn *spanner.ReadOnlyTransaction, stmt spanner.Statement, fn func(*spanner.Row) error) error {
	iter := txn.Query(ctx, stmt)
	defer iter.Stop()
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			return nil
		}
		if err != nil {
			return err
		}
		if err := fn(row); err != nil {
			return err
		}
	}
}
