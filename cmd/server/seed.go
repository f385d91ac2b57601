package main

import (
	"fmt"
	"math/big"

	"cloud.google.com/go/spanner"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	gatewaydomain "github.com/light-bringer/checkout-pricing-service/internal/app/gateway/domain"
	"github.com/light-bringer/checkout-pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/checkout-pricing-service/internal/app/pricing/repo"
	"github.com/light-bringer/checkout-pricing-service/internal/cache"
	"github.com/light-bringer/checkout-pricing-service/internal/config"
	"github.com/light-bringer/checkout-pricing-service/internal/logging"
	"github.com/light-bringer/checkout-pricing-service/internal/models/m_website_setting"
	"github.com/light-bringer/checkout-pricing-service/internal/pkg/committer"
)

const seedPackageID = "pkg-business"

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Write a sample package, promo codes and gateway settings for local development",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if err := logging.Configure(cfg.Log.Level, cfg.Log.Format); err != nil {
			return err
		}

		ctx := cmd.Context()
		client, err := spanner.NewClient(ctx, cfg.Spanner.Database)
		if err != nil {
			return fmt.Errorf("failed to create Spanner client: %w", err)
		}
		defer client.Close()

		plan, err := seedPlan(repo.NewCatalogRepo(client), repo.NewPromoRepo(client))
		if err != nil {
			return err
		}
		if err := committer.NewCommitter(client).Apply(ctx, plan); err != nil {
			return err
		}

		if cfg.Redis.Addr != "" {
			rdb := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
			defer rdb.Close()
			if err := rdb.Del(ctx, cache.Key(seedPackageID)).Err(); err != nil {
				logrus.WithError(err).Warn("Failed to evict cached snapshot")
			}
		}

		logrus.WithFields(logrus.Fields{
			"package_id": seedPackageID,
			"mutations":  plan.Count(),
		}).Info("Seed data written")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

func seedPlan(catalog *repo.CatalogRepo, promos *repo.PromoRepo) (*committer.CommitPlan, error) {
	plan := committer.NewPlan()

	muts, err := catalog.SnapshotMuts(seedSnapshot())
	if err != nil {
		return nil, fmt.Errorf("failed to build catalog mutations: %w", err)
	}
	plan.AddMultiple(muts)

	for _, promo := range seedPromos() {
		mut, err := promos.UpsertMut(&promo)
		if err != nil {
			return nil, fmt.Errorf("promo %s: %w", promo.Code, err)
		}
		plan.Add(mut)
	}

	settings := m_website_setting.NewModel()
	plan.Add(settings.UpsertMut(gatewaydomain.SettingPreferredProvider, string(gatewaydomain.ProviderMidtrans)))
	plan.Add(settings.UpsertMut(gatewaydomain.SettingMidtransActiveEnv, string(gatewaydomain.EnvSandbox)))
	plan.Add(settings.UpsertMut(gatewaydomain.SettingMidtransMerchantID, "G000000000"))
	plan.Add(settings.UpsertMut(gatewaydomain.SettingMidtransClientKey+string(gatewaydomain.EnvSandbox), "SB-Mid-client-local"))

	return plan, nil
}

func seedSnapshot() *domain.CatalogSnapshot {
	maxPages := decimal.NewFromInt(10)
	maxStorage := decimal.RequireFromString("20")
	return &domain.CatalogSnapshot{
		PackageID: seedPackageID,
		Pricing: domain.PriceConfiguration{
			PackageID:    seedPackageID,
			DomainPrice:  domain.MustMoney(15, 1),
			PackagePrice: domain.MustMoney(240, 1),
		},
		Durations: []domain.DurationDiscountRow{
			{PackageID: seedPackageID, DurationID: "m12", DurationMonths: 12, DiscountPercent: big.NewRat(10, 1), IsActive: true, SortOrder: 1},
			{PackageID: seedPackageID, DurationID: "m24", DurationMonths: 24, DiscountPercent: big.NewRat(20, 1), IsActive: true, SortOrder: 2},
			{PackageID: seedPackageID, DurationID: "m36", DurationMonths: 36, DiscountPercent: big.NewRat(25, 1), IsActive: true, SortOrder: 3},
		},
		Plans: []domain.SubscriptionPlan{
			{Years: 1, Label: "1 Tahun", SortOrder: 1},
			{Years: 2, Label: "2 Tahun", SortOrder: 2},
			{Years: 3, Label: "3 Tahun", SortOrder: 3},
		},
		AddOns: []domain.AddOnItem{
			{ID: "seo", Label: "SEO Setup", Kind: domain.AddOnFlat, Price: domain.MustMoney(40, 1), SortOrder: 1},
			{ID: "pages", Label: "Halaman Tambahan", Kind: domain.AddOnPerUnit, Price: domain.MustMoney(10, 1), Unit: "halaman", UnitStep: decimal.NewFromInt(1), MaxQuantity: &maxPages, SortOrder: 2},
			{ID: "email", Label: "Email Bisnis", Kind: domain.AddOnPerUnit, Price: domain.MustMoney(5, 1), Unit: "akun", UnitStep: decimal.NewFromInt(5), SortOrder: 3},
			{ID: "storage", Label: "Penyimpanan Ekstra", Kind: domain.AddOnPerUnit, Price: domain.MustMoney(4, 1), Unit: "GB", UnitStep: decimal.RequireFromString("0.5"), MaxQuantity: &maxStorage, SortOrder: 4},
		},
	}
}

func seedPromos() []domain.PromoCode {
	return []domain.PromoCode{
		{
			ID:       "promo-hemat10",
			Code:     "HEMAT10",
			Name:     "Hemat 10%",
			IsActive: true,
			Rule:     domain.PromoRule{Type: domain.PromoPercent, Value: big.NewRat(10, 1)},
		},
		{
			ID:          "promo-potong50",
			Code:        "POTONG50",
			Name:        "Potongan 50",
			IsActive:    true,
			Rule:        domain.PromoRule{Type: domain.PromoFlat, Value: big.NewRat(50, 1)},
			MinSubtotal: domain.MustMoney(200, 1),
		},
	}
}
