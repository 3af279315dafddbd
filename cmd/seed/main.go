// Package main provides a CLI tool for seeding the database with demo data.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"

	"herdboard/internal/core/id"
	"herdboard/internal/domain/herd"
	"herdboard/internal/domain/ledger"
	"herdboard/internal/infrastructure/storage/postgres"
	"herdboard/pkg/logger"
)

func main() {
	log, err := logger.New(logger.Config{
		Level:       "info",
		Development: true,
	})
	if err != nil {
		fmt.Printf("failed to create logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	poolCfg := postgres.DefaultPoolConfig(dbURL)
	pool, err := postgres.NewPool(ctx, poolCfg)
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	log.Info("connected to database")

	if err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatalw("failed to apply schema", "error", err)
	}
	log.Info("schema applied")

	if os.Getenv("SEED_DEMO_DATA") == "true" {
		if err := seedDemoHerd(ctx, pool, log); err != nil {
			log.Fatalw("failed to seed demo data", "error", err)
		}
	}

	log.Info("seeding completed successfully")
}

// seedDemoHerd loads a small herd with a year of ledger history so reports
// have something to show out of the box.
func seedDemoHerd(ctx context.Context, pool *postgres.Pool, log *logger.Logger) error {
	animalRepo := postgres.NewAnimalRepo(pool)
	herdService := herd.NewService(animalRepo)
	costService := ledger.NewCostService(postgres.NewCostRepo(pool))
	saleService := ledger.NewSaleService(postgres.NewSaleRepo(pool))
	birthService := ledger.NewBirthService(postgres.NewBirthRepo(pool))

	now := time.Now().UTC()
	pasture := id.New()

	type seedAnimal struct {
		tag      string
		name     string
		breed    string
		sex      herd.Sex
		ageMonth int
	}

	animals := []seedAnimal{
		{"BR-001", "Mimosa", "Nelore", herd.SexFemale, 52},
		{"BR-002", "Estrela", "Nelore", herd.SexFemale, 40},
		{"BR-003", "Valente", "Angus", herd.SexMale, 36},
		{"BR-004", "Pintada", "Girolando", herd.SexFemale, 28},
		{"BR-005", "Faisca", "Nelore x Angus", herd.SexFemale, 16},
		{"BR-006", "Trovao", "Angus", herd.SexMale, 8},
	}

	ids := make(map[string]id.ID, len(animals))
	for _, sa := range animals {
		a := herd.NewAnimal(sa.tag, sa.breed, sa.sex)
		a.Name = sa.name
		birth := now.AddDate(0, -sa.ageMonth, 0)
		a.BirthDate = &birth
		a.LocationID = &pasture

		if err := herdService.Create(ctx, a); err != nil {
			return fmt.Errorf("seed animal %s: %w", sa.tag, err)
		}
		ids[sa.tag] = a.ID
	}
	log.Infow("seeded animals", "count", len(animals))

	type seedCost struct {
		daysAgo  int
		amount   string
		category string
		tag      string
		desc     string
	}

	costs := []seedCost{
		{300, "1800.00", "feed", "", "silage bulk purchase"},
		{240, "450.00", "vet", "BR-001", "pregnancy check"},
		{180, "1200.00", "infrastructure", "", "fence repair north pasture"},
		{120, "650.00", "feed", "BR-006", "calf starter ration"},
		{90, "380.00", "vet", "BR-004", "vaccination round"},
		{60, "900.00", "labor", "", "seasonal hand wages"},
		{30, "520.00", "feed", "BR-002", "mineral supplement"},
		{10, "275.00", "transport", "BR-003", "haul to auction"},
	}

	for _, sc := range costs {
		amount, err := decimal.NewFromString(sc.amount)
		if err != nil {
			return fmt.Errorf("parse amount %q: %w", sc.amount, err)
		}
		e := &ledger.CostEntry{
			Date:        now.AddDate(0, 0, -sc.daysAgo),
			Amount:      amount,
			Category:    sc.category,
			Description: sc.desc,
		}
		if sc.tag != "" {
			animalID := ids[sc.tag]
			e.AnimalID = &animalID
		}
		if err := costService.Create(ctx, e); err != nil {
			return fmt.Errorf("seed cost entry: %w", err)
		}
	}
	log.Infow("seeded cost entries", "count", len(costs))

	saleAmount := decimal.RequireFromString("5400.00")
	sale := &ledger.SaleEntry{
		Date:     now.AddDate(0, 0, -7),
		Amount:   saleAmount,
		AnimalID: ids["BR-003"],
		Buyer:    "Frigorifico Boa Vista",
	}
	if err := saleService.Create(ctx, sale); err != nil {
		return fmt.Errorf("seed sale entry: %w", err)
	}
	if err := herdService.SetStatus(ctx, ids["BR-003"], herd.StatusSold); err != nil {
		return fmt.Errorf("mark sold animal: %w", err)
	}
	log.Info("seeded sale entry")

	calfID := ids["BR-006"]
	births := []*ledger.BirthRecord{
		{Date: now.AddDate(0, -8, 0), MotherAnimalID: ids["BR-001"], CalfAnimalID: &calfID},
		{Date: now.AddDate(0, -2, 0), MotherAnimalID: ids["BR-002"]},
	}
	for _, b := range births {
		if err := birthService.Create(ctx, b); err != nil {
			return fmt.Errorf("seed birth record: %w", err)
		}
	}
	log.Infow("seeded birth records", "count", len(births))

	return nil
}
