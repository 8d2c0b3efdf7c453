package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/sytallax/pizzaparser/internal/apis/dominos"
	"github.com/sytallax/pizzaparser/internal/apis/dominos/usecases"

	"github.com/sytallax/pizzaparser/internal/bootstrap"
	"github.com/sytallax/pizzaparser/internal/config"
	"github.com/sytallax/pizzaparser/internal/domain/models"
	"github.com/sytallax/pizzaparser/internal/logger"
	"github.com/sytallax/pizzaparser/internal/repository"
	jsonfile "github.com/sytallax/pizzaparser/internal/repository/json"
)

func main() {
	var (
		configPath = flag.String("config", "./config/config.yaml", "path to config.yaml")
		street     = flag.String("street", "", "override customer street (optional)")
		city       = flag.String("city", "", "override customer city (optional)")
		region     = flag.String("region", "", "override customer region (optional)")
		postal     = flag.Int("postal", 0, "override customer postal code (optional)")
		pickupFlag = flag.String("pickup", "", "override pickup mode: Delivery|Carryout (optional)")
		outputFile = flag.String("out", "", "override output file (optional)")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("load config failed", "err", err)
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Level:     cfg.Log.Level,
		Format:    cfg.Log.Format,
		AddSource: cfg.Log.AddSource,
	})
	slog.SetDefault(log)

	// overrides
	if *street != "" {
		cfg.Customer.Address.Street = *street
	}
	if *city != "" {
		cfg.Customer.Address.City = *city
	}
	if *region != "" {
		cfg.Customer.Address.Region = *region
	}
	if *postal > 0 {
		cfg.Customer.Address.PostalCode = *postal
	}
	if *pickupFlag != "" {
		cfg.Dominos.PickupMode = *pickupFlag
	}
	if *outputFile != "" {
		cfg.CLI.OutputFile = *outputFile
	}

	customer, err := bootstrap.CustomerFromConfig(cfg.Customer)
	if err != nil {
		log.Error("bad customer config (set customer.address in config.yaml or via flags)", "err", err)
		os.Exit(1)
	}

	pickup, err := models.ParsePickupMode(cfg.Dominos.PickupMode)
	if err != nil {
		log.Error("bad pickup mode", "err", err)
		os.Exit(1)
	}

	if cfg.CLI.OutputFile == "" {
		log.Error("output_file must not be empty (set in config.yaml or via -out)")
		os.Exit(1)
	}

	transport, err := bootstrap.BuildTransport(cfg, log, 5)
	if err != nil {
		log.Error("build transport failed", "err", err)
		os.Exit(1)
	}

	dominosSvc := dominos.New(transport, cfg.Dominos.BaseURL, log)
	usecase := usecases.NewNearestMenuService(dominosSvc, log)
	repo := jsonfile.New(cfg.CLI.OutputFile, log)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.TimeoutSeconds)*time.Second)
	defer cancel()

	store, menu, err := usecase.MenuNearAddress(ctx, customer.Address, pickup)
	if err != nil {
		log.Error("resolve nearest menu failed", "err", err)
		os.Exit(1)
	}

	meta := repository.StoreMetaFrom(store)
	res := repository.MenuResult{
		FetchedAt:  time.Now().UTC().Format(time.RFC3339),
		Store:      &meta,
		Categories: menu.Categories,
		Products:   menu.Products,
		LineItems:  menu.LineItems,
		Coupons:    menu.Coupons,
		Counts:     repository.CountsFor(menu),
	}

	if err := repo.SaveMenu(ctx, res); err != nil {
		log.Error("save json failed", "err", err)
		os.Exit(1)
	}

	log.Info("done",
		"env", cfg.Env,
		"store_id", store.ID,
		"pickup", pickup.String(),
		"products", res.Counts.Products,
		"line_items", res.Counts.LineItems,
		"output", cfg.CLI.OutputFile,
	)
}
