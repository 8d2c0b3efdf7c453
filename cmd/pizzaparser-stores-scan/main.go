package main

import (
	"context"
	"encoding/json"
	"flag"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sytallax/pizzaparser/internal/apis/dominos"
	"github.com/sytallax/pizzaparser/internal/bootstrap"
	"github.com/sytallax/pizzaparser/internal/config"
	"github.com/sytallax/pizzaparser/internal/domain/models"
	"github.com/sytallax/pizzaparser/internal/logger"
	"github.com/sytallax/pizzaparser/internal/repository"
	jsonfile "github.com/sytallax/pizzaparser/internal/repository/json"
)

// Coverage snapshot tool: reads a list of addresses and records the
// closest open store for each one. The same store often serves several
// addresses, so results are deduplicated by store id.

func main() {
	var (
		configPath = flag.String("config", "./config/config.yaml", "path to config.yaml")
		inPath     = flag.String("in", "./input/addresses.json", "input json file with addresses")
		workers    = flag.Int("workers", 8, "concurrent workers (goroutines)")
		pickupFlag = flag.String("pickup", "", "pickup mode: Delivery|Carryout (default from config)")
		outPath    = flag.String("out", "./output/stores.json", "output json file")
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
		Env:       cfg.Env,
	})
	slog.SetDefault(log)

	if *pickupFlag != "" {
		cfg.Dominos.PickupMode = *pickupFlag
	}
	pickup, err := models.ParsePickupMode(cfg.Dominos.PickupMode)
	if err != nil {
		log.Error("bad pickup mode", "err", err)
		os.Exit(1)
	}
	if *workers <= 0 {
		*workers = 8
	}

	addrs, err := loadAddresses(*inPath)
	if err != nil {
		log.Error("load addresses failed", "err", err, "path", *inPath)
		os.Exit(1)
	}
	if len(addrs) == 0 {
		log.Error("no addresses in input", "path", *inPath)
		os.Exit(1)
	}

	tr, err := bootstrap.BuildTransport(cfg, log, 2*(*workers))
	if err != nil {
		log.Error("build transport failed", "err", err)
		os.Exit(1)
	}

	dominosSvc := dominos.New(tr, cfg.Dominos.BaseURL, log)

	jobs := make(chan models.Address, 256)
	foundCh := make(chan repository.StoreMeta, 256)

	var scanned atomic.Uint64
	var found atomic.Uint64

	// aggregator, dedup by store id
	seen := make(map[int]bool)
	stores := make([]repository.StoreMeta, 0, len(addrs))

	doneAgg := make(chan struct{})
	go func() {
		defer close(doneAgg)
		for s := range foundCh {
			if seen[s.ID] {
				continue
			}
			seen[s.ID] = true
			stores = append(stores, s)
		}
	}()

	// workers
	var wg sync.WaitGroup
	ctx := context.Background()

	for i := 0; i < *workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for addr := range jobs {
				scanned.Add(1)

				store, ok := dominosSvc.ClosestAvailableStore(ctx, addr, pickup)
				if !ok {
					log.Warn("no open store for address",
						"street", addr.Street,
						"city", addr.City,
					)
					continue
				}

				found.Add(1)
				foundCh <- repository.StoreMetaFrom(store)
			}
		}()
	}

	// progress logger
	ticker := time.NewTicker(2 * time.Second)
	defer ticker.Stop()

	go func() {
		for range ticker.C {
			log.Info("scan progress",
				"scanned", scanned.Load(),
				"found", found.Load(),
				"total", len(addrs),
			)
		}
	}()

	// feed addresses
	for _, addr := range addrs {
		jobs <- addr
	}
	close(jobs)

	wg.Wait()
	close(foundCh)
	<-doneAgg

	// save
	res := repository.StoresResult{
		FetchedAt: time.Now().UTC().Format(time.RFC3339),
		Pickup:    pickup.String(),
		Stores:    stores,
		Count:     len(stores),
	}
	repo := jsonfile.New(*outPath, log)
	if err := repo.SaveStores(ctx, res); err != nil {
		log.Error("save stores json failed", "err", err)
		os.Exit(1)
	}

	log.Info("done", "scanned", scanned.Load(), "found", len(stores), "out", *outPath)
}

func loadAddresses(path string) ([]models.Address, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var addrs []models.Address
	if err := json.Unmarshal(b, &addrs); err != nil {
		return nil, err
	}
	return addrs, nil
}
