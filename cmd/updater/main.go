package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"go.uber.org/zap"

	"github.com/cyberguardng/cyberguard/internal/curation"
	"github.com/cyberguardng/cyberguard/internal/updater"
	"github.com/cyberguardng/cyberguard/internal/ussd"
	"github.com/cyberguardng/cyberguard/pkg/config"
	"github.com/cyberguardng/cyberguard/pkg/filestore"
	"github.com/cyberguardng/cyberguard/pkg/logger"
)

func main() {
	var (
		update      = flag.Bool("update", false, "run a safe-list update (respects the interval gate)")
		force       = flag.Bool("force", false, "run a safe-list update even if one ran recently")
		curatedOnly = flag.Bool("curated-only", false, "merge only the curated database into the safe list")
		stats       = flag.Bool("stats", false, "print stats of the last update run")
		addSource   = flag.String("add-source", "", "register a manual source URL")
		listSources = flag.Bool("list-sources", false, "print the registered manual source URLs")
	)
	flag.Parse()

	cfg, err := config.Load("cyberguard-updater")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := logger.Init(cfg.Server.Environment); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	store, err := filestore.New(cfg.Data.Dir)
	if err != nil {
		logger.Fatal("Failed to create data directory", zap.Error(err))
	}

	service := updater.NewService(store, curation.NewRepository(store), ussd.NewLists(store), &cfg.Updater)
	ctx := context.Background()

	switch {
	case *addSource != "":
		if err := service.AddManualSource(*addSource); err != nil {
			logger.Fatal("Failed to add source", zap.Error(err))
		}
		fmt.Printf("Added source: %s\n", *addSource)

	case *listSources:
		sources := service.ManualSources()
		if len(sources) == 0 {
			fmt.Println("No manual sources registered")
			return
		}
		for _, s := range sources {
			fmt.Println(s)
		}

	case *stats:
		st := service.Stats()
		fmt.Printf("Last update:     %s\n", st.LastUpdate)
		fmt.Printf("Total codes:     %d\n", st.TotalCodes)
		fmt.Printf("New codes:       %d\n", st.NewCodes)
		fmt.Printf("Sources checked: %d\n", st.SourcesChecked)
		for _, e := range st.Errors {
			fmt.Printf("Error: %s\n", e)
		}

	case *curatedOnly:
		st, err := service.UpdateFromCurated(ctx)
		if err != nil {
			logger.Fatal("Update failed", zap.Error(err))
		}
		fmt.Printf("Safe list updated from curated database: %d codes (%d new)\n", st.TotalCodes, st.NewCodes)

	case *update, *force:
		st, err := service.Update(ctx, *force)
		if err != nil {
			if errors.Is(err, updater.ErrTooSoon) {
				fmt.Println("Update skipped: last run is within the update interval (use --force)")
				return
			}
			logger.Fatal("Update failed", zap.Error(err))
		}
		fmt.Printf("Safe list updated: %d codes (%d new, %d sources)\n", st.TotalCodes, st.NewCodes, st.SourcesChecked)

	default:
		flag.Usage()
		os.Exit(2)
	}
}
