package main

import (
	"context"
	"flag"
	"log"
	"sort"

	"blog-cms-be/internal/bootstrap"
	"blog-cms-be/internal/config"
	"blog-cms-be/pkg/database"

	"github.com/fatih/color"
)

func main() {
	var (
		itemID  = flag.String("id", "", "import a single legacy item by id")
		workers = flag.Int("workers", 0, "worker count for batch import (0 = config default)")
	)
	flag.Parse()

	cfg := config.Load()

	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Fatalf("Unable to connect to GORM DB: %v", err)
	}

	container := bootstrap.NewContainer(gormDB, cfg)
	ctx := context.Background()

	bold := color.New(color.Bold)
	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)
	yellow := color.New(color.FgYellow)

	if *itemID != "" {
		bold.Printf("Importing legacy item %s from %s\n", *itemID, cfg.Legacy.SourceDir)
		res, err := container.ImportService.ImportOne(ctx, *itemID)
		if err != nil {
			red.Printf("FAILED: %v\n", err)
			return
		}
		green.Printf("OK: post %s (%d words, %d files migrated)\n", res.PostId, res.WordCount, res.MigratedFiles)
		return
	}

	bold.Printf("Importing all legacy content from %s\n", cfg.Legacy.SourceDir)
	res, err := container.ImportService.ImportAll(ctx, *workers)
	if err != nil {
		red.Printf("FAILED: %v\n", err)
		return
	}

	green.Printf("Imported: %d\n", res.Imported)
	if len(res.Failed) > 0 {
		yellow.Printf("Failed:   %d\n", len(res.Failed))
		ids := make([]string, 0, len(res.Failed))
		for id := range res.Failed {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		for _, id := range ids {
			red.Printf("  %s: %s\n", id, res.Failed[id])
		}
	}
}
