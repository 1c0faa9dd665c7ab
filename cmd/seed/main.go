// Command seed loads the sample catalog into the configured document store.
// It refuses to overwrite existing data unless -force is given.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/droidbay/catalog/cmd/catalog/models"
	"github.com/droidbay/catalog/cmd/catalog/repository"
	"github.com/droidbay/catalog/common/bootstrap"
)

var seedCategories = []models.Category{
	{ID: "1", Name: "Games", Description: "Fun and entertaining games"},
	{ID: "2", Name: "Productivity", Description: "Tools to boost your productivity"},
	{ID: "3", Name: "Social", Description: "Connect with friends and family"},
	{ID: "4", Name: "Education", Description: "Learn new skills and knowledge"},
}

var seedApps = []models.App{
	{
		ID:          "1",
		Name:        "Angry Birds",
		Category:    "Games",
		Description: "Classic slingshot game",
		Version:     "2.0",
		Size:        "50MB",
		Downloads:   "1000000",
		Rating:      4.5,
		Icon:        "https://example.com/angrybirds.png",
		Screenshots: []string{"https://example.com/screenshot1.png"},
		Developer:   "Rovio Entertainment",
		Price:       "Free",
	},
	{
		ID:          "2",
		Name:        "Microsoft Office",
		Category:    "Productivity",
		Description: "Complete office suite",
		Version:     "16.0",
		Size:        "2GB",
		Downloads:   "500000",
		Rating:      4.2,
		Icon:        "https://example.com/office.png",
		Screenshots: []string{"https://example.com/office_screenshot.png"},
		Developer:   "Microsoft",
		Price:       "$9.99/month",
	},
	{
		ID:          "3",
		Name:        "Facebook",
		Category:    "Social",
		Description: "Connect with friends",
		Version:     "400.0",
		Size:        "200MB",
		Downloads:   "5000000",
		Rating:      4.0,
		Icon:        "https://example.com/facebook.png",
		Screenshots: []string{"https://example.com/fb_screenshot.png"},
		Developer:   "Meta",
		Price:       "Free",
	},
	{
		ID:          "4",
		Name:        "Duolingo",
		Category:    "Education",
		Description: "Learn languages for free",
		Version:     "5.0",
		Size:        "150MB",
		Downloads:   "2000000",
		Rating:      4.7,
		Icon:        "https://example.com/duolingo.png",
		Screenshots: []string{"https://example.com/duolingo_screenshot.png"},
		Developer:   "Duolingo",
		Price:       "Free",
	},
}

func main() {
	force := flag.Bool("force", false, "overwrite existing catalog data")
	flag.Parse()

	ctx := context.Background()

	components, err := bootstrap.Setup(ctx, "seed", bootstrap.SkipTelemetry())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to bootstrap seeder: %v\n", err)
		os.Exit(1)
	}
	defer components.Shutdown(ctx)

	log := components.Logger

	appRepo, err := repository.NewAppRepository(ctx, components.Store)
	if err != nil {
		log.Error("failed to load apps", "error", err)
		os.Exit(1)
	}

	categoryRepo, err := repository.NewCategoryRepository(ctx, components.Store)
	if err != nil {
		log.Error("failed to load categories", "error", err)
		os.Exit(1)
	}

	if !*force && (len(appRepo.All()) > 0 || len(categoryRepo.All()) > 0) {
		log.Warn("catalog already contains data, use -force to overwrite")
		os.Exit(1)
	}

	if err := categoryRepo.ReplaceAll(ctx, seedCategories); err != nil {
		log.Error("failed to seed categories", "error", err)
		os.Exit(1)
	}

	if err := appRepo.ReplaceAll(ctx, seedApps); err != nil {
		log.Error("failed to seed apps", "error", err)
		os.Exit(1)
	}

	log.Info("sample data seeded successfully",
		"categories", len(seedCategories),
		"apps", len(seedApps),
	)
}
