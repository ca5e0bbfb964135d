package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"pizzeria/internal/config"
	"pizzeria/internal/db"
	"pizzeria/internal/model"
	"pizzeria/internal/repository"
)

// seedItem mirrors the menu-seed JSON document.
type seedItem struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Image       string          `json:"image"`
	Price       decimal.Decimal `json:"price"`
}

// defaultMenu is used when MENU_SEED_URL is not configured.
var defaultMenu = []seedItem{
	{Title: "Veggie", Description: "A garden of delight", Image: "pizza1.png", Price: decimal.NewFromFloat(0.0038)},
	{Title: "Pepperoni", Description: "Spicy treat", Image: "pizza2.png", Price: decimal.NewFromFloat(0.0042)},
	{Title: "Margarita", Description: "Essential classic", Image: "pizza3.png", Price: decimal.NewFromFloat(0.0014)},
	{Title: "Crusty", Description: "A dry mouthed favorite", Image: "pizza4.png", Price: decimal.NewFromFloat(0.0024)},
}

func main() {
	cfg := config.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		logger.Fatal("database init", zap.Error(err))
	}

	if err := gormDB.AutoMigrate(&model.MenuItem{}); err != nil {
		logger.Fatal("auto-migrate", zap.Error(err))
	}

	items := defaultMenu
	if cfg.MenuSeedURL != "" {
		items, err = fetchMenu(cfg.MenuSeedURL)
		if err != nil {
			logger.Fatal("fetch menu seed", zap.String("url", cfg.MenuSeedURL), zap.Error(err))
		}
	}

	ctx := context.Background()
	menuRepo := repository.NewMenuRepository(gormDB)

	existing, err := menuRepo.List(ctx)
	if err != nil {
		logger.Fatal("list menu", zap.Error(err))
	}
	seen := make(map[string]bool, len(existing))
	for _, item := range existing {
		seen[item.Title] = true
	}

	created := 0
	for _, item := range items {
		if seen[item.Title] {
			continue
		}
		err := menuRepo.Create(ctx, &model.MenuItem{
			Title:       item.Title,
			Description: item.Description,
			Image:       item.Image,
			Price:       item.Price,
		})
		if err != nil {
			logger.Fatal("create menu item", zap.String("title", item.Title), zap.Error(err))
		}
		created++
	}

	logger.Info("menu seeded", zap.Int("created", created), zap.Int("skipped", len(items)-created))
}

func fetchMenu(url string) ([]seedItem, error) {
	resp, err := http.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("menu seed fetch returned status %d", resp.StatusCode)
	}

	var items []seedItem
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		return nil, fmt.Errorf("decode menu seed: %w", err)
	}
	return items, nil
}
