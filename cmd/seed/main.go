package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"foodcart/internal/backend"
	"foodcart/internal/config"
	"foodcart/internal/logger"
	"foodcart/internal/model"
	"foodcart/internal/service"
	"foodcart/internal/session"
)

// SeedCatalog is the layout of the seed file.
type SeedCatalog struct {
	Restaurants []SeedRestaurant `json:"restaurants"`
}

// SeedRestaurant is one restaurant and its menu.
type SeedRestaurant struct {
	Name     string         `json:"name"`
	Address  string         `json:"address"`
	Cuisine  string         `json:"cuisine"`
	ImageURL string         `json:"imageUrl"`
	Menu     []SeedMenuItem `json:"menu"`
}

// SeedMenuItem is one dish. Price is kept as text so a bad value skips the item.
type SeedMenuItem struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       string `json:"price"`
	ImageURL    string `json:"imageUrl"`
}

type seedStats struct {
	restaurantsCreated int
	restaurantsUpdated int
	itemsCreated       int
	itemsUpdated       int
	skipped            int
}

func main() {
	source := flag.String("catalog", "seed/catalog.json", "path or http(s) URL of the seed catalog")
	flag.Parse()

	cfg := config.Load()
	log := logger.New(cfg.LogLevel, cfg.LogFormat)
	log.Info().Str("backend", cfg.BackendURL).Msg("starting seed")

	catalog, err := loadCatalog(*source)
	if err != nil {
		log.Fatal().Err(err).Str("source", *source).Msg("load catalog")
	}
	log.Info().Int("restaurants", len(catalog.Restaurants)).Msg("catalog loaded")

	client := backend.New(cfg.BackendURL, cfg.BackendTimeout, log)
	admin := service.NewAdminService(client, log)

	// The admin token lives in a throwaway in-memory session.
	ctx := context.Background()
	sess := session.New(uuid.NewString(), session.NewMemoryStore(cfg.SessionTTL))
	if err := sess.Init(ctx); err != nil {
		log.Fatal().Err(err).Msg("init session")
	}
	if _, err := admin.Login(ctx, sess, os.Getenv("SEED_ADMIN_USERNAME"), os.Getenv("SEED_ADMIN_PASSWORD")); err != nil {
		log.Fatal().Err(err).Msg("admin login")
	}
	defer func() {
		_ = admin.Logout(ctx, sess)
	}()

	stats, err := seedCatalog(ctx, admin, sess, catalog, log)
	if err != nil {
		log.Fatal().Err(err).Msg("seed catalog")
	}

	log.Info().
		Int("restaurants_created", stats.restaurantsCreated).
		Int("restaurants_updated", stats.restaurantsUpdated).
		Int("items_created", stats.itemsCreated).
		Int("items_updated", stats.itemsUpdated).
		Int("skipped", stats.skipped).
		Msg("seed completed")
}

// loadCatalog reads the catalog from a file or, for http(s) sources, a URL.
func loadCatalog(source string) (*SeedCatalog, error) {
	var (
		body []byte
		err  error
	)
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		body, err = fetch(source)
	} else {
		body, err = os.ReadFile(source)
	}
	if err != nil {
		return nil, err
	}

	var catalog SeedCatalog
	if err := json.Unmarshal(body, &catalog); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	return &catalog, nil
}

func fetch(url string) ([]byte, error) {
	resp, err := http.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch catalog: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog source returned status code: %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// seedCatalog creates restaurants and dishes, updating ones that already exist by name.
func seedCatalog(ctx context.Context, admin service.AdminService, sess *session.Session, catalog *SeedCatalog, log zerolog.Logger) (seedStats, error) {
	var stats seedStats

	dash, err := admin.Dashboard(ctx, sess, "")
	if err != nil {
		return stats, fmt.Errorf("load dashboard: %w", err)
	}

	for _, r := range catalog.Restaurants {
		form := service.RestaurantForm{
			Name:     r.Name,
			Address:  r.Address,
			Cuisine:  r.Cuisine,
			ImageURL: r.ImageURL,
		}

		if existing := findRestaurant(dash.Restaurants, r.Name); existing != nil {
			dash, err = admin.UpdateRestaurant(ctx, sess, existing.ID, form)
			stats.restaurantsUpdated++
		} else {
			dash, err = admin.CreateRestaurant(ctx, sess, form)
			stats.restaurantsCreated++
		}
		if err != nil {
			return stats, fmt.Errorf("save restaurant %q: %w", r.Name, err)
		}

		restaurant := findRestaurant(dash.Restaurants, r.Name)
		if restaurant == nil {
			log.Warn().Str("restaurant", r.Name).Msg("restaurant not listed after save, skipping menu")
			stats.skipped += len(r.Menu)
			continue
		}

		dash, err = admin.Dashboard(ctx, sess, restaurant.ID)
		if err != nil {
			return stats, fmt.Errorf("load menu of %q: %w", r.Name, err)
		}

		for _, item := range r.Menu {
			price, perr := decimal.NewFromString(item.Price)
			if perr != nil || !price.IsPositive() {
				log.Warn().Str("item", item.Name).Str("price", item.Price).Msg("skipping menu item with invalid price")
				stats.skipped++
				continue
			}
			itemForm := service.MenuItemForm{
				Name:        item.Name,
				Description: item.Description,
				Price:       price,
				ImageURL:    item.ImageURL,
			}

			if existing := findMenuItem(dash.Menu, item.Name); existing != nil {
				dash, err = admin.UpdateMenuItem(ctx, sess, restaurant.ID, existing.ID, itemForm)
				stats.itemsUpdated++
			} else {
				dash, err = admin.CreateMenuItem(ctx, sess, restaurant.ID, itemForm)
				stats.itemsCreated++
			}
			if err != nil {
				return stats, fmt.Errorf("save menu item %q: %w", item.Name, err)
			}
		}
	}

	return stats, nil
}

func findRestaurant(restaurants []model.Restaurant, name string) *model.Restaurant {
	for i := range restaurants {
		if strings.EqualFold(restaurants[i].Name, name) {
			return &restaurants[i]
		}
	}
	return nil
}

func findMenuItem(menu []model.MenuItem, name string) *model.MenuItem {
	for i := range menu {
		if strings.EqualFold(menu[i].Name, name) {
			return &menu[i]
		}
	}
	return nil
}
