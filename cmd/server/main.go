package main // Entry point package

import (
	"context" // Context for the startup schema check
	"fmt"     // Slot id formatting for the demo seed
	"log"     // Logging library

	"github.com/joho/godotenv"                    // Loads .env files into the environment
	"github.com/labstack/echo/v4"                 // Echo web framework
	echomw "github.com/labstack/echo/v4/middleware" // Echo's built-in middleware

	"github.com/iliyamo/smart-parking-system/internal/config"
	"github.com/iliyamo/smart-parking-system/internal/database"
	"github.com/iliyamo/smart-parking-system/internal/handler"
	"github.com/iliyamo/smart-parking-system/internal/middleware"
	"github.com/iliyamo/smart-parking-system/internal/parking"
	"github.com/iliyamo/smart-parking-system/internal/queue"
	"github.com/iliyamo/smart-parking-system/internal/repository"
	"github.com/iliyamo/smart-parking-system/internal/router"
	"github.com/iliyamo/smart-parking-system/internal/utils"
)

func main() {
	_ = godotenv.Load() // Load .env when present; real env always wins
	cfg := config.Load()

	// Hash the admin password once; the plain value is never kept.
	adminHash, err := utils.HashPassword(cfg.AdminPassword, cfg.BcryptCost)
	if err != nil {
		log.Fatalf("hash admin password: %v", err)
	}

	// The seed function builds a fresh system; the admin reset endpoint
	// reuses it to drop all live state.
	seed := func() *parking.System { return buildSystem(cfg) }
	sys := seed()

	// Optional trip archive.  DB_HOST empty means in-memory only.
	var trips *repository.TripRepo
	if cfg.DBHost != "" {
		db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
		if err != nil {
			log.Fatalf("open database: %v", err)
		}
		trips = repository.NewTripRepo(db)
		if err := trips.EnsureSchema(context.Background()); err != nil {
			log.Fatalf("ensure trip schema: %v", err)
		}
		log.Printf("trip archive enabled (%s/%s)", cfg.DBHost, cfg.DBName)
	}

	// Redis backs rate limiting and the response cache; nil disables both.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; rate limiting and response cache disabled")
	}

	if cfg.StartConsumer {
		go func() {
			if err := queue.StartReleaseConsumer(); err != nil {
				log.Printf("release consumer stopped: %v", err)
			}
		}()
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	// Global token bucket; a no-op when Redis is missing.
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	auth := handler.NewAuthHandler(cfg, adminHash)
	p := handler.NewParkingHandler(sys, trips, seed)

	router.RegisterRoutes(e)
	router.RegisterAuth(e, auth)
	router.RegisterParking(e, p, cfg.JWTSecret, rdb)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}

// buildSystem constructs the allocation system with configured bounds and
// the optional demo topology.
func buildSystem(cfg config.Config) *parking.System {
	caps := parking.DefaultCapacities()
	caps.PendingQueue = cfg.PendingQueueCapacity
	caps.RollbackHistory = cfg.RollbackHistoryCapacity
	sys := parking.NewSystem(caps)
	if cfg.SeedDemoData {
		seedDemoData(sys)
	}
	return sys
}

// seedDemoData loads the demo city: Downtown, Uptown and Suburbs form a
// chain, Industrial is reachable only through the fallback scan.
func seedDemoData(sys *parking.System) {
	mustSeed := func(_ any, err error) {
		if err != nil {
			log.Fatalf("seed demo data: %v", err)
		}
	}

	mustSeed(sys.AddZone("ZONE_A", "Downtown", nil))
	mustSeed(sys.AddZone("ZONE_B", "Uptown", []string{"ZONE_A"}))
	mustSeed(sys.AddZone("ZONE_C", "Suburbs", []string{"ZONE_B"}))
	mustSeed(sys.AddZone("ZONE_D", "Industrial", nil))

	areas := []struct {
		zone, id, name string
		capacity       int
	}{
		{"ZONE_A", "AREA_A1", "Downtown Plaza", 10},
		{"ZONE_A", "AREA_A2", "Downtown Station", 8},
		{"ZONE_B", "AREA_B1", "Uptown Mall", 12},
		{"ZONE_B", "AREA_B2", "Uptown Offices", 15},
		{"ZONE_C", "AREA_C1", "Suburban Park & Ride", 20},
		{"ZONE_D", "AREA_D1", "Industrial Park", 25},
	}
	for _, a := range areas {
		mustSeed(sys.AddArea(a.zone, a.id, a.name, a.capacity))
		for i := 1; i <= a.capacity; i++ {
			mustSeed(sys.AddSlot(a.id, fmt.Sprintf("%s_SLOT_%d", a.id, i)))
		}
	}
	log.Printf("seeded demo topology: %d zones", len(sys.Zones()))
}
