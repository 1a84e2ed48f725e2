package main // Entry point package

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/filmhub/swapper-api/internal/config"
	"github.com/filmhub/swapper-api/internal/database"
	"github.com/filmhub/swapper-api/internal/handler"
	"github.com/filmhub/swapper-api/internal/middleware"
	"github.com/filmhub/swapper-api/internal/repository"
	"github.com/filmhub/swapper-api/internal/router"
	"github.com/filmhub/swapper-api/internal/service"
	"github.com/filmhub/swapper-api/internal/storage"
)

func main() {
	_ = godotenv.Load() // .env is optional; real env vars win

	cfg := config.Load()

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	if err := database.Migrate(db, cfg.DBDriver); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	files, err := storage.NewFileStore(cfg.UploadDir)
	if err != nil {
		log.Fatalf("upload dir: %v", err)
	}

	users := repository.NewUserRepo(db)
	images := repository.NewImageRepo(db, files)
	cinemas := repository.NewCinemaRepo(db)

	// Redis is optional; without it the cache middleware passes through.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable, response caching disabled")
	}
	cacheMW := middleware.ResponseCache(config.LoadCacheConfig(), rdb)

	e := echo.New()
	e.HideBanner = true
	router.RegisterRoutes(e, router.Deps{
		Auth:      handler.NewAuthHandler(cfg, users),
		Images:    handler.NewImageHandler(cfg, images, files, service.Publish),
		Cinemas:   handler.NewCinemaHandler(cfg, cinemas, service.Publish),
		Debug:     handler.NewDebugHandler(db, cfg.DBDriver),
		JWTSecret: cfg.JWTSecret,
		CacheMW:   cacheMW,
	})

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s, db=%s)", addr, cfg.Env, cfg.DBDriver)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
