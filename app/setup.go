package app

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/sahilchouksey/uni-portal/api"
	"github.com/sahilchouksey/uni-portal/config"
	"github.com/sahilchouksey/uni-portal/database"
	"github.com/sahilchouksey/uni-portal/router"
	"github.com/sahilchouksey/uni-portal/services/cron"
	"github.com/sahilchouksey/uni-portal/services/events"
	"github.com/sahilchouksey/uni-portal/services/storage"
	"github.com/sahilchouksey/uni-portal/utils"
	"github.com/sahilchouksey/uni-portal/utils/cache"
)

// loadConfig loads .env (outside production) and reads the environment
func loadConfig() (*config.EnviornmentVariable, io.Closer, error) {
	if err := config.LoadENV(); err != nil {
		return nil, nil, err
	}

	getEnv, err := config.Get()
	if err != nil {
		return nil, nil, err
	}

	logCloser, err := utils.SetupLogger(getEnv.LOG_FILE, getEnv.IsProduction())
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return getEnv, logCloser, nil
}

// openStore connects to the configured database and runs AutoMigrate
func openStore(getEnv *config.EnviornmentVariable) (*database.GORMStore, error) {
	store, err := database.StartGORM(getEnv)
	if err != nil {
		if getEnv.DB_DRIVER == "postgres" {
			print("Check whether the Postgres is running or not\n")
		} else {
			print("Check that DB_PATH points to a writable location\n")
		}
		return nil, err
	}

	if err := store.Init(); err != nil {
		print("Failed to initialize database tables\n")
		store.Close()
		return nil, err
	}
	return store, nil
}

func SetupAndRunServer() error {
	getEnv, logCloser, err := loadConfig()
	if err != nil {
		return err
	}
	defer logCloser.Close()

	// Initialize GORM database connection
	store, err := openStore(getEnv)
	if err != nil {
		return err
	}

	// Optional Redis for brute force protection and caching
	var redisCache *cache.RedisCache
	if getEnv.REDIS_URL != "" {
		redisCache, err = cache.NewRedisCache(getEnv.REDIS_URL)
		if err != nil {
			log.Warnf("Failed to connect to Redis: %v. Brute force protection will be disabled.", err)
			redisCache = nil
		}
	}

	// Optional NATS event publishing
	publisher, err := events.New(getEnv.NATS_URL)
	if err != nil {
		log.Warnf("Failed to connect to NATS: %v. Events will not be published.", err)
		publisher = events.NoopPublisher{}
	}

	// Optional picture uploads
	var pictures storage.PictureStore
	spacesConfig := storage.SpacesConfig{
		AccessKey: getEnv.SPACES_ACCESS_KEY,
		SecretKey: getEnv.SPACES_SECRET_KEY,
		Bucket:    getEnv.SPACES_BUCKET,
		Region:    getEnv.SPACES_REGION,
		Endpoint:  getEnv.SPACES_ENDPOINT,
		CDNURL:    getEnv.SPACES_CDN_URL,
	}
	if spacesConfig.Configured() {
		spacesClient, err := storage.NewSpacesClient(spacesConfig)
		if err != nil {
			log.Warnf("Failed to create Spaces client: %v. Picture uploads are disabled.", err)
		} else {
			pictures = spacesClient
		}
	}

	// Initialize Cron Manager (only if enabled via environment variable)
	var cronManager *cron.CronManager
	if getEnv.CRON_ENABLED {
		cronManager = cron.NewCronManager(store.GetDB())
		if err := cronManager.Start(); err != nil {
			// Don't fail the app, just log the warning
			log.Warnf("Failed to start cron jobs: %v", err)
			cronManager = nil
		}
	}

	// Defer closing connections and stopping cron jobs
	defer func() {
		if cronManager != nil {
			cronManager.Stop()
		}
		publisher.Close()
		if redisCache != nil {
			redisCache.Close()
		}
		store.Close()
	}()

	// Init API
	server := api.NewAPIServer(fmt.Sprintf(":%d", getEnv.PORT))

	// Setup Routes
	if err := router.SetupRoutes(server.GetEngine(), router.Dependencies{
		Store:             store,
		Env:               getEnv,
		Cache:             redisCache,
		Publisher:         publisher,
		Pictures:          pictures,
		RateLimitRequests: 100,
	}); err != nil {
		return err
	}

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.Run()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		return err
	case sig := <-quit:
		log.Infof("Received %s, shutting down...", sig)
		return server.Shutdown(10 * time.Second)
	}
}

// RunMigrations runs AutoMigrate and exits
func RunMigrations() error {
	getEnv, logCloser, err := loadConfig()
	if err != nil {
		return err
	}
	defer logCloser.Close()

	store, err := openStore(getEnv)
	if err != nil {
		return err
	}
	defer store.Close()

	log.Info("Migrations completed")
	return nil
}

// RunSeed loads the catalog from a YAML file (or the built-in sample) into the database
func RunSeed(path string) error {
	getEnv, logCloser, err := loadConfig()
	if err != nil {
		return err
	}
	defer logCloser.Close()

	data, err := database.LoadSeedData(path)
	if err != nil {
		return err
	}

	store, err := openStore(getEnv)
	if err != nil {
		return err
	}
	defer store.Close()

	return database.NewSeeder(store.GetDB()).SeedAll(data)
}
