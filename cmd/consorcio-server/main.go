package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/consorcio-server/consorcio-server/internal/api"
	"github.com/consorcio-server/consorcio-server/internal/auth"
	"github.com/consorcio-server/consorcio-server/internal/config"
	"github.com/consorcio-server/consorcio-server/internal/filestore"
	"github.com/consorcio-server/consorcio-server/internal/mail"
	"github.com/consorcio-server/consorcio-server/internal/manager"
	"github.com/consorcio-server/consorcio-server/internal/server"
	"github.com/consorcio-server/consorcio-server/internal/storage"
)

func main() {
	// Command line flags
	var configFile string
	flag.StringVar(&configFile, "config", "config/consorcio-server.yml", "Configuration file path")
	flag.Parse()

	// Local .env, ignored when absent
	godotenv.Load()

	// Setup logging
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	// Load configuration
	cfg, err := config.Load(configFile)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Set log level
	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Connect to the document store
	store, err := newStore(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Database.Driver).Msg("Failed to connect to document store")
	}
	defer store.Close()

	log.Info().Str("driver", cfg.Database.Driver).Msg("Connected to document store")

	// Blob store for uploads
	files, err := newFilestore(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Uploads.Driver).Msg("Failed to set up file store")
	}

	// Mail transport
	sender := mail.NewSMTPSender(&cfg.SMTP, store)
	jwtManager := auth.NewJWTManager(&cfg.JWT)

	var wg sync.WaitGroup
	var dispatcher mail.Dispatcher

	// With NATS, outbound mail is published and delivered by the
	// subscriber; without it, a background goroutine delivers directly.
	if cfg.NATS.URL != "" {
		log.Info().Str("url", cfg.NATS.URL).Msg("Connecting to NATS...")

		nc, err := nats.Connect(cfg.NATS.URL,
			nats.Name(cfg.Server.Name),
			nats.UserInfo(cfg.NATS.Username, cfg.NATS.Password),
			nats.ReconnectWait(cfg.NATS.ReconnectInterval),
			nats.MaxReconnects(cfg.NATS.MaxReconnects),
			nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
				log.Warn().Err(err).Msg("Disconnected from NATS")
			}),
			nats.ReconnectHandler(func(nc *nats.Conn) {
				log.Info().Msg("Reconnected to NATS")
			}),
		)
		if err != nil {
			log.Warn().Err(err).Msg("Failed to connect to NATS, dispatching mail in-process")
			dispatcher = mail.NewAsyncDispatcher(sender)
		} else {
			defer nc.Close()
			log.Info().Msg("Connected to NATS")

			dispatcher = mail.NewNATSDispatcher(nc)
			subscriber := server.NewMailSubscriber(nc, sender)

			wg.Add(1)
			go func() {
				defer wg.Done()
				if err := subscriber.Start(ctx); err != nil && err != context.Canceled {
					log.Error().Err(err).Msg("Mail subscriber stopped")
				}
			}()
		}
	} else {
		log.Info().Msg("NATS not configured, dispatching mail in-process")
		dispatcher = mail.NewAsyncDispatcher(sender)
	}

	mgr := manager.New(store, files, sender, dispatcher, jwtManager, cfg.Notify.AdminEmail)

	// Start REST API server
	apiServer := api.NewRESTServer(cfg, mgr, jwtManager)

	wg.Add(1)
	go func() {
		defer wg.Done()
		addr := fmt.Sprintf("%s:%d", cfg.API.Host, cfg.API.Port)
		if err := apiServer.ListenAndServe(addr); err != nil {
			log.Fatal().Err(err).Msg("REST API server failed")
		}
	}()

	// Wait for signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigChan
	log.Info().Str("signal", sig.String()).Msg("Received signal, shutting down")

	cancel()

	if err := apiServer.Shutdown(context.Background()); err != nil {
		log.Error().Err(err).Msg("Failed to shutdown API server gracefully")
	}

	wg.Wait()

	log.Info().Msg("Consorcio server stopped")
}

// newStore opens the configured document store
func newStore(ctx context.Context, cfg *config.Config) (storage.Store, error) {
	switch cfg.Database.Driver {
	case "postgres":
		return storage.NewPostgresStore(cfg.Database.DSN)
	case "firestore":
		return storage.NewFirestoreStore(ctx, cfg.Database.FirestoreProjectID, cfg.Database.FirestoreCredentials)
	case "memory":
		return storage.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown database driver: %s", cfg.Database.Driver)
	}
}

// newFilestore opens the configured blob store
func newFilestore(ctx context.Context, cfg *config.Config) (filestore.Store, error) {
	switch cfg.Uploads.Driver {
	case "disk":
		baseURL := cfg.Uploads.BaseURL
		if baseURL == "" {
			baseURL = fmt.Sprintf("http://localhost:%d/uploads", cfg.API.Port)
		}
		return filestore.NewDiskStore(cfg.Uploads.Dir, baseURL)
	case "firebase":
		return filestore.NewFirebaseStore(ctx, cfg.Database.FirestoreProjectID, cfg.Database.FirestoreCredentials, cfg.Uploads.Bucket)
	default:
		return nil, fmt.Errorf("unknown uploads driver: %s", cfg.Uploads.Driver)
	}
}
