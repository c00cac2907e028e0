package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-doc-vault/internal/adapter"
	"github.com/MKhiriev/go-doc-vault/internal/authz"
	"github.com/MKhiriev/go-doc-vault/internal/config"
	"github.com/MKhiriev/go-doc-vault/internal/dispatch"
	"github.com/MKhiriev/go-doc-vault/internal/handler"
	handlerhttp "github.com/MKhiriev/go-doc-vault/internal/handler/http"
	"github.com/MKhiriev/go-doc-vault/internal/logger"
	"github.com/MKhiriev/go-doc-vault/internal/server"
	"github.com/MKhiriev/go-doc-vault/internal/service"
	"github.com/MKhiriev/go-doc-vault/internal/store"
	"github.com/MKhiriev/go-doc-vault/internal/utils"
	"github.com/MKhiriev/go-doc-vault/internal/validators"
	"github.com/MKhiriev/go-doc-vault/internal/workers"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("doc-vault-server")

	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	// Prime the HMAC pool before the first integrity-checked request.
	utils.InitHasherPool(cfg.App.HashKey)

	db, err := connectDatabase(context.Background(), cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to database")
	}
	defer db.Close()

	storages := store.NewStorages(db, log)

	indexer, err := adapter.NewHTTPIndexer(cfg.Indexer, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating indexer client")
	}

	authorizers, err := documentAuthorizers(cfg.Authz, storages, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating authorizers")
	}

	dispatcher := dispatch.NewDispatcher(
		storages.Sessions,
		dispatch.DefaultBehaviors(
			log,
			authz.NewRegistry(authorizers...),
			validators.NewRegistry(validators.DocumentValidators()...),
		),
		log,
	)

	services, err := service.NewServices(storages, indexer, *cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	if err := service.RegisterDocumentHandlers(dispatcher, services.DocumentService); err != nil {
		log.Fatal().Err(err).Msg("error registering document handlers")
	}

	handlers, err := handler.NewHandlers(services, dispatcher, handlerhttp.NewBoundaryClassifier(), db, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	background := workers.NewWorkers(storages, indexer, cfg.Workers, log)
	background.Run()

	srv.RunServer()

	// RunServer returns after graceful shutdown; drain workers last so a
	// final sync round can still reach the database.
	background.Stop()
}

// connectDatabase picks the backend by DSN shape: postgres URLs go through
// pgx and get the embedded goose migrations applied, anything else is
// treated as a SQLite path.
func connectDatabase(ctx context.Context, cfg config.DB, log *logger.Logger) (*store.DB, error) {
	if strings.HasPrefix(cfg.DSN, "postgres://") || strings.HasPrefix(cfg.DSN, "postgresql://") {
		db, err := store.NewConnectPostgres(ctx, cfg, log)
		if err != nil {
			return nil, err
		}

		if err := db.Migrate(); err != nil {
			return nil, fmt.Errorf("error applying migrations: %w", err)
		}

		return db, nil
	}

	return store.NewConnectSQLite(ctx, cfg, log)
}

// documentAuthorizers assembles the authorizer chain for the configured
// mode. Owner mode resolves stored owners through the document repository;
// fga mode delegates document-scoped checks to the OpenFGA relation store.
func documentAuthorizers(cfg config.Authz, storages *store.Storages, log *logger.Logger) ([]dispatch.Authorizer, error) {
	if cfg.Mode == config.AuthzModeFGA {
		checker, err := authz.NewOpenFGA(authz.OpenFGAConfig{
			APIURL:  cfg.FGA.APIURL,
			StoreID: cfg.FGA.StoreID,
			ModelID: cfg.FGA.ModelID,
		})
		if err != nil {
			return nil, err
		}

		log.Info().Str("mode", config.AuthzModeFGA).Msg("document authorization via relation store")
		return authz.DocumentAuthorizers(nil, checker), nil
	}

	log.Info().Str("mode", config.AuthzModeOwner).Msg("document authorization is owner-only")
	return authz.DocumentAuthorizers(storages.DocumentRepository, nil), nil
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
