package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/onboard/internal/buildinfo"
	"github.com/dmitrijs2005/onboard/internal/client/cli"
	"github.com/dmitrijs2005/onboard/internal/client/client"
	"github.com/dmitrijs2005/onboard/internal/client/config"
	"github.com/dmitrijs2005/onboard/internal/client/interests"
	"github.com/dmitrijs2005/onboard/internal/client/notify"
	"github.com/dmitrijs2005/onboard/internal/client/services"
	"github.com/dmitrijs2005/onboard/internal/client/session"
	"github.com/dmitrijs2005/onboard/internal/client/storage"
	"github.com/dmitrijs2005/onboard/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadConfig()
	logger := logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)

	db, err := storage.Open(ctx, cfg.DBPath)
	if err != nil {
		log.Fatalf("error initializing database: %v", err)
	}
	defer db.Close()

	store := storage.NewSessionStore(db)

	transport, err := client.NewHTTPClient(cfg.ServerBaseURL, cfg.RequestTimeout,
		client.WithLogger(logger),
		client.WithTokenSource(func() string {
			token, _, err := store.LoadSession(ctx)
			if err != nil {
				return ""
			}
			return token
		}),
	)
	if err != nil {
		log.Fatalf("%v", err)
	}

	auth := services.NewAuthService(client.NewAPI(transport), store, notify.NewTerminal(os.Stdout), logger)
	manager := session.NewManager(auth, store, logger)
	defer manager.Close()

	if err := manager.Restore(ctx); err != nil {
		log.Fatalf("error restoring session: %v", err)
	}

	catalogue, err := interests.Generate(interests.CatalogueSize, cfg.CatalogueSeed)
	if err != nil {
		log.Fatalf("%v", err)
	}

	app := cli.NewApp(manager, catalogue, store, logger, os.Stdin, os.Stdout)
	app.Run(ctx)

}
