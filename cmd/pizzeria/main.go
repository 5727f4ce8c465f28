package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"pizzeria/pkg/app"
	"pizzeria/pkg/domain/service"
	"pizzeria/pkg/infrastructure/event"
	"pizzeria/pkg/infrastructure/mysql"
	"pizzeria/pkg/infrastructure/password"
	"pizzeria/transport"
)

func main() {
	log.SetFormatter(&log.JSONFormatter{})

	cliApp := &cli.App{
		Name:  "pizzeria",
		Usage: "food ordering backend",
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "apply pending migrations and run the HTTP API",
				Action: runServe,
			},
			{
				Name:   "migrate",
				Usage:  "apply pending database migrations and exit",
				Action: runMigrate,
			},
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		log.WithError(err).Fatal("command failed")
	}
}

func runMigrate(_ *cli.Context) error {
	cfg, err := app.LoadConfig()
	if err != nil {
		return err
	}

	db, err := mysql.Connect(cfg.DatabaseDSN)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := mysql.Migrate(db); err != nil {
		return err
	}
	log.Info("migrations applied")
	return nil
}

func runServe(_ *cli.Context) error {
	cfg, err := app.LoadConfig()
	if err != nil {
		return err
	}

	db, err := mysql.Connect(cfg.DatabaseDSN)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := mysql.Migrate(db); err != nil {
		return err
	}

	dispatcher := event.NewLogDispatcher()
	users := service.NewUserService(mysql.NewUserRepository(db), password.NewBcryptManager(), dispatcher)
	tokens := service.NewTokenService([]byte(cfg.TokenSecret))
	auth := service.NewAuthService(users, tokens, cfg.AccessTokenTTL, cfg.RefreshTokenTTL, dispatcher)
	orders := service.NewOrderService(mysql.NewOrderRepository(db), dispatcher)

	router := transport.Router(cfg, users, auth, tokens, orders)

	serverURL := ":" + cfg.Port
	log.WithFields(log.Fields{"url": serverURL}).Info("Starting server")

	killSignalChan := getKillSignalChan()
	srv := startServer(serverURL, router)

	waitForKillSignalChan(killSignalChan)
	return srv.Shutdown(context.Background())
}

func startServer(serverURL string, router http.Handler) *http.Server {
	srv := &http.Server{Addr: serverURL, Handler: router}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	return srv
}

func getKillSignalChan() chan os.Signal {
	osKillSignalChan := make(chan os.Signal, 1)
	signal.Notify(osKillSignalChan, os.Interrupt, syscall.SIGTERM)
	return osKillSignalChan
}

func waitForKillSignalChan(killSignalChan <-chan os.Signal) {
	killSignal := <-killSignalChan
	switch killSignal {
	case os.Interrupt:
		log.Info("Got SIGINT...")
	case syscall.SIGTERM:
		log.Info("Got SIGTERM...")
	}
}
