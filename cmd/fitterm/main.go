package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/akovalenko/fitterm/internal/api"
	"github.com/akovalenko/fitterm/internal/cli"
	"github.com/akovalenko/fitterm/internal/config"
	"github.com/akovalenko/fitterm/internal/credstore"
	"github.com/akovalenko/fitterm/internal/logging"
	"github.com/akovalenko/fitterm/internal/session"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Config dir override for development: FITTERM_CONFIG=./dev
	cfg, err := config.Load(os.Getenv("FITTERM_CONFIG"))
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if err := os.MkdirAll(cfg.DataDir(), 0o700); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}

	log := logging.New(cfg.LogFile(), cfg.Log.Level)

	creds, err := credstore.Open(cfg.CredentialsPath())
	if err != nil {
		return fmt.Errorf("opening credential store: %w", err)
	}
	defer creds.Close()

	// The session store is the client's token source, and the client's
	// auth service is the session store's backend, so wiring is two-step.
	sess := session.New(creds, log)
	client := api.New(cfg.API.BaseURL, sess,
		api.WithObserver(api.NewLogObserver(log)),
		api.WithHTTPClient(&http.Client{Timeout: cfg.API.Timeout}),
	)
	sess.BindAuth(client.Auth)

	app := &cli.App{
		Session:      sess,
		Account:      client.Auth,
		Plans:        client.Plans,
		Exercises:    client.Exercises,
		Steps:        client.Steps,
		Measurements: client.Measurements,
		Nutrition:    client.Nutrition,
		Tracking:     client.Tracking,
		Log:          log,
	}

	return cli.NewRootCmd(app).Execute()
}
