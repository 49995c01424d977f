// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Command client runs the LexiFlow offline sync client.
//
//	client [flags]                  sync in the background until interrupted
//	client login <username> [flags] open a session; password from LEXIFLOW_PASSWORD
//	client logout [flags]           drop the saved session
//	client sync [flags]             run one sync cycle and exit
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/lexiflow/internal/client"
	"github.com/MKhiriev/lexiflow/internal/config"
	"github.com/MKhiriev/lexiflow/internal/logger"
	"github.com/MKhiriev/lexiflow/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo(models.AppBuildInfo{BuildVersion: buildVersion, BuildDate: buildDate, BuildCommit: buildCommit})

	command, args := "run", os.Args[1:]
	if len(args) > 0 && (args[0] == "login" || args[0] == "logout" || args[0] == "sync") {
		command, args = args[0], args[1:]
	}
	var username string
	if command == "login" {
		if len(args) == 0 {
			fmt.Fprintln(os.Stderr, "usage: client login <username> [flags]")
			os.Exit(2)
		}
		username, args = args[0], args[1:]
	}

	cfg, err := config.GetClientConfig(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error getting configs: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewClientLogger("lexiflow-client", logger.FileOptions{Path: cfg.LogPath})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = log.WithContext(ctx)

	app, err := client.NewApp(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("init client app error")
	}
	defer app.Close()

	switch command {
	case "login":
		err = app.Login(ctx, models.Credentials{Username: username, Password: os.Getenv("LEXIFLOW_PASSWORD")})
	case "logout":
		err = app.Logout(ctx)
	case "sync":
		err = syncOnce(ctx, app)
	default:
		err = app.Run(ctx)
	}

	if err != nil {
		log.Error().Err(err).Str("command", command).Msg("client run error")
		fmt.Fprintf(os.Stderr, "%s: %v\n", command, err)
		app.Close()
		os.Exit(1)
	}
}

func syncOnce(ctx context.Context, app *client.App) error {
	services := app.Services()
	if !services.AuthService.RestoreSession(ctx) {
		return errors.New("no saved session, run login first")
	}

	res, err := services.SyncService.Sync(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("pushed %d, deleted %d, pulled %d, applied %d\n", res.Pushed, res.Deleted, res.Pulled, res.Applied)
	for _, c := range res.Conflicts {
		fmt.Printf("conflict: item %d (%s), client %s, server %s\n", c.ItemID, c.ConflictType, c.ClientVersion, c.ServerVersion)
	}
	for _, e := range res.Errors {
		fmt.Printf("error: %v\n", e)
	}
	return nil
}

func printBuildInfo(info models.AppBuildInfo) {
	if info.BuildVersion == "" {
		info.BuildVersion = "N/A"
	}
	if info.BuildDate == "" {
		info.BuildDate = "N/A"
	}
	if info.BuildCommit == "" {
		info.BuildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", info.BuildVersion)
	fmt.Printf("Build date: %s\n", info.BuildDate)
	fmt.Printf("Build commit: %s\n", info.BuildCommit)
}
